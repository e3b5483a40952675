package models

import "time"

// ChallengeDetail is a challenge with its ledger and, once completed, its
// result batch attached. It is the read shape of the list endpoints.
type ChallengeDetail struct {
	Challenge   Challenge    `json:"challenge"`
	Submissions []Submission `json:"submissions,omitempty"`
	Results     []Result     `json:"results,omitempty"`
}

// StandingsRow is one leaderboard line. Standings are derived on every read
// by folding over completed challenges, never stored as a source of truth.
type StandingsRow struct {
	PlayerId string   `json:"player_id"`
	Name     string   `json:"name"`
	Color    string   `json:"color"`
	Points   int      `json:"points"`
	Wins     []string `json:"wins"`
	Played   int      `json:"played"`
}

// ScoreHistoryRow is the cumulative per-player point total after one
// completed challenge, in completion order. Row zero is the all-zero origin.
type ScoreHistoryRow struct {
	ChallengeNumber int            `json:"challenge_number"`
	ChallengeId     string         `json:"challenge_id,omitempty"`
	ChallengeName   string         `json:"challenge_name,omitempty"`
	HostId          string         `json:"host_id,omitempty"`
	HostChallengeNo int            `json:"host_challenge_number,omitempty"`
	CompletedAt     *time.Time     `json:"completed_at,omitempty"`
	Totals          map[string]int `json:"totals"`
}
