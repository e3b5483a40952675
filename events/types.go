package events

import "time"

const (
	// Streams
	ChallengeEventsStream = "CHALLENGE_EVENTS"

	// Subjects
	ChallengeCreated   = "events.challenge.created"
	ScoreSubmitted     = "events.challenge.scoreSubmitted"
	TimerTightened     = "events.challenge.timerTightened"
	ChallengeCompleted = "events.challenge.completed"

	// Subject wildcards
	ChallengeEventsWildcard = "events.challenge.*"
)

// Finalize triggers carried on completed events.
const (
	TriggerAllSubmitted    = "all_submitted"
	TriggerDeadlineReached = "deadline_reached"
)

// Payloads are JSON-encoded on the wire. Every engine mutation publishes
// exactly one of these so presentation consumers can refresh.

type ChallengeCreatedEvent struct {
	ChallengeId string    `json:"challenge_id"`
	Name        string    `json:"name"`
	HostId      string    `json:"host_id"`
	IsTurns     bool      `json:"is_turns"`
	Timestamp   time.Time `json:"timestamp"`
}

type ScoreSubmittedEvent struct {
	ChallengeId     string    `json:"challenge_id"`
	PlayerId        string    `json:"player_id"`
	SubmissionCount int       `json:"submission_count"`
	Timestamp       time.Time `json:"timestamp"`
}

type TimerTightenedEvent struct {
	ChallengeId string    `json:"challenge_id"`
	Deadline    time.Time `json:"deadline"`
	Timestamp   time.Time `json:"timestamp"`
}

type ChallengeCompletedEvent struct {
	ChallengeId string    `json:"challenge_id"`
	Trigger     string    `json:"trigger"`
	ResultCount int       `json:"result_count"`
	Timestamp   time.Time `json:"timestamp"`
}
