package models

import (
	"fmt"
	"time"
)

// Submission is one player's raw score for a challenge. The ledger holds at
// most one per (challenge, player), enforced by the storage key.
type Submission struct {
	ChallengeId string    `dynamodbav:"challenge_id" json:"challenge_id"`
	PlayerId    string    `dynamodbav:"player_id" json:"player_id"`
	Score       float64   `dynamodbav:"score" json:"score"`
	SubmittedAt time.Time `dynamodbav:"submitted_at" json:"submitted_at"`

	PK string `dynamodbav:"PK" json:"-"`
	SK string `dynamodbav:"SK" json:"-"`
}

func SubmissionSK(playerID string) string {
	return fmt.Sprintf("SUBMISSION#%s", playerID)
}

func SubmissionSKPrefix() string {
	return "SUBMISSION#"
}
