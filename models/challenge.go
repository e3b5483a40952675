package models

import (
	"fmt"
	"time"
)

// ScoringType decides which direction of raw score is "best" when a
// challenge is resolved into ranked results.
type ScoringType string

const (
	HighestWins ScoringType = "highest-wins"
	LowestWins  ScoringType = "lowest-wins"
	FastestWins ScoringType = "fastest-wins"
	// ClosestWins ranks by distance to the challenge's target value.
	ClosestWins ScoringType = "closest-wins"
)

func (s ScoringType) Valid() bool {
	switch s {
	case HighestWins, LowestWins, FastestWins, ClosestWins:
		return true
	}
	return false
}

type ChallengeStatus string

const (
	StatusActive    ChallengeStatus = "active"
	StatusCompleted ChallengeStatus = "completed"
)

type Challenge struct {
	ChallengeId string          `dynamodbav:"challenge_id" json:"id"`
	Name        string          `dynamodbav:"name" json:"name"`
	Description string          `dynamodbav:"description" json:"description"`
	Rules       []string        `dynamodbav:"rules" json:"rules"`
	ScoringType ScoringType     `dynamodbav:"scoring_type" json:"scoring_type"`
	TargetValue *float64        `dynamodbav:"target_value,omitempty" json:"target_value,omitempty"`
	CreatedBy   string          `dynamodbav:"created_by" json:"created_by"`
	IsTurns     bool            `dynamodbav:"is_turns" json:"is_turns"`
	Status      ChallengeStatus `dynamodbav:"status" json:"status"`
	CreatedAt   time.Time       `dynamodbav:"created_at" json:"created_at"`
	CompletedAt *time.Time      `dynamodbav:"completed_at,omitempty" json:"completed_at,omitempty"`

	// Timer state. Both fields are set together or not at all.
	TimerStartedAt *time.Time `dynamodbav:"timer_started_at,omitempty" json:"timer_started_at,omitempty"`
	TimerDeadline  *time.Time `dynamodbav:"timer_deadline,omitempty" json:"timer_deadline,omitempty"`

	PK string `dynamodbav:"PK" json:"-"`
	SK string `dynamodbav:"SK" json:"-"`

	GSI1PK string `dynamodbav:"GSI1PK" json:"-"`
	GSI1SK string `dynamodbav:"GSI1SK" json:"-"`
}

// DeadlinePassed reports whether the challenge has a timer whose deadline is
// at or before now.
func (c *Challenge) DeadlinePassed(now time.Time) bool {
	return c.TimerDeadline != nil && !now.Before(*c.TimerDeadline)
}

// Key handlers

func ChallengePK(challengeID string) string {
	return fmt.Sprintf("CHALLENGE#%s", challengeID)
}

func MetaSK() string {
	return "META"
}

func StatusGSI1PK(status ChallengeStatus) string {
	return fmt.Sprintf("STATUS#%s", status)
}

func CreatedGSI1SK(createdAt time.Time) string {
	return fmt.Sprintf("CREATED#%s", createdAt.UTC().Format(time.RFC3339))
}

func CompletedGSI1SK(completedAt time.Time) string {
	return fmt.Sprintf("COMPLETED#%s", completedAt.UTC().Format(time.RFC3339))
}

func ExtractChallengeID(pk string) (string, error) {
	if len(pk) < 11 || pk[:10] != "CHALLENGE#" {
		return "", fmt.Errorf("invalid challenge PK format: %s", pk)
	}
	return pk[10:], nil
}
