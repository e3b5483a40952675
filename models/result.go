package models

import "fmt"

// Result is one ranked line of a completed challenge. Results are written as
// a batch inside the finalize transaction and never change afterwards.
type Result struct {
	ChallengeId string  `dynamodbav:"challenge_id" json:"challenge_id"`
	PlayerId    string  `dynamodbav:"player_id" json:"player_id"`
	Rank        int     `dynamodbav:"rank" json:"rank"`
	Score       float64 `dynamodbav:"score" json:"score"`
	Points      int     `dynamodbav:"points" json:"points"`

	PK string `dynamodbav:"PK" json:"-"`
	SK string `dynamodbav:"SK" json:"-"`
}

func ResultSK(playerID string) string {
	return fmt.Sprintf("RESULT#%s", playerID)
}

func ResultSKPrefix() string {
	return "RESULT#"
}
