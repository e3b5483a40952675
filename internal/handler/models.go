package handler

import (
	apperrors "github.com/scottwarrens/challengeboard/errors"
	"github.com/scottwarrens/challengeboard/models"
)

type CreateChallengeRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Rules       []string `json:"rules"`
	ScoringType string   `json:"scoring_type"`
	TargetValue *float64 `json:"target_value,omitempty"`
	HostId      string   `json:"host_id"`
	IsTurns     bool     `json:"is_turns"`
}

type SubmitScoreRequest struct {
	PlayerId string   `json:"player_id"`
	Score    *float64 `json:"score"`
}

type SubmitScoreResponse struct {
	ChallengeId     string `json:"challenge_id"`
	PlayerId        string `json:"player_id"`
	SubmissionCount int    `json:"submission_count"`
}

type ChallengeListResponse struct {
	Challenges []models.ChallengeDetail `json:"challenges"`
}

type StandingsResponse struct {
	Standings []models.StandingsRow `json:"standings"`
}

type ScoreHistoryResponse struct {
	History []models.ScoreHistoryRow `json:"history"`
}

type PlayersResponse struct {
	Players []models.Player `json:"players"`
}

type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func errorResponse(err *apperrors.AppError) *ErrorResponse {
	return &ErrorResponse{
		Error: err.Message,
		Code:  string(err.Code),
	}
}
