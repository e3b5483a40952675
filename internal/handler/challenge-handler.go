package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/scottwarrens/challengeboard/errors"
	"github.com/scottwarrens/challengeboard/internal/service"
	"github.com/scottwarrens/challengeboard/logger"
	"github.com/scottwarrens/challengeboard/models"
)

type ChallengeHandler struct {
	challengeService service.ChallengeService
	logger           *logger.Logger
}

func NewChallengeHandler(challengeService service.ChallengeService, logger *logger.Logger) *ChallengeHandler {
	return &ChallengeHandler{
		challengeService: challengeService,
		logger:           logger,
	}
}

func (h *ChallengeHandler) RegisterRoutes(engine *gin.Engine) {
	group := engine.Group("/api")

	group.POST("/challenges", h.createChallenge)
	group.POST("/challenges/:id/scores", h.submitScore)
	group.GET("/challenges/active", h.listActive)
	group.GET("/challenges/completed", h.listCompleted)
}

func (h *ChallengeHandler) createChallenge(g *gin.Context) {
	var req CreateChallengeRequest
	if err := g.ShouldBindJSON(&req); err != nil {
		g.JSON(http.StatusBadRequest, &ErrorResponse{Error: "invalid request format"})
		return
	}

	challenge, appErr := h.challengeService.CreateChallenge(g.Request.Context(), service.CreateChallengeInput{
		Name:        req.Name,
		Description: req.Description,
		Rules:       req.Rules,
		ScoringType: models.ScoringType(req.ScoringType),
		TargetValue: req.TargetValue,
		HostId:      req.HostId,
		IsTurns:     req.IsTurns,
	})
	if appErr != nil {
		h.writeError(g, appErr)
		return
	}

	g.JSON(http.StatusCreated, challenge)
}

func (h *ChallengeHandler) submitScore(g *gin.Context) {
	challengeID := g.Param("id")
	if challengeID == "" {
		g.JSON(http.StatusBadRequest, &ErrorResponse{Error: "challenge id is required"})
		return
	}

	var req SubmitScoreRequest
	if err := g.ShouldBindJSON(&req); err != nil {
		g.JSON(http.StatusBadRequest, &ErrorResponse{Error: "invalid request format"})
		return
	}
	if req.PlayerId == "" || req.Score == nil {
		g.JSON(http.StatusBadRequest, &ErrorResponse{Error: "player_id and score are required"})
		return
	}

	count, appErr := h.challengeService.SubmitScore(g.Request.Context(), challengeID, req.PlayerId, *req.Score)
	if appErr != nil {
		h.writeError(g, appErr)
		return
	}

	g.JSON(http.StatusOK, &SubmitScoreResponse{
		ChallengeId:     challengeID,
		PlayerId:        req.PlayerId,
		SubmissionCount: count,
	})
}

func (h *ChallengeHandler) listActive(g *gin.Context) {
	challenges, appErr := h.challengeService.ListActive(g.Request.Context(), excludeTurnsParam(g))
	if appErr != nil {
		h.writeError(g, appErr)
		return
	}

	g.JSON(http.StatusOK, &ChallengeListResponse{Challenges: challenges})
}

func (h *ChallengeHandler) listCompleted(g *gin.Context) {
	challenges, appErr := h.challengeService.ListCompleted(g.Request.Context(), excludeTurnsParam(g))
	if appErr != nil {
		h.writeError(g, appErr)
		return
	}

	g.JSON(http.StatusOK, &ChallengeListResponse{Challenges: challenges})
}

func (h *ChallengeHandler) writeError(g *gin.Context, appErr *apperrors.AppError) {
	status := appErr.HTTPStatus()
	if status >= http.StatusInternalServerError {
		h.logger.Error("Request failed", "path", g.FullPath(), "error", appErr)
	}
	g.JSON(status, errorResponse(appErr))
}

// excludeTurnsParam reads the alternate-leaderboard toggle that hides
// turns-category challenges.
func excludeTurnsParam(g *gin.Context) bool {
	return g.Query("exclude_turns") == "true"
}
