package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/scottwarrens/challengeboard/errors"
	"github.com/scottwarrens/challengeboard/internal/repository"
	"github.com/scottwarrens/challengeboard/internal/service"
	"github.com/scottwarrens/challengeboard/logger"
)

type StandingsHandler struct {
	standingsService service.StandingsService
	playerRepo       repository.PlayerRepository
	logger           *logger.Logger
}

func NewStandingsHandler(
	standingsService service.StandingsService,
	playerRepo repository.PlayerRepository,
	logger *logger.Logger,
) *StandingsHandler {
	return &StandingsHandler{
		standingsService: standingsService,
		playerRepo:       playerRepo,
		logger:           logger,
	}
}

func (h *StandingsHandler) RegisterRoutes(engine *gin.Engine) {
	group := engine.Group("/api")

	group.GET("/standings", h.getStandings)
	group.GET("/standings/history", h.getScoreHistory)
	group.GET("/players", h.listPlayers)
}

func (h *StandingsHandler) getStandings(g *gin.Context) {
	rows, appErr := h.standingsService.GetStandings(g.Request.Context(), excludeTurnsParam(g))
	if appErr != nil {
		h.writeError(g, appErr)
		return
	}

	g.JSON(http.StatusOK, &StandingsResponse{Standings: rows})
}

func (h *StandingsHandler) getScoreHistory(g *gin.Context) {
	rows, appErr := h.standingsService.GetScoreHistory(g.Request.Context(), excludeTurnsParam(g))
	if appErr != nil {
		h.writeError(g, appErr)
		return
	}

	g.JSON(http.StatusOK, &ScoreHistoryResponse{History: rows})
}

func (h *StandingsHandler) listPlayers(g *gin.Context) {
	players, err := h.playerRepo.GetAll(g.Request.Context())
	if err != nil {
		h.writeError(g, apperrors.Wrap(err, apperrors.CodeDatabaseError, "could not load players"))
		return
	}

	g.JSON(http.StatusOK, &PlayersResponse{Players: players})
}

func (h *StandingsHandler) writeError(g *gin.Context, appErr *apperrors.AppError) {
	status := appErr.HTTPStatus()
	if status >= http.StatusInternalServerError {
		h.logger.Error("Request failed", "path", g.FullPath(), "error", appErr)
	}
	g.JSON(status, errorResponse(appErr))
}
