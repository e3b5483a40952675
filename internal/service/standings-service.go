package service

import (
	"cmp"
	"context"
	"slices"

	apperrors "github.com/scottwarrens/challengeboard/errors"
	"github.com/scottwarrens/challengeboard/logger"
	"github.com/scottwarrens/challengeboard/models"
)

// StandingsMirror is an optional read-optimised copy of the leaderboard kept
// in a cache for external consumers. It is never read back as truth.
type StandingsMirror interface {
	UpdateStandings(ctx context.Context, excludeTurns bool, rows []models.StandingsRow) error
}

type StandingsService interface {
	GetStandings(ctx context.Context, excludeTurns bool) ([]models.StandingsRow, *apperrors.AppError)
	GetScoreHistory(ctx context.Context, excludeTurns bool) ([]models.ScoreHistoryRow, *apperrors.AppError)
	RefreshMirror(ctx context.Context) error
}

type standingsService struct {
	challengeService ChallengeService
	playerProvider   PlayerProvider
	mirror           StandingsMirror
	logger           *logger.Logger
}

// PlayerProvider is the slice of the registry the aggregator needs.
type PlayerProvider interface {
	GetAll(ctx context.Context) ([]models.Player, error)
}

func NewStandingsService(
	challengeService ChallengeService,
	playerProvider PlayerProvider,
	mirror StandingsMirror,
	logger *logger.Logger,
) StandingsService {
	return &standingsService{
		challengeService: challengeService,
		playerProvider:   playerProvider,
		mirror:           mirror,
		logger:           logger,
	}
}

func (s *standingsService) GetStandings(ctx context.Context, excludeTurns bool) ([]models.StandingsRow, *apperrors.AppError) {
	players, completed, appErr := s.load(ctx, excludeTurns)
	if appErr != nil {
		return nil, appErr
	}

	rows := ComputeStandings(players, completed)

	if s.mirror != nil {
		if err := s.mirror.UpdateStandings(ctx, excludeTurns, rows); err != nil {
			s.logger.Warn("Standings mirror not updated", "error", err)
		}
	}

	return rows, nil
}

func (s *standingsService) GetScoreHistory(ctx context.Context, excludeTurns bool) ([]models.ScoreHistoryRow, *apperrors.AppError) {
	players, completed, appErr := s.load(ctx, excludeTurns)
	if appErr != nil {
		return nil, appErr
	}

	return ComputeScoreHistory(players, completed), nil
}

// RefreshMirror recomputes both leaderboard variants into the cache. Wired
// to the challenge-completed event so the mirror follows every finalize.
func (s *standingsService) RefreshMirror(ctx context.Context) error {
	if s.mirror == nil {
		return nil
	}

	for _, excludeTurns := range []bool{false, true} {
		players, completed, appErr := s.load(ctx, excludeTurns)
		if appErr != nil {
			return appErr
		}
		if err := s.mirror.UpdateStandings(ctx, excludeTurns, ComputeStandings(players, completed)); err != nil {
			return err
		}
	}

	return nil
}

func (s *standingsService) load(ctx context.Context, excludeTurns bool) ([]models.Player, []models.ChallengeDetail, *apperrors.AppError) {
	players, err := s.playerProvider.GetAll(ctx)
	if err != nil {
		return nil, nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to list players")
	}

	completed, appErr := s.challengeService.ListCompleted(ctx, excludeTurns)
	if appErr != nil {
		return nil, nil, appErr
	}

	return players, completed, nil
}

// ComputeStandings folds completed challenges into one leaderboard row per
// roster player: points accumulate per result, a rank-1 result appends the
// challenge name to the winner's list. Challenges are processed oldest
// completion first so win lists read chronologically. Rows sort by points
// descending with ties broken on player id, so equal totals always render in
// the same order.
func ComputeStandings(players []models.Player, completed []models.ChallengeDetail) []models.StandingsRow {
	rows := make([]models.StandingsRow, 0, len(players))
	index := make(map[string]int, len(players))
	for i, player := range players {
		index[player.PlayerId] = i
		rows = append(rows, models.StandingsRow{
			PlayerId: player.PlayerId,
			Name:     player.Name,
			Color:    player.Color,
			Wins:     []string{},
		})
	}

	for _, detail := range sortByCompletion(completed) {
		for _, result := range detail.Results {
			i, ok := index[result.PlayerId]
			if !ok {
				continue
			}
			rows[i].Points += result.Points
			rows[i].Played++
			if result.Rank == 1 {
				rows[i].Wins = append(rows[i].Wins, detail.Challenge.Name)
			}
		}
	}

	slices.SortFunc(rows, func(a, b models.StandingsRow) int {
		if c := cmp.Compare(b.Points, a.Points); c != 0 {
			return c
		}
		return cmp.Compare(a.PlayerId, b.PlayerId)
	})

	return rows
}

// ComputeScoreHistory produces the cumulative point totals after each
// completed challenge, in completion order, starting from an all-zero
// origin row. The host ordinal counts how many of the host's challenges have
// completed up to and including that row.
func ComputeScoreHistory(players []models.Player, completed []models.ChallengeDetail) []models.ScoreHistoryRow {
	totals := make(map[string]int, len(players))
	for _, player := range players {
		totals[player.PlayerId] = 0
	}

	rows := make([]models.ScoreHistoryRow, 0, len(completed)+1)
	rows = append(rows, models.ScoreHistoryRow{
		ChallengeNumber: 0,
		Totals:          copyTotals(totals),
	})

	hostCounts := make(map[string]int)
	for i, detail := range sortByCompletion(completed) {
		for _, result := range detail.Results {
			if _, ok := totals[result.PlayerId]; ok {
				totals[result.PlayerId] += result.Points
			}
		}

		hostCounts[detail.Challenge.CreatedBy]++

		rows = append(rows, models.ScoreHistoryRow{
			ChallengeNumber: i + 1,
			ChallengeId:     detail.Challenge.ChallengeId,
			ChallengeName:   detail.Challenge.Name,
			HostId:          detail.Challenge.CreatedBy,
			HostChallengeNo: hostCounts[detail.Challenge.CreatedBy],
			CompletedAt:     detail.Challenge.CompletedAt,
			Totals:          copyTotals(totals),
		})
	}

	return rows
}

func sortByCompletion(completed []models.ChallengeDetail) []models.ChallengeDetail {
	sorted := make([]models.ChallengeDetail, len(completed))
	copy(sorted, completed)

	slices.SortFunc(sorted, func(a, b models.ChallengeDetail) int {
		switch {
		case a.Challenge.CompletedAt == nil && b.Challenge.CompletedAt == nil:
			return cmp.Compare(a.Challenge.ChallengeId, b.Challenge.ChallengeId)
		case a.Challenge.CompletedAt == nil:
			return 1
		case b.Challenge.CompletedAt == nil:
			return -1
		}
		if c := a.Challenge.CompletedAt.Compare(*b.Challenge.CompletedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.Challenge.ChallengeId, b.Challenge.ChallengeId)
	})

	return sorted
}

func copyTotals(totals map[string]int) map[string]int {
	out := make(map[string]int, len(totals))
	for id, points := range totals {
		out[id] = points
	}
	return out
}
