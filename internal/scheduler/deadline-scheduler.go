package scheduler

import (
	"context"
	"time"

	"github.com/scottwarrens/challengeboard/internal/service"
	"github.com/scottwarrens/challengeboard/logger"
)

// DeadlineScheduler is the external clock of the engine: it finalizes
// challenges whose submission window has elapsed.
type DeadlineScheduler struct {
	challengeService service.ChallengeService
	logger           *logger.Logger
}

func NewDeadlineScheduler(challengeService service.ChallengeService, logger *logger.Logger) *DeadlineScheduler {
	return &DeadlineScheduler{
		challengeService: challengeService,
		logger:           logger,
	}
}

func (ds *DeadlineScheduler) SweepExpired(ctx context.Context, now time.Time) error {
	finalized, err := ds.challengeService.FinalizeDueChallenges(ctx, now)
	if err != nil {
		return err
	}

	if finalized > 0 {
		ds.logger.Info("Expired challenges finalized", "count", finalized)
	}

	return nil
}
