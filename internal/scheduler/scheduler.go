package scheduler

import (
	"context"
	"time"

	"github.com/scottwarrens/challengeboard/logger"
)

// Scheduler runs the deadline sweep on a fixed interval. The interval is an
// operational knob; correctness of at-most-once finalization lives in the
// storage guards, not here.
type Scheduler struct {
	deadlineScheduler *DeadlineScheduler
	interval          time.Duration
	logger            *logger.Logger
	stopChan          chan struct{}
}

func NewScheduler(deadlineScheduler *DeadlineScheduler, interval time.Duration, logger *logger.Logger) *Scheduler {
	return &Scheduler{
		deadlineScheduler: deadlineScheduler,
		interval:          interval,
		logger:            logger,
		stopChan:          make(chan struct{}),
	}
}

func (s *Scheduler) Start() {
	s.logger.Info("Deadline sweep scheduled", "interval", s.interval.String())

	ticker := time.NewTicker(s.interval)

	for {
		select {
		case <-ticker.C:
			ctx := context.Background()
			if err := s.deadlineScheduler.SweepExpired(ctx, time.Now().UTC()); err != nil {
				s.logger.Error("Deadline sweep failed", "error", err)
			}

		case <-s.stopChan:
			ticker.Stop()
			s.logger.Info("Deadline sweep scheduler stopped")
			return
		}
	}
}

func (s *Scheduler) Stop() error {
	close(s.stopChan)
	return nil
}
