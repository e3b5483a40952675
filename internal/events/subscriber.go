package events

import (
	"context"
	"fmt"

	"github.com/nats-io/nats.go/jetstream"

	commonevents "github.com/scottwarrens/challengeboard/events"
	"github.com/scottwarrens/challengeboard/internal/service"
	"github.com/scottwarrens/challengeboard/logger"
	"github.com/scottwarrens/challengeboard/natsjetstream"
)

// EventSubscriber keeps the standings mirror in step with the engine by
// consuming its own completed-challenge events.
type EventSubscriber struct {
	natsClient       *natsjetstream.Client
	subscriber       *natsjetstream.Subscriber
	standingsService service.StandingsService
	logger           *logger.Logger
}

func NewEventSubscriber(
	natsClient *natsjetstream.Client,
	standingsService service.StandingsService,
	logger *logger.Logger,
) *EventSubscriber {
	return &EventSubscriber{
		natsClient:       natsClient,
		subscriber:       natsjetstream.NewSubscriber(natsClient),
		standingsService: standingsService,
		logger:           logger.With("component", "event-subscriber"),
	}
}

func (s *EventSubscriber) Start(ctx context.Context) error {
	s.logger.Info("Starting event subscriptions")

	cfg := natsjetstream.ConsumerConfig{
		StreamName:    commonevents.ChallengeEventsStream,
		ConsumerName:  "challengeboard-standings-consumer",
		Durable:       "challengeboard-standings",
		FilterSubject: commonevents.ChallengeCompleted,
		AckPolicy:     "explicit",
	}

	if err := s.subscriber.Subscribe(ctx, cfg, s.handleChallengeCompleted); err != nil {
		return fmt.Errorf("failed to subscribe to challenge events: %w", err)
	}

	s.logger.Info("All event subscriptions started")
	return nil
}

func (s *EventSubscriber) handleChallengeCompleted(ctx context.Context, msg jetstream.Msg) error {
	var event commonevents.ChallengeCompletedEvent
	if err := natsjetstream.UnmarshalJSON(msg, &event); err != nil {
		s.logger.Error("Failed to unmarshal challenge completed event", "error", err)
		return fmt.Errorf("unmarshal error: %w", err)
	}

	s.logger.Info("Processing challenge completed event",
		"challenge_id", event.ChallengeId,
		"trigger", event.Trigger,
	)

	if err := s.standingsService.RefreshMirror(ctx); err != nil {
		s.logger.Error("Failed to refresh standings mirror",
			"error", err,
			"challenge_id", event.ChallengeId,
		)
		return fmt.Errorf("refresh mirror error: %w", err)
	}

	return nil
}
