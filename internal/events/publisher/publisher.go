package publisher

import (
	"context"
	"fmt"
	"time"

	commonevents "github.com/scottwarrens/challengeboard/events"
	"github.com/scottwarrens/challengeboard/logger"
	"github.com/scottwarrens/challengeboard/natsjetstream"
)

// EventPublisher pushes a JSON event for every engine mutation so the
// presentation layer can refresh. Publish failures are logged and returned
// but never roll back the mutation that triggered them.
type EventPublisher struct {
	publisher *natsjetstream.Publisher
	logger    *logger.Logger
}

func NewEventPublisher(client *natsjetstream.Client, logger *logger.Logger) *EventPublisher {
	return &EventPublisher{
		publisher: natsjetstream.NewPublisher(client),
		logger:    logger,
	}
}

func (p *EventPublisher) PublishChallengeCreated(ctx context.Context, challengeID, name, hostID string, isTurns bool) error {
	event := &commonevents.ChallengeCreatedEvent{
		ChallengeId: challengeID,
		Name:        name,
		HostId:      hostID,
		IsTurns:     isTurns,
		Timestamp:   time.Now().UTC(),
	}

	if err := p.publisher.PublishJSON(ctx, commonevents.ChallengeCreated, event); err != nil {
		p.logger.Error(fmt.Sprintf("Failed to publish challenge created event: %v", err))
		return fmt.Errorf("failed to publish event: %w", err)
	}

	p.logger.Info("Published challenge created event", "challenge_id", challengeID)
	return nil
}

func (p *EventPublisher) PublishScoreSubmitted(ctx context.Context, challengeID, playerID string, submissionCount int) error {
	event := &commonevents.ScoreSubmittedEvent{
		ChallengeId:     challengeID,
		PlayerId:        playerID,
		SubmissionCount: submissionCount,
		Timestamp:       time.Now().UTC(),
	}

	if err := p.publisher.PublishJSON(ctx, commonevents.ScoreSubmitted, event); err != nil {
		p.logger.Error(fmt.Sprintf("Failed to publish score submitted event: %v", err))
		return fmt.Errorf("failed to publish event: %w", err)
	}

	p.logger.Info("Published score submitted event", "challenge_id", challengeID, "player_id", playerID)
	return nil
}

func (p *EventPublisher) PublishTimerTightened(ctx context.Context, challengeID string, deadline time.Time) error {
	event := &commonevents.TimerTightenedEvent{
		ChallengeId: challengeID,
		Deadline:    deadline,
		Timestamp:   time.Now().UTC(),
	}

	if err := p.publisher.PublishJSON(ctx, commonevents.TimerTightened, event); err != nil {
		p.logger.Error(fmt.Sprintf("Failed to publish timer tightened event: %v", err))
		return fmt.Errorf("failed to publish event: %w", err)
	}

	p.logger.Info("Published timer tightened event", "challenge_id", challengeID, "deadline", deadline)
	return nil
}

func (p *EventPublisher) PublishChallengeCompleted(ctx context.Context, challengeID, trigger string, resultCount int) error {
	event := &commonevents.ChallengeCompletedEvent{
		ChallengeId: challengeID,
		Trigger:     trigger,
		ResultCount: resultCount,
		Timestamp:   time.Now().UTC(),
	}

	if err := p.publisher.PublishJSON(ctx, commonevents.ChallengeCompleted, event); err != nil {
		p.logger.Error(fmt.Sprintf("Failed to publish challenge completed event: %v", err))
		return fmt.Errorf("failed to publish event: %w", err)
	}

	p.logger.Info("Published challenge completed event", "challenge_id", challengeID, "trigger", trigger)
	return nil
}
