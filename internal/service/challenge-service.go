package service

import (
	"context"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/scottwarrens/challengeboard/database"
	apperrors "github.com/scottwarrens/challengeboard/errors"
	commonevents "github.com/scottwarrens/challengeboard/events"
	"github.com/scottwarrens/challengeboard/internal/errors"
	"github.com/scottwarrens/challengeboard/internal/repository"
	"github.com/scottwarrens/challengeboard/internal/scoring"
	"github.com/scottwarrens/challengeboard/logger"
	"github.com/scottwarrens/challengeboard/models"
)

// EventPublisher is the observer channel the engine notifies after every
// successful mutation. The transport behind it is not the engine's concern.
type EventPublisher interface {
	PublishChallengeCreated(ctx context.Context, challengeID, name, hostID string, isTurns bool) error
	PublishScoreSubmitted(ctx context.Context, challengeID, playerID string, submissionCount int) error
	PublishTimerTightened(ctx context.Context, challengeID string, deadline time.Time) error
	PublishChallengeCompleted(ctx context.Context, challengeID, trigger string, resultCount int) error
}

type CreateChallengeInput struct {
	Name        string
	Description string
	Rules       []string
	ScoringType models.ScoringType
	TargetValue *float64
	HostId      string
	IsTurns     bool
}

type ChallengeService interface {
	CreateChallenge(ctx context.Context, input CreateChallengeInput) (*models.Challenge, *apperrors.AppError)
	SubmitScore(ctx context.Context, challengeID, playerID string, score float64) (int, *apperrors.AppError)
	ListActive(ctx context.Context, excludeTurns bool) ([]models.ChallengeDetail, *apperrors.AppError)
	ListCompleted(ctx context.Context, excludeTurns bool) ([]models.ChallengeDetail, *apperrors.AppError)
	FinalizeDueChallenges(ctx context.Context, now time.Time) (int, *apperrors.AppError)
}

type EngineOptions struct {
	// AllowHostSubmission lets the host of a challenge submit a score to it.
	// The observed competition runs with this off.
	AllowHostSubmission bool
}

type challengeService struct {
	challengeRepo   repository.ChallengeRepository
	submissionRepo  repository.SubmissionRepository
	resultRepo      repository.ResultRepository
	playerRepo      repository.PlayerRepository
	transactionRepo database.TransactionRepository
	eventPublisher  EventPublisher
	logger          *logger.Logger
	opts            EngineOptions

	now func() time.Time
}

func NewChallengeService(
	challengeRepo repository.ChallengeRepository,
	submissionRepo repository.SubmissionRepository,
	resultRepo repository.ResultRepository,
	playerRepo repository.PlayerRepository,
	transactionRepo database.TransactionRepository,
	eventPublisher EventPublisher,
	logger *logger.Logger,
	opts EngineOptions,
) ChallengeService {
	return &challengeService{
		challengeRepo:   challengeRepo,
		submissionRepo:  submissionRepo,
		resultRepo:      resultRepo,
		playerRepo:      playerRepo,
		transactionRepo: transactionRepo,
		eventPublisher:  eventPublisher,
		logger:          logger,
		opts:            opts,
		now:             time.Now,
	}
}

func (s *challengeService) CreateChallenge(ctx context.Context, input CreateChallengeInput) (*models.Challenge, *apperrors.AppError) {
	if err := s.validateCreateInput(input); err != nil {
		return nil, err
	}

	if _, err := s.playerRepo.GetById(ctx, input.HostId); err != nil {
		if apperrors.IsCode(err, apperrors.CodeNotFound) {
			return nil, errors.UnknownPlayerError(input.HostId)
		}
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to look up host")
	}

	challenge := &models.Challenge{
		ChallengeId: uuid.New().String(),
		Name:        strings.TrimSpace(input.Name),
		Description: strings.TrimSpace(input.Description),
		Rules:       normalizeRules(input.Rules),
		ScoringType: input.ScoringType,
		TargetValue: input.TargetValue,
		CreatedBy:   input.HostId,
		IsTurns:     input.IsTurns,
		Status:      models.StatusActive,
		CreatedAt:   s.now().UTC(),
	}

	if err := s.challengeRepo.Create(ctx, challenge); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to create challenge")
	}

	s.logger.Info("Challenge created",
		"challenge_id", challenge.ChallengeId,
		"host_id", challenge.CreatedBy,
		"scoring_type", challenge.ScoringType,
	)

	if err := s.eventPublisher.PublishChallengeCreated(ctx, challenge.ChallengeId, challenge.Name, challenge.CreatedBy, challenge.IsTurns); err != nil {
		s.logger.Warn("Challenge created event not delivered", "challenge_id", challenge.ChallengeId, "error", err)
	}

	return challenge, nil
}

func (s *challengeService) SubmitScore(ctx context.Context, challengeID, playerID string, score float64) (int, *apperrors.AppError) {
	if challengeID == "" || playerID == "" {
		return 0, errors.ValidationError("challenge id and player id are required")
	}
	if math.IsNaN(score) || math.IsInf(score, 0) {
		return 0, errors.InvalidScoreError(playerID)
	}

	if _, err := s.playerRepo.GetById(ctx, playerID); err != nil {
		if apperrors.IsCode(err, apperrors.CodeNotFound) {
			return 0, errors.UnknownPlayerError(playerID)
		}
		return 0, apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to look up player")
	}

	challenge, err := s.challengeRepo.GetById(ctx, challengeID)
	if err != nil {
		if apperrors.IsCode(err, apperrors.CodeNotFound) {
			return 0, errors.ChallengeNotFoundError(challengeID)
		}
		return 0, apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to look up challenge")
	}

	if challenge.Status != models.StatusActive {
		return 0, errors.ChallengeNotActiveError(challengeID)
	}
	if !s.opts.AllowHostSubmission && challenge.CreatedBy == playerID {
		return 0, errors.HostSubmissionError(challengeID, playerID)
	}

	if appErr := s.writeSubmission(ctx, challenge, playerID, score); appErr != nil {
		return 0, appErr
	}

	count, countErr := s.submissionRepo.CountByChallenge(ctx, challengeID)
	if countErr != nil {
		return 0, apperrors.Wrap(countErr, apperrors.CodeDatabaseError, "failed to count submissions")
	}

	s.logger.Info("Score submitted",
		"challenge_id", challengeID,
		"player_id", playerID,
		"submission_count", count,
	)

	if err := s.eventPublisher.PublishScoreSubmitted(ctx, challengeID, playerID, count); err != nil {
		s.logger.Warn("Score submitted event not delivered", "challenge_id", challengeID, "error", err)
	}

	s.applyTimerPolicy(ctx, challenge, count)

	required, appErr := s.requiredSubmissions(ctx, challenge)
	if appErr != nil {
		return 0, appErr
	}
	if count >= required {
		if err := s.finalize(ctx, challengeID, commonevents.TriggerAllSubmitted); err != nil {
			// A concurrent trigger already finalized; the submission itself
			// succeeded, so the caller still gets the count.
			if err.Code != apperrors.CodeConcurrencyConflict {
				return 0, err
			}
		}
	}

	return count, nil
}

func (s *challengeService) ListActive(ctx context.Context, excludeTurns bool) ([]models.ChallengeDetail, *apperrors.AppError) {
	challenges, err := s.challengeRepo.ListByStatus(ctx, models.StatusActive, true)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to list active challenges")
	}

	details := make([]models.ChallengeDetail, 0, len(challenges))
	for _, challenge := range challenges {
		if excludeTurns && challenge.IsTurns {
			continue
		}

		submissions, err := s.submissionRepo.ListByChallenge(ctx, challenge.ChallengeId)
		if err != nil {
			return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to list submissions")
		}

		details = append(details, models.ChallengeDetail{
			Challenge:   challenge,
			Submissions: submissions,
		})
	}

	return details, nil
}

func (s *challengeService) ListCompleted(ctx context.Context, excludeTurns bool) ([]models.ChallengeDetail, *apperrors.AppError) {
	challenges, err := s.challengeRepo.ListByStatus(ctx, models.StatusCompleted, true)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to list completed challenges")
	}

	details := make([]models.ChallengeDetail, 0, len(challenges))
	for _, challenge := range challenges {
		if excludeTurns && challenge.IsTurns {
			continue
		}

		results, err := s.resultRepo.ListByChallenge(ctx, challenge.ChallengeId)
		if err != nil {
			return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to list results")
		}

		details = append(details, models.ChallengeDetail{
			Challenge: challenge,
			Results:   results,
		})
	}

	return details, nil
}

// FinalizeDueChallenges is the deadline sweep. It finalizes every active
// challenge whose timer deadline has passed, with whatever submissions exist.
// A challenge that loses the finalize race to a concurrent trigger is
// skipped; the sweep interval is an operational choice, not a correctness
// requirement.
func (s *challengeService) FinalizeDueChallenges(ctx context.Context, now time.Time) (int, *apperrors.AppError) {
	challenges, err := s.challengeRepo.ListByStatus(ctx, models.StatusActive, false)
	if err != nil {
		return 0, apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to list active challenges")
	}

	finalized := 0
	for _, challenge := range challenges {
		if !challenge.DeadlinePassed(now) {
			continue
		}

		if appErr := s.finalize(ctx, challenge.ChallengeId, commonevents.TriggerDeadlineReached); appErr != nil {
			if appErr.Code == apperrors.CodeConcurrencyConflict {
				s.logger.Debug("Challenge already finalized", "challenge_id", challenge.ChallengeId)
				continue
			}
			return finalized, appErr
		}
		finalized++
	}

	return finalized, nil
}

// Private methods

func (s *challengeService) validateCreateInput(input CreateChallengeInput) *apperrors.AppError {
	if strings.TrimSpace(input.Name) == "" {
		return errors.ValidationError("challenge name is required")
	}
	if strings.TrimSpace(input.Description) == "" {
		return errors.ValidationError("challenge description is required")
	}
	if len(normalizeRules(input.Rules)) == 0 {
		return errors.ValidationError("at least one rule line is required")
	}
	if !input.ScoringType.Valid() {
		return errors.ValidationError("unknown scoring type: " + string(input.ScoringType))
	}
	if input.ScoringType == models.ClosestWins && input.TargetValue == nil {
		return errors.ValidationError("closest-wins challenges need a target value")
	}
	if strings.TrimSpace(input.HostId) == "" {
		return errors.ValidationError("host id is required")
	}
	return nil
}

// writeSubmission appends to the ledger atomically: a condition check that
// the challenge is still active plus a conditional put of the submission.
// The cancellation reasons tell which guard lost.
func (s *challengeService) writeSubmission(ctx context.Context, challenge *models.Challenge, playerID string, score float64) *apperrors.AppError {
	submission := &models.Submission{
		ChallengeId: challenge.ChallengeId,
		PlayerId:    playerID,
		Score:       score,
		SubmittedAt: s.now().UTC(),
	}

	putSubmission, err := s.submissionRepo.GetTransactionForAddingSubmission(ctx, submission)
	if err != nil {
		return apperrors.Wrap(err, apperrors.CodeObjectMarshalError, "failed to build submission write")
	}

	builder := database.NewTransactionBuilder()
	builder.AddConditionCheck(s.challengeRepo.GetActiveConditionCheck(ctx, challenge.ChallengeId))
	builder.AddPut(putSubmission)

	if txErr := s.transactionRepo.Execute(ctx, builder); txErr != nil {
		codes := database.TransactionCancellationCodes(txErr)
		if len(codes) == 2 {
			if codes[0] == "ConditionalCheckFailed" {
				return errors.ChallengeNotActiveError(challenge.ChallengeId)
			}
			if codes[1] == "ConditionalCheckFailed" {
				return errors.DuplicateSubmissionError(challenge.ChallengeId, playerID)
			}
		}
		return apperrors.Wrap(txErr, apperrors.CodeTransactionError, "failed to write submission")
	}

	return nil
}

// applyTimerPolicy starts or tightens the challenge timer for the new
// submission count. The conditional write keeps this idempotent and
// never-lengthening even when submissions race.
func (s *challengeService) applyTimerPolicy(ctx context.Context, challenge *models.Challenge, count int) {
	now := s.now().UTC()

	deadline, changed := scoring.NextDeadline(challenge.TimerDeadline, now, count)
	if !changed {
		return
	}

	startedAt := now
	if challenge.TimerStartedAt != nil {
		startedAt = *challenge.TimerStartedAt
	}

	applied, err := s.challengeRepo.TightenTimer(ctx, challenge.ChallengeId, startedAt, deadline)
	if err != nil {
		s.logger.Error("Failed to tighten challenge timer", "challenge_id", challenge.ChallengeId, "error", err)
		return
	}
	if !applied {
		return
	}

	s.logger.Info("Challenge timer tightened",
		"challenge_id", challenge.ChallengeId,
		"submission_count", count,
		"deadline", deadline,
	)

	if pubErr := s.eventPublisher.PublishTimerTightened(ctx, challenge.ChallengeId, deadline); pubErr != nil {
		s.logger.Warn("Timer tightened event not delivered", "challenge_id", challenge.ChallengeId, "error", pubErr)
	}
}

// requiredSubmissions is the full eligible set for the challenge: the whole
// roster, minus the host when host submission is off.
func (s *challengeService) requiredSubmissions(ctx context.Context, challenge *models.Challenge) (int, *apperrors.AppError) {
	players, err := s.playerRepo.GetAll(ctx)
	if err != nil {
		return 0, apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to list players")
	}

	required := len(players)
	if !s.opts.AllowHostSubmission {
		required--
	}
	return required, nil
}

// finalize resolves the ledger into a result batch and flips the challenge
// to completed in one transaction. The status condition on the flip makes
// this at-most-once: a second trigger observes the lost condition and gets a
// concurrency conflict instead of a second batch.
func (s *challengeService) finalize(ctx context.Context, challengeID, trigger string) *apperrors.AppError {
	challenge, err := s.challengeRepo.GetById(ctx, challengeID)
	if err != nil {
		return apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to load challenge for finalize")
	}
	if challenge.Status != models.StatusActive {
		return errors.FinalizeConflictError(challengeID)
	}

	submissions, err := s.submissionRepo.ListByChallenge(ctx, challengeID)
	if err != nil {
		return apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to list submissions for finalize")
	}

	players, err := s.playerRepo.GetAll(ctx)
	if err != nil {
		return apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to list players for finalize")
	}

	var target float64
	if challenge.TargetValue != nil {
		target = *challenge.TargetValue
	}

	ranked := scoring.Resolve(submissions, challenge.ScoringType, target, len(players))
	completedAt := s.now().UTC()

	builder := database.NewTransactionBuilder()
	builder.AddUpdate(s.challengeRepo.GetTransactionForCompleting(ctx, challenge, completedAt))

	for _, line := range ranked {
		result := &models.Result{
			ChallengeId: challengeID,
			PlayerId:    line.PlayerId,
			Rank:        line.Rank,
			Score:       line.Score,
			Points:      line.Points,
		}
		putResult, putErr := s.resultRepo.GetTransactionForAddingResult(ctx, result)
		if putErr != nil {
			return apperrors.Wrap(putErr, apperrors.CodeObjectMarshalError, "failed to build result write")
		}
		builder.AddPut(putResult)
	}

	if txErr := s.transactionRepo.Execute(ctx, builder); txErr != nil {
		if database.IsConditionalCheckFailure(txErr) {
			return errors.FinalizeConflictError(challengeID)
		}
		return apperrors.Wrap(txErr, apperrors.CodeTransactionError, "failed to finalize challenge")
	}

	s.logger.Info("Challenge finalized",
		"challenge_id", challengeID,
		"trigger", trigger,
		"result_count", len(ranked),
	)

	if pubErr := s.eventPublisher.PublishChallengeCompleted(ctx, challengeID, trigger, len(ranked)); pubErr != nil {
		s.logger.Warn("Challenge completed event not delivered", "challenge_id", challengeID, "error", pubErr)
	}

	return nil
}

func normalizeRules(rules []string) []string {
	normalized := make([]string, 0, len(rules))
	for _, rule := range rules {
		rule = strings.TrimSpace(rule)
		if rule != "" {
			normalized = append(normalized, rule)
		}
	}
	return normalized
}
