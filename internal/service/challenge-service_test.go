package service

import (
	"cmp"
	"context"
	"math"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scottwarrens/challengeboard/database"
	apperrors "github.com/scottwarrens/challengeboard/errors"
	commonevents "github.com/scottwarrens/challengeboard/events"
	"github.com/scottwarrens/challengeboard/logger"
	"github.com/scottwarrens/challengeboard/models"
)

// In-memory store shared by the fake repositories. Conditional writes and
// transactions behave like the real table: guards are checked atomically
// under the store lock and lost conditions surface as cancellation errors.
type fakeStore struct {
	mu          sync.Mutex
	challenges  map[string]*models.Challenge
	submissions map[string]map[string]models.Submission
	results     map[string][]models.Result
	players     []models.Player

	pendingSubmission *models.Submission
	pendingComplete   *pendingComplete
	pendingResults    []models.Result
}

type pendingComplete struct {
	challengeID string
	completedAt time.Time
}

func newFakeStore(players []models.Player) *fakeStore {
	return &fakeStore{
		challenges:  make(map[string]*models.Challenge),
		submissions: make(map[string]map[string]models.Submission),
		results:     make(map[string][]models.Result),
		players:     players,
	}
}

func canceledTransaction(codes ...string) error {
	reasons := make([]types.CancellationReason, len(codes))
	for i, code := range codes {
		reasons[i] = types.CancellationReason{Code: aws.String(code)}
	}
	return &types.TransactionCanceledException{
		Message:             aws.String("Transaction cancelled"),
		CancellationReasons: reasons,
	}
}

type fakeChallengeRepo struct{ store *fakeStore }

func (r *fakeChallengeRepo) Create(ctx context.Context, challenge *models.Challenge) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, exists := r.store.challenges[challenge.ChallengeId]; exists {
		return &types.ConditionalCheckFailedException{Message: aws.String("exists")}
	}
	stored := *challenge
	r.store.challenges[challenge.ChallengeId] = &stored
	return nil
}

func (r *fakeChallengeRepo) GetById(ctx context.Context, challengeID string) (*models.Challenge, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	stored, ok := r.store.challenges[challengeID]
	if !ok {
		return nil, apperrors.New(apperrors.CodeNotFound, "challenge not found")
	}
	copied := *stored
	return &copied, nil
}

func (r *fakeChallengeRepo) ListByStatus(ctx context.Context, status models.ChallengeStatus, newestFirst bool) ([]models.Challenge, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var challenges []models.Challenge
	for _, stored := range r.store.challenges {
		if stored.Status == status {
			challenges = append(challenges, *stored)
		}
	}
	slices.SortFunc(challenges, func(a, b models.Challenge) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			if newestFirst {
				return -c
			}
			return c
		}
		return cmp.Compare(a.ChallengeId, b.ChallengeId)
	})
	return challenges, nil
}

func (r *fakeChallengeRepo) TightenTimer(ctx context.Context, challengeID string, startedAt, deadline time.Time) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	stored, ok := r.store.challenges[challengeID]
	if !ok || stored.Status != models.StatusActive {
		return false, nil
	}
	if stored.TimerDeadline != nil && !deadline.Before(*stored.TimerDeadline) {
		return false, nil
	}
	if stored.TimerStartedAt == nil {
		started := startedAt
		stored.TimerStartedAt = &started
	}
	d := deadline
	stored.TimerDeadline = &d
	return true, nil
}

func (r *fakeChallengeRepo) GetTransactionForCompleting(ctx context.Context, challenge *models.Challenge, completedAt time.Time) types.Update {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.pendingComplete = &pendingComplete{
		challengeID: challenge.ChallengeId,
		completedAt: completedAt,
	}
	return types.Update{}
}

func (r *fakeChallengeRepo) GetActiveConditionCheck(ctx context.Context, challengeID string) types.ConditionCheck {
	return types.ConditionCheck{}
}

type fakeSubmissionRepo struct{ store *fakeStore }

func (r *fakeSubmissionRepo) ListByChallenge(ctx context.Context, challengeID string) ([]models.Submission, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var submissions []models.Submission
	for _, submission := range r.store.submissions[challengeID] {
		submissions = append(submissions, submission)
	}
	slices.SortFunc(submissions, func(a, b models.Submission) int {
		return cmp.Compare(a.PlayerId, b.PlayerId)
	})
	return submissions, nil
}

func (r *fakeSubmissionRepo) CountByChallenge(ctx context.Context, challengeID string) (int, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return len(r.store.submissions[challengeID]), nil
}

func (r *fakeSubmissionRepo) GetTransactionForAddingSubmission(ctx context.Context, submission *models.Submission) (types.Put, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	pending := *submission
	r.store.pendingSubmission = &pending
	return types.Put{}, nil
}

type fakeResultRepo struct{ store *fakeStore }

func (r *fakeResultRepo) ListByChallenge(ctx context.Context, challengeID string) ([]models.Result, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	results := make([]models.Result, len(r.store.results[challengeID]))
	copy(results, r.store.results[challengeID])
	return results, nil
}

func (r *fakeResultRepo) GetTransactionForAddingResult(ctx context.Context, result *models.Result) (types.Put, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.pendingResults = append(r.store.pendingResults, *result)
	return types.Put{}, nil
}

type fakePlayerRepo struct{ store *fakeStore }

func (r *fakePlayerRepo) GetAll(ctx context.Context) ([]models.Player, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	players := make([]models.Player, len(r.store.players))
	copy(players, r.store.players)
	return players, nil
}

func (r *fakePlayerRepo) GetById(ctx context.Context, playerID string) (*models.Player, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, player := range r.store.players {
		if player.PlayerId == playerID {
			copied := player
			return &copied, nil
		}
	}
	return nil, apperrors.New(apperrors.CodeNotFound, "player not found")
}

func (r *fakePlayerRepo) Seed(ctx context.Context, players []models.Player) error {
	return nil
}

type fakeTransactionRepo struct{ store *fakeStore }

func (r *fakeTransactionRepo) Execute(ctx context.Context, builder *database.TransactionBuilder) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if complete := r.store.pendingComplete; complete != nil {
		results := r.store.pendingResults
		r.store.pendingComplete = nil
		r.store.pendingResults = nil

		stored, ok := r.store.challenges[complete.challengeID]
		if !ok || stored.Status != models.StatusActive {
			return canceledTransaction("ConditionalCheckFailed")
		}
		stored.Status = models.StatusCompleted
		completedAt := complete.completedAt
		stored.CompletedAt = &completedAt
		r.store.results[complete.challengeID] = results
		return nil
	}

	if submission := r.store.pendingSubmission; submission != nil {
		r.store.pendingSubmission = nil

		stored, ok := r.store.challenges[submission.ChallengeId]
		if !ok || stored.Status != models.StatusActive {
			return canceledTransaction("ConditionalCheckFailed", "None")
		}
		if _, exists := r.store.submissions[submission.ChallengeId][submission.PlayerId]; exists {
			return canceledTransaction("None", "ConditionalCheckFailed")
		}
		if r.store.submissions[submission.ChallengeId] == nil {
			r.store.submissions[submission.ChallengeId] = make(map[string]models.Submission)
		}
		r.store.submissions[submission.ChallengeId][submission.PlayerId] = *submission
		return nil
	}

	return nil
}

type completedRecord struct {
	challengeID string
	trigger     string
	resultCount int
}

type fakeEventPublisher struct {
	mu        sync.Mutex
	created   []string
	submitted []string
	tightened []time.Time
	completed []completedRecord
}

func (p *fakeEventPublisher) PublishChallengeCreated(ctx context.Context, challengeID, name, hostID string, isTurns bool) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.created = append(p.created, challengeID)
	return nil
}

func (p *fakeEventPublisher) PublishScoreSubmitted(ctx context.Context, challengeID, playerID string, submissionCount int) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.submitted = append(p.submitted, playerID)
	return nil
}

func (p *fakeEventPublisher) PublishTimerTightened(ctx context.Context, challengeID string, deadline time.Time) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.tightened = append(p.tightened, deadline)
	return nil
}

func (p *fakeEventPublisher) PublishChallengeCompleted(ctx context.Context, challengeID, trigger string, resultCount int) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.completed = append(p.completed, completedRecord{challengeID, trigger, resultCount})
	return nil
}

func rosterPlayers() []models.Player {
	return []models.Player{
		{PlayerId: "triggz", Name: "Triggz", Color: "#f94144"},
		{PlayerId: "tyrillis", Name: "Tyrillis", Color: "#f3722c"},
		{PlayerId: "ivory", Name: "Ivory", Color: "#43aa8b"},
		{PlayerId: "scumby", Name: "Scumby", Color: "#577590"},
		{PlayerId: "adz", Name: "Adz", Color: "#f9c74f"},
	}
}

type engineFixture struct {
	svc   *challengeService
	store *fakeStore
	pub   *fakeEventPublisher
	now   time.Time
}

func newEngine(t *testing.T, opts EngineOptions) *engineFixture {
	t.Helper()

	store := newFakeStore(rosterPlayers())
	pub := &fakeEventPublisher{}

	fixture := &engineFixture{
		store: store,
		pub:   pub,
		now:   time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC),
	}

	svc := NewChallengeService(
		&fakeChallengeRepo{store: store},
		&fakeSubmissionRepo{store: store},
		&fakeResultRepo{store: store},
		&fakePlayerRepo{store: store},
		&fakeTransactionRepo{store: store},
		pub,
		logger.New(logger.Config{Level: "error", Format: "json", Service: "test"}),
		opts,
	).(*challengeService)
	svc.now = func() time.Time { return fixture.now }

	fixture.svc = svc
	return fixture
}

func (f *engineFixture) advance(d time.Duration) {
	f.now = f.now.Add(d)
}

func (f *engineFixture) createChallenge(t *testing.T, host string) *models.Challenge {
	t.Helper()

	challenge, appErr := f.svc.CreateChallenge(context.Background(), CreateChallengeInput{
		Name:        "Longest drive",
		Description: "Longest drive on the back nine",
		Rules:       []string{"One attempt per round", "Driver only"},
		ScoringType: models.HighestWins,
		HostId:      host,
	})
	require.Nil(t, appErr)
	return challenge
}

func TestCreateChallenge(t *testing.T) {
	f := newEngine(t, EngineOptions{})

	challenge := f.createChallenge(t, "triggz")

	assert.NotEmpty(t, challenge.ChallengeId)
	assert.Equal(t, models.StatusActive, challenge.Status)
	assert.Equal(t, "triggz", challenge.CreatedBy)
	assert.Nil(t, challenge.TimerDeadline)
	assert.Equal(t, []string{challenge.ChallengeId}, f.pub.created)
}

func TestCreateChallenge_Validation(t *testing.T) {
	f := newEngine(t, EngineOptions{})
	target := 100.0

	valid := CreateChallengeInput{
		Name:        "Longest drive",
		Description: "Longest drive on the back nine",
		Rules:       []string{"Driver only"},
		ScoringType: models.HighestWins,
		HostId:      "triggz",
	}

	tests := []struct {
		name   string
		mutate func(in *CreateChallengeInput)
	}{
		{"empty name", func(in *CreateChallengeInput) { in.Name = "  " }},
		{"empty description", func(in *CreateChallengeInput) { in.Description = "" }},
		{"no rules", func(in *CreateChallengeInput) { in.Rules = []string{"  ", ""} }},
		{"bad scoring type", func(in *CreateChallengeInput) { in.ScoringType = "most-vibes" }},
		{"closest-wins without target", func(in *CreateChallengeInput) { in.ScoringType = models.ClosestWins; in.TargetValue = nil }},
		{"empty host", func(in *CreateChallengeInput) { in.HostId = "" }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			input := valid
			input.TargetValue = &target
			tc.mutate(&input)

			_, appErr := f.svc.CreateChallenge(context.Background(), input)
			require.NotNil(t, appErr)
			assert.Equal(t, apperrors.CodeValidation, appErr.Code)
		})
	}
}

func TestCreateChallenge_UnknownHost(t *testing.T) {
	f := newEngine(t, EngineOptions{})

	_, appErr := f.svc.CreateChallenge(context.Background(), CreateChallengeInput{
		Name:        "Longest drive",
		Description: "Longest drive on the back nine",
		Rules:       []string{"Driver only"},
		ScoringType: models.HighestWins,
		HostId:      "stranger",
	})
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.CodeValidation, appErr.Code)
}

func TestSubmitScore_UnknownChallenge(t *testing.T) {
	f := newEngine(t, EngineOptions{})

	_, appErr := f.svc.SubmitScore(context.Background(), "missing", "tyrillis", 10)
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.CodeNotFound, appErr.Code)
}

func TestSubmitScore_UnknownPlayer(t *testing.T) {
	f := newEngine(t, EngineOptions{})
	challenge := f.createChallenge(t, "triggz")

	_, appErr := f.svc.SubmitScore(context.Background(), challenge.ChallengeId, "stranger", 10)
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.CodeValidation, appErr.Code)
}

func TestSubmitScore_NonFiniteScore(t *testing.T) {
	f := newEngine(t, EngineOptions{})
	challenge := f.createChallenge(t, "triggz")

	for _, score := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		_, appErr := f.svc.SubmitScore(context.Background(), challenge.ChallengeId, "tyrillis", score)
		require.NotNil(t, appErr)
		assert.Equal(t, apperrors.CodeInvalidScore, appErr.Code)
	}
}

func TestSubmitScore_HostBlockedByDefault(t *testing.T) {
	f := newEngine(t, EngineOptions{})
	challenge := f.createChallenge(t, "triggz")

	_, appErr := f.svc.SubmitScore(context.Background(), challenge.ChallengeId, "triggz", 10)
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.CodeValidation, appErr.Code)
}

func TestSubmitScore_HostAllowedWhenEnabled(t *testing.T) {
	f := newEngine(t, EngineOptions{AllowHostSubmission: true})
	challenge := f.createChallenge(t, "triggz")

	count, appErr := f.svc.SubmitScore(context.Background(), challenge.ChallengeId, "triggz", 10)
	require.Nil(t, appErr)
	assert.Equal(t, 1, count)
}

func TestSubmitScore_Duplicate(t *testing.T) {
	f := newEngine(t, EngineOptions{})
	challenge := f.createChallenge(t, "triggz")

	count, appErr := f.svc.SubmitScore(context.Background(), challenge.ChallengeId, "tyrillis", 41.2)
	require.Nil(t, appErr)
	assert.Equal(t, 1, count)

	_, appErr = f.svc.SubmitScore(context.Background(), challenge.ChallengeId, "tyrillis", 50)
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.CodeDuplicateSubmission, appErr.Code)

	// The first score stands.
	stored := f.store.submissions[challenge.ChallengeId]["tyrillis"]
	assert.Equal(t, 41.2, stored.Score)
}

func TestSubmitScore_TimerStartsAndTightens(t *testing.T) {
	f := newEngine(t, EngineOptions{})
	challenge := f.createChallenge(t, "triggz")
	ctx := context.Background()

	_, appErr := f.svc.SubmitScore(ctx, challenge.ChallengeId, "tyrillis", 10)
	require.Nil(t, appErr)
	assert.Nil(t, f.store.challenges[challenge.ChallengeId].TimerDeadline)

	f.advance(24 * time.Hour)
	secondAt := f.now
	_, appErr = f.svc.SubmitScore(ctx, challenge.ChallengeId, "ivory", 20)
	require.Nil(t, appErr)

	stored := f.store.challenges[challenge.ChallengeId]
	require.NotNil(t, stored.TimerDeadline)
	assert.Equal(t, secondAt.Add(30*24*time.Hour), *stored.TimerDeadline)
	assert.Equal(t, secondAt, *stored.TimerStartedAt)

	f.advance(5 * 24 * time.Hour)
	thirdAt := f.now
	_, appErr = f.svc.SubmitScore(ctx, challenge.ChallengeId, "scumby", 30)
	require.Nil(t, appErr)

	stored = f.store.challenges[challenge.ChallengeId]
	assert.Equal(t, thirdAt.Add(21*24*time.Hour), *stored.TimerDeadline)
	// Start time is pinned to when the timer first engaged.
	assert.Equal(t, secondAt, *stored.TimerStartedAt)
	assert.Len(t, f.pub.tightened, 2)
}

func TestSubmitScore_TimerNeverLengthens(t *testing.T) {
	f := newEngine(t, EngineOptions{})
	challenge := f.createChallenge(t, "triggz")
	ctx := context.Background()

	_, appErr := f.svc.SubmitScore(ctx, challenge.ChallengeId, "tyrillis", 10)
	require.Nil(t, appErr)
	_, appErr = f.svc.SubmitScore(ctx, challenge.ChallengeId, "ivory", 20)
	require.Nil(t, appErr)

	deadline := *f.store.challenges[challenge.ChallengeId].TimerDeadline

	// 28 days in, a third submission's 21-day window would end after the
	// running deadline. It must not move.
	f.advance(28 * 24 * time.Hour)
	_, appErr = f.svc.SubmitScore(ctx, challenge.ChallengeId, "scumby", 30)
	require.Nil(t, appErr)

	assert.Equal(t, deadline, *f.store.challenges[challenge.ChallengeId].TimerDeadline)
	assert.Len(t, f.pub.tightened, 1)
}

func TestSubmitScore_FullRosterFinalizes(t *testing.T) {
	f := newEngine(t, EngineOptions{})
	challenge := f.createChallenge(t, "triggz")
	ctx := context.Background()

	scores := map[string]float64{
		"tyrillis": 38.0,
		"ivory":    3.0,
		"scumby":   41.2,
		"adz":      12.5,
	}
	for _, player := range []string{"tyrillis", "ivory", "scumby", "adz"} {
		f.advance(time.Minute)
		_, appErr := f.svc.SubmitScore(ctx, challenge.ChallengeId, player, scores[player])
		require.Nil(t, appErr)
	}

	stored := f.store.challenges[challenge.ChallengeId]
	assert.Equal(t, models.StatusCompleted, stored.Status)
	require.NotNil(t, stored.CompletedAt)

	results := f.store.results[challenge.ChallengeId]
	require.Len(t, results, 4)
	assert.Equal(t, "scumby", results[0].PlayerId)
	assert.Equal(t, 1, results[0].Rank)
	assert.Equal(t, 5, results[0].Points)
	assert.Equal(t, "ivory", results[3].PlayerId)
	assert.Equal(t, 2, results[3].Points)

	require.Len(t, f.pub.completed, 1)
	assert.Equal(t, commonevents.TriggerAllSubmitted, f.pub.completed[0].trigger)
	assert.Equal(t, 4, f.pub.completed[0].resultCount)
}

func TestSubmitScore_CompletedChallengeRejects(t *testing.T) {
	f := newEngine(t, EngineOptions{})
	challenge := f.createChallenge(t, "triggz")
	ctx := context.Background()

	for _, player := range []string{"tyrillis", "ivory", "scumby"} {
		_, appErr := f.svc.SubmitScore(ctx, challenge.ChallengeId, player, 10)
		require.Nil(t, appErr)
	}
	_, appErr := f.svc.SubmitScore(ctx, challenge.ChallengeId, "adz", 40)
	require.Nil(t, appErr)
	require.Equal(t, models.StatusCompleted, f.store.challenges[challenge.ChallengeId].Status)

	// Late arrival after the roster completed it.
	_, appErr = f.svc.SubmitScore(ctx, challenge.ChallengeId, "adz", 99)
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.CodeChallengeNotActive, appErr.Code)
}

func TestFinalizeDueChallenges(t *testing.T) {
	f := newEngine(t, EngineOptions{})
	ctx := context.Background()

	due := f.createChallenge(t, "triggz")
	f.advance(time.Minute)
	fresh := f.createChallenge(t, "tyrillis")

	for _, player := range []string{"tyrillis", "ivory", "scumby"} {
		f.advance(time.Minute)
		_, appErr := f.svc.SubmitScore(ctx, due.ChallengeId, player, 10)
		require.Nil(t, appErr)
	}
	require.NotNil(t, f.store.challenges[due.ChallengeId].TimerDeadline)

	// Before the deadline nothing happens.
	finalized, appErr := f.svc.FinalizeDueChallenges(ctx, f.now)
	require.Nil(t, appErr)
	assert.Equal(t, 0, finalized)

	after := f.store.challenges[due.ChallengeId].TimerDeadline.Add(time.Minute)
	finalized, appErr = f.svc.FinalizeDueChallenges(ctx, after)
	require.Nil(t, appErr)
	assert.Equal(t, 1, finalized)

	assert.Equal(t, models.StatusCompleted, f.store.challenges[due.ChallengeId].Status)
	assert.Equal(t, models.StatusActive, f.store.challenges[fresh.ChallengeId].Status)

	// Partial ledger: only the three submitters get results.
	assert.Len(t, f.store.results[due.ChallengeId], 3)
	require.Len(t, f.pub.completed, 1)
	assert.Equal(t, commonevents.TriggerDeadlineReached, f.pub.completed[0].trigger)
}

func TestFinalize_AtMostOnce(t *testing.T) {
	f := newEngine(t, EngineOptions{})
	challenge := f.createChallenge(t, "triggz")
	ctx := context.Background()

	_, appErr := f.svc.SubmitScore(ctx, challenge.ChallengeId, "tyrillis", 10)
	require.Nil(t, appErr)

	require.Nil(t, f.svc.finalize(ctx, challenge.ChallengeId, commonevents.TriggerDeadlineReached))

	appErr = f.svc.finalize(ctx, challenge.ChallengeId, commonevents.TriggerDeadlineReached)
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.CodeConcurrencyConflict, appErr.Code)

	// One result batch, one completed event.
	assert.Len(t, f.store.results[challenge.ChallengeId], 1)
	assert.Len(t, f.pub.completed, 1)
}

func TestListActiveAndCompleted_TurnsFilter(t *testing.T) {
	f := newEngine(t, EngineOptions{})
	ctx := context.Background()

	regular := f.createChallenge(t, "triggz")

	turns, appErr := f.svc.CreateChallenge(ctx, CreateChallengeInput{
		Name:        "Turn order roulette",
		Description: "Decided by turn order",
		Rules:       []string{"Standard turn rules"},
		ScoringType: models.LowestWins,
		HostId:      "ivory",
		IsTurns:     true,
	})
	require.Nil(t, appErr)

	active, appErr := f.svc.ListActive(ctx, false)
	require.Nil(t, appErr)
	assert.Len(t, active, 2)

	filtered, appErr := f.svc.ListActive(ctx, true)
	require.Nil(t, appErr)
	require.Len(t, filtered, 1)
	assert.Equal(t, regular.ChallengeId, filtered[0].Challenge.ChallengeId)

	// Complete the turns challenge and check the completed view filters too.
	for _, player := range []string{"tyrillis", "scumby", "adz", "triggz"} {
		_, appErr := f.svc.SubmitScore(ctx, turns.ChallengeId, player, 5)
		require.Nil(t, appErr)
	}

	completed, appErr := f.svc.ListCompleted(ctx, false)
	require.Nil(t, appErr)
	require.Len(t, completed, 1)
	assert.Len(t, completed[0].Results, 4)

	completedFiltered, appErr := f.svc.ListCompleted(ctx, true)
	require.Nil(t, appErr)
	assert.Empty(t, completedFiltered)
}
