package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/scottwarrens/challengeboard/database"
	"github.com/scottwarrens/challengeboard/errors"
	"github.com/scottwarrens/challengeboard/models"
)

type ChallengeRepository interface {
	Create(ctx context.Context, challenge *models.Challenge) error
	GetById(ctx context.Context, challengeID string) (*models.Challenge, error)
	ListByStatus(ctx context.Context, status models.ChallengeStatus, newestFirst bool) ([]models.Challenge, error)
	TightenTimer(ctx context.Context, challengeID string, startedAt, deadline time.Time) (bool, error)

	// Transactions
	GetTransactionForCompleting(ctx context.Context, challenge *models.Challenge, completedAt time.Time) types.Update
	GetActiveConditionCheck(ctx context.Context, challengeID string) types.ConditionCheck
}

type challengeRepo struct {
	db *database.DynamoDBClient
}

func NewChallengeRepository(db *database.DynamoDBClient) ChallengeRepository {
	return &challengeRepo{db: db}
}

func (r *challengeRepo) Create(ctx context.Context, challenge *models.Challenge) error {
	challenge.PK = models.ChallengePK(challenge.ChallengeId)
	challenge.SK = models.MetaSK()
	challenge.GSI1PK = models.StatusGSI1PK(challenge.Status)
	challenge.GSI1SK = models.CreatedGSI1SK(challenge.CreatedAt)

	item, err := attributevalue.MarshalMap(challenge)
	if err != nil {
		return fmt.Errorf("failed to marshal challenge: %w", err)
	}

	_, err = r.db.Client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.db.Table()),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(PK)"),
	})

	if err != nil {
		return fmt.Errorf("failed to create challenge: %w", err)
	}

	return nil
}

func (r *challengeRepo) GetById(ctx context.Context, challengeID string) (*models.Challenge, error) {
	result, err := r.db.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.db.Table()),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: models.ChallengePK(challengeID)},
			"SK": &types.AttributeValueMemberS{Value: models.MetaSK()},
		},
	})

	if err != nil {
		return nil, fmt.Errorf("failed to get challenge: %w", err)
	}

	if result.Item == nil {
		return nil, errors.New(errors.CodeNotFound, "challenge not found")
	}

	var challenge models.Challenge
	if err := attributevalue.UnmarshalMap(result.Item, &challenge); err != nil {
		return nil, fmt.Errorf("failed to unmarshal challenge: %w", err)
	}

	return &challenge, nil
}

func (r *challengeRepo) ListByStatus(ctx context.Context, status models.ChallengeStatus, newestFirst bool) ([]models.Challenge, error) {
	result, err := r.db.Client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.db.Table()),
		IndexName:              aws.String("GSI1"),
		KeyConditionExpression: aws.String("GSI1PK = :status"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":status": &types.AttributeValueMemberS{Value: models.StatusGSI1PK(status)},
		},
		ScanIndexForward: aws.Bool(!newestFirst),
	})

	if err != nil {
		return nil, fmt.Errorf("failed to list challenges by status: %w", err)
	}

	var challenges []models.Challenge
	if err := attributevalue.UnmarshalListOfMaps(result.Items, &challenges); err != nil {
		return nil, fmt.Errorf("failed to unmarshal challenges: %w", err)
	}

	return challenges, nil
}

// TightenTimer writes the timer state only if the challenge is still active
// and the new deadline starts a timer or moves the existing one earlier. A
// lost conditional check means a tighter deadline already landed, which is
// reported as (false, nil) since there is nothing left to do.
func (r *challengeRepo) TightenTimer(ctx context.Context, challengeID string, startedAt, deadline time.Time) (bool, error) {
	_, err := r.db.Client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.db.Table()),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: models.ChallengePK(challengeID)},
			"SK": &types.AttributeValueMemberS{Value: models.MetaSK()},
		},
		UpdateExpression: aws.String("SET timer_started_at = if_not_exists(timer_started_at, :startedAt), timer_deadline = :deadline"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":startedAt": &types.AttributeValueMemberS{Value: startedAt.UTC().Format(time.RFC3339Nano)},
			":deadline":  &types.AttributeValueMemberS{Value: deadline.UTC().Format(time.RFC3339Nano)},
			":active":    &types.AttributeValueMemberS{Value: string(models.StatusActive)},
		},
		ExpressionAttributeNames: map[string]string{
			"#status": "status",
		},
		ConditionExpression: aws.String("attribute_exists(PK) AND #status = :active AND (attribute_not_exists(timer_deadline) OR timer_deadline > :deadline)"),
	})

	if err != nil {
		if database.IsConditionalCheckFailure(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to tighten challenge timer: %w", err)
	}

	return true, nil
}

// GetTransactionForCompleting flips the challenge to completed inside the
// finalize transaction. The status condition is the at-most-once guard: only
// the transaction that still observes an active challenge commits.
func (r *challengeRepo) GetTransactionForCompleting(ctx context.Context, challenge *models.Challenge, completedAt time.Time) types.Update {
	return types.Update{
		TableName: aws.String(r.db.Table()),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: models.ChallengePK(challenge.ChallengeId)},
			"SK": &types.AttributeValueMemberS{Value: models.MetaSK()},
		},
		UpdateExpression: aws.String("SET #status = :completed, completed_at = :completedAt, GSI1PK = :gsi1pk, GSI1SK = :gsi1sk"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":completed":   &types.AttributeValueMemberS{Value: string(models.StatusCompleted)},
			":active":      &types.AttributeValueMemberS{Value: string(models.StatusActive)},
			":completedAt": &types.AttributeValueMemberS{Value: completedAt.UTC().Format(time.RFC3339Nano)},
			":gsi1pk":      &types.AttributeValueMemberS{Value: models.StatusGSI1PK(models.StatusCompleted)},
			":gsi1sk":      &types.AttributeValueMemberS{Value: models.CompletedGSI1SK(completedAt)},
		},
		ExpressionAttributeNames: map[string]string{
			"#status": "status",
		},
		ConditionExpression: aws.String("attribute_exists(PK) AND #status = :active"),
	}
}

// GetActiveConditionCheck guards submission writes: the transaction fails if
// the challenge is missing or no longer active.
func (r *challengeRepo) GetActiveConditionCheck(ctx context.Context, challengeID string) types.ConditionCheck {
	return types.ConditionCheck{
		TableName: aws.String(r.db.Table()),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: models.ChallengePK(challengeID)},
			"SK": &types.AttributeValueMemberS{Value: models.MetaSK()},
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":active": &types.AttributeValueMemberS{Value: string(models.StatusActive)},
		},
		ExpressionAttributeNames: map[string]string{
			"#status": "status",
		},
		ConditionExpression: aws.String("attribute_exists(PK) AND #status = :active"),
	}
}
