package repository

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/scottwarrens/challengeboard/database"
	"github.com/scottwarrens/challengeboard/models"
)

type SubmissionRepository interface {
	ListByChallenge(ctx context.Context, challengeID string) ([]models.Submission, error)
	CountByChallenge(ctx context.Context, challengeID string) (int, error)

	// Transactions
	GetTransactionForAddingSubmission(ctx context.Context, submission *models.Submission) (types.Put, error)
}

type submissionRepo struct {
	db *database.DynamoDBClient
}

func NewSubmissionRepository(db *database.DynamoDBClient) SubmissionRepository {
	return &submissionRepo{db: db}
}

func (r *submissionRepo) ListByChallenge(ctx context.Context, challengeID string) ([]models.Submission, error) {
	result, err := r.db.Client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.db.Table()),
		KeyConditionExpression: aws.String("PK = :pk AND begins_with(SK, :prefix)"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pk":     &types.AttributeValueMemberS{Value: models.ChallengePK(challengeID)},
			":prefix": &types.AttributeValueMemberS{Value: models.SubmissionSKPrefix()},
		},
	})

	if err != nil {
		return nil, fmt.Errorf("failed to list submissions: %w", err)
	}

	var submissions []models.Submission
	if err := attributevalue.UnmarshalListOfMaps(result.Items, &submissions); err != nil {
		return nil, fmt.Errorf("failed to unmarshal submissions: %w", err)
	}

	return submissions, nil
}

func (r *submissionRepo) CountByChallenge(ctx context.Context, challengeID string) (int, error) {
	result, err := r.db.Client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.db.Table()),
		KeyConditionExpression: aws.String("PK = :pk AND begins_with(SK, :prefix)"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pk":     &types.AttributeValueMemberS{Value: models.ChallengePK(challengeID)},
			":prefix": &types.AttributeValueMemberS{Value: models.SubmissionSKPrefix()},
		},
		Select: types.SelectCount,
	})

	if err != nil {
		return 0, fmt.Errorf("failed to count submissions: %w", err)
	}

	return int(result.Count), nil
}

// GetTransactionForAddingSubmission puts the submission with a not-exists
// condition: the (challenge, player) key is unique, so a duplicate attempt
// loses the conditional check instead of overwriting.
func (r *submissionRepo) GetTransactionForAddingSubmission(ctx context.Context, submission *models.Submission) (types.Put, error) {
	submission.PK = models.ChallengePK(submission.ChallengeId)
	submission.SK = models.SubmissionSK(submission.PlayerId)

	item, err := attributevalue.MarshalMap(submission)
	if err != nil {
		return types.Put{}, fmt.Errorf("failed to marshal submission: %w", err)
	}

	return types.Put{
		TableName:           aws.String(r.db.Table()),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(PK) AND attribute_not_exists(SK)"),
	}, nil
}
