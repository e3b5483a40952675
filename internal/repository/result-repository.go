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

type ResultRepository interface {
	ListByChallenge(ctx context.Context, challengeID string) ([]models.Result, error)

	// Transactions
	GetTransactionForAddingResult(ctx context.Context, result *models.Result) (types.Put, error)
}

type resultRepo struct {
	db *database.DynamoDBClient
}

func NewResultRepository(db *database.DynamoDBClient) ResultRepository {
	return &resultRepo{db: db}
}

func (r *resultRepo) ListByChallenge(ctx context.Context, challengeID string) ([]models.Result, error) {
	result, err := r.db.Client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.db.Table()),
		KeyConditionExpression: aws.String("PK = :pk AND begins_with(SK, :prefix)"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pk":     &types.AttributeValueMemberS{Value: models.ChallengePK(challengeID)},
			":prefix": &types.AttributeValueMemberS{Value: models.ResultSKPrefix()},
		},
	})

	if err != nil {
		return nil, fmt.Errorf("failed to list results: %w", err)
	}

	var results []models.Result
	if err := attributevalue.UnmarshalListOfMaps(result.Items, &results); err != nil {
		return nil, fmt.Errorf("failed to unmarshal results: %w", err)
	}

	return results, nil
}

// GetTransactionForAddingResult puts one result line of the finalize batch.
// Results only ever land inside the completing transaction, so the
// not-exists condition never fires unless the at-most-once guard was broken.
func (r *resultRepo) GetTransactionForAddingResult(ctx context.Context, result *models.Result) (types.Put, error) {
	result.PK = models.ChallengePK(result.ChallengeId)
	result.SK = models.ResultSK(result.PlayerId)

	item, err := attributevalue.MarshalMap(result)
	if err != nil {
		return types.Put{}, fmt.Errorf("failed to marshal result: %w", err)
	}

	return types.Put{
		TableName:           aws.String(r.db.Table()),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(PK) AND attribute_not_exists(SK)"),
	}, nil
}
