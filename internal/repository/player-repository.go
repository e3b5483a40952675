package repository

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/scottwarrens/challengeboard/database"
	"github.com/scottwarrens/challengeboard/errors"
	"github.com/scottwarrens/challengeboard/models"
)

type PlayerRepository interface {
	GetAll(ctx context.Context) ([]models.Player, error)
	GetById(ctx context.Context, playerID string) (*models.Player, error)
	Seed(ctx context.Context, players []models.Player) error
}

type playerRepo struct {
	db *database.DynamoDBClient
}

func NewPlayerRepository(db *database.DynamoDBClient) PlayerRepository {
	return &playerRepo{db: db}
}

func (r *playerRepo) GetAll(ctx context.Context) ([]models.Player, error) {
	result, err := r.db.Client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.db.Table()),
		IndexName:              aws.String("GSI1"),
		KeyConditionExpression: aws.String("GSI1PK = :player"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":player": &types.AttributeValueMemberS{Value: models.PlayerGSI1PK()},
		},
	})

	if err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}

	var players []models.Player
	if err := attributevalue.UnmarshalListOfMaps(result.Items, &players); err != nil {
		return nil, fmt.Errorf("failed to unmarshal players: %w", err)
	}

	return players, nil
}

func (r *playerRepo) GetById(ctx context.Context, playerID string) (*models.Player, error) {
	result, err := r.db.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.db.Table()),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: models.PlayerPK(playerID)},
			"SK": &types.AttributeValueMemberS{Value: models.ProfileSK()},
		},
	})

	if err != nil {
		return nil, fmt.Errorf("failed to get player: %w", err)
	}

	if result.Item == nil {
		return nil, errors.New(errors.CodeNotFound, "player not found")
	}

	var player models.Player
	if err := attributevalue.UnmarshalMap(result.Item, &player); err != nil {
		return nil, fmt.Errorf("failed to unmarshal player: %w", err)
	}

	return &player, nil
}

// Seed writes missing roster profiles. Existing players are left untouched so
// the registry stays immutable after first boot.
func (r *playerRepo) Seed(ctx context.Context, players []models.Player) error {
	for _, player := range players {
		player.PK = models.PlayerPK(player.PlayerId)
		player.SK = models.ProfileSK()
		player.GSI1PK = models.PlayerGSI1PK()
		player.GSI1SK = models.PlayerNameGSI1SK(player.Name)

		item, err := attributevalue.MarshalMap(player)
		if err != nil {
			return fmt.Errorf("failed to marshal player: %w", err)
		}

		_, err = r.db.Client.PutItem(ctx, &dynamodb.PutItemInput{
			TableName:           aws.String(r.db.Table()),
			Item:                item,
			ConditionExpression: aws.String("attribute_not_exists(PK)"),
		})

		if err != nil && !database.IsConditionalCheckFailure(err) {
			return fmt.Errorf("failed to seed player %s: %w", player.PlayerId, err)
		}
	}

	return nil
}
