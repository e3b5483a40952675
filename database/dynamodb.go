package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	aws_config "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/scottwarrens/challengeboard/config"
)

type DynamoDBClient struct {
	Client    *dynamodb.Client
	TableName string
}

func NewDynamoDBClient(cfg *config.Config) (*DynamoDBClient, error) {
	ctx := context.Background()

	var awsCfg aws.Config
	var err error

	if cfg.DynamoDB.UseLocalEndpoint {
		// Local DynamoDB for development
		awsCfg, err = aws_config.LoadDefaultConfig(ctx,
			aws_config.WithRegion(cfg.AWS.Region),
			aws_config.WithBaseEndpoint(cfg.AWS.Endpoint),
			aws_config.WithCredentialsProvider(
				credentials.NewStaticCredentialsProvider("dummy", "dummy", ""),
			),
		)
	} else {
		awsCfg, err = aws_config.LoadDefaultConfig(ctx,
			aws_config.WithRegion(cfg.AWS.Region),
		)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := dynamodb.NewFromConfig(awsCfg, func(o *dynamodb.Options) {
		o.RetryMaxAttempts = cfg.DynamoDB.MaxRetries
	})

	return &DynamoDBClient{
		Client:    client,
		TableName: cfg.DynamoDB.TableName,
	}, nil
}

// Helper method to get table name
func (c *DynamoDBClient) Table() string {
	return c.TableName
}

// IsConditionalCheckFailure reports whether err is a lost conditional write,
// either on a single item or inside a transaction. The engine's uniqueness and
// at-most-once guarantees surface through this check.
func IsConditionalCheckFailure(err error) bool {
	var ccf *types.ConditionalCheckFailedException
	if errors.As(err, &ccf) {
		return true
	}

	var tcx *types.TransactionCanceledException
	if errors.As(err, &tcx) {
		for _, reason := range tcx.CancellationReasons {
			if reason.Code != nil && *reason.Code == "ConditionalCheckFailed" {
				return true
			}
		}
	}
	return false
}

// TransactionCancellationCodes returns the per-item cancellation reason codes
// of a failed TransactWriteItems call, in item order, or nil when err is not a
// transaction cancellation. Callers use the item position to decode which
// condition lost the race.
func TransactionCancellationCodes(err error) []string {
	var tcx *types.TransactionCanceledException
	if !errors.As(err, &tcx) {
		return nil
	}

	codes := make([]string, 0, len(tcx.CancellationReasons))
	for _, reason := range tcx.CancellationReasons {
		if reason.Code != nil {
			codes = append(codes, *reason.Code)
		} else {
			codes = append(codes, "None")
		}
	}
	return codes
}
