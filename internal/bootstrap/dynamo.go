package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/custsvc/interactions-api/internal/core/query"
	"github.com/custsvc/interactions-api/internal/logging"
	"github.com/custsvc/interactions-api/internal/store"
)

const (
	// DynamoDB accepts at most 25 put requests per BatchWriteItem call.
	batchWriteLimit = 25
	// Unprocessed items are resubmitted this many times before giving up.
	maxBatchAttempts = 3
)

// DynamoAdminAPI is the subset of *dynamodb.Client used to provision the table.
type DynamoAdminAPI interface {
	CreateTable(ctx context.Context, params *dynamodb.CreateTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.CreateTableOutput, error)
	DescribeTable(ctx context.Context, params *dynamodb.DescribeTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DescribeTableOutput, error)
	BatchWriteItem(ctx context.Context, params *dynamodb.BatchWriteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.BatchWriteItemOutput, error)
}

// EnsureDynamoTable creates table (HASH account_number, RANGE timestamp) if it
// does not exist and waits up to maxWait for it to become active.
func EnsureDynamoTable(ctx context.Context, client DynamoAdminAPI, table string, maxWait time.Duration, logger logging.Logger) error {
	logger.Info("creating table", "table", table)
	_, err := client.CreateTable(ctx, &dynamodb.CreateTableInput{
		TableName: aws.String(table),
		KeySchema: []types.KeySchemaElement{
			{AttributeName: aws.String(query.AttrAccountNumber), KeyType: types.KeyTypeHash},
			{AttributeName: aws.String(query.AttrTimestamp), KeyType: types.KeyTypeRange},
		},
		AttributeDefinitions: []types.AttributeDefinition{
			{AttributeName: aws.String(query.AttrAccountNumber), AttributeType: types.ScalarAttributeTypeS},
			{AttributeName: aws.String(query.AttrTimestamp), AttributeType: types.ScalarAttributeTypeS},
		},
		ProvisionedThroughput: &types.ProvisionedThroughput{
			ReadCapacityUnits:  aws.Int64(5),
			WriteCapacityUnits: aws.Int64(5),
		},
	})
	var inUse *types.ResourceInUseException
	switch {
	case errors.As(err, &inUse):
		logger.Info("table already exists", "table", table)
	case err != nil:
		return fmt.Errorf("create table %s: %w", table, err)
	}

	waiter := dynamodb.NewTableExistsWaiter(client)
	if err := waiter.Wait(ctx, &dynamodb.DescribeTableInput{TableName: aws.String(table)}, maxWait); err != nil {
		return fmt.Errorf("wait for table %s: %w", table, err)
	}
	logger.Info("table ready", "table", table)
	return nil
}

// LoadDynamoItems writes items to table in BatchWriteItem chunks.
func LoadDynamoItems(ctx context.Context, client DynamoAdminAPI, table string, items []store.Interaction) error {
	for start := 0; start < len(items); start += batchWriteLimit {
		end := min(start+batchWriteLimit, len(items))
		reqs := make([]types.WriteRequest, 0, end-start)
		for _, it := range items[start:end] {
			av, err := attributevalue.MarshalMap(it)
			if err != nil {
				return fmt.Errorf("marshal %s: %w", it.InteractionID, err)
			}
			reqs = append(reqs, types.WriteRequest{PutRequest: &types.PutRequest{Item: av}})
		}

		pending := map[string][]types.WriteRequest{table: reqs}
		for attempt := 0; len(pending) > 0; attempt++ {
			if attempt == maxBatchAttempts {
				return fmt.Errorf("batch write: %d items left unprocessed", len(pending[table]))
			}
			out, err := client.BatchWriteItem(ctx, &dynamodb.BatchWriteItemInput{RequestItems: pending})
			if err != nil {
				return fmt.Errorf("batch write: %w", err)
			}
			pending = out.UnprocessedItems
		}
	}
	return nil
}
