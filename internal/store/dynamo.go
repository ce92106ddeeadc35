package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/aws/smithy-go"

	"github.com/custsvc/interactions-api/internal/config"
	"github.com/custsvc/interactions-api/internal/core/query"
)

// Error codes DynamoDB uses when it is overloaded rather than rejecting the
// request itself.
var dynamoUnavailableCodes = map[string]bool{
	"ProvisionedThroughputExceededException": true,
	"ThrottlingException":                    true,
	"RequestLimitExceeded":                   true,
	"InternalServerError":                    true,
	"ServiceUnavailable":                     true,
}

// NewDynamoClient builds a DynamoDB client. When cfg.Endpoint is set (DynamoDB
// Local) static dummy credentials are used; otherwise the default AWS
// credential chain applies.
func NewDynamoClient(ctx context.Context, cfg config.DynamoDBConfig) (*dynamodb.Client, error) {
	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.Region)}
	if cfg.Endpoint != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider("dummy", "dummy", "")))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return dynamodb.NewFromConfig(awsCfg, func(o *dynamodb.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	}), nil
}

// DynamoQueryAPI is the subset of *dynamodb.Client used by DynamoStore.
type DynamoQueryAPI interface {
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
}

// DynamoStore implements Store over a DynamoDB table with partition key
// account_number and sort key timestamp (both strings).
type DynamoStore struct {
	client DynamoQueryAPI
	table  string
}

// NewDynamoStore creates a DynamoStore for table.
func NewDynamoStore(client DynamoQueryAPI, table string) *DynamoStore {
	return &DynamoStore{client: client, table: table}
}

// Query issues a single DynamoDB Query call. DynamoDB may return fewer items
// than the limit together with a LastEvaluatedKey; that key becomes Next.
func (s *DynamoStore) Query(ctx context.Context, d query.Descriptor) (*Page, error) {
	in, err := s.queryInput(d)
	if err != nil {
		return nil, err
	}
	out, err := s.client.Query(ctx, in)
	if err != nil {
		return nil, classifyDynamoErr(err)
	}

	items := make([]Interaction, 0, len(out.Items))
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &items); err != nil {
		return nil, fmt.Errorf("%w: unmarshal items: %w", ErrStoreQueryFailed, err)
	}
	page := &Page{Items: items}
	if len(out.LastEvaluatedKey) > 0 {
		var m map[string]string
		if err := attributevalue.UnmarshalMap(out.LastEvaluatedKey, &m); err != nil {
			return nil, fmt.Errorf("%w: unmarshal last evaluated key: %w", ErrStoreQueryFailed, err)
		}
		page.Next = query.Marker(m)
	}
	return page, nil
}

// queryInput translates a descriptor into the native QueryInput.
func (s *DynamoStore) queryInput(d query.Descriptor) (*dynamodb.QueryInput, error) {
	keyCond := expression.Key(query.AttrAccountNumber).Equal(expression.Value(d.AccountNumber))
	ts := expression.Key(query.AttrTimestamp)
	switch d.Sort.Kind {
	case query.Between:
		keyCond = keyCond.And(ts.Between(expression.Value(d.Sort.Low), expression.Value(d.Sort.High)))
	case query.LowerOnly:
		keyCond = keyCond.And(ts.GreaterThanEqual(expression.Value(d.Sort.Low)))
	case query.UpperOnly:
		keyCond = keyCond.And(ts.LessThanEqual(expression.Value(d.Sort.High)))
	case query.Unbounded:
	}

	expr, err := expression.NewBuilder().WithKeyCondition(keyCond).Build()
	if err != nil {
		return nil, fmt.Errorf("%w: build key condition: %w", ErrStoreQueryFailed, err)
	}

	in := &dynamodb.QueryInput{
		TableName:                 aws.String(s.table),
		KeyConditionExpression:    expr.KeyCondition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		Limit:                     aws.Int32(int32(d.Limit)),
		ScanIndexForward:          aws.Bool(!d.Descending),
	}
	if d.StartAfter != nil {
		key, err := markerKey(d.StartAfter)
		if err != nil {
			return nil, err
		}
		in.ExclusiveStartKey = key
	}
	return in, nil
}

func markerKey(m query.Marker) (map[string]types.AttributeValue, error) {
	key, err := attributevalue.MarshalMap(map[string]string(m))
	if err != nil {
		return nil, fmt.Errorf("%w: marshal start key: %w", ErrStoreQueryFailed, err)
	}
	return key, nil
}

func classifyDynamoErr(err error) error {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		if dynamoUnavailableCodes[apiErr.ErrorCode()] {
			return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
		}
		return fmt.Errorf("%w: %s: %w", ErrStoreQueryFailed, apiErr.ErrorCode(), err)
	}
	return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
}
