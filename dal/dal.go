package dal

import (
	"context"
	"fmt"

	"github.com/estuardoo/api-transacciones-full/models"
	"github.com/estuardoo/api-transacciones-full/utils/logger"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const batchWriteChunk = 25

type DynamoDBClient struct {
	client *dynamodb.Client
	config *models.Config
	logger logger.Logger
}

// NewDynamoDBClient creates a new DynamoDB client
func NewDynamoDBClient(cfg *models.Config, log logger.Logger) (*DynamoDBClient, error) {
	awsCfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithRegion(cfg.AWSRegion),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	// Override endpoint for local DynamoDB
	if cfg.DynamoDBEndpoint != "" {
		awsCfg.EndpointResolver = aws.EndpointResolverFunc(func(service, region string) (aws.Endpoint, error) {
			return aws.Endpoint{
				URL:           cfg.DynamoDBEndpoint,
				SigningRegion: cfg.AWSRegion,
			}, nil
		})
	}

	// Use static credentials if provided
	if cfg.AWSAccessKeyID != "" && cfg.AWSSecretAccessKey != "" {
		awsCfg.Credentials = aws.NewCredentialsCache(credentials.NewStaticCredentialsProvider(
			cfg.AWSAccessKeyID,
			cfg.AWSSecretAccessKey,
			"",
		))
	}

	client := dynamodb.NewFromConfig(awsCfg)

	dbClient := &DynamoDBClient{
		client: client,
		config: cfg,
		logger: log,
	}

	log.Info("DynamoDB client initialized successfully")
	return dbClient, nil
}

// GetItem retrieves a single item by its string primary key. Returns nil
// when no item matches.
func (db *DynamoDBClient) GetItem(ctx context.Context, tableName, key, value string) (map[string]types.AttributeValue, error) {
	input := &dynamodb.GetItemInput{
		TableName: aws.String(tableName),
		Key: map[string]types.AttributeValue{
			key: &types.AttributeValueMemberS{Value: value},
		},
	}

	output, err := db.client.GetItem(ctx, input)
	if err != nil {
		db.logger.Errorf("Failed to get item from %s: %v", tableName, err)
		return nil, err
	}

	return output.Item, nil
}

// QueryIndexRange runs a range query against a secondary index: hash
// attribute equality plus BETWEEN on the sort attribute, newest first.
func (db *DynamoDBClient) QueryIndexRange(ctx context.Context, tableName, indexName, hashAttr string, hashValue types.AttributeValue, rangeAttr, start, end string) ([]map[string]types.AttributeValue, error) {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(tableName),
		IndexName:              aws.String(indexName),
		KeyConditionExpression: aws.String("#h = :h AND #r BETWEEN :ini AND :fin"),
		ExpressionAttributeNames: map[string]string{
			"#h": hashAttr,
			"#r": rangeAttr,
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":h":   hashValue,
			":ini": &types.AttributeValueMemberS{Value: start},
			":fin": &types.AttributeValueMemberS{Value: end},
		},
		ScanIndexForward: aws.Bool(false),
	}

	output, err := db.client.Query(ctx, input)
	if err != nil {
		return nil, err
	}

	return output.Items, nil
}

// QueryIndexLatest returns the most recent item for a hash key on a
// secondary index (top-1 ordered by range key descending). Returns nil when
// the partition is empty.
func (db *DynamoDBClient) QueryIndexLatest(ctx context.Context, tableName, indexName, hashAttr string, hashValue types.AttributeValue) (map[string]types.AttributeValue, error) {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(tableName),
		IndexName:              aws.String(indexName),
		KeyConditionExpression: aws.String("#h = :h"),
		ExpressionAttributeNames: map[string]string{
			"#h": hashAttr,
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":h": hashValue,
		},
		ScanIndexForward: aws.Bool(false),
		Limit:            aws.Int32(1),
	}

	output, err := db.client.Query(ctx, input)
	if err != nil {
		return nil, err
	}

	if len(output.Items) == 0 {
		return nil, nil
	}
	return output.Items[0], nil
}

// ScanRange is the degraded fallback when no index generation is usable: a
// full-table scan re-applying the identifier-equality and date-range
// predicates as a filter expression.
func (db *DynamoDBClient) ScanRange(ctx context.Context, tableName, hashAttr string, hashValue types.AttributeValue, rangeAttr, start, end string) ([]map[string]types.AttributeValue, error) {
	input := &dynamodb.ScanInput{
		TableName:        aws.String(tableName),
		FilterExpression: aws.String("#h = :h AND #r BETWEEN :ini AND :fin"),
		ExpressionAttributeNames: map[string]string{
			"#h": hashAttr,
			"#r": rangeAttr,
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":h":   hashValue,
			":ini": &types.AttributeValueMemberS{Value: start},
			":fin": &types.AttributeValueMemberS{Value: end},
		},
	}

	output, err := db.client.Scan(ctx, input)
	if err != nil {
		return nil, err
	}

	return output.Items, nil
}

// BatchPut upserts items in chunks of 25, resubmitting unprocessed items
// until DynamoDB accepts them. Writes are keyed on the table's primary key,
// so re-ingesting the same batch is idempotent.
func (db *DynamoDBClient) BatchPut(ctx context.Context, tableName string, items []map[string]types.AttributeValue) error {
	for from := 0; from < len(items); from += batchWriteChunk {
		to := from + batchWriteChunk
		if to > len(items) {
			to = len(items)
		}

		requests := make([]types.WriteRequest, 0, to-from)
		for _, item := range items[from:to] {
			requests = append(requests, types.WriteRequest{
				PutRequest: &types.PutRequest{Item: item},
			})
		}

		pending := map[string][]types.WriteRequest{tableName: requests}
		for len(pending[tableName]) > 0 {
			output, err := db.client.BatchWriteItem(ctx, &dynamodb.BatchWriteItemInput{
				RequestItems: pending,
			})
			if err != nil {
				db.logger.Errorf("Batch write to %s failed: %v", tableName, err)
				return err
			}
			pending = output.UnprocessedItems
		}
	}
	return nil
}

// CreateTable creates a table
func (db *DynamoDBClient) CreateTable(ctx context.Context, input *dynamodb.CreateTableInput) error {
	_, err := db.client.CreateTable(ctx, input)
	return err
}

// DescribeTable describes a table
func (db *DynamoDBClient) DescribeTable(ctx context.Context, tableName string) (*dynamodb.DescribeTableOutput, error) {
	input := &dynamodb.DescribeTableInput{
		TableName: aws.String(tableName),
	}
	return db.client.DescribeTable(ctx, input)
}
