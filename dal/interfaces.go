package dal

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// DatabaseClientInterface defines the contract for database operations
type DatabaseClientInterface interface {
	// Read operations
	GetItem(ctx context.Context, tableName, key, value string) (map[string]types.AttributeValue, error)
	QueryIndexRange(ctx context.Context, tableName, indexName, hashAttr string, hashValue types.AttributeValue, rangeAttr, start, end string) ([]map[string]types.AttributeValue, error)
	QueryIndexLatest(ctx context.Context, tableName, indexName, hashAttr string, hashValue types.AttributeValue) (map[string]types.AttributeValue, error)
	ScanRange(ctx context.Context, tableName, hashAttr string, hashValue types.AttributeValue, rangeAttr, start, end string) ([]map[string]types.AttributeValue, error)

	// Write operations
	BatchPut(ctx context.Context, tableName string, items []map[string]types.AttributeValue) error

	// Table management operations
	CreateTable(ctx context.Context, input *dynamodb.CreateTableInput) error
	DescribeTable(ctx context.Context, tableName string) (*dynamodb.DescribeTableOutput, error)
}
