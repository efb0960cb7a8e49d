package repository

import (
	"context"

	"github.com/estuardoo/api-transacciones-full/models"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// TransactionRepositoryInterface defines the contract for transaction reads
// and ingestion writes
type TransactionRepositoryInterface interface {
	GetTransaction(ctx context.Context, id string) (models.Item, error)
	QueryRange(ctx context.Context, gen models.IndexGeneration, id models.Identifier, win models.QueryWindow) ([]models.Item, error)
	QueryLatest(ctx context.Context, gen models.IndexGeneration, id models.Identifier) (models.Item, error)
	ScanRange(ctx context.Context, gen models.IndexGeneration, id models.Identifier, win models.QueryWindow) ([]models.Item, error)
	PutTransactions(ctx context.Context, items []map[string]types.AttributeValue) error
}

// MerchantRepositoryInterface defines the contract for merchant ingestion
type MerchantRepositoryInterface interface {
	PutDetails(ctx context.Context, items []map[string]types.AttributeValue) error
	PutAggregates(ctx context.Context, items []map[string]types.AttributeValue) error
}
