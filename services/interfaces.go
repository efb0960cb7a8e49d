package services

import (
	"context"

	"github.com/estuardoo/api-transacciones-full/models"
)

// SearchServiceInterface defines the contract for search operations
type SearchServiceInterface interface {
	SearchClient(ctx context.Context, params models.SearchParams) ([]models.Item, error)
	SearchCard(ctx context.Context, params models.SearchParams) ([]models.Item, error)
	GetTransaction(ctx context.Context, id string) (models.Item, error)
}

// IngestServiceInterface defines the contract for ingestion operations
type IngestServiceInterface interface {
	ImportTransactions(ctx context.Context, rows []map[string]interface{}) (*models.ImportResult, error)
	ImportMerchants(ctx context.Context, rows []map[string]interface{}) (*models.ImportResult, error)
}
