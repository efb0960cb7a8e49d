package repository

import (
	"context"

	"github.com/estuardoo/api-transacciones-full/dal"
	"github.com/estuardoo/api-transacciones-full/models"
	"github.com/estuardoo/api-transacciones-full/utils/logger"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

type MerchantRepository struct {
	db     dal.DatabaseClientInterface
	config *models.Config
	logger logger.Logger
}

// NewMerchantRepository creates a new merchant repository
func NewMerchantRepository(db dal.DatabaseClientInterface, cfg *models.Config, log logger.Logger) *MerchantRepository {
	return &MerchantRepository{
		db:     db,
		config: cfg,
		logger: log,
	}
}

// PutDetails batch-upserts merchant detail rows keyed on IDComercio.
func (r *MerchantRepository) PutDetails(ctx context.Context, items []map[string]types.AttributeValue) error {
	return r.db.BatchPut(ctx, r.config.TablaComercio, items)
}

// PutAggregates batch-upserts monthly aggregate rows keyed on Tipo+ID.
func (r *MerchantRepository) PutAggregates(ctx context.Context, items []map[string]types.AttributeValue) error {
	return r.db.BatchPut(ctx, r.config.TablaComerciosAgreg, items)
}
