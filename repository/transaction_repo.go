package repository

import (
	"context"

	"github.com/estuardoo/api-transacciones-full/dal"
	"github.com/estuardoo/api-transacciones-full/models"
	"github.com/estuardoo/api-transacciones-full/utils/logger"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// TransactionKeyAttr is the primary key attribute of the transaction table.
const TransactionKeyAttr = "IDTransaccion"

type TransactionRepository struct {
	db     dal.DatabaseClientInterface
	config *models.Config
	logger logger.Logger
}

// NewTransactionRepository creates a new transaction repository
func NewTransactionRepository(db dal.DatabaseClientInterface, cfg *models.Config, log logger.Logger) *TransactionRepository {
	return &TransactionRepository{
		db:     db,
		config: cfg,
		logger: log,
	}
}

// GetTransaction looks up a single transaction by primary key. Returns nil
// without error when no record matches.
func (r *TransactionRepository) GetTransaction(ctx context.Context, id string) (models.Item, error) {
	raw, err := r.db.GetItem(ctx, r.config.TablaTransaccion, TransactionKeyAttr, id)
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, nil
	}
	return dal.DecodeItem(raw), nil
}

// QueryRange runs a window query against one index generation, newest
// first. Errors pass through unclassified; the service layer decides
// whether they mean "generation not applicable".
func (r *TransactionRepository) QueryRange(ctx context.Context, gen models.IndexGeneration, id models.Identifier, win models.QueryWindow) ([]models.Item, error) {
	raw, err := r.db.QueryIndexRange(ctx, r.config.TablaTransaccion, gen.IndexName, gen.HashAttr, id.AttributeValue(), gen.RangeAttr, win.Start, win.End)
	if err != nil {
		return nil, err
	}
	return dal.DecodeItems(raw), nil
}

// QueryLatest fetches the most recent record for an identifier on one index
// generation. Returns nil without error when the partition is empty.
func (r *TransactionRepository) QueryLatest(ctx context.Context, gen models.IndexGeneration, id models.Identifier) (models.Item, error) {
	raw, err := r.db.QueryIndexLatest(ctx, r.config.TablaTransaccion, gen.IndexName, gen.HashAttr, id.AttributeValue())
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, nil
	}
	return dal.DecodeItem(raw), nil
}

// ScanRange re-applies a generation's identifier and window predicates as a
// filtered full-table scan. Slow path, used only when every index
// generation is unavailable.
func (r *TransactionRepository) ScanRange(ctx context.Context, gen models.IndexGeneration, id models.Identifier, win models.QueryWindow) ([]models.Item, error) {
	r.logger.Warnf("Falling back to filtered scan on %s (%s between %s and %s)", r.config.TablaTransaccion, gen.HashAttr, win.Start, win.End)
	raw, err := r.db.ScanRange(ctx, r.config.TablaTransaccion, gen.HashAttr, id.AttributeValue(), gen.RangeAttr, win.Start, win.End)
	if err != nil {
		return nil, err
	}
	return dal.DecodeItems(raw), nil
}

// PutTransactions batch-upserts ingestion records keyed on IDTransaccion.
func (r *TransactionRepository) PutTransactions(ctx context.Context, items []map[string]types.AttributeValue) error {
	return r.db.BatchPut(ctx, r.config.TablaTransaccion, items)
}
