package worker

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/estuardoo/api-transacciones-full/dal"
	"github.com/estuardoo/api-transacciones-full/infrastructure"
	"github.com/estuardoo/api-transacciones-full/models"
	"github.com/estuardoo/api-transacciones-full/utils/logger"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// InfrastructureSetup ensures the ledger tables and their secondary indexes
// exist. It only creates; existing tables are left untouched, so running it
// repeatedly is safe.
type InfrastructureSetup struct {
	config   *models.Config
	logger   logger.Logger
	dbClient dal.DatabaseClientInterface
}

// NewInfrastructureSetup creates the setup handler with its own DB client
func NewInfrastructureSetup(cfg *models.Config, log logger.Logger) (*InfrastructureSetup, error) {
	dbClient, err := dal.NewDynamoDBClient(cfg, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create DynamoDB client: %w", err)
	}
	return &InfrastructureSetup{
		config:   cfg,
		logger:   log,
		dbClient: dbClient,
	}, nil
}

// Execute ensures every ledger table exists.
func (is *InfrastructureSetup) Execute(ctx context.Context) error {
	tables := []struct {
		schemaKey string
		name      string
	}{
		{"TablaTransaccion", is.config.TablaTransaccion},
		{"TablaComercio", is.config.TablaComercio},
		{"TablaComercios", is.config.TablaComerciosAgreg},
	}

	for _, t := range tables {
		exists, err := is.tableExists(ctx, t.name)
		if err != nil {
			return fmt.Errorf("failed to check table %s: %w", t.name, err)
		}
		if exists {
			is.logger.Debugf("Table %s already exists", t.name)
			continue
		}

		input, err := infrastructure.GetTables(t.schemaKey, t.name)
		if err != nil {
			return err
		}

		is.logger.Infof("Creating table %s", t.name)
		if err := is.dbClient.CreateTable(ctx, input); err != nil {
			if isTableExistsError(err) {
				// Another instance won the race.
				continue
			}
			return fmt.Errorf("failed to create table %s: %w", t.name, err)
		}
	}

	return nil
}

func (is *InfrastructureSetup) tableExists(ctx context.Context, tableName string) (bool, error) {
	_, err := is.dbClient.DescribeTable(ctx, tableName)
	if err != nil {
		var notFound *types.ResourceNotFoundException
		if errors.As(err, &notFound) {
			return false, nil
		}
		if strings.Contains(err.Error(), "ResourceNotFoundException") {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func isTableExistsError(err error) bool {
	var inUse *types.ResourceInUseException
	if errors.As(err, &inUse) {
		return true
	}
	return strings.Contains(err.Error(), "ResourceInUseException")
}
