package controller

import (
	"context"
	"net/http"

	"github.com/estuardoo/api-transacciones-full/dal"
	"github.com/estuardoo/api-transacciones-full/middelware"
	"github.com/estuardoo/api-transacciones-full/models"
	"github.com/estuardoo/api-transacciones-full/repository"
	"github.com/estuardoo/api-transacciones-full/services"
	"github.com/estuardoo/api-transacciones-full/utils/logger"

	"github.com/gin-gonic/gin"
)

type Controller struct {
	Search *SearchController
	Import *ImportController
}

func NewController(ctx context.Context, cfg *models.Config, log logger.Logger) *Controller {
	dbclient, err := dal.NewDynamoDBClient(cfg, log)
	if err != nil {
		log.Fatalf("Failed to initialize DynamoDB client: %v", err)
	}

	txRepo := repository.NewTransactionRepository(dbclient, cfg, log)
	merchantRepo := repository.NewMerchantRepository(dbclient, cfg, log)

	searchService := services.NewSearchService(txRepo, log)
	ingestService := services.NewIngestService(txRepo, merchantRepo, log)

	return &Controller{
		Search: NewSearchController(ctx, searchService, log),
		Import: NewImportController(ctx, ingestService, cfg, log),
	}
}

func (c *Controller) RegisterRoutes(ctx context.Context, config *models.Config, r *gin.Engine, basePath string) error {
	log := logger.NewLogger(config.LogLevel, config.LogFormat)

	r.Use(middelware.NewLoggingMiddleware(log).RequestLogger())
	r.Use(middelware.NewCORSMiddleware(config).CORS())

	v1 := r.Group(basePath)

	// Health check endpoint
	v1.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"version": config.AppVersion,
			"service": config.AppName,
		})
	})

	tx := v1.Group("/transacciones")
	tx.GET("/cliente", c.Search.SearchClient)
	tx.GET("/tarjeta", c.Search.SearchCard)
	tx.GET("/:id", c.Search.GetTransaction)

	imp := v1.Group("/import")
	imp.POST("/transacciones", c.Import.ImportTransactions)
	imp.POST("/comercios", c.Import.ImportMerchants)

	srv := &http.Server{
		Addr:    config.AppHost + ":" + config.AppPort,
		Handler: r,
	}

	log.Infof("Starting server on %s:%s", config.AppHost, config.AppPort)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
