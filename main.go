package main

import (
	"context"
	"log"

	"github.com/estuardoo/api-transacciones-full/controller"
	"github.com/estuardoo/api-transacciones-full/models"
	"github.com/estuardoo/api-transacciones-full/utils"
	"github.com/estuardoo/api-transacciones-full/utils/logger"
	"github.com/estuardoo/api-transacciones-full/worker"

	"github.com/gin-gonic/gin"
)

var config *models.Config

func Init() {
	var err error
	config, err = utils.GetConfig()
	if err != nil {
		log.Fatal(err)
	}
}

// @title API Transacciones
// @version 1.0
// @description Read/write API over the transaction ledger: client and card
// @description searches with dual-generation index fallback, single
// @description transaction lookup and batch ingestion of transactions and
// @description merchant rows.

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1
func main() {
	Init()

	ctx := context.Background()
	appLogger := logger.NewLogger(config.LogLevel, config.LogFormat)

	r := gin.New()
	r.Use(gin.Recovery())

	c := controller.NewController(ctx, config, appLogger)

	// Start server (this is blocking)
	go func() {
		if err := c.RegisterRoutes(ctx, config, r, config.BasePath); err != nil {
			log.Fatalf("Server stopped: %v", err)
		}
	}()

	// Ensure the ledger tables and their indexes exist in the background.
	bootstrap, err := worker.NewService(ctx, config, appLogger)
	if err != nil {
		log.Fatalf("Failed to create infrastructure worker: %v", err)
	}
	if err := bootstrap.StartInBackground(); err != nil {
		log.Fatalf("Failed to start infrastructure worker: %v", err)
	}

	select {}
}
