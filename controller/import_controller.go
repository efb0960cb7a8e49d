package controller

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/estuardoo/api-transacciones-full/models"
	"github.com/estuardoo/api-transacciones-full/services"
	"github.com/estuardoo/api-transacciones-full/utils/logger"

	"github.com/gin-gonic/gin"
)

type ImportController struct {
	ctx     context.Context
	service services.IngestServiceInterface
	config  *models.Config
	logger  logger.Logger
}

func NewImportController(ctx context.Context, service services.IngestServiceInterface, cfg *models.Config, log logger.Logger) *ImportController {
	return &ImportController{
		ctx:     ctx,
		service: service,
		config:  cfg,
		logger:  log,
	}
}

// ImportTransactions handles POST /import/transacciones
// @Summary Import a batch of transactions
// @Description Accepts a JSON array or {data:[...]} envelope, coerces field types and upserts by IDTransaccion
// @Tags Import
// @Accept json
// @Produce json
// @Success 200 {object} models.APIResponse
// @Failure 400 {object} models.APIResponse
// @Failure 500 {object} models.APIResponse
// @Router /import/transacciones [post]
func (h *ImportController) ImportTransactions(c *gin.Context) {
	rows, ok := h.readRows(c)
	if !ok {
		return
	}

	result, err := h.service.ImportTransactions(c.Request.Context(), rows)
	if err != nil {
		h.logger.Errorf("Transaction import failed: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(err.Error()))
		return
	}

	result.Table = h.config.TablaTransaccion
	c.JSON(http.StatusOK, models.OKResponse(result))
}

// ImportMerchants handles POST /import/comercios
// @Summary Import a batch of merchant rows
// @Description Accepts monthly-aggregate rows (Tipo+ID key) and merchant detail rows (IDComercio key) in one batch
// @Tags Import
// @Accept json
// @Produce json
// @Success 200 {object} models.APIResponse
// @Failure 400 {object} models.APIResponse
// @Failure 500 {object} models.APIResponse
// @Router /import/comercios [post]
func (h *ImportController) ImportMerchants(c *gin.Context) {
	rows, ok := h.readRows(c)
	if !ok {
		return
	}

	result, err := h.service.ImportMerchants(c.Request.Context(), rows)
	if err != nil {
		h.logger.Errorf("Merchant import failed: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(err.Error()))
		return
	}

	result.TablaDetalle = h.config.TablaComercio
	result.TablaAgregados = h.config.TablaComerciosAgreg
	c.JSON(http.StatusOK, models.OKResponse(result))
}

func (h *ImportController) readRows(c *gin.Context) ([]map[string]interface{}, bool) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse("No se pudo leer el cuerpo de la petición"))
		return nil, false
	}

	rows, err := services.ParsePayload(body)
	if err != nil {
		if errors.Is(err, models.ErrInvalidInput) {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
		} else {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(err.Error()))
		}
		return nil, false
	}
	return rows, true
}
