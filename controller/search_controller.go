package controller

import (
	"context"
	"errors"
	"net/http"

	"github.com/estuardoo/api-transacciones-full/models"
	"github.com/estuardoo/api-transacciones-full/services"
	"github.com/estuardoo/api-transacciones-full/utils/logger"

	"github.com/gin-gonic/gin"
)

type SearchController struct {
	ctx     context.Context
	service services.SearchServiceInterface
	logger  logger.Logger
}

func NewSearchController(ctx context.Context, service services.SearchServiceInterface, log logger.Logger) *SearchController {
	return &SearchController{
		ctx:     ctx,
		service: service,
		logger:  log,
	}
}

// SearchClient handles GET /transacciones/cliente
// @Summary Search transactions by client
// @Description Retrieve a client's transactions for a day, an explicit date range, or the latest month on record
// @Tags Search
// @Produce json
// @Param IDCliente query string true "Client identifier"
// @Param fecha query string false "Single period (YYYY-MM-DD or YYYY-MM)"
// @Param desde query string false "Range start day (YYYY-MM-DD)"
// @Param hasta query string false "Range end day (YYYY-MM-DD)"
// @Success 200 {object} models.APIResponse
// @Failure 400 {object} models.APIResponse
// @Failure 500 {object} models.APIResponse
// @Router /transacciones/cliente [get]
func (h *SearchController) SearchClient(c *gin.Context) {
	params := models.SearchParams{
		ID:    c.Query("IDCliente"),
		Fecha: c.Query("fecha"),
		Desde: c.Query("desde"),
		Hasta: c.Query("hasta"),
	}

	items, err := h.service.SearchClient(c.Request.Context(), params)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.OKResponse(items))
}

// SearchCard handles GET /transacciones/tarjeta
// @Summary Search transactions by card
// @Description Retrieve a card's transactions for a day, an explicit date range, or the latest month on record
// @Tags Search
// @Produce json
// @Param IDTarjeta query string true "Card identifier"
// @Param fecha query string false "Single period (YYYY-MM-DD or YYYY-MM)"
// @Param desde query string false "Range start day (YYYY-MM-DD)"
// @Param hasta query string false "Range end day (YYYY-MM-DD)"
// @Success 200 {object} models.APIResponse
// @Failure 400 {object} models.APIResponse
// @Failure 500 {object} models.APIResponse
// @Router /transacciones/tarjeta [get]
func (h *SearchController) SearchCard(c *gin.Context) {
	params := models.SearchParams{
		ID:    c.Query("IDTarjeta"),
		Fecha: c.Query("fecha"),
		Desde: c.Query("desde"),
		Hasta: c.Query("hasta"),
	}

	items, err := h.service.SearchCard(c.Request.Context(), params)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.OKResponse(items))
}

// GetTransaction handles GET /transacciones/:id
// @Summary Get one transaction
// @Description Retrieve a single transaction by its identifier
// @Tags Search
// @Produce json
// @Param id path string true "Transaction identifier"
// @Success 200 {object} models.APIResponse
// @Failure 404 {object} models.APIResponse
// @Failure 500 {object} models.APIResponse
// @Router /transacciones/{id} [get]
func (h *SearchController) GetTransaction(c *gin.Context) {
	item, err := h.service.GetTransaction(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.OKResponse(item))
}

func (h *SearchController) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, models.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
	case errors.Is(err, models.ErrNotFound):
		c.JSON(http.StatusNotFound, models.ErrorResponse(err.Error()))
	default:
		h.logger.Errorf("Search failed: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(err.Error()))
	}
}
