package controller

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/estuardoo/api-transacciones-full/models"
	"github.com/estuardoo/api-transacciones-full/utils/logger"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockIngestService implements IngestServiceInterface for testing
type MockIngestService struct {
	mock.Mock
}

func (m *MockIngestService) ImportTransactions(ctx context.Context, rows []map[string]interface{}) (*models.ImportResult, error) {
	args := m.Called(ctx, rows)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ImportResult), args.Error(1)
}

func (m *MockIngestService) ImportMerchants(ctx context.Context, rows []map[string]interface{}) (*models.ImportResult, error) {
	args := m.Called(ctx, rows)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ImportResult), args.Error(1)
}

func setupImportRouter(svc *MockIngestService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	cfg := &models.Config{
		TablaTransaccion:    "TablaTransaccion",
		TablaComercio:       "TablaComercio",
		TablaComerciosAgreg: "TablaComercios",
	}
	ctrl := NewImportController(context.Background(), svc, cfg, logger.NewLogger("error", "text"))
	r.POST("/import/transacciones", ctrl.ImportTransactions)
	r.POST("/import/comercios", ctrl.ImportMerchants)
	return r
}

func TestImportTransactionsEndpoint(t *testing.T) {
	svc := new(MockIngestService)
	router := setupImportRouter(svc)

	svc.On("ImportTransactions", mock.Anything, mock.Anything).
		Return(&models.ImportResult{Inserted: 2}, nil).Once()

	body := `[{"IDCliente": 1}, {"IDCliente": 2}]`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/import/transacciones", strings.NewReader(body))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	assert.True(t, resp.OK)

	data, ok := resp.Data.(map[string]interface{})
	assert.True(t, ok)
	assert.Equal(t, float64(2), data["inserted"])
	assert.Equal(t, "TablaTransaccion", data["table"])
	svc.AssertExpectations(t)
}

func TestImportTransactionsEndpointBadJSON(t *testing.T) {
	svc := new(MockIngestService)
	router := setupImportRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/import/transacciones", strings.NewReader("{not json"))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeResponse(t, w)
	assert.False(t, resp.OK)
	svc.AssertNotCalled(t, "ImportTransactions")
}

func TestImportTransactionsEndpointBadShape(t *testing.T) {
	svc := new(MockIngestService)
	router := setupImportRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/import/transacciones", strings.NewReader(`"just a string"`))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeResponse(t, w)
	assert.False(t, resp.OK)
}

func TestImportMerchantsEndpoint(t *testing.T) {
	svc := new(MockIngestService)
	router := setupImportRouter(svc)

	svc.On("ImportMerchants", mock.Anything, mock.Anything).
		Return(&models.ImportResult{InsertedDetalle: 1, InsertedAgregados: 3}, nil).Once()

	body := `{"data": [{"Tipo": 1}]}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/import/comercios", strings.NewReader(body))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	assert.True(t, resp.OK)

	data, ok := resp.Data.(map[string]interface{})
	assert.True(t, ok)
	assert.Equal(t, "TablaComercio", data["tabla_detalle"])
	assert.Equal(t, "TablaComercios", data["tabla_agregados"])
	svc.AssertExpectations(t)
}
