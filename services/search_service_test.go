package services

import (
	"context"
	"errors"
	"testing"

	"github.com/estuardoo/api-transacciones-full/models"
	"github.com/estuardoo/api-transacciones-full/utils/logger"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockTransactionRepository implements TransactionRepositoryInterface for testing
type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) GetTransaction(ctx context.Context, id string) (models.Item, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(models.Item), args.Error(1)
}

func (m *MockTransactionRepository) QueryRange(ctx context.Context, gen models.IndexGeneration, id models.Identifier, win models.QueryWindow) ([]models.Item, error) {
	args := m.Called(ctx, gen, id, win)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Item), args.Error(1)
}

func (m *MockTransactionRepository) QueryLatest(ctx context.Context, gen models.IndexGeneration, id models.Identifier) (models.Item, error) {
	args := m.Called(ctx, gen, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(models.Item), args.Error(1)
}

func (m *MockTransactionRepository) ScanRange(ctx context.Context, gen models.IndexGeneration, id models.Identifier, win models.QueryWindow) ([]models.Item, error) {
	args := m.Called(ctx, gen, id, win)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Item), args.Error(1)
}

func (m *MockTransactionRepository) PutTransactions(ctx context.Context, items []map[string]types.AttributeValue) error {
	args := m.Called(ctx, items)
	return args.Error(0)
}

func newTestSearchService(repo *MockTransactionRepository) *SearchService {
	return NewSearchService(repo, logger.NewLogger("error", "text"))
}

func indexGone() error {
	return &types.ResourceNotFoundException{}
}

func TestSearchClientMissingIdentifier(t *testing.T) {
	svc := newTestSearchService(new(MockTransactionRepository))

	_, err := svc.SearchClient(context.Background(), models.SearchParams{})
	assert.ErrorIs(t, err, models.ErrInvalidInput)
	assert.Equal(t, "Falta IDCliente", err.Error())
}

func TestSearchClientSinglePeriodLegacyWins(t *testing.T) {
	repo := new(MockTransactionRepository)
	svc := newTestSearchService(repo)

	legacy := models.ClientIndexGenerations()[0]
	id := models.Identifier{Number: 42, Numeric: true}
	win := models.QueryWindow{Start: "2024-01-10T00:00:00", End: "2024-01-10T23:59:59"}
	items := []models.Item{{"IDTransaccion": "t-1"}}

	repo.On("QueryRange", mock.Anything, legacy, id, win).Return(items, nil).Once()

	got, err := svc.SearchClient(context.Background(), models.SearchParams{ID: "42", Fecha: "2024-01-10"})
	require.NoError(t, err)
	assert.Equal(t, items, got)

	repo.AssertExpectations(t)
	// Legacy answered, so the current generation is never probed.
	repo.AssertNumberOfCalls(t, "QueryRange", 1)
}

func TestSearchClientEmptyLegacyResultShortCircuits(t *testing.T) {
	repo := new(MockTransactionRepository)
	svc := newTestSearchService(repo)

	legacy := models.ClientIndexGenerations()[0]
	id := models.Identifier{Number: 42, Numeric: true}
	win := models.QueryWindow{Start: "2024-01-10T00:00:00", End: "2024-01-10T23:59:59"}

	repo.On("QueryRange", mock.Anything, legacy, id, win).Return([]models.Item{}, nil).Once()

	got, err := svc.SearchClient(context.Background(), models.SearchParams{ID: "42", Fecha: "2024-01-10"})
	require.NoError(t, err)
	assert.Empty(t, got)

	// An empty answer is still an answer: generations are disjoint per
	// record, so probing further would find nothing new.
	repo.AssertNumberOfCalls(t, "QueryRange", 1)
}

func TestSearchClientFallsBackToCurrentGeneration(t *testing.T) {
	repo := new(MockTransactionRepository)
	svc := newTestSearchService(repo)

	gens := models.ClientIndexGenerations()
	id := models.Identifier{Number: 42, Numeric: true}
	legacyWin := models.QueryWindow{Start: "2024-01-10T00:00:00", End: "2024-01-10T23:59:59"}
	currentWin := models.QueryWindow{Start: "2024-01-10#00:00:00", End: "2024-01-10#23:59:59"}
	items := []models.Item{{"IDTransaccion": "t-2"}}

	repo.On("QueryRange", mock.Anything, gens[0], id, legacyWin).Return(nil, indexGone()).Once()
	repo.On("QueryRange", mock.Anything, gens[1], id, currentWin).Return(items, nil).Once()

	got, err := svc.SearchClient(context.Background(), models.SearchParams{ID: "42", Fecha: "2024-01-10"})
	require.NoError(t, err)
	assert.Equal(t, items, got)
	repo.AssertExpectations(t)
}

func TestSearchClientExplicitRangeWindow(t *testing.T) {
	repo := new(MockTransactionRepository)
	svc := newTestSearchService(repo)

	legacy := models.ClientIndexGenerations()[0]
	id := models.Identifier{Number: 7, Numeric: true}
	win := models.QueryWindow{Start: "2024-01-10T00:00:00", End: "2024-01-12T23:59:59"}

	repo.On("QueryRange", mock.Anything, legacy, id, win).Return([]models.Item{}, nil).Once()

	_, err := svc.SearchClient(context.Background(), models.SearchParams{ID: "7", Desde: "2024-01-10", Hasta: "2024-01-12"})
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestSearchClientInvalidDates(t *testing.T) {
	svc := newTestSearchService(new(MockTransactionRepository))

	_, err := svc.SearchClient(context.Background(), models.SearchParams{ID: "42", Fecha: "10/01/2024"})
	assert.ErrorIs(t, err, models.ErrInvalidInput)

	_, err = svc.SearchClient(context.Background(), models.SearchParams{ID: "42", Desde: "2024-01-10", Hasta: "nope"})
	assert.ErrorIs(t, err, models.ErrInvalidInput)
}

func TestSearchClientLatestMonthGenerationAffinity(t *testing.T) {
	repo := new(MockTransactionRepository)
	svc := newTestSearchService(repo)

	gens := models.ClientIndexGenerations()
	id := models.Identifier{Number: 42, Numeric: true}
	latest := models.Item{"IDTransaccion": "t-9", "FechaHoraOrden": "2024-03-15#10:00:00"}
	monthWin := models.QueryWindow{Start: "2024-03-01#00:00:00", End: "2024-03-31#23:59:59"}
	monthItems := []models.Item{latest, {"IDTransaccion": "t-8"}}

	repo.On("QueryLatest", mock.Anything, gens[0], id).Return(nil, indexGone()).Once()
	repo.On("QueryLatest", mock.Anything, gens[1], id).Return(latest, nil).Once()
	// The month re-query must stay on the generation that produced the
	// latest record.
	repo.On("QueryRange", mock.Anything, gens[1], id, monthWin).Return(monthItems, nil).Once()

	got, err := svc.SearchClient(context.Background(), models.SearchParams{ID: "42"})
	require.NoError(t, err)
	assert.Equal(t, monthItems, got)
	repo.AssertExpectations(t)
}

func TestSearchClientLatestMonthPrefersPlainDate(t *testing.T) {
	repo := new(MockTransactionRepository)
	svc := newTestSearchService(repo)

	legacy := models.ClientIndexGenerations()[0]
	id := models.Identifier{Number: 42, Numeric: true}
	latest := models.Item{"Fecha": "2023-02-10", "FechaHoraISO": "2023-02-10T08:00:00"}
	monthWin := models.QueryWindow{Start: "2023-02-01T00:00:00", End: "2023-02-28T23:59:59"}

	repo.On("QueryLatest", mock.Anything, legacy, id).Return(latest, nil).Once()
	repo.On("QueryRange", mock.Anything, legacy, id, monthWin).Return([]models.Item{latest}, nil).Once()

	got, err := svc.SearchClient(context.Background(), models.SearchParams{ID: "42"})
	require.NoError(t, err)
	assert.Len(t, got, 1)
	repo.AssertExpectations(t)
}

func TestSearchClientLatestMonthNoHistory(t *testing.T) {
	repo := new(MockTransactionRepository)
	svc := newTestSearchService(repo)

	gens := models.ClientIndexGenerations()
	id := models.Identifier{Number: 42, Numeric: true}

	repo.On("QueryLatest", mock.Anything, gens[0], id).Return(nil, nil).Once()
	repo.On("QueryLatest", mock.Anything, gens[1], id).Return(nil, nil).Once()

	got, err := svc.SearchClient(context.Background(), models.SearchParams{ID: "42"})
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestSearchClientLatestMonthNoDerivableDate(t *testing.T) {
	repo := new(MockTransactionRepository)
	svc := newTestSearchService(repo)

	legacy := models.ClientIndexGenerations()[0]
	id := models.Identifier{Number: 42, Numeric: true}
	latest := models.Item{"IDTransaccion": "t-3"}

	repo.On("QueryLatest", mock.Anything, legacy, id).Return(latest, nil).Once()

	got, err := svc.SearchClient(context.Background(), models.SearchParams{ID: "42"})
	require.NoError(t, err)
	// The record is handed back unfiltered rather than failing the request.
	assert.Equal(t, []models.Item{latest}, got)
	repo.AssertNotCalled(t, "QueryRange", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSearchClientScanFallbackAfterExhaustion(t *testing.T) {
	repo := new(MockTransactionRepository)
	svc := newTestSearchService(repo)

	gens := models.ClientIndexGenerations()
	id := models.Identifier{Number: 42, Numeric: true}
	currentWin := models.QueryWindow{Start: "2024-01-10#00:00:00", End: "2024-01-10#23:59:59"}
	items := []models.Item{{"IDTransaccion": "t-4"}}

	repo.On("QueryRange", mock.Anything, gens[0], id, mock.Anything).Return(nil, indexGone()).Once()
	repo.On("QueryRange", mock.Anything, gens[1], id, mock.Anything).Return(nil, indexGone()).Once()
	repo.On("ScanRange", mock.Anything, gens[1], id, currentWin).Return(items, nil).Once()

	got, err := svc.SearchClient(context.Background(), models.SearchParams{ID: "42", Fecha: "2024-01-10"})
	require.NoError(t, err)
	assert.Equal(t, items, got)
	repo.AssertExpectations(t)
}

func TestSearchClientScanFallbackAlsoRejected(t *testing.T) {
	repo := new(MockTransactionRepository)
	svc := newTestSearchService(repo)

	gens := models.ClientIndexGenerations()
	id := models.Identifier{Number: 42, Numeric: true}

	repo.On("QueryRange", mock.Anything, gens[0], id, mock.Anything).Return(nil, indexGone()).Once()
	repo.On("QueryRange", mock.Anything, gens[1], id, mock.Anything).Return(nil, indexGone()).Once()
	repo.On("ScanRange", mock.Anything, gens[1], id, mock.Anything).Return(nil, indexGone()).Once()

	got, err := svc.SearchClient(context.Background(), models.SearchParams{ID: "42", Fecha: "2024-01-10"})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSearchClientFatalStoreError(t *testing.T) {
	repo := new(MockTransactionRepository)
	svc := newTestSearchService(repo)

	legacy := models.ClientIndexGenerations()[0]
	id := models.Identifier{Number: 42, Numeric: true}
	boom := errors.New("provisioned throughput exceeded")

	repo.On("QueryRange", mock.Anything, legacy, id, mock.Anything).Return(nil, boom).Once()

	_, err := svc.SearchClient(context.Background(), models.SearchParams{ID: "42", Fecha: "2024-01-10"})
	assert.ErrorIs(t, err, boom)
	// A fatal error stops probing immediately.
	repo.AssertNumberOfCalls(t, "QueryRange", 1)
}

func TestSearchCardUsesCardGenerations(t *testing.T) {
	repo := new(MockTransactionRepository)
	svc := newTestSearchService(repo)

	legacy := models.CardIndexGenerations()[0]
	id := models.Identifier{Number: 9, Numeric: true}
	win := models.QueryWindow{Start: "2024-06-01T00:00:00", End: "2024-06-01T23:59:59"}

	repo.On("QueryRange", mock.Anything, legacy, id, win).Return([]models.Item{}, nil).Once()

	_, err := svc.SearchCard(context.Background(), models.SearchParams{ID: "9", Fecha: "2024-06-01"})
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestSearchCardMissingIdentifier(t *testing.T) {
	svc := newTestSearchService(new(MockTransactionRepository))

	_, err := svc.SearchCard(context.Background(), models.SearchParams{})
	assert.ErrorIs(t, err, models.ErrInvalidInput)
	assert.Equal(t, "Falta IDTarjeta", err.Error())
}

func TestGetTransaction(t *testing.T) {
	repo := new(MockTransactionRepository)
	svc := newTestSearchService(repo)

	item := models.Item{"IDTransaccion": "tx-1", "Monto": int64(150)}
	repo.On("GetTransaction", mock.Anything, "tx-1").Return(item, nil).Once()

	got, err := svc.GetTransaction(context.Background(), "tx-1")
	require.NoError(t, err)
	assert.Equal(t, item, got)
}

func TestGetTransactionNotFound(t *testing.T) {
	repo := new(MockTransactionRepository)
	svc := newTestSearchService(repo)

	repo.On("GetTransaction", mock.Anything, "missing").Return(nil, nil).Once()

	_, err := svc.GetTransaction(context.Background(), "missing")
	assert.ErrorIs(t, err, models.ErrNotFound)
	assert.Equal(t, "Transacción no encontrada", err.Error())
}

func TestGetTransactionMissingID(t *testing.T) {
	svc := newTestSearchService(new(MockTransactionRepository))

	_, err := svc.GetTransaction(context.Background(), "  ")
	assert.ErrorIs(t, err, models.ErrInvalidInput)
}
