package services

import (
	"context"
	"strings"

	"github.com/estuardoo/api-transacciones-full/dal"
	"github.com/estuardoo/api-transacciones-full/models"
	"github.com/estuardoo/api-transacciones-full/repository"
	"github.com/estuardoo/api-transacciones-full/utils/logger"
)

// SearchService resolves an identifier plus an optional date filter into
// the right secondary index and query window. The transaction table carries
// two index generations per search domain (the schema drifted once); a
// record is indexed under exactly one of them, so generations are probed in
// legacy-then-current order and the first one that answers without an index
// error is authoritative, even when its result set is empty.
type SearchService struct {
	repo   repository.TransactionRepositoryInterface
	logger logger.Logger
}

// NewSearchService creates a new search service
func NewSearchService(repo repository.TransactionRepositoryInterface, log logger.Logger) *SearchService {
	return &SearchService{
		repo:   repo,
		logger: log,
	}
}

// SearchClient resolves a client search request.
func (s *SearchService) SearchClient(ctx context.Context, params models.SearchParams) ([]models.Item, error) {
	return s.search(ctx, "IDCliente", params, models.ClientIndexGenerations())
}

// SearchCard resolves a card search request.
func (s *SearchService) SearchCard(ctx context.Context, params models.SearchParams) ([]models.Item, error) {
	return s.search(ctx, "IDTarjeta", params, models.CardIndexGenerations())
}

// GetTransaction looks up one transaction by primary key.
func (s *SearchService) GetTransaction(ctx context.Context, id string) (models.Item, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, models.Invalid("Falta IDTransaccion")
	}

	item, err := s.repo.GetTransaction(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, models.NotFound("Transacción no encontrada")
	}
	return item, nil
}

func (s *SearchService) search(ctx context.Context, field string, params models.SearchParams, gens []models.IndexGeneration) ([]models.Item, error) {
	id, err := NormalizeIdentifier(params.ID)
	if err != nil {
		return nil, models.Invalid("Falta " + field)
	}

	switch {
	case params.Fecha != "" && params.Desde == "" && params.Hasta == "":
		return s.searchPeriod(ctx, id, params.Fecha, gens)
	case params.Desde != "" && params.Hasta != "":
		return s.searchRange(ctx, id, params.Desde, params.Hasta, gens)
	default:
		return s.searchLatestMonth(ctx, id, gens)
	}
}

// searchPeriod handles the single-period filter: one calendar day for a
// YYYY-MM-DD value, one calendar month for YYYY-MM.
func (s *SearchService) searchPeriod(ctx context.Context, id models.Identifier, fecha string, gens []models.IndexGeneration) ([]models.Item, error) {
	switch {
	case validDate(fecha):
		return s.probe(ctx, id, gens, func(gen models.IndexGeneration) models.QueryWindow {
			return DayWindow(fecha, gen.Separator)
		})
	case validMonth(fecha):
		return s.probe(ctx, id, gens, func(gen models.IndexGeneration) models.QueryWindow {
			win, _ := MonthWindow(fecha+"-01", gen.Separator)
			return win
		})
	default:
		return nil, models.Invalid("Fecha inválida: " + fecha)
	}
}

// searchRange handles the explicit desde/hasta filter: from the start of
// desde's day to the end of hasta's day.
func (s *SearchService) searchRange(ctx context.Context, id models.Identifier, desde, hasta string, gens []models.IndexGeneration) ([]models.Item, error) {
	if !validDate(desde) {
		return nil, models.Invalid("Fecha inválida: " + desde)
	}
	if !validDate(hasta) {
		return nil, models.Invalid("Fecha inválida: " + hasta)
	}

	return s.probe(ctx, id, gens, func(gen models.IndexGeneration) models.QueryWindow {
		return models.QueryWindow{
			Start: DayWindow(desde, gen.Separator).Start,
			End:   DayWindow(hasta, gen.Separator).End,
		}
	})
}

// searchLatestMonth handles the no-filter case: find the most recent record
// across generations and re-query the whole calendar month of its date,
// pinned to the generation that produced it. Switching generations here
// would query the wrong attribute names.
func (s *SearchService) searchLatestMonth(ctx context.Context, id models.Identifier, gens []models.IndexGeneration) ([]models.Item, error) {
	var latest models.Item
	var latestGen models.IndexGeneration

	for _, gen := range gens {
		item, err := s.repo.QueryLatest(ctx, gen, id)
		if err != nil {
			if dal.IsIndexUnavailable(err) {
				s.logger.Debugf("Index %s not usable for %s: %v", gen.IndexName, id, err)
				continue
			}
			return nil, err
		}
		if item != nil {
			latest = item
			latestGen = gen
			break
		}
	}

	if latest == nil {
		// No history in any generation; absence is not an error.
		return []models.Item{}, nil
	}

	fecha := deriveDate(latest)
	if fecha == "" || !validDate(fecha) {
		// A record without a derivable date is a data-quality problem.
		// Surface it in the logs but hand the record back rather than fail
		// the request.
		s.logger.Warnf("Latest record for %s on %s has no derivable date, returning it unfiltered", id, latestGen.IndexName)
		return []models.Item{latest}, nil
	}

	win, err := MonthWindow(fecha, latestGen.Separator)
	if err != nil {
		return nil, err
	}

	items, err := s.repo.QueryRange(ctx, latestGen, id, win)
	if err != nil {
		if dal.IsIndexUnavailable(err) {
			return s.scanFallback(ctx, id, latestGen, win)
		}
		return nil, err
	}
	return items, nil
}

// probe tries each index generation in order until one answers without an
// index error, then stops: generations are disjoint per record, so the
// first responder is authoritative even when it returns nothing. Only when
// every generation is unusable does the filtered-scan fallback run.
func (s *SearchService) probe(ctx context.Context, id models.Identifier, gens []models.IndexGeneration, windowFor func(models.IndexGeneration) models.QueryWindow) ([]models.Item, error) {
	for _, gen := range gens {
		items, err := s.repo.QueryRange(ctx, gen, id, windowFor(gen))
		if err != nil {
			if dal.IsIndexUnavailable(err) {
				s.logger.Debugf("Index %s not usable for %s: %v", gen.IndexName, id, err)
				continue
			}
			return nil, err
		}
		return items, nil
	}

	current := gens[len(gens)-1]
	return s.scanFallback(ctx, id, current, windowFor(current))
}

// scanFallback re-applies a generation's predicates as a filtered scan.
// When even the scan is rejected for this key, the identifier simply has no
// data under this schema and the result is an empty success.
func (s *SearchService) scanFallback(ctx context.Context, id models.Identifier, gen models.IndexGeneration, win models.QueryWindow) ([]models.Item, error) {
	items, err := s.repo.ScanRange(ctx, gen, id, win)
	if err != nil {
		if dal.IsIndexUnavailable(err) {
			return []models.Item{}, nil
		}
		return nil, err
	}
	return items, nil
}

// deriveDate extracts a plain YYYY-MM-DD date from a record: the explicit
// Fecha attribute when present, otherwise the leading date segment of one
// of the composite range keys.
func deriveDate(item models.Item) string {
	if f, ok := item["Fecha"].(string); ok && f != "" {
		return f
	}
	for _, attr := range []string{"FechaHoraOrden", "FechaHoraISO"} {
		if v, ok := item[attr].(string); ok && v != "" {
			d := strings.SplitN(v, "#", 2)[0]
			d = strings.SplitN(d, "T", 2)[0]
			return d
		}
	}
	return ""
}
