// internal/service/dashboard_service.go
package service

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/rakapradana/supplychain-opt/internal/cache"
	"github.com/rakapradana/supplychain-opt/internal/demand"
	"github.com/rakapradana/supplychain-opt/internal/domain"
	"github.com/rakapradana/supplychain-opt/internal/forecast"
	"github.com/rakapradana/supplychain-opt/internal/inventory"
	"github.com/rakapradana/supplychain-opt/internal/normalize"
	"github.com/rakapradana/supplychain-opt/internal/repository"
	"github.com/rs/zerolog/log"
)

// ErrUnknownProduct is returned when a forecast is requested for a product
// that does not appear in the loaded dataset.
var ErrUnknownProduct = errors.New("unknown product")

// DashboardService runs the full analytics pipeline per request: load raw
// rows, normalize, aggregate, then forecast or evaluate reorder policy.
// There is no state carried between invocations; the decision table cache is
// keyed by a content fingerprint of the dataset, so it can only ever return
// what a fresh run would compute.
type DashboardService struct {
	repo       repository.SalesRepository
	cache      cache.DashboardCache
	forecaster *forecast.Engine
	calculator *inventory.Calculator
}

func NewDashboardService(
	repo repository.SalesRepository,
	cacheImpl cache.DashboardCache,
	forecaster *forecast.Engine,
	calculator *inventory.Calculator,
) *DashboardService {
	if cacheImpl == nil {
		cacheImpl = cache.NewNoopDashboardCache()
	}
	return &DashboardService{
		repo:       repo,
		cache:      cacheImpl,
		forecaster: forecaster,
		calculator: calculator,
	}
}

// load fetches and normalizes the dataset, returning the records plus the
// content fingerprint used as the cache key.
func (s *DashboardService) load(ctx context.Context) ([]domain.SalesRecord, string, error) {
	rows, err := s.repo.FetchSales(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("failed to load sales data: %w", err)
	}

	return normalize.Records(rows), fingerprint(rows), nil
}

// Summary computes the headline KPI cards, including the reorder alert count
// from the decision table.
func (s *DashboardService) Summary(ctx context.Context) (*domain.BusinessSummary, error) {
	records, fp, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	summary := demand.Summary(records)

	table, err := s.decisions(ctx, records, fp)
	if err != nil {
		return nil, err
	}
	summary.ReorderProducts = table.ReorderCount

	return &summary, nil
}

// DailyDemand returns the all-product daily demand series for the trend chart.
func (s *DashboardService) DailyDemand(ctx context.Context) (*domain.DailyDemandSeries, error) {
	records, _, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return demand.DailySeries(records), nil
}

// Products returns the distinct product names, sorted, for the selector.
func (s *DashboardService) Products(ctx context.Context) ([]string, error) {
	records, _, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return demand.Products(records), nil
}

// Forecast fits and extrapolates demand for one product. Callers must treat
// forecast.ErrInsufficientData and forecast.ErrUnavailable as expected
// outcomes, not failures.
func (s *DashboardService) Forecast(ctx context.Context, product string) (*domain.ForecastResult, error) {
	records, _, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	known := false
	for _, r := range records {
		if r.ProductName == product {
			known = true
			break
		}
	}
	if !known {
		return nil, fmt.Errorf("%w: %q", ErrUnknownProduct, product)
	}

	return s.forecaster.Forecast(ctx, demand.ProductSeries(records, product))
}

// Decisions evaluates reorder policy for every product.
func (s *DashboardService) Decisions(ctx context.Context) (*domain.DecisionTable, error) {
	records, fp, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return s.decisions(ctx, records, fp)
}

func (s *DashboardService) decisions(ctx context.Context, records []domain.SalesRecord, fp string) (*domain.DecisionTable, error) {
	if table, ok, err := s.cache.GetDecisions(ctx, fp); err == nil && ok {
		return table, nil
	} else if err != nil {
		log.Warn().Err(err).Msg("dashboard: cache get decisions failed")
	}

	table := s.calculator.Evaluate(demand.ProductMeans(records))

	if err := s.cache.SetDecisions(ctx, fp, table); err != nil {
		log.Warn().Err(err).Msg("dashboard: cache set decisions failed")
	}

	return table, nil
}

// fingerprint hashes the raw rows in load order. Any change to the dataset
// changes the key, which is the whole invalidation story.
func fingerprint(rows []domain.RawSalesRow) string {
	h := sha1.New()
	for _, row := range rows {
		fmt.Fprintf(h, "%s|%s|%g|%g\n", row.OrderDate, row.ProductName, row.Quantity, row.Sales)
	}
	return hex.EncodeToString(h.Sum(nil))
}
