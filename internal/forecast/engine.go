// internal/forecast/engine.go
package forecast

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rakapradana/supplychain-opt/internal/config"
	"github.com/rakapradana/supplychain-opt/internal/domain"
)

var (
	// ErrInsufficientData marks a product whose history is too short to fit
	// a model. Expected outcome, shown to the user as a warning.
	ErrInsufficientData = errors.New("not enough data for forecasting this product")

	// ErrUnavailable marks a fit that failed numerically or ran over its
	// time budget. Recoverable; the rest of the dashboard still renders.
	ErrUnavailable = errors.New("forecast unavailable")
)

// Engine fits an additive trend+seasonality model to one product's daily
// demand series and extrapolates a fixed horizon beyond the last observed
// date.
type Engine struct {
	horizonDays     int
	minObservations int
	maxIterations   int
	fitTimeout      time.Duration
}

func NewEngine(cfg config.ForecastConfig) *Engine {
	e := &Engine{
		horizonDays:     cfg.HorizonDays,
		minObservations: cfg.MinObservations,
		maxIterations:   cfg.MaxFitIterations,
		fitTimeout:      time.Duration(cfg.FitTimeoutMillis) * time.Millisecond,
	}
	if e.horizonDays <= 0 {
		e.horizonDays = 30
	}
	if e.minObservations <= 0 {
		e.minObservations = 10
	}
	return e
}

// Forecast fits the series and returns predictions covering every historical
// observation date plus HorizonDays consecutive future days. The series must
// be date-sorted with duplicates already aggregated (the demand package
// guarantees both).
//
// Outcomes: ErrInsufficientData when len(points) <= MinObservations,
// ErrUnavailable on numerical failure or fit timeout. Neither is a caller
// bug; both are surfaced to the presentation layer as warnings.
func (e *Engine) Forecast(ctx context.Context, series *domain.DailyDemandSeries) (*domain.ForecastResult, error) {
	if series == nil || len(series.Points) <= e.minObservations {
		return nil, ErrInsufficientData
	}

	points := series.Points
	for i := 1; i < len(points); i++ {
		if !points[i-1].Date.Before(points[i].Date) {
			return nil, fmt.Errorf("demand series for %q is not sorted with unique dates", series.Product)
		}
	}

	deadline := time.Now().Add(e.fitTimeout)
	if e.fitTimeout <= 0 {
		deadline = time.Time{}
	}
	if ctxDeadline, ok := ctx.Deadline(); ok && (deadline.IsZero() || ctxDeadline.Before(deadline)) {
		deadline = ctxDeadline
	}

	model, err := fitAdditive(points, e.maxIterations, deadline)
	if err != nil {
		return nil, err
	}

	result := &domain.ForecastResult{
		Product:      series.Product,
		HorizonDays:  e.horizonDays,
		Observations: len(points),
		Points:       make([]domain.ForecastPoint, 0, len(points)+e.horizonDays),
	}

	for _, p := range points {
		result.Points = append(result.Points, domain.ForecastPoint{
			Date:      p.Date,
			Predicted: model.predict(p.Date),
		})
	}

	last := points[len(points)-1].Date
	for day := 1; day <= e.horizonDays; day++ {
		date := last.AddDate(0, 0, day)
		result.Points = append(result.Points, domain.ForecastPoint{
			Date:      date,
			Predicted: model.predict(date),
		})
	}

	return result, nil
}
