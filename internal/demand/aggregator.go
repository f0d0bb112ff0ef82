// internal/demand/aggregator.go
package demand

import (
	"sort"
	"time"

	"github.com/rakapradana/supplychain-opt/internal/domain"
	"github.com/shopspring/decimal"
)

// dayKey collapses a timestamp to its calendar date so records from the same
// day group together regardless of time-of-day noise in the source.
func dayKey(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DailySeries sums quantity per calendar date across all products. Records
// without a parseable date are excluded here; they never had a day to land
// on. Single grouping pass, then a sort over the distinct dates.
func DailySeries(records []domain.SalesRecord) *domain.DailyDemandSeries {
	totals := make(map[time.Time]float64)
	for _, r := range records {
		if r.OrderDate == nil {
			continue
		}
		totals[dayKey(*r.OrderDate)] += r.Quantity
	}

	points := make([]domain.DemandPoint, 0, len(totals))
	for date, qty := range totals {
		points = append(points, domain.DemandPoint{Date: date, Quantity: qty})
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Date.Before(points[j].Date) })

	return &domain.DailyDemandSeries{Points: points}
}

// ProductSeries builds the dated demand series for one product, duplicates
// summed per day, sorted ascending. Dateless records are excluded (the
// forecast engine requires every observation to carry a date).
func ProductSeries(records []domain.SalesRecord, product string) *domain.DailyDemandSeries {
	totals := make(map[time.Time]float64)
	for _, r := range records {
		if r.ProductName != product || r.OrderDate == nil {
			continue
		}
		totals[dayKey(*r.OrderDate)] += r.Quantity
	}

	points := make([]domain.DemandPoint, 0, len(totals))
	for date, qty := range totals {
		points = append(points, domain.DemandPoint{Date: date, Quantity: qty})
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Date.Before(points[j].Date) })

	return &domain.DailyDemandSeries{Product: product, Points: points}
}

// ProductMeans computes the mean quantity per record for every product.
// Records with an unparseable date still count: the mean is over order
// lines, not calendar days, and a bad date string says nothing about the
// quantity on the line.
func ProductMeans(records []domain.SalesRecord) map[string]float64 {
	sums := make(map[string]float64)
	counts := make(map[string]int)
	for _, r := range records {
		sums[r.ProductName] += r.Quantity
		counts[r.ProductName]++
	}

	means := make(map[string]float64, len(sums))
	for product, sum := range sums {
		means[product] = sum / float64(counts[product])
	}
	return means
}

// Products returns the distinct product names in ascending order.
func Products(records []domain.SalesRecord) []string {
	seen := make(map[string]struct{})
	for _, r := range records {
		seen[r.ProductName] = struct{}{}
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Summary computes the headline KPIs over the full record set, dateless
// records included. Revenue is summed and rounded in decimal space so
// half-cent amounts round half-away-from-zero (100.005 + 50.00 => 150.01)
// instead of disappearing into float error.
func Summary(records []domain.SalesRecord) domain.BusinessSummary {
	var totalQty float64
	revenue := decimal.Zero
	seen := make(map[string]struct{})

	for _, r := range records {
		totalQty += r.Quantity
		revenue = revenue.Add(decimal.NewFromFloat(r.Sales))
		seen[r.ProductName] = struct{}{}
	}

	rounded, _ := revenue.Round(2).Float64()

	return domain.BusinessSummary{
		TotalOrders:    len(records),
		TotalQuantity:  totalQty,
		TotalRevenue:   rounded,
		UniqueProducts: len(seen),
	}
}
