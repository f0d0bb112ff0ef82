// internal/normalize/normalize.go
package normalize

import (
	"strings"
	"time"

	"github.com/rakapradana/supplychain-opt/internal/domain"
)

// dateFormats are tried in order. The source system writes dates
// day-before-month, so day-first layouts come first; ISO is accepted as a
// fallback for re-exported files.
var dateFormats = []string{
	"2/1/2006",
	"2/1/06",
	"2-1-2006",
	"2/1/2006 15:04",
	"2006-01-02",
	time.RFC3339,
}

// ParseOrderDate parses a raw order date string, day-first. Returns nil when
// no candidate layout matches; callers decide what a missing date means.
func ParseOrderDate(raw string) *time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	for _, format := range dateFormats {
		if t, err := time.Parse(format, raw); err == nil {
			return &t
		}
	}
	return nil
}

// Records coerces raw sales rows into SalesRecords. Rows with malformed
// dates are kept with a nil OrderDate rather than dropped, so downstream
// aggregations choose their own inclusion policy. Pure transform.
func Records(rows []domain.RawSalesRow) []domain.SalesRecord {
	records := make([]domain.SalesRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, domain.SalesRecord{
			OrderDate:   ParseOrderDate(row.OrderDate),
			ProductName: strings.TrimSpace(row.ProductName),
			Quantity:    row.Quantity,
			Sales:       row.Sales,
		})
	}
	return records
}
