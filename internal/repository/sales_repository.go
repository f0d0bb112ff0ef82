// internal/repository/sales_repository.go
package repository

import (
	"context"

	"github.com/rakapradana/supplychain-opt/internal/domain"
)

// SalesRepository loads the full raw sales table. Each dashboard refresh
// recomputes from scratch, so there is no pagination or incremental
// contract — one cold read per load.
type SalesRepository interface {
	FetchSales(ctx context.Context) ([]domain.RawSalesRow, error)
}
