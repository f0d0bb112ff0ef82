// internal/repository/postgres/sales_repository.go
package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rakapradana/supplychain-opt/internal/domain"
)

type salesRepository struct {
	db *DB
}

func NewSalesRepository(db *DB) *salesRepository {
	return &salesRepository{db: db}
}

// FetchSales reads the full sales table. The order date stays a raw string
// here; normalization owns parsing it so the same tolerant day-first logic
// applies to every data source.
func (r *salesRepository) FetchSales(ctx context.Context) ([]domain.RawSalesRow, error) {
	query := `
		SELECT
			order_date,
			product_name,
			quantity,
			sales
		FROM sales
		ORDER BY id
	`

	var rows []domain.RawSalesRow
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("failed to fetch sales records: %w", err)
	}

	return rows, nil
}

const createSalesTable = `
	CREATE TABLE IF NOT EXISTS sales (
		id SERIAL PRIMARY KEY,
		order_date TEXT,
		product_name TEXT NOT NULL,
		quantity DOUBLE PRECISION NOT NULL,
		sales DOUBLE PRECISION NOT NULL
	)
`

// SaveSales loads a batch of raw sales rows, creating the table if it does
// not exist yet. The whole load runs in one transaction so a partial import
// never becomes visible.
func (r *salesRepository) SaveSales(ctx context.Context, rows []domain.RawSalesRow, truncate bool) error {
	if _, err := r.db.ExecContext(ctx, createSalesTable); err != nil {
		return fmt.Errorf("failed to ensure sales table: %w", err)
	}

	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		if truncate {
			if _, err := tx.ExecContext(ctx, "TRUNCATE sales"); err != nil {
				return fmt.Errorf("failed to truncate sales: %w", err)
			}
		}

		stmt, err := tx.PrepareContext(ctx,
			"INSERT INTO sales (order_date, product_name, quantity, sales) VALUES ($1, $2, $3, $4)")
		if err != nil {
			return fmt.Errorf("failed to prepare statement: %w", err)
		}
		defer stmt.Close()

		for _, row := range rows {
			if _, err := stmt.ExecContext(ctx, row.OrderDate, row.ProductName, row.Quantity, row.Sales); err != nil {
				return fmt.Errorf("failed to insert record: %w", err)
			}
		}

		return nil
	})
}
