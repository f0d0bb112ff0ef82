// internal/repository/csvfile/sales_repository.go
package csvfile

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/rakapradana/supplychain-opt/internal/domain"
	"github.com/rs/zerolog/log"
)

// SalesRepository reads raw sales rows from a local CSV export. Used for
// demos and for the seed CLI; production reads go through Postgres.
type SalesRepository struct {
	path string
}

func NewSalesRepository(path string) *SalesRepository {
	return &SalesRepository{path: path}
}

// FetchSales parses the CSV in one pass. Rows missing a usable quantity or
// sales value are skipped with a warning; date strings are passed through
// untouched for the normalizer to judge.
func (r *SalesRepository) FetchSales(ctx context.Context) ([]domain.RawSalesRow, error) {
	file, err := os.Open(r.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sales file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	// Map of column indices
	colMap := make(map[string]int)
	for i, col := range header {
		colMap[strings.TrimSpace(col)] = i
	}
	for _, col := range []string{"Order_Date", "Product Name", "Quantity", "Sales"} {
		if _, ok := colMap[col]; !ok {
			return nil, fmt.Errorf("sales file %s missing column %q", r.path, col)
		}
	}

	var rows []domain.RawSalesRow
	line := 1
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading record: %w", err)
		}
		line++

		quantity, qtyErr := strconv.ParseFloat(strings.TrimSpace(record[colMap["Quantity"]]), 64)
		sales, salesErr := strconv.ParseFloat(strings.TrimSpace(record[colMap["Sales"]]), 64)
		if qtyErr != nil || salesErr != nil {
			log.Warn().Int("line", line).Str("file", r.path).Msg("skipping row with non-numeric quantity or sales")
			continue
		}

		rows = append(rows, domain.RawSalesRow{
			OrderDate:   record[colMap["Order_Date"]],
			ProductName: record[colMap["Product Name"]],
			Quantity:    quantity,
			Sales:       sales,
		})
	}

	return rows, nil
}
