// internal/repository/postgres/sales_repository_test.go
package postgres

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/rakapradana/supplychain-opt/internal/domain"
	"github.com/stretchr/testify/require"
)

const insertSalesStmt = "INSERT INTO sales (order_date, product_name, quantity, sales) VALUES ($1, $2, $3, $4)"

func sampleRows() []domain.RawSalesRow {
	return []domain.RawSalesRow{
		{OrderDate: "5/1/2017", ProductName: "Widget", Quantity: 10, Sales: 100},
		{OrderDate: "6/1/2017", ProductName: "Gadget", Quantity: 2, Sales: 50.5},
	}
}

func TestFetchSalesReadsAllRows(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery("SELECT").
		WillReturnRows(sqlmock.NewRows([]string{"order_date", "product_name", "quantity", "sales"}).
			AddRow("5/1/2017", "Widget", 10.0, 100.0).
			AddRow("bad-date", "Gadget", 2.0, 50.5))

	rows, err := NewSalesRepository(db).FetchSales(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.Equal(t, "Widget", rows[0].ProductName)
	require.Equal(t, "bad-date", rows[1].OrderDate)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveSalesLoadsInOneTransaction(t *testing.T) {
	db, mock := newMockDB(t)
	rows := sampleRows()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS sales").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectBegin()
	prep := mock.ExpectPrepare(regexp.QuoteMeta(insertSalesStmt))
	for _, row := range rows {
		prep.ExpectExec().
			WithArgs(row.OrderDate, row.ProductName, row.Quantity, row.Sales).
			WillReturnResult(sqlmock.NewResult(1, 1))
	}
	mock.ExpectCommit()

	err := NewSalesRepository(db).SaveSales(context.Background(), rows, false)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveSalesTruncatesWhenAsked(t *testing.T) {
	db, mock := newMockDB(t)
	rows := sampleRows()[:1]

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS sales").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectBegin()
	mock.ExpectExec("TRUNCATE sales").WillReturnResult(sqlmock.NewResult(0, 0))
	prep := mock.ExpectPrepare(regexp.QuoteMeta(insertSalesStmt))
	prep.ExpectExec().
		WithArgs(rows[0].OrderDate, rows[0].ProductName, rows[0].Quantity, rows[0].Sales).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	err := NewSalesRepository(db).SaveSales(context.Background(), rows, true)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveSalesRollsBackOnInsertFailure(t *testing.T) {
	db, mock := newMockDB(t)
	rows := sampleRows()[:1]

	boom := errors.New("insert failed")
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS sales").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectBegin()
	prep := mock.ExpectPrepare(regexp.QuoteMeta(insertSalesStmt))
	prep.ExpectExec().
		WithArgs(rows[0].OrderDate, rows[0].ProductName, rows[0].Quantity, rows[0].Sales).
		WillReturnError(boom)
	mock.ExpectRollback()

	err := NewSalesRepository(db).SaveSales(context.Background(), rows, false)
	require.ErrorIs(t, err, boom)
	require.NoError(t, mock.ExpectationsWereMet())
}
