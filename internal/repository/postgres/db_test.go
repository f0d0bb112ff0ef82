// internal/repository/postgres/db_test.go
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/rakapradana/supplychain-opt/internal/config"
	"github.com/stretchr/testify/require"
)

func newMockDB(t *testing.T) (*DB, sqlmock.Sqlmock) {
	t.Helper()

	raw, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { raw.Close() })

	return newPool(sqlx.NewDb(raw, "sqlmock")), mock
}

func TestWithTxCommitsOnSuccess(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE sales").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := db.WithTx(context.Background(), func(tx *sql.Tx) error {
		_, execErr := tx.ExecContext(context.Background(), "UPDATE sales SET quantity = 1")
		return execErr
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestWithTxRollsBackOnError(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectRollback()

	boom := errors.New("boom")
	err := db.WithTx(context.Background(), func(tx *sql.Tx) error {
		return boom
	})
	require.ErrorIs(t, err, boom)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestWithTxHonorsCancelledContext(t *testing.T) {
	db, _ := newMockDB(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := db.WithTx(ctx, func(tx *sql.Tx) error {
		t.Fatal("transaction body should not run")
		return nil
	})
	require.Error(t, err)
}

func TestNewDBFailureIsNotSticky(t *testing.T) {
	// Connecting to a closed port must fail on every call, never
	// degrade into a (nil, nil) result on the second attempt.
	cfg := &config.DatabaseConfig{
		Host:     "127.0.0.1",
		Port:     "1",
		User:     "nobody",
		Password: "nothing",
		DBName:   "missing",
		SSLMode:  "disable",
	}

	first, err := NewDB(cfg)
	require.Error(t, err)
	require.Nil(t, first)

	second, err := NewDB(cfg)
	require.Error(t, err)
	require.Nil(t, second)
}
