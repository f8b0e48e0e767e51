package db

import (
	"context"
	"database/sql"
)

// DBTX is what the repositories run their statements against: the pool for
// standalone reads, or the transaction handed out by UnitOfWork.WithinTx so
// that a multi-ticket write lands all at once.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

var (
	_ DBTX = (*sql.DB)(nil)
	_ DBTX = (*sql.Tx)(nil)
)
