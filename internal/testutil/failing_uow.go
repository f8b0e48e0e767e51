package testutil

import (
	"context"
	"database/sql"
	"errors"

	"github.com/alexanderramin/gantry/internal/db"
)

// ErrInjectedWrite is returned when FailOnNthExecUoW.Err is nil.
var ErrInjectedWrite = errors.New("injected write failure")

// FailOnNthExecUoW commits like the SQLite unit of work but makes the
// FailOn-th write (1-based) of each transaction return Err, so tests can
// stop a cascade or renumber halfway and check that nothing was kept.
// Reads are never counted.
type FailOnNthExecUoW struct {
	DB     *sql.DB
	FailOn int
	Err    error
}

func (u *FailOnNthExecUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	failErr := u.Err
	if failErr == nil {
		failErr = ErrInjectedWrite
	}
	return db.NewSQLiteUnitOfWork(u.DB).WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return fn(ctx, &failingWrites{DBTX: tx, left: u.FailOn, err: failErr})
	})
}

type failingWrites struct {
	db.DBTX
	left int
	err  error
}

func (f *failingWrites) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	f.left--
	if f.left == 0 {
		return nil, f.err
	}
	return f.DBTX.ExecContext(ctx, query, args...)
}
