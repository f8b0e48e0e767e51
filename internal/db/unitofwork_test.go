package db_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/alexanderramin/gantry/internal/db"
	"github.com/alexanderramin/gantry/internal/domain"
	"github.com/alexanderramin/gantry/internal/repository"
	"github.com/alexanderramin/gantry/internal/testutil"
	"github.com/alexanderramin/gantry/internal/tree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errMidReorder = errors.New("failed after first write")

type reorderFixture struct {
	db      *sql.DB
	uow     *db.SQLiteUnitOfWork
	tickets *repository.SQLiteTicketRepo
	project string
	ids     map[string]string // name -> id
}

// newReorderFixture stores one project with the root siblings A, B, C.
func newReorderFixture(t *testing.T) *reorderFixture {
	t.Helper()
	database := testutil.NewTestDB(t)
	ctx := context.Background()

	p := testutil.NewTestProject("Shed")
	require.NoError(t, repository.NewSQLiteProjectRepo(database).Create(ctx, p))

	f := &reorderFixture{
		db:      database,
		uow:     db.NewSQLiteUnitOfWork(database),
		tickets: repository.NewSQLiteTicketRepo(database),
		project: p.ID,
		ids:     map[string]string{},
	}
	for i, name := range []string{"A", "B", "C"} {
		tk := testutil.NewTestTicket(p.ID, name, testutil.WithSortOrder(i))
		require.NoError(t, f.tickets.Create(ctx, tk))
		f.ids[name] = tk.ID
	}
	return f
}

// changed returns the tickets a reorder replaced.
func changed(before, after []*domain.Ticket) []*domain.Ticket {
	orig := make(map[string]*domain.Ticket, len(before))
	for _, t := range before {
		orig[t.ID] = t
	}
	var out []*domain.Ticket
	for _, t := range after {
		if orig[t.ID] != t {
			out = append(out, t)
		}
	}
	return out
}

// reorderInTx drags C onto A and persists the result through tx. When
// failAfter > 0 it stops with errMidReorder after that many writes.
func (f *reorderFixture) reorderInTx(ctx context.Context, tx db.DBTX, failAfter int) error {
	repo := repository.NewSQLiteTicketRepo(tx)
	all, err := repo.ListByProject(ctx, f.project)
	if err != nil {
		return err
	}
	for n, t := range changed(all, tree.Reorder(all, f.ids["C"], f.ids["A"])) {
		if failAfter > 0 && n == failAfter {
			return errMidReorder
		}
		if err := repo.Update(ctx, t); err != nil {
			return err
		}
	}
	return nil
}

func (f *reorderFixture) sortOrders(t *testing.T) map[string]int {
	t.Helper()
	all, err := f.tickets.ListByProject(context.Background(), f.project)
	require.NoError(t, err)
	got := map[string]int{}
	for _, tk := range all {
		got[tk.Name] = tk.SortOrder
	}
	return got
}

func TestWithinTx_CommitsReorder(t *testing.T) {
	f := newReorderFixture(t)

	err := f.uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		return f.reorderInTx(ctx, tx, 0)
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"C": 0, "A": 1, "B": 2}, f.sortOrders(t))
}

func TestWithinTx_RollsBackPartialReorder(t *testing.T) {
	f := newReorderFixture(t)

	err := f.uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		return f.reorderInTx(ctx, tx, 1)
	})
	require.ErrorIs(t, err, errMidReorder)
	assert.Equal(t, map[string]int{"A": 0, "B": 1, "C": 2}, f.sortOrders(t), "first write must not survive")
}

func TestFailOnNthExecUoW_StopsReorderMidway(t *testing.T) {
	f := newReorderFixture(t)
	uow := &testutil.FailOnNthExecUoW{DB: f.db, FailOn: 2}

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		return f.reorderInTx(ctx, tx, 0)
	})
	require.ErrorIs(t, err, testutil.ErrInjectedWrite)
	assert.Equal(t, map[string]int{"A": 0, "B": 1, "C": 2}, f.sortOrders(t))
}

func TestWithinTx_RollsBackOnPanic(t *testing.T) {
	f := newReorderFixture(t)

	assert.Panics(t, func() {
		_ = f.uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
			_ = f.reorderInTx(ctx, tx, 0)
			panic("boom")
		})
	})
	assert.Equal(t, map[string]int{"A": 0, "B": 1, "C": 2}, f.sortOrders(t))
}

func TestWithinTx_CancelledContext(t *testing.T) {
	f := newReorderFixture(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := f.uow.WithinTx(ctx, func(context.Context, db.DBTX) error {
		called = true
		return nil
	})
	require.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}
