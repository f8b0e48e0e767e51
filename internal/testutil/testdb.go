package testutil

import (
	"database/sql"
	"testing"

	"github.com/alexanderramin/gantry/internal/db"
	"github.com/stretchr/testify/require"
)

// NewTestDB opens a private in-memory planner database with the schema
// migrated. It is closed by t.Cleanup.
func NewTestDB(t testing.TB) *sql.DB {
	t.Helper()
	database, err := db.OpenDB(":memory:")
	require.NoError(t, err, "opening in-memory planner db")
	t.Cleanup(func() { _ = database.Close() })
	return database
}

func NewTestUoW(database *sql.DB) db.UnitOfWork {
	return db.NewSQLiteUnitOfWork(database)
}
