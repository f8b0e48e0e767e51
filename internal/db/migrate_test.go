package db

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestMigrate_Idempotent(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, Migrate(db))
	require.NoError(t, Migrate(db))
}

func TestMigrate_CreatesAllTables(t *testing.T) {
	db := openTestDB(t)

	expected := []string{"projects", "assignees", "tickets", "expanded_tickets", "project_views"}
	for _, table := range expected {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
		require.NoError(t, err, "table %s should exist", table)
		assert.Equal(t, table, name)
	}
}

func TestMigrate_CreatesIndexes(t *testing.T) {
	db := openTestDB(t)

	expected := []string{
		"idx_tickets_project",
		"idx_tickets_parent",
		"idx_tickets_assignee",
		"idx_expanded_project",
	}
	for _, idx := range expected {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='index' AND name=?`, idx).Scan(&name)
		require.NoError(t, err, "index %s should exist", idx)
	}
}

func seedProject(t *testing.T, db *sql.DB, id string) {
	t.Helper()
	_, err := db.Exec(`INSERT INTO projects (id, name, created_at, updated_at) VALUES (?, ?, '2025-01-01T00:00:00Z', '2025-01-01T00:00:00Z')`, id, id)
	require.NoError(t, err)
}

func seedTicket(t *testing.T, db *sql.DB, id, projectID string, parentID any, order int) {
	t.Helper()
	_, err := db.Exec(`INSERT INTO tickets (id, project_id, parent_id, name, start_date, end_date, sort_order, created_at, updated_at)
		VALUES (?, ?, ?, ?, '2025-01-01', '2025-01-02', ?, '2025-01-01T00:00:00Z', '2025-01-01T00:00:00Z')`,
		id, projectID, parentID, id, order)
	require.NoError(t, err)
}

func TestMigrate_ProjectCascadeDeletesTickets(t *testing.T) {
	db := openTestDB(t)
	seedProject(t, db, "p1")
	seedTicket(t, db, "t1", "p1", nil, 0)
	seedTicket(t, db, "t2", "p1", "t1", 0)

	_, err := db.Exec(`DELETE FROM projects WHERE id = 'p1'`)
	require.NoError(t, err)

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM tickets`).Scan(&n))
	assert.Zero(t, n)
}

func TestMigrate_AssigneeDeleteNullsReference(t *testing.T) {
	db := openTestDB(t)
	seedProject(t, db, "p1")
	_, err := db.Exec(`INSERT INTO assignees (id, name, created_at) VALUES ('a1', 'Ada', '2025-01-01T00:00:00Z')`)
	require.NoError(t, err)
	seedTicket(t, db, "t1", "p1", nil, 0)
	_, err = db.Exec(`UPDATE tickets SET assignee_id = 'a1' WHERE id = 't1'`)
	require.NoError(t, err)

	_, err = db.Exec(`DELETE FROM assignees WHERE id = 'a1'`)
	require.NoError(t, err)

	var assignee sql.NullString
	require.NoError(t, db.QueryRow(`SELECT assignee_id FROM tickets WHERE id = 't1'`).Scan(&assignee))
	assert.False(t, assignee.Valid)
}

func TestMigrate_RejectsInvertedDates(t *testing.T) {
	db := openTestDB(t)
	seedProject(t, db, "p1")
	_, err := db.Exec(`INSERT INTO tickets (id, project_id, name, start_date, end_date, created_at, updated_at)
		VALUES ('t', 'p1', 't', '2025-02-01', '2025-01-01', 'x', 'x')`)
	assert.Error(t, err)
}
