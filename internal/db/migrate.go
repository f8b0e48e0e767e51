package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	if err := migrateDensifySortOrder(db); err != nil {
		return fmt.Errorf("densifying ticket sort order: %w", err)
	}
	return nil
}

// migrateDensifySortOrder renumbers every sibling group whose sort_order
// values are not exactly 0..n-1. Databases written before reorders were
// normalized can hold gaps and duplicates. Idempotent.
func migrateDensifySortOrder(db *sql.DB) error {
	ctx := context.Background()

	rows, err := db.QueryContext(ctx, `
		SELECT project_id, parent_id
		FROM tickets
		GROUP BY project_id, parent_id
		HAVING MIN(sort_order) != 0
		    OR MAX(sort_order) != COUNT(*) - 1
		    OR COUNT(DISTINCT sort_order) != COUNT(*)`)
	if err != nil {
		return fmt.Errorf("finding sparse sibling groups: %w", err)
	}
	type group struct {
		projectID string
		parentID  sql.NullString
	}
	var groups []group
	for rows.Next() {
		var g group
		if err := rows.Scan(&g.projectID, &g.parentID); err != nil {
			rows.Close()
			return fmt.Errorf("scanning sibling group: %w", err)
		}
		groups = append(groups, g)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}
	if len(groups) == 0 {
		return nil
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting migration transaction: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	for _, g := range groups {
		ids, err := groupIDs(ctx, tx, g.projectID, g.parentID)
		if err != nil {
			return err
		}
		for i, id := range ids {
			if _, err := tx.ExecContext(ctx, `UPDATE tickets SET sort_order = ? WHERE id = ?`, i, id); err != nil {
				return fmt.Errorf("renumbering ticket %s: %w", id, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing sort order migration: %w", err)
	}
	committed = true
	return nil
}

func groupIDs(ctx context.Context, tx *sql.Tx, projectID string, parentID sql.NullString) ([]string, error) {
	rows, err := tx.QueryContext(ctx, `
		SELECT id FROM tickets
		WHERE project_id = ? AND parent_id IS ?
		ORDER BY sort_order, created_at, id`, projectID, parentID)
	if err != nil {
		return nil, fmt.Errorf("listing sibling group: %w", err)
	}
	defer rows.Close()
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS projects (
		id          TEXT PRIMARY KEY,
		name        TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		manager     TEXT NOT NULL DEFAULT '',
		start_date  TEXT,
		end_date    TEXT,
		status      TEXT NOT NULL DEFAULT 'planning'
		            CHECK(status IN ('planning','in_progress','completed')),
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS assignees (
		id         TEXT PRIMARY KEY,
		name       TEXT NOT NULL,
		created_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS tickets (
		id          TEXT PRIMARY KEY,
		project_id  TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		parent_id   TEXT REFERENCES tickets(id) ON DELETE CASCADE,
		assignee_id TEXT REFERENCES assignees(id) ON DELETE SET NULL,
		name        TEXT NOT NULL,
		start_date  TEXT NOT NULL,
		end_date    TEXT NOT NULL,
		sort_order  INTEGER NOT NULL DEFAULT 0,
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL,
		CHECK(end_date >= start_date)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_tickets_project ON tickets(project_id)`,
	`CREATE INDEX IF NOT EXISTS idx_tickets_parent ON tickets(parent_id)`,
	`CREATE INDEX IF NOT EXISTS idx_tickets_assignee ON tickets(assignee_id)`,

	// Expanded rows in the planner, persisted per project.
	`CREATE TABLE IF NOT EXISTS expanded_tickets (
		ticket_id  TEXT PRIMARY KEY REFERENCES tickets(id) ON DELETE CASCADE,
		project_id TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE
	)`,

	// Marks projects whose expanded set has been initialized, so an empty
	// set means "all collapsed" rather than "never opened".
	`CREATE TABLE IF NOT EXISTS project_views (
		project_id TEXT PRIMARY KEY REFERENCES projects(id) ON DELETE CASCADE,
		opened_at  TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_expanded_project ON expanded_tickets(project_id)`,

	// v2: planning metadata on projects
	`ALTER TABLE projects ADD COLUMN estimated_hours REAL`,
	`ALTER TABLE projects ADD COLUMN estimated_budget REAL`,
	`ALTER TABLE projects ADD COLUMN notes TEXT NOT NULL DEFAULT ''`,
}
