package repository

import (
	"context"
	"fmt"

	"github.com/alexanderramin/gantry/internal/db"
)

// SQLiteExpansionRepo implements ExpansionRepo using a SQLite database.
type SQLiteExpansionRepo struct {
	db db.DBTX
}

func NewSQLiteExpansionRepo(db db.DBTX) *SQLiteExpansionRepo {
	return &SQLiteExpansionRepo{db: db}
}

func (r *SQLiteExpansionRepo) Get(ctx context.Context, projectID string) (map[string]bool, bool, error) {
	var n int
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM project_views WHERE project_id = ?`, projectID).Scan(&n); err != nil {
		return nil, false, fmt.Errorf("checking project view: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, `SELECT ticket_id FROM expanded_tickets WHERE project_id = ?`, projectID)
	if err != nil {
		return nil, false, fmt.Errorf("listing expanded tickets: %w", err)
	}
	defer rows.Close()

	expanded := make(map[string]bool)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, false, fmt.Errorf("scanning expanded ticket: %w", err)
		}
		expanded[id] = true
	}
	if err := rows.Err(); err != nil {
		return nil, false, fmt.Errorf("iterating expanded tickets: %w", err)
	}
	return expanded, n > 0, nil
}

func (r *SQLiteExpansionRepo) Replace(ctx context.Context, projectID string, expanded map[string]bool) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM expanded_tickets WHERE project_id = ?`, projectID); err != nil {
		return fmt.Errorf("clearing expanded tickets: %w", err)
	}
	for id, on := range expanded {
		if !on {
			continue
		}
		if _, err := r.db.ExecContext(ctx,
			`INSERT INTO expanded_tickets (ticket_id, project_id) VALUES (?, ?)`, id, projectID); err != nil {
			return fmt.Errorf("storing expanded ticket: %w", err)
		}
	}
	return r.markOpened(ctx, projectID)
}

func (r *SQLiteExpansionRepo) SetExpanded(ctx context.Context, projectID, ticketID string, expanded bool) error {
	var err error
	if expanded {
		_, err = r.db.ExecContext(ctx,
			`INSERT OR IGNORE INTO expanded_tickets (ticket_id, project_id) VALUES (?, ?)`, ticketID, projectID)
	} else {
		_, err = r.db.ExecContext(ctx, `DELETE FROM expanded_tickets WHERE ticket_id = ?`, ticketID)
	}
	if err != nil {
		return fmt.Errorf("toggling expanded ticket: %w", err)
	}
	return r.markOpened(ctx, projectID)
}

func (r *SQLiteExpansionRepo) markOpened(ctx context.Context, projectID string) error {
	if _, err := r.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO project_views (project_id, opened_at) VALUES (?, ?)`, projectID, nowUTC()); err != nil {
		return fmt.Errorf("marking project opened: %w", err)
	}
	return nil
}
