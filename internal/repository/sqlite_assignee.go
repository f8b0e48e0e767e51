package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/gantry/internal/db"
	"github.com/alexanderramin/gantry/internal/domain"
)

// SQLiteAssigneeRepo implements AssigneeRepo using a SQLite database.
type SQLiteAssigneeRepo struct {
	db db.DBTX
}

func NewSQLiteAssigneeRepo(db db.DBTX) *SQLiteAssigneeRepo {
	return &SQLiteAssigneeRepo{db: db}
}

func (r *SQLiteAssigneeRepo) Create(ctx context.Context, a *domain.Assignee) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO assignees (id, name, created_at) VALUES (?, ?, ?)`, a.ID, a.Name, nowUTC())
	if err != nil {
		return fmt.Errorf("inserting assignee: %w", err)
	}
	return nil
}

func (r *SQLiteAssigneeRepo) GetByID(ctx context.Context, id string) (*domain.Assignee, error) {
	var a domain.Assignee
	err := r.db.QueryRowContext(ctx, `SELECT id, name FROM assignees WHERE id = ?`, id).Scan(&a.ID, &a.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("assignee %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("scanning assignee: %w", err)
	}
	return &a, nil
}

// FindByPrefix resolves an id prefix, falling back to a case-insensitive
// exact name match so the CLI can say --assignee Ada.
func (r *SQLiteAssigneeRepo) FindByPrefix(ctx context.Context, prefix string) (*domain.Assignee, error) {
	found, err := r.query(ctx, `SELECT id, name FROM assignees WHERE id LIKE ? ESCAPE '\' LIMIT 2`, likePrefix(prefix))
	if err != nil {
		return nil, err
	}
	if len(found) == 0 {
		found, err = r.query(ctx, `SELECT id, name FROM assignees WHERE name = ? COLLATE NOCASE LIMIT 2`, prefix)
		if err != nil {
			return nil, err
		}
	}
	switch len(found) {
	case 0:
		return nil, fmt.Errorf("assignee %s: %w", prefix, ErrNotFound)
	case 1:
		return found[0], nil
	default:
		return nil, fmt.Errorf("assignee %s: %w", prefix, ErrAmbiguous)
	}
}

// List returns assignees in creation order, which is the order the
// workload ranking falls back to on ties.
func (r *SQLiteAssigneeRepo) List(ctx context.Context) ([]*domain.Assignee, error) {
	return r.query(ctx, `SELECT id, name FROM assignees ORDER BY created_at, rowid`)
}

func (r *SQLiteAssigneeRepo) Update(ctx context.Context, a *domain.Assignee) error {
	res, err := r.db.ExecContext(ctx, `UPDATE assignees SET name = ? WHERE id = ?`, a.Name, a.ID)
	if err != nil {
		return fmt.Errorf("updating assignee: %w", err)
	}
	return requireRow(res, "assignee", a.ID)
}

// Delete removes the assignee; tickets referencing it are set to NULL by
// the foreign key.
func (r *SQLiteAssigneeRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM assignees WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting assignee: %w", err)
	}
	return requireRow(res, "assignee", id)
}

func (r *SQLiteAssigneeRepo) query(ctx context.Context, query string, args ...any) ([]*domain.Assignee, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing assignees: %w", err)
	}
	defer rows.Close()
	var out []*domain.Assignee
	for rows.Next() {
		var a domain.Assignee
		if err := rows.Scan(&a.ID, &a.Name); err != nil {
			return nil, fmt.Errorf("scanning assignee row: %w", err)
		}
		out = append(out, &a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating assignees: %w", err)
	}
	return out, nil
}
