package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/gantry/internal/db"
	"github.com/alexanderramin/gantry/internal/domain"
)

// SQLiteTicketRepo implements TicketRepo using a SQLite database.
type SQLiteTicketRepo struct {
	db db.DBTX
}

// NewSQLiteTicketRepo creates a new SQLiteTicketRepo.
func NewSQLiteTicketRepo(db db.DBTX) *SQLiteTicketRepo {
	return &SQLiteTicketRepo{db: db}
}

const ticketColumns = `id, project_id, parent_id, assignee_id, name, start_date, end_date,
	sort_order, created_at, updated_at`

func (r *SQLiteTicketRepo) Create(ctx context.Context, t *domain.Ticket) error {
	query := `INSERT INTO tickets (` + ticketColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		t.ID,
		t.ProjectID,
		nullableString(t.ParentID),
		nullableString(t.AssigneeID),
		t.Name,
		t.StartDate.Format(dateLayout),
		t.EndDate.Format(dateLayout),
		t.SortOrder,
		t.CreatedAt.Format(time.RFC3339),
		t.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting ticket: %w", err)
	}
	return nil
}

func (r *SQLiteTicketRepo) GetByID(ctx context.Context, id string) (*domain.Ticket, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+ticketColumns+` FROM tickets WHERE id = ?`, id)
	t, err := scanTicket(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("ticket %s: %w", id, ErrNotFound)
	}
	return t, err
}

// FindByPrefix resolves a full id or a unique id prefix.
func (r *SQLiteTicketRepo) FindByPrefix(ctx context.Context, prefix string) (*domain.Ticket, error) {
	tickets, err := r.query(ctx,
		`SELECT `+ticketColumns+` FROM tickets WHERE id LIKE ? ESCAPE '\' LIMIT 2`, likePrefix(prefix))
	if err != nil {
		return nil, err
	}
	switch len(tickets) {
	case 0:
		return nil, fmt.Errorf("ticket %s: %w", prefix, ErrNotFound)
	case 1:
		return tickets[0], nil
	default:
		return nil, fmt.Errorf("ticket %s: %w", prefix, ErrAmbiguous)
	}
}

// ListByProject returns a project's tickets grouped by parent and ordered
// by sort_order. Display order is derived by the tree package, not SQL.
func (r *SQLiteTicketRepo) ListByProject(ctx context.Context, projectID string) ([]*domain.Ticket, error) {
	return r.query(ctx, `SELECT `+ticketColumns+` FROM tickets WHERE project_id = ?
		ORDER BY parent_id IS NOT NULL, parent_id, sort_order, created_at`, projectID)
}

func (r *SQLiteTicketRepo) ListAll(ctx context.Context) ([]*domain.Ticket, error) {
	return r.query(ctx, `SELECT `+ticketColumns+` FROM tickets
		ORDER BY project_id, parent_id IS NOT NULL, parent_id, sort_order, created_at`)
}

func (r *SQLiteTicketRepo) Update(ctx context.Context, t *domain.Ticket) error {
	query := `UPDATE tickets SET project_id = ?, parent_id = ?, assignee_id = ?, name = ?,
		start_date = ?, end_date = ?, sort_order = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		t.ProjectID,
		nullableString(t.ParentID),
		nullableString(t.AssigneeID),
		t.Name,
		t.StartDate.Format(dateLayout),
		t.EndDate.Format(dateLayout),
		t.SortOrder,
		t.UpdatedAt.Format(time.RFC3339),
		t.ID,
	)
	if err != nil {
		return fmt.Errorf("updating ticket: %w", err)
	}
	return requireRow(res, "ticket", t.ID)
}

// DeleteMany removes every ticket in ids in one statement.
func (r *SQLiteTicketRepo) DeleteMany(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	_, err := r.db.ExecContext(ctx, `DELETE FROM tickets WHERE id IN (`+placeholders(len(ids))+`)`, args...)
	if err != nil {
		return fmt.Errorf("deleting tickets: %w", err)
	}
	return nil
}

// ClearAssignee nulls every reference to assigneeID and reports how many
// tickets changed.
func (r *SQLiteTicketRepo) ClearAssignee(ctx context.Context, assigneeID string) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE tickets SET assignee_id = NULL, updated_at = ? WHERE assignee_id = ?`, nowUTC(), assigneeID)
	if err != nil {
		return 0, fmt.Errorf("clearing assignee: %w", err)
	}
	return res.RowsAffected()
}

func (r *SQLiteTicketRepo) query(ctx context.Context, query string, args ...any) ([]*domain.Ticket, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing tickets: %w", err)
	}
	defer rows.Close()

	var tickets []*domain.Ticket
	for rows.Next() {
		t, err := scanTicket(rows)
		if err != nil {
			return nil, err
		}
		tickets = append(tickets, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tickets: %w", err)
	}
	return tickets, nil
}

func scanTicket(s scanner) (*domain.Ticket, error) {
	var t domain.Ticket
	var parentID, assigneeID sql.NullString
	var startStr, endStr, createdAtStr, updatedAtStr string

	err := s.Scan(
		&t.ID, &t.ProjectID, &parentID, &assigneeID, &t.Name,
		&startStr, &endStr, &t.SortOrder,
		&createdAtStr, &updatedAtStr,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning ticket: %w", err)
	}

	t.ParentID = stringPtr(parentID)
	t.AssigneeID = stringPtr(assigneeID)
	if t.StartDate, err = time.Parse(dateLayout, startStr); err != nil {
		return nil, fmt.Errorf("parsing start_date: %w", err)
	}
	if t.EndDate, err = time.Parse(dateLayout, endStr); err != nil {
		return nil, fmt.Errorf("parsing end_date: %w", err)
	}
	if t.CreatedAt, err = parseTimestamp("created_at", createdAtStr); err != nil {
		return nil, err
	}
	if t.UpdatedAt, err = parseTimestamp("updated_at", updatedAtStr); err != nil {
		return nil, err
	}
	return &t, nil
}
