package repository

import (
	"context"

	"github.com/alexanderramin/gantry/internal/domain"
)

type ProjectRepo interface {
	Create(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	FindByPrefix(ctx context.Context, prefix string) (*domain.Project, error)
	List(ctx context.Context) ([]*domain.Project, error)
	Update(ctx context.Context, p *domain.Project) error
	Delete(ctx context.Context, id string) error
}

type TicketRepo interface {
	Create(ctx context.Context, t *domain.Ticket) error
	GetByID(ctx context.Context, id string) (*domain.Ticket, error)
	FindByPrefix(ctx context.Context, prefix string) (*domain.Ticket, error)
	ListByProject(ctx context.Context, projectID string) ([]*domain.Ticket, error)
	ListAll(ctx context.Context) ([]*domain.Ticket, error)
	Update(ctx context.Context, t *domain.Ticket) error
	DeleteMany(ctx context.Context, ids []string) error
	ClearAssignee(ctx context.Context, assigneeID string) (int64, error)
}

type AssigneeRepo interface {
	Create(ctx context.Context, a *domain.Assignee) error
	GetByID(ctx context.Context, id string) (*domain.Assignee, error)
	FindByPrefix(ctx context.Context, prefix string) (*domain.Assignee, error)
	List(ctx context.Context) ([]*domain.Assignee, error)
	Update(ctx context.Context, a *domain.Assignee) error
	Delete(ctx context.Context, id string) error
}

// ExpansionRepo persists which tickets are expanded in the planner.
type ExpansionRepo interface {
	// Get returns the expanded set of a project and whether the project
	// has been opened before.
	Get(ctx context.Context, projectID string) (map[string]bool, bool, error)
	// Replace overwrites the expanded set and marks the project opened.
	Replace(ctx context.Context, projectID string, expanded map[string]bool) error
	SetExpanded(ctx context.Context, projectID, ticketID string, expanded bool) error
}
