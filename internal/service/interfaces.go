package service

import (
	"context"
	"time"

	"github.com/alexanderramin/gantry/internal/dashboard"
	"github.com/alexanderramin/gantry/internal/domain"
	"github.com/alexanderramin/gantry/internal/importer"
	"github.com/alexanderramin/gantry/internal/tree"
)

type ProjectService interface {
	Create(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	// Resolve accepts a full id or a unique id prefix.
	Resolve(ctx context.Context, ref string) (*domain.Project, error)
	List(ctx context.Context) ([]*domain.Project, error)
	Update(ctx context.Context, p *domain.Project) error
	// Delete removes the project together with all of its tickets.
	Delete(ctx context.Context, id string) error
}

type AssigneeService interface {
	Create(ctx context.Context, name string) (*domain.Assignee, error)
	Resolve(ctx context.Context, ref string) (*domain.Assignee, error)
	List(ctx context.Context) ([]*domain.Assignee, error)
	Rename(ctx context.Context, id, name string) error
	// Delete removes the assignee and unassigns its tickets. It returns
	// how many tickets were unassigned.
	Delete(ctx context.Context, id string) (int, error)
}

type TicketService interface {
	// Create appends the ticket to the end of its sibling group and expands
	// its parent.
	Create(ctx context.Context, t *domain.Ticket) error
	GetByID(ctx context.Context, id string) (*domain.Ticket, error)
	Resolve(ctx context.Context, ref string) (*domain.Ticket, error)
	ListByProject(ctx context.Context, projectID string) ([]*domain.Ticket, error)
	// Update saves name, dates, assignee and parent. A new parent moves the
	// ticket to the end of that parent's children.
	Update(ctx context.Context, t *domain.Ticket) error
	// Delete removes the ticket and every descendant and returns their ids.
	Delete(ctx context.Context, id string) ([]string, error)
	// Reorder commits a list drag of draggedID onto targetID. It reports
	// whether anything changed.
	Reorder(ctx context.Context, draggedID, targetID string) (bool, error)
	// MoveBy shifts a ticket delta places among its siblings.
	MoveBy(ctx context.Context, id string, delta int) (bool, error)
	// CommitSchedule saves the dates of a released timeline gesture. An
	// unchanged schedule is not written.
	CommitSchedule(ctx context.Context, candidate *domain.Ticket) (bool, error)
}

// Snapshot is everything the planner needs to draw one project.
type Snapshot struct {
	Project  *domain.Project
	Tickets  []*domain.Ticket
	Expanded map[string]bool
	Rows     []tree.Row
}

type PlannerService interface {
	// Load returns the project's tickets, its expanded set and the visible
	// rows. The first load of a project expands every parent.
	Load(ctx context.Context, projectID string) (*Snapshot, error)
	ToggleExpanded(ctx context.Context, projectID, ticketID string) (bool, error)
	SetAllExpanded(ctx context.Context, projectID string, expanded bool) error
}

// DashboardReport pairs the computed stats with the records they describe.
type DashboardReport struct {
	Stats     *dashboard.Stats
	Projects  []*domain.Project
	Assignees []*domain.Assignee
	Today     time.Time
}

type DashboardService interface {
	Report(ctx context.Context, today time.Time) (*DashboardReport, error)
}

// ImportResult holds the outcome of a plan import.
type ImportResult struct {
	Project     *domain.Project
	TicketCount int
	// AssigneeCount counts only newly created assignees.
	AssigneeCount int
}

// ImportService creates a project with its tickets from a plan file in one
// transaction.
type ImportService interface {
	ImportProject(ctx context.Context, filePath string) (*ImportResult, error)
	ImportProjectFromSchema(ctx context.Context, schema *importer.ImportSchema) (*ImportResult, error)
}
