package testutil

import (
	"time"

	"github.com/alexanderramin/gantry/internal/domain"
	"github.com/google/uuid"
)

// Date parses a YYYY-MM-DD literal, panicking on malformed input.
func Date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

// Project options
type ProjectOption func(*domain.Project)

func WithProjectStatus(s domain.ProjectStatus) ProjectOption {
	return func(p *domain.Project) {
		p.Status = s
	}
}

func WithProjectWindow(start, end time.Time) ProjectOption {
	return func(p *domain.Project) {
		p.StartDate = &start
		p.EndDate = &end
	}
}

func WithManager(m string) ProjectOption {
	return func(p *domain.Project) {
		p.Manager = m
	}
}

func WithEstimates(hours, budget float64) ProjectOption {
	return func(p *domain.Project) {
		p.EstimatedHours = &hours
		p.EstimatedBudget = &budget
	}
}

func NewTestProject(name string, opts ...ProjectOption) *domain.Project {
	now := time.Now().UTC().Truncate(time.Second)
	p := &domain.Project{
		ID:        uuid.New().String(),
		Name:      name,
		Status:    domain.ProjectPlanning,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Ticket options
type TicketOption func(*domain.Ticket)

func WithParent(id string) TicketOption {
	return func(t *domain.Ticket) {
		t.ParentID = &id
	}
}

func WithAssignee(id string) TicketOption {
	return func(t *domain.Ticket) {
		t.AssigneeID = &id
	}
}

func WithDates(start, end string) TicketOption {
	return func(t *domain.Ticket) {
		t.StartDate = Date(start)
		t.EndDate = Date(end)
	}
}

func WithSortOrder(n int) TicketOption {
	return func(t *domain.Ticket) {
		t.SortOrder = n
	}
}

func WithTicketID(id string) TicketOption {
	return func(t *domain.Ticket) {
		t.ID = id
	}
}

// NewTestTicket returns a three-day root ticket starting 2025-01-06.
func NewTestTicket(projectID, name string, opts ...TicketOption) *domain.Ticket {
	now := time.Now().UTC().Truncate(time.Second)
	t := &domain.Ticket{
		ID:        uuid.New().String(),
		ProjectID: projectID,
		Name:      name,
		StartDate: Date("2025-01-06"),
		EndDate:   Date("2025-01-08"),
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func NewTestAssignee(name string) *domain.Assignee {
	return &domain.Assignee{ID: uuid.New().String(), Name: name}
}
