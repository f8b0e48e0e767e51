package domain

import (
	"fmt"
	"strings"
	"time"
)

// Ticket is a schedulable work item. Tickets form a tree inside a project via
// ParentID; SortOrder ranks a ticket among the siblings sharing its
// {ProjectID, ParentID}.
type Ticket struct {
	ID         string
	ProjectID  string
	ParentID   *string
	AssigneeID *string
	Name       string
	StartDate  time.Time
	EndDate    time.Time
	SortOrder  int
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// IsRoot reports whether the ticket has no parent.
func (t *Ticket) IsRoot() bool {
	return t.ParentID == nil
}

// SameGroup reports whether t and o are siblings.
func (t *Ticket) SameGroup(o *Ticket) bool {
	return t.ProjectID == o.ProjectID && PtrEqual(t.ParentID, o.ParentID)
}

// InGroup reports whether t belongs to the sibling group {projectID, parentID}.
func (t *Ticket) InGroup(projectID string, parentID *string) bool {
	return t.ProjectID == projectID && PtrEqual(t.ParentID, parentID)
}

// Validate checks the name and the date range.
func (t *Ticket) Validate() error {
	if strings.TrimSpace(t.Name) == "" {
		return fmt.Errorf("ticket: %w", ErrNameRequired)
	}
	if t.EndDate.Before(t.StartDate) {
		return fmt.Errorf("ticket %q: %w", t.Name, ErrInvalidDateRange)
	}
	if t.ParentID != nil && *t.ParentID == t.ID {
		return fmt.Errorf("ticket %q: %w", t.Name, ErrCycle)
	}
	return nil
}

// Clone returns a copy that shares no pointers with t.
func (t *Ticket) Clone() *Ticket {
	c := *t
	if t.ParentID != nil {
		p := *t.ParentID
		c.ParentID = &p
	}
	if t.AssigneeID != nil {
		a := *t.AssigneeID
		c.AssigneeID = &a
	}
	return &c
}

// WithSortOrder returns a copy of t ranked at order.
func (t *Ticket) WithSortOrder(order int) *Ticket {
	c := t.Clone()
	c.SortOrder = order
	return c
}

// WithDates returns a copy of t spanning [start, end].
func (t *Ticket) WithDates(start, end time.Time) *Ticket {
	c := t.Clone()
	c.StartDate = start
	c.EndDate = end
	return c
}

// SameSchedule reports whether two versions of a ticket cover the same days.
func (t *Ticket) SameSchedule(o *Ticket) bool {
	return t.StartDate.Equal(o.StartDate) && t.EndDate.Equal(o.EndDate)
}
