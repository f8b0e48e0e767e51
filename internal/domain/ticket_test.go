package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func newTicket(id string, parent *string, order int) *Ticket {
	return &Ticket{
		ID:        id,
		ProjectID: "p1",
		ParentID:  parent,
		Name:      id,
		StartDate: day("2025-01-01"),
		EndDate:   day("2025-01-03"),
		SortOrder: order,
	}
}

func TestTicketValidate_RejectsInvertedRange(t *testing.T) {
	tk := newTicket("a", nil, 0)
	tk.EndDate = day("2024-12-31")
	err := tk.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidDateRange)
}

func TestTicketValidate_SingleDayIsValid(t *testing.T) {
	tk := newTicket("a", nil, 0)
	tk.EndDate = tk.StartDate
	assert.NoError(t, tk.Validate())
}

func TestTicketValidate_BlankName(t *testing.T) {
	tk := newTicket("a", nil, 0)
	tk.Name = "   "
	assert.ErrorIs(t, tk.Validate(), ErrNameRequired)
}

func TestTicketValidate_SelfParent(t *testing.T) {
	tk := newTicket("a", StrPtr("a"), 0)
	assert.ErrorIs(t, tk.Validate(), ErrCycle)
}

func TestTicketClone_DoesNotAlias(t *testing.T) {
	tk := newTicket("a", StrPtr("root"), 0)
	tk.AssigneeID = StrPtr("bob")
	c := tk.Clone()
	*c.ParentID = "other"
	*c.AssigneeID = "alice"
	assert.Equal(t, "root", *tk.ParentID)
	assert.Equal(t, "bob", *tk.AssigneeID)
}

func TestTicketWithDates_LeavesOriginal(t *testing.T) {
	tk := newTicket("a", nil, 0)
	moved := tk.WithDates(day("2025-02-01"), day("2025-02-02"))
	assert.Equal(t, day("2025-01-01"), tk.StartDate)
	assert.Equal(t, day("2025-02-01"), moved.StartDate)
	assert.False(t, tk.SameSchedule(moved))
	assert.True(t, tk.SameSchedule(tk.Clone()))
}

func TestTicketSameGroup(t *testing.T) {
	a := newTicket("a", StrPtr("r"), 0)
	b := newTicket("b", StrPtr("r"), 1)
	c := newTicket("c", nil, 0)
	d := newTicket("d", StrPtr("r"), 0)
	d.ProjectID = "p2"

	assert.True(t, a.SameGroup(b))
	assert.False(t, a.SameGroup(c))
	assert.False(t, a.SameGroup(d))
}

func TestProjectValidate(t *testing.T) {
	p := &Project{Name: "Launch", Status: ProjectPlanning}
	require.NoError(t, p.Validate())

	p.Status = "archived"
	assert.ErrorIs(t, p.Validate(), ErrInvalidStatus)

	p.Status = ProjectCompleted
	start, end := day("2025-03-01"), day("2025-02-01")
	p.StartDate, p.EndDate = &start, &end
	assert.ErrorIs(t, p.Validate(), ErrInvalidDateRange)
}

func TestAssigneeNormalize(t *testing.T) {
	a := &Assignee{Name: "  Ada  "}
	require.NoError(t, a.Normalize())
	assert.Equal(t, "Ada", a.Name)

	blank := &Assignee{Name: " "}
	assert.ErrorIs(t, blank.Normalize(), ErrNameRequired)
}

func TestProjectStatusLabel(t *testing.T) {
	assert.Equal(t, "In progress", ProjectInProgress.Label())
	assert.Equal(t, "weird", ProjectStatus("weird").Label())
}
