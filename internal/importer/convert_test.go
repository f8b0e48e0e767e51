package importer

import (
	"testing"
	"time"

	"github.com/alexanderramin/gantry/internal/dates"
	"github.com/alexanderramin/gantry/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var convertNow = time.Date(2025, 1, 6, 12, 0, 0, 0, time.UTC)

func TestConvert_MinimalProject(t *testing.T) {
	plan, err := Convert(validMinimalSchema(), nil, convertNow)
	require.NoError(t, err)

	assert.NotEmpty(t, plan.Project.ID)
	assert.Equal(t, "Garage", plan.Project.Name)
	assert.Equal(t, domain.ProjectPlanning, plan.Project.Status)
	assert.Nil(t, plan.Project.StartDate)
	assert.Empty(t, plan.Assignees)

	require.Len(t, plan.Tickets, 1)
	tk := plan.Tickets[0]
	assert.Equal(t, plan.Project.ID, tk.ProjectID)
	assert.Nil(t, tk.ParentID)
	// A missing end date makes a one-day ticket.
	assert.Equal(t, "2025-01-06", dates.Format(tk.EndDate))
	assert.Equal(t, convertNow, tk.CreatedAt)
}

func TestConvert_TreeAndSiblingOrder(t *testing.T) {
	plan, err := Convert(validFullSchema(), nil, convertNow)
	require.NoError(t, err)

	require.Len(t, plan.Tickets, 4)
	design, build, wire, paint := plan.Tickets[0], plan.Tickets[1], plan.Tickets[2], plan.Tickets[3]

	assert.Equal(t, domain.ProjectInProgress, plan.Project.Status)
	require.NotNil(t, plan.Project.EndDate)
	assert.Equal(t, "2025-01-31", dates.Format(*plan.Project.EndDate))

	assert.Equal(t, 0, design.SortOrder)
	assert.Equal(t, 1, build.SortOrder)
	require.NotNil(t, wire.ParentID)
	assert.Equal(t, build.ID, *wire.ParentID)
	assert.Equal(t, 0, wire.SortOrder)
	assert.Equal(t, 1, paint.SortOrder)
}

func TestConvert_ReusesExistingAssignees(t *testing.T) {
	existing := []*domain.Assignee{{ID: "existing-grace", Name: "grace"}}

	plan, err := Convert(validFullSchema(), existing, convertNow)
	require.NoError(t, err)

	require.Len(t, plan.Assignees, 1)
	assert.Equal(t, "Linus", plan.Assignees[0].Name)

	design, wire := plan.Tickets[0], plan.Tickets[2]
	require.NotNil(t, design.AssigneeID)
	assert.Equal(t, "existing-grace", *design.AssigneeID)
	require.NotNil(t, wire.AssigneeID)
	assert.Equal(t, plan.Assignees[0].ID, *wire.AssigneeID)
}

func TestParseImportSchema_AcceptsComments(t *testing.T) {
	data := []byte(`{
		// weekend job
		"project": {"name": "Garage"},
		"tickets": [
			{"ref": "t1", "name": "Design", "start_date": "2025-01-06",},
		],
	}`)

	schema, err := ParseImportSchema(data)
	require.NoError(t, err)
	assert.Equal(t, "Garage", schema.Project.Name)
	require.Len(t, schema.Tickets, 1)
	assert.Equal(t, "Design", schema.Tickets[0].Name)
}

func TestParseImportSchema_Malformed(t *testing.T) {
	_, err := ParseImportSchema([]byte(`{"project": `))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing import file")
}
