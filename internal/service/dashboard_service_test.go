package service

import (
	"context"
	"testing"

	"github.com/alexanderramin/gantry/internal/domain"
	"github.com/alexanderramin/gantry/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboardService_Report(t *testing.T) {
	env := setupRepos(t)
	ctx := context.Background()
	today := testutil.Date("2025-01-10")

	p := testutil.NewTestProject("Live", testutil.WithProjectStatus(domain.ProjectInProgress),
		testutil.WithProjectWindow(testutil.Date("2025-01-01"), testutil.Date("2025-01-31")))
	require.NoError(t, env.projects.Create(ctx, p))
	env.seedProject(t, "Idea")

	alice := testutil.NewTestAssignee("Alice")
	require.NoError(t, env.assignees.Create(ctx, alice))

	env.seedTicket(t, p.ID, "late", testutil.WithDates("2025-01-01", "2025-01-09"), testutil.WithAssignee(alice.ID))
	env.seedTicket(t, p.ID, "soon", testutil.WithDates("2025-01-08", "2025-01-12"))
	env.seedTicket(t, p.ID, "far", testutil.WithDates("2025-01-08", "2025-02-20"))

	svc := NewDashboardService(env.projects, env.tickets, env.assignees, 0)
	report, err := svc.Report(ctx, today)
	require.NoError(t, err)

	assert.Len(t, report.Projects, 2)
	assert.Equal(t, today, report.Today)
	g := report.Stats.Global
	assert.Equal(t, 2, g.TotalProjects)
	assert.Equal(t, 1, g.ByStatus[domain.ProjectInProgress])
	assert.Equal(t, 1, g.ByStatus[domain.ProjectPlanning])
	assert.Equal(t, 3, g.TotalTickets)
	assert.Equal(t, 1, g.TotalOverdue)
	assert.Equal(t, 1, g.TotalDueSoon)

	ps := report.Stats.Projects[p.ID]
	require.NotNil(t, ps)
	assert.Equal(t, 2, ps.UnassignedTickets)
	require.NotNil(t, ps.DaysRemaining)
	assert.Equal(t, 21, *ps.DaysRemaining)

	require.Len(t, report.Stats.Assignees, 1)
	assert.Equal(t, "Alice", report.Stats.Assignees[0].AssigneeName)
}
