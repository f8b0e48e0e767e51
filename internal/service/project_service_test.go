package service

import (
	"context"
	"testing"

	"github.com/alexanderramin/gantry/internal/domain"
	"github.com/alexanderramin/gantry/internal/repository"
	"github.com/alexanderramin/gantry/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectService_Create_Defaults(t *testing.T) {
	env := setupRepos(t)
	ctx := context.Background()
	svc := NewProjectService(env.projects, testutil.NewTestUoW(env.db))

	proj := &domain.Project{Name: "Website Relaunch", Manager: "Dana"}
	require.NoError(t, svc.Create(ctx, proj))
	assert.NotEmpty(t, proj.ID, "UUID should be generated")
	assert.Equal(t, domain.ProjectPlanning, proj.Status, "status should default to planning")

	fetched, err := svc.Resolve(ctx, proj.ID[:8])
	require.NoError(t, err)
	assert.Equal(t, "Website Relaunch", fetched.Name)
	assert.Equal(t, "Dana", fetched.Manager)
}

func TestProjectService_Create_Invalid(t *testing.T) {
	env := setupRepos(t)
	ctx := context.Background()
	svc := NewProjectService(env.projects, testutil.NewTestUoW(env.db))

	require.ErrorIs(t, svc.Create(ctx, &domain.Project{Name: " "}), domain.ErrNameRequired)
	require.ErrorIs(t, svc.Create(ctx, &domain.Project{Name: "X", Status: "paused"}), domain.ErrInvalidStatus)

	start, end := testutil.Date("2025-03-01"), testutil.Date("2025-02-01")
	require.ErrorIs(t, svc.Create(ctx, &domain.Project{Name: "X", StartDate: &start, EndDate: &end}), domain.ErrInvalidDateRange)
}

func TestProjectService_Update(t *testing.T) {
	env := setupRepos(t)
	ctx := context.Background()
	svc := NewProjectService(env.projects, testutil.NewTestUoW(env.db))
	p := env.seedProject(t, "Draft")

	p.Status = domain.ProjectInProgress
	p.Notes = "kickoff done"
	require.NoError(t, svc.Update(ctx, p))

	got, err := svc.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ProjectInProgress, got.Status)
	assert.Equal(t, "kickoff done", got.Notes)
}

func TestProjectService_Delete_CascadesTickets(t *testing.T) {
	env := setupRepos(t)
	ctx := context.Background()
	svc := NewProjectService(env.projects, testutil.NewTestUoW(env.db))
	doomed := env.seedProject(t, "Doomed")
	kept := env.seedProject(t, "Kept")
	root := env.seedTicket(t, doomed.ID, "Root")
	env.seedTicket(t, doomed.ID, "Child", testutil.WithParent(root.ID))
	survivor := env.seedTicket(t, kept.ID, "Survivor")

	require.NoError(t, svc.Delete(ctx, doomed.ID))

	_, err := svc.GetByID(ctx, doomed.ID)
	require.ErrorIs(t, err, repository.ErrNotFound)
	all, err := env.tickets.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, survivor.ID, all[0].ID)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
}
