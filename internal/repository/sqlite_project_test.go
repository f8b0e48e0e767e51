package repository

import (
	"context"
	"testing"

	"github.com/alexanderramin/gantry/internal/domain"
	"github.com/alexanderramin/gantry/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectRepo_CreateAndGetByID(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteProjectRepo(db)
	ctx := context.Background()

	proj := testutil.NewTestProject("Launch",
		testutil.WithProjectWindow(testutil.Date("2025-01-01"), testutil.Date("2025-03-31")),
		testutil.WithManager("Kim"),
		testutil.WithEstimates(120, 5000.5),
	)
	proj.Notes = "kickoff in Jan"
	require.NoError(t, repo.Create(ctx, proj))

	fetched, err := repo.GetByID(ctx, proj.ID)
	require.NoError(t, err)
	assert.Equal(t, "Launch", fetched.Name)
	assert.Equal(t, "Kim", fetched.Manager)
	assert.Equal(t, "kickoff in Jan", fetched.Notes)
	assert.Equal(t, domain.ProjectPlanning, fetched.Status)
	require.NotNil(t, fetched.EstimatedBudget)
	assert.InDelta(t, 5000.5, *fetched.EstimatedBudget, 0.001)
	require.NotNil(t, fetched.EndDate)
	assert.Equal(t, "2025-03-31", fetched.EndDate.Format("2006-01-02"))
	assert.True(t, proj.CreatedAt.Equal(fetched.CreatedAt))
}

func TestProjectRepo_OptionalFieldsStayNil(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteProjectRepo(db)
	ctx := context.Background()

	proj := testutil.NewTestProject("Bare")
	require.NoError(t, repo.Create(ctx, proj))

	fetched, err := repo.GetByID(ctx, proj.ID)
	require.NoError(t, err)
	assert.Nil(t, fetched.StartDate)
	assert.Nil(t, fetched.EndDate)
	assert.Nil(t, fetched.EstimatedHours)
}

func TestProjectRepo_GetByID_NotFound(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteProjectRepo(db)

	_, err := repo.GetByID(context.Background(), "nonexistent")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestProjectRepo_FindByPrefix(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteProjectRepo(db)
	ctx := context.Background()

	a := testutil.NewTestProject("A")
	a.ID = "abc11111-0000"
	b := testutil.NewTestProject("B")
	b.ID = "abc22222-0000"
	require.NoError(t, repo.Create(ctx, a))
	require.NoError(t, repo.Create(ctx, b))

	got, err := repo.FindByPrefix(ctx, "abc1")
	require.NoError(t, err)
	assert.Equal(t, a.ID, got.ID)

	_, err = repo.FindByPrefix(ctx, "abc")
	assert.ErrorIs(t, err, ErrAmbiguous)

	_, err = repo.FindByPrefix(ctx, "zzz")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = repo.FindByPrefix(ctx, "%")
	assert.ErrorIs(t, err, ErrNotFound, "LIKE wildcards are literal")
}

func TestProjectRepo_UpdateAndList(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteProjectRepo(db)
	ctx := context.Background()

	p := testutil.NewTestProject("One")
	require.NoError(t, repo.Create(ctx, p))
	require.NoError(t, repo.Create(ctx, testutil.NewTestProject("Two")))

	p.Status = domain.ProjectCompleted
	p.Description = "done"
	require.NoError(t, repo.Update(ctx, p))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	fetched, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ProjectCompleted, fetched.Status)
	assert.Equal(t, "done", fetched.Description)

	missing := testutil.NewTestProject("Ghost")
	assert.ErrorIs(t, repo.Update(ctx, missing), ErrNotFound)
}

func TestProjectRepo_DeleteCascadesTickets(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	projects := NewSQLiteProjectRepo(db)
	tickets := NewSQLiteTicketRepo(db)

	p := testutil.NewTestProject("Doomed")
	require.NoError(t, projects.Create(ctx, p))
	root := testutil.NewTestTicket(p.ID, "root")
	require.NoError(t, tickets.Create(ctx, root))
	require.NoError(t, tickets.Create(ctx, testutil.NewTestTicket(p.ID, "child", testutil.WithParent(root.ID))))

	require.NoError(t, projects.Delete(ctx, p.ID))

	remaining, err := tickets.ListByProject(ctx, p.ID)
	require.NoError(t, err)
	assert.Empty(t, remaining)
	assert.ErrorIs(t, projects.Delete(ctx, p.ID), ErrNotFound)
}
