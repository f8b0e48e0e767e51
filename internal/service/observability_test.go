package service

import (
	"bytes"
	"context"
	"testing"

	"github.com/alexanderramin/gantry/internal/domain"
	"github.com/alexanderramin/gantry/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingObserver struct {
	events []UseCaseEvent
}

func (r *recordingObserver) ObserveUseCase(_ context.Context, e UseCaseEvent) {
	r.events = append(r.events, e)
}

func TestObserveUseCase_RecordsOutcome(t *testing.T) {
	env := setupRepos(t)
	ctx := context.Background()
	rec := &recordingObserver{}
	svc := NewAssigneeService(env.assignees, testutil.NewTestUoW(env.db), rec)

	_, err := svc.Create(ctx, "Alice")
	require.NoError(t, err)
	_, err = svc.Create(ctx, "")
	require.ErrorIs(t, err, domain.ErrNameRequired)

	require.Len(t, rec.events, 2)
	assert.Equal(t, "create-assignee", rec.events[0].Name)
	assert.True(t, rec.events[0].Success)
	assert.Equal(t, "Alice", rec.events[0].Fields["name"])
	assert.False(t, rec.events[1].Success)
	assert.ErrorIs(t, rec.events[1].Err, domain.ErrNameRequired)
}

func TestLogUseCaseObserver_WritesEvents(t *testing.T) {
	var buf bytes.Buffer
	obs := NewLogUseCaseObserver(&buf)

	obs.ObserveUseCase(context.Background(), UseCaseEvent{
		Name:    "shift-ticket",
		Success: true,
		Fields:  map[string]any{"ticket_id": "t1"},
	})
	out := buf.String()
	assert.Contains(t, out, "msg=service_use_case")
	assert.Contains(t, out, "use_case=shift-ticket")
	assert.Contains(t, out, "ticket_id=t1")
	assert.Contains(t, out, "level=INFO")

	buf.Reset()
	obs.ObserveUseCase(context.Background(), UseCaseEvent{Name: "delete-ticket", Err: domain.ErrCycle})
	assert.Contains(t, buf.String(), "level=ERROR")
	assert.Contains(t, buf.String(), "success=false")
}

func TestNewLogUseCaseObserver_NilWriterIsNoop(t *testing.T) {
	assert.IsType(t, NoopUseCaseObserver{}, NewLogUseCaseObserver(nil))
}
