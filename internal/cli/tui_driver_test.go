package cli

import (
	"testing"

	"github.com/alexanderramin/gantry/internal/domain"
	"github.com/alexanderramin/gantry/internal/teatest"
)

// TestDriver wraps teatest.Driver with gantry-specific inspection methods.
// It provides access to appModel internals (view stack, shared state,
// the planner) that the generic driver can't see.
type TestDriver struct {
	*teatest.Driver
}

// NewTestDriver creates a TestDriver from a test App.
// It constructs the appModel, sets terminal size, and drains Init()
// (which loads dashboard data synchronously via in-memory SQLite).
func NewTestDriver(t *testing.T, app *App) *TestDriver {
	t.Helper()
	return newDriverFor(t, newAppModel(app))
}

// NewPlannerDriver opens the TUI straight on a project's planner.
func NewPlannerDriver(t *testing.T, app *App, p *domain.Project) *TestDriver {
	t.Helper()
	return newDriverFor(t, newAppModelAt(app, p))
}

func newDriverFor(t *testing.T, m appModel) *TestDriver {
	t.Helper()
	d := teatest.New(t, m, teatest.WithSize(120, 40))
	d.DrainInit()
	return &TestDriver{Driver: d}
}

// ── gantry-specific inspection ───────────────────────────────────────────────

func (d *TestDriver) appModel() appModel {
	return d.Model.(appModel)
}

// ActiveViewID returns the ViewID of the top view on the stack.
func (d *TestDriver) ActiveViewID() ViewID {
	m := d.appModel()
	v := m.activeView()
	if v == nil {
		return ViewID(-1)
	}
	return v.ID()
}

// ViewStackIDs returns the ViewIDs of all views on the stack, bottom to top.
func (d *TestDriver) ViewStackIDs() []ViewID {
	m := d.appModel()
	ids := make([]ViewID, len(m.viewStack))
	for i, v := range m.viewStack {
		ids[i] = v.ID()
	}
	return ids
}

// State returns the shared state for inspection.
func (d *TestDriver) State() *SharedState {
	return d.appModel().state
}

// IsQuitting returns whether the app has signaled a quit.
func (d *TestDriver) IsQuitting() bool {
	return d.appModel().quitting || d.Quitting
}

// Flash returns the notice shown in the status bar.
func (d *TestDriver) Flash() string {
	return d.appModel().flash
}

// Planner returns the active planner view. It fails the test when the
// planner is not on top.
func (d *TestDriver) Planner() *plannerView {
	d.T.Helper()
	m := d.appModel()
	v, ok := m.activeView().(*plannerView)
	if !ok {
		d.T.Fatalf("active view is %v, not the planner", d.ActiveViewID())
	}
	return v
}

// RowNames returns the planner's visible ticket names, top to bottom.
func (d *TestDriver) RowNames() []string {
	d.T.Helper()
	rows := d.Planner().rows()
	names := make([]string, len(rows))
	for i, r := range rows {
		names[i] = r.Ticket.Name
	}
	return names
}

// BarX returns the screen column of layout coordinate x in the planner's
// timeline pane.
func (d *TestDriver) BarX(x int) int {
	p := d.Planner()
	return p.paneX() + x - p.scrollX
}

// RowY returns the screen row of the planner's row i.
func (d *TestDriver) RowY(i int) int {
	return plannerBodyY + i - d.Planner().listTop
}
