package cli

import (
	"context"
	"testing"

	"github.com/alexanderramin/gantry/internal/dates"
	"github.com/alexanderramin/gantry/internal/domain"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Planner geometry at 120x40 with three cells per day: the list pane is 40
// wide, the timeline starts at column 41, row i sits on screen line 4+i and
// the window opens on 2025-01-04. Design (01-06..01-08) covers layout
// columns 6..14, screen columns 47..55.
const (
	designLeft  = 47
	designRight = 55
)

func plannerDriver(t *testing.T) (*TestDriver, *App, plan) {
	t.Helper()
	app := testApp(t)
	p := seedPlan(t, app)
	proj, err := app.Projects.GetByID(context.Background(), p.projectID)
	require.NoError(t, err)
	d := NewPlannerDriver(t, app, proj)
	require.Equal(t, ViewPlanner, d.ActiveViewID())
	return d, app, p
}

func assertDates(t *testing.T, tk *domain.Ticket, start, end string) {
	t.Helper()
	assert.Equal(t, start, dates.Format(tk.StartDate), "start of %s", tk.Name)
	assert.Equal(t, end, dates.Format(tk.EndDate), "end of %s", tk.Name)
}

// --- app shell ---

func TestTUI_DashboardLoads(t *testing.T) {
	app := testApp(t)
	seedPlan(t, app)
	d := NewTestDriver(t, app)

	assert.Equal(t, ViewDashboard, d.ActiveViewID())
	assert.Contains(t, d.View(), "Garage")
}

func TestTUI_QuitKeys(t *testing.T) {
	for name, press := range map[string]func(*TestDriver){
		"q":      func(d *TestDriver) { d.PressKey('q') },
		"ctrl+c": func(d *TestDriver) { d.PressCtrlC() },
	} {
		t.Run(name, func(t *testing.T) {
			d := NewTestDriver(t, testApp(t))
			press(d)
			assert.True(t, d.IsQuitting())
		})
	}
}

func TestTUI_DashboardToPlanner(t *testing.T) {
	app := testApp(t)
	p := seedPlan(t, app)
	d := NewTestDriver(t, app)

	d.PressEnter()
	require.Equal(t, ViewProjectList, d.ActiveViewID())
	assert.Contains(t, d.View(), "Garage")

	d.PressEnter()
	require.Equal(t, ViewPlanner, d.ActiveViewID())
	assert.Equal(t, p.projectID, d.State().ActiveProjectID)
	assert.Equal(t, []ViewID{ViewDashboard, ViewProjectList, ViewPlanner}, d.ViewStackIDs())

	d.PressEsc()
	assert.Equal(t, ViewProjectList, d.ActiveViewID())
}

// --- planner rendering ---

func TestPlanner_OpensFullyExpanded(t *testing.T) {
	d, _, _ := plannerDriver(t)

	assert.Equal(t, []string{"Design", "Build", "Wire", "Paint"}, d.RowNames())
	assert.Equal(t, 41, d.Planner().paneX())
	view := d.View()
	assert.Contains(t, view, "Jan 2025")
	assert.Contains(t, view, "Design")
}

// --- mouse gestures ---

func TestPlanner_DragMovesBar(t *testing.T) {
	d, app, p := plannerDriver(t)

	// Two days right: six cells.
	d.Drag(50, d.RowY(0), 56, d.RowY(0))

	assertDates(t, getTicket(t, app, p.design), "2025-01-08", "2025-01-10")
	assert.False(t, d.Planner().resolver.Active())
	assert.Contains(t, d.Flash(), "Design")
}

func TestPlanner_DragShowsCandidateBeforeRelease(t *testing.T) {
	d, app, p := plannerDriver(t)

	d.MouseDown(50, d.RowY(0))
	d.MouseMove(53, d.RowY(0))

	session := d.Planner().resolver.Session()
	require.NotNil(t, session)
	assertDates(t, session.Candidate, "2025-01-07", "2025-01-09")
	// Nothing is stored until the pointer lets go.
	assertDates(t, getTicket(t, app, p.design), "2025-01-06", "2025-01-08")
}

func TestPlanner_ResizeEndClampsToStart(t *testing.T) {
	d, app, p := plannerDriver(t)

	d.Drag(designRight, d.RowY(0), designRight-6, d.RowY(0))

	assertDates(t, getTicket(t, app, p.design), "2025-01-06", "2025-01-06")
}

func TestPlanner_ResizeStart(t *testing.T) {
	d, app, p := plannerDriver(t)

	d.Drag(designLeft, d.RowY(0), designLeft-3, d.RowY(0))

	assertDates(t, getTicket(t, app, p.design), "2025-01-05", "2025-01-08")
}

func TestPlanner_LeavingTimelineCommits(t *testing.T) {
	d, app, p := plannerDriver(t)

	d.MouseDown(50, d.RowY(0))
	d.MouseMove(53, d.RowY(0))
	d.MouseMove(10, d.RowY(0))

	assert.False(t, d.Planner().resolver.Active())
	assertDates(t, getTicket(t, app, p.design), "2025-01-07", "2025-01-09")

	// The release after leaving has nothing left to commit.
	d.MouseUp(10, d.RowY(0))
	assertDates(t, getTicket(t, app, p.design), "2025-01-07", "2025-01-09")
}

func TestPlanner_ClickWithoutMoveChangesNothing(t *testing.T) {
	d, app, p := plannerDriver(t)

	d.Click(50, d.RowY(0))

	assertDates(t, getTicket(t, app, p.design), "2025-01-06", "2025-01-08")
	assert.Empty(t, d.Flash())
}

func TestPlanner_PressOffBarStartsNothing(t *testing.T) {
	d, _, _ := plannerDriver(t)

	d.MouseDown(100, d.RowY(0))
	assert.False(t, d.Planner().resolver.Active())
}

func TestPlanner_ListDragReorders(t *testing.T) {
	d, app, p := plannerDriver(t)

	d.MouseDown(5, d.RowY(1))
	d.MouseUp(5, d.RowY(0))

	assert.Equal(t, []string{"Build", "Design"}, siblingNames(t, app, p.projectID, nil))
	assert.Equal(t, []string{"Build", "Wire", "Paint", "Design"}, d.RowNames())
}

func TestPlanner_ListDragAcrossGroupsIsRejected(t *testing.T) {
	d, app, p := plannerDriver(t)

	d.MouseDown(5, d.RowY(2)) // Wire
	d.MouseUp(5, d.RowY(0))   // Design

	assert.Equal(t, []string{"Wire", "Paint"}, siblingNames(t, app, p.projectID, &p.build))
}

func TestPlanner_WheelScrollsBothPanes(t *testing.T) {
	d, _, _ := plannerDriver(t)
	// Three visible rows out of four.
	d.Resize(120, 10)

	d.Wheel(5, d.RowY(0), tea.MouseButtonWheelDown)
	pv := d.Planner()
	assert.Equal(t, 1, pv.listTop)
	assert.Equal(t, 1, pv.timelineTop)

	d.Wheel(60, plannerBodyY, tea.MouseButtonWheelUp)
	pv = d.Planner()
	assert.Equal(t, 0, pv.listTop)
	assert.Equal(t, 0, pv.timelineTop)

	// Scrolling stops at the last row.
	d.Wheel(60, plannerBodyY, tea.MouseButtonWheelDown)
	d.Wheel(60, plannerBodyY, tea.MouseButtonWheelDown)
	assert.Equal(t, 1, d.Planner().listTop)
}

func TestPlanner_ScrolledPointerHitsShownRow(t *testing.T) {
	d, app, p := plannerDriver(t)
	d.Resize(120, 10)
	d.Wheel(5, plannerBodyY, tea.MouseButtonWheelDown)

	pv := d.Planner()
	require.Equal(t, 1, pv.listTop)
	assert.Equal(t, -1, pv.rowAt(plannerBodyY-1))
	assert.Equal(t, 1, pv.rowAt(plannerBodyY))
	assert.Equal(t, 3, pv.rowAt(plannerBodyY+2))
	assert.Equal(t, -1, pv.rowAt(plannerBodyY+3), "below the body")

	// Build now sits on the first body line; its bar spans screen x 56..76.
	d.Drag(60, plannerBodyY, 63, plannerBodyY)
	assertDates(t, getTicket(t, app, p.build), "2025-01-10", "2025-01-16")
	assertDates(t, getTicket(t, app, p.design), "2025-01-06", "2025-01-08")
}

// --- keyboard ---

func TestPlanner_KeyboardShiftAndResize(t *testing.T) {
	d, app, p := plannerDriver(t)

	d.PressKey('l')
	assertDates(t, getTicket(t, app, p.design), "2025-01-07", "2025-01-09")

	d.PressKey('L')
	assertDates(t, getTicket(t, app, p.design), "2025-01-07", "2025-01-10")

	d.PressKey(']')
	assertDates(t, getTicket(t, app, p.design), "2025-01-08", "2025-01-10")

	d.PressKey('h')
	assertDates(t, getTicket(t, app, p.design), "2025-01-07", "2025-01-09")
}

func TestPlanner_KeyboardMoveKeepsCursor(t *testing.T) {
	d, app, p := plannerDriver(t)

	d.PressKey('J')

	assert.Equal(t, []string{"Build", "Design"}, siblingNames(t, app, p.projectID, nil))
	assert.Equal(t, "Design", d.Planner().selected().Name)
}

func TestPlanner_EnterFolds(t *testing.T) {
	d, _, _ := plannerDriver(t)

	d.PressDown()
	d.PressEnter()
	assert.Equal(t, []string{"Design", "Build"}, d.RowNames())

	d.PressEnter()
	assert.Equal(t, []string{"Design", "Build", "Wire", "Paint"}, d.RowNames())

	d.PressKey('-')
	assert.Equal(t, []string{"Design", "Build"}, d.RowNames())
	d.PressKey('+')
	assert.Len(t, d.RowNames(), 4)

	// The cursor stays on Build while walking and folding.
	d.PressKeys("kj")
	assert.Equal(t, "Build", d.Planner().selected().Name)
	d.PressUp()
	assert.Equal(t, "Design", d.Planner().selected().Name)
}

func TestPlanner_FormsOpenAndCancel(t *testing.T) {
	for _, k := range []rune{'a', 'A', 'e', 'd'} {
		t.Run(string(k), func(t *testing.T) {
			d, _, _ := plannerDriver(t)

			d.PressKey(k)
			require.Equal(t, ViewForm, d.ActiveViewID())

			d.PressEsc()
			assert.Equal(t, ViewPlanner, d.ActiveViewID())
			assert.Contains(t, d.Flash(), "Cancelled.")
			assert.Len(t, d.RowNames(), 4)
		})
	}
}
