package cli

import (
	"context"

	"github.com/alexanderramin/gantry/internal/cli/formatter"
	"github.com/alexanderramin/gantry/internal/service"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// dashboardLoadedMsg signals that dashboard data has been loaded.
type dashboardLoadedMsg struct {
	report *service.DashboardReport
	err    error
}

// dashboardView is the home screen of the TUI: the overview, per-project
// counts and the assignee ranking in a scrollable viewport.
type dashboardView struct {
	state   *SharedState
	report  *service.DashboardReport
	loading bool
	err     error

	vp viewport.Model
}

func newDashboardView(state *SharedState) *dashboardView {
	vp := viewport.New(0, 0)
	vp.MouseWheelEnabled = true
	return &dashboardView{
		state:   state,
		loading: true,
		vp:      vp,
	}
}

func (v *dashboardView) ID() ViewID    { return ViewDashboard }
func (v *dashboardView) Title() string { return "Dashboard" }

func (v *dashboardView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("enter", "p"), key.WithHelp("enter", "projects")),
		key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
	}
}

func (v *dashboardView) Init() tea.Cmd {
	return v.loadData()
}

func (v *dashboardView) loadData() tea.Cmd {
	app := v.state.App
	return func() tea.Msg {
		report, err := app.Dashboard.Report(context.Background(), app.Today())
		return dashboardLoadedMsg{report: report, err: err}
	}
}

func (v *dashboardView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case dashboardLoadedMsg:
		v.loading = false
		v.err = msg.err
		v.report = msg.report
		v.syncViewport()
		return v, nil

	case refreshViewMsg:
		return v, v.loadData()

	case tea.WindowSizeMsg:
		v.syncViewport()
		return v, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "enter", "p":
			return v, pushView(newProjectListView(v.state))
		case "r":
			v.loading = true
			return v, v.loadData()
		}
	}

	var cmd tea.Cmd
	v.vp, cmd = v.vp.Update(msg)
	return v, cmd
}

func (v *dashboardView) syncViewport() {
	v.vp.Width = v.state.Width
	v.vp.Height = v.state.ContentHeight()
	if v.report != nil {
		v.vp.SetContent(formatter.FormatDashboard(v.report.Stats, v.report.Projects, v.report.Assignees))
	}
}

func (v *dashboardView) View() string {
	switch {
	case v.loading:
		return "\n  " + formatter.Dim("Loading dashboard...")
	case v.err != nil:
		return "\n  " + shellError(v.err)
	case v.state.Height == 0:
		return formatter.FormatDashboard(v.report.Stats, v.report.Projects, v.report.Assignees)
	}
	return v.vp.View()
}
