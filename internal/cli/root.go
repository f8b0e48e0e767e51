package cli

import (
	"time"

	"github.com/alexanderramin/gantry/internal/config"
	"github.com/alexanderramin/gantry/internal/dates"
	"github.com/alexanderramin/gantry/internal/service"
	"github.com/alexanderramin/gantry/internal/timeline"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Projects  service.ProjectService
	Tickets   service.TicketService
	Assignees service.AssigneeService
	Planner   service.PlannerService
	Dashboard service.DashboardService
	Import    service.ImportService

	Config   config.Config
	Holidays timeline.HolidayCalendar

	// Now returns the current time; nil means time.Now.
	Now func() time.Time
	// IsInteractive reports whether stdin is a terminal. A bare "gantry"
	// opens the planner only when it is.
	IsInteractive func() bool
	// RunProgram runs a TUI model; nil runs a full-screen bubbletea program.
	RunProgram func(m tea.Model) error
}

// Today is the current calendar day.
func (a *App) Today() time.Time {
	if a.Now != nil {
		return dates.TodayFrom(a.Now())
	}
	return dates.Today()
}

func (a *App) dayCells() int {
	if a.Config.TUIDayCells > 0 {
		return a.Config.TUIDayCells
	}
	return config.DefaultDayCells
}

func (a *App) runProgram(m tea.Model) error {
	if a.RunProgram != nil {
		return a.RunProgram(m)
	}
	_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion()).Run()
	return err
}

// NewRootCmd creates the top-level "gantry" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "gantry",
		Short:         "Hierarchical ticket planner with a timeline view",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.IsInteractive != nil && app.IsInteractive() {
				return app.runProgram(newAppModel(app))
			}
			return cmd.Help()
		},
	}

	root.AddCommand(
		newProjectCmd(app),
		newTicketCmd(app),
		newAssigneeCmd(app),
		newTimelineCmd(app),
		newDashboardCmd(app),
		newExportCmd(app),
		newImportCmd(app),
		newTUICmd(app),
	)

	return root
}
