package cli

import (
	"fmt"

	"github.com/alexanderramin/gantry/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newDashboardCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "dashboard",
		Aliases: []string{"status"},
		Short:   "Show ticket counts across all projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := app.Dashboard.Report(cmd.Context(), app.Today())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatDashboard(report.Stats, report.Projects, report.Assignees))
			return nil
		},
	}
}
