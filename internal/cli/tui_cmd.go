package cli

import (
	"github.com/spf13/cobra"
)

func newTUICmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "tui [PROJECT]",
		Short: "Open the interactive planner",
		Long: `Open the interactive planner. With a project argument the planner
opens straight on that project's tickets and timeline.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m := newAppModel(app)
			if len(args) == 1 {
				p, err := resolveProject(cmd.Context(), app, args[0])
				if err != nil {
					return err
				}
				m = newAppModelAt(app, p)
			}
			return app.runProgram(m)
		},
	}
}
