package cli

import (
	"fmt"

	"github.com/alexanderramin/gantry/internal/domain"
	"github.com/spf13/cobra"
)

func newImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Create a project with its tickets from a JSON plan file",
		Long: `Create a project with its tickets from a JSON plan file.

The file holds a "project" object, an optional "assignees" list and a
"tickets" list. Tickets name their parent and assignee by ref; parents must
come before their children. Comments and trailing commas are allowed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := app.Import.ImportProject(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported project %s [%s]: %d ticket(s), %d new assignee(s)\n",
				result.Project.Name, domain.ShortID(result.Project.ID), result.TicketCount, result.AssigneeCount)
			return nil
		},
	}
}
