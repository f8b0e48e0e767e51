package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/alexanderramin/gantry/internal/export"
	"github.com/alexanderramin/gantry/internal/tree"
	"github.com/spf13/cobra"
)

func newExportCmd(app *App) *cobra.Command {
	var output string
	var visible bool

	cmd := &cobra.Command{
		Use:   "export PROJECT",
		Short: "Write a project's timeline to an .xlsx workbook",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			p, err := resolveProject(ctx, app, args[0])
			if err != nil {
				return err
			}
			snap, err := app.Planner.Load(ctx, p.ID)
			if err != nil {
				return err
			}
			rows := tree.Flatten(snap.Tickets, tree.ExpandableIDs(snap.Tickets))
			if visible {
				rows = snap.Rows
			}
			names, err := assigneeNames(ctx, app)
			if err != nil {
				return err
			}

			path := output
			if path == "" {
				path = exportFileName(p.Name)
			}
			if err := export.WriteFile(path, export.Input{
				Project:   p,
				Rows:      rows,
				Assignees: names,
				Today:     app.Today(),
				Holidays:  app.Holidays,
			}); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d ticket(s) to %s\n", len(rows), path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Workbook path (default <project>.xlsx)")
	cmd.Flags().BoolVar(&visible, "visible", false, "Export only the rows currently expanded in the planner")
	return cmd
}

// exportFileName derives a file name from a project name.
func exportFileName(name string) string {
	slug := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-':
			return r
		case r >= 'A' && r <= 'Z':
			return r + ('a' - 'A')
		default:
			return '-'
		}
	}, strings.TrimSpace(name))
	slug = strings.Trim(slug, "-")
	if slug == "" {
		slug = "timeline"
	}
	return filepath.Clean(slug + ".xlsx")
}
