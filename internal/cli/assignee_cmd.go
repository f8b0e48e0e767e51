package cli

import (
	"fmt"

	"github.com/alexanderramin/gantry/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newAssigneeCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "assignee",
		Aliases: []string{"who"},
		Short:   "Manage assignees",
	}

	cmd.AddCommand(
		newAssigneeAddCmd(app),
		newAssigneeListCmd(app),
		newAssigneeRenameCmd(app),
		newAssigneeRemoveCmd(app),
	)

	return cmd
}

func newAssigneeAddCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "add NAME",
		Short: "Create an assignee",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := app.Assignees.Create(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created assignee %s [%s]\n", a.Name, formatter.TruncID(a.ID))
			return nil
		},
	}
}

func newAssigneeListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List assignees",
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := app.Assignees.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(list) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No assignees yet.")
				return nil
			}
			rows := make([][]string, len(list))
			for i, a := range list {
				rows[i] = []string{formatter.TruncID(a.ID), a.Name}
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.RenderTable([]string{"ID", "NAME"}, rows))
			return nil
		},
	}
}

func newAssigneeRenameCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rename ID NAME",
		Short: "Rename an assignee",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := app.Assignees.Resolve(ctx, args[0])
			if err != nil {
				return friendlyError(err)
			}
			if err := app.Assignees.Rename(ctx, a.ID, args[1]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Renamed %s to %s\n", a.Name, args[1])
			return nil
		},
	}
}

func newAssigneeRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rm ID",
		Short: "Delete an assignee and unassign their tickets",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := app.Assignees.Resolve(ctx, args[0])
			if err != nil {
				return friendlyError(err)
			}
			n, err := app.Assignees.Delete(ctx, a.ID)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted assignee %s (%d ticket(s) unassigned)\n", a.Name, n)
			return nil
		},
	}
}
