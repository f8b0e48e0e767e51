package cli

import (
	"fmt"
	"strconv"

	"github.com/alexanderramin/gantry/internal/cli/formatter"
	"github.com/alexanderramin/gantry/internal/dates"
	"github.com/alexanderramin/gantry/internal/domain"
	"github.com/alexanderramin/gantry/internal/timeline"
	"github.com/alexanderramin/gantry/internal/tree"
	"github.com/spf13/cobra"
)

func newTicketCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "ticket",
		Aliases: []string{"t"},
		Short:   "Manage tickets",
	}

	cmd.AddCommand(
		newTicketAddCmd(app),
		newTicketListCmd(app),
		newTicketShowCmd(app),
		newTicketEditCmd(app),
		newTicketRemoveCmd(app),
		newTicketMoveCmd(app),
		newTicketReorderCmd(app),
		newTicketShiftCmd(app),
		newTicketToggleCmd(app),
	)

	return cmd
}

func newTicketAddCmd(app *App) *cobra.Command {
	var name, start, end, parent, assignee string

	cmd := &cobra.Command{
		Use:   "add PROJECT",
		Short: "Create a ticket at the end of its sibling group",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			p, err := resolveProject(ctx, app, args[0])
			if err != nil {
				return err
			}

			startDate := app.Today()
			if start != "" {
				if startDate, err = dates.Parse(start); err != nil {
					return err
				}
			}
			endDate := startDate
			if end != "" {
				if endDate, err = dates.Parse(end); err != nil {
					return err
				}
			}

			t := &domain.Ticket{ProjectID: p.ID, Name: name, StartDate: startDate, EndDate: endDate}
			if t.ParentID, err = resolveOptionalTicketID(ctx, app, parent); err != nil {
				return err
			}
			if t.AssigneeID, err = resolveAssigneeID(ctx, app, assignee); err != nil {
				return err
			}
			if err := app.Tickets.Create(ctx, t); err != nil {
				return friendlyError(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created ticket %s [%s] %s\n",
				t.Name, domain.ShortID(t.ID), formatter.DateRange(t.StartDate, t.EndDate))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Ticket name")
	cmd.Flags().StringVar(&start, "start", "", "Start date (YYYY-MM-DD, default today)")
	cmd.Flags().StringVar(&end, "end", "", "End date (YYYY-MM-DD, default the start date)")
	cmd.Flags().StringVar(&parent, "parent", "", "Parent ticket ID")
	cmd.Flags().StringVar(&assignee, "assignee", "", "Assignee ID or name")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newTicketListCmd(app *App) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:     "list PROJECT",
		Aliases: []string{"ls", "tree"},
		Short:   "Show a project's ticket tree",
		Args:    cobra.ExactArgs(1),
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
			if len(snap.Tickets) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No tickets yet.")
				return nil
			}
			expanded, rows := snap.Expanded, snap.Rows
			if all {
				expanded = tree.ExpandableIDs(snap.Tickets)
				rows = tree.Flatten(snap.Tickets, expanded)
			}
			names, err := assigneeNames(ctx, app)
			if err != nil {
				return err
			}
			detail := func(t *domain.Ticket) string {
				s := dates.Format(t.StartDate) + " → " + dates.Format(t.EndDate)
				if t.AssigneeID != nil {
					s += " · " + names[*t.AssigneeID]
				}
				return s
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.RenderTree(formatter.TreeItems(rows, expanded, detail)))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&all, "all", "a", false, "Expand every ticket regardless of saved state")
	return cmd
}

func newTicketShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show ticket details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			t, err := resolveTicket(ctx, app, args[0])
			if err != nil {
				return err
			}
			parentName := ""
			if t.ParentID != nil {
				if parent, err := app.Tickets.GetByID(ctx, *t.ParentID); err == nil {
					parentName = parent.Name
				}
			}
			names, err := assigneeNames(ctx, app)
			if err != nil {
				return err
			}
			assigneeName := ""
			if t.AssigneeID != nil {
				assigneeName = names[*t.AssigneeID]
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatTicketDetail(t, parentName, assigneeName))
			return nil
		},
	}
}

func newTicketEditCmd(app *App) *cobra.Command {
	var name, start, end, parent, assignee string

	cmd := &cobra.Command{
		Use:   "edit ID",
		Short: "Update a ticket; a new --parent moves it to the end of that parent's children",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			t, err := resolveTicket(ctx, app, args[0])
			if err != nil {
				return err
			}
			changed := cmd.Flags().Changed
			if changed("name") {
				t.Name = name
			}
			if changed("start") {
				if t.StartDate, err = dates.Parse(start); err != nil {
					return err
				}
			}
			if changed("end") {
				if t.EndDate, err = dates.Parse(end); err != nil {
					return err
				}
			}
			if changed("parent") {
				t.ParentID = nil
				if parent != "none" {
					if t.ParentID, err = resolveOptionalTicketID(ctx, app, parent); err != nil {
						return err
					}
				}
			}
			if changed("assignee") {
				t.AssigneeID = nil
				if assignee != "none" {
					if t.AssigneeID, err = resolveAssigneeID(ctx, app, assignee); err != nil {
						return err
					}
				}
			}
			if err := app.Tickets.Update(ctx, t); err != nil {
				return friendlyError(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated ticket %s\n", t.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Ticket name")
	cmd.Flags().StringVar(&start, "start", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "", "End date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&parent, "parent", "", "Parent ticket ID (\"none\" makes it top-level)")
	cmd.Flags().StringVar(&assignee, "assignee", "", "Assignee ID or name (\"none\" unassigns)")
	return cmd
}

func newTicketRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rm ID",
		Short: "Delete a ticket and all of its descendants",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			t, err := resolveTicket(ctx, app, args[0])
			if err != nil {
				return err
			}
			removed, err := app.Tickets.Delete(ctx, t.ID)
			if err != nil {
				return friendlyError(err)
			}
			msg := fmt.Sprintf("Deleted ticket %s", t.Name)
			if n := len(removed) - 1; n > 0 {
				msg += fmt.Sprintf(" and %d descendant(s)", n)
			}
			fmt.Fprintln(cmd.OutOrStdout(), msg)
			return nil
		},
	}
}

func newTicketMoveCmd(app *App) *cobra.Command {
	var by int

	cmd := &cobra.Command{
		Use:   "move ID",
		Short: "Move a ticket up (negative) or down among its siblings",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			t, err := resolveTicket(ctx, app, args[0])
			if err != nil {
				return err
			}
			changed, err := app.Tickets.MoveBy(ctx, t.ID, by)
			if err != nil {
				return friendlyError(err)
			}
			reportOrder(cmd, t.Name, changed)
			return nil
		},
	}

	cmd.Flags().IntVar(&by, "by", 1, "Positions to move; negative moves up")
	return cmd
}

func newTicketReorderCmd(app *App) *cobra.Command {
	var before string

	cmd := &cobra.Command{
		Use:   "reorder ID",
		Short: "Place a ticket in front of a sibling, as a list drag does",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			t, err := resolveTicket(ctx, app, args[0])
			if err != nil {
				return err
			}
			target, err := resolveTicket(ctx, app, before)
			if err != nil {
				return err
			}
			changed, err := app.Tickets.Reorder(ctx, t.ID, target.ID)
			if err != nil {
				return friendlyError(err)
			}
			if !changed && !t.SameGroup(target) {
				return fmt.Errorf("%s and %s are not siblings", t.Name, target.Name)
			}
			reportOrder(cmd, t.Name, changed)
			return nil
		},
	}

	cmd.Flags().StringVar(&before, "before", "", "Sibling ticket to land in front of")
	_ = cmd.MarkFlagRequired("before")
	return cmd
}

func reportOrder(cmd *cobra.Command, name string, changed bool) {
	if changed {
		fmt.Fprintf(cmd.OutOrStdout(), "Moved %s\n", name)
		return
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s is already there\n", name)
}

func newTicketShiftCmd(app *App) *cobra.Command {
	var startOnly, endOnly bool

	cmd := &cobra.Command{
		Use:   "shift ID DAYS",
		Short: "Move a ticket's dates, or stretch one edge with --start/--end",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			days, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid day count %q", args[1])
			}
			t, err := resolveTicket(ctx, app, args[0])
			if err != nil {
				return err
			}
			kind := timeline.GestureMove
			switch {
			case startOnly && endOnly:
				return fmt.Errorf("use either --start or --end")
			case startOnly:
				kind = timeline.GestureResizeStart
			case endOnly:
				kind = timeline.GestureResizeEnd
			}
			candidate := timeline.Shift(kind, t, days)
			changed, err := app.Tickets.CommitSchedule(ctx, candidate)
			if err != nil {
				return friendlyError(err)
			}
			if !changed {
				fmt.Fprintf(cmd.OutOrStdout(), "%s unchanged\n", t.Name)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s now %s\n", t.Name, formatter.DateRange(candidate.StartDate, candidate.EndDate))
			return nil
		},
	}

	cmd.Flags().BoolVar(&startOnly, "start", false, "Move only the start date")
	cmd.Flags().BoolVar(&endOnly, "end", false, "Move only the end date")
	return cmd
}

func newTicketToggleCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle ID",
		Short: "Expand or collapse a ticket in the planner",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			t, err := resolveTicket(ctx, app, args[0])
			if err != nil {
				return err
			}
			expanded, err := app.Planner.ToggleExpanded(ctx, t.ProjectID, t.ID)
			if err != nil {
				return friendlyError(err)
			}
			state := "collapsed"
			if expanded {
				state = "expanded"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", t.Name, state)
			return nil
		},
	}
}
