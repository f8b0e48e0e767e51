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

const timelineNameWidth = 24

func newTimelineCmd(app *App) *cobra.Command {
	var all, geometry bool

	cmd := &cobra.Command{
		Use:     "timeline PROJECT",
		Aliases: []string{"gantt"},
		Short:   "Draw a project's timeline",
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
			rows := snap.Rows
			if all {
				rows = tree.Flatten(snap.Tickets, tree.ExpandableIDs(snap.Tickets))
			}

			out := cmd.OutOrStdout()
			if geometry {
				l := timeline.NewLayout(snap.Tickets, app.Today(), timeline.Options{
					DayWidth:  app.Config.DayWidth,
					RowHeight: app.Config.RowHeight,
					Holidays:  app.Holidays,
				})
				fmt.Fprint(out, formatGeometry(l, rows))
				return nil
			}

			fmt.Fprintln(out, formatter.Header(p.Name))
			if len(rows) == 0 {
				fmt.Fprintln(out, formatter.Dim("No tickets yet."))
				return nil
			}
			l := timeline.NewLayout(snap.Tickets, app.Today(), timeline.CellOptions(app.dayCells(), app.Holidays))
			fmt.Fprint(out, formatter.RenderGantt(l, rows, timelineNameWidth))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&all, "all", "a", false, "Include collapsed tickets")
	cmd.Flags().BoolVar(&geometry, "geometry", false, "Print the window and bar rectangles instead of drawing")
	return cmd
}

// formatGeometry lists the computed window and one bar rectangle per row.
func formatGeometry(l *timeline.Layout, rows []tree.Row) string {
	head := fmt.Sprintf("Window %s → %s (%d days, %d wide)\n\n",
		dates.Format(l.RangeStart), dates.Format(l.RangeEnd), l.TotalDays, l.Width())

	table := make([][]string, len(rows))
	for i, r := range rows {
		bar := l.Bar(r.Ticket, i)
		table[i] = []string{
			domain.ShortID(r.Ticket.ID),
			r.Ticket.Name,
			strconv.Itoa(r.Level),
			strconv.Itoa(bar.Left),
			strconv.Itoa(bar.Top),
			strconv.Itoa(bar.Width),
			strconv.Itoa(bar.Height),
		}
	}
	return head + formatter.RenderTable([]string{"ID", "TICKET", "LEVEL", "LEFT", "TOP", "WIDTH", "HEIGHT"}, table)
}
