package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/gantry/internal/dashboard"
	"github.com/alexanderramin/gantry/internal/domain"
)

// FormatDashboard renders the global roll-up, a per-project table and the
// assignee ranking.
func FormatDashboard(stats *dashboard.Stats, projects []*domain.Project, assignees []*domain.Assignee) string {
	var b strings.Builder
	g := stats.Global

	b.WriteString(Header("Overview") + "\n")
	var statusParts []string
	for _, s := range domain.ProjectStatuses {
		statusParts = append(statusParts, fmt.Sprintf("%d %s", g.ByStatus[s], strings.ToLower(s.Label())))
	}
	b.WriteString(fmt.Sprintf("%s projects  %s\n", Bold(fmt.Sprint(g.TotalProjects)), Dim("("+strings.Join(statusParts, ", ")+")")))
	b.WriteString(fmt.Sprintf("%s tickets  %s overdue  %s due soon\n\n",
		Bold(fmt.Sprint(g.TotalTickets)),
		countStyled(g.TotalOverdue, StyleRed.Render),
		countStyled(g.TotalDueSoon, StyleYellow.Render)))

	if len(projects) > 0 {
		b.WriteString(Header("Projects") + "\n")
		rows := make([][]string, 0, len(projects))
		for _, p := range projects {
			ps := stats.Projects[p.ID]
			if ps == nil {
				continue
			}
			rows = append(rows, []string{
				p.Name,
				StatusPill(p.Status),
				fmt.Sprintf("%d (%d top)", ps.TotalTickets, ps.ParentTickets),
				countStyled(ps.OverdueTickets, StyleRed.Render),
				countStyled(ps.DueSoonTickets, StyleYellow.Render),
				fmt.Sprint(ps.UnassignedTickets),
				topAssignees(ps, assignees),
				DaysRemainingStyled(ps.DaysRemaining),
			})
		}
		b.WriteString(RenderTable([]string{"PROJECT", "STATUS", "TICKETS", "OVERDUE", "DUE SOON", "UNASSIGNED", "TOP ASSIGNEES", "ENDS"}, rows))
		b.WriteString("\n")
	}

	if len(stats.Assignees) > 0 {
		b.WriteString(Header("Assignees") + "\n")
		rows := make([][]string, 0, len(stats.Assignees))
		for _, a := range stats.Assignees {
			rows = append(rows, []string{a.AssigneeName, fmt.Sprint(a.TicketCount)})
		}
		b.WriteString(RenderTable([]string{"NAME", "TICKETS"}, rows))
	}
	return strings.TrimRight(b.String(), "\n")
}

func countStyled(n int, style func(...string) string) string {
	if n == 0 {
		return Dim("0")
	}
	return style(fmt.Sprint(n))
}

func topAssignees(ps *dashboard.ProjectStats, assignees []*domain.Assignee) string {
	top := ps.TopAssignees(assignees, dashboard.MaxDisplayedAssignees)
	if len(top) == 0 {
		return Dim("—")
	}
	parts := make([]string, len(top))
	for i, a := range top {
		parts[i] = fmt.Sprintf("%s (%d)", a.AssigneeName, a.TicketCount)
	}
	return strings.Join(parts, ", ")
}
