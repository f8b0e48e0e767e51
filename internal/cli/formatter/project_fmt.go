package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/gantry/internal/dates"
	"github.com/alexanderramin/gantry/internal/domain"
)

// FormatProjectList renders projects as a table.
func FormatProjectList(projects []*domain.Project) string {
	rows := make([][]string, 0, len(projects))
	for _, p := range projects {
		rows = append(rows, []string{
			TruncID(p.ID),
			p.Name,
			StatusPill(p.Status),
			p.Manager,
			OptionalDate(p.StartDate),
			OptionalDate(p.EndDate),
		})
	}
	return RenderTable([]string{"ID", "NAME", "STATUS", "MANAGER", "START", "END"}, rows)
}

// FormatProjectDetail renders one project with its planning metadata.
func FormatProjectDetail(p *domain.Project, ticketCount int, today time.Time) string {
	var b strings.Builder
	field := func(label, value string) {
		b.WriteString(fmt.Sprintf("%s %s\n", Dim(fmt.Sprintf("%-10s", label)), value))
	}
	field("ID", p.ID)
	field("Status", StatusPill(p.Status))
	if p.Manager != "" {
		field("Manager", p.Manager)
	}
	field("Window", OptionalDate(p.StartDate)+" → "+OptionalDate(p.EndDate))
	if p.EndDate != nil {
		n := dates.DiffInDays(*p.EndDate, today)
		field("Remaining", DaysRemainingStyled(&n))
	}
	field("Hours", OptionalNumber(p.EstimatedHours, "h"))
	field("Budget", OptionalNumber(p.EstimatedBudget, ""))
	field("Tickets", fmt.Sprintf("%d", ticketCount))
	if p.Description != "" {
		b.WriteString("\n" + p.Description + "\n")
	}
	if p.Notes != "" {
		b.WriteString("\n" + Dim("Notes") + "\n" + p.Notes + "\n")
	}
	return RenderBox(p.Name, strings.TrimRight(b.String(), "\n"))
}

// FormatTicketDetail renders one ticket.
func FormatTicketDetail(t *domain.Ticket, parentName, assigneeName string) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s %s\n", Dim(fmt.Sprintf("%-10s", "ID")), t.ID))
	b.WriteString(fmt.Sprintf("%s %s\n", Dim(fmt.Sprintf("%-10s", "Dates")), DateRange(t.StartDate, t.EndDate)))
	if parentName != "" {
		b.WriteString(fmt.Sprintf("%s %s\n", Dim(fmt.Sprintf("%-10s", "Parent")), parentName))
	}
	if assigneeName == "" {
		assigneeName = Dim("unassigned")
	}
	b.WriteString(fmt.Sprintf("%s %s", Dim(fmt.Sprintf("%-10s", "Assignee")), assigneeName))
	return RenderBox(t.Name, b.String())
}
