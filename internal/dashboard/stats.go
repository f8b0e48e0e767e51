// Package dashboard aggregates ticket counts per project, across all
// projects and per assignee.
package dashboard

import (
	"sort"
	"time"

	"github.com/alexanderramin/gantry/internal/dates"
	"github.com/alexanderramin/gantry/internal/domain"
)

const (
	// DefaultDueSoonDays is how far ahead a ticket end counts as due soon.
	DefaultDueSoonDays = 7
	// MaxDisplayedAssignees caps the assignee breakdown shown per project.
	MaxDisplayedAssignees = 3
)

// ProjectStats summarizes the tickets of one project.
type ProjectStats struct {
	ProjectID         string
	TotalTickets      int
	ParentTickets     int // top-level tickets (no parent)
	OverdueTickets    int
	DueSoonTickets    int
	UnassignedTickets int
	AssigneeBreakdown map[string]int
	// DaysRemaining is days from today to the project end date; nil when
	// the project has no end date.
	DaysRemaining *int
}

// GlobalStats rolls the project stats up across every project.
type GlobalStats struct {
	TotalProjects int
	ByStatus      map[domain.ProjectStatus]int
	TotalTickets  int
	TotalOverdue  int
	TotalDueSoon  int
}

// AssigneeStats is one assignee's ticket count over all projects.
type AssigneeStats struct {
	AssigneeID   string
	AssigneeName string
	TicketCount  int
}

// Stats is the full dashboard report computed by Compute.
type Stats struct {
	Projects  map[string]*ProjectStats
	Global    GlobalStats
	Assignees []AssigneeStats // descending TicketCount
}

// IsOverdue reports whether end is strictly before today.
func IsOverdue(end, today time.Time) bool {
	return dates.DiffInDays(today, end) > 0
}

// IsDueSoon reports whether end falls within [today, today+threshold].
func IsDueSoon(end, today time.Time, threshold int) bool {
	d := dates.DiffInDays(end, today)
	return d >= 0 && d <= threshold
}

// Compute builds the dashboard. Tickets whose project is not in projects
// are not counted. Assignees with no tickets are left out of the ranking.
func Compute(projects []*domain.Project, tickets []*domain.Ticket, assignees []*domain.Assignee, today time.Time, dueSoonDays int) *Stats {
	if dueSoonDays < 0 {
		dueSoonDays = DefaultDueSoonDays
	}
	byProject := make(map[string][]*domain.Ticket)
	for _, t := range tickets {
		byProject[t.ProjectID] = append(byProject[t.ProjectID], t)
	}

	stats := &Stats{
		Projects: make(map[string]*ProjectStats, len(projects)),
		Global: GlobalStats{
			TotalProjects: len(projects),
			ByStatus:      make(map[domain.ProjectStatus]int),
		},
	}
	perAssignee := make(map[string]int)

	for _, p := range projects {
		stats.Global.ByStatus[p.Status]++
		ps := &ProjectStats{ProjectID: p.ID, AssigneeBreakdown: make(map[string]int)}
		for _, t := range byProject[p.ID] {
			ps.TotalTickets++
			if t.ParentID == nil {
				ps.ParentTickets++
			}
			if t.AssigneeID == nil {
				ps.UnassignedTickets++
			} else {
				ps.AssigneeBreakdown[*t.AssigneeID]++
				perAssignee[*t.AssigneeID]++
			}
			if IsOverdue(t.EndDate, today) {
				ps.OverdueTickets++
			}
			if IsDueSoon(t.EndDate, today, dueSoonDays) {
				ps.DueSoonTickets++
			}
		}
		if p.EndDate != nil {
			n := dates.DiffInDays(*p.EndDate, today)
			ps.DaysRemaining = &n
		}
		stats.Projects[p.ID] = ps
		stats.Global.TotalTickets += ps.TotalTickets
		stats.Global.TotalOverdue += ps.OverdueTickets
		stats.Global.TotalDueSoon += ps.DueSoonTickets
	}

	for _, a := range assignees {
		if n := perAssignee[a.ID]; n > 0 {
			stats.Assignees = append(stats.Assignees, AssigneeStats{AssigneeID: a.ID, AssigneeName: a.Name, TicketCount: n})
		}
	}
	sort.SliceStable(stats.Assignees, func(i, j int) bool {
		return stats.Assignees[i].TicketCount > stats.Assignees[j].TicketCount
	})
	return stats
}

// TopAssignees returns the busiest assignees of one project, at most limit,
// ordered by count then by the order of assignees.
func (ps *ProjectStats) TopAssignees(assignees []*domain.Assignee, limit int) []AssigneeStats {
	var out []AssigneeStats
	for _, a := range assignees {
		if n := ps.AssigneeBreakdown[a.ID]; n > 0 {
			out = append(out, AssigneeStats{AssigneeID: a.ID, AssigneeName: a.Name, TicketCount: n})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].TicketCount > out[j].TicketCount })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
