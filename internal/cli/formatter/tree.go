package formatter

import (
	"strings"

	"github.com/alexanderramin/gantry/internal/domain"
	"github.com/alexanderramin/gantry/internal/tree"
	"github.com/charmbracelet/lipgloss"
)

// TreeItem is a single line of a ticket tree.
type TreeItem struct {
	Title       string
	ID          string
	Level       int
	IsLast      bool
	HasChildren bool
	Expanded    bool
	Detail      string
}

const (
	treeBranch = "├─ "
	treeCorner = "└─ "
	treePipe   = "│  "
	treeSpace  = "   "
)

// TreeItems converts flattened rows into tree lines. detail may be nil.
func TreeItems(rows []tree.Row, expanded map[string]bool, detail func(*domain.Ticket) string) []TreeItem {
	items := make([]TreeItem, len(rows))
	for i, r := range rows {
		items[i] = TreeItem{
			Title:       r.Ticket.Name,
			ID:          r.Ticket.ID,
			Level:       r.Level,
			IsLast:      isLastSibling(rows, i),
			HasChildren: r.HasChildren,
			Expanded:    expanded[r.Ticket.ID],
		}
		if detail != nil {
			items[i].Detail = detail(r.Ticket)
		}
	}
	return items
}

// isLastSibling reports whether no later row shares rows[i]'s parent.
func isLastSibling(rows []tree.Row, i int) bool {
	level := rows[i].Level
	for _, r := range rows[i+1:] {
		if r.Level < level {
			return true
		}
		if r.Level == level {
			return false
		}
	}
	return true
}

// RenderTree renders tree lines with box-drawing connectors, a fold marker
// on parents and right-aligned detail badges.
func RenderTree(items []TreeItem) string {
	if len(items) == 0 {
		return ""
	}

	contents := make([]string, len(items))
	maxWidth := 0
	// open[l] is true while the ancestor at level l still has siblings below.
	var open []bool
	for idx, item := range items {
		var prefix strings.Builder
		for l := 1; l < item.Level && l < len(open); l++ {
			if open[l] {
				prefix.WriteString(treePipe)
			} else {
				prefix.WriteString(treeSpace)
			}
		}
		if item.Level > 0 {
			if item.IsLast {
				prefix.WriteString(treeCorner)
			} else {
				prefix.WriteString(treeBranch)
			}
		}
		for len(open) <= item.Level {
			open = append(open, false)
		}
		open[item.Level] = !item.IsLast

		marker := "  "
		if item.HasChildren {
			marker = StyleDim.Render("▸ ")
			if item.Expanded {
				marker = StyleDim.Render("▾ ")
			}
		}
		title := item.Title
		if item.Level == 0 {
			title = StyleBold.Render(title)
		}
		contents[idx] = TruncID(item.ID) + " " + prefix.String() + marker + title
		maxWidth = max(maxWidth, lipgloss.Width(contents[idx]))
	}

	var b strings.Builder
	for idx, item := range items {
		b.WriteString(contents[idx])
		if item.Detail != "" {
			pad := maxWidth - lipgloss.Width(contents[idx])
			b.WriteString(strings.Repeat(" ", pad) + "  " + StyleBlue.Render("[ "+item.Detail+" ]"))
		}
		b.WriteString("\n")
	}
	return b.String()
}
