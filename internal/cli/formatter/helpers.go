package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/gantry/internal/dates"
	"github.com/alexanderramin/gantry/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		return boxStyle.Render(StyleHeader.Render(strings.ToUpper(title)) + "\n\n" + content)
	}
	return boxStyle.Render(content)
}

// RelativeDays describes a day count relative to today.
func RelativeDays(days int) string {
	switch {
	case days == 0:
		return "Today"
	case days == 1:
		return "Tomorrow"
	case days == -1:
		return "Yesterday"
	case days > 0 && days < 14:
		return fmt.Sprintf("In %dd", days)
	case days > 0 && days < 60:
		return fmt.Sprintf("In %dw", days/7)
	case days > 0:
		return fmt.Sprintf("In %dmo", days/30)
	case days > -14:
		return fmt.Sprintf("%dd ago", -days)
	case days > -60:
		return fmt.Sprintf("%dw ago", -days/7)
	default:
		return fmt.Sprintf("%dmo ago", -days/30)
	}
}

// RelativeDateFrom returns a human-friendly date relative to today.
func RelativeDateFrom(t, today time.Time) string {
	return RelativeDays(dates.DiffInDays(t, today))
}

// DaysRemainingStyled colours a project's remaining days by urgency.
func DaysRemainingStyled(days *int) string {
	if days == nil {
		return Dim("—")
	}
	text := RelativeDays(*days)
	switch {
	case *days < 0:
		return StyleRed.Render(text)
	case *days <= 7:
		return StyleYellow.Render(text)
	default:
		return StyleFg.Render(text)
	}
}

// DateRange renders an inclusive date range with its length.
func DateRange(start, end time.Time) string {
	n := dates.InclusiveDays(start, end)
	unit := "days"
	if n == 1 {
		unit = "day"
	}
	return fmt.Sprintf("%s → %s %s", dates.Format(start), dates.Format(end), Dim(fmt.Sprintf("(%d %s)", n, unit)))
}

// OptionalDate renders a nullable date or a dash.
func OptionalDate(t *time.Time) string {
	if t == nil {
		return Dim("—")
	}
	return dates.Format(*t)
}

// OptionalNumber renders a nullable estimate or a dash.
func OptionalNumber(v *float64, unit string) string {
	if v == nil {
		return Dim("—")
	}
	return strings.TrimSpace(fmt.Sprintf("%g %s", *v, unit))
}

// StatusPill returns a colored status indicator for project status.
func StatusPill(status domain.ProjectStatus) string {
	switch status {
	case domain.ProjectPlanning:
		return StatusStyle(status).Render("○ " + status.Label())
	case domain.ProjectInProgress:
		return StatusStyle(status).Render("● " + status.Label())
	case domain.ProjectCompleted:
		return StatusStyle(status).Render("✔ " + status.Label())
	default:
		return StyleDim.Render(string(status))
	}
}

// TruncID returns the first 8 characters of an ID, dimmed.
func TruncID(id string) string {
	return StyleDim.Render(domain.ShortID(id))
}
