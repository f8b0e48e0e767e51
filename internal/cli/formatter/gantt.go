package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/gantry/internal/domain"
	"github.com/alexanderramin/gantry/internal/timeline"
	"github.com/alexanderramin/gantry/internal/tree"
	"github.com/charmbracelet/lipgloss"
)

// Timeline cell glyphs. Bars are solid so they read without colour.
const (
	glyphRootBar  = '█'
	glyphChildBar = '▓'
	glyphWeekend  = '·'
	glyphHoliday  = '*'
	glyphToday    = '│'
)

// GanttView selects the visible slice of a character timeline. Coordinates
// are in layout units, which are terminal columns for cell options.
type GanttView struct {
	ScrollX  int
	Width    int // 0 shows the whole window
	Dragging string
}

func (v GanttView) span(l *timeline.Layout) (from, to int) {
	from = max(v.ScrollX, 0)
	to = l.Width()
	if v.Width > 0 {
		to = min(to, from+v.Width)
	}
	return from, to
}

type cell struct {
	r     rune
	style *lipgloss.Style
}

// renderCells joins cells, styling runs that share a style.
func renderCells(cells []cell) string {
	var b strings.Builder
	for i := 0; i < len(cells); {
		j := i
		var run strings.Builder
		for j < len(cells) && cells[j].style == cells[i].style {
			run.WriteRune(cells[j].r)
			j++
		}
		if cells[i].style != nil {
			b.WriteString(cells[i].style.Render(run.String()))
		} else {
			b.WriteString(run.String())
		}
		i = j
	}
	return b.String()
}

// GanttMonths renders the month header line.
func GanttMonths(l *timeline.Layout, v GanttView) string {
	from, to := v.span(l)
	w := l.Options().DayWidth
	line := []rune(strings.Repeat(" ", l.Width()))
	for _, m := range l.Months() {
		label := []rune(fmt.Sprintf("%s %d", m.Month.String()[:3], m.Year))
		start := m.Offset * w
		limit := min(len(label), m.Days*w-1)
		for i := 0; i < limit; i++ {
			line[start+i] = label[i]
		}
		if m.Offset > 0 {
			line[start-1] = '┊'
		}
	}
	return StyleHeader.Render(string(line[from:to]))
}

// GanttDays renders the day-of-month header line, marking today,
// weekends and holidays.
func GanttDays(l *timeline.Layout, v GanttView) string {
	from, to := v.span(l)
	w := l.Options().DayWidth
	cells := make([]cell, 0, l.Width())
	for _, d := range l.Days() {
		label := fmt.Sprintf("%d", d.DayOfMonth)
		if len(label) > w {
			label = label[len(label)-w:]
		}
		label += strings.Repeat(" ", w-len(label))
		var style *lipgloss.Style
		switch {
		case d.Today:
			style = &StyleToday
		case d.Holiday:
			style = &StyleHoliday
		case d.Weekend:
			style = &StyleDim
		}
		for _, r := range label {
			cells = append(cells, cell{r: r, style: style})
		}
	}
	return renderCells(cells[from:to])
}

// GanttBar renders one ticket's row of the timeline.
func GanttBar(l *timeline.Layout, t *domain.Ticket, v GanttView) string {
	from, to := v.span(l)
	w := l.Options().DayWidth
	bar := l.Bar(t, 0)

	glyph, style := glyphChildBar, &StyleChildBar
	if t.IsRoot() {
		glyph, style = glyphRootBar, &StyleRootBar
	}
	if v.Dragging != "" && v.Dragging == t.ID {
		style = &StyleActiveBar
	}

	days := l.Days()
	cells := make([]cell, to-from)
	for x := from; x < to; x++ {
		c := cell{r: ' '}
		d := days[x/w]
		switch {
		case x >= bar.Left && x < bar.Left+bar.Width:
			c = cell{r: glyph, style: style}
		case d.Today && x%w == 0:
			c = cell{r: glyphToday, style: &StyleToday}
		case d.Holiday:
			c = cell{r: glyphHoliday, style: &StyleHoliday}
		case d.Weekend:
			c = cell{r: glyphWeekend, style: &StyleDim}
		}
		cells[x-from] = c
	}
	return renderCells(cells)
}

// RenderGantt draws a complete text timeline: an indented name column
// followed by the header lines and one bar per row.
func RenderGantt(l *timeline.Layout, rows []tree.Row, nameWidth int) string {
	var b strings.Builder
	pad := strings.Repeat(" ", nameWidth+1)
	b.WriteString(pad + GanttMonths(l, GanttView{}) + "\n")
	b.WriteString(pad + GanttDays(l, GanttView{}) + "\n")
	for _, r := range rows {
		name := Truncate(strings.Repeat("  ", r.Level)+r.Ticket.Name, nameWidth)
		b.WriteString(name + strings.Repeat(" ", nameWidth-lipgloss.Width(name)+1))
		b.WriteString(GanttBar(l, r.Ticket, GanttView{}) + "\n")
	}
	return b.String()
}

// Truncate shortens s to width visible cells, ending with an ellipsis
// when cut.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	if width == 1 {
		return "…"
	}
	return string(r[:width-1]) + "…"
}
