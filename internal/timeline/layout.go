// Package timeline computes the geometry of the Gantt view: the visible
// date window, where each ticket bar sits, the month and day header cells,
// and how pointer gestures on a bar translate into new dates.
//
// Units are abstract. The defaults below are pixels; the terminal planner
// passes cell-sized options instead.
package timeline

import (
	"math"
	"time"

	"github.com/alexanderramin/gantry/internal/dates"
	"github.com/alexanderramin/gantry/internal/domain"
)

const (
	DefaultDayWidth  = 40
	DefaultRowHeight = 50
	DefaultBarHeight = 32
	DefaultBarInset  = 9

	// rangePadDays is the margin shown on each side of the scheduled work.
	rangePadDays = 2
	// emptyRangeDays is the span after today shown when there is nothing to plot.
	emptyRangeDays = 30
)

// Options sizes the timeline. Zero fields take the defaults; a zero
// BarInset centres the bar in its row. BarHeight is capped at RowHeight.
type Options struct {
	DayWidth  int
	RowHeight int
	BarHeight int
	BarInset  int
	Holidays  HolidayCalendar
}

func (o Options) withDefaults() Options {
	if o.DayWidth <= 0 {
		o.DayWidth = DefaultDayWidth
	}
	if o.RowHeight <= 0 {
		o.RowHeight = DefaultRowHeight
	}
	if o.BarHeight <= 0 {
		o.BarHeight = DefaultBarHeight
	}
	// A bar never overflows its row.
	o.BarHeight = min(o.BarHeight, o.RowHeight)
	if o.BarInset <= 0 || o.BarInset+o.BarHeight > o.RowHeight {
		o.BarInset = (o.RowHeight - o.BarHeight) / 2
	}
	return o
}

// CellOptions returns options for a character grid: one row per ticket,
// cellsPerDay columns per day and a full-height bar.
func CellOptions(cellsPerDay int, holidays HolidayCalendar) Options {
	return Options{DayWidth: cellsPerDay, RowHeight: 1, BarHeight: 1, Holidays: holidays}
}

// Layout is the computed geometry for one set of tickets.
type Layout struct {
	RangeStart time.Time
	RangeEnd   time.Time
	TotalDays  int
	Today      time.Time
	opts       Options
}

// Rect is a bar's bounding box.
type Rect struct {
	Left, Top, Width, Height int
}

// Contains reports whether (x, y) falls inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.Left && x < r.Left+r.Width && y >= r.Top && y < r.Top+r.Height
}

// NewLayout derives the visible window from tickets: two days before the
// earliest start through two days after the latest end. With no tickets the
// window is today through today+30.
func NewLayout(tickets []*domain.Ticket, today time.Time, opts Options) *Layout {
	l := &Layout{Today: dates.StartOfDay(today), opts: opts.withDefaults()}
	if len(tickets) == 0 {
		l.RangeStart = l.Today
		l.RangeEnd = dates.AddDays(l.Today, emptyRangeDays)
		l.TotalDays = emptyRangeDays + 1
		return l
	}
	minStart, maxEnd := tickets[0].StartDate, tickets[0].EndDate
	for _, t := range tickets[1:] {
		if t.StartDate.Before(minStart) {
			minStart = t.StartDate
		}
		if t.EndDate.After(maxEnd) {
			maxEnd = t.EndDate
		}
	}
	l.RangeStart = dates.AddDays(dates.StartOfDay(minStart), -rangePadDays)
	l.RangeEnd = dates.AddDays(dates.StartOfDay(maxEnd), rangePadDays)
	l.TotalDays = dates.DiffInDays(l.RangeEnd, l.RangeStart) + 1
	return l
}

// Options returns the effective sizing.
func (l *Layout) Options() Options { return l.opts }

// Width is the full horizontal extent of the day grid.
func (l *Layout) Width() int { return l.TotalDays * l.opts.DayWidth }

// Height is the vertical extent of rows ticket rows.
func (l *Layout) Height(rows int) int { return rows * l.opts.RowHeight }

// X returns the left edge of date's column. Dates outside the window give
// coordinates outside [0, Width).
func (l *Layout) X(date time.Time) int {
	return dates.DiffInDays(date, l.RangeStart) * l.opts.DayWidth
}

// Bar places ticket t on row (0-based).
func (l *Layout) Bar(t *domain.Ticket, row int) Rect {
	return Rect{
		Left:   l.X(t.StartDate),
		Top:    row*l.opts.RowHeight + l.opts.BarInset,
		Width:  dates.InclusiveDays(t.StartDate, t.EndDate) * l.opts.DayWidth,
		Height: l.opts.BarHeight,
	}
}

// DateAt maps a horizontal coordinate to the day whose column contains it.
func (l *Layout) DateAt(x int) time.Time {
	idx := int(math.Floor(float64(x) / float64(l.opts.DayWidth)))
	return dates.AddDays(l.RangeStart, idx)
}

// RowAt maps a vertical coordinate to a row index, or -1 above the grid.
func (l *Layout) RowAt(y int) int {
	if y < 0 {
		return -1
	}
	return y / l.opts.RowHeight
}

// Month is one header span of consecutive days in the same month.
type Month struct {
	Year   int
	Month  time.Month
	Days   int
	Offset int // index of the first day within the window
}

// Months splits the window into month spans.
func (l *Layout) Months() []Month {
	var months []Month
	for i := 0; i < l.TotalDays; i++ {
		d := dates.AddDays(l.RangeStart, i)
		if len(months) == 0 || months[len(months)-1].Month != d.Month() || months[len(months)-1].Year != d.Year() {
			months = append(months, Month{Year: d.Year(), Month: d.Month(), Offset: i})
		}
		months[len(months)-1].Days++
	}
	return months
}

// Day is one header cell.
type Day struct {
	Date        time.Time
	Index       int
	DayOfMonth  int
	Weekend     bool
	Today       bool
	Holiday     bool
	HolidayName string
}

// Days returns one cell per day in the window.
func (l *Layout) Days() []Day {
	days := make([]Day, l.TotalDays)
	for i := range days {
		d := dates.AddDays(l.RangeStart, i)
		days[i] = Day{
			Date:       d,
			Index:      i,
			DayOfMonth: d.Day(),
			Weekend:    dates.IsWeekend(d),
			Today:      dates.DiffInDays(d, l.Today) == 0,
		}
		if l.opts.Holidays != nil {
			if name, ok := l.opts.Holidays.HolidayName(d); ok {
				days[i].Holiday = true
				days[i].HolidayName = name
			}
		}
	}
	return days
}
