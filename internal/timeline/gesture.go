package timeline

import (
	"math"
	"time"

	"github.com/alexanderramin/gantry/internal/dates"
	"github.com/alexanderramin/gantry/internal/domain"
)

// GestureKind is what a pointer-down on a bar started.
type GestureKind int

const (
	GestureNone GestureKind = iota
	GestureMove
	GestureResizeStart
	GestureResizeEnd
)

func (k GestureKind) String() string {
	switch k {
	case GestureMove:
		return "move"
	case GestureResizeStart:
		return "resize-start"
	case GestureResizeEnd:
		return "resize-end"
	default:
		return "none"
	}
}

// Session is the state of one drag, from pointer-down to release.
type Session struct {
	Kind      GestureKind
	TicketID  string
	StartX    int
	OrigStart time.Time
	OrigEnd   time.Time
	Original  *domain.Ticket
	Candidate *domain.Ticket
}

// Resolve computes the candidate for a pointer at x. Moving shifts both
// dates; resizing the start never passes the original end and resizing
// the end never passes the original start. The original ticket is left
// untouched.
func Resolve(s *Session, x, dayWidth int) *domain.Ticket {
	days := daysMoved(x-s.StartX, dayWidth)
	start, end := s.OrigStart, s.OrigEnd
	switch s.Kind {
	case GestureMove:
		start = dates.AddDays(s.OrigStart, days)
		end = dates.AddDays(s.OrigEnd, days)
	case GestureResizeStart:
		start = dates.AddDays(s.OrigStart, days)
		if start.After(s.OrigEnd) {
			start = s.OrigEnd
		}
	case GestureResizeEnd:
		end = dates.AddDays(s.OrigEnd, days)
		if end.Before(s.OrigStart) {
			end = s.OrigStart
		}
	}
	return s.Original.WithDates(start, end)
}

// daysMoved rounds half a day toward +inf, so a drag of exactly -0.5 days
// stays put and +0.5 moves one day.
func daysMoved(dx, dayWidth int) int {
	if dayWidth <= 0 {
		return 0
	}
	return int(math.Floor(float64(dx)/float64(dayWidth) + 0.5))
}

// Resolver owns at most one gesture session. The zero value is idle.
type Resolver struct {
	DayWidth int
	session  *Session
}

// NewResolver returns an idle resolver for the given day width.
func NewResolver(dayWidth int) *Resolver {
	if dayWidth <= 0 {
		dayWidth = DefaultDayWidth
	}
	return &Resolver{DayWidth: dayWidth}
}

// Active reports whether a drag is in progress.
func (r *Resolver) Active() bool { return r.session != nil }

// Session returns the current session, or nil when idle.
func (r *Resolver) Session() *Session { return r.session }

// Begin starts a gesture on t at x. The candidate starts equal to t. A
// Begin while another drag is active is ignored and returns false.
func (r *Resolver) Begin(kind GestureKind, t *domain.Ticket, x int) bool {
	if r.session != nil || kind == GestureNone || t == nil {
		return false
	}
	r.session = &Session{
		Kind:      kind,
		TicketID:  t.ID,
		StartX:    x,
		OrigStart: t.StartDate,
		OrigEnd:   t.EndDate,
		Original:  t,
		Candidate: t,
	}
	return true
}

// Move updates the candidate for a pointer at x and returns it. It
// returns nil when idle.
func (r *Resolver) Move(x int) *domain.Ticket {
	if r.session == nil {
		return nil
	}
	r.session.Candidate = Resolve(r.session, x, r.DayWidth)
	return r.session.Candidate
}

// Release ends the gesture and returns the candidate to commit, or nil
// when idle. The session is cleared in every case.
func (r *Resolver) Release() *domain.Ticket {
	if r.session == nil {
		return nil
	}
	c := r.session.Candidate
	r.session = nil
	return c
}

// Leave handles the pointer leaving the tracking surface mid-drag. It
// commits like a release.
func (r *Resolver) Leave() *domain.Ticket {
	return r.Release()
}

// Display returns the candidate standing in for t while t is being
// dragged, and t otherwise.
func (r *Resolver) Display(t *domain.Ticket) *domain.Ticket {
	if r.session != nil && r.session.TicketID == t.ID && r.session.Candidate != nil {
		return r.session.Candidate
	}
	return t
}

// HitTest decides which gesture a pointer-down at (x, y) starts on the bar
// of t drawn at row. The outer handleWidth units at each end resize; the
// rest moves. When the handles overlap on a short bar the end handle wins.
func HitTest(l *Layout, t *domain.Ticket, row, x, y, handleWidth int) GestureKind {
	bar := l.Bar(t, row)
	if !bar.Contains(x, y) {
		return GestureNone
	}
	switch {
	case x >= bar.Left+bar.Width-handleWidth:
		return GestureResizeEnd
	case x < bar.Left+handleWidth:
		return GestureResizeStart
	default:
		return GestureMove
	}
}

// Shift applies a gesture of the given kind worth days whole days to t
// without a pointer. The keyboard planner uses it for nudging and
// stretching bars; the clamps match a drag of the same size.
func Shift(kind GestureKind, t *domain.Ticket, days int) *domain.Ticket {
	r := NewResolver(1)
	if !r.Begin(kind, t, 0) {
		return t
	}
	r.Move(days)
	return r.Release()
}
