// Package dates implements calendar-date arithmetic for tickets and the
// timeline. Values are treated as civil dates: the time of day and the
// location only matter for reading off year, month and day.
package dates

import (
	"fmt"
	"math"
	"time"
)

// Layout is the storage and input format for calendar dates.
const Layout = "2006-01-02"

const hoursPerDay = 24

// StartOfDay returns midnight of t's calendar day in t's location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// civil re-anchors t's calendar day at UTC midnight so that subtracting two
// civil values never sees a 23h or 25h day.
func civil(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// AddDays adds n calendar days to t. Month and year boundaries roll over;
// the wall-clock time is preserved across DST transitions.
func AddDays(t time.Time, n int) time.Time {
	return t.AddDate(0, 0, n)
}

// DiffInDays returns a - b in whole calendar days. Both operands are
// normalized to midnight first and the result is rounded to the nearest day.
func DiffInDays(a, b time.Time) int {
	diff := civil(a).Sub(civil(b))
	return int(math.Round(diff.Hours() / hoursPerDay))
}

// InclusiveDays returns the number of calendar days covered by [start, end].
// A single-day range covers one day.
func InclusiveDays(start, end time.Time) int {
	return DiffInDays(end, start) + 1
}

// Today returns the current calendar day in UTC.
func Today() time.Time {
	return TodayFrom(time.Now())
}

// TodayFrom returns now's calendar day anchored at UTC midnight.
func TodayFrom(now time.Time) time.Time {
	return civil(now)
}

// Parse reads a YYYY-MM-DD string as a UTC calendar date.
func Parse(s string) (time.Time, error) {
	t, err := time.Parse(Layout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (use YYYY-MM-DD): %w", s, err)
	}
	return t, nil
}

// MustParse is Parse for literals in tests and fixtures.
func MustParse(s string) time.Time {
	t, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return t
}

// Format renders t as YYYY-MM-DD.
func Format(t time.Time) string {
	return t.Format(Layout)
}

// Before reports whether a's calendar day is strictly before b's.
func Before(a, b time.Time) bool {
	return DiffInDays(a, b) < 0
}

// IsWeekend reports whether t falls on a Saturday or Sunday.
func IsWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}
