package timeline

import (
	"testing"
	"time"

	"github.com/alexanderramin/gantry/internal/dates"
	"github.com/alexanderramin/gantry/internal/domain"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ticket(id, start, end string) *domain.Ticket {
	return &domain.Ticket{
		ID:        id,
		ProjectID: "p1",
		Name:      id,
		StartDate: dates.MustParse(start),
		EndDate:   dates.MustParse(end),
	}
}

func TestNewLayout_EmptyUsesTodayPlus30(t *testing.T) {
	today := dates.MustParse("2025-05-10")
	l := NewLayout(nil, today, Options{})

	assert.Equal(t, today, l.RangeStart, "no padding before today")
	assert.Equal(t, dates.MustParse("2025-06-09"), l.RangeEnd)
	assert.Equal(t, 31, l.TotalDays)
}

func TestNewLayout_PadsTwoDaysEachSide(t *testing.T) {
	tickets := []*domain.Ticket{
		ticket("a", "2025-01-10", "2025-01-12"),
		ticket("b", "2025-01-05", "2025-01-06"),
		ticket("c", "2025-01-20", "2025-01-31"),
	}
	l := NewLayout(tickets, dates.MustParse("2025-01-01"), Options{})

	assert.Equal(t, dates.MustParse("2025-01-03"), l.RangeStart)
	assert.Equal(t, dates.MustParse("2025-02-02"), l.RangeEnd)
	assert.Equal(t, 31, l.TotalDays)
	assert.Equal(t, 31*DefaultDayWidth, l.Width())
}

func TestBar_Geometry(t *testing.T) {
	tk := ticket("a", "2025-01-10", "2025-01-12")
	l := NewLayout([]*domain.Ticket{tk}, time.Time{}, Options{})

	got := l.Bar(tk, 3)
	assert.Equal(t, Rect{Left: 2 * 40, Top: 3*50 + 9, Width: 3 * 40, Height: 32}, got)
}

func TestBar_WidthMatchesInclusiveDays(t *testing.T) {
	base := dates.MustParse("2024-12-20")
	for n := 0; n < 90; n += 3 {
		tk := &domain.Ticket{ID: "x", StartDate: base, EndDate: dates.AddDays(base, n)}
		l := NewLayout([]*domain.Ticket{tk}, base, Options{DayWidth: 7})
		assert.Equal(t, (n+1)*7, l.Bar(tk, 0).Width, "n=%d", n)
	}
}

func TestBar_StaysInsideShortRows(t *testing.T) {
	tk := ticket("a", "2025-01-10", "2025-01-10")
	tests := []struct {
		name string
		opts Options
		want Rect
	}{
		{"row shorter than default bar", Options{RowHeight: 20}, Rect{Left: 80, Top: 20, Width: 40, Height: 20}},
		{"default bar centred", Options{RowHeight: 40}, Rect{Left: 80, Top: 40 + 4, Width: 40, Height: 32}},
		{"inset too large", Options{RowHeight: 40, BarHeight: 30, BarInset: 20}, Rect{Left: 80, Top: 40 + 5, Width: 40, Height: 30}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := NewLayout([]*domain.Ticket{tk}, time.Time{}, tt.opts)
			got := l.Bar(tk, 1)
			assert.Equal(t, tt.want, got)
			assert.LessOrEqual(t, got.Top+got.Height, l.Height(2))
		})
	}
}

func TestDateAt_InvertsX(t *testing.T) {
	l := NewLayout([]*domain.Ticket{ticket("a", "2025-03-01", "2025-03-20")}, time.Time{}, Options{})
	for i := 0; i < l.TotalDays; i++ {
		d := dates.AddDays(l.RangeStart, i)
		x := l.X(d)
		assert.Equal(t, d, l.DateAt(x))
		assert.Equal(t, d, l.DateAt(x+DefaultDayWidth-1))
	}
	assert.Equal(t, dates.AddDays(l.RangeStart, -1), l.DateAt(-1))
}

func TestRowAt(t *testing.T) {
	l := NewLayout(nil, time.Time{}, Options{})
	assert.Equal(t, -1, l.RowAt(-5))
	assert.Equal(t, 0, l.RowAt(49))
	assert.Equal(t, 1, l.RowAt(50))
	assert.Equal(t, 100, l.Height(2))
}

func TestMonths_SplitAcrossYear(t *testing.T) {
	l := NewLayout([]*domain.Ticket{ticket("a", "2024-12-29", "2025-02-02")}, time.Time{}, Options{})

	want := []Month{
		{Year: 2024, Month: time.December, Days: 5, Offset: 0},
		{Year: 2025, Month: time.January, Days: 31, Offset: 5},
		{Year: 2025, Month: time.February, Days: 4, Offset: 36},
	}
	if diff := cmp.Diff(want, l.Months()); diff != "" {
		t.Errorf("Months mismatch (-want +got):\n%s", diff)
	}

	total := 0
	for _, m := range l.Months() {
		total += m.Days
	}
	assert.Equal(t, l.TotalDays, total)
}

func TestDays_WeekendAndToday(t *testing.T) {
	today := dates.MustParse("2025-01-20")
	l := NewLayout([]*domain.Ticket{ticket("a", "2025-01-18", "2025-01-20")}, today, Options{})

	days := l.Days()
	require.Len(t, days, l.TotalDays)
	// Window starts 2025-01-16 (Thursday).
	assert.Equal(t, 16, days[0].DayOfMonth)
	assert.False(t, days[0].Weekend)
	assert.True(t, days[2].Weekend)
	assert.True(t, days[3].Weekend)
	assert.True(t, days[4].Today)
	assert.False(t, days[4].Weekend)
}

type fixedHolidays map[string]string

func (f fixedHolidays) HolidayName(d time.Time) (string, bool) {
	name, ok := f[dates.Format(d)]
	return name, ok
}

func TestDays_Holidays(t *testing.T) {
	opts := Options{Holidays: fixedHolidays{"2025-01-01": "New Year"}}
	l := NewLayout([]*domain.Ticket{ticket("a", "2025-01-01", "2025-01-01")}, time.Time{}, opts)

	days := l.Days()
	assert.True(t, days[2].Holiday)
	assert.Equal(t, "New Year", days[2].HolidayName)
	assert.False(t, days[1].Holiday)
}

func TestCellOptions(t *testing.T) {
	tk := ticket("a", "2025-01-10", "2025-01-11")
	l := NewLayout([]*domain.Ticket{tk}, time.Time{}, CellOptions(3, nil))
	assert.Equal(t, Rect{Left: 6, Top: 4, Width: 6, Height: 1}, l.Bar(tk, 4))
}

func TestNewHolidayCalendar(t *testing.T) {
	cal, err := NewHolidayCalendar("")
	require.NoError(t, err)
	assert.Nil(t, cal)

	_, err = NewHolidayCalendar("mars")
	require.Error(t, err)

	us, err := NewHolidayCalendar("us")
	require.NoError(t, err)
	name, ok := us.HolidayName(dates.MustParse("2025-07-04"))
	assert.True(t, ok)
	assert.NotEmpty(t, name)
	_, ok = us.HolidayName(dates.MustParse("2025-07-08"))
	assert.False(t, ok)
}
