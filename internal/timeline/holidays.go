package timeline

import (
	"fmt"
	"strings"
	"time"

	"github.com/rickar/cal/v2"
	"github.com/rickar/cal/v2/jp"
	"github.com/rickar/cal/v2/us"
)

// HolidayCalendar names public holidays for header shading.
type HolidayCalendar interface {
	HolidayName(date time.Time) (string, bool)
}

type calHolidays struct {
	cal *cal.BusinessCalendar
}

// NewHolidayCalendar returns the calendar for region ("us" or "jp"). An
// empty region disables holiday shading and returns nil.
func NewHolidayCalendar(region string) (HolidayCalendar, error) {
	c := cal.NewBusinessCalendar()
	switch strings.ToLower(strings.TrimSpace(region)) {
	case "":
		return nil, nil
	case "us":
		c.AddHoliday(us.Holidays...)
	case "jp":
		c.AddHoliday(jp.Holidays...)
	default:
		return nil, fmt.Errorf("unknown holiday region %q (use us or jp)", region)
	}
	return &calHolidays{cal: c}, nil
}

func (h *calHolidays) HolidayName(date time.Time) (string, bool) {
	actual, observed, hol := h.cal.IsHoliday(date)
	if !(actual || observed) || hol == nil {
		return "", false
	}
	return hol.Name, true
}
