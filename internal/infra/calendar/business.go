// Package calendar provides an offline day-level trading oracle built on a
// business-day calendar. It stands in for the live trading-calendar service
// when no remote endpoint is configured: it can only answer the day-level
// question (weekend/holiday), never the session-level one.
package calendar

import (
	"time"

	"github.com/rickar/cal/v2"
	"github.com/rickar/cal/v2/us"
)

// BusinessCalendar answers whether a day is a trading day for venues
// following the US bank holiday schedule.
type BusinessCalendar struct {
	location *time.Location
	calendar *cal.BusinessCalendar
}

// NewUSCalendar builds a calendar with the standard US bank holidays.
func NewUSCalendar() *BusinessCalendar {
	// NYSE uses ET; daylight saving switches never fall inside market hours.
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		loc = time.UTC
	}
	c := cal.NewBusinessCalendar()
	c.AddHoliday(
		us.NewYear,
		us.MlkDay,
		us.PresidentsDay,
		us.MemorialDay,
		us.Juneteenth,
		us.IndependenceDay,
		us.LaborDay,
		us.ColumbusDay,
		us.VeteransDay,
		us.ThanksgivingDay,
		us.ChristmasDay,
	)
	c.Cacheable = true
	return &BusinessCalendar{location: loc, calendar: c}
}

// IsTradingDay reports whether t falls on a workday (not a weekend or
// observed holiday) in the calendar's location.
func (b *BusinessCalendar) IsTradingDay(t time.Time) bool {
	return b.calendar.IsWorkday(t.In(b.location))
}

// HolidayName returns the holiday name for t, or "" when t is not a holiday.
func (b *BusinessCalendar) HolidayName(t time.Time) string {
	actual, observed, h := b.calendar.IsHoliday(t.In(b.location))
	if !actual && !observed {
		return ""
	}
	return h.Name
}
