package timeutil

import (
	"fmt"
	"time"
)

// Calendar centralizes every date-boundary computation for the institute's
// local time zone. The punch aggregator, the backfill sweep and the deduction
// engine must all go through the same Calendar so that "day" and "month" mean
// the same thing everywhere.
type Calendar struct {
	loc *time.Location
}

func NewCalendar(tzName string) (*Calendar, error) {
	loc, err := time.LoadLocation(tzName)
	if err != nil {
		return nil, fmt.Errorf("load institute timezone %q: %w", tzName, err)
	}
	return &Calendar{loc: loc}, nil
}

func (c *Calendar) Location() *time.Location {
	return c.loc
}

// DayOf truncates t to local midnight.
func (c *Calendar) DayOf(t time.Time) time.Time {
	t = t.In(c.loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, c.loc)
}

// DayRange returns the half-open interval [local midnight, next local midnight).
func (c *Calendar) DayRange(day time.Time) (time.Time, time.Time) {
	start := c.DayOf(day)
	return start, start.AddDate(0, 0, 1)
}

// MonthRange parses a "2006-01" month string into the half-open interval
// [first of month, first of next month) in the institute zone.
func (c *Calendar) MonthRange(month string) (time.Time, time.Time, error) {
	t, err := time.ParseInLocation("2006-01", month, c.loc)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid month %q (want YYYY-MM): %w", month, err)
	}
	return t, t.AddDate(0, 1, 0), nil
}

// ParseDate parses a "2006-01-02" date string at local midnight.
func (c *Calendar) ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02", s, c.loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD): %w", s, err)
	}
	return t, nil
}

// Days lists every day of the inclusive [from, to] span.
func (c *Calendar) Days(from, to time.Time) []time.Time {
	from, to = c.DayOf(from), c.DayOf(to)
	var days []time.Time
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

func (c *Calendar) IsSunday(day time.Time) bool {
	return day.In(c.loc).Weekday() == time.Sunday
}

// ClockMinutes reduces a wall-clock value to minutes past midnight. Callers
// must pass values already expressed in the relevant zone; no conversion
// happens here.
func ClockMinutes(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}
