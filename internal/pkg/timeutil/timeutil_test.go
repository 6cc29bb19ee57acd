package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCalendar(t *testing.T) *Calendar {
	cal, err := NewCalendar("Asia/Kolkata")
	require.NoError(t, err)
	return cal
}

func TestCalendar_DayOf_CrossesUTCBoundary(t *testing.T) {
	cal := newTestCalendar(t)

	// 20:00 UTC on Jan 1 is already 01:30 on Jan 2 in Kolkata.
	utc := time.Date(2025, 1, 1, 20, 0, 0, 0, time.UTC)
	day := cal.DayOf(utc)

	assert.Equal(t, 2025, day.Year())
	assert.Equal(t, time.January, day.Month())
	assert.Equal(t, 2, day.Day())
	assert.Equal(t, 0, day.Hour())
	assert.Equal(t, cal.Location(), day.Location())
}

func TestCalendar_DayRange(t *testing.T) {
	cal := newTestCalendar(t)

	start, end := cal.DayRange(time.Date(2025, 3, 15, 13, 45, 0, 0, cal.Location()))

	assert.Equal(t, time.Date(2025, 3, 15, 0, 0, 0, 0, cal.Location()), start)
	assert.Equal(t, time.Date(2025, 3, 16, 0, 0, 0, 0, cal.Location()), end)
}

func TestCalendar_MonthRange(t *testing.T) {
	cal := newTestCalendar(t)

	from, to, err := cal.MonthRange("2025-02")
	require.NoError(t, err)

	assert.Equal(t, time.Date(2025, 2, 1, 0, 0, 0, 0, cal.Location()), from)
	assert.Equal(t, time.Date(2025, 3, 1, 0, 0, 0, 0, cal.Location()), to)

	_, _, err = cal.MonthRange("Feb 2025")
	assert.Error(t, err)
}

func TestCalendar_Days_InclusiveSpan(t *testing.T) {
	cal := newTestCalendar(t)

	from, _ := cal.ParseDate("2025-01-30")
	to, _ := cal.ParseDate("2025-02-02")

	days := cal.Days(from, to)
	require.Len(t, days, 4)
	assert.Equal(t, 30, days[0].Day())
	assert.Equal(t, 2, days[3].Day())
}

func TestCalendar_IsSunday(t *testing.T) {
	cal := newTestCalendar(t)

	sunday, _ := cal.ParseDate("2025-01-05")
	monday, _ := cal.ParseDate("2025-01-06")

	assert.True(t, cal.IsSunday(sunday))
	assert.False(t, cal.IsSunday(monday))
}

func TestClockMinutes(t *testing.T) {
	assert.Equal(t, 9*60+15, ClockMinutes(time.Date(2025, 1, 1, 9, 15, 59, 0, time.UTC)))
	assert.Equal(t, 0, ClockMinutes(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)))
}
