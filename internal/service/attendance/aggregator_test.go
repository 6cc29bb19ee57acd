package attendance

import (
	"testing"
	"time"

	"github.com/instituteops/attendance-sync-go/internal/domain/punch"
	"github.com/instituteops/attendance-sync-go/internal/pkg/timeutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCalendar(t *testing.T) *timeutil.Calendar {
	cal, err := timeutil.NewCalendar("Asia/Kolkata")
	require.NoError(t, err)
	return cal
}

func TestAggregate_MinMaxPerEmployeeDayDevice(t *testing.T) {
	cal := testCalendar(t)
	agg := NewAggregator(cal, 6)
	loc := cal.Location()

	events := []punch.Event{
		{EmployeeCode: "100001", Timestamp: time.Date(2025, 1, 6, 13, 1, 0, 0, loc), DeviceName: "MainCampus-Gate1"},
		{EmployeeCode: "100001", Timestamp: time.Date(2025, 1, 6, 9, 2, 0, 0, loc), DeviceName: "MainCampus-Gate1"},
		{EmployeeCode: "100001", Timestamp: time.Date(2025, 1, 6, 18, 4, 0, 0, loc), DeviceName: "MainCampus-Gate1"},
		{EmployeeCode: "100002", Timestamp: time.Date(2025, 1, 6, 9, 30, 0, 0, loc), DeviceName: "MainCampus-Gate1"},
		{EmployeeCode: "100001", Timestamp: time.Date(2025, 1, 6, 12, 0, 0, 0, loc), DeviceName: "CityCenter-Door"},
	}

	tuples := agg.Aggregate(events)
	require.Len(t, tuples, 3)

	// Sorted by day, code, device.
	assert.Equal(t, "CityCenter-Door", tuples[0].DeviceName)
	assert.Equal(t, "100001", tuples[0].EmployeeCode)

	gate := tuples[1]
	assert.Equal(t, "100001", gate.EmployeeCode)
	assert.Equal(t, "MainCampus-Gate1", gate.DeviceName)
	assert.Equal(t, 9, gate.LogIn.Hour())
	assert.Equal(t, 2, gate.LogIn.Minute())
	assert.Equal(t, 18, gate.LogOut.Hour())

	single := tuples[2]
	assert.Equal(t, "100002", single.EmployeeCode)
	// A lone punch is both log-in and log-out.
	assert.True(t, single.LogIn.Equal(single.LogOut))
}

func TestAggregate_BucketsByInstituteDay(t *testing.T) {
	cal := testCalendar(t)
	agg := NewAggregator(cal, 6)

	// 20:00 UTC Jan 6 = 01:30 IST Jan 7: must land on the Jan 7 bucket.
	events := []punch.Event{
		{EmployeeCode: "100001", Timestamp: time.Date(2025, 1, 6, 20, 0, 0, 0, time.UTC), DeviceName: "MainCampus-Gate1"},
	}

	tuples := agg.Aggregate(events)
	require.Len(t, tuples, 1)
	assert.Equal(t, 7, tuples[0].Day.Day())
	assert.Equal(t, cal.Location(), tuples[0].Day.Location())
}

func TestAggregate_DropsMalformedCodes(t *testing.T) {
	cal := testCalendar(t)
	agg := NewAggregator(cal, 6)
	loc := cal.Location()
	ts := time.Date(2025, 1, 6, 9, 0, 0, 0, loc)

	events := []punch.Event{
		{EmployeeCode: "100001", Timestamp: ts, DeviceName: "MainCampus-Gate1"},
		{EmployeeCode: "ADMIN", Timestamp: ts, DeviceName: "MainCampus-Gate1"},
		{EmployeeCode: "12345", Timestamp: ts, DeviceName: "MainCampus-Gate1"},   // too short
		{EmployeeCode: "1234567", Timestamp: ts, DeviceName: "MainCampus-Gate1"}, // too long
		{EmployeeCode: "", Timestamp: ts, DeviceName: "MainCampus-Gate1"},
	}

	tuples := agg.Aggregate(events)
	require.Len(t, tuples, 1)
	assert.Equal(t, "100001", tuples[0].EmployeeCode)
}

func TestAggregate_Empty(t *testing.T) {
	agg := NewAggregator(testCalendar(t), 6)
	assert.Empty(t, agg.Aggregate(nil))
}
