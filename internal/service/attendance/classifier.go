package attendance

import (
	"strings"

	"github.com/instituteops/attendance-sync-go/internal/domain/attendance"
	"github.com/instituteops/attendance-sync-go/internal/domain/employee"
	"github.com/instituteops/attendance-sync-go/internal/domain/punch"
	"github.com/instituteops/attendance-sync-go/internal/pkg/timeutil"
)

// Bands holds the lateness thresholds in minutes. The defaults are
// long-standing business constants; do not infer different values.
type Bands struct {
	LateGrace     int // login past shift start up to this is "late"
	MuchLateLimit int // up to this is "much late", beyond is a half day
	EarlyLeave    int // logout earlier than shift end by more than this is a half day
}

func DefaultBands() Bands {
	return Bands{LateGrace: 15, MuchLateLimit: 45, EarlyLeave: 90}
}

// DayFacts are the non-punch inputs for one employee-day.
type DayFacts struct {
	OnLeave   bool
	OnHoliday bool
	Sunday    bool
}

// ResolveShift maps a punch's device name to at most one shift assignment:
// case-insensitive, the branch identifier must appear as a substring of the
// device name.
func ResolveShift(shifts []employee.ShiftAssignment, deviceName string) *employee.ShiftAssignment {
	device := strings.ToLower(deviceName)
	for i := range shifts {
		if strings.Contains(device, strings.ToLower(shifts[i].BranchID)) {
			return &shifts[i]
		}
	}
	return nil
}

// ClassifyDay decides the canonical status for one employee-day. It is a pure
// function of its inputs: re-running the pipeline with the same facts always
// yields the same status.
//
// Precedence: approved leave, then holiday, then (no punch) Sunday, then
// (no punch) absent, then the time-banded rules against the resolved shift.
// A punch whose device matches no assignment stays at the default "present" —
// a data-quality fallback the product owner has chosen to keep.
func ClassifyDay(p *punch.DayPunch, shift *employee.ShiftAssignment, facts DayFacts, bands Bands) attendance.Status {
	switch {
	case facts.OnLeave:
		return attendance.StatusLeave
	case facts.OnHoliday:
		return attendance.StatusHoliday
	case p == nil && facts.Sunday:
		return attendance.StatusSunday
	case p == nil:
		return attendance.StatusAbsent
	}

	if shift == nil {
		return attendance.StatusPresent
	}

	lateMinutes := timeutil.ClockMinutes(p.LogIn) - timeutil.ClockMinutes(shift.ShiftStart)
	earlyLeaveMinutes := timeutil.ClockMinutes(shift.ShiftEnd) - timeutil.ClockMinutes(p.LogOut)

	switch {
	case earlyLeaveMinutes > bands.EarlyLeave:
		return attendance.StatusHalfDay
	case lateMinutes <= 0:
		return attendance.StatusPresent
	case lateMinutes <= bands.LateGrace:
		return attendance.StatusLate
	case lateMinutes <= bands.MuchLateLimit:
		return attendance.StatusMuchLate
	default:
		return attendance.StatusHalfDay
	}
}
