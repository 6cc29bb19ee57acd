package attendance

import "time"

// Status is the closed set of canonical day classifications.
type Status string

const (
	StatusPresent  Status = "present"
	StatusLate     Status = "late"
	StatusMuchLate Status = "much_late"
	StatusHalfDay  Status = "half_day"
	StatusAbsent   Status = "absent"
	StatusLeave    Status = "leave"
	StatusHoliday  Status = "holiday"
	StatusSunday   Status = "sunday"
)

// BranchUnknown is the sentinel branch for employees without any shift
// assignment; they still get exactly one ledger record per day.
const BranchUnknown = "unknown"

// Attendance is one ledger record. Key = (EmployeeID, Date, Branch); the
// write path is upsert-only, so re-running a day can never duplicate a key.
type Attendance struct {
	ID         string
	EmployeeID string
	Date       time.Time // truncated to the institute-local day
	Branch     string
	LogIn      *time.Time
	LogOut     *time.Time
	Status     Status
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
