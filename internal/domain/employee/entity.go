package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

type EmploymentStatus string

const (
	StatusActive   EmploymentStatus = "active"
	StatusInactive EmploymentStatus = "inactive"
)

// ShiftAssignment is an employee's expected window at one branch. A punch's
// device name maps to at most one assignment by case-insensitive substring
// match on BranchID.
type ShiftAssignment struct {
	BranchID   string
	ShiftStart time.Time // time-of-day only
	ShiftEnd   time.Time // time-of-day only
}

// Employee is read-only for this core; the directory collaborator owns it.
type Employee struct {
	ID         string
	Code       string
	FullName   string
	Status     EmploymentStatus
	BaseSalary *decimal.Decimal // nil when the directory has no salary on file
	Shifts     []ShiftAssignment
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
