package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

type DeductionType string

const (
	DeductionAbsent           DeductionType = "absent"
	DeductionHalfDay          DeductionType = "half_day"
	DeductionLate             DeductionType = "late"
	DeductionAdvanceRepayment DeductionType = "advance_repayment"
)

type DeductionLine struct {
	Type   DeductionType   `json:"type"`
	Amount decimal.Decimal `json:"amount"`
	Reason string          `json:"reason"`
}

// SalarySlip is the derived monthly result, keyed on (EmployeeID, Month).
// Regenerating a month replaces the stored slip entirely.
type SalarySlip struct {
	ID              string
	EmployeeID      string
	Month           string // "2006-01"
	BasicSalary     decimal.Decimal
	Deductions      []DeductionLine
	TotalDeductions decimal.Decimal
	Incentives      decimal.Decimal
	NetPay          decimal.Decimal
	GeneratedAt     time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
