package payroll

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type SalarySlipRepository interface {
	// Upsert replaces the slip for (employee_id, month) wholesale.
	Upsert(ctx context.Context, slip SalarySlip) (SalarySlip, error)

	// GetByEmployeeAndMonth returns ErrSlipNotFound when absent.
	GetByEmployeeAndMonth(ctx context.Context, employeeID, month string) (SalarySlip, error)
}

// IncentiveRepository reads incentive amounts payable within a period.
type IncentiveRepository interface {
	SumForRange(ctx context.Context, employeeID string, from, to time.Time) (decimal.Decimal, error)
}

// AdvanceRepaymentRepository reads salary-advance repayments due in a period.
type AdvanceRepaymentRepository interface {
	SumForRange(ctx context.Context, employeeID string, from, to time.Time) (decimal.Decimal, error)
}
