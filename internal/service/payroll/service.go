package payroll

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/instituteops/attendance-sync-go/internal/domain/attendance"
	"github.com/instituteops/attendance-sync-go/internal/domain/employee"
	"github.com/instituteops/attendance-sync-go/internal/domain/payroll"
	"github.com/instituteops/attendance-sync-go/internal/pkg/timeutil"
	"github.com/shopspring/decimal"
)

// Business constants of the deduction scheme. The 30-day denominator is fixed
// regardless of the actual month length.
const (
	payDaysPerMonth  = 30
	muchLateFreeDays = 3
)

var (
	paidLeaveAllowance = decimal.NewFromFloat(1.5) // absent days forgiven per month
	halfDayFactor      = decimal.NewFromFloat(0.5)
	lateFactor         = decimal.NewFromFloat(0.25)
)

// PayrollService aggregates a month of ledger records into a salary slip.
// It reads the ledger and writes slips; it never touches attendance records.
type PayrollService struct {
	attendanceRepo attendance.AttendanceRepository
	employeeRepo   employee.EmployeeRepository
	incentiveRepo  payroll.IncentiveRepository
	advanceRepo    payroll.AdvanceRepaymentRepository
	slipRepo       payroll.SalarySlipRepository
	cal            *timeutil.Calendar
}

func NewPayrollService(
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	incentiveRepo payroll.IncentiveRepository,
	advanceRepo payroll.AdvanceRepaymentRepository,
	slipRepo payroll.SalarySlipRepository,
	cal *timeutil.Calendar,
) *PayrollService {
	return &PayrollService{
		attendanceRepo: attendanceRepo,
		employeeRepo:   employeeRepo,
		incentiveRepo:  incentiveRepo,
		advanceRepo:    advanceRepo,
		slipRepo:       slipRepo,
		cal:            cal,
	}
}

// ComputeSlip generates and stores the salary slip for one employee-month.
// Re-running for the same month replaces the stored slip entirely.
func (s *PayrollService) ComputeSlip(ctx context.Context, emp employee.Employee, month string) (payroll.SalarySlip, error) {
	from, to, err := s.cal.MonthRange(month)
	if err != nil {
		return payroll.SalarySlip{}, fmt.Errorf("%w: %v", payroll.ErrInvalidMonth, err)
	}
	if emp.BaseSalary == nil {
		return payroll.SalarySlip{}, fmt.Errorf("employee %s: %w", emp.Code, employee.ErrMissingSalary)
	}
	salary := *emp.BaseSalary

	records, err := s.attendanceRepo.ListByEmployeeAndRange(ctx, emp.ID, from, to)
	if err != nil {
		return payroll.SalarySlip{}, fmt.Errorf("list attendance for employee %s: %w", emp.Code, err)
	}
	counts := statusDayCounts(records)

	perDay := salary.Div(decimal.NewFromInt(payDaysPerMonth))
	var deductions []payroll.DeductionLine

	// Absent days beyond the monthly paid-leave allowance cost a full day each.
	unpaidAbsent := decimal.NewFromInt(int64(counts[attendance.StatusAbsent])).Sub(paidLeaveAllowance)
	if unpaidAbsent.IsNegative() {
		unpaidAbsent = decimal.Zero
	}
	if amount := unpaidAbsent.Mul(perDay); amount.IsPositive() {
		deductions = append(deductions, payroll.DeductionLine{
			Type:   payroll.DeductionAbsent,
			Amount: amount,
			Reason: fmt.Sprintf("%s unpaid absent days (%d absent, %s days paid-leave allowance)",
				unpaidAbsent, counts[attendance.StatusAbsent], paidLeaveAllowance),
		})
	}

	// Half days, plus much-late days converted past the free quota.
	converted := muchLateHalfDayEquivalents(counts[attendance.StatusMuchLate])
	halfDays := counts[attendance.StatusHalfDay] + converted
	if halfDays > 0 {
		amount := decimal.NewFromInt(int64(halfDays)).Mul(perDay).Mul(halfDayFactor)
		if amount.IsPositive() {
			deductions = append(deductions, payroll.DeductionLine{
				Type:   payroll.DeductionHalfDay,
				Amount: amount,
				Reason: fmt.Sprintf("%d half days (%d recorded, %d converted from %d much-late days)",
					halfDays, counts[attendance.StatusHalfDay], converted, counts[attendance.StatusMuchLate]),
			})
		}
	}

	if lateDays := counts[attendance.StatusLate]; lateDays > 0 {
		amount := decimal.NewFromInt(int64(lateDays)).Mul(perDay).Mul(lateFactor)
		if amount.IsPositive() {
			deductions = append(deductions, payroll.DeductionLine{
				Type:   payroll.DeductionLate,
				Amount: amount,
				Reason: fmt.Sprintf("%d late days", lateDays),
			})
		}
	}

	advance, err := s.advanceRepo.SumForRange(ctx, emp.ID, from, to)
	if err != nil {
		return payroll.SalarySlip{}, fmt.Errorf("sum advance repayments for employee %s: %w", emp.Code, err)
	}
	if advance.IsPositive() {
		deductions = append(deductions, payroll.DeductionLine{
			Type:   payroll.DeductionAdvanceRepayment,
			Amount: advance,
			Reason: fmt.Sprintf("advance repayments due in %s", month),
		})
	}

	total := decimal.Zero
	for _, line := range deductions {
		total = total.Add(line.Amount)
	}

	incentives, err := s.incentiveRepo.SumForRange(ctx, emp.ID, from, to)
	if err != nil {
		return payroll.SalarySlip{}, fmt.Errorf("sum incentives for employee %s: %w", emp.Code, err)
	}

	slip := payroll.SalarySlip{
		EmployeeID:      emp.ID,
		Month:           month,
		BasicSalary:     salary,
		Deductions:      deductions,
		TotalDeductions: total,
		Incentives:      incentives,
		NetPay:          salary.Sub(total).Add(incentives),
		GeneratedAt:     time.Now(),
	}

	stored, err := s.slipRepo.Upsert(ctx, slip)
	if err != nil {
		return payroll.SalarySlip{}, fmt.Errorf("store slip for employee %s: %w", emp.Code, err)
	}

	return stored, nil
}

// GenerateMonth runs slip generation for every active employee. Individual
// failures are reported in the batch result and do not stop the batch.
func (s *PayrollService) GenerateMonth(ctx context.Context, month string) (payroll.BatchResult, error) {
	result := payroll.BatchResult{Month: month}

	if _, _, err := s.cal.MonthRange(month); err != nil {
		return result, fmt.Errorf("%w: %v", payroll.ErrInvalidMonth, err)
	}

	active, err := s.employeeRepo.FindActive(ctx)
	if err != nil {
		return result, fmt.Errorf("list active employees: %w", err)
	}

	for _, emp := range active {
		if _, err := s.ComputeSlip(ctx, emp, month); err != nil {
			slog.Error("Payroll: slip generation failed",
				"employee_code", emp.Code, "month", month, "error", err)
			result.Failures = append(result.Failures, payroll.SlipFailure{
				EmployeeID:   emp.ID,
				EmployeeCode: emp.Code,
				Reason:       err.Error(),
			})
			continue
		}
		result.Generated++
	}

	slog.Info("Payroll: batch complete",
		"month", month, "generated", result.Generated, "failed", len(result.Failures))

	return result, nil
}

// GetSlip returns the stored slip for one employee-month.
func (s *PayrollService) GetSlip(ctx context.Context, employeeID, month string) (payroll.SalarySlip, error) {
	return s.slipRepo.GetByEmployeeAndMonth(ctx, employeeID, month)
}

// statusDayCounts tallies distinct days per status. An employee tracked at
// several branches contributes one day, not one per branch record.
func statusDayCounts(records []attendance.Attendance) map[attendance.Status]int {
	seen := make(map[attendance.Status]map[string]struct{})
	for _, rec := range records {
		day := rec.Date.Format("2006-01-02")
		if seen[rec.Status] == nil {
			seen[rec.Status] = make(map[string]struct{})
		}
		seen[rec.Status][day] = struct{}{}
	}

	counts := make(map[attendance.Status]int, len(seen))
	for status, days := range seen {
		counts[status] = len(days)
	}
	return counts
}

// muchLateHalfDayEquivalents converts much-late days past the free quota:
// every 2 additional much-late days cost one half day.
func muchLateHalfDayEquivalents(muchLate int) int {
	if muchLate <= muchLateFreeDays {
		return 0
	}
	return (muchLate - muchLateFreeDays) / 2
}
