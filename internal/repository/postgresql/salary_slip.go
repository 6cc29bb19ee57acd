package postgresql

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/instituteops/attendance-sync-go/internal/domain/payroll"
	"github.com/instituteops/attendance-sync-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type salarySlipRepository struct {
	db *database.DB
}

func NewSalarySlipRepository(db *database.DB) payroll.SalarySlipRepository {
	return &salarySlipRepository{db: db}
}

// Upsert implements payroll.SalarySlipRepository. Regenerating a month
// replaces every field of the stored slip; nothing is merged.
func (s *salarySlipRepository) Upsert(ctx context.Context, slip payroll.SalarySlip) (payroll.SalarySlip, error) {
	q := GetQuerier(ctx, s.db)

	deductionsJSON, err := json.Marshal(slip.Deductions)
	if err != nil {
		return payroll.SalarySlip{}, fmt.Errorf("failed to marshal deductions: %w", err)
	}

	query := `
		INSERT INTO salary_slips (
			id, employee_id, month, basic_salary, deductions,
			total_deductions, incentives, net_pay, generated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (employee_id, month) DO UPDATE SET
			basic_salary = EXCLUDED.basic_salary,
			deductions = EXCLUDED.deductions,
			total_deductions = EXCLUDED.total_deductions,
			incentives = EXCLUDED.incentives,
			net_pay = EXCLUDED.net_pay,
			generated_at = EXCLUDED.generated_at,
			updated_at = NOW()
		RETURNING id, created_at, updated_at
	`

	err = q.QueryRow(ctx, query,
		uuid.NewString(),
		slip.EmployeeID,
		slip.Month,
		slip.BasicSalary,
		deductionsJSON,
		slip.TotalDeductions,
		slip.Incentives,
		slip.NetPay,
		slip.GeneratedAt,
	).Scan(&slip.ID, &slip.CreatedAt, &slip.UpdatedAt)

	if err != nil {
		return payroll.SalarySlip{}, fmt.Errorf("failed to upsert salary slip: %w", err)
	}

	return slip, nil
}

// GetByEmployeeAndMonth implements payroll.SalarySlipRepository.
func (s *salarySlipRepository) GetByEmployeeAndMonth(ctx context.Context, employeeID, month string) (payroll.SalarySlip, error) {
	q := GetQuerier(ctx, s.db)

	query := `
		SELECT id, employee_id, month, basic_salary, deductions,
			   total_deductions, incentives, net_pay, generated_at, created_at, updated_at
		FROM salary_slips
		WHERE employee_id = $1
		  AND month = $2
	`

	var slip payroll.SalarySlip
	var deductionsBytes []byte
	err := q.QueryRow(ctx, query, employeeID, month).Scan(
		&slip.ID, &slip.EmployeeID, &slip.Month, &slip.BasicSalary, &deductionsBytes,
		&slip.TotalDeductions, &slip.Incentives, &slip.NetPay,
		&slip.GeneratedAt, &slip.CreatedAt, &slip.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.SalarySlip{}, payroll.ErrSlipNotFound
		}
		return payroll.SalarySlip{}, fmt.Errorf("failed to get salary slip: %w", err)
	}

	if err := json.Unmarshal(deductionsBytes, &slip.Deductions); err != nil {
		return payroll.SalarySlip{}, fmt.Errorf("failed to unmarshal deductions: %w", err)
	}

	return slip, nil
}
