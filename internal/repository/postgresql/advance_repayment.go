package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/instituteops/attendance-sync-go/internal/domain/payroll"
	"github.com/instituteops/attendance-sync-go/internal/pkg/database"
	"github.com/shopspring/decimal"
)

type advanceRepaymentRepository struct {
	db *database.DB
}

func NewAdvanceRepaymentRepository(db *database.DB) payroll.AdvanceRepaymentRepository {
	return &advanceRepaymentRepository{db: db}
}

// SumForRange implements payroll.AdvanceRepaymentRepository.
func (a *advanceRepaymentRepository) SumForRange(ctx context.Context, employeeID string, from, to time.Time) (decimal.Decimal, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT COALESCE(SUM(amount), 0)
		FROM advance_repayments
		WHERE employee_id = $1
		  AND due_on >= $2
		  AND due_on < $3
	`

	var sum decimal.Decimal
	if err := q.QueryRow(ctx, query, employeeID, from, to).Scan(&sum); err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum advance repayments: %w", err)
	}

	return sum, nil
}
