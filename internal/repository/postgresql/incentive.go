package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/instituteops/attendance-sync-go/internal/domain/payroll"
	"github.com/instituteops/attendance-sync-go/internal/pkg/database"
	"github.com/shopspring/decimal"
)

type incentiveRepository struct {
	db *database.DB
}

func NewIncentiveRepository(db *database.DB) payroll.IncentiveRepository {
	return &incentiveRepository{db: db}
}

// SumForRange implements payroll.IncentiveRepository.
func (i *incentiveRepository) SumForRange(ctx context.Context, employeeID string, from, to time.Time) (decimal.Decimal, error) {
	q := GetQuerier(ctx, i.db)

	query := `
		SELECT COALESCE(SUM(amount), 0)
		FROM incentives
		WHERE employee_id = $1
		  AND payable_on >= $2
		  AND payable_on < $3
	`

	var sum decimal.Decimal
	if err := q.QueryRow(ctx, query, employeeID, from, to).Scan(&sum); err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum incentives: %w", err)
	}

	return sum, nil
}
