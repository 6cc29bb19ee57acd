package postgresql_test

import (
	"context"
	"testing"
	"time"

	"github.com/instituteops/attendance-sync-go/internal/domain/payroll"
	"github.com/instituteops/attendance-sync-go/internal/repository/postgresql"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSlip(employeeID string) payroll.SalarySlip {
	return payroll.SalarySlip{
		EmployeeID:  employeeID,
		Month:       "2025-01",
		BasicSalary: decimal.NewFromInt(30000),
		Deductions: []payroll.DeductionLine{
			{Type: payroll.DeductionAbsent, Amount: decimal.NewFromInt(1500), Reason: "1.5 unpaid absent days"},
		},
		TotalDeductions: decimal.NewFromInt(1500),
		Incentives:      decimal.NewFromInt(500),
		NetPay:          decimal.NewFromInt(29000),
		GeneratedAt:     time.Now(),
	}
}

func TestSalarySlipRepository_Upsert_RoundTrip(t *testing.T) {
	db := testDatabase(t)
	truncateTables(t, db)

	ctx := context.Background()
	employeeID := createTestEmployee(t, ctx, db, "100001")
	repo := postgresql.NewSalarySlipRepository(db)

	stored, err := repo.Upsert(ctx, testSlip(employeeID))
	require.NoError(t, err)
	assert.NotEmpty(t, stored.ID)

	got, err := repo.GetByEmployeeAndMonth(ctx, employeeID, "2025-01")
	require.NoError(t, err)

	assert.Equal(t, stored.ID, got.ID)
	assert.True(t, got.BasicSalary.Equal(decimal.NewFromInt(30000)))
	assert.True(t, got.NetPay.Equal(decimal.NewFromInt(29000)))
	require.Len(t, got.Deductions, 1)
	assert.Equal(t, payroll.DeductionAbsent, got.Deductions[0].Type)
	assert.True(t, got.Deductions[0].Amount.Equal(decimal.NewFromInt(1500)))
}

func TestSalarySlipRepository_Upsert_ReplacesOnRerun(t *testing.T) {
	db := testDatabase(t)
	truncateTables(t, db)

	ctx := context.Background()
	employeeID := createTestEmployee(t, ctx, db, "100001")
	repo := postgresql.NewSalarySlipRepository(db)

	first, err := repo.Upsert(ctx, testSlip(employeeID))
	require.NoError(t, err)

	// Regenerating the month after a ledger correction replaces every field
	// of the stored slip.
	updated := testSlip(employeeID)
	updated.Deductions = nil
	updated.TotalDeductions = decimal.Zero
	updated.NetPay = decimal.NewFromInt(30500)

	second, err := repo.Upsert(ctx, updated)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 1, countRows(t, db, "salary_slips"))

	got, err := repo.GetByEmployeeAndMonth(ctx, employeeID, "2025-01")
	require.NoError(t, err)
	assert.Empty(t, got.Deductions)
	assert.True(t, got.TotalDeductions.IsZero())
	assert.True(t, got.NetPay.Equal(decimal.NewFromInt(30500)))
}

func TestSalarySlipRepository_DistinctMonthsKeepSeparateRows(t *testing.T) {
	db := testDatabase(t)
	truncateTables(t, db)

	ctx := context.Background()
	employeeID := createTestEmployee(t, ctx, db, "100001")
	repo := postgresql.NewSalarySlipRepository(db)

	_, err := repo.Upsert(ctx, testSlip(employeeID))
	require.NoError(t, err)

	febSlip := testSlip(employeeID)
	febSlip.Month = "2025-02"
	_, err = repo.Upsert(ctx, febSlip)
	require.NoError(t, err)

	assert.Equal(t, 2, countRows(t, db, "salary_slips"))
}

func TestSalarySlipRepository_GetByEmployeeAndMonth_NotFound(t *testing.T) {
	db := testDatabase(t)
	truncateTables(t, db)

	ctx := context.Background()
	employeeID := createTestEmployee(t, ctx, db, "100001")
	repo := postgresql.NewSalarySlipRepository(db)

	_, err := repo.GetByEmployeeAndMonth(ctx, employeeID, "2025-01")
	assert.ErrorIs(t, err, payroll.ErrSlipNotFound)
}
