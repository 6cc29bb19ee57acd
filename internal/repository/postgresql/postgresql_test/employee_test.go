package postgresql_test

import (
	"context"
	"testing"

	"github.com/instituteops/attendance-sync-go/internal/domain/employee"
	"github.com/instituteops/attendance-sync-go/internal/repository/postgresql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmployeeRepository_FindActive_LoadsShifts(t *testing.T) {
	db := testDatabase(t)
	truncateTables(t, db)

	ctx := context.Background()
	employeeID := createTestEmployee(t, ctx, db, "100001")
	createTestShift(t, ctx, db, employeeID, "maincampus", "09:00", "18:00")
	createTestShift(t, ctx, db, employeeID, "citycenter", "14:00", "20:00")
	repo := postgresql.NewEmployeeRepository(db)

	active, err := repo.FindActive(ctx)
	require.NoError(t, err)
	require.Len(t, active, 1)

	emp := active[0]
	assert.Equal(t, "100001", emp.Code)
	assert.Equal(t, employee.StatusActive, emp.Status)
	require.NotNil(t, emp.BaseSalary)

	require.Len(t, emp.Shifts, 2)
	// Ordered by branch_id; TIME columns come back as time-of-day values.
	assert.Equal(t, "citycenter", emp.Shifts[0].BranchID)
	assert.Equal(t, 14, emp.Shifts[0].ShiftStart.Hour())
	assert.Equal(t, "maincampus", emp.Shifts[1].BranchID)
	assert.Equal(t, 9, emp.Shifts[1].ShiftStart.Hour())
	assert.Equal(t, 18, emp.Shifts[1].ShiftEnd.Hour())
}

func TestEmployeeRepository_FindByCode(t *testing.T) {
	db := testDatabase(t)
	truncateTables(t, db)

	ctx := context.Background()
	employeeID := createTestEmployee(t, ctx, db, "100001")
	repo := postgresql.NewEmployeeRepository(db)

	found, err := repo.FindByCode(ctx, "100001")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, employeeID, found.ID)

	// Unknown codes are not an error; the sync pipeline skips them.
	missing, err := repo.FindByCode(ctx, "999999")
	require.NoError(t, err)
	assert.Nil(t, missing)
}
