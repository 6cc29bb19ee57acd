package postgresql_test

import (
	"context"
	"testing"
	"time"

	"github.com/instituteops/attendance-sync-go/internal/domain/attendance"
	"github.com/instituteops/attendance-sync-go/internal/repository/postgresql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func punchTime(day time.Time, hour, min int) *time.Time {
	ts := time.Date(day.Year(), day.Month(), day.Day(), hour, min, 0, 0, time.UTC)
	return &ts
}

func TestAttendanceRepository_Upsert_SameKeyUpdatesInPlace(t *testing.T) {
	db := testDatabase(t)
	truncateTables(t, db)

	ctx := context.Background()
	employeeID := createTestEmployee(t, ctx, db, "100001")
	repo := postgresql.NewAttendanceRepository(db)
	day := time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)

	first, err := repo.Upsert(ctx, attendance.Attendance{
		EmployeeID: employeeID,
		Date:       day,
		Branch:     "maincampus",
		LogIn:      punchTime(day, 9, 5),
		LogOut:     punchTime(day, 18, 0),
		Status:     attendance.StatusPresent,
	})
	require.NoError(t, err)
	require.NotEmpty(t, first.ID)

	// Writing the same (employee, date, branch) key again must update the
	// existing row, never add a second one.
	second, err := repo.Upsert(ctx, attendance.Attendance{
		EmployeeID: employeeID,
		Date:       day,
		Branch:     "maincampus",
		LogIn:      punchTime(day, 9, 50),
		LogOut:     punchTime(day, 18, 0),
		Status:     attendance.StatusMuchLate,
	})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 1, countRows(t, db, "attendances"))

	records, err := repo.ListByEmployeeAndRange(ctx, employeeID, day, day.AddDate(0, 0, 1))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, attendance.StatusMuchLate, records[0].Status)
	require.NotNil(t, records[0].LogIn)
	assert.Equal(t, 50, records[0].LogIn.Minute())
}

func TestAttendanceRepository_Upsert_DifferentBranchesKeepSeparateRows(t *testing.T) {
	db := testDatabase(t)
	truncateTables(t, db)

	ctx := context.Background()
	employeeID := createTestEmployee(t, ctx, db, "100001")
	repo := postgresql.NewAttendanceRepository(db)
	day := time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)

	for _, branch := range []string{"maincampus", "citycenter"} {
		_, err := repo.Upsert(ctx, attendance.Attendance{
			EmployeeID: employeeID,
			Date:       day,
			Branch:     branch,
			Status:     attendance.StatusAbsent,
		})
		require.NoError(t, err)
	}

	assert.Equal(t, 2, countRows(t, db, "attendances"))
}

func TestAttendanceRepository_UpsertMany_RerunStable(t *testing.T) {
	db := testDatabase(t)
	truncateTables(t, db)

	ctx := context.Background()
	employeeID := createTestEmployee(t, ctx, db, "100001")
	repo := postgresql.NewAttendanceRepository(db)
	day := time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)

	batch := []attendance.Attendance{
		{EmployeeID: employeeID, Date: day, Branch: "maincampus", Status: attendance.StatusAbsent},
		{EmployeeID: employeeID, Date: day, Branch: "citycenter", Status: attendance.StatusAbsent},
	}

	require.NoError(t, repo.UpsertMany(ctx, batch))
	require.NoError(t, repo.UpsertMany(ctx, batch))

	assert.Equal(t, 2, countRows(t, db, "attendances"),
		"re-running the batch must not duplicate rows")
}

func TestAttendanceRepository_ListByEmployeeAndRange_HalfOpen(t *testing.T) {
	db := testDatabase(t)
	truncateTables(t, db)

	ctx := context.Background()
	employeeID := createTestEmployee(t, ctx, db, "100001")
	repo := postgresql.NewAttendanceRepository(db)

	for d := 6; d <= 8; d++ {
		_, err := repo.Upsert(ctx, attendance.Attendance{
			EmployeeID: employeeID,
			Date:       time.Date(2025, 1, d, 0, 0, 0, 0, time.UTC),
			Branch:     "maincampus",
			Status:     attendance.StatusPresent,
		})
		require.NoError(t, err)
	}

	from := time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 1, 8, 0, 0, 0, 0, time.UTC)
	records, err := repo.ListByEmployeeAndRange(ctx, employeeID, from, to)
	require.NoError(t, err)

	// from is inclusive, to is exclusive.
	require.Len(t, records, 2)
	assert.Equal(t, "2025-01-06", records[0].Date.Format("2006-01-02"))
	assert.Equal(t, "2025-01-07", records[1].Date.Format("2006-01-02"))
}

func TestAttendanceRepository_EmployeeIDsWithRecordOn(t *testing.T) {
	db := testDatabase(t)
	truncateTables(t, db)

	ctx := context.Background()
	recorded := createTestEmployee(t, ctx, db, "100001")
	unrecorded := createTestEmployee(t, ctx, db, "100002")
	repo := postgresql.NewAttendanceRepository(db)
	day := time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)

	_, err := repo.Upsert(ctx, attendance.Attendance{
		EmployeeID: recorded,
		Date:       day,
		Branch:     "maincampus",
		Status:     attendance.StatusPresent,
	})
	require.NoError(t, err)

	ids, err := repo.EmployeeIDsWithRecordOn(ctx, day)
	require.NoError(t, err)

	assert.Contains(t, ids, recorded)
	assert.NotContains(t, ids, unrecorded)
}
