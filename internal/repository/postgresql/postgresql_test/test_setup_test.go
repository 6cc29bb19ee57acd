package postgresql_test

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/instituteops/attendance-sync-go/internal/pkg/database"
	"github.com/stretchr/testify/require"
)

var testDB *database.DB

// testDatabase connects once per process. Tests are skipped when no test
// database is configured, so the suite stays runnable without one.
func testDatabase(t *testing.T) *database.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set; skipping database tests")
	}

	if testDB == nil {
		var err error
		testDB, err = database.NewPostgreSQLDB(dsn)
		require.NoError(t, err, "failed to connect to test database")
	}
	return testDB
}

// truncateTables resets every table this core touches. CASCADE clears the
// attendance and slip rows hanging off employees.
func truncateTables(t *testing.T, db *database.DB) {
	t.Helper()
	ctx := context.Background()

	tx, err := db.BeginTx(ctx)
	require.NoError(t, err)
	defer tx.Rollback(ctx)

	tables := []string{
		"attendances",
		"salary_slips",
		"shift_assignments",
		"leave_requests",
		"holidays",
		"incentives",
		"advance_repayments",
		"employees",
	}
	for _, table := range tables {
		_, err := tx.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table))
		require.NoError(t, err, "failed to truncate table %s", table)
	}

	require.NoError(t, tx.Commit(ctx))
}

func countRows(t *testing.T, db *database.DB, table string) int {
	t.Helper()
	var n int
	err := db.QueryRow(context.Background(), fmt.Sprintf("SELECT COUNT(*) FROM %s", table)).Scan(&n)
	require.NoError(t, err)
	return n
}

// createTestEmployee seeds one active employee and returns its id.
func createTestEmployee(t *testing.T, ctx context.Context, db *database.DB, code string) string {
	t.Helper()
	var employeeID string
	err := db.QueryRow(ctx, `
		INSERT INTO employees (id, employee_code, full_name, employment_status, base_salary, created_at, updated_at)
		VALUES (gen_random_uuid(), $1, 'Test Employee', 'active', 30000, NOW(), NOW())
		RETURNING id
	`, code).Scan(&employeeID)
	require.NoError(t, err)
	return employeeID
}

// createTestShift seeds one shift assignment for an employee at a branch.
func createTestShift(t *testing.T, ctx context.Context, db *database.DB, employeeID, branchID, start, end string) {
	t.Helper()
	_, err := db.Exec(ctx, `
		INSERT INTO shift_assignments (id, employee_id, branch_id, shift_start, shift_end, created_at, updated_at)
		VALUES (gen_random_uuid(), $1, $2, $3::time, $4::time, NOW(), NOW())
	`, employeeID, branchID, start, end)
	require.NoError(t, err)
}
