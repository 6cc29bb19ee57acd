package attendance

import (
	"context"
	"time"
)

// AttendanceRepository is the ledger. Both the day classifier and the
// backfill sweep write through Upsert; nothing in this core ever deletes.
type AttendanceRepository interface {
	// Upsert writes one record keyed on (employee_id, date, branch),
	// overwriting prior fields entirely.
	Upsert(ctx context.Context, record Attendance) (Attendance, error)

	// UpsertMany writes a batch of records in one transaction. Used by the
	// backfill sweep so a multi-branch employee's records land atomically.
	UpsertMany(ctx context.Context, records []Attendance) error

	// ListByEmployeeAndRange returns records with from <= date < to.
	ListByEmployeeAndRange(ctx context.Context, employeeID string, from, to time.Time) ([]Attendance, error)

	// EmployeeIDsWithRecordOn returns the distinct employee IDs that already
	// have at least one record for the given day.
	EmployeeIDsWithRecordOn(ctx context.Context, day time.Time) ([]string, error)
}
