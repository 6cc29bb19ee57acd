package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/instituteops/attendance-sync-go/internal/domain/attendance"
	"github.com/instituteops/attendance-sync-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

// The ledger's one-record-per-key invariant lives in this statement: every
// write is an ON CONFLICT upsert on (employee_id, date, branch).
const upsertAttendanceQuery = `
	INSERT INTO attendances (employee_id, date, branch, log_in, log_out, status)
	VALUES ($1, $2, $3, $4, $5, $6)
	ON CONFLICT (employee_id, date, branch) DO UPDATE SET
		log_in = EXCLUDED.log_in,
		log_out = EXCLUDED.log_out,
		status = EXCLUDED.status,
		updated_at = NOW()
	RETURNING id, created_at, updated_at
`

// Upsert implements attendance.AttendanceRepository.
func (a *attendanceRepository) Upsert(ctx context.Context, record attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	err := q.QueryRow(ctx, upsertAttendanceQuery,
		record.EmployeeID,
		record.Date,
		record.Branch,
		record.LogIn,
		record.LogOut,
		string(record.Status),
	).Scan(&record.ID, &record.CreatedAt, &record.UpdatedAt)

	if err != nil {
		return attendance.Attendance{}, fmt.Errorf("failed to upsert attendance: %w", err)
	}

	return record, nil
}

// UpsertMany implements attendance.AttendanceRepository.
func (a *attendanceRepository) UpsertMany(ctx context.Context, records []attendance.Attendance) error {
	if len(records) == 0 {
		return nil
	}

	return WithTransaction(ctx, a.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)
		for _, record := range records {
			if _, err := a.Upsert(txCtx, record); err != nil {
				return fmt.Errorf("employee %s branch %s: %w",
					record.EmployeeID, record.Branch, err)
			}
		}
		return nil
	})
}

// ListByEmployeeAndRange implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListByEmployeeAndRange(ctx context.Context, employeeID string, from, to time.Time) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT id, employee_id, date, branch, log_in, log_out, status, created_at, updated_at
		FROM attendances
		WHERE employee_id = $1
		  AND date >= $2
		  AND date < $3
		ORDER BY date, branch
	`

	rows, err := q.Query(ctx, query, employeeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendances: %w", err)
	}
	defer rows.Close()

	var records []attendance.Attendance
	for rows.Next() {
		var rec attendance.Attendance
		var status string
		if err := rows.Scan(
			&rec.ID, &rec.EmployeeID, &rec.Date, &rec.Branch,
			&rec.LogIn, &rec.LogOut, &status,
			&rec.CreatedAt, &rec.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		rec.Status = attendance.Status(status)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read attendances: %w", err)
	}

	return records, nil
}

// EmployeeIDsWithRecordOn implements attendance.AttendanceRepository.
func (a *attendanceRepository) EmployeeIDsWithRecordOn(ctx context.Context, day time.Time) ([]string, error) {
	q := GetQuerier(ctx, a.db)

	rows, err := q.Query(ctx, `SELECT DISTINCT employee_id FROM attendances WHERE date = $1`, day)
	if err != nil {
		return nil, fmt.Errorf("failed to list employee ids with records: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan employee id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read employee ids: %w", err)
	}

	return ids, nil
}
