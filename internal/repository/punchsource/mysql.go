// Package punchsource reads the biometric device log. The devices write into
// their own MySQL database; this core only ever reads from it.
package punchsource

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/instituteops/attendance-sync-go/internal/domain/punch"
)

type MySQLSource struct {
	db  *sql.DB
	loc *time.Location
}

// NewMySQLSource opens the punch-log connection. ParseTime and the session
// location are forced on the DSN so timestamps come back as time.Time in the
// institute zone regardless of how the DSN was written.
func NewMySQLSource(dsn string, loc *time.Location) (*MySQLSource, error) {
	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse punch log DSN: %w", err)
	}
	cfg.ParseTime = true
	cfg.Loc = loc

	db, err := sql.Open("mysql", cfg.FormatDSN())
	if err != nil {
		return nil, fmt.Errorf("open punch log connection: %w", err)
	}
	db.SetMaxOpenConns(4)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping punch log: %w", err)
	}

	return &MySQLSource{db: db, loc: loc}, nil
}

// FetchRange implements punch.Source. Any error here is fatal for the current
// sync invocation; the caller retries the whole range later.
func (m *MySQLSource) FetchRange(ctx context.Context, from, to time.Time) ([]punch.Event, error) {
	query := `
		SELECT employee_code, punch_time, device_name
		FROM punch_logs
		WHERE punch_time >= ? AND punch_time < ?
		ORDER BY punch_time
	`

	rows, err := m.db.QueryContext(ctx, query, from.In(m.loc), to.In(m.loc))
	if err != nil {
		return nil, fmt.Errorf("query punch log: %w", err)
	}
	defer rows.Close()

	var events []punch.Event
	for rows.Next() {
		var ev punch.Event
		if err := rows.Scan(&ev.EmployeeCode, &ev.Timestamp, &ev.DeviceName); err != nil {
			return nil, fmt.Errorf("scan punch row: %w", err)
		}
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read punch log: %w", err)
	}

	return events, nil
}

func (m *MySQLSource) Close() error {
	return m.db.Close()
}
