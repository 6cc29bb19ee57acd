package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/instituteops/attendance-sync-go/internal/domain/employee"
	"github.com/instituteops/attendance-sync-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type employeeRepository struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepository{db: db}
}

// FindActive implements employee.EmployeeRepository.
func (e *employeeRepository) FindActive(ctx context.Context) ([]employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `
		SELECT id, employee_code, full_name, employment_status, base_salary, created_at, updated_at
		FROM employees
		WHERE employment_status = 'active'
		  AND deleted_at IS NULL
		ORDER BY employee_code
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list active employees: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	var ids []string
	for rows.Next() {
		var emp employee.Employee
		var status string
		if err := rows.Scan(
			&emp.ID, &emp.Code, &emp.FullName, &status,
			&emp.BaseSalary, &emp.CreatedAt, &emp.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		emp.Status = employee.EmploymentStatus(status)
		employees = append(employees, emp)
		ids = append(ids, emp.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read employees: %w", err)
	}

	shifts, err := e.loadShifts(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range employees {
		employees[i].Shifts = shifts[employees[i].ID]
	}

	return employees, nil
}

// FindByCode implements employee.EmployeeRepository.
func (e *employeeRepository) FindByCode(ctx context.Context, code string) (*employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `
		SELECT id, employee_code, full_name, employment_status, base_salary, created_at, updated_at
		FROM employees
		WHERE employee_code = $1
		  AND deleted_at IS NULL
		LIMIT 1
	`

	var emp employee.Employee
	var status string
	err := q.QueryRow(ctx, query, code).Scan(
		&emp.ID, &emp.Code, &emp.FullName, &status,
		&emp.BaseSalary, &emp.CreatedAt, &emp.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil // unknown code, caller decides how loudly to complain
		}
		return nil, fmt.Errorf("failed to get employee by code: %w", err)
	}
	emp.Status = employee.EmploymentStatus(status)

	shifts, err := e.loadShifts(ctx, []string{emp.ID})
	if err != nil {
		return nil, err
	}
	emp.Shifts = shifts[emp.ID]

	return &emp, nil
}

// loadShifts fetches shift assignments for the given employees in one query.
// Shift windows are stored as TIME columns; they come back as HH:MM strings
// and are parsed into zero-date time-of-day values.
func (e *employeeRepository) loadShifts(ctx context.Context, employeeIDs []string) (map[string][]employee.ShiftAssignment, error) {
	result := make(map[string][]employee.ShiftAssignment)
	if len(employeeIDs) == 0 {
		return result, nil
	}

	q := GetQuerier(ctx, e.db)

	query := `
		SELECT employee_id, branch_id, to_char(shift_start, 'HH24:MI'), to_char(shift_end, 'HH24:MI')
		FROM shift_assignments
		WHERE employee_id = ANY($1)
		ORDER BY employee_id, branch_id
	`

	rows, err := q.Query(ctx, query, employeeIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to list shift assignments: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var employeeID string
		var assignment employee.ShiftAssignment
		var start, end string
		if err := rows.Scan(&employeeID, &assignment.BranchID, &start, &end); err != nil {
			return nil, fmt.Errorf("failed to scan shift assignment: %w", err)
		}
		assignment.ShiftStart, err = time.Parse("15:04", start)
		if err != nil {
			return nil, fmt.Errorf("invalid shift_start %q for employee %s: %w", start, employeeID, err)
		}
		assignment.ShiftEnd, err = time.Parse("15:04", end)
		if err != nil {
			return nil, fmt.Errorf("invalid shift_end %q for employee %s: %w", end, employeeID, err)
		}
		result[employeeID] = append(result[employeeID], assignment)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read shift assignments: %w", err)
	}

	return result, nil
}
