package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/instituteops/attendance-sync-go/internal/domain/leave"
	"github.com/instituteops/attendance-sync-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type leaveRequestRepository struct {
	db *database.DB
}

func NewLeaveRequestRepository(db *database.DB) leave.LeaveRequestRepository {
	return &leaveRequestRepository{db: db}
}

// FindApprovedCovering implements leave.LeaveRequestRepository.
func (l *leaveRequestRepository) FindApprovedCovering(ctx context.Context, employeeID string, day time.Time) (*leave.LeaveRequest, error) {
	q := GetQuerier(ctx, l.db)

	query := `
		SELECT id, employee_id, status, start_date, end_date
		FROM leave_requests
		WHERE employee_id = $1
		  AND status = 'approved'
		  AND start_date <= $2
		  AND end_date >= $2
		LIMIT 1
	`

	var req leave.LeaveRequest
	var status string
	err := q.QueryRow(ctx, query, employeeID, day).Scan(
		&req.ID, &req.EmployeeID, &status, &req.StartDate, &req.EndDate,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find approved leave: %w", err)
	}
	req.Status = leave.RequestStatus(status)

	return &req, nil
}
