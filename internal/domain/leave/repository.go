package leave

import (
	"context"
	"time"
)

type LeaveRequestRepository interface {
	// FindApprovedCovering returns an approved request whose [start, end]
	// range contains the given day, or (nil, nil) when there is none.
	FindApprovedCovering(ctx context.Context, employeeID string, day time.Time) (*LeaveRequest, error)
}
