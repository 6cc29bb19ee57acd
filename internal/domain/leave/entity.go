package leave

import "time"

type RequestStatus string

const (
	RequestStatusPending  RequestStatus = "pending"
	RequestStatusApproved RequestStatus = "approved"
	RequestStatusRejected RequestStatus = "rejected"
)

// LeaveRequest is read-only here: the approval workflow lives elsewhere, this
// core only consumes the final approved state.
type LeaveRequest struct {
	ID         string
	EmployeeID string
	Status     RequestStatus
	StartDate  time.Time
	EndDate    time.Time // inclusive
}
