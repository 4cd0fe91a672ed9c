package leave

import (
	"context"
)

// LeaveRequestRepository - interface for leave_requests table
type LeaveRequestRepository interface {
	Create(ctx context.Context, request LeaveRequest) (LeaveRequest, error)
	GetByID(ctx context.Context, id string) (LeaveRequest, error)
	// GetPendingForUpdate returns the request only while it is PENDING and locks
	// its row for the rest of the transaction.
	GetPendingForUpdate(ctx context.Context, id string) (LeaveRequest, error)
	List(ctx context.Context, filter LeaveRequestFilter) ([]LeaveRequest, int64, error)
	// TransitionStatus moves a request from one status to another and reports
	// whether a row matched both id and the expected current status.
	TransitionStatus(ctx context.Context, id string, from, to LeaveRequestStatus) (bool, error)
	SumApprovedDays(ctx context.Context, employeeID string) (int, error)
	DeleteByEmployeeID(ctx context.Context, employeeID string) (int64, error)
}
