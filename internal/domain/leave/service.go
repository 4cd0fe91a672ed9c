package leave

import (
	"context"
)

type LeaveService interface {
	// SubmitLeave validates and stores a new PENDING request, returning its id
	SubmitLeave(ctx context.Context, req CreateLeaveRequestRequest) (LeaveRequestResponse, error)
	ApproveLeave(ctx context.Context, requestID string) error
	RejectLeave(ctx context.Context, requestID string) error
	GetLeave(ctx context.Context, requestID string) (LeaveRequestResponse, error)
	ListLeaves(ctx context.Context, req ListLeaveRequestsRequest) (ListLeaveRequestResponse, error)
}
