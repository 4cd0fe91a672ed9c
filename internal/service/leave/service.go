package leave

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/cmlabs-hris/leave-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/leave-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/leave-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/leave-backend-go/internal/pkg/metrics"
	"github.com/cmlabs-hris/leave-backend-go/internal/pkg/validator"
	"github.com/google/uuid"
)

type LeaveServiceImpl struct {
	transactor   database.Transactor
	leaveRepo    leave.LeaveRequestRepository
	employeeRepo employee.EmployeeRepository
}

func NewLeaveService(
	transactor database.Transactor,
	leaveRepo leave.LeaveRequestRepository,
	employeeRepo employee.EmployeeRepository,
) leave.LeaveService {
	return &LeaveServiceImpl{
		transactor:   transactor,
		leaveRepo:    leaveRepo,
		employeeRepo: employeeRepo,
	}
}

// SubmitLeave implements leave.LeaveService.
// Checks run in a fixed order and the first failure wins: employee exists,
// range is ordered, range starts on or after joining, balance covers the days.
// The stored balance already excludes every approved day, so it is the
// remaining figure reported back on failure.
func (s *LeaveServiceImpl) SubmitLeave(ctx context.Context, req leave.CreateLeaveRequestRequest) (leave.LeaveRequestResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	if !validator.IsValidUUID(req.EmployeeID) {
		metrics.ObserveLeaveSubmission(metrics.ResultRejected)
		return leave.LeaveRequestResponse{}, employee.ErrEmployeeNotFound
	}

	emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		metrics.ObserveLeaveSubmission(resultOf(err))
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return leave.LeaveRequestResponse{}, err
		}
		return leave.LeaveRequestResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}

	startDate, err := time.Parse(validator.DateLayout, req.StartDate)
	if err != nil {
		return leave.LeaveRequestResponse{}, fmt.Errorf("failed to parse start date: %w", err)
	}
	endDate, err := time.Parse(validator.DateLayout, req.EndDate)
	if err != nil {
		return leave.LeaveRequestResponse{}, fmt.Errorf("failed to parse end date: %w", err)
	}

	if endDate.Before(startDate) {
		metrics.ObserveLeaveSubmission(metrics.ResultRejected)
		return leave.LeaveRequestResponse{}, leave.ErrInvalidRange
	}

	if startDate.Before(dateOnly(emp.JoiningDate)) {
		metrics.ObserveLeaveSubmission(metrics.ResultRejected)
		return leave.LeaveRequestResponse{}, leave.ErrPreJoiningLeave
	}

	daysRequested := leave.DaysBetween(startDate, endDate)
	if daysRequested > emp.LeaveBalance {
		metrics.ObserveLeaveSubmission(metrics.ResultRejected)
		return leave.LeaveRequestResponse{}, &leave.InsufficientBalanceError{
			Requested: daysRequested,
			Remaining: emp.LeaveBalance,
		}
	}

	id, err := uuid.NewV7()
	if err != nil {
		return leave.LeaveRequestResponse{}, fmt.Errorf("failed to generate leave request id: %w", err)
	}

	created, err := s.leaveRepo.Create(ctx, leave.LeaveRequest{
		ID:         id.String(),
		EmployeeID: emp.ID,
		StartDate:  startDate,
		EndDate:    endDate,
		Status:     leave.LeaveRequestStatusPending,
	})
	if err != nil {
		metrics.ObserveLeaveSubmission(metrics.ResultError)
		slog.Error("Failed to create leave request", "employee_id", emp.ID, "error", err)
		return leave.LeaveRequestResponse{}, fmt.Errorf("failed to create leave request: %w", err)
	}
	created.EmployeeName = &emp.Name
	created.EmployeeEmail = &emp.Email

	metrics.ObserveLeaveSubmission(metrics.ResultSuccess)
	slog.Info("Leave request submitted", "leave_id", created.ID, "employee_id", emp.ID, "days_requested", daysRequested)

	return leave.NewLeaveRequestResponse(created), nil
}

// ApproveLeave implements leave.LeaveService.
// The request row is locked first, then the employee row, so approvals for the
// same employee serialize on the employee lock and each sees the balance left
// by the previous one.
func (s *LeaveServiceImpl) ApproveLeave(ctx context.Context, requestID string) error {
	if !validator.IsValidUUID(requestID) {
		metrics.ObserveLeaveTransition("approve", metrics.ResultRejected)
		return leave.ErrAlreadyProcessedOrNotFound
	}

	var (
		employeeID string
		balance    int
		days       int
	)
	err := s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		request, err := s.leaveRepo.GetPendingForUpdate(ctx, requestID)
		if err != nil {
			return err
		}

		emp, err := s.employeeRepo.GetByIDForUpdate(ctx, request.EmployeeID)
		if err != nil {
			return fmt.Errorf("failed to lock employee: %w", err)
		}

		days = request.DaysRequested()
		if days > emp.LeaveBalance {
			return &leave.InsufficientBalanceError{Requested: days, Remaining: emp.LeaveBalance}
		}

		ok, err := s.leaveRepo.TransitionStatus(ctx, request.ID, leave.LeaveRequestStatusPending, leave.LeaveRequestStatusApproved)
		if err != nil {
			return fmt.Errorf("failed to approve leave request: %w", err)
		}
		if !ok {
			return leave.ErrAlreadyProcessedOrNotFound
		}

		balance, err = s.employeeRepo.DecrementBalance(ctx, emp.ID, days)
		if err != nil {
			return fmt.Errorf("failed to deduct leave balance: %w", err)
		}
		employeeID = emp.ID
		return nil
	})
	if err != nil {
		metrics.ObserveLeaveTransition("approve", resultOf(err))
		if errors.Is(err, database.ErrStorage) {
			slog.Error("Failed to approve leave request", "leave_id", requestID, "error", err)
		}
		return err
	}

	metrics.ObserveLeaveTransition("approve", metrics.ResultSuccess)
	slog.Info("Leave request approved", "leave_id", requestID, "employee_id", employeeID, "days", days, "leave_balance", balance)
	return nil
}

// RejectLeave implements leave.LeaveService with a single compare-and-set, so a
// racing approval and rejection cannot both succeed.
func (s *LeaveServiceImpl) RejectLeave(ctx context.Context, requestID string) error {
	if !validator.IsValidUUID(requestID) {
		metrics.ObserveLeaveTransition("reject", metrics.ResultRejected)
		return leave.ErrAlreadyProcessedOrNotFound
	}

	ok, err := s.leaveRepo.TransitionStatus(ctx, requestID, leave.LeaveRequestStatusPending, leave.LeaveRequestStatusRejected)
	if err != nil {
		metrics.ObserveLeaveTransition("reject", metrics.ResultError)
		slog.Error("Failed to reject leave request", "leave_id", requestID, "error", err)
		return fmt.Errorf("failed to reject leave request: %w", err)
	}
	if !ok {
		metrics.ObserveLeaveTransition("reject", metrics.ResultRejected)
		return leave.ErrAlreadyProcessedOrNotFound
	}

	metrics.ObserveLeaveTransition("reject", metrics.ResultSuccess)
	slog.Info("Leave request rejected", "leave_id", requestID)
	return nil
}

// GetLeave implements leave.LeaveService.
func (s *LeaveServiceImpl) GetLeave(ctx context.Context, requestID string) (leave.LeaveRequestResponse, error) {
	if !validator.IsValidUUID(requestID) {
		return leave.LeaveRequestResponse{}, leave.ErrLeaveRequestNotFound
	}

	request, err := s.leaveRepo.GetByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, leave.ErrLeaveRequestNotFound) {
			return leave.LeaveRequestResponse{}, err
		}
		return leave.LeaveRequestResponse{}, fmt.Errorf("failed to get leave request: %w", err)
	}

	return leave.NewLeaveRequestResponse(request), nil
}

// ListLeaves implements leave.LeaveService.
func (s *LeaveServiceImpl) ListLeaves(ctx context.Context, req leave.ListLeaveRequestsRequest) (leave.ListLeaveRequestResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.ListLeaveRequestResponse{}, err
	}
	filter := req.Filter()

	requests, totalCount, err := s.leaveRepo.List(ctx, filter)
	if err != nil {
		return leave.ListLeaveRequestResponse{}, fmt.Errorf("failed to list leave requests: %w", err)
	}

	leaveRequestResponses := make([]leave.LeaveRequestResponse, 0, len(requests))
	for _, request := range requests {
		leaveRequestResponses = append(leaveRequestResponses, leave.NewLeaveRequestResponse(request))
	}

	// Calculate pagination metadata
	totalPages := int(math.Ceil(float64(totalCount) / float64(filter.Limit)))

	// Calculate "showing" text
	start := (filter.Page-1)*filter.Limit + 1
	end := start + len(leaveRequestResponses) - 1
	if end > int(totalCount) {
		end = int(totalCount)
	}

	showing := fmt.Sprintf("%d-%d of %d results", start, end, totalCount)
	if len(leaveRequestResponses) == 0 {
		showing = "0 results"
	}

	return leave.ListLeaveRequestResponse{
		TotalCount: totalCount,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages,
		Showing:    showing,
		Requests:   leaveRequestResponses,
	}, nil
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func resultOf(err error) string {
	if errors.Is(err, database.ErrStorage) {
		return metrics.ResultError
	}
	return metrics.ResultRejected
}
