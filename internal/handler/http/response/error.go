package response

import (
	"context"
	"errors"
	"net/http"

	"github.com/cmlabs-hris/leave-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/leave-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/leave-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/leave-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	var balanceErr *leave.InsufficientBalanceError
	if errors.As(err, &balanceErr) {
		BadRequest(w, balanceErr.Error(), map[string]interface{}{
			"remaining": balanceErr.Remaining,
			"requested": balanceErr.Requested,
		})
		return
	}

	switch {
	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmailExists):
		Conflict(w, "Email already registered")

	// Leave domain errors
	case errors.Is(err, leave.ErrLeaveRequestNotFound):
		NotFound(w, "Leave request not found")
	case errors.Is(err, leave.ErrInvalidRange):
		BadRequest(w, "End date cannot be before start date", nil)
	case errors.Is(err, leave.ErrPreJoiningLeave):
		BadRequest(w, "Leave start date cannot be before joining date", nil)
	case errors.Is(err, leave.ErrAlreadyProcessedOrNotFound):
		BadRequest(w, "Leave not found or already processed", nil)

	case errors.Is(err, context.DeadlineExceeded):
		GatewayTimeout(w, "Request timed out")
	case errors.Is(err, database.ErrStorage):
		InternalServerError(w, "Storage error, please retry")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
