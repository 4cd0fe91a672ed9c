package leave

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/leave-backend-go/internal/pkg/validator"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

type CreateLeaveRequestRequest struct {
	EmployeeID string `json:"employee_id"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
}

// Validate checks request shape only. Range, joining date and balance rules
// depend on stored state and are enforced by the service in a fixed order.
func (r *CreateLeaveRequestRequest) Validate() error {
	var errs validator.ValidationErrors

	// Employee ID
	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	// Start date
	if validator.IsEmpty(r.StartDate) {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date is required",
		})
	} else if _, ok := validator.IsValidDate(r.StartDate); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be in YYYY-MM-DD format",
		})
	}

	// End date
	if validator.IsEmpty(r.EndDate) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date is required",
		})
	} else if _, ok := validator.IsValidDate(r.EndDate); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be in YYYY-MM-DD format",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ListLeaveRequestsRequest struct {
	EmployeeID string
	Status     string
	Page       int
	Limit      int
}

func (r *ListLeaveRequestsRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.EmployeeID != "" && !validator.IsValidUUID(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id must be a valid UUID",
		})
	}
	if r.Status != "" && !LeaveRequestStatus(strings.ToUpper(r.Status)).IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of PENDING, APPROVED, REJECTED",
		})
	}
	if r.Page < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "page",
			Message: "page must be a positive integer",
		})
	}
	if r.Limit < 0 || r.Limit > maxListLimit {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must be between 1 and 100",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// Filter converts the request into a repository filter with defaults applied.
func (r ListLeaveRequestsRequest) Filter() LeaveRequestFilter {
	filter := LeaveRequestFilter{Page: r.Page, Limit: r.Limit}
	if filter.Page == 0 {
		filter.Page = 1
	}
	if filter.Limit == 0 {
		filter.Limit = defaultListLimit
	}
	if r.EmployeeID != "" {
		employeeID := r.EmployeeID
		filter.EmployeeID = &employeeID
	}
	if r.Status != "" {
		status := LeaveRequestStatus(strings.ToUpper(r.Status))
		filter.Status = &status
	}
	return filter
}

type LeaveRequestResponse struct {
	ID            string    `json:"id"`
	EmployeeID    string    `json:"employee_id"`
	EmployeeName  *string   `json:"employee_name,omitempty"`
	EmployeeEmail *string   `json:"employee_email,omitempty"`
	StartDate     string    `json:"start_date"`
	EndDate       string    `json:"end_date"`
	Status        string    `json:"status"`
	DaysRequested int       `json:"days_requested"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type ListLeaveRequestResponse struct {
	TotalCount int64                  `json:"total_count"`
	Page       int                    `json:"page"`
	Limit      int                    `json:"limit"`
	TotalPages int                    `json:"total_pages"`
	Showing    string                 `json:"showing"`
	Requests   []LeaveRequestResponse `json:"leave_requests"`
}

func NewLeaveRequestResponse(r LeaveRequest) LeaveRequestResponse {
	return LeaveRequestResponse{
		ID:            r.ID,
		EmployeeID:    r.EmployeeID,
		EmployeeName:  r.EmployeeName,
		EmployeeEmail: r.EmployeeEmail,
		StartDate:     r.StartDate.Format(validator.DateLayout),
		EndDate:       r.EndDate.Format(validator.DateLayout),
		Status:        string(r.Status),
		DaysRequested: r.DaysRequested(),
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}
