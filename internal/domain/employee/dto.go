package employee

import (
	"time"

	"github.com/cmlabs-hris/leave-backend-go/internal/pkg/validator"
)

type CreateEmployeeRequest struct {
	Name         string  `json:"name"`
	Email        string  `json:"email"`
	Department   *string `json:"department,omitempty"`
	JoiningDate  string  `json:"joining_date"`
	LeaveBalance *int    `json:"leave_balance,omitempty"`
}

func (r *CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	} else if len(r.Name) > 255 {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name must not exceed 255 characters",
		})
	}

	if validator.IsEmpty(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email is required",
		})
	} else if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email must be a valid email address",
		})
	}

	if r.Department != nil && len(*r.Department) > 255 {
		errs = append(errs, validator.ValidationError{
			Field:   "department",
			Message: "department must not exceed 255 characters",
		})
	}

	if validator.IsEmpty(r.JoiningDate) {
		errs = append(errs, validator.ValidationError{
			Field:   "joining_date",
			Message: "joining_date is required",
		})
	} else if _, ok := validator.IsValidDate(r.JoiningDate); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "joining_date",
			Message: "joining_date must be in YYYY-MM-DD format",
		})
	}

	if r.LeaveBalance != nil && *r.LeaveBalance < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "leave_balance",
			Message: "leave_balance must not be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// UpdateEmployeeRequest replaces the descriptive fields of an employee.
// The leave balance is owned by the leave ledger and cannot be set here.
type UpdateEmployeeRequest struct {
	ID          string  `json:"-"`
	Name        string  `json:"name"`
	Email       string  `json:"email"`
	Department  *string `json:"department,omitempty"`
	JoiningDate string  `json:"joining_date"`
}

func (r *UpdateEmployeeRequest) Validate() error {
	create := CreateEmployeeRequest{
		Name:        r.Name,
		Email:       r.Email,
		Department:  r.Department,
		JoiningDate: r.JoiningDate,
	}
	return create.Validate()
}

type EmployeeResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Department   *string   `json:"department,omitempty"`
	JoiningDate  string    `json:"joining_date"`
	LeaveBalance int       `json:"leave_balance"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type LeaveBalanceResponse struct {
	EmployeeID   string `json:"employee_id"`
	LeaveBalance int    `json:"leave_balance"`
	UsedDays     int    `json:"used_days"`
}

func NewEmployeeResponse(e Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:           e.ID,
		Name:         e.Name,
		Email:        e.Email,
		Department:   e.Department,
		JoiningDate:  e.JoiningDate.Format(validator.DateLayout),
		LeaveBalance: e.LeaveBalance,
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
	}
}
