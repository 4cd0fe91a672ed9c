package employee

import (
	"context"
)

// EmployeeService defines the employee directory operations
type EmployeeService interface {
	CreateEmployee(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)
	GetEmployee(ctx context.Context, id string) (EmployeeResponse, error)
	ListEmployees(ctx context.Context) ([]EmployeeResponse, error)
	UpdateEmployee(ctx context.Context, req UpdateEmployeeRequest) (EmployeeResponse, error)

	// DeleteEmployee removes the employee together with every leave request it owns
	DeleteEmployee(ctx context.Context, id string) error

	GetLeaveBalance(ctx context.Context, id string) (LeaveBalanceResponse, error)
}
