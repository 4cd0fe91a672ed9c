package employee

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/cmlabs-hris/leave-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/leave-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/leave-backend-go/internal/pkg/metrics"
	"github.com/cmlabs-hris/leave-backend-go/internal/pkg/validator"
	"github.com/google/uuid"
)

type EmployeeServiceImpl struct {
	transactor     database.Transactor
	employeeRepo   employee.EmployeeRepository
	leaveRecords   employee.LeaveRecordStore
	defaultBalance int
}

func NewEmployeeService(
	transactor database.Transactor,
	employeeRepo employee.EmployeeRepository,
	leaveRecords employee.LeaveRecordStore,
	defaultBalance int,
) employee.EmployeeService {
	return &EmployeeServiceImpl{
		transactor:     transactor,
		employeeRepo:   employeeRepo,
		leaveRecords:   leaveRecords,
		defaultBalance: defaultBalance,
	}
}

// CreateEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) CreateEmployee(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	joiningDate, err := time.Parse(validator.DateLayout, req.JoiningDate)
	if err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to parse joining date: %w", err)
	}

	balance := s.defaultBalance
	if req.LeaveBalance != nil {
		balance = *req.LeaveBalance
	}

	id, err := uuid.NewV7()
	if err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to generate employee id: %w", err)
	}

	created, err := s.employeeRepo.Create(ctx, employee.Employee{
		ID:           id.String(),
		Name:         strings.TrimSpace(req.Name),
		Email:        strings.TrimSpace(req.Email),
		Department:   req.Department,
		JoiningDate:  joiningDate,
		LeaveBalance: balance,
	})
	if err != nil {
		if errors.Is(err, employee.ErrEmailExists) {
			return employee.EmployeeResponse{}, err
		}
		return employee.EmployeeResponse{}, fmt.Errorf("failed to create employee: %w", err)
	}

	slog.Info("Employee created", "employee_id", created.ID, "leave_balance", created.LeaveBalance)
	return employee.NewEmployeeResponse(created), nil
}

// GetEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) GetEmployee(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	if !validator.IsValidUUID(id) {
		return employee.EmployeeResponse{}, employee.ErrEmployeeNotFound
	}

	emp, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return employee.EmployeeResponse{}, err
		}
		return employee.EmployeeResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}

	return employee.NewEmployeeResponse(emp), nil
}

// ListEmployees implements employee.EmployeeService.
func (s *EmployeeServiceImpl) ListEmployees(ctx context.Context) ([]employee.EmployeeResponse, error) {
	employees, err := s.employeeRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}

	responses := make([]employee.EmployeeResponse, 0, len(employees))
	for _, emp := range employees {
		responses = append(responses, employee.NewEmployeeResponse(emp))
	}
	return responses, nil
}

// UpdateEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) UpdateEmployee(ctx context.Context, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	if !validator.IsValidUUID(req.ID) {
		return employee.EmployeeResponse{}, employee.ErrEmployeeNotFound
	}
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	joiningDate, err := time.Parse(validator.DateLayout, req.JoiningDate)
	if err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to parse joining date: %w", err)
	}

	updated, err := s.employeeRepo.Update(ctx, employee.Employee{
		ID:          req.ID,
		Name:        strings.TrimSpace(req.Name),
		Email:       strings.TrimSpace(req.Email),
		Department:  req.Department,
		JoiningDate: joiningDate,
	})
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) || errors.Is(err, employee.ErrEmailExists) {
			return employee.EmployeeResponse{}, err
		}
		return employee.EmployeeResponse{}, fmt.Errorf("failed to update employee: %w", err)
	}

	return employee.NewEmployeeResponse(updated), nil
}

// DeleteEmployee implements employee.EmployeeService. Leave requests go first
// and the employee row second inside one transaction; any failure leaves both
// tables as they were.
func (s *EmployeeServiceImpl) DeleteEmployee(ctx context.Context, id string) error {
	if !validator.IsValidUUID(id) {
		metrics.ObserveEmployeeDeletion(metrics.ResultRejected)
		return employee.ErrEmployeeNotFound
	}

	var removedLeaves int64
	err := s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		removedLeaves, err = s.leaveRecords.DeleteByEmployeeID(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to delete leave requests: %w", err)
		}

		return s.employeeRepo.Delete(ctx, id)
	})
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			metrics.ObserveEmployeeDeletion(metrics.ResultRejected)
			return err
		}
		metrics.ObserveEmployeeDeletion(metrics.ResultError)
		slog.Error("Failed to delete employee", "employee_id", id, "error", err)
		return fmt.Errorf("failed to delete employee: %w", err)
	}

	metrics.ObserveEmployeeDeletion(metrics.ResultSuccess)
	slog.Info("Employee deleted", "employee_id", id, "leave_requests_removed", removedLeaves)
	return nil
}

// GetLeaveBalance implements employee.EmployeeService.
func (s *EmployeeServiceImpl) GetLeaveBalance(ctx context.Context, id string) (employee.LeaveBalanceResponse, error) {
	if !validator.IsValidUUID(id) {
		return employee.LeaveBalanceResponse{}, employee.ErrEmployeeNotFound
	}

	emp, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return employee.LeaveBalanceResponse{}, err
		}
		return employee.LeaveBalanceResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}

	used, err := s.leaveRecords.SumApprovedDays(ctx, emp.ID)
	if err != nil {
		return employee.LeaveBalanceResponse{}, fmt.Errorf("failed to sum approved leave: %w", err)
	}

	return employee.LeaveBalanceResponse{
		EmployeeID:   emp.ID,
		LeaveBalance: emp.LeaveBalance,
		UsedDays:     used,
	}, nil
}
