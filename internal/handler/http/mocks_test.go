package http

import (
	"context"

	"github.com/cmlabs-hris/leave-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/leave-backend-go/internal/domain/leave"
	"github.com/stretchr/testify/mock"
)

// --- Mock LeaveService ---
type MockLeaveService struct {
	mock.Mock
}

func (m *MockLeaveService) SubmitLeave(ctx context.Context, req leave.CreateLeaveRequestRequest) (leave.LeaveRequestResponse, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(leave.LeaveRequestResponse), args.Error(1)
}

func (m *MockLeaveService) ApproveLeave(ctx context.Context, requestID string) error {
	args := m.Called(ctx, requestID)
	return args.Error(0)
}

func (m *MockLeaveService) RejectLeave(ctx context.Context, requestID string) error {
	args := m.Called(ctx, requestID)
	return args.Error(0)
}

func (m *MockLeaveService) GetLeave(ctx context.Context, requestID string) (leave.LeaveRequestResponse, error) {
	args := m.Called(ctx, requestID)
	return args.Get(0).(leave.LeaveRequestResponse), args.Error(1)
}

func (m *MockLeaveService) ListLeaves(ctx context.Context, req leave.ListLeaveRequestsRequest) (leave.ListLeaveRequestResponse, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(leave.ListLeaveRequestResponse), args.Error(1)
}

// --- Mock EmployeeService ---
type MockEmployeeService struct {
	mock.Mock
}

func (m *MockEmployeeService) CreateEmployee(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(employee.EmployeeResponse), args.Error(1)
}

func (m *MockEmployeeService) GetEmployee(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(employee.EmployeeResponse), args.Error(1)
}

func (m *MockEmployeeService) ListEmployees(ctx context.Context) ([]employee.EmployeeResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]employee.EmployeeResponse), args.Error(1)
}

func (m *MockEmployeeService) UpdateEmployee(ctx context.Context, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(employee.EmployeeResponse), args.Error(1)
}

func (m *MockEmployeeService) DeleteEmployee(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockEmployeeService) GetLeaveBalance(ctx context.Context, id string) (employee.LeaveBalanceResponse, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(employee.LeaveBalanceResponse), args.Error(1)
}
