package employee

import "context"

type EmployeeRepository interface {
	Create(ctx context.Context, newEmployee Employee) (Employee, error)
	GetByID(ctx context.Context, id string) (Employee, error)
	// GetByIDForUpdate locks the employee row until the surrounding transaction ends.
	GetByIDForUpdate(ctx context.Context, id string) (Employee, error)
	List(ctx context.Context) ([]Employee, error)
	Update(ctx context.Context, emp Employee) (Employee, error)
	Delete(ctx context.Context, id string) error
	DecrementBalance(ctx context.Context, id string, days int) (int, error)
}

// LeaveRecordStore is the slice of the leave ledger the directory needs:
// cascading removal on delete and approved-day usage for balance summaries.
type LeaveRecordStore interface {
	DeleteByEmployeeID(ctx context.Context, employeeID string) (int64, error)
	SumApprovedDays(ctx context.Context, employeeID string) (int, error)
}
