package employee

import "time"

// DefaultLeaveBalance is the entitlement a new employee starts with.
const DefaultLeaveBalance = 20

type Employee struct {
	ID           string
	Name         string
	Email        string
	Department   *string
	JoiningDate  time.Time
	LeaveBalance int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

