package leave

import (
	"errors"
	"fmt"
)

var (
	ErrLeaveRequestNotFound = errors.New("leave request not found")
	ErrInvalidRange         = errors.New("end date cannot be before start date")
	ErrPreJoiningLeave      = errors.New("leave start date cannot be before joining date")

	// ErrAlreadyProcessedOrNotFound covers both a missing request and one that is no
	// longer pending; callers cannot tell the two apart.
	ErrAlreadyProcessedOrNotFound = errors.New("leave not found or already processed")
)

// InsufficientBalanceError reports the balance left when a request asks for more.
type InsufficientBalanceError struct {
	Requested int
	Remaining int
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("insufficient leave balance: you have only %d day(s) remaining", e.Remaining)
}
