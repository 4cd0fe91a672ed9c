package leave

import "time"

const secondsPerDay = 24 * 60 * 60

type LeaveRequestStatus string

const (
	LeaveRequestStatusPending  LeaveRequestStatus = "PENDING"
	LeaveRequestStatusApproved LeaveRequestStatus = "APPROVED"
	LeaveRequestStatusRejected LeaveRequestStatus = "REJECTED"
)

func (s LeaveRequestStatus) IsValid() bool {
	switch s {
	case LeaveRequestStatusPending, LeaveRequestStatusApproved, LeaveRequestStatusRejected:
		return true
	}
	return false
}

type LeaveRequest struct {
	ID         string
	EmployeeID string
	StartDate  time.Time
	EndDate    time.Time
	Status     LeaveRequestStatus
	CreatedAt  time.Time
	UpdatedAt  time.Time

	// Relationships (for responses)
	EmployeeName  *string
	EmployeeEmail *string
}

// DaysRequested is the inclusive calendar-day count of the request.
func (r LeaveRequest) DaysRequested() int {
	return DaysBetween(r.StartDate, r.EndDate)
}

// DaysBetween counts calendar days from start to end, both inclusive.
// Clock time is ignored so a DATE read back in any location counts the same.
func DaysBetween(start, end time.Time) int {
	s := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	e := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC)
	// Unix seconds, since a Duration overflows past roughly 292 years.
	return int((e.Unix()-s.Unix())/secondsPerDay) + 1
}

type LeaveRequestFilter struct {
	EmployeeID *string
	Status     *LeaveRequestStatus
	Page       int
	Limit      int
}
