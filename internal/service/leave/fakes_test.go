package leave

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/cmlabs-hris/leave-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/leave-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/leave-backend-go/internal/pkg/database"
)

// memStore backs both repositories. Writes made under a memTx register an undo
// step so a failed transaction restores exactly what it touched.
type memStore struct {
	mu        sync.Mutex
	employees map[string]employee.Employee
	requests  map[string]leave.LeaveRequest
	clock     time.Time
	failOn    map[string]error
}

func newMemStore() *memStore {
	return &memStore{
		employees: map[string]employee.Employee{},
		requests:  map[string]leave.LeaveRequest{},
		clock:     time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC),
		failOn:    map[string]error{},
	}
}

func (s *memStore) fail(op string) error {
	if err, ok := s.failOn[op]; ok {
		return fmt.Errorf("%w: %s: %w", database.ErrStorage, op, err)
	}
	return nil
}

func (s *memStore) tick() time.Time {
	s.clock = s.clock.Add(time.Millisecond)
	return s.clock
}

func (s *memStore) addEmployee(emp employee.Employee) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.employees[emp.ID] = emp
}

func (s *memStore) employee(id string) employee.Employee {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.employees[id]
}

func (s *memStore) request(id string) leave.LeaveRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.requests[id]
}

type memTx struct {
	undo []func()
}

type memTxKey struct{}

func recordUndo(ctx context.Context, fn func()) {
	if tx, ok := ctx.Value(memTxKey{}).(*memTx); ok {
		tx.undo = append(tx.undo, fn)
	}
}

// memTransactor runs one transaction at a time, standing in for the row locks
// postgres takes on the request and employee rows.
type memTransactor struct {
	store *memStore
	txMu  sync.Mutex
}

func (t *memTransactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	t.txMu.Lock()
	defer t.txMu.Unlock()

	tx := &memTx{}
	if err := fn(context.WithValue(ctx, memTxKey{}, tx)); err != nil {
		t.store.mu.Lock()
		for i := len(tx.undo) - 1; i >= 0; i-- {
			tx.undo[i]()
		}
		t.store.mu.Unlock()
		return err
	}
	return nil
}

type memLeaveRepo struct{ *memStore }

func (r memLeaveRepo) Create(ctx context.Context, request leave.LeaveRequest) (leave.LeaveRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.fail("Create"); err != nil {
		return leave.LeaveRequest{}, err
	}
	now := r.tick()
	request.CreatedAt, request.UpdatedAt = now, now
	r.requests[request.ID] = request
	return request, nil
}

func (r memLeaveRepo) withEmployee(req leave.LeaveRequest) leave.LeaveRequest {
	if emp, ok := r.employees[req.EmployeeID]; ok {
		name, email := emp.Name, emp.Email
		req.EmployeeName, req.EmployeeEmail = &name, &email
	}
	return req
}

func (r memLeaveRepo) GetByID(ctx context.Context, id string) (leave.LeaveRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	req, ok := r.requests[id]
	if !ok {
		return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
	}
	return r.withEmployee(req), nil
}

func (r memLeaveRepo) GetPendingForUpdate(ctx context.Context, id string) (leave.LeaveRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	req, ok := r.requests[id]
	if !ok || req.Status != leave.LeaveRequestStatusPending {
		return leave.LeaveRequest{}, leave.ErrAlreadyProcessedOrNotFound
	}
	return req, nil
}

func (r memLeaveRepo) List(ctx context.Context, filter leave.LeaveRequestFilter) ([]leave.LeaveRequest, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var matched []leave.LeaveRequest
	for _, req := range r.requests {
		if filter.EmployeeID != nil && req.EmployeeID != *filter.EmployeeID {
			continue
		}
		if filter.Status != nil && req.Status != *filter.Status {
			continue
		}
		matched = append(matched, r.withEmployee(req))
	}
	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].ID > matched[j].ID
	})

	total := int64(len(matched))
	offset := (filter.Page - 1) * filter.Limit
	if offset >= len(matched) {
		return []leave.LeaveRequest{}, total, nil
	}
	end := offset + filter.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], total, nil
}

func (r memLeaveRepo) TransitionStatus(ctx context.Context, id string, from, to leave.LeaveRequestStatus) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.fail("TransitionStatus"); err != nil {
		return false, err
	}
	req, ok := r.requests[id]
	if !ok || req.Status != from {
		return false, nil
	}
	prev := req
	req.Status = to
	req.UpdatedAt = r.tick()
	r.requests[id] = req
	recordUndo(ctx, func() { r.requests[id] = prev })
	return true, nil
}

func (r memLeaveRepo) SumApprovedDays(ctx context.Context, employeeID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	used := 0
	for _, req := range r.requests {
		if req.EmployeeID == employeeID && req.Status == leave.LeaveRequestStatusApproved {
			used += req.DaysRequested()
		}
	}
	return used, nil
}

func (r memLeaveRepo) DeleteByEmployeeID(ctx context.Context, employeeID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.fail("DeleteByEmployeeID"); err != nil {
		return 0, err
	}
	var n int64
	for id, req := range r.requests {
		if req.EmployeeID == employeeID {
			removed := req
			delete(r.requests, id)
			recordUndo(ctx, func() { r.requests[removed.ID] = removed })
			n++
		}
	}
	return n, nil
}

type memEmployeeRepo struct{ *memStore }

func (r memEmployeeRepo) Create(ctx context.Context, newEmployee employee.Employee) (employee.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.employees[newEmployee.ID] = newEmployee
	return newEmployee, nil
}

func (r memEmployeeRepo) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.fail("GetEmployee"); err != nil {
		return employee.Employee{}, err
	}
	emp, ok := r.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return emp, nil
}

func (r memEmployeeRepo) GetByIDForUpdate(ctx context.Context, id string) (employee.Employee, error) {
	return r.GetByID(ctx, id)
}

func (r memEmployeeRepo) List(ctx context.Context) ([]employee.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	list := make([]employee.Employee, 0, len(r.employees))
	for _, emp := range r.employees {
		list = append(list, emp)
	}
	return list, nil
}

func (r memEmployeeRepo) Update(ctx context.Context, emp employee.Employee) (employee.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	current, ok := r.employees[emp.ID]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	emp.LeaveBalance = current.LeaveBalance
	r.employees[emp.ID] = emp
	return emp, nil
}

func (r memEmployeeRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	removed, ok := r.employees[id]
	if !ok {
		return employee.ErrEmployeeNotFound
	}
	delete(r.employees, id)
	recordUndo(ctx, func() { r.employees[id] = removed })
	return nil
}

func (r memEmployeeRepo) DecrementBalance(ctx context.Context, id string, days int) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.fail("DecrementBalance"); err != nil {
		return 0, err
	}
	emp, ok := r.employees[id]
	if !ok || emp.LeaveBalance < days {
		return 0, employee.ErrEmployeeNotFound
	}
	prev := emp.LeaveBalance
	emp.LeaveBalance -= days
	r.employees[id] = emp
	recordUndo(ctx, func() {
		e := r.employees[id]
		e.LeaveBalance = prev
		r.employees[id] = e
	})
	return emp.LeaveBalance, nil
}
