package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/leave-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/leave-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type leaveRequestRepositoryImpl struct {
	db *database.DB
}

func NewLeaveRequestRepository(db *database.DB) leave.LeaveRequestRepository {
	return &leaveRequestRepositoryImpl{db: db}
}

// Create implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) Create(ctx context.Context, request leave.LeaveRequest) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_requests (
			id, employee_id, start_date, end_date, status,
			created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5,
			NOW(), NOW()
		) RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		request.ID, request.EmployeeID, request.StartDate, request.EndDate, request.Status,
	).Scan(&request.CreatedAt, &request.UpdatedAt)
	if err != nil {
		return leave.LeaveRequest{}, storageErr("insert leave request", err)
	}

	return request, nil
}

// GetByID implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) GetByID(ctx context.Context, id string) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT lr.id, lr.employee_id, lr.start_date, lr.end_date, lr.status,
			   lr.created_at, lr.updated_at,
			   e.name AS employee_name, e.email AS employee_email
		FROM leave_requests lr
		LEFT JOIN employees e ON lr.employee_id = e.id
		WHERE lr.id = $1
	`

	var req leave.LeaveRequest
	err := q.QueryRow(ctx, query, id).Scan(
		&req.ID, &req.EmployeeID, &req.StartDate, &req.EndDate, &req.Status,
		&req.CreatedAt, &req.UpdatedAt,
		&req.EmployeeName, &req.EmployeeEmail,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
		}
		return leave.LeaveRequest{}, storageErr("get leave request", err)
	}

	return req, nil
}

// GetPendingForUpdate implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) GetPendingForUpdate(ctx context.Context, id string) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	// Under READ COMMITTED a waiter re-checks the status once the lock holder
	// commits, so a request processed meanwhile comes back as no rows.
	query := `
		SELECT id, employee_id, start_date, end_date, status, created_at, updated_at
		FROM leave_requests
		WHERE id = $1 AND status = $2
		FOR UPDATE
	`

	var req leave.LeaveRequest
	err := q.QueryRow(ctx, query, id, leave.LeaveRequestStatusPending).Scan(
		&req.ID, &req.EmployeeID, &req.StartDate, &req.EndDate, &req.Status,
		&req.CreatedAt, &req.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveRequest{}, leave.ErrAlreadyProcessedOrNotFound
		}
		return leave.LeaveRequest{}, storageErr("lock leave request", err)
	}

	return req, nil
}

// List implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) List(ctx context.Context, filter leave.LeaveRequestFilter) ([]leave.LeaveRequest, int64, error) {
	q := GetQuerier(ctx, r.db)

	// Build WHERE clause
	whereClause := "WHERE 1=1"
	args := []interface{}{}
	argIndex := 1

	if filter.EmployeeID != nil {
		whereClause += fmt.Sprintf(" AND lr.employee_id = $%d", argIndex)
		args = append(args, *filter.EmployeeID)
		argIndex++
	}

	if filter.Status != nil {
		whereClause += fmt.Sprintf(" AND lr.status = $%d", argIndex)
		args = append(args, *filter.Status)
		argIndex++
	}

	// Count total
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM leave_requests lr %s`, whereClause)

	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, storageErr("count leave requests", err)
	}

	// Get data with pagination
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	offset := (filter.Page - 1) * filter.Limit

	// ids are UUIDv7, so id DESC is newest first
	query := fmt.Sprintf(`
		SELECT lr.id, lr.employee_id, lr.start_date, lr.end_date, lr.status,
			   lr.created_at, lr.updated_at,
			   e.name AS employee_name, e.email AS employee_email
		FROM leave_requests lr
		LEFT JOIN employees e ON lr.employee_id = e.id
		%s
		ORDER BY lr.created_at DESC, lr.id DESC
		LIMIT $%d OFFSET $%d
	`, whereClause, argIndex, argIndex+1)
	args = append(args, filter.Limit, offset)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, storageErr("list leave requests", err)
	}
	defer rows.Close()

	requests := []leave.LeaveRequest{}
	for rows.Next() {
		var lr leave.LeaveRequest
		err := rows.Scan(
			&lr.ID, &lr.EmployeeID, &lr.StartDate, &lr.EndDate, &lr.Status,
			&lr.CreatedAt, &lr.UpdatedAt,
			&lr.EmployeeName, &lr.EmployeeEmail,
		)
		if err != nil {
			return nil, 0, storageErr("scan leave request", err)
		}
		requests = append(requests, lr)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, storageErr("list leave requests", err)
	}

	return requests, total, nil
}

// TransitionStatus implements leave.LeaveRequestRepository as a single compare-and-set.
func (r *leaveRequestRepositoryImpl) TransitionStatus(ctx context.Context, id string, from, to leave.LeaveRequestStatus) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_requests
		SET status = $1, updated_at = NOW()
		WHERE id = $2 AND status = $3
	`

	commandTag, err := q.Exec(ctx, query, to, id, from)
	if err != nil {
		return false, storageErr("update leave request status", err)
	}

	return commandTag.RowsAffected() == 1, nil
}

// SumApprovedDays implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) SumApprovedDays(ctx context.Context, employeeID string) (int, error) {
	q := GetQuerier(ctx, r.db)

	// date - date yields whole days in postgres
	query := `
		SELECT COALESCE(SUM(end_date - start_date + 1), 0)
		FROM leave_requests
		WHERE employee_id = $1 AND status = $2
	`

	var used int
	if err := q.QueryRow(ctx, query, employeeID, leave.LeaveRequestStatusApproved).Scan(&used); err != nil {
		return 0, storageErr("sum approved leave days", err)
	}

	return used, nil
}

// DeleteByEmployeeID implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) DeleteByEmployeeID(ctx context.Context, employeeID string) (int64, error) {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `DELETE FROM leave_requests WHERE employee_id = $1`, employeeID)
	if err != nil {
		return 0, storageErr("delete leave requests", err)
	}

	return commandTag.RowsAffected(), nil
}
