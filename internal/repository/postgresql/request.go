package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/talentindo/hrms-backend-go/internal/domain/request"
	"github.com/talentindo/hrms-backend-go/internal/pkg/database"
)

type requestRepositoryImpl struct {
	db *database.DB
}

func NewRequestRepository(db *database.DB) request.Repository {
	return &requestRepositoryImpl{db: db}
}

func (r *requestRepositoryImpl) Create(ctx context.Context, req request.Request) (request.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO approval_requests (
			id, type, employee_id, reason, remarks,
			rest_day_date, replacement_work_date,
			original_off_date, requested_off_date,
			retro_type, retro_date, amount, multiplier,
			status, approved_by, approved_at,
			created_at, updated_at
		) VALUES (
			uuidv7(), $1, $2, $3, $4,
			$5, $6,
			$7, $8,
			$9, $10, $11, $12,
			$13, $14, $15,
			NOW(), NOW()
		) RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		req.Type, req.EmployeeID, req.Reason, req.Remarks,
		req.RestDayDate, req.ReplacementWorkDate,
		req.OriginalOffDate, req.RequestedOffDate,
		req.RetroType, req.RetroDate, req.Amount, req.Multiplier,
		req.Status, req.ApprovedBy, req.ApprovedAt,
	).Scan(&req.ID, &req.CreatedAt, &req.UpdatedAt)
	if err != nil {
		return request.Request{}, fmt.Errorf("failed to create approval request: %w", err)
	}

	return req, nil
}

const requestSelectColumns = `
	ar.id, ar.type, ar.employee_id, ar.reason, ar.remarks,
	ar.rest_day_date, ar.replacement_work_date,
	ar.original_off_date, ar.requested_off_date,
	ar.retro_type, ar.retro_date, ar.amount, ar.multiplier,
	ar.status, ar.approved_by, ar.approved_at,
	ar.created_at, ar.updated_at,
	e.full_name, e.code, e.department, approver.name
`

const requestFromClause = `
	FROM approval_requests ar
	INNER JOIN employees e ON ar.employee_id = e.id
	LEFT JOIN users approver ON ar.approved_by = approver.id
`

func scanRequest(row pgx.Row) (request.Request, error) {
	var req request.Request
	err := row.Scan(
		&req.ID, &req.Type, &req.EmployeeID, &req.Reason, &req.Remarks,
		&req.RestDayDate, &req.ReplacementWorkDate,
		&req.OriginalOffDate, &req.RequestedOffDate,
		&req.RetroType, &req.RetroDate, &req.Amount, &req.Multiplier,
		&req.Status, &req.ApprovedBy, &req.ApprovedAt,
		&req.CreatedAt, &req.UpdatedAt,
		&req.EmployeeName, &req.EmployeeCode, &req.DepartmentName, &req.ApproverName,
	)
	return req, err
}

func (r *requestRepositoryImpl) GetByID(ctx context.Context, id string) (request.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + requestSelectColumns + requestFromClause + ` WHERE ar.id = $1`

	req, err := scanRequest(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return request.Request{}, request.ErrRequestNotFound
		}
		return request.Request{}, err
	}
	return req, nil
}

// ExistsDuplicate matches on the semantically-unique key of the request's
// type: the rest day being cancelled, the off day being moved, or the retro
// type and date. Replacement and requested dates are not part of the key; a
// refile for the same day with a different counterpart date is still a
// duplicate.
func (r *requestRepositoryImpl) ExistsDuplicate(ctx context.Context, req request.Request, pendingOnly bool) (bool, error) {
	q := GetQuerier(ctx, r.db)

	where := "employee_id = $1 AND type = $2"
	args := []interface{}{req.EmployeeID, req.Type}

	switch req.Type {
	case request.TypeCancelRestDay:
		where += " AND rest_day_date = $3"
		args = append(args, req.RestDayDate)
	case request.TypeChangeOffSchedule:
		where += " AND original_off_date = $3"
		args = append(args, req.OriginalOffDate)
	case request.TypeRetro:
		where += " AND retro_type = $3 AND retro_date = $4"
		args = append(args, req.RetroType, req.RetroDate)
	default:
		return false, request.ErrUnknownType
	}

	if pendingOnly {
		where += " AND status = 'pending'"
	}

	var exists bool
	err := q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM approval_requests WHERE `+where+`)`, args...).Scan(&exists)
	return exists, err
}

func (r *requestRepositoryImpl) UpdateStatus(ctx context.Context, id string, status request.Status, approvedBy string, approvedAt time.Time, remarks string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE approval_requests
		SET status = $1, approved_by = $2, approved_at = $3, remarks = $4, updated_at = NOW()
		WHERE id = $5
	`

	tag, err := q.Exec(ctx, query, status, approvedBy, approvedAt, remarks, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() != 1 {
		return request.ErrRequestNotFound
	}
	return nil
}

func (r *requestRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM approval_requests WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() != 1 {
		return request.ErrRequestNotFound
	}
	return nil
}

func (r *requestRepositoryImpl) List(ctx context.Context, t request.Type, scope request.Scope, filter request.Filter) ([]request.Request, int64, error) {
	q := GetQuerier(ctx, r.db)

	whereClauses := []string{"ar.type = $1"}
	args := []interface{}{t}
	argIdx := 2

	switch {
	case scope.All:
		// no visibility predicate
	case len(scope.Departments) > 0:
		whereClauses = append(whereClauses, fmt.Sprintf("e.department = ANY($%d)", argIdx))
		args = append(args, scope.Departments)
		argIdx++
	case scope.EmployeeID != "":
		whereClauses = append(whereClauses, fmt.Sprintf("ar.employee_id = $%d", argIdx))
		args = append(args, scope.EmployeeID)
		argIdx++
	default:
		// no scope at all means no visibility
		return []request.Request{}, 0, nil
	}

	if filter.Status != nil && *filter.Status != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("ar.status = $%d", argIdx))
		args = append(args, *filter.Status)
		argIdx++
	}
	if filter.Search != nil && *filter.Search != "" {
		whereClauses = append(whereClauses, fmt.Sprintf(
			"(e.full_name ILIKE $%d OR e.code ILIKE $%d OR e.department ILIKE $%d OR ar.reason ILIKE $%d)",
			argIdx, argIdx, argIdx, argIdx,
		))
		args = append(args, "%"+*filter.Search+"%")
		argIdx++
	}
	if filter.StartDate != nil && *filter.StartDate != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("ar.created_at >= $%d", argIdx))
		args = append(args, *filter.StartDate)
		argIdx++
	}
	if filter.EndDate != nil && *filter.EndDate != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("ar.created_at < ($%d::date + INTERVAL '1 day')", argIdx))
		args = append(args, *filter.EndDate)
		argIdx++
	}

	whereClause := strings.Join(whereClauses, " AND ")

	countQuery := "SELECT COUNT(*)" + requestFromClause + " WHERE " + whereClause
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count approval requests: %w", err)
	}

	orderBy := "ar.created_at"
	switch filter.SortBy {
	case "status":
		orderBy = "ar.status"
	case "employee_name":
		orderBy = "e.full_name"
	case "updated_at":
		orderBy = "ar.updated_at"
	}
	if strings.ToLower(filter.SortOrder) == "asc" {
		orderBy += " ASC"
	} else {
		orderBy += " DESC"
	}

	if filter.Page == 0 {
		filter.Page = 1
	}
	if filter.Limit == 0 {
		filter.Limit = 20
	}
	offset := (filter.Page - 1) * filter.Limit

	query := fmt.Sprintf(`
		SELECT %s %s
		WHERE %s
		ORDER BY %s
		LIMIT $%d OFFSET $%d
	`, requestSelectColumns, requestFromClause, whereClause, orderBy, argIdx, argIdx+1)
	args = append(args, filter.Limit, offset)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query approval requests: %w", err)
	}
	defer rows.Close()

	var requests []request.Request
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan approval request: %w", err)
		}
		requests = append(requests, req)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows iteration error: %w", err)
	}

	return requests, total, nil
}
