package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/talentindo/hrms-backend-go/internal/domain/attendance"
	"github.com/talentindo/hrms-backend-go/internal/pkg/database"
)

type attendanceRepositoryImpl struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.Repository {
	return &attendanceRepositoryImpl{db: db}
}

func (r *attendanceRepositoryImpl) Create(ctx context.Context, a attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendances (id, employee_code, punch_time, source, device_serial, created_at)
		VALUES (uuidv7(), $1, $2, $3, $4, NOW())
		ON CONFLICT (employee_code, punch_time) DO NOTHING
		RETURNING id, created_at
	`

	err := q.QueryRow(ctx, query,
		a.EmployeeCode, a.PunchTime, a.Source, a.DeviceSerial,
	).Scan(&a.ID, &a.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return attendance.Attendance{}, attendance.ErrDuplicatePunch
		}
		return attendance.Attendance{}, err
	}

	return a, nil
}

// CreateBatch inserts punches with pgx's batch pipeline. Duplicate punches
// are skipped silently; the returned count covers actually-inserted rows.
func (r *attendanceRepositoryImpl) CreateBatch(ctx context.Context, punches []attendance.Attendance) (int, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendances (id, employee_code, punch_time, source, device_serial, created_at)
		VALUES (uuidv7(), $1, $2, $3, $4, NOW())
		ON CONFLICT (employee_code, punch_time) DO NOTHING
	`

	batch := &pgx.Batch{}
	for _, p := range punches {
		batch.Queue(query, p.EmployeeCode, p.PunchTime, p.Source, p.DeviceSerial)
	}

	results := q.SendBatch(ctx, batch)
	defer results.Close()

	inserted := 0
	for range punches {
		tag, err := results.Exec()
		if err != nil {
			return inserted, fmt.Errorf("failed to insert attendance batch: %w", err)
		}
		inserted += int(tag.RowsAffected())
	}

	return inserted, nil
}

func (r *attendanceRepositoryImpl) List(ctx context.Context, filter attendance.Filter) ([]attendance.Attendance, int64, error) {
	q := GetQuerier(ctx, r.db)

	whereClauses := []string{"1=1"}
	args := []interface{}{}
	argIdx := 1

	if filter.EmployeeCode != nil && *filter.EmployeeCode != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("a.employee_code = $%d", argIdx))
		args = append(args, *filter.EmployeeCode)
		argIdx++
	}
	if filter.StartDate != nil && *filter.StartDate != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("a.punch_time >= $%d", argIdx))
		args = append(args, *filter.StartDate)
		argIdx++
	}
	if filter.EndDate != nil && *filter.EndDate != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("a.punch_time < ($%d::date + INTERVAL '1 day')", argIdx))
		args = append(args, *filter.EndDate)
		argIdx++
	}

	whereClause := strings.Join(whereClauses, " AND ")

	countQuery := `SELECT COUNT(*) FROM attendances a WHERE ` + whereClause
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count attendances: %w", err)
	}

	if filter.Page == 0 {
		filter.Page = 1
	}
	if filter.Limit == 0 {
		filter.Limit = 50
	}
	offset := (filter.Page - 1) * filter.Limit

	query := fmt.Sprintf(`
		SELECT a.id, a.employee_code, a.punch_time, a.source, a.device_serial, a.created_at, e.full_name
		FROM attendances a
		LEFT JOIN employees e ON a.employee_code = e.code
		WHERE %s
		ORDER BY a.punch_time DESC
		LIMIT $%d OFFSET $%d
	`, whereClause, argIdx, argIdx+1)
	args = append(args, filter.Limit, offset)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query attendances: %w", err)
	}
	defer rows.Close()

	var punches []attendance.Attendance
	for rows.Next() {
		var a attendance.Attendance
		if err := rows.Scan(&a.ID, &a.EmployeeCode, &a.PunchTime, &a.Source, &a.DeviceSerial, &a.CreatedAt, &a.EmployeeName); err != nil {
			return nil, 0, fmt.Errorf("failed to scan attendance: %w", err)
		}
		punches = append(punches, a)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows iteration error: %w", err)
	}

	return punches, total, nil
}
