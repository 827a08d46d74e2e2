package postgresql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/talentindo/hrms-backend-go/internal/domain/department"
	"github.com/talentindo/hrms-backend-go/internal/pkg/database"
)

type departmentRepositoryImpl struct {
	db *database.DB
}

func NewDepartmentRepository(db *database.DB) department.Repository {
	return &departmentRepositoryImpl{db: db}
}

func (r *departmentRepositoryImpl) Create(ctx context.Context, d department.Department) (department.Department, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO departments (id, name, created_at, updated_at)
		VALUES (uuidv7(), $1, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query, d.Name).Scan(&d.ID, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return department.Department{}, department.ErrDepartmentExists
		}
		return department.Department{}, err
	}

	return d, nil
}

func (r *departmentRepositoryImpl) GetByID(ctx context.Context, id string) (department.Department, error) {
	q := GetQuerier(ctx, r.db)

	var d department.Department
	err := q.QueryRow(ctx,
		`SELECT id, name, created_at, updated_at FROM departments WHERE id = $1`, id,
	).Scan(&d.ID, &d.Name, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return department.Department{}, department.ErrDepartmentNotFound
		}
		return department.Department{}, err
	}
	return d, nil
}

func (r *departmentRepositoryImpl) GetByName(ctx context.Context, name string) (department.Department, error) {
	q := GetQuerier(ctx, r.db)

	var d department.Department
	err := q.QueryRow(ctx,
		`SELECT id, name, created_at, updated_at FROM departments WHERE name = $1`, name,
	).Scan(&d.ID, &d.Name, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return department.Department{}, department.ErrDepartmentNotFound
		}
		return department.Department{}, err
	}
	return d, nil
}

func (r *departmentRepositoryImpl) List(ctx context.Context) ([]department.Department, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT id, name, created_at, updated_at FROM departments ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var departments []department.Department
	for rows.Next() {
		var d department.Department
		if err := rows.Scan(&d.ID, &d.Name, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, err
		}
		departments = append(departments, d)
	}
	return departments, rows.Err()
}

func (r *departmentRepositoryImpl) Rename(ctx context.Context, id string, name string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `UPDATE departments SET name = $1, updated_at = NOW() WHERE id = $2`, name, id)
	if err != nil {
		if isUniqueViolation(err) {
			return department.ErrDepartmentExists
		}
		return err
	}
	if tag.RowsAffected() != 1 {
		return department.ErrDepartmentNotFound
	}
	return nil
}

func (r *departmentRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM departments WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() != 1 {
		return department.ErrDepartmentNotFound
	}
	return nil
}

func (r *departmentRepositoryImpl) CountEmployees(ctx context.Context, name string) (int64, error) {
	q := GetQuerier(ctx, r.db)

	var count int64
	err := q.QueryRow(ctx, `SELECT COUNT(*) FROM employees WHERE department = $1`, name).Scan(&count)
	return count, err
}

func (r *departmentRepositoryImpl) AssignManager(ctx context.Context, userID string, departmentName string) (department.Manager, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO department_managers (id, user_id, department_name, created_at)
		VALUES (uuidv7(), $1, $2, NOW())
		RETURNING id, created_at
	`

	m := department.Manager{UserID: userID, DepartmentName: departmentName}
	err := q.QueryRow(ctx, query, userID, departmentName).Scan(&m.ID, &m.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return department.Manager{}, department.ErrMappingExists
		}
		return department.Manager{}, err
	}

	return m, nil
}

func (r *departmentRepositoryImpl) UnassignManager(ctx context.Context, userID string, departmentName string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx,
		`DELETE FROM department_managers WHERE user_id = $1 AND department_name = $2`,
		userID, departmentName,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return department.ErrMappingNotFound
	}
	return nil
}

func (r *departmentRepositoryImpl) ListManagers(ctx context.Context, departmentName string) ([]department.Manager, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT dm.id, dm.user_id, dm.department_name, dm.created_at, u.name
		FROM department_managers dm
		INNER JOIN users u ON dm.user_id = u.id
		WHERE dm.department_name = $1
		ORDER BY u.name
	`

	rows, err := q.Query(ctx, query, departmentName)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var managers []department.Manager
	for rows.Next() {
		var m department.Manager
		var managerName string
		if err := rows.Scan(&m.ID, &m.UserID, &m.DepartmentName, &m.CreatedAt, &managerName); err != nil {
			return nil, err
		}
		m.ManagerName = &managerName
		managers = append(managers, m)
	}
	return managers, rows.Err()
}

func (r *departmentRepositoryImpl) ManagedDepartments(ctx context.Context, userID string) ([]string, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx,
		`SELECT department_name FROM department_managers WHERE user_id = $1 ORDER BY department_name`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}
