package postgresql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/talentindo/hrms-backend-go/internal/domain/user"
	"github.com/talentindo/hrms-backend-go/internal/pkg/database"
)

type userRepositoryImpl struct {
	db *database.DB
}

func NewUserRepository(db *database.DB) user.Repository {
	return &userRepositoryImpl{db: db}
}

func (r *userRepositoryImpl) Create(ctx context.Context, u user.User) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO users (
			id, legacy_id, name, email, password_hash,
			oauth_provider, oauth_provider_id, employee_id,
			created_at, updated_at
		) VALUES (
			uuidv7(), $1, $2, $3, $4,
			$5, $6, $7,
			NOW(), NOW()
		) RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		u.LegacyID, u.Name, u.Email, u.PasswordHash,
		u.OAuthProvider, u.OAuthProviderID, u.EmployeeID,
	).Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return user.User{}, err
	}

	return u, nil
}

const userSelectColumns = `
	u.id, u.legacy_id, u.name, u.email, u.password_hash,
	u.oauth_provider, u.oauth_provider_id, u.employee_id,
	u.created_at, u.updated_at
`

func (r *userRepositoryImpl) getOne(ctx context.Context, where string, arg interface{}) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + userSelectColumns + ` FROM users u WHERE ` + where

	var u user.User
	err := q.QueryRow(ctx, query, arg).Scan(
		&u.ID, &u.LegacyID, &u.Name, &u.Email, &u.PasswordHash,
		&u.OAuthProvider, &u.OAuthProviderID, &u.EmployeeID,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, err
	}

	roles, err := r.getRoles(ctx, u.ID)
	if err != nil {
		return user.User{}, err
	}
	u.Roles = roles

	return u, nil
}

func (r *userRepositoryImpl) GetByID(ctx context.Context, id string) (user.User, error) {
	return r.getOne(ctx, "u.id = $1", id)
}

func (r *userRepositoryImpl) GetByEmail(ctx context.Context, email string) (user.User, error) {
	return r.getOne(ctx, "LOWER(u.email) = LOWER($1)", email)
}

func (r *userRepositoryImpl) GetByEmployeeID(ctx context.Context, employeeID string) (user.User, error) {
	return r.getOne(ctx, "u.employee_id = $1", employeeID)
}

func (r *userRepositoryImpl) getRoles(ctx context.Context, userID string) ([]string, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ro.name
		FROM user_roles ur
		INNER JOIN roles ro ON ur.role_id = ro.id
		WHERE ur.user_id = $1
		ORDER BY ro.name
	`

	rows, err := q.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var roles []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		roles = append(roles, name)
	}

	return roles, rows.Err()
}

func (r *userRepositoryImpl) AssignRole(ctx context.Context, userID string, role string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO user_roles (id, user_id, role_id, created_at)
		SELECT uuidv7(), $1, ro.id, NOW()
		FROM roles ro
		WHERE ro.name = $2
		ON CONFLICT (user_id, role_id) DO NOTHING
	`

	tag, err := q.Exec(ctx, query, userID, role)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		// Either the role name does not exist or the assignment is already
		// present; distinguish for the caller.
		var exists bool
		if err := q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM roles WHERE name = $1)`, role).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return user.ErrRoleNotFound
		}
		return user.ErrAlreadyInRole
	}
	return nil
}

func (r *userRepositoryImpl) RemoveRole(ctx context.Context, userID string, role string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		DELETE FROM user_roles ur
		USING roles ro
		WHERE ur.role_id = ro.id AND ur.user_id = $1 AND ro.name = $2
	`

	_, err := q.Exec(ctx, query, userID, role)
	return err
}
