package user

import (
	"strings"
	"time"
)

// Role names carried in the user_roles join table.
const (
	RoleSuperAdmin = "superadmin"
	RoleHRDManager = "hrd_manager"
)

type User struct {
	ID           string
	LegacyID     int64 // numeric id carried over from the previous system
	Name         string
	Email        string
	PasswordHash *string

	OAuthProvider   *string
	OAuthProviderID *string

	EmployeeID *string

	Roles []string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasRole reports exact-name role membership.
func (u *User) HasRole(name string) bool {
	for _, r := range u.Roles {
		if strings.EqualFold(r, name) {
			return true
		}
	}
	return false
}

// IsEmployee reports whether the account is linked to an employee record.
func (u *User) IsEmployee() bool {
	return u.EmployeeID != nil && *u.EmployeeID != ""
}
