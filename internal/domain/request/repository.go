package request

import (
	"context"
	"time"
)

// Scope is the role-derived visibility window applied before any user
// filter: an employee sees own requests, a department manager sees own
// departments, HRD and superadmin see everything.
type Scope struct {
	All         bool
	Departments []string
	EmployeeID  string
}

type Repository interface {
	Create(ctx context.Context, req Request) (Request, error)
	GetByID(ctx context.Context, id string) (Request, error)

	// ExistsDuplicate checks the type's semantically-unique key for req's
	// employee. pendingOnly narrows the match to still-pending rows.
	ExistsDuplicate(ctx context.Context, req Request, pendingOnly bool) (bool, error)

	UpdateStatus(ctx context.Context, id string, status Status, approvedBy string, approvedAt time.Time, remarks string) error
	Delete(ctx context.Context, id string) error

	List(ctx context.Context, t Type, scope Scope, filter Filter) ([]Request, int64, error)
}
