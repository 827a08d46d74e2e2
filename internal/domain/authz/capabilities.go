package authz

import "context"

// Capabilities is the ad-hoc capability set the approval workflows branch on.
// It is always derived from data at request time, never from token claims.
type Capabilities struct {
	IsSuperAdmin        bool
	IsHRDManager        bool
	IsDepartmentManager bool
	IsEmployee          bool

	// EmployeeID is set when the user is linked to an employee record.
	EmployeeID string

	// ManagedDepartments lists the department names a department manager may
	// act on. Empty unless IsDepartmentManager.
	ManagedDepartments []string
}

// RoleLabel names the strongest role for audit remarks
// ("Auto-approved: Filed by Superadmin").
func (c Capabilities) RoleLabel() string {
	switch {
	case c.IsSuperAdmin:
		return "Superadmin"
	case c.IsHRDManager:
		return "HRD Manager"
	case c.IsDepartmentManager:
		return "Department Manager"
	default:
		return "Employee"
	}
}

// CanAutoApprove reports whether requests filed by this actor skip pending.
func (c Capabilities) CanAutoApprove() bool {
	return c.IsSuperAdmin || c.IsHRDManager
}

// ManagesDepartment reports whether the department name is in the actor's
// managed set.
func (c Capabilities) ManagesDepartment(name string) bool {
	for _, d := range c.ManagedDepartments {
		if d == name {
			return true
		}
	}
	return false
}

// Resolver resolves the capability set for a user. Implementations must be
// read-only and must degrade missing data to false rather than failing.
type Resolver interface {
	Resolve(ctx context.Context, userID string) (Capabilities, error)
}
