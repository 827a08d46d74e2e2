package department

import "time"

type Department struct {
	ID        string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Manager is one row of the manager-to-department mapping table. Department
// manager capability is derived from these rows only, never from roles.
type Manager struct {
	ID             string
	UserID         string
	DepartmentName string
	CreatedAt      time.Time

	// Join field for listings
	ManagerName *string
}
