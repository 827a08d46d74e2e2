package department

import "context"

type Repository interface {
	Create(ctx context.Context, d Department) (Department, error)
	GetByID(ctx context.Context, id string) (Department, error)
	GetByName(ctx context.Context, name string) (Department, error)
	List(ctx context.Context) ([]Department, error)
	Rename(ctx context.Context, id string, name string) error
	Delete(ctx context.Context, id string) error
	CountEmployees(ctx context.Context, name string) (int64, error)

	// Manager mapping
	AssignManager(ctx context.Context, userID string, departmentName string) (Manager, error)
	UnassignManager(ctx context.Context, userID string, departmentName string) error
	ListManagers(ctx context.Context, departmentName string) ([]Manager, error)
	ManagedDepartments(ctx context.Context, userID string) ([]string, error)
}
