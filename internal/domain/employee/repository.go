package employee

import "context"

type Repository interface {
	Create(ctx context.Context, e Employee) (Employee, error)
	GetByID(ctx context.Context, id string) (Employee, error)
	GetByCode(ctx context.Context, code string) (Employee, error)
	List(ctx context.Context, filter Filter) ([]Employee, int64, error)
	Update(ctx context.Context, req UpdateEmployeeRequest) error
	UpdatePhotoURL(ctx context.Context, id string, url string) error
	Delete(ctx context.Context, id string) error
	CountPendingRequests(ctx context.Context, id string) (int64, error)
}
