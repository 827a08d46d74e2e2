package department

import (
	"context"

	"github.com/talentindo/hrms-backend-go/internal/domain/department"
	"github.com/talentindo/hrms-backend-go/internal/domain/user"
)

type Service interface {
	Create(ctx context.Context, req department.CreateDepartmentRequest) (department.Department, error)
	List(ctx context.Context) ([]department.Department, error)
	Rename(ctx context.Context, req department.RenameDepartmentRequest) (department.Department, error)
	Delete(ctx context.Context, id string) error

	AssignManager(ctx context.Context, req department.AssignManagerRequest) (department.Manager, error)
	UnassignManager(ctx context.Context, userID string, departmentName string) error
	ListManagers(ctx context.Context, departmentName string) ([]department.Manager, error)
}

type serviceImpl struct {
	departmentRepo department.Repository
	userRepo       user.Repository
}

func NewService(departmentRepo department.Repository, userRepo user.Repository) Service {
	return &serviceImpl{
		departmentRepo: departmentRepo,
		userRepo:       userRepo,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req department.CreateDepartmentRequest) (department.Department, error) {
	if err := req.Validate(); err != nil {
		return department.Department{}, err
	}
	return s.departmentRepo.Create(ctx, department.Department{Name: req.Name})
}

func (s *serviceImpl) List(ctx context.Context) ([]department.Department, error) {
	return s.departmentRepo.List(ctx)
}

func (s *serviceImpl) Rename(ctx context.Context, req department.RenameDepartmentRequest) (department.Department, error) {
	if err := req.Validate(); err != nil {
		return department.Department{}, err
	}
	if err := s.departmentRepo.Rename(ctx, req.ID, req.Name); err != nil {
		return department.Department{}, err
	}
	return s.departmentRepo.GetByID(ctx, req.ID)
}

// Delete is refused while employees are still assigned to the department.
func (s *serviceImpl) Delete(ctx context.Context, id string) error {
	d, err := s.departmentRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	count, err := s.departmentRepo.CountEmployees(ctx, d.Name)
	if err != nil {
		return err
	}
	if count > 0 {
		return department.ErrDepartmentNotEmpty
	}

	return s.departmentRepo.Delete(ctx, id)
}

// AssignManager records the mapping row the capability resolver reads. Both
// sides are verified to exist first.
func (s *serviceImpl) AssignManager(ctx context.Context, req department.AssignManagerRequest) (department.Manager, error) {
	if err := req.Validate(); err != nil {
		return department.Manager{}, err
	}

	if _, err := s.userRepo.GetByID(ctx, req.UserID); err != nil {
		return department.Manager{}, err
	}
	if _, err := s.departmentRepo.GetByName(ctx, req.DepartmentName); err != nil {
		return department.Manager{}, err
	}

	return s.departmentRepo.AssignManager(ctx, req.UserID, req.DepartmentName)
}

func (s *serviceImpl) UnassignManager(ctx context.Context, userID string, departmentName string) error {
	return s.departmentRepo.UnassignManager(ctx, userID, departmentName)
}

func (s *serviceImpl) ListManagers(ctx context.Context, departmentName string) ([]department.Manager, error) {
	return s.departmentRepo.ListManagers(ctx, departmentName)
}
