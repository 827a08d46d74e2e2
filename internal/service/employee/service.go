package employee

import (
	"context"
	"time"

	"github.com/talentindo/hrms-backend-go/internal/domain/employee"
)

type Service interface {
	Create(ctx context.Context, req employee.CreateEmployeeRequest) (employee.Employee, error)
	GetByID(ctx context.Context, id string) (employee.Employee, error)
	List(ctx context.Context, filter employee.Filter) ([]employee.Employee, int64, error)
	Update(ctx context.Context, req employee.UpdateEmployeeRequest) (employee.Employee, error)
	Delete(ctx context.Context, id string) error

	Import(ctx context.Context, filename string, contentType string, content []byte) (employee.ImportReport, error)
	Export(ctx context.Context, filter employee.Filter) (string, []byte, error)
}

type serviceImpl struct {
	employeeRepo employee.Repository
}

func NewService(employeeRepo employee.Repository) Service {
	return &serviceImpl{employeeRepo: employeeRepo}
}

func (s *serviceImpl) Create(ctx context.Context, req employee.CreateEmployeeRequest) (employee.Employee, error) {
	if err := req.Validate(); err != nil {
		return employee.Employee{}, err
	}

	hireDate, _ := time.Parse("2006-01-02", req.HireDate)
	return s.employeeRepo.Create(ctx, employee.Employee{
		Code:       req.Code,
		FullName:   req.FullName,
		Department: req.Department,
		Position:   req.Position,
		JobStatus:  employee.JobStatusActive,
		HireDate:   hireDate,
	})
}

func (s *serviceImpl) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	return s.employeeRepo.GetByID(ctx, id)
}

func (s *serviceImpl) List(ctx context.Context, filter employee.Filter) ([]employee.Employee, int64, error) {
	return s.employeeRepo.List(ctx, filter)
}

func (s *serviceImpl) Update(ctx context.Context, req employee.UpdateEmployeeRequest) (employee.Employee, error) {
	if err := req.Validate(); err != nil {
		return employee.Employee{}, err
	}
	if err := s.employeeRepo.Update(ctx, req); err != nil {
		return employee.Employee{}, err
	}
	return s.employeeRepo.GetByID(ctx, req.ID)
}

// Delete is refused while the employee still has requests awaiting a
// decision, so pending workflow rows never lose their subject.
func (s *serviceImpl) Delete(ctx context.Context, id string) error {
	pending, err := s.employeeRepo.CountPendingRequests(ctx, id)
	if err != nil {
		return err
	}
	if pending > 0 {
		return employee.ErrHasPendingRequests
	}
	return s.employeeRepo.Delete(ctx, id)
}
