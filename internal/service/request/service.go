package request

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/talentindo/hrms-backend-go/internal/domain/authz"
	"github.com/talentindo/hrms-backend-go/internal/domain/employee"
	"github.com/talentindo/hrms-backend-go/internal/domain/request"
	"github.com/talentindo/hrms-backend-go/internal/pkg/database"
	"github.com/talentindo/hrms-backend-go/internal/pkg/storage"
	"github.com/talentindo/hrms-backend-go/internal/repository/postgresql"
)

type Service interface {
	Create(ctx context.Context, actorUserID string, req request.CreateRequest) (request.CreateResult, error)
	UpdateStatus(ctx context.Context, actorUserID string, req request.UpdateStatusRequest) (request.Request, error)
	BulkUpdateStatus(ctx context.Context, actorUserID string, req request.BulkUpdateStatusRequest) (request.BulkResult, error)
	Destroy(ctx context.Context, actorUserID string, id string) error
	List(ctx context.Context, actorUserID string, t request.Type, filter request.Filter) ([]request.Request, int64, error)
	Export(ctx context.Context, actorUserID string, t request.Type, filter request.Filter) (string, []byte, error)
}

type serviceImpl struct {
	db           *database.DB
	requestRepo  request.Repository
	employeeRepo employee.Repository
	resolver     authz.Resolver
	storage      storage.FileStorage
}

func NewService(
	db *database.DB,
	requestRepo request.Repository,
	employeeRepo employee.Repository,
	resolver authz.Resolver,
	fileStorage storage.FileStorage,
) Service {
	return &serviceImpl{
		db:           db,
		requestRepo:  requestRepo,
		employeeRepo: employeeRepo,
		resolver:     resolver,
		storage:      fileStorage,
	}
}

// Create files one request per employee in a single transaction. Duplicates
// and unknown employees are soft-skipped with itemized reasons; any other
// error rolls the whole batch back.
func (s *serviceImpl) Create(ctx context.Context, actorUserID string, req request.CreateRequest) (request.CreateResult, error) {
	if err := req.Validate(); err != nil {
		return request.CreateResult{}, err
	}

	policy, err := request.PolicyFor(req.Type)
	if err != nil {
		return request.CreateResult{}, err
	}

	caps, err := s.resolver.Resolve(ctx, actorUserID)
	if err != nil {
		return request.CreateResult{}, err
	}

	var result request.CreateResult
	err = postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		for _, employeeID := range req.EmployeeIDs {
			if _, err := s.employeeRepo.GetByID(txCtx, employeeID); err != nil {
				if errors.Is(err, employee.ErrEmployeeNotFound) {
					result.SkippedCount++
					result.Skips = append(result.Skips, request.SkipDetail{
						EmployeeID: employeeID,
						Reason:     "Employee not found",
					})
					continue
				}
				return err
			}

			proto := req.Prototype()
			proto.EmployeeID = employeeID

			exists, err := s.requestRepo.ExistsDuplicate(txCtx, proto, policy.PendingOnlyDuplicate)
			if err != nil {
				return err
			}
			if exists {
				result.SkippedCount++
				result.Skips = append(result.Skips, request.SkipDetail{
					EmployeeID: employeeID,
					Reason:     fmt.Sprintf("A request with the same %s already exists", policy.DuplicateKeyLabel),
				})
				continue
			}

			if caps.CanAutoApprove() {
				now := time.Now()
				remarks := fmt.Sprintf(request.AutoApprovedRemarkFormat, caps.RoleLabel())
				proto.Status = request.StatusApproved
				proto.ApprovedBy = &actorUserID
				proto.ApprovedAt = &now
				proto.Remarks = &remarks
			}

			created, err := s.requestRepo.Create(txCtx, proto)
			if err != nil {
				return err
			}
			result.CreatedCount++
			result.Created = append(result.Created, created)
		}
		return nil
	})
	if err != nil {
		return request.CreateResult{}, err
	}

	return result, nil
}

// authorizeStatusUpdate applies the decision rules in their fixed order.
// Force approval is exclusively a superadmin action and is normalized to a
// plain approval with a marked remark.
func authorizeStatusUpdate(caps authz.Capabilities, target request.Request, status string, remarks string) (request.Status, string, error) {
	force := status == string(request.StatusForceApproved)

	switch {
	case force && caps.IsSuperAdmin:
		return request.StatusApproved, request.ForceApprovalRemarkPrefix + remarks, nil
	case force:
		return "", "", request.ErrNotAuthorized
	case target.DepartmentName != nil && caps.ManagesDepartment(*target.DepartmentName):
		return request.Status(status), remarks, nil
	case caps.IsHRDManager || caps.IsSuperAdmin:
		return request.Status(status), remarks, nil
	default:
		return "", "", request.ErrNotAuthorized
	}
}

func (s *serviceImpl) UpdateStatus(ctx context.Context, actorUserID string, req request.UpdateStatusRequest) (request.Request, error) {
	if err := req.Validate(); err != nil {
		return request.Request{}, err
	}

	caps, err := s.resolver.Resolve(ctx, actorUserID)
	if err != nil {
		return request.Request{}, err
	}

	target, err := s.requestRepo.GetByID(ctx, req.ID)
	if err != nil {
		return request.Request{}, err
	}
	if target.IsTerminal() {
		return request.Request{}, request.ErrAlreadyProcessed
	}

	status, remarks, err := authorizeStatusUpdate(caps, target, req.Status, req.Remarks)
	if err != nil {
		return request.Request{}, err
	}

	now := time.Now()
	if err := s.requestRepo.UpdateStatus(ctx, req.ID, status, actorUserID, now, remarks); err != nil {
		return request.Request{}, err
	}

	return s.requestRepo.GetByID(ctx, req.ID)
}

// BulkUpdateStatus applies the single-item rule per id inside one
// transaction. Authorization denials and conflicts are recorded as item
// failures and the batch still commits; unexpected errors roll it back.
func (s *serviceImpl) BulkUpdateStatus(ctx context.Context, actorUserID string, req request.BulkUpdateStatusRequest) (request.BulkResult, error) {
	if err := req.Validate(); err != nil {
		return request.BulkResult{}, err
	}

	caps, err := s.resolver.Resolve(ctx, actorUserID)
	if err != nil {
		return request.BulkResult{}, err
	}

	var result request.BulkResult
	err = postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		for _, id := range req.IDs {
			target, err := s.requestRepo.GetByID(txCtx, id)
			if err != nil {
				if errors.Is(err, request.ErrRequestNotFound) {
					result.FailedCount++
					result.Failures = append(result.Failures, request.ItemFailure{
						RequestID: id,
						Reason:    request.ErrRequestNotFound.Error(),
					})
					continue
				}
				return err
			}
			if target.IsTerminal() {
				result.FailedCount++
				result.Failures = append(result.Failures, request.ItemFailure{
					RequestID: id,
					Reason:    request.ErrAlreadyProcessed.Error(),
				})
				continue
			}

			status, remarks, err := authorizeStatusUpdate(caps, target, req.Status, req.Remarks)
			if err != nil {
				result.FailedCount++
				result.Failures = append(result.Failures, request.ItemFailure{
					RequestID: id,
					Reason:    err.Error(),
				})
				continue
			}

			if err := s.requestRepo.UpdateStatus(txCtx, id, status, actorUserID, time.Now(), remarks); err != nil {
				return err
			}
			result.SuccessCount++
		}
		return nil
	})
	if err != nil {
		return request.BulkResult{}, err
	}

	return result, nil
}

func (s *serviceImpl) Destroy(ctx context.Context, actorUserID string, id string) error {
	caps, err := s.resolver.Resolve(ctx, actorUserID)
	if err != nil {
		return err
	}

	target, err := s.requestRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !target.IsPending() {
		return request.ErrNotPending
	}

	allowed := caps.IsSuperAdmin ||
		caps.IsHRDManager ||
		(caps.IsEmployee && caps.EmployeeID == target.EmployeeID) ||
		(target.DepartmentName != nil && caps.ManagesDepartment(*target.DepartmentName))
	if !allowed {
		return request.ErrNotAuthorized
	}

	return s.requestRepo.Delete(ctx, id)
}

// scopeFor maps capabilities to the visibility window applied before any
// user-supplied filter.
func scopeFor(caps authz.Capabilities) request.Scope {
	switch {
	case caps.IsSuperAdmin || caps.IsHRDManager:
		return request.Scope{All: true}
	case caps.IsDepartmentManager:
		return request.Scope{Departments: caps.ManagedDepartments}
	case caps.IsEmployee:
		return request.Scope{EmployeeID: caps.EmployeeID}
	default:
		return request.Scope{}
	}
}

func (s *serviceImpl) List(ctx context.Context, actorUserID string, t request.Type, filter request.Filter) ([]request.Request, int64, error) {
	if _, err := request.PolicyFor(t); err != nil {
		return nil, 0, err
	}
	if err := filter.Validate(); err != nil {
		return nil, 0, err
	}

	caps, err := s.resolver.Resolve(ctx, actorUserID)
	if err != nil {
		return nil, 0, err
	}

	return s.requestRepo.List(ctx, t, scopeFor(caps), filter)
}
