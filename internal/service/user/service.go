package user

import (
	"context"
	"errors"

	"github.com/talentindo/hrms-backend-go/internal/domain/authz"
	"github.com/talentindo/hrms-backend-go/internal/domain/employee"
	"github.com/talentindo/hrms-backend-go/internal/domain/user"
	authservice "github.com/talentindo/hrms-backend-go/internal/service/auth"
)

// Service is the account administration surface. Every operation is
// superadmin-only; the resolver decides that per call, never a token claim.
type Service interface {
	Create(ctx context.Context, actorUserID string, req user.CreateUserRequest) (user.User, error)
	AssignRole(ctx context.Context, actorUserID string, userID string, role string) error
	RemoveRole(ctx context.Context, actorUserID string, userID string, role string) error
}

type serviceImpl struct {
	userRepo     user.Repository
	employeeRepo employee.Repository
	resolver     authz.Resolver
}

func NewService(userRepo user.Repository, employeeRepo employee.Repository, resolver authz.Resolver) Service {
	return &serviceImpl{
		userRepo:     userRepo,
		employeeRepo: employeeRepo,
		resolver:     resolver,
	}
}

func (s *serviceImpl) requireSuperAdmin(ctx context.Context, actorUserID string) error {
	caps, err := s.resolver.Resolve(ctx, actorUserID)
	if err != nil {
		return err
	}
	if !caps.IsSuperAdmin {
		return user.ErrNotAuthorized
	}
	return nil
}

// Create provisions an account. A badge number links it to an active
// employee; resigned or terminated employees do not get accounts, and an
// employee can back at most one account.
func (s *serviceImpl) Create(ctx context.Context, actorUserID string, req user.CreateUserRequest) (user.User, error) {
	if err := req.Validate(); err != nil {
		return user.User{}, err
	}
	if err := s.requireSuperAdmin(ctx, actorUserID); err != nil {
		return user.User{}, err
	}

	if _, err := s.userRepo.GetByEmail(ctx, req.Email); err == nil {
		return user.User{}, user.ErrEmailExists
	} else if !errors.Is(err, user.ErrUserNotFound) {
		return user.User{}, err
	}

	u := user.User{
		Name:  req.Name,
		Email: req.Email,
	}

	if req.EmployeeCode != "" {
		e, err := s.employeeRepo.GetByCode(ctx, req.EmployeeCode)
		if err != nil {
			return user.User{}, err
		}
		if !e.IsActive() {
			return user.User{}, employee.ErrEmployeeInactive
		}
		if _, err := s.userRepo.GetByEmployeeID(ctx, e.ID); err == nil {
			return user.User{}, user.ErrEmployeeLinked
		} else if !errors.Is(err, user.ErrUserNotFound) {
			return user.User{}, err
		}
		u.EmployeeID = &e.ID
	}

	if req.Password != "" {
		hash, err := authservice.HashPassword(req.Password)
		if err != nil {
			return user.User{}, err
		}
		u.PasswordHash = &hash
	}

	return s.userRepo.Create(ctx, u)
}

func (s *serviceImpl) AssignRole(ctx context.Context, actorUserID string, userID string, role string) error {
	if err := s.requireSuperAdmin(ctx, actorUserID); err != nil {
		return err
	}
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return err
	}
	return s.userRepo.AssignRole(ctx, userID, role)
}

func (s *serviceImpl) RemoveRole(ctx context.Context, actorUserID string, userID string, role string) error {
	if err := s.requireSuperAdmin(ctx, actorUserID); err != nil {
		return err
	}
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return err
	}
	return s.userRepo.RemoveRole(ctx, userID, role)
}
