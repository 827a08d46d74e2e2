package user

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/talentindo/hrms-backend-go/internal/domain/authz"
	"github.com/talentindo/hrms-backend-go/internal/domain/employee"
	"github.com/talentindo/hrms-backend-go/internal/domain/user"
	"golang.org/x/crypto/bcrypt"
)

type fakeUserRepo struct {
	user.Repository
	byEmail      map[string]user.User
	byEmployeeID map[string]user.User
	byID         map[string]user.User
	created      []user.User
	assigned     []string
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byEmail:      map[string]user.User{},
		byEmployeeID: map[string]user.User{},
		byID:         map[string]user.User{},
	}
}

func (f *fakeUserRepo) Create(_ context.Context, u user.User) (user.User, error) {
	u.ID = "user-" + u.Email
	f.created = append(f.created, u)
	f.byEmail[u.Email] = u
	f.byID[u.ID] = u
	return u, nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (user.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (user.User, error) {
	u, ok := f.byEmail[email]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) GetByEmployeeID(_ context.Context, employeeID string) (user.User, error) {
	u, ok := f.byEmployeeID[employeeID]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) AssignRole(_ context.Context, userID string, role string) error {
	f.assigned = append(f.assigned, userID+":"+role)
	return nil
}

type fakeEmployeeRepo struct {
	employee.Repository
	byCode map[string]employee.Employee
}

func (f *fakeEmployeeRepo) GetByCode(_ context.Context, code string) (employee.Employee, error) {
	e, ok := f.byCode[code]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}

type fakeResolver struct {
	caps authz.Capabilities
}

func (f *fakeResolver) Resolve(context.Context, string) (authz.Capabilities, error) {
	return f.caps, nil
}

func newTestService(caps authz.Capabilities, userRepo *fakeUserRepo, employeeRepo *fakeEmployeeRepo) Service {
	if userRepo == nil {
		userRepo = newFakeUserRepo()
	}
	if employeeRepo == nil {
		employeeRepo = &fakeEmployeeRepo{byCode: map[string]employee.Employee{}}
	}
	return NewService(userRepo, employeeRepo, &fakeResolver{caps: caps})
}

func TestCreate_RequiresSuperAdmin(t *testing.T) {
	s := newTestService(authz.Capabilities{IsHRDManager: true}, nil, nil)

	_, err := s.Create(context.Background(), "actor", user.CreateUserRequest{
		Name:  "Juan Cruz",
		Email: "juan@example.com",
	})
	assert.ErrorIs(t, err, user.ErrNotAuthorized)
}

func TestCreate_HashesPasswordAndLinksEmployee(t *testing.T) {
	userRepo := newFakeUserRepo()
	employeeRepo := &fakeEmployeeRepo{byCode: map[string]employee.Employee{
		"100234": {ID: "emp-1", Code: "100234", JobStatus: employee.JobStatusActive},
	}}
	s := newTestService(authz.Capabilities{IsSuperAdmin: true}, userRepo, employeeRepo)

	created, err := s.Create(context.Background(), "actor", user.CreateUserRequest{
		Name:         "Maria Santos",
		Email:        "maria@example.com",
		Password:     "correct horse",
		EmployeeCode: "100234",
	})
	require.NoError(t, err)

	require.NotNil(t, created.EmployeeID)
	assert.Equal(t, "emp-1", *created.EmployeeID)
	require.NotNil(t, created.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(*created.PasswordHash), []byte("correct horse")))
}

func TestCreate_RejectsTakenEmail(t *testing.T) {
	userRepo := newFakeUserRepo()
	userRepo.byEmail["maria@example.com"] = user.User{ID: "user-1"}
	s := newTestService(authz.Capabilities{IsSuperAdmin: true}, userRepo, nil)

	_, err := s.Create(context.Background(), "actor", user.CreateUserRequest{
		Name:  "Maria Santos",
		Email: "maria@example.com",
	})
	assert.ErrorIs(t, err, user.ErrEmailExists)
}

func TestCreate_RejectsInactiveEmployee(t *testing.T) {
	employeeRepo := &fakeEmployeeRepo{byCode: map[string]employee.Employee{
		"100234": {ID: "emp-1", Code: "100234", JobStatus: employee.JobStatusResigned},
	}}
	s := newTestService(authz.Capabilities{IsSuperAdmin: true}, nil, employeeRepo)

	_, err := s.Create(context.Background(), "actor", user.CreateUserRequest{
		Name:         "Maria Santos",
		Email:        "maria@example.com",
		EmployeeCode: "100234",
	})
	assert.ErrorIs(t, err, employee.ErrEmployeeInactive)
}

func TestCreate_RejectsDoubleLinkedEmployee(t *testing.T) {
	userRepo := newFakeUserRepo()
	userRepo.byEmployeeID["emp-1"] = user.User{ID: "user-1"}
	employeeRepo := &fakeEmployeeRepo{byCode: map[string]employee.Employee{
		"100234": {ID: "emp-1", Code: "100234", JobStatus: employee.JobStatusActive},
	}}
	s := newTestService(authz.Capabilities{IsSuperAdmin: true}, userRepo, employeeRepo)

	_, err := s.Create(context.Background(), "actor", user.CreateUserRequest{
		Name:         "Maria Santos",
		Email:        "maria2@example.com",
		EmployeeCode: "100234",
	})
	assert.ErrorIs(t, err, user.ErrEmployeeLinked)
}

func TestAssignRole_UnknownUser(t *testing.T) {
	s := newTestService(authz.Capabilities{IsSuperAdmin: true}, nil, nil)

	err := s.AssignRole(context.Background(), "actor", "missing", user.RoleHRDManager)
	assert.ErrorIs(t, err, user.ErrUserNotFound)
}

func TestAssignRole_DelegatesToRepository(t *testing.T) {
	userRepo := newFakeUserRepo()
	userRepo.byID["user-1"] = user.User{ID: "user-1"}
	s := newTestService(authz.Capabilities{IsSuperAdmin: true}, userRepo, nil)

	require.NoError(t, s.AssignRole(context.Background(), "actor", "user-1", user.RoleHRDManager))
	assert.Equal(t, []string{"user-1:" + user.RoleHRDManager}, userRepo.assigned)
}
