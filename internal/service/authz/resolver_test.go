package authz

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/talentindo/hrms-backend-go/internal/domain/department"
	"github.com/talentindo/hrms-backend-go/internal/domain/user"
)

type fakeUserRepo struct {
	users map[string]user.User
}

func (f *fakeUserRepo) Create(_ context.Context, u user.User) (user.User, error) { return u, nil }

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (user.User, error) {
	u, ok := f.users[id]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, _ string) (user.User, error) {
	return user.User{}, user.ErrUserNotFound
}

func (f *fakeUserRepo) GetByEmployeeID(_ context.Context, _ string) (user.User, error) {
	return user.User{}, user.ErrUserNotFound
}

func (f *fakeUserRepo) AssignRole(_ context.Context, _, _ string) error { return nil }
func (f *fakeUserRepo) RemoveRole(_ context.Context, _, _ string) error { return nil }

type fakeDepartmentRepo struct {
	department.Repository
	managed map[string][]string
}

func (f *fakeDepartmentRepo) ManagedDepartments(_ context.Context, userID string) ([]string, error) {
	return f.managed[userID], nil
}

func newResolver(users []user.User, managed map[string][]string) *resolverImpl {
	byID := make(map[string]user.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}
	if managed == nil {
		managed = map[string][]string{}
	}
	return &resolverImpl{
		userRepo:       &fakeUserRepo{users: byID},
		departmentRepo: &fakeDepartmentRepo{managed: managed},
	}
}

func TestResolveRoleTableWins(t *testing.T) {
	r := newResolver([]user.User{
		{ID: "u1", LegacyID: 42, Name: "Jane Cruz", Email: "jane@example.com", Roles: []string{user.RoleSuperAdmin}},
		{ID: "u2", LegacyID: 43, Name: "Paolo Reyes", Email: "paolo@example.com", Roles: []string{user.RoleHRDManager}},
	}, nil)

	caps, err := r.Resolve(context.Background(), "u1")
	require.NoError(t, err)
	assert.True(t, caps.IsSuperAdmin)
	assert.False(t, caps.IsHRDManager)

	caps, err = r.Resolve(context.Background(), "u2")
	require.NoError(t, err)
	assert.False(t, caps.IsSuperAdmin)
	assert.True(t, caps.IsHRDManager)
}

func TestResolveLegacyNameHeuristics(t *testing.T) {
	tests := []struct {
		name         string
		u            user.User
		isSuperAdmin bool
		isHRDManager bool
	}{
		{
			name:         "admin substring in name",
			u:            user.User{ID: "u1", LegacyID: 9, Name: "System Administrator", Email: "sys@example.com"},
			isSuperAdmin: true,
		},
		{
			name:         "first legacy account",
			u:            user.User{ID: "u1", LegacyID: 1, Name: "Root", Email: "root@example.com"},
			isSuperAdmin: true,
		},
		{
			name:         "hrd substring in name",
			u:            user.User{ID: "u1", LegacyID: 7, Name: "HRD Staff", Email: "staff@example.com"},
			isHRDManager: true,
		},
		{
			name:         "hrd substring in email",
			u:            user.User{ID: "u1", LegacyID: 8, Name: "Maria Santos", Email: "hrd@example.com"},
			isHRDManager: true,
		},
		{
			name: "plain account",
			u:    user.User{ID: "u1", LegacyID: 10, Name: "Maria Santos", Email: "maria@example.com"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newResolver([]user.User{tt.u}, nil)
			caps, err := r.Resolve(context.Background(), "u1")
			require.NoError(t, err)
			assert.Equal(t, tt.isSuperAdmin, caps.IsSuperAdmin)
			assert.Equal(t, tt.isHRDManager, caps.IsHRDManager)
		})
	}
}

func TestResolveDepartmentManagerFromMappingOnly(t *testing.T) {
	r := newResolver([]user.User{
		{ID: "u1", LegacyID: 5, Name: "Carlos Tan", Email: "carlos@example.com"},
	}, map[string][]string{
		"u1": {"Engineering", "Operations"},
	})

	caps, err := r.Resolve(context.Background(), "u1")
	require.NoError(t, err)
	assert.True(t, caps.IsDepartmentManager)
	assert.Equal(t, []string{"Engineering", "Operations"}, caps.ManagedDepartments)
	assert.True(t, caps.ManagesDepartment("Engineering"))
	assert.False(t, caps.ManagesDepartment("Finance"))
}

func TestResolveEmployeeLink(t *testing.T) {
	empID := "emp-1"
	r := newResolver([]user.User{
		{ID: "u1", LegacyID: 5, Name: "Carlos Tan", Email: "carlos@example.com", EmployeeID: &empID},
	}, nil)

	caps, err := r.Resolve(context.Background(), "u1")
	require.NoError(t, err)
	assert.True(t, caps.IsEmployee)
	assert.Equal(t, "emp-1", caps.EmployeeID)
}

func TestResolveUnknownUserDegradesToNoCapabilities(t *testing.T) {
	r := newResolver(nil, nil)

	caps, err := r.Resolve(context.Background(), "missing")
	require.NoError(t, err)
	assert.Equal(t, "Employee", caps.RoleLabel())
	assert.False(t, caps.IsSuperAdmin)
	assert.False(t, caps.IsHRDManager)
	assert.False(t, caps.IsDepartmentManager)
	assert.False(t, caps.IsEmployee)
}

func TestRoleLabelPrecedence(t *testing.T) {
	r := newResolver([]user.User{
		{ID: "u1", LegacyID: 1, Name: "HRD Admin", Email: "hrd@example.com"},
	}, map[string][]string{"u1": {"Engineering"}})

	caps, err := r.Resolve(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "Superadmin", caps.RoleLabel())
	assert.True(t, caps.CanAutoApprove())
}
