package request

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/talentindo/hrms-backend-go/internal/domain/authz"
	"github.com/talentindo/hrms-backend-go/internal/domain/request"
)

func strPtr(s string) *string { return &s }

func TestAuthorizeStatusUpdateForceApproval(t *testing.T) {
	target := request.Request{DepartmentName: strPtr("Engineering")}

	status, remarks, err := authorizeStatusUpdate(
		authz.Capabilities{IsSuperAdmin: true},
		target, string(request.StatusForceApproved), "approved off-cycle",
	)
	require.NoError(t, err)
	assert.Equal(t, request.StatusApproved, status)
	assert.Equal(t, "Administrative override: approved off-cycle", remarks)
}

func TestAuthorizeStatusUpdateForceDeniedForNonSuperadmin(t *testing.T) {
	target := request.Request{DepartmentName: strPtr("Engineering")}

	for _, caps := range []authz.Capabilities{
		{IsHRDManager: true},
		{IsDepartmentManager: true, ManagedDepartments: []string{"Engineering"}},
		{IsEmployee: true, EmployeeID: "emp-1"},
	} {
		_, _, err := authorizeStatusUpdate(caps, target, string(request.StatusForceApproved), "")
		assert.ErrorIs(t, err, request.ErrNotAuthorized)
	}
}

func TestAuthorizeStatusUpdateDepartmentManager(t *testing.T) {
	caps := authz.Capabilities{IsDepartmentManager: true, ManagedDepartments: []string{"Engineering"}}

	status, remarks, err := authorizeStatusUpdate(
		caps,
		request.Request{DepartmentName: strPtr("Engineering")},
		string(request.StatusRejected), "schedule conflict",
	)
	require.NoError(t, err)
	assert.Equal(t, request.StatusRejected, status)
	assert.Equal(t, "schedule conflict", remarks)

	_, _, err = authorizeStatusUpdate(
		caps,
		request.Request{DepartmentName: strPtr("Finance")},
		string(request.StatusApproved), "",
	)
	assert.ErrorIs(t, err, request.ErrNotAuthorized)
}

func TestAuthorizeStatusUpdateHRDAndSuperadmin(t *testing.T) {
	target := request.Request{DepartmentName: strPtr("Finance")}

	for _, caps := range []authz.Capabilities{
		{IsHRDManager: true},
		{IsSuperAdmin: true},
	} {
		status, _, err := authorizeStatusUpdate(caps, target, string(request.StatusApproved), "ok")
		require.NoError(t, err)
		assert.Equal(t, request.StatusApproved, status)
	}
}

func TestAuthorizeStatusUpdateEmployeeDenied(t *testing.T) {
	caps := authz.Capabilities{IsEmployee: true, EmployeeID: "emp-1"}

	_, _, err := authorizeStatusUpdate(
		caps,
		request.Request{EmployeeID: "emp-1", DepartmentName: strPtr("Engineering")},
		string(request.StatusApproved), "",
	)
	assert.ErrorIs(t, err, request.ErrNotAuthorized)
}

func TestScopeFor(t *testing.T) {
	assert.True(t, scopeFor(authz.Capabilities{IsSuperAdmin: true}).All)
	assert.True(t, scopeFor(authz.Capabilities{IsHRDManager: true}).All)

	deptScope := scopeFor(authz.Capabilities{
		IsDepartmentManager: true,
		ManagedDepartments:  []string{"Engineering"},
	})
	assert.False(t, deptScope.All)
	assert.Equal(t, []string{"Engineering"}, deptScope.Departments)

	empScope := scopeFor(authz.Capabilities{IsEmployee: true, EmployeeID: "emp-1"})
	assert.Equal(t, "emp-1", empScope.EmployeeID)

	assert.Equal(t, request.Scope{}, scopeFor(authz.Capabilities{}))
}

func TestExportPayloadColumns(t *testing.T) {
	assert.Equal(t, [2]string{"Rest Day Date", "Replacement Work Date"}, exportPayloadColumns(request.TypeCancelRestDay))
	assert.Equal(t, [2]string{"Original Off Date", "Requested Off Date"}, exportPayloadColumns(request.TypeChangeOffSchedule))
	assert.Equal(t, [2]string{"Retro Type", "Retro Date"}, exportPayloadColumns(request.TypeRetro))
}

func TestBuildWorkbook(t *testing.T) {
	restDay := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	replacement := time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC)

	requests := []request.Request{
		{
			ID:                  "req-1",
			Type:                request.TypeCancelRestDay,
			EmployeeID:          "emp-1",
			EmployeeCode:        strPtr("100234"),
			EmployeeName:        strPtr("Maria Santos"),
			DepartmentName:      strPtr("Engineering"),
			RestDayDate:         &restDay,
			ReplacementWorkDate: &replacement,
			Reason:              "project deadline",
			Status:              request.StatusPending,
			CreatedAt:           time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
		},
	}

	buf, err := buildWorkbook(request.TypeCancelRestDay, requests)
	require.NoError(t, err)
	assert.Greater(t, buf.Len(), 0)
}
