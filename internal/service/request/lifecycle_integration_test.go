package request

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/talentindo/hrms-backend-go/internal/domain/request"
	"github.com/talentindo/hrms-backend-go/internal/pkg/database"
	"github.com/talentindo/hrms-backend-go/internal/repository/postgresql"
	authzservice "github.com/talentindo/hrms-backend-go/internal/service/authz"
)

var testRequestDB *database.DB

func requestTestInit(t *testing.T) {
	if testRequestDB != nil {
		return
	}
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	var err error
	testRequestDB, err = database.NewPostgreSQLDB(dsn)
	if err != nil {
		panic("Failed to connect to test database: " + err.Error())
	}
}

func truncateRequestTables(t *testing.T, ctx context.Context) {
	tables := []string{"approval_requests", "department_managers", "user_roles", "users", "employees"}

	for _, table := range tables {
		_, err := testRequestDB.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table))
		if err != nil {
			// Some tables might not exist, skip
			continue
		}
	}
}

func newTestService(t *testing.T) Service {
	requestTestInit(t)

	userRepo := postgresql.NewUserRepository(testRequestDB)
	departmentRepo := postgresql.NewDepartmentRepository(testRequestDB)
	employeeRepo := postgresql.NewEmployeeRepository(testRequestDB)
	requestRepo := postgresql.NewRequestRepository(testRequestDB)
	resolver := authzservice.NewResolver(userRepo, departmentRepo)

	return NewService(testRequestDB, requestRepo, employeeRepo, resolver, nil)
}

func seedTestEmployee(t *testing.T, ctx context.Context, fullName, dept string) string {
	code := fmt.Sprintf("%d", time.Now().UnixNano()%1_000_000_000)
	var id string
	err := testRequestDB.QueryRow(ctx, `
		INSERT INTO employees (id, code, full_name, department, position, job_status, hire_date, created_at, updated_at)
		VALUES (uuidv7(), $1, $2, $3, 'Staff', 'active', '2024-01-01', NOW(), NOW())
		RETURNING id
	`, code, fullName, dept).Scan(&id)
	require.NoError(t, err)
	return id
}

func seedTestUser(t *testing.T, ctx context.Context, name, email string, legacyID int64) string {
	var id string
	err := testRequestDB.QueryRow(ctx, `
		INSERT INTO users (id, legacy_id, name, email, created_at, updated_at)
		VALUES (uuidv7(), $1, $2, $3, NOW(), NOW())
		RETURNING id
	`, legacyID, name, fmt.Sprintf("%d-%s", time.Now().UnixNano(), email)).Scan(&id)
	require.NoError(t, err)
	return id
}

func seedTestManager(t *testing.T, ctx context.Context, userID, departmentName string) {
	_, err := testRequestDB.Exec(ctx, `
		INSERT INTO department_managers (id, user_id, department_name, created_at)
		VALUES (uuidv7(), $1, $2, NOW())
	`, userID, departmentName)
	require.NoError(t, err)
}

func TestRequestLifecycle_CreateAutoApprovesForAdmin(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	truncateRequestTables(t, ctx)

	adminID := seedTestUser(t, ctx, "System Administrator", "admin@test.local", 1)
	empID := seedTestEmployee(t, ctx, "Maria Santos", "Engineering")

	result, err := svc.Create(ctx, adminID, request.CreateRequest{
		Type:                request.TypeCancelRestDay,
		EmployeeIDs:         []string{empID},
		Reason:              "project deadline",
		RestDayDate:         "2026-03-14",
		ReplacementWorkDate: "2026-03-16",
	})
	require.NoError(t, err)
	require.Equal(t, 1, result.CreatedCount)
	require.Len(t, result.Created, 1)

	created := result.Created[0]
	assert.Equal(t, request.StatusApproved, created.Status)
	require.NotNil(t, created.Remarks)
	assert.Equal(t, "Auto-approved: Filed by Superadmin", *created.Remarks)
	require.NotNil(t, created.ApprovedBy)
	assert.Equal(t, adminID, *created.ApprovedBy)
}

func TestRequestLifecycle_DuplicateStrictnessPerType(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	truncateRequestTables(t, ctx)

	adminID := seedTestUser(t, ctx, "System Administrator", "admin@test.local", 1)
	empID := seedTestEmployee(t, ctx, "Maria Santos", "Engineering")

	// cancel_rest_day: an already-approved match still blocks a refile.
	first, err := svc.Create(ctx, adminID, request.CreateRequest{
		Type:                request.TypeCancelRestDay,
		EmployeeIDs:         []string{empID},
		Reason:              "project deadline",
		RestDayDate:         "2026-03-14",
		ReplacementWorkDate: "2026-03-16",
	})
	require.NoError(t, err)
	require.Equal(t, 1, first.CreatedCount)
	assert.Equal(t, request.StatusApproved, first.Created[0].Status)

	second, err := svc.Create(ctx, adminID, request.CreateRequest{
		Type:                request.TypeCancelRestDay,
		EmployeeIDs:         []string{empID},
		Reason:              "retry",
		RestDayDate:         "2026-03-14",
		ReplacementWorkDate: "2026-03-16",
	})
	require.NoError(t, err)
	assert.Equal(t, 0, second.CreatedCount)
	require.Equal(t, 1, second.SkippedCount)
	assert.Contains(t, second.Skips[0].Reason, "rest day date")

	// The key is the rest day alone; offering a different replacement day does
	// not make it a new request.
	reworded, err := svc.Create(ctx, adminID, request.CreateRequest{
		Type:                request.TypeCancelRestDay,
		EmployeeIDs:         []string{empID},
		Reason:              "retry with another replacement day",
		RestDayDate:         "2026-03-14",
		ReplacementWorkDate: "2026-03-20",
	})
	require.NoError(t, err)
	assert.Equal(t, 0, reworded.CreatedCount)
	require.Equal(t, 1, reworded.SkippedCount)
	assert.Contains(t, reworded.Skips[0].Reason, "rest day date")

	// retro: only a still-pending match blocks, so an approved one does not.
	amount := 1500.0
	retro, err := svc.Create(ctx, adminID, request.CreateRequest{
		Type:        request.TypeRetro,
		EmployeeIDs: []string{empID},
		Reason:      "missed meal allowance",
		RetroType:   "meal",
		RetroDate:   "2026-02-10",
		Amount:      &amount,
	})
	require.NoError(t, err)
	require.Equal(t, 1, retro.CreatedCount)
	assert.Equal(t, request.StatusApproved, retro.Created[0].Status)

	retroAgain, err := svc.Create(ctx, adminID, request.CreateRequest{
		Type:        request.TypeRetro,
		EmployeeIDs: []string{empID},
		Reason:      "refile after approval",
		RetroType:   "meal",
		RetroDate:   "2026-02-10",
		Amount:      &amount,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, retroAgain.CreatedCount)
	assert.Equal(t, 0, retroAgain.SkippedCount)
}

func TestRequestLifecycle_EmployeeFilesPendingAndCannotApprove(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	truncateRequestTables(t, ctx)

	empID := seedTestEmployee(t, ctx, "Maria Santos", "Engineering")

	selfID := seedTestUser(t, ctx, "Maria Santos", "maria@test.local", 20)
	_, err := testRequestDB.Exec(ctx, `UPDATE users SET employee_id = $1 WHERE id = $2`, empID, selfID)
	require.NoError(t, err)

	result, err := svc.Create(ctx, selfID, request.CreateRequest{
		Type:             request.TypeChangeOffSchedule,
		EmployeeIDs:      []string{empID},
		Reason:           "family event",
		OriginalOffDate:  "2026-04-05",
		RequestedOffDate: "2026-04-07",
	})
	require.NoError(t, err)
	require.Equal(t, 1, result.CreatedCount)
	created := result.Created[0]
	assert.Equal(t, request.StatusPending, created.Status)

	_, err = svc.UpdateStatus(ctx, selfID, request.UpdateStatusRequest{
		ID:     created.ID,
		Status: string(request.StatusApproved),
	})
	assert.ErrorIs(t, err, request.ErrNotAuthorized)

	// The filer may still withdraw the pending request.
	require.NoError(t, svc.Destroy(ctx, selfID, created.ID))
}

func TestRequestLifecycle_BulkUpdateCommitsAuthorizedItems(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	truncateRequestTables(t, ctx)

	filerID := seedTestUser(t, ctx, "Juan Cruz", "juan@test.local", 10)
	managerID := seedTestUser(t, ctx, "Elena Reyes", "elena@test.local", 11)
	seedTestManager(t, ctx, managerID, "Engineering")

	engEmpID := seedTestEmployee(t, ctx, "Maria Santos", "Engineering")
	finEmpID := seedTestEmployee(t, ctx, "Carlos Tan", "Finance")

	filed, err := svc.Create(ctx, filerID, request.CreateRequest{
		Type:                request.TypeCancelRestDay,
		EmployeeIDs:         []string{engEmpID, finEmpID},
		Reason:              "inventory weekend",
		RestDayDate:         "2026-05-09",
		ReplacementWorkDate: "2026-05-11",
	})
	require.NoError(t, err)
	require.Equal(t, 2, filed.CreatedCount)
	engReqID := filed.Created[0].ID
	finReqID := filed.Created[1].ID

	// The Engineering manager may decide only the Engineering request; the
	// Finance one and the unknown id become itemized failures while the batch
	// still commits.
	missingID := "00000000-0000-0000-0000-000000000000"
	result, err := svc.BulkUpdateStatus(ctx, managerID, request.BulkUpdateStatusRequest{
		IDs:    []string{engReqID, finReqID, missingID},
		Status: string(request.StatusApproved),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, result.SuccessCount)
	assert.Equal(t, 2, result.FailedCount)
	require.Len(t, result.Failures, 2)
	assert.Equal(t, finReqID, result.Failures[0].RequestID)
	assert.Equal(t, request.ErrNotAuthorized.Error(), result.Failures[0].Reason)
	assert.Equal(t, missingID, result.Failures[1].RequestID)
	assert.Equal(t, request.ErrRequestNotFound.Error(), result.Failures[1].Reason)

	repo := postgresql.NewRequestRepository(testRequestDB)
	engReq, err := repo.GetByID(ctx, engReqID)
	require.NoError(t, err)
	assert.Equal(t, request.StatusApproved, engReq.Status)
	require.NotNil(t, engReq.ApprovedBy)
	assert.Equal(t, managerID, *engReq.ApprovedBy)

	finReq, err := repo.GetByID(ctx, finReqID)
	require.NoError(t, err)
	assert.Equal(t, request.StatusPending, finReq.Status)
}

func TestRequestLifecycle_DestroyRefusedOnceProcessed(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	truncateRequestTables(t, ctx)

	adminID := seedTestUser(t, ctx, "System Administrator", "admin@test.local", 1)
	empID := seedTestEmployee(t, ctx, "Maria Santos", "Engineering")

	result, err := svc.Create(ctx, adminID, request.CreateRequest{
		Type:                request.TypeCancelRestDay,
		EmployeeIDs:         []string{empID},
		Reason:              "project deadline",
		RestDayDate:         "2026-03-14",
		ReplacementWorkDate: "2026-03-16",
	})
	require.NoError(t, err)
	created := result.Created[0]
	require.Equal(t, request.StatusApproved, created.Status)

	err = svc.Destroy(ctx, adminID, created.ID)
	assert.ErrorIs(t, err, request.ErrNotPending)
}
