package employee

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/talentindo/hrms-backend-go/internal/domain/employee"
	"github.com/xuri/excelize/v2"
)

type fakeEmployeeRepo struct {
	employee.Repository
	byCode  map[string]employee.Employee
	created []employee.Employee
}

func newFakeEmployeeRepo() *fakeEmployeeRepo {
	return &fakeEmployeeRepo{byCode: map[string]employee.Employee{}}
}

func (f *fakeEmployeeRepo) Create(_ context.Context, e employee.Employee) (employee.Employee, error) {
	if _, ok := f.byCode[e.Code]; ok {
		return employee.Employee{}, employee.ErrEmployeeCodeExists
	}
	e.ID = "emp-" + e.Code
	f.byCode[e.Code] = e
	f.created = append(f.created, e)
	return e, nil
}

func buildImportSheet(t *testing.T, header []interface{}, rows [][]interface{}) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &header))
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	return buf.Bytes()
}

func TestValidateHeader(t *testing.T) {
	missing := validateHeader(
		[]string{"Employee ID", "full name", " Department "},
		importColumns,
	)
	assert.Equal(t, []string{"Position", "Hire Date"}, missing)

	missing = validateHeader(
		[]string{"Employee ID", "Full Name", "Department", "Position", "Hire Date"},
		importColumns,
	)
	assert.Empty(t, missing)
}

func TestImportRejectsWrongContentType(t *testing.T) {
	s := &serviceImpl{employeeRepo: newFakeEmployeeRepo()}

	_, err := s.Import(context.Background(), "employees.csv", "text/csv", nil)
	assert.ErrorIs(t, err, ErrUnsupportedFileType)
}

func TestImportRejectsMissingColumns(t *testing.T) {
	content := buildImportSheet(t, []interface{}{"Employee ID", "Full Name"}, nil)
	s := &serviceImpl{employeeRepo: newFakeEmployeeRepo()}

	_, err := s.Import(context.Background(), "employees.xlsx", contentTypeXLSX, content)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingColumns)
	assert.Contains(t, err.Error(), "Department")
	assert.Contains(t, err.Error(), "Hire Date")
}

func TestImportCollectsRowFailures(t *testing.T) {
	content := buildImportSheet(t,
		[]interface{}{"Employee ID", "Full Name", "Department", "Position", "Hire Date"},
		[][]interface{}{
			{"100234", "Maria Santos", "Engineering", "Developer", "2024-06-01"},
			{"", "No Badge", "Engineering", "Developer", "2024-06-01"},
			{"100235", "Bad Date", "Engineering", "Developer", "yesterday"},
			{"100234", "Duplicate Badge", "Finance", "Analyst", "2024-07-01"},
			{"100236", "Carlos Tan", "Operations", "Lead", "2023-01-15"},
		},
	)

	repo := newFakeEmployeeRepo()
	s := &serviceImpl{employeeRepo: repo}

	report, err := s.Import(context.Background(), "employees.xlsx", contentTypeXLSX, content)
	require.NoError(t, err)

	assert.Equal(t, 2, report.ImportedCount)
	assert.Equal(t, 3, report.FailedCount)
	require.Len(t, report.Failures, 3)
	assert.Equal(t, 3, report.Failures[0].Row)
	assert.Equal(t, 4, report.Failures[1].Row)
	assert.Equal(t, 5, report.Failures[2].Row)
	assert.Contains(t, report.Failures[2].Messages[0], "already exists")

	require.Len(t, repo.created, 2)
	assert.Equal(t, "Maria Santos", repo.created[0].FullName)
	assert.Equal(t, employee.JobStatusActive, repo.created[0].JobStatus)
}
