package attendance

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/talentindo/hrms-backend-go/internal/domain/attendance"
	"github.com/talentindo/hrms-backend-go/internal/pkg/zkteco"
	"github.com/xuri/excelize/v2"
)

type fakeAttendanceRepo struct {
	attendance.Repository
	batches [][]attendance.Attendance
	punches map[string]attendance.Attendance
}

func (f *fakeAttendanceRepo) Create(_ context.Context, a attendance.Attendance) (attendance.Attendance, error) {
	key := a.EmployeeCode + a.PunchTime.Format(time.RFC3339)
	if _, ok := f.punches[key]; ok {
		return attendance.Attendance{}, attendance.ErrDuplicatePunch
	}
	if f.punches == nil {
		f.punches = map[string]attendance.Attendance{}
	}
	a.ID = key
	f.punches[key] = a
	return a, nil
}

func (f *fakeAttendanceRepo) CreateBatch(_ context.Context, punches []attendance.Attendance) (int, error) {
	f.batches = append(f.batches, punches)
	return len(punches), nil
}

func buildAttendanceSheet(t *testing.T, header []interface{}, rows [][]interface{}) []byte {
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

func TestImportRejectsMissingColumns(t *testing.T) {
	content := buildAttendanceSheet(t, []interface{}{"Employee ID", "Date"}, nil)
	s := &serviceImpl{attendanceRepo: &fakeAttendanceRepo{}}

	_, err := s.Import(context.Background(), "attendance.xlsx", contentTypeXLSX, content)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingColumns)
	assert.Contains(t, err.Error(), "Time In")
	assert.Contains(t, err.Error(), "Time Out")
}

func TestImportParsesPunchesAndCollectsFailures(t *testing.T) {
	content := buildAttendanceSheet(t,
		[]interface{}{"Employee ID", "Date", "Time In", "Time Out"},
		[][]interface{}{
			{"100234", "2026-03-02", "08:01", "17:03"},
			{"100235", "2026-03-02", "08:30", ""},
			{"abc", "2026-03-02", "08:00", "17:00"},
			{"100236", "2026-03-02", "late", "17:00"},
		},
	)

	repo := &fakeAttendanceRepo{}
	s := &serviceImpl{attendanceRepo: repo}

	report, err := s.Import(context.Background(), "attendance.xlsx", contentTypeXLSX, content)
	require.NoError(t, err)

	assert.Equal(t, 2, report.ImportedCount)
	assert.Equal(t, 2, report.FailedCount)
	require.Len(t, report.Failures, 2)
	assert.Equal(t, 4, report.Failures[0].Row)
	assert.Equal(t, 5, report.Failures[1].Row)

	require.Len(t, repo.batches, 1)
	punches := repo.batches[0]
	require.Len(t, punches, 3)
	assert.Equal(t, "100234", punches[0].EmployeeCode)
	assert.Equal(t, attendance.SourceImport, punches[0].Source)
	assert.Equal(t, 8, punches[0].PunchTime.Hour())
	assert.Equal(t, 17, punches[1].PunchTime.Hour())
	assert.Equal(t, "100235", punches[2].EmployeeCode)
}

func TestCreateRecordsManualPunchOnce(t *testing.T) {
	repo := &fakeAttendanceRepo{}
	s := &serviceImpl{attendanceRepo: repo}

	req := attendance.CreatePunchRequest{
		EmployeeCode: "100234",
		PunchTime:    "2026-03-02T08:01:00+07:00",
	}

	punch, err := s.Create(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "100234", punch.EmployeeCode)
	assert.Equal(t, attendance.SourceManual, punch.Source)

	_, err = s.Create(context.Background(), req)
	assert.ErrorIs(t, err, attendance.ErrDuplicatePunch)
}

func TestCreateRejectsBadPunch(t *testing.T) {
	s := &serviceImpl{attendanceRepo: &fakeAttendanceRepo{}}

	_, err := s.Create(context.Background(), attendance.CreatePunchRequest{
		EmployeeCode: "badge-1",
		PunchTime:    "2026-03-02 08:01",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "employee_code")
	assert.Contains(t, err.Error(), "punch_time")
}

func TestFilterPunchesRangeIsDayInclusive(t *testing.T) {
	mk := func(s string) time.Time {
		ts, err := time.Parse("2006-01-02 15:04", s)
		require.NoError(t, err)
		return ts
	}

	log := []zkteco.Punch{
		{UserID: "100234", Timestamp: mk("2026-02-28 23:59")},
		{UserID: "100234", Timestamp: mk("2026-03-01 00:00")},
		{UserID: "100235", Timestamp: mk("2026-03-02 12:30")},
		{UserID: "100235", Timestamp: mk("2026-03-03 23:59")},
		{UserID: "100236", Timestamp: mk("2026-03-04 00:00")},
	}

	start := mk("2026-03-01 00:00")
	end := mk("2026-03-03 00:00")

	punches := filterPunches(log, start, end)
	require.Len(t, punches, 3)
	assert.Equal(t, "100234", punches[0].IDNo)
	assert.Equal(t, "100235", punches[1].IDNo)
	assert.Equal(t, mk("2026-03-03 23:59"), punches[2].PunchTime)
}
