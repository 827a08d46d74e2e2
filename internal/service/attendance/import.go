package attendance

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/talentindo/hrms-backend-go/internal/domain/attendance"
	"github.com/talentindo/hrms-backend-go/internal/pkg/validator"
	"github.com/xuri/excelize/v2"
)

const (
	contentTypeXLSX      = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	contentTypeLegacyXLS = "application/vnd.ms-excel"
)

var (
	ErrUnsupportedFileType = errors.New("File must be an Excel spreadsheet")
	ErrMissingColumns      = errors.New("Spreadsheet is missing required columns")
)

var importColumns = []string{"Employee ID", "Date", "Time In", "Time Out"}

func validateHeader(header []string) []string {
	present := make(map[string]bool, len(header))
	for _, h := range header {
		present[strings.ToLower(strings.TrimSpace(h))] = true
	}

	var missing []string
	for _, col := range importColumns {
		if !present[strings.ToLower(col)] {
			missing = append(missing, col)
		}
	}
	return missing
}

func columnIndex(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}

	out := make(map[string]int, len(importColumns))
	for _, col := range importColumns {
		out[col] = idx[strings.ToLower(col)]
	}
	return out
}

func cellAt(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// parseRow turns one spreadsheet row into punches. Time Out is optional;
// when present it becomes a second punch on the same date.
func parseRow(code, date, timeIn, timeOut string) ([]attendance.Attendance, []string) {
	var messages []string

	if !validator.IsValidEmployeeCode(code) {
		messages = append(messages, "Employee ID must be 1-9 digits")
	}
	day, ok := validator.IsValidDate(date)
	if !ok {
		messages = append(messages, "Date must be a valid date (YYYY-MM-DD)")
	}

	parseClock := func(field, value string) (time.Time, bool) {
		t, err := time.Parse("15:04", value)
		if err != nil {
			messages = append(messages, field+" must be a valid time (HH:MM)")
			return time.Time{}, false
		}
		return t, true
	}

	in, inOK := parseClock("Time In", timeIn)
	var out time.Time
	outOK := false
	if timeOut != "" {
		out, outOK = parseClock("Time Out", timeOut)
	}

	if len(messages) > 0 || !ok || !inOK {
		return nil, messages
	}

	at := func(clock time.Time) time.Time {
		return time.Date(day.Year(), day.Month(), day.Day(), clock.Hour(), clock.Minute(), 0, 0, time.Local)
	}

	punches := []attendance.Attendance{
		{EmployeeCode: code, PunchTime: at(in), Source: attendance.SourceImport},
	}
	if outOK {
		punches = append(punches, attendance.Attendance{
			EmployeeCode: code, PunchTime: at(out), Source: attendance.SourceImport,
		})
	}
	return punches, nil
}

// Import reads an uploaded attendance workbook. Failed rows are collected,
// valid rows are inserted in one batch.
func (s *serviceImpl) Import(ctx context.Context, filename string, contentType string, content []byte) (attendance.ImportReport, error) {
	if contentType != contentTypeXLSX && contentType != contentTypeLegacyXLS {
		return attendance.ImportReport{}, ErrUnsupportedFileType
	}

	f, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		return attendance.ImportReport{}, ErrUnsupportedFileType
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return attendance.ImportReport{}, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return attendance.ImportReport{}, ErrMissingColumns
	}

	if missing := validateHeader(rows[0]); len(missing) > 0 {
		return attendance.ImportReport{}, fmt.Errorf("%w: %s", ErrMissingColumns, strings.Join(missing, ", "))
	}
	cols := columnIndex(rows[0])

	var report attendance.ImportReport
	var punches []attendance.Attendance
	for i, row := range rows[1:] {
		rowNum := i + 2

		parsed, messages := parseRow(
			cellAt(row, cols["Employee ID"]),
			cellAt(row, cols["Date"]),
			cellAt(row, cols["Time In"]),
			cellAt(row, cols["Time Out"]),
		)
		if len(messages) > 0 {
			report.FailedCount++
			report.Failures = append(report.Failures, attendance.RowError{Row: rowNum, Messages: messages})
			continue
		}
		punches = append(punches, parsed...)
		report.ImportedCount++
	}

	if len(punches) > 0 {
		if _, err := s.attendanceRepo.CreateBatch(ctx, punches); err != nil {
			return attendance.ImportReport{}, err
		}
	}

	return report, nil
}
