package employee

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/talentindo/hrms-backend-go/internal/domain/employee"
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

var importColumns = []string{"Employee ID", "Full Name", "Department", "Position", "Hire Date"}

// validateHeader matches the first row against the fixed column list and
// returns the names that are absent.
func validateHeader(header []string, required []string) []string {
	present := make(map[string]bool, len(header))
	for _, h := range header {
		present[strings.ToLower(strings.TrimSpace(h))] = true
	}

	var missing []string
	for _, col := range required {
		if !present[strings.ToLower(col)] {
			missing = append(missing, col)
		}
	}
	return missing
}

// columnIndex maps required column names to their position in the header.
func columnIndex(header []string, required []string) map[string]int {
	idx := make(map[string]int, len(required))
	for i, h := range header {
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}

	out := make(map[string]int, len(required))
	for _, col := range required {
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

// Import reads the uploaded workbook row by row. Row failures are collected
// into the report and never abort the rest of the file.
func (s *serviceImpl) Import(ctx context.Context, filename string, contentType string, content []byte) (employee.ImportReport, error) {
	if contentType != contentTypeXLSX && contentType != contentTypeLegacyXLS {
		return employee.ImportReport{}, ErrUnsupportedFileType
	}

	f, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		return employee.ImportReport{}, ErrUnsupportedFileType
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return employee.ImportReport{}, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return employee.ImportReport{}, ErrMissingColumns
	}

	if missing := validateHeader(rows[0], importColumns); len(missing) > 0 {
		return employee.ImportReport{}, fmt.Errorf("%w: %s", ErrMissingColumns, strings.Join(missing, ", "))
	}
	cols := columnIndex(rows[0], importColumns)

	var report employee.ImportReport
	for i, row := range rows[1:] {
		rowNum := i + 2 // 1-based, after the header

		req := employee.CreateEmployeeRequest{
			Code:       cellAt(row, cols["Employee ID"]),
			FullName:   cellAt(row, cols["Full Name"]),
			Department: cellAt(row, cols["Department"]),
			Position:   cellAt(row, cols["Position"]),
			HireDate:   cellAt(row, cols["Hire Date"]),
		}

		if err := req.Validate(); err != nil {
			var verrs validator.ValidationErrors
			messages := []string{err.Error()}
			if errors.As(err, &verrs) {
				messages = messages[:0]
				for _, ve := range verrs {
					messages = append(messages, ve.Message)
				}
			}
			report.FailedCount++
			report.Failures = append(report.Failures, employee.RowError{Row: rowNum, Messages: messages})
			continue
		}

		hireDate, _ := time.Parse("2006-01-02", req.HireDate)
		_, err := s.employeeRepo.Create(ctx, employee.Employee{
			Code:       req.Code,
			FullName:   req.FullName,
			Department: req.Department,
			Position:   req.Position,
			JobStatus:  employee.JobStatusActive,
			HireDate:   hireDate,
		})
		if err != nil {
			if errors.Is(err, employee.ErrEmployeeCodeExists) {
				report.FailedCount++
				report.Failures = append(report.Failures, employee.RowError{
					Row:      rowNum,
					Messages: []string{employee.ErrEmployeeCodeExists.Error()},
				})
				continue
			}
			return report, err
		}
		report.ImportedCount++
	}

	return report, nil
}

// Export renders the filtered employee list to an xlsx workbook.
func (s *serviceImpl) Export(ctx context.Context, filter employee.Filter) (string, []byte, error) {
	filter.Page = 1
	filter.Limit = 100000

	employees, _, err := s.employeeRepo.List(ctx, filter)
	if err != nil {
		return "", nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Employees"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return "", nil, err
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return "", nil, err
	}

	header := []interface{}{"Employee ID", "Full Name", "Department", "Position", "Job Status", "Hire Date"}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return "", nil, err
	}

	for i, e := range employees {
		row := []interface{}{
			e.Code, e.FullName, e.Department, e.Position,
			string(e.JobStatus), e.HireDate.Format("2006-01-02"),
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return "", nil, err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return "", nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return "", nil, err
	}

	filename := fmt.Sprintf("employees_%s.xlsx", time.Now().Format("20060102_150405"))
	return filename, buf.Bytes(), nil
}
