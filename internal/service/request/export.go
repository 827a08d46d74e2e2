package request

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/talentindo/hrms-backend-go/internal/domain/request"
	"github.com/xuri/excelize/v2"
)

const exportSheet = "Requests"

// exportPayloadColumns names the two type-specific columns between
// Department and Reason.
func exportPayloadColumns(t request.Type) [2]string {
	switch t {
	case request.TypeCancelRestDay:
		return [2]string{"Rest Day Date", "Replacement Work Date"}
	case request.TypeChangeOffSchedule:
		return [2]string{"Original Off Date", "Requested Off Date"}
	default:
		return [2]string{"Retro Type", "Retro Date"}
	}
}

func exportPayloadValues(req request.Request) [2]string {
	switch req.Type {
	case request.TypeCancelRestDay:
		return [2]string{formatDate(req.RestDayDate), formatDate(req.ReplacementWorkDate)}
	case request.TypeChangeOffSchedule:
		return [2]string{formatDate(req.OriginalOffDate), formatDate(req.RequestedOffDate)}
	default:
		return [2]string{deref(req.RetroType), formatDate(req.RetroDate)}
	}
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// buildWorkbook renders the rows into the fixed per-type column layout.
func buildWorkbook(t request.Type, requests []request.Request) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			slog.Error("failed to close workbook", "error", err)
		}
	}()

	index, err := f.NewSheet(exportSheet)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}

	payload := exportPayloadColumns(t)
	header := []interface{}{
		"ID", "Employee ID", "Employee Name", "Department",
		payload[0], payload[1],
		"Reason", "Status", "Approved By", "Approved Date", "Remarks", "Created Date",
	}
	if err := f.SetSheetRow(exportSheet, "A1", &header); err != nil {
		return nil, err
	}

	for i, req := range requests {
		values := exportPayloadValues(req)
		row := []interface{}{
			req.ID, deref(req.EmployeeCode), deref(req.EmployeeName), deref(req.DepartmentName),
			values[0], values[1],
			req.Reason, string(req.Status), deref(req.ApproverName), formatDate(req.ApprovedAt),
			deref(req.Remarks), req.CreatedAt.Format("2006-01-02"),
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(exportSheet, cell, &row); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf, nil
}

// Export renders the actor-visible rows to an xlsx workbook. The file is
// staged in storage so interrupted downloads can be cleaned up, then removed
// after the bytes are handed to the caller.
func (s *serviceImpl) Export(ctx context.Context, actorUserID string, t request.Type, filter request.Filter) (string, []byte, error) {
	// Exports are unpaginated within the visibility scope.
	filter.Page = 1
	filter.Limit = 100000

	requests, _, err := s.List(ctx, actorUserID, t, filter)
	if err != nil {
		return "", nil, err
	}

	buf, err := buildWorkbook(t, requests)
	if err != nil {
		return "", nil, fmt.Errorf("failed to build export workbook: %w", err)
	}
	content := buf.Bytes()

	filename := fmt.Sprintf("%s_requests_%s.xlsx", t, time.Now().Format("20060102_150405"))
	path := fmt.Sprintf("exports/%s_%s", uuid.NewString(), filename)

	if _, err := s.storage.Upload(ctx, bytes.NewReader(content), path,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"); err != nil {
		return "", nil, fmt.Errorf("failed to stage export file: %w", err)
	}
	defer func() {
		if err := s.storage.Delete(ctx, path); err != nil {
			slog.Error("failed to clean up export file", "path", path, "error", err)
		}
	}()

	return filename, content, nil
}
