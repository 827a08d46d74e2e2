package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/talentindo/hrms-backend-go/internal/domain/attendance"
	"github.com/talentindo/hrms-backend-go/internal/handler/http/response"
	attendanceservice "github.com/talentindo/hrms-backend-go/internal/service/attendance"
)

type AttendanceHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Import(w http.ResponseWriter, r *http.Request)
	PullFromDevice(w http.ResponseWriter, r *http.Request)
}

type AttendanceHandlerImpl struct {
	attendanceService attendanceservice.Service
}

func NewAttendanceHandler(attendanceService attendanceservice.Service) AttendanceHandler {
	return &AttendanceHandlerImpl{attendanceService: attendanceService}
}

func (h *AttendanceHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var filter attendance.Filter
	if v := q.Get("employee_code"); v != "" {
		filter.EmployeeCode = &v
	}
	if v := q.Get("start_date"); v != "" {
		filter.StartDate = &v
	}
	if v := q.Get("end_date"); v != "" {
		filter.EndDate = &v
	}
	filter.Page, _ = strconv.Atoi(q.Get("page"))
	filter.Limit, _ = strconv.Atoi(q.Get("limit"))

	punches, total, err := h.attendanceService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, punches, response.NewMeta(filter.Page, filter.Limit, total))
}

func (h *AttendanceHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req attendance.CreatePunchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	punch, err := h.attendanceService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Punch recorded", punch)
}

func (h *AttendanceHandlerImpl) Import(w http.ResponseWriter, r *http.Request) {
	filename, contentType, content, err := readUpload(r)
	if err != nil {
		response.BadRequest(w, "Invalid file upload", nil)
		return
	}

	report, err := h.attendanceService.Import(r.Context(), filename, contentType, content)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Import processed", report)
}

func (h *AttendanceHandlerImpl) PullFromDevice(w http.ResponseWriter, r *http.Request) {
	var req attendance.DevicePullRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	punches, err := h.attendanceService.PullFromDevice(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, punches)
}
