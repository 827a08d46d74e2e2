package http

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/talentindo/hrms-backend-go/internal/domain/employee"
	"github.com/talentindo/hrms-backend-go/internal/handler/http/response"
	employeeservice "github.com/talentindo/hrms-backend-go/internal/service/employee"
	fileservice "github.com/talentindo/hrms-backend-go/internal/service/file"
)

const maxUploadSize = 10 << 20 // 10 MiB

type EmployeeHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	Import(w http.ResponseWriter, r *http.Request)
	Export(w http.ResponseWriter, r *http.Request)
	UploadPhoto(w http.ResponseWriter, r *http.Request)
}

type EmployeeHandlerImpl struct {
	employeeService employeeservice.Service
	fileService     fileservice.Service
}

func NewEmployeeHandler(employeeService employeeservice.Service, fileService fileservice.Service) EmployeeHandler {
	return &EmployeeHandlerImpl{
		employeeService: employeeService,
		fileService:     fileService,
	}
}

func (h *EmployeeHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req employee.CreateEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	created, err := h.employeeService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Employee created", created)
}

func (h *EmployeeHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	e, err := h.employeeService.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, e)
}

func (h *EmployeeHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var filter employee.Filter
	if v := q.Get("search"); v != "" {
		filter.Search = &v
	}
	if v := q.Get("department"); v != "" {
		filter.Department = &v
	}
	if v := q.Get("job_status"); v != "" {
		filter.JobStatus = &v
	}
	filter.Page, _ = strconv.Atoi(q.Get("page"))
	filter.Limit, _ = strconv.Atoi(q.Get("limit"))
	filter.SortBy = q.Get("sort_by")
	filter.SortOrder = q.Get("sort_order")

	employees, total, err := h.employeeService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, employees, response.NewMeta(filter.Page, filter.Limit, total))
}

func (h *EmployeeHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req employee.UpdateEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	updated, err := h.employeeService.Update(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Employee updated", updated)
}

func (h *EmployeeHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.employeeService.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Employee deleted", nil)
}

// readUpload pulls the "file" part out of a multipart form.
func readUpload(r *http.Request) (string, string, []byte, error) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		return "", "", nil, err
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		return "", "", nil, err
	}
	defer file.Close()

	content, err := io.ReadAll(io.LimitReader(file, maxUploadSize))
	if err != nil {
		return "", "", nil, err
	}

	return header.Filename, header.Header.Get("Content-Type"), content, nil
}

func (h *EmployeeHandlerImpl) Import(w http.ResponseWriter, r *http.Request) {
	filename, contentType, content, err := readUpload(r)
	if err != nil {
		response.BadRequest(w, "Invalid file upload", nil)
		return
	}

	report, err := h.employeeService.Import(r.Context(), filename, contentType, content)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Import processed", report)
}

func (h *EmployeeHandlerImpl) Export(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var filter employee.Filter
	if v := q.Get("department"); v != "" {
		filter.Department = &v
	}
	if v := q.Get("job_status"); v != "" {
		filter.JobStatus = &v
	}

	filename, content, err := h.employeeService.Export(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(content)
}

func (h *EmployeeHandlerImpl) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	_, _, content, err := readUpload(r)
	if err != nil {
		response.BadRequest(w, "Invalid file upload", nil)
		return
	}

	path, err := h.fileService.UploadEmployeePhoto(r.Context(), chi.URLParam(r, "id"), content)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Photo uploaded", map[string]string{"photo_url": path})
}
