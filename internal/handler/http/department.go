package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/talentindo/hrms-backend-go/internal/domain/department"
	"github.com/talentindo/hrms-backend-go/internal/handler/http/response"
	departmentservice "github.com/talentindo/hrms-backend-go/internal/service/department"
)

type DepartmentHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Rename(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	AssignManager(w http.ResponseWriter, r *http.Request)
	UnassignManager(w http.ResponseWriter, r *http.Request)
	ListManagers(w http.ResponseWriter, r *http.Request)
}

type DepartmentHandlerImpl struct {
	departmentService departmentservice.Service
}

func NewDepartmentHandler(departmentService departmentservice.Service) DepartmentHandler {
	return &DepartmentHandlerImpl{departmentService: departmentService}
}

func (h *DepartmentHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	departments, err := h.departmentService.List(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, departments)
}

func (h *DepartmentHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req department.CreateDepartmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	created, err := h.departmentService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Department created", created)
}

func (h *DepartmentHandlerImpl) Rename(w http.ResponseWriter, r *http.Request) {
	var req department.RenameDepartmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	renamed, err := h.departmentService.Rename(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Department renamed", renamed)
}

func (h *DepartmentHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.departmentService.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Department deleted", nil)
}

func (h *DepartmentHandlerImpl) AssignManager(w http.ResponseWriter, r *http.Request) {
	var req department.AssignManagerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	m, err := h.departmentService.AssignManager(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Manager assigned", m)
}

func (h *DepartmentHandlerImpl) UnassignManager(w http.ResponseWriter, r *http.Request) {
	var req department.AssignManagerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	if err := h.departmentService.UnassignManager(r.Context(), req.UserID, req.DepartmentName); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Manager unassigned", nil)
}

func (h *DepartmentHandlerImpl) ListManagers(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("department_name")
	if name == "" {
		response.BadRequest(w, "department_name is required", nil)
		return
	}

	managers, err := h.departmentService.ListManagers(r.Context(), name)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, managers)
}
