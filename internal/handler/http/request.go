package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/talentindo/hrms-backend-go/internal/domain/request"
	"github.com/talentindo/hrms-backend-go/internal/handler/http/middleware"
	"github.com/talentindo/hrms-backend-go/internal/handler/http/response"
	requestservice "github.com/talentindo/hrms-backend-go/internal/service/request"
)

type RequestHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Export(w http.ResponseWriter, r *http.Request)
	UpdateStatus(w http.ResponseWriter, r *http.Request)
	BulkUpdateStatus(w http.ResponseWriter, r *http.Request)
	Destroy(w http.ResponseWriter, r *http.Request)
}

type RequestHandlerImpl struct {
	requestService requestservice.Service
}

func NewRequestHandler(requestService requestservice.Service) RequestHandler {
	return &RequestHandlerImpl{requestService: requestService}
}

// requestType resolves the {type} URL segment.
func requestType(r *http.Request) (request.Type, error) {
	return request.ParseType(chi.URLParam(r, "type"))
}

func (h *RequestHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	t, err := requestType(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req request.CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.Type = t

	result, err := h.requestService.Create(r.Context(), middleware.UserID(r.Context()), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Requests filed", result)
}

// parseFilter reads the shared listing query parameters.
func parseFilter(r *http.Request) request.Filter {
	q := r.URL.Query()

	var filter request.Filter
	if v := q.Get("status"); v != "" {
		filter.Status = &v
	}
	if v := q.Get("search"); v != "" {
		filter.Search = &v
	}
	if v := q.Get("start_date"); v != "" {
		filter.StartDate = &v
	}
	if v := q.Get("end_date"); v != "" {
		filter.EndDate = &v
	}
	filter.Page, _ = strconv.Atoi(q.Get("page"))
	filter.Limit, _ = strconv.Atoi(q.Get("limit"))
	filter.SortBy = q.Get("sort_by")
	filter.SortOrder = q.Get("sort_order")
	return filter
}

func (h *RequestHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	t, err := requestType(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	filter := parseFilter(r)

	requests, total, err := h.requestService.List(r.Context(), middleware.UserID(r.Context()), t, filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, requests, response.NewMeta(filter.Page, filter.Limit, total))
}

func (h *RequestHandlerImpl) Export(w http.ResponseWriter, r *http.Request) {
	t, err := requestType(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	filename, content, err := h.requestService.Export(r.Context(), middleware.UserID(r.Context()), t, parseFilter(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(content)
}

func (h *RequestHandlerImpl) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req request.UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	updated, err := h.requestService.UpdateStatus(r.Context(), middleware.UserID(r.Context()), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Request status updated", updated)
}

func (h *RequestHandlerImpl) BulkUpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req request.BulkUpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.requestService.BulkUpdateStatus(r.Context(), middleware.UserID(r.Context()), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Bulk status update processed", result)
}

func (h *RequestHandlerImpl) Destroy(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.requestService.Destroy(r.Context(), middleware.UserID(r.Context()), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Request deleted", nil)
}
