package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/talentindo/hrms-backend-go/internal/domain/user"
	"github.com/talentindo/hrms-backend-go/internal/handler/http/middleware"
	"github.com/talentindo/hrms-backend-go/internal/handler/http/response"
	userservice "github.com/talentindo/hrms-backend-go/internal/service/user"
)

type UserHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	AssignRole(w http.ResponseWriter, r *http.Request)
	RemoveRole(w http.ResponseWriter, r *http.Request)
}

type UserHandlerImpl struct {
	userService userservice.Service
}

func NewUserHandler(userService userservice.Service) UserHandler {
	return &UserHandlerImpl{userService: userService}
}

type userResponse struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Email      string  `json:"email"`
	EmployeeID *string `json:"employee_id,omitempty"`
}

func (h *UserHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req user.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	created, err := h.userService.Create(r.Context(), middleware.UserID(r.Context()), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Account created", userResponse{
		ID:         created.ID,
		Name:       created.Name,
		Email:      created.Email,
		EmployeeID: created.EmployeeID,
	})
}

func (h *UserHandlerImpl) AssignRole(w http.ResponseWriter, r *http.Request) {
	var req user.RoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	err := h.userService.AssignRole(r.Context(), middleware.UserID(r.Context()), chi.URLParam(r, "id"), req.Role)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Role assigned", nil)
}

func (h *UserHandlerImpl) RemoveRole(w http.ResponseWriter, r *http.Request) {
	err := h.userService.RemoveRole(r.Context(), middleware.UserID(r.Context()), chi.URLParam(r, "id"), chi.URLParam(r, "role"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Role removed", nil)
}
