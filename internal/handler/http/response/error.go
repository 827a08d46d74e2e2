package response

import (
	"errors"
	"net/http"

	"github.com/talentindo/hrms-backend-go/internal/domain/attendance"
	"github.com/talentindo/hrms-backend-go/internal/domain/auth"
	"github.com/talentindo/hrms-backend-go/internal/domain/department"
	"github.com/talentindo/hrms-backend-go/internal/domain/employee"
	"github.com/talentindo/hrms-backend-go/internal/domain/request"
	"github.com/talentindo/hrms-backend-go/internal/domain/user"
	attendanceservice "github.com/talentindo/hrms-backend-go/internal/service/attendance"
	employeeservice "github.com/talentindo/hrms-backend-go/internal/service/employee"
	fileservice "github.com/talentindo/hrms-backend-go/internal/service/file"
	"github.com/talentindo/hrms-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrRefreshTokenRevoked):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrOAuthStateMismatch):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, err.Error())
	case errors.Is(err, user.ErrEmailExists):
		Conflict(w, err.Error())
	case errors.Is(err, user.ErrRoleNotFound):
		NotFound(w, err.Error())
	case errors.Is(err, user.ErrAlreadyInRole):
		Conflict(w, err.Error())
	case errors.Is(err, user.ErrEmployeeLinked):
		Conflict(w, err.Error())
	case errors.Is(err, user.ErrNotAuthorized):
		Forbidden(w, err.Error())

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, err.Error())
	case errors.Is(err, employee.ErrEmployeeCodeExists):
		Conflict(w, err.Error())
	case errors.Is(err, employee.ErrHasPendingRequests):
		Conflict(w, err.Error())
	case errors.Is(err, employee.ErrEmployeeInactive):
		Conflict(w, err.Error())
	case errors.Is(err, employeeservice.ErrUnsupportedFileType):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, employeeservice.ErrMissingColumns):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, fileservice.ErrUnsupportedImage):
		BadRequest(w, err.Error(), nil)

	// Request domain errors
	case errors.Is(err, request.ErrRequestNotFound):
		NotFound(w, err.Error())
	case errors.Is(err, request.ErrUnknownType):
		NotFound(w, err.Error())
	case errors.Is(err, request.ErrAlreadyProcessed):
		Conflict(w, err.Error())
	case errors.Is(err, request.ErrNotPending):
		Conflict(w, err.Error())
	case errors.Is(err, request.ErrNotAuthorized):
		Forbidden(w, err.Error())

	// Department domain errors
	case errors.Is(err, department.ErrDepartmentNotFound):
		NotFound(w, err.Error())
	case errors.Is(err, department.ErrDepartmentExists):
		Conflict(w, err.Error())
	case errors.Is(err, department.ErrDepartmentNotEmpty):
		Conflict(w, err.Error())
	case errors.Is(err, department.ErrMappingNotFound):
		NotFound(w, err.Error())
	case errors.Is(err, department.ErrMappingExists):
		Conflict(w, err.Error())

	// Attendance domain errors
	case errors.Is(err, attendance.ErrDuplicatePunch):
		Conflict(w, err.Error())
	case errors.Is(err, attendance.ErrDeviceUnreachable):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, attendanceservice.ErrUnsupportedFileType):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, attendanceservice.ErrMissingColumns):
		BadRequest(w, err.Error(), nil)

	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
