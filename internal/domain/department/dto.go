package department

import "github.com/talentindo/hrms-backend-go/internal/pkg/validator"

type CreateDepartmentRequest struct {
	Name string `json:"department_name"`
}

func (r *CreateDepartmentRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "department_name",
			Message: "department_name is required",
		})
	}
	if len(r.Name) > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "department_name",
			Message: "department_name must not exceed 100 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type RenameDepartmentRequest struct {
	ID   string `json:"-"`
	Name string `json:"department_name"`
}

func (r *RenameDepartmentRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "department_id",
			Message: "department_id is required",
		})
	}
	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "department_name",
			Message: "department_name is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type AssignManagerRequest struct {
	UserID         string `json:"user_id"`
	DepartmentName string `json:"department_name"`
}

func (r *AssignManagerRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.UserID) {
		errs = append(errs, validator.ValidationError{
			Field:   "user_id",
			Message: "user_id is required",
		})
	}
	if validator.IsEmpty(r.DepartmentName) {
		errs = append(errs, validator.ValidationError{
			Field:   "department_name",
			Message: "department_name is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}
