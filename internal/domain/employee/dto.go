package employee

import (
	"github.com/talentindo/hrms-backend-go/internal/pkg/validator"
)

type CreateEmployeeRequest struct {
	Code       string `json:"employee_code"`
	FullName   string `json:"full_name"`
	Department string `json:"department"`
	Position   string `json:"position"`
	HireDate   string `json:"hire_date"`
}

func (r *CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidEmployeeCode(r.Code) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_code",
			Message: "employee_code must be 1-9 digits",
		})
	}
	if validator.IsEmpty(r.FullName) {
		errs = append(errs, validator.ValidationError{
			Field:   "full_name",
			Message: "full_name is required",
		})
	}
	if len(r.FullName) > 255 {
		errs = append(errs, validator.ValidationError{
			Field:   "full_name",
			Message: "full_name must not exceed 255 characters",
		})
	}
	if validator.IsEmpty(r.Department) {
		errs = append(errs, validator.ValidationError{
			Field:   "department",
			Message: "department is required",
		})
	}
	if _, ok := validator.IsValidDate(r.HireDate); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "hire_date",
			Message: "hire_date must be a valid date (YYYY-MM-DD)",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateEmployeeRequest struct {
	ID         string  `json:"-"`
	FullName   *string `json:"full_name,omitempty"`
	Department *string `json:"department,omitempty"`
	Position   *string `json:"position,omitempty"`
	JobStatus  *string `json:"job_status,omitempty"`
}

func (r *UpdateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}
	if r.FullName != nil && validator.IsEmpty(*r.FullName) {
		errs = append(errs, validator.ValidationError{
			Field:   "full_name",
			Message: "full_name must not be empty",
		})
	}
	if r.JobStatus != nil {
		valid := []string{
			string(JobStatusActive),
			string(JobStatusResigned),
			string(JobStatusTerminated),
		}
		if !validator.IsInSlice(*r.JobStatus, valid) {
			errs = append(errs, validator.ValidationError{
				Field:   "job_status",
				Message: "job_status must be one of: active, resigned, terminated",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type Filter struct {
	Search     *string
	Department *string
	JobStatus  *string
	Page       int
	Limit      int
	SortBy     string
	SortOrder  string
}

// RowError is a single failed spreadsheet row during import.
type RowError struct {
	Row      int      `json:"row"`
	Messages []string `json:"messages"`
}

// ImportReport summarizes a spreadsheet import: failed rows are collected,
// not fatal.
type ImportReport struct {
	ImportedCount int        `json:"imported_count"`
	FailedCount   int        `json:"failed_count"`
	Failures      []RowError `json:"failures,omitempty"`
}
