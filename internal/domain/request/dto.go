package request

import (
	"time"

	"github.com/talentindo/hrms-backend-go/internal/pkg/validator"
)

type CreateRequest struct {
	Type        Type     `json:"-"`
	EmployeeIDs []string `json:"employee_ids"`
	Reason      string   `json:"reason"`

	// cancel_rest_day
	RestDayDate         string `json:"rest_day_date,omitempty"`
	ReplacementWorkDate string `json:"replacement_work_date,omitempty"`

	// change_off_schedule
	OriginalOffDate  string `json:"original_off_date,omitempty"`
	RequestedOffDate string `json:"requested_off_date,omitempty"`

	// retro
	RetroType  string   `json:"retro_type,omitempty"`
	RetroDate  string   `json:"retro_date,omitempty"`
	Amount     *float64 `json:"amount,omitempty"`
	Multiplier *float64 `json:"multiplier,omitempty"`
}

func (r *CreateRequest) Validate() error {
	var errs validator.ValidationErrors

	if len(r.EmployeeIDs) == 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_ids",
			Message: "employee_ids must contain at least one employee",
		})
	}
	for _, id := range r.EmployeeIDs {
		if validator.IsEmpty(id) {
			errs = append(errs, validator.ValidationError{
				Field:   "employee_ids",
				Message: "employee_ids must not contain empty values",
			})
			break
		}
	}
	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason is required",
		})
	}

	switch r.Type {
	case TypeCancelRestDay:
		if _, ok := validator.IsValidDate(r.RestDayDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "rest_day_date",
				Message: "rest_day_date must be a valid date (YYYY-MM-DD)",
			})
		}
		if _, ok := validator.IsValidDate(r.ReplacementWorkDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "replacement_work_date",
				Message: "replacement_work_date must be a valid date (YYYY-MM-DD)",
			})
		}
	case TypeChangeOffSchedule:
		if _, ok := validator.IsValidDate(r.OriginalOffDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "original_off_date",
				Message: "original_off_date must be a valid date (YYYY-MM-DD)",
			})
		}
		if _, ok := validator.IsValidDate(r.RequestedOffDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "requested_off_date",
				Message: "requested_off_date must be a valid date (YYYY-MM-DD)",
			})
		}
	case TypeRetro:
		if validator.IsEmpty(r.RetroType) {
			errs = append(errs, validator.ValidationError{
				Field:   "retro_type",
				Message: "retro_type is required",
			})
		}
		if _, ok := validator.IsValidDate(r.RetroDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "retro_date",
				Message: "retro_date must be a valid date (YYYY-MM-DD)",
			})
		}
		if r.Amount == nil || *r.Amount < 0 {
			errs = append(errs, validator.ValidationError{
				Field:   "amount",
				Message: "amount is required and must not be negative",
			})
		}
		if r.Multiplier != nil && *r.Multiplier <= 0 {
			errs = append(errs, validator.ValidationError{
				Field:   "multiplier",
				Message: "multiplier must be positive",
			})
		}
	default:
		errs = append(errs, validator.ValidationError{
			Field:   "type",
			Message: "unknown request type",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// Prototype builds the request template for one employee from the validated
// payload. Validate must have been called first.
func (r *CreateRequest) Prototype() Request {
	req := Request{
		Type:   r.Type,
		Reason: r.Reason,
		Status: StatusPending,
	}

	switch r.Type {
	case TypeCancelRestDay:
		restDay, _ := time.Parse("2006-01-02", r.RestDayDate)
		replacement, _ := time.Parse("2006-01-02", r.ReplacementWorkDate)
		req.RestDayDate = &restDay
		req.ReplacementWorkDate = &replacement
	case TypeChangeOffSchedule:
		original, _ := time.Parse("2006-01-02", r.OriginalOffDate)
		requested, _ := time.Parse("2006-01-02", r.RequestedOffDate)
		req.OriginalOffDate = &original
		req.RequestedOffDate = &requested
	case TypeRetro:
		retroDate, _ := time.Parse("2006-01-02", r.RetroDate)
		retroType := r.RetroType
		req.RetroType = &retroType
		req.RetroDate = &retroDate
		req.Amount = r.Amount
		req.Multiplier = r.Multiplier
	}

	return req
}

type UpdateStatusRequest struct {
	ID      string `json:"-"`
	Status  string `json:"status"`
	Remarks string `json:"remarks"`
}

func (r *UpdateStatusRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "request_id",
			Message: "request_id is required",
		})
	}
	valid := []string{
		string(StatusApproved),
		string(StatusRejected),
		string(StatusForceApproved),
	}
	if !validator.IsInSlice(r.Status, valid) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of: approved, rejected, force_approved",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type BulkUpdateStatusRequest struct {
	IDs     []string `json:"request_ids"`
	Status  string   `json:"status"`
	Remarks string   `json:"remarks"`
}

func (r *BulkUpdateStatusRequest) Validate() error {
	var errs validator.ValidationErrors

	if len(r.IDs) == 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "request_ids",
			Message: "request_ids must contain at least one id",
		})
	}
	valid := []string{
		string(StatusApproved),
		string(StatusRejected),
		string(StatusForceApproved),
	}
	if !validator.IsInSlice(r.Status, valid) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of: approved, rejected, force_approved",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// Filter narrows listings and exports. All predicates compose conjunctively.
type Filter struct {
	Status    *string
	Search    *string
	StartDate *string
	EndDate   *string
	Page      int
	Limit     int
	SortBy    string
	SortOrder string
}

func (f *Filter) Validate() error {
	var errs validator.ValidationErrors

	if f.Status != nil && *f.Status != "" {
		valid := []string{
			string(StatusPending),
			string(StatusApproved),
			string(StatusRejected),
		}
		if !validator.IsInSlice(*f.Status, valid) {
			errs = append(errs, validator.ValidationError{
				Field:   "status",
				Message: "status must be one of: pending, approved, rejected",
			})
		}
	}
	if f.StartDate != nil && *f.StartDate != "" {
		if _, ok := validator.IsValidDate(*f.StartDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "start_date",
				Message: "start_date must be a valid date (YYYY-MM-DD)",
			})
		}
	}
	if f.EndDate != nil && *f.EndDate != "" {
		if _, ok := validator.IsValidDate(*f.EndDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must be a valid date (YYYY-MM-DD)",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// SkipDetail explains why one employee in a batch create was skipped.
type SkipDetail struct {
	EmployeeID string `json:"employee_id"`
	Reason     string `json:"reason"`
}

// CreateResult reports a batch create. Skips are expected outcomes, not
// errors.
type CreateResult struct {
	CreatedCount int          `json:"created_count"`
	SkippedCount int          `json:"skipped_count"`
	Skips        []SkipDetail `json:"skips,omitempty"`
	Created      []Request    `json:"created,omitempty"`
}

// ItemFailure explains why one id in a bulk status update was not applied.
type ItemFailure struct {
	RequestID string `json:"request_id"`
	Reason    string `json:"reason"`
}

// BulkResult reports a bulk status update. The batch commits even when some
// items fail.
type BulkResult struct {
	SuccessCount int           `json:"success_count"`
	FailedCount  int           `json:"failed_count"`
	Failures     []ItemFailure `json:"failures,omitempty"`
}
