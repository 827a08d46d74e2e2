package attendance

import (
	"time"

	"github.com/talentindo/hrms-backend-go/internal/pkg/validator"
)

type Filter struct {
	EmployeeCode *string
	StartDate    *string
	EndDate      *string
	Page         int
	Limit        int
}

func (f *Filter) Validate() error {
	var errs validator.ValidationErrors

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

// CreatePunchRequest records a single punch by hand, for corrections when
// neither the clock nor a spreadsheet has it.
type CreatePunchRequest struct {
	EmployeeCode string `json:"employee_code"`
	PunchTime    string `json:"punch_time"`
}

func (r *CreatePunchRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidEmployeeCode(r.EmployeeCode) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_code",
			Message: "employee_code must be a numeric badge number",
		})
	}
	if _, ok := validator.IsValidDateTime(r.PunchTime); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "punch_time",
			Message: "punch_time must be an ISO8601 timestamp",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// DevicePullRequest asks the service to read a clock's attendance log.
type DevicePullRequest struct {
	IP        string `json:"ip"`
	Port      int    `json:"port"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Persist   bool   `json:"persist"`
}

func (r *DevicePullRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.IP) {
		errs = append(errs, validator.ValidationError{
			Field:   "ip",
			Message: "ip is required",
		})
	}
	if r.Port < 0 || r.Port > 65535 {
		errs = append(errs, validator.ValidationError{
			Field:   "port",
			Message: "port must be between 0 and 65535",
		})
	}
	if _, ok := validator.IsValidDate(r.StartDate); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be a valid date (YYYY-MM-DD)",
		})
	}
	if _, ok := validator.IsValidDate(r.EndDate); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be a valid date (YYYY-MM-DD)",
		})
	}
	if len(errs) == 0 {
		start, _ := time.Parse("2006-01-02", r.StartDate)
		end, _ := time.Parse("2006-01-02", r.EndDate)
		if end.Before(start) {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must not be before start_date",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// DevicePunch is the JSON shape returned for device pulls.
type DevicePunch struct {
	IDNo      string    `json:"idno"`
	PunchTime time.Time `json:"punch_time"`
}

// RowError is a single failed spreadsheet row during import.
type RowError struct {
	Row      int      `json:"row"`
	Messages []string `json:"messages"`
}

// ImportReport summarizes a spreadsheet import.
type ImportReport struct {
	ImportedCount int        `json:"imported_count"`
	FailedCount   int        `json:"failed_count"`
	Failures      []RowError `json:"failures,omitempty"`
}
