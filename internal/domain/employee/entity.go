package employee

import "time"

type JobStatus string

const (
	JobStatusActive     JobStatus = "active"
	JobStatusResigned   JobStatus = "resigned"
	JobStatusTerminated JobStatus = "terminated"
)

type Employee struct {
	ID string

	// Code is the badge number the time clocks report (idno).
	Code string

	FullName   string
	Department string
	Position   string
	JobStatus  JobStatus

	HireDate time.Time
	PhotoURL *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (e *Employee) IsActive() bool {
	return e.JobStatus == JobStatusActive
}
