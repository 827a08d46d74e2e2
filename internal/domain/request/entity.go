package request

import "time"

type Type string

const (
	TypeCancelRestDay     Type = "cancel_rest_day"
	TypeChangeOffSchedule Type = "change_off_schedule"
	TypeRetro             Type = "retro"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"

	// StatusForceApproved is accepted as input on status updates only and is
	// normalized to StatusApproved before persistence.
	StatusForceApproved Status = "force_approved"
)

// Remark prefixes written by the lifecycle manager.
const (
	ForceApprovalRemarkPrefix = "Administrative override: "
	AutoApprovedRemarkFormat  = "Auto-approved: Filed by %s"
)

// Request is one approvable request. The payload columns are sparse: each
// type fills only its own fields.
type Request struct {
	ID         string
	Type       Type
	EmployeeID string

	Reason  string
	Remarks *string

	// cancel_rest_day payload
	RestDayDate         *time.Time
	ReplacementWorkDate *time.Time

	// change_off_schedule payload
	OriginalOffDate  *time.Time
	RequestedOffDate *time.Time

	// retro payload
	RetroType  *string
	RetroDate  *time.Time
	Amount     *float64
	Multiplier *float64

	Status     Status
	ApprovedBy *string
	ApprovedAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time

	// Join fields for listings and exports
	EmployeeName   *string
	EmployeeCode   *string
	DepartmentName *string
	ApproverName   *string
}

// IsPending reports whether destructive operations are still allowed.
func (r *Request) IsPending() bool {
	return r.Status == StatusPending
}

// IsTerminal reports whether the status can no longer change.
func (r *Request) IsTerminal() bool {
	return r.Status == StatusApproved || r.Status == StatusRejected
}
