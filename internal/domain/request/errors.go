package request

import "errors"

var (
	ErrRequestNotFound  = errors.New("Request not found")
	ErrUnknownType      = errors.New("Unknown request type")
	ErrAlreadyProcessed = errors.New("Request already processed")
	ErrNotPending       = errors.New("Request is no longer pending")
	ErrNotAuthorized    = errors.New("Not authorized for this request")
)
