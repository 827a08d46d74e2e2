package employee

import "errors"

var (
	ErrEmployeeNotFound   = errors.New("Employee not found")
	ErrEmployeeCodeExists = errors.New("Employee code already exists")
	ErrEmployeeInactive   = errors.New("Employee is not active")
	ErrHasPendingRequests = errors.New("Employee still has pending requests")
)
