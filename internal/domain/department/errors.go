package department

import "errors"

var (
	ErrDepartmentNotFound = errors.New("Department not found")
	ErrDepartmentExists   = errors.New("Department already exists")
	ErrDepartmentNotEmpty = errors.New("Department still has employees assigned")
	ErrMappingNotFound    = errors.New("Department manager mapping not found")
	ErrMappingExists      = errors.New("User already manages this department")
)
