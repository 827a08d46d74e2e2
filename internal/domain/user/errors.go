package user

import "errors"

var (
	ErrUserNotFound   = errors.New("User not found")
	ErrEmailExists    = errors.New("Email already registered")
	ErrRoleNotFound   = errors.New("Role not found")
	ErrAlreadyInRole  = errors.New("User already has this role")
	ErrEmployeeLinked = errors.New("Employee already linked to an account")
	ErrNotAuthorized  = errors.New("Not authorized to manage accounts")
)
