package user

import "errors"

var (
	ErrUserNotFound            = errors.New("user not found")
	ErrUsernameExists          = errors.New("username already exists")
	ErrInvalidUsername         = errors.New("username must contain only lowercase letters and numbers")
	ErrInvalidPasswordLength   = errors.New("password must be at least 8 characters")
	ErrInvalidRole             = errors.New("role must be admin, supervisor or user")
	ErrDepartmentRequired      = errors.New("supervisor accounts require a department")
	ErrInsufficientPermissions = errors.New("insufficient permissions")
)
