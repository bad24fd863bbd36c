package department

import "errors"

var (
	ErrDepartmentNotFound   = errors.New("department not found")
	ErrDepartmentNameExists = errors.New("department name already exists")
	ErrDepartmentNameEmpty  = errors.New("department name is required")
	ErrNoAssignedDepartment = errors.New("user has no assigned department")
)
