package employee

import (
	"context"
)

// EmployeeService defines business logic for employee operations
type EmployeeService interface {
	// CreateEmployee creates an employee with a freshly generated scan code (admin only)
	CreateEmployee(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)

	// GetEmployee retrieves a single employee by ID
	GetEmployee(ctx context.Context, id string) (EmployeeResponse, error)

	// ListEmployees lists all employees
	ListEmployees(ctx context.Context) ([]EmployeeResponse, error)

	// UpdateEmployee updates an existing employee (admin only)
	UpdateEmployee(ctx context.Context, req UpdateEmployeeRequest) (EmployeeResponse, error)

	// DeleteEmployee removes an employee (admin only); the attendance wallet is left untouched
	DeleteEmployee(ctx context.Context, id string) error
}
