package department

import "context"

type DepartmentService interface {
	Create(ctx context.Context, req CreateDepartmentRequest) (DepartmentResponse, error)
	GetByID(ctx context.Context, id string) (DepartmentResponse, error)
	List(ctx context.Context) ([]DepartmentResponse, error)
	Update(ctx context.Context, req UpdateDepartmentRequest) (DepartmentResponse, error)
	Delete(ctx context.Context, id string) error

	// GetMine returns the department bound to the authenticated user
	GetMine(ctx context.Context) (DepartmentResponse, error)
}
