package department

import "context"

type DepartmentRepository interface {
	Create(ctx context.Context, dept Department) (Department, error)
	GetByID(ctx context.Context, id string) (Department, error)
	GetByIDs(ctx context.Context, ids []string) (map[string]Department, error)
	// List returns departments newest first
	List(ctx context.Context) ([]Department, error)
	Update(ctx context.Context, dept Department) (Department, error)
	Delete(ctx context.Context, id string) error
}
