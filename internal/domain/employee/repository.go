package employee

import "context"

type EmployeeRepository interface {
	GetByID(ctx context.Context, id string) (Employee, error)
	GetByEmployeeCode(ctx context.Context, employeeCode string) (Employee, error)
	GetByIDs(ctx context.Context, ids []string) (map[string]Employee, error)
	List(ctx context.Context) ([]Employee, error)
	Create(ctx context.Context, newEmployee Employee) (Employee, error)
	Update(ctx context.Context, emp Employee) (Employee, error)
	Delete(ctx context.Context, id string) error

	// ExistsByUniqueField reports whether another employee already uses value
	// for field. excludeID skips the employee being updated.
	ExistsByUniqueField(ctx context.Context, field UniqueField, value string, excludeID *string) (bool, error)
}

// UniqueField names an employee column that must not repeat across employees.
type UniqueField string

const (
	FieldEmployeeCode  UniqueField = "emp_code"
	FieldAadhaarNumber UniqueField = "aadhaar_number"
	FieldPFID          UniqueField = "pf_id"
	FieldESICID        UniqueField = "esic_id"
)
