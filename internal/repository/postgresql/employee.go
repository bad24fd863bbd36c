package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/scan-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/scan-attendance-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

const employeeColumns = `id, emp_code, name, department_id, designation, mobile, aadhaar_number,
	pf_id, esic_id, hourly_rate, profile_complete, created_at, updated_at`

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var emp employee.Employee
	err := row.Scan(
		&emp.ID, &emp.EmployeeCode, &emp.Name, &emp.DepartmentID, &emp.Designation,
		&emp.Mobile, &emp.AadhaarNumber, &emp.PFID, &emp.ESICID, &emp.HourlyRate,
		&emp.ProfileComplete, &emp.CreatedAt, &emp.UpdatedAt,
	)
	return emp, err
}

// uniqueEmployeeError maps a violated unique constraint to its domain error.
func uniqueEmployeeError(constraint string) error {
	switch constraint {
	case "employees_emp_code_key":
		return employee.ErrEmployeeCodeExists
	case "employees_aadhaar_number_key":
		return employee.ErrAadhaarExists
	case "employees_pf_id_key":
		return employee.ErrPFIDExists
	case "employees_esic_id_key":
		return employee.ErrESICIDExists
	}
	return fmt.Errorf("unique constraint %s violated", constraint)
}

// Create implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) Create(ctx context.Context, newEmployee employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	if newEmployee.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return employee.Employee{}, fmt.Errorf("generate employee id: %w", err)
		}
		newEmployee.ID = id.String()
	}

	query := `
		INSERT INTO employees (id, emp_code, name, department_id, designation, mobile,
			aadhaar_number, pf_id, esic_id, hourly_rate, profile_complete)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING ` + employeeColumns

	created, err := scanEmployee(q.QueryRow(ctx, query,
		newEmployee.ID,
		newEmployee.EmployeeCode,
		newEmployee.Name,
		newEmployee.DepartmentID,
		newEmployee.Designation,
		newEmployee.Mobile,
		newEmployee.AadhaarNumber,
		newEmployee.PFID,
		newEmployee.ESICID,
		newEmployee.HourlyRate,
		newEmployee.ProfileComplete,
	))
	if err != nil {
		if constraint, ok := uniqueViolation(err); ok {
			return employee.Employee{}, uniqueEmployeeError(constraint)
		}
		return employee.Employee{}, fmt.Errorf("insert employee: %w", err)
	}

	return created, nil
}

// GetByID implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE id = $1`

	emp, err := scanEmployee(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("get employee by id %s: %w", id, err)
	}

	return emp, nil
}

// GetByEmployeeCode implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) GetByEmployeeCode(ctx context.Context, employeeCode string) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE emp_code = $1`

	emp, err := scanEmployee(q.QueryRow(ctx, query, employeeCode))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("get employee by code: %w", err)
	}

	return emp, nil
}

// GetByIDs implements employee.EmployeeRepository. Unknown ids are absent from the map.
func (e *employeeRepositoryImpl) GetByIDs(ctx context.Context, ids []string) (map[string]employee.Employee, error) {
	result := make(map[string]employee.Employee, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	q := GetQuerier(ctx, e.db)

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE id = ANY($1::uuid[])`

	rows, err := q.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("list employees by ids: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("scan employee: %w", err)
		}
		result[emp.ID] = emp
	}

	return result, rows.Err()
}

// List implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) List(ctx context.Context) ([]employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `SELECT ` + employeeColumns + ` FROM employees ORDER BY created_at DESC, id DESC`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	defer rows.Close()

	employees := []employee.Employee{}
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("scan employee: %w", err)
		}
		employees = append(employees, emp)
	}

	return employees, rows.Err()
}

// Update implements employee.EmployeeRepository. The employee code is immutable.
func (e *employeeRepositoryImpl) Update(ctx context.Context, emp employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `
		UPDATE employees
		SET name = $1, department_id = $2, designation = $3, mobile = $4, aadhaar_number = $5,
			pf_id = $6, esic_id = $7, hourly_rate = $8, profile_complete = $9, updated_at = NOW()
		WHERE id = $10
		RETURNING ` + employeeColumns

	updated, err := scanEmployee(q.QueryRow(ctx, query,
		emp.Name,
		emp.DepartmentID,
		emp.Designation,
		emp.Mobile,
		emp.AadhaarNumber,
		emp.PFID,
		emp.ESICID,
		emp.HourlyRate,
		emp.ProfileComplete,
		emp.ID,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		if constraint, ok := uniqueViolation(err); ok {
			return employee.Employee{}, uniqueEmployeeError(constraint)
		}
		return employee.Employee{}, fmt.Errorf("update employee %s: %w", emp.ID, err)
	}

	return updated, nil
}

// Delete implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, e.db)

	tag, err := q.Exec(ctx, `DELETE FROM employees WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete employee %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}

	return nil
}

// ExistsByUniqueField implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) ExistsByUniqueField(ctx context.Context, field employee.UniqueField, value string, excludeID *string) (bool, error) {
	switch field {
	case employee.FieldEmployeeCode, employee.FieldAadhaarNumber, employee.FieldPFID, employee.FieldESICID:
	default:
		return false, fmt.Errorf("unsupported unique field %q", field)
	}

	q := GetQuerier(ctx, e.db)

	// field is one of the whitelisted column names above.
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM employees WHERE %s = $1 AND ($2::uuid IS NULL OR id <> $2::uuid))`, field)

	var exists bool
	if err := q.QueryRow(ctx, query, value, excludeID).Scan(&exists); err != nil {
		return false, fmt.Errorf("check employee %s: %w", field, err)
	}

	return exists, nil
}
