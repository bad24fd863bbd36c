package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/cmlabs-hris/scan-attendance-go/internal/domain/employee"
	"github.com/google/uuid"
)

type EmployeeRepository struct {
	mu        sync.Mutex
	employees map[string]employee.Employee
}

func NewEmployeeRepository() *EmployeeRepository {
	return &EmployeeRepository{employees: make(map[string]employee.Employee)}
}

func employeeField(emp employee.Employee, field employee.UniqueField) *string {
	switch field {
	case employee.FieldEmployeeCode:
		return &emp.EmployeeCode
	case employee.FieldAadhaarNumber:
		return emp.AadhaarNumber
	case employee.FieldPFID:
		return emp.PFID
	case employee.FieldESICID:
		return emp.ESICID
	}
	return nil
}

var uniqueFieldErrors = map[employee.UniqueField]error{
	employee.FieldEmployeeCode:  employee.ErrEmployeeCodeExists,
	employee.FieldAadhaarNumber: employee.ErrAadhaarExists,
	employee.FieldPFID:          employee.ErrPFIDExists,
	employee.FieldESICID:        employee.ErrESICIDExists,
}

// checkUnique mirrors the unique constraints of the employees table. Caller holds mu.
func (r *EmployeeRepository) checkUnique(emp employee.Employee) error {
	for field, conflict := range uniqueFieldErrors {
		value := employeeField(emp, field)
		if value == nil {
			continue
		}
		for id, other := range r.employees {
			if id == emp.ID {
				continue
			}
			if v := employeeField(other, field); v != nil && *v == *value {
				return conflict
			}
		}
	}
	return nil
}

// Create implements employee.EmployeeRepository.
func (r *EmployeeRepository) Create(_ context.Context, newEmployee employee.Employee) (employee.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if newEmployee.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return employee.Employee{}, err
		}
		newEmployee.ID = id.String()
	}
	if err := r.checkUnique(newEmployee); err != nil {
		return employee.Employee{}, err
	}

	now := time.Now().UTC()
	newEmployee.CreatedAt, newEmployee.UpdatedAt = now, now
	r.employees[newEmployee.ID] = newEmployee
	return newEmployee, nil
}

// GetByID implements employee.EmployeeRepository.
func (r *EmployeeRepository) GetByID(_ context.Context, id string) (employee.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	emp, ok := r.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return emp, nil
}

// GetByEmployeeCode implements employee.EmployeeRepository.
func (r *EmployeeRepository) GetByEmployeeCode(_ context.Context, employeeCode string) (employee.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, emp := range r.employees {
		if emp.EmployeeCode == employeeCode {
			return emp, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

// GetByIDs implements employee.EmployeeRepository.
func (r *EmployeeRepository) GetByIDs(_ context.Context, ids []string) (map[string]employee.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	result := make(map[string]employee.Employee, len(ids))
	for _, id := range ids {
		if emp, ok := r.employees[id]; ok {
			result[id] = emp
		}
	}
	return result, nil
}

// List implements employee.EmployeeRepository.
func (r *EmployeeRepository) List(_ context.Context) ([]employee.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	employees := make([]employee.Employee, 0, len(r.employees))
	for _, emp := range r.employees {
		employees = append(employees, emp)
	}
	sort.Slice(employees, func(i, j int) bool {
		return employees[i].ID > employees[j].ID
	})
	return employees, nil
}

// Update implements employee.EmployeeRepository.
func (r *EmployeeRepository) Update(_ context.Context, emp employee.Employee) (employee.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.employees[emp.ID]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	emp.EmployeeCode = stored.EmployeeCode
	if err := r.checkUnique(emp); err != nil {
		return employee.Employee{}, err
	}

	emp.CreatedAt = stored.CreatedAt
	emp.UpdatedAt = time.Now().UTC()
	r.employees[emp.ID] = emp
	return emp, nil
}

// Delete implements employee.EmployeeRepository.
func (r *EmployeeRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.employees[id]; !ok {
		return employee.ErrEmployeeNotFound
	}
	delete(r.employees, id)
	return nil
}

// ExistsByUniqueField implements employee.EmployeeRepository.
func (r *EmployeeRepository) ExistsByUniqueField(_ context.Context, field employee.UniqueField, value string, excludeID *string) (bool, error) {
	if _, ok := uniqueFieldErrors[field]; !ok {
		return false, fmt.Errorf("unsupported unique field %q", field)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for id, emp := range r.employees {
		if excludeID != nil && id == *excludeID {
			continue
		}
		if v := employeeField(emp, field); v != nil && *v == value {
			return true, nil
		}
	}
	return false, nil
}
