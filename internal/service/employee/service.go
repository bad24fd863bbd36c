package employee

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/cmlabs-hris/scan-attendance-go/internal/domain/department"
	"github.com/cmlabs-hris/scan-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/scan-attendance-go/internal/pkg/database"
	"github.com/cmlabs-hris/scan-attendance-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type EmployeeServiceImpl struct {
	tx           database.Transactor
	employeeRepo employee.EmployeeRepository
	departments  department.DepartmentRepository
	defaultRate  decimal.Decimal
	newCode      func() (string, error)
}

func NewEmployeeService(
	tx database.Transactor,
	employeeRepo employee.EmployeeRepository,
	departmentRepo department.DepartmentRepository,
	defaultRate decimal.Decimal,
) employee.EmployeeService {
	if !defaultRate.IsPositive() {
		defaultRate = employee.DefaultHourlyRate
	}
	return &EmployeeServiceImpl{
		tx:           tx,
		employeeRepo: employeeRepo,
		departments:  departmentRepo,
		defaultRate:  defaultRate,
		newCode:      generateEmployeeCode,
	}
}

// blankToNil trims a value and drops it when nothing is left.
func blankToNil(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func (s *EmployeeServiceImpl) checkDepartment(ctx context.Context, departmentID *string) error {
	if departmentID == nil {
		return nil
	}
	if _, err := s.departments.GetByID(ctx, *departmentID); err != nil {
		return err
	}
	return nil
}

// checkIdentifiers rejects statutory identifiers already held by another employee.
func (s *EmployeeServiceImpl) checkIdentifiers(ctx context.Context, emp employee.Employee, excludeID *string) error {
	checks := []struct {
		field    employee.UniqueField
		value    *string
		conflict error
	}{
		{employee.FieldAadhaarNumber, emp.AadhaarNumber, employee.ErrAadhaarExists},
		{employee.FieldPFID, emp.PFID, employee.ErrPFIDExists},
		{employee.FieldESICID, emp.ESICID, employee.ErrESICIDExists},
	}
	for _, c := range checks {
		if c.value == nil {
			continue
		}
		exists, err := s.employeeRepo.ExistsByUniqueField(ctx, c.field, *c.value, excludeID)
		if err != nil {
			return fmt.Errorf("failed to check %s: %w", c.field, err)
		}
		if exists {
			return c.conflict
		}
	}
	return nil
}

// CreateEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) CreateEmployee(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	newEmployee := employee.Employee{
		Name:            req.Name,
		DepartmentID:    blankToNil(req.DepartmentID),
		Designation:     blankToNil(req.Designation),
		Mobile:          blankToNil(req.Mobile),
		AadhaarNumber:   blankToNil(req.AadhaarNumber),
		PFID:            blankToNil(req.PFID),
		ESICID:          blankToNil(req.ESICID),
		HourlyRate:      s.defaultRate,
		ProfileComplete: true,
	}
	if req.HourlyRate != nil {
		newEmployee.HourlyRate = *req.HourlyRate
	}

	var created employee.Employee
	err := s.tx.WithinTx(ctx, func(txCtx context.Context) error {
		if err := s.checkDepartment(txCtx, newEmployee.DepartmentID); err != nil {
			return err
		}
		if err := s.checkIdentifiers(txCtx, newEmployee, nil); err != nil {
			return err
		}

		for attempt := 0; attempt < maxCodeAttempts; attempt++ {
			code, err := s.newCode()
			if err != nil {
				return fmt.Errorf("failed to generate employee code: %w", err)
			}

			exists, err := s.employeeRepo.ExistsByUniqueField(txCtx, employee.FieldEmployeeCode, code, nil)
			if err != nil {
				return fmt.Errorf("failed to check employee code: %w", err)
			}
			if exists {
				slog.Debug("employee code collision", "attempt", attempt+1)
				continue
			}

			newEmployee.EmployeeCode = code
			created, err = s.employeeRepo.Create(txCtx, newEmployee)
			return err
		}
		return employee.ErrCodeGenerationFailed
	})
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	return employee.NewEmployeeResponse(created), nil
}

// GetEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) GetEmployee(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	if !validator.IsValidUUID(id) {
		return employee.EmployeeResponse{}, employee.ErrEmployeeNotFound
	}
	emp, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return employee.NewEmployeeResponse(emp), nil
}

// ListEmployees implements employee.EmployeeService.
func (s *EmployeeServiceImpl) ListEmployees(ctx context.Context) ([]employee.EmployeeResponse, error) {
	employees, err := s.employeeRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}

	responses := make([]employee.EmployeeResponse, 0, len(employees))
	for _, emp := range employees {
		responses = append(responses, employee.NewEmployeeResponse(emp))
	}
	return responses, nil
}

// UpdateEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) UpdateEmployee(ctx context.Context, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	var updated employee.Employee
	err := s.tx.WithinTx(ctx, func(txCtx context.Context) error {
		emp, err := s.employeeRepo.GetByID(txCtx, req.ID)
		if err != nil {
			return err
		}

		if req.Name != nil {
			emp.Name = *req.Name
		}
		if req.DepartmentID != nil {
			emp.DepartmentID = blankToNil(req.DepartmentID)
			if err := s.checkDepartment(txCtx, emp.DepartmentID); err != nil {
				return err
			}
		}
		if req.Designation != nil {
			emp.Designation = blankToNil(req.Designation)
		}
		if req.Mobile != nil {
			emp.Mobile = blankToNil(req.Mobile)
		}
		if req.AadhaarNumber != nil {
			emp.AadhaarNumber = blankToNil(req.AadhaarNumber)
		}
		if req.PFID != nil {
			emp.PFID = blankToNil(req.PFID)
		}
		if req.ESICID != nil {
			emp.ESICID = blankToNil(req.ESICID)
		}
		if req.HourlyRate != nil {
			emp.HourlyRate = *req.HourlyRate
		}

		if err := s.checkIdentifiers(txCtx, emp, &emp.ID); err != nil {
			return err
		}

		updated, err = s.employeeRepo.Update(txCtx, emp)
		return err
	})
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	return employee.NewEmployeeResponse(updated), nil
}

// DeleteEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) DeleteEmployee(ctx context.Context, id string) error {
	if !validator.IsValidUUID(id) {
		return employee.ErrEmployeeNotFound
	}
	if err := s.employeeRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return err
		}
		return fmt.Errorf("failed to delete employee: %w", err)
	}
	return nil
}
