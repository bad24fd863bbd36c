package department

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/scan-attendance-go/internal/domain/auth"
	"github.com/cmlabs-hris/scan-attendance-go/internal/domain/department"
	"github.com/cmlabs-hris/scan-attendance-go/internal/domain/user"
	"github.com/cmlabs-hris/scan-attendance-go/internal/pkg/validator"
	"github.com/go-chi/jwtauth/v5"
)

type DepartmentServiceImpl struct {
	departmentRepo department.DepartmentRepository
	userRepo       user.UserRepository
}

func NewDepartmentService(departmentRepo department.DepartmentRepository, userRepo user.UserRepository) department.DepartmentService {
	return &DepartmentServiceImpl{
		departmentRepo: departmentRepo,
		userRepo:       userRepo,
	}
}

// Create implements department.DepartmentService.
func (s *DepartmentServiceImpl) Create(ctx context.Context, req department.CreateDepartmentRequest) (department.DepartmentResponse, error) {
	if err := req.Validate(); err != nil {
		return department.DepartmentResponse{}, err
	}

	created, err := s.departmentRepo.Create(ctx, department.Department{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return department.DepartmentResponse{}, err
	}
	return department.NewDepartmentResponse(created), nil
}

// GetByID implements department.DepartmentService.
func (s *DepartmentServiceImpl) GetByID(ctx context.Context, id string) (department.DepartmentResponse, error) {
	if !validator.IsValidUUID(id) {
		return department.DepartmentResponse{}, department.ErrDepartmentNotFound
	}
	d, err := s.departmentRepo.GetByID(ctx, id)
	if err != nil {
		return department.DepartmentResponse{}, err
	}
	return department.NewDepartmentResponse(d), nil
}

// List implements department.DepartmentService.
func (s *DepartmentServiceImpl) List(ctx context.Context) ([]department.DepartmentResponse, error) {
	departments, err := s.departmentRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list departments: %w", err)
	}

	responses := make([]department.DepartmentResponse, 0, len(departments))
	for _, d := range departments {
		responses = append(responses, department.NewDepartmentResponse(d))
	}
	return responses, nil
}

// Update implements department.DepartmentService.
func (s *DepartmentServiceImpl) Update(ctx context.Context, req department.UpdateDepartmentRequest) (department.DepartmentResponse, error) {
	if err := req.Validate(); err != nil {
		return department.DepartmentResponse{}, err
	}

	d, err := s.departmentRepo.GetByID(ctx, req.ID)
	if err != nil {
		return department.DepartmentResponse{}, err
	}
	if req.Name != nil {
		d.Name = *req.Name
	}
	if req.Description != nil {
		d.Description = req.Description
	}

	updated, err := s.departmentRepo.Update(ctx, d)
	if err != nil {
		return department.DepartmentResponse{}, err
	}
	return department.NewDepartmentResponse(updated), nil
}

// Delete implements department.DepartmentService. Users and employees of the
// department are detached by the store.
func (s *DepartmentServiceImpl) Delete(ctx context.Context, id string) error {
	if !validator.IsValidUUID(id) {
		return department.ErrDepartmentNotFound
	}
	return s.departmentRepo.Delete(ctx, id)
}

// GetMine implements department.DepartmentService.
func (s *DepartmentServiceImpl) GetMine(ctx context.Context) (department.DepartmentResponse, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return department.DepartmentResponse{}, auth.ErrInvalidToken
	}
	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return department.DepartmentResponse{}, auth.ErrInvalidToken
	}

	u, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return department.DepartmentResponse{}, err
	}
	if u.DepartmentID == nil {
		return department.DepartmentResponse{}, department.ErrNoAssignedDepartment
	}

	return s.GetByID(ctx, *u.DepartmentID)
}
