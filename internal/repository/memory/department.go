package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/cmlabs-hris/scan-attendance-go/internal/domain/department"
	"github.com/google/uuid"
)

type DepartmentRepository struct {
	mu          sync.Mutex
	departments map[string]department.Department
}

func NewDepartmentRepository() *DepartmentRepository {
	return &DepartmentRepository{departments: make(map[string]department.Department)}
}

// nameTaken reports whether another department uses name. Caller holds mu.
func (r *DepartmentRepository) nameTaken(name, exceptID string) bool {
	for id, d := range r.departments {
		if id != exceptID && d.Name == name {
			return true
		}
	}
	return false
}

// Create implements department.DepartmentRepository.
func (r *DepartmentRepository) Create(_ context.Context, dept department.Department) (department.Department, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if dept.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return department.Department{}, err
		}
		dept.ID = id.String()
	}
	if r.nameTaken(dept.Name, dept.ID) {
		return department.Department{}, department.ErrDepartmentNameExists
	}

	now := time.Now().UTC()
	dept.CreatedAt, dept.UpdatedAt = now, now
	r.departments[dept.ID] = dept
	return dept, nil
}

// GetByID implements department.DepartmentRepository.
func (r *DepartmentRepository) GetByID(_ context.Context, id string) (department.Department, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	d, ok := r.departments[id]
	if !ok {
		return department.Department{}, department.ErrDepartmentNotFound
	}
	return d, nil
}

// GetByIDs implements department.DepartmentRepository.
func (r *DepartmentRepository) GetByIDs(_ context.Context, ids []string) (map[string]department.Department, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	result := make(map[string]department.Department, len(ids))
	for _, id := range ids {
		if d, ok := r.departments[id]; ok {
			result[id] = d
		}
	}
	return result, nil
}

// List implements department.DepartmentRepository. Ids are time ordered, so
// sorting them descending lists newest first.
func (r *DepartmentRepository) List(_ context.Context) ([]department.Department, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	departments := make([]department.Department, 0, len(r.departments))
	for _, d := range r.departments {
		departments = append(departments, d)
	}
	sort.Slice(departments, func(i, j int) bool {
		return departments[i].ID > departments[j].ID
	})
	return departments, nil
}

// Update implements department.DepartmentRepository.
func (r *DepartmentRepository) Update(_ context.Context, dept department.Department) (department.Department, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.departments[dept.ID]
	if !ok {
		return department.Department{}, department.ErrDepartmentNotFound
	}
	if r.nameTaken(dept.Name, dept.ID) {
		return department.Department{}, department.ErrDepartmentNameExists
	}

	dept.CreatedAt = stored.CreatedAt
	dept.UpdatedAt = time.Now().UTC()
	r.departments[dept.ID] = dept
	return dept, nil
}

// Delete implements department.DepartmentRepository.
func (r *DepartmentRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.departments[id]; !ok {
		return department.ErrDepartmentNotFound
	}
	delete(r.departments, id)
	return nil
}
