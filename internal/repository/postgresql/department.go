package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/scan-attendance-go/internal/domain/department"
	"github.com/cmlabs-hris/scan-attendance-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type departmentRepositoryImpl struct {
	db *database.DB
}

func NewDepartmentRepository(db *database.DB) department.DepartmentRepository {
	return &departmentRepositoryImpl{db: db}
}

const departmentColumns = `id, name, description, created_at, updated_at`

func scanDepartment(row pgx.Row) (department.Department, error) {
	var d department.Department
	err := row.Scan(&d.ID, &d.Name, &d.Description, &d.CreatedAt, &d.UpdatedAt)
	return d, err
}

// Create implements department.DepartmentRepository.
func (r *departmentRepositoryImpl) Create(ctx context.Context, dept department.Department) (department.Department, error) {
	q := GetQuerier(ctx, r.db)

	if dept.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return department.Department{}, fmt.Errorf("generate department id: %w", err)
		}
		dept.ID = id.String()
	}

	query := `
		INSERT INTO departments (id, name, description)
		VALUES ($1, $2, $3)
		RETURNING ` + departmentColumns

	created, err := scanDepartment(q.QueryRow(ctx, query, dept.ID, dept.Name, dept.Description))
	if err != nil {
		if _, ok := uniqueViolation(err); ok {
			return department.Department{}, department.ErrDepartmentNameExists
		}
		return department.Department{}, fmt.Errorf("insert department: %w", err)
	}

	return created, nil
}

// GetByID implements department.DepartmentRepository.
func (r *departmentRepositoryImpl) GetByID(ctx context.Context, id string) (department.Department, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + departmentColumns + ` FROM departments WHERE id = $1`

	d, err := scanDepartment(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return department.Department{}, department.ErrDepartmentNotFound
		}
		return department.Department{}, fmt.Errorf("get department by id %s: %w", id, err)
	}

	return d, nil
}

// GetByIDs implements department.DepartmentRepository. Unknown ids are absent from the map.
func (r *departmentRepositoryImpl) GetByIDs(ctx context.Context, ids []string) (map[string]department.Department, error) {
	result := make(map[string]department.Department, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + departmentColumns + ` FROM departments WHERE id = ANY($1::uuid[])`

	rows, err := q.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("list departments by ids: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		d, err := scanDepartment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan department: %w", err)
		}
		result[d.ID] = d
	}

	return result, rows.Err()
}

// List implements department.DepartmentRepository.
func (r *departmentRepositoryImpl) List(ctx context.Context) ([]department.Department, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + departmentColumns + ` FROM departments ORDER BY created_at DESC, id DESC`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list departments: %w", err)
	}
	defer rows.Close()

	departments := []department.Department{}
	for rows.Next() {
		d, err := scanDepartment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan department: %w", err)
		}
		departments = append(departments, d)
	}

	return departments, rows.Err()
}

// Update implements department.DepartmentRepository.
func (r *departmentRepositoryImpl) Update(ctx context.Context, dept department.Department) (department.Department, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE departments
		SET name = $1, description = $2, updated_at = NOW()
		WHERE id = $3
		RETURNING ` + departmentColumns

	updated, err := scanDepartment(q.QueryRow(ctx, query, dept.Name, dept.Description, dept.ID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return department.Department{}, department.ErrDepartmentNotFound
		}
		if _, ok := uniqueViolation(err); ok {
			return department.Department{}, department.ErrDepartmentNameExists
		}
		return department.Department{}, fmt.Errorf("update department %s: %w", dept.ID, err)
	}

	return updated, nil
}

// Delete implements department.DepartmentRepository. Users and employees of the
// department are detached by the ON DELETE SET NULL references.
func (r *departmentRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM departments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete department %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return department.ErrDepartmentNotFound
	}

	return nil
}
