package department

import (
	"context"
	"testing"

	"github.com/cmlabs-hris/scan-attendance-go/internal/domain/auth"
	"github.com/cmlabs-hris/scan-attendance-go/internal/domain/department"
	"github.com/cmlabs-hris/scan-attendance-go/internal/domain/user"
	"github.com/cmlabs-hris/scan-attendance-go/internal/repository/memory"
	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func contextForUser(t *testing.T, userID string) context.Context {
	t.Helper()
	ja := jwtauth.New("HS256", []byte("test-secret"), nil)
	token, _, err := ja.Encode(map[string]interface{}{"user_id": userID, "type": "access"})
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), token, nil)
}

func TestDepartmentCRUD(t *testing.T) {
	ctx := context.Background()
	svc := NewDepartmentService(memory.NewDepartmentRepository(), memory.NewUserRepository())

	created, err := svc.Create(ctx, department.CreateDepartmentRequest{Name: " Packing "})
	require.NoError(t, err)
	assert.Equal(t, "Packing", created.Name)

	_, err = svc.Create(ctx, department.CreateDepartmentRequest{Name: "Packing"})
	assert.ErrorIs(t, err, department.ErrDepartmentNameExists)

	_, err = svc.Create(ctx, department.CreateDepartmentRequest{Name: ""})
	assert.Error(t, err)

	second, err := svc.Create(ctx, department.CreateDepartmentRequest{Name: "Dispatch"})
	require.NoError(t, err)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)

	description := "Outbound trucks"
	updated, err := svc.Update(ctx, department.UpdateDepartmentRequest{ID: second.ID, Description: &description})
	require.NoError(t, err)
	assert.Equal(t, "Dispatch", updated.Name)
	require.NotNil(t, updated.Description)
	assert.Equal(t, description, *updated.Description)

	name := "Packing"
	_, err = svc.Update(ctx, department.UpdateDepartmentRequest{ID: second.ID, Name: &name})
	assert.ErrorIs(t, err, department.ErrDepartmentNameExists)

	require.NoError(t, svc.Delete(ctx, created.ID))
	_, err = svc.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, department.ErrDepartmentNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, created.ID), department.ErrDepartmentNotFound)
}

func TestGetMine(t *testing.T) {
	ctx := context.Background()
	departments := memory.NewDepartmentRepository()
	users := memory.NewUserRepository()
	svc := NewDepartmentService(departments, users)

	dept, err := departments.Create(ctx, department.Department{Name: "Packing"})
	require.NoError(t, err)
	supervisor, err := users.Create(ctx, user.User{Username: "sup", Role: user.RoleSupervisor, DepartmentID: &dept.ID})
	require.NoError(t, err)
	admin, err := users.Create(ctx, user.User{Username: "boss", Role: user.RoleAdmin})
	require.NoError(t, err)

	mine, err := svc.GetMine(contextForUser(t, supervisor.ID))
	require.NoError(t, err)
	assert.Equal(t, dept.ID, mine.ID)

	_, err = svc.GetMine(contextForUser(t, admin.ID))
	assert.ErrorIs(t, err, department.ErrNoAssignedDepartment)

	_, err = svc.GetMine(ctx)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}
