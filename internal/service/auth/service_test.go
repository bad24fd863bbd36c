package auth

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/scan-attendance-go/internal/domain/auth"
	"github.com/cmlabs-hris/scan-attendance-go/internal/domain/department"
	"github.com/cmlabs-hris/scan-attendance-go/internal/domain/user"
	"github.com/cmlabs-hris/scan-attendance-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/scan-attendance-go/internal/repository/memory"
	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "test-secret-key-for-jwt"

type authEnv struct {
	svc         *AuthServiceImpl
	jwt         jwt.Service
	users       *memory.UserRepository
	departments *memory.DepartmentRepository
}

func newAuthEnv(t *testing.T) *authEnv {
	t.Helper()
	env := &authEnv{
		jwt:         jwt.NewJWTService(testSecret, time.Hour, false),
		users:       memory.NewUserRepository(),
		departments: memory.NewDepartmentRepository(),
	}
	svc := NewAuthService(env.users, env.departments, env.jwt).(*AuthServiceImpl)
	svc.bcryptCost = bcrypt.MinCost
	env.svc = svc
	return env
}

func TestRegister(t *testing.T) {
	env := newAuthEnv(t)
	ctx := context.Background()

	t.Run("defaults to admin and normalizes username", func(t *testing.T) {
		resp, err := env.svc.Register(ctx, auth.RegisterRequest{Username: "  Boss1 ", Password: "password123"})
		require.NoError(t, err)
		assert.Equal(t, "boss1", resp.Username)
		assert.Equal(t, "admin", resp.Role)

		stored, err := env.users.GetByUsername(ctx, "boss1")
		require.NoError(t, err)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("password123")))
	})

	t.Run("duplicate username", func(t *testing.T) {
		_, err := env.svc.Register(ctx, auth.RegisterRequest{Username: "boss1", Password: "password123"})
		assert.ErrorIs(t, err, user.ErrUsernameExists)
	})

	t.Run("invalid username", func(t *testing.T) {
		_, err := env.svc.Register(ctx, auth.RegisterRequest{Username: "bad name!", Password: "password123"})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "username")
	})

	t.Run("supervisor requires department", func(t *testing.T) {
		_, err := env.svc.Register(ctx, auth.RegisterRequest{Username: "sup", Password: "password123", Role: "supervisor"})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "departmentId")
	})

	t.Run("supervisor with unknown department", func(t *testing.T) {
		missing := "0194f1a2-6b3c-7d4e-8f90-a1b2c3d4e5f6"
		_, err := env.svc.Register(ctx, auth.RegisterRequest{Username: "sup", Password: "password123", Role: "supervisor", DepartmentID: &missing})
		assert.ErrorIs(t, err, department.ErrDepartmentNotFound)
	})

	t.Run("supervisor with department", func(t *testing.T) {
		dept, err := env.departments.Create(ctx, department.Department{Name: "Packing"})
		require.NoError(t, err)

		resp, err := env.svc.Register(ctx, auth.RegisterRequest{Username: "sup", Password: "password123", Role: "supervisor", DepartmentID: &dept.ID})
		require.NoError(t, err)
		require.NotNil(t, resp.DepartmentID)
		assert.Equal(t, dept.ID, *resp.DepartmentID)
	})
}

func TestLogin(t *testing.T) {
	env := newAuthEnv(t)
	ctx := context.Background()

	dept, err := env.departments.Create(ctx, department.Department{Name: "Packing"})
	require.NoError(t, err)
	_, err = env.svc.Register(ctx, auth.RegisterRequest{Username: "guard", Password: "password123", Role: "supervisor", DepartmentID: &dept.ID})
	require.NoError(t, err)

	t.Run("success embeds supervisor department", func(t *testing.T) {
		resp, err := env.svc.Login(ctx, auth.LoginRequest{Username: "Guard", Password: "password123"})
		require.NoError(t, err)
		assert.NotEmpty(t, resp.AccessToken)
		assert.Equal(t, "guard", resp.User.Username)

		token, err := jwtauth.VerifyToken(env.jwt.JWTAuth(), resp.AccessToken)
		require.NoError(t, err)
		claims := token.PrivateClaims()
		assert.Equal(t, dept.ID, claims["department_id"])
		assert.Equal(t, "supervisor", claims["role"])
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := env.svc.Login(ctx, auth.LoginRequest{Username: "guard", Password: "nope-nope"})
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := env.svc.Login(ctx, auth.LoginRequest{Username: "ghost", Password: "password123"})
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})
}

func TestMe(t *testing.T) {
	env := newAuthEnv(t)
	ctx := context.Background()

	registered, err := env.svc.Register(ctx, auth.RegisterRequest{Username: "boss", Password: "password123"})
	require.NoError(t, err)

	tokenString, _, err := env.jwt.GenerateAccessToken(registered.ID, registered.Username, user.RoleAdmin, nil)
	require.NoError(t, err)
	token, err := jwtauth.VerifyToken(env.jwt.JWTAuth(), tokenString)
	require.NoError(t, err)

	me, err := env.svc.Me(jwtauth.NewContext(ctx, token, nil))
	require.NoError(t, err)
	assert.Equal(t, registered.ID, me.ID)

	_, err = env.svc.Me(ctx)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}
