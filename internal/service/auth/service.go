package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/scan-attendance-go/internal/domain/auth"
	"github.com/cmlabs-hris/scan-attendance-go/internal/domain/department"
	"github.com/cmlabs-hris/scan-attendance-go/internal/domain/user"
	"github.com/cmlabs-hris/scan-attendance-go/internal/pkg/jwt"
	"github.com/go-chi/jwtauth/v5"
	"golang.org/x/crypto/bcrypt"
)

type AuthServiceImpl struct {
	users       user.UserRepository
	departments department.DepartmentRepository
	jwt.Service
	bcryptCost int
}

func NewAuthService(userRepository user.UserRepository, departmentRepository department.DepartmentRepository, jwtService jwt.Service) auth.AuthService {
	return &AuthServiceImpl{
		users:       userRepository,
		departments: departmentRepository,
		Service:     jwtService,
		bcryptCost:  bcrypt.DefaultCost,
	}
}

func (a *AuthServiceImpl) hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), a.bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Register implements auth.AuthService.
func (a *AuthServiceImpl) Register(ctx context.Context, req auth.RegisterRequest) (auth.UserResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.UserResponse{}, err
	}

	exists, err := a.users.ExistsByUsername(ctx, req.Username)
	if err != nil {
		return auth.UserResponse{}, fmt.Errorf("failed to check username: %w", err)
	}
	if exists {
		return auth.UserResponse{}, user.ErrUsernameExists
	}

	if req.DepartmentID != nil {
		if _, err := a.departments.GetByID(ctx, *req.DepartmentID); err != nil {
			return auth.UserResponse{}, err
		}
	}

	hashed, err := a.hashPassword(req.Password)
	if err != nil {
		return auth.UserResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}

	created, err := a.users.Create(ctx, user.User{
		Username:     req.Username,
		PasswordHash: hashed,
		Role:         user.Role(req.Role),
		DepartmentID: req.DepartmentID,
	})
	if err != nil {
		return auth.UserResponse{}, err
	}

	return auth.NewUserResponse(created), nil
}

// Login implements auth.AuthService.
func (a *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.TokenResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.TokenResponse{}, err
	}

	userData, err := a.users.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.TokenResponse{}, auth.ErrInvalidCredentials
		}
		return auth.TokenResponse{}, fmt.Errorf("failed to get user by username: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(userData.PasswordHash), []byte(req.Password)); err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}

	accessToken, expiresAt, err := a.Service.GenerateAccessToken(userData.ID, userData.Username, userData.Role, userData.TokenDepartmentID())
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to generate access token: %w", err)
	}

	return auth.TokenResponse{
		AccessToken:          accessToken,
		AccessTokenExpiresAt: expiresAt,
		User:                 auth.NewUserResponse(userData),
	}, nil
}

// Me implements auth.AuthService.
func (a *AuthServiceImpl) Me(ctx context.Context) (auth.UserResponse, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return auth.UserResponse{}, auth.ErrInvalidToken
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return auth.UserResponse{}, auth.ErrInvalidToken
	}

	u, err := a.users.GetByID(ctx, userID)
	if err != nil {
		return auth.UserResponse{}, err
	}

	return auth.NewUserResponse(u), nil
}
