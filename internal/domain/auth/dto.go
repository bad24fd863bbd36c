package auth

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/scan-attendance-go/internal/domain/user"
	"github.com/cmlabs-hris/scan-attendance-go/internal/pkg/validator"
)

type RegisterRequest struct {
	Username     string  `json:"username"`
	Password     string  `json:"password"`
	Role         string  `json:"role,omitempty"`
	DepartmentID *string `json:"departmentId,omitempty"`
}

func (r *RegisterRequest) Validate() error {
	var errs validator.ValidationErrors

	r.Username = strings.ToLower(strings.TrimSpace(r.Username))
	if r.Role == "" {
		r.Role = string(user.RoleAdmin)
	}

	// Username
	if validator.IsEmpty(r.Username) {
		errs = append(errs, validator.ValidationError{
			Field:   "username",
			Message: "username is required",
		})
	} else if !validator.IsValidUsername(r.Username) {
		errs = append(errs, validator.ValidationError{
			Field:   "username",
			Message: user.ErrInvalidUsername.Error(),
		})
	}

	// Password
	if len(r.Password) < 8 {
		errs = append(errs, validator.ValidationError{
			Field:   "password",
			Message: user.ErrInvalidPasswordLength.Error(),
		})
	}

	// Role
	role := user.Role(r.Role)
	if !role.IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "role",
			Message: user.ErrInvalidRole.Error(),
		})
	}

	// Department
	if r.DepartmentID != nil && !validator.IsValidUUID(*r.DepartmentID) {
		errs = append(errs, validator.ValidationError{
			Field:   "departmentId",
			Message: "departmentId must be a valid id",
		})
	} else if role == user.RoleSupervisor && r.DepartmentID == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "departmentId",
			Message: user.ErrDepartmentRequired.Error(),
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (r *LoginRequest) Validate() error {
	var errs validator.ValidationErrors

	r.Username = strings.ToLower(strings.TrimSpace(r.Username))
	if validator.IsEmpty(r.Username) {
		errs = append(errs, validator.ValidationError{
			Field:   "username",
			Message: "username is required",
		})
	}
	if r.Password == "" {
		errs = append(errs, validator.ValidationError{
			Field:   "password",
			Message: "password is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UserResponse struct {
	ID           string  `json:"id"`
	Username     string  `json:"username"`
	Role         string  `json:"role"`
	DepartmentID *string `json:"departmentId,omitempty"`
	CreatedAt    string  `json:"createdAt"`
}

func NewUserResponse(u user.User) UserResponse {
	return UserResponse{
		ID:           u.ID,
		Username:     u.Username,
		Role:         string(u.Role),
		DepartmentID: u.DepartmentID,
		CreatedAt:    u.CreatedAt.Format(time.RFC3339),
	}
}

type TokenResponse struct {
	AccessToken          string       `json:"accessToken"`
	AccessTokenExpiresAt int64        `json:"accessTokenExpiresAt"`
	User                 UserResponse `json:"user"`
}
