package user

import "time"

type Role string

const (
	RoleAdmin      Role = "admin"      // Manages departments, employees and users
	RoleSupervisor Role = "supervisor" // Scans employees for one department
	RoleUser       Role = "user"       // Read-only access
)

func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleSupervisor, RoleUser:
		return true
	}
	return false
}

type User struct {
	ID           string
	Username     string
	PasswordHash string
	Role         Role
	DepartmentID *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsAdmin checks if user is an administrator
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// IsSupervisor checks if user scans for a department
func (u *User) IsSupervisor() bool {
	return u.Role == RoleSupervisor
}

// TokenDepartmentID returns the department placed in access tokens.
// Only supervisors carry one.
func (u *User) TokenDepartmentID() *string {
	if !u.IsSupervisor() {
		return nil
	}
	return u.DepartmentID
}
