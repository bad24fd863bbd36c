package response

import (
	"errors"
	"net/http"

	"github.com/cmlabs-hris/scan-attendance-go/internal/domain/auth"
	"github.com/cmlabs-hris/scan-attendance-go/internal/domain/department"
	"github.com/cmlabs-hris/scan-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/scan-attendance-go/internal/domain/user"
	"github.com/cmlabs-hris/scan-attendance-go/internal/domain/wallet"
	"github.com/cmlabs-hris/scan-attendance-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, err.Error())

	// User domain errors
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrUsernameExists):
		Conflict(w, "Username already exists")
	case errors.Is(err, user.ErrInsufficientPermissions):
		Forbidden(w, err.Error())

	// Department domain errors
	case errors.Is(err, department.ErrDepartmentNotFound):
		NotFound(w, "Department not found")
	case errors.Is(err, department.ErrNoAssignedDepartment):
		NotFound(w, err.Error())
	case errors.Is(err, department.ErrDepartmentNameExists):
		Conflict(w, "Department name already exists")
	case errors.Is(err, department.ErrDepartmentNameEmpty):
		BadRequest(w, err.Error(), nil)

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmployeeCodeExists),
		errors.Is(err, employee.ErrAadhaarExists),
		errors.Is(err, employee.ErrPFIDExists),
		errors.Is(err, employee.ErrESICIDExists):
		Conflict(w, err.Error())
	case errors.Is(err, employee.ErrCodeGenerationFailed):
		InternalServerError(w, err.Error())

	// Attendance wallet errors
	case errors.Is(err, wallet.ErrOperatorUnauthorized):
		Unauthorized(w, err.Error())
	case errors.Is(err, wallet.ErrOperatorWithoutDepartment):
		Forbidden(w, err.Error())
	case errors.Is(err, wallet.ErrWalletNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, wallet.ErrConcurrentScan):
		Conflict(w, err.Error())
	case errors.Is(err, wallet.ErrSampleDisabled):
		Forbidden(w, err.Error())

	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
