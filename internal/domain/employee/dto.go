package employee

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/scan-attendance-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CreateEmployeeRequest struct {
	Name          string           `json:"name"`
	DepartmentID  *string          `json:"departmentId,omitempty"`
	Designation   *string          `json:"designation,omitempty"`
	Mobile        *string          `json:"mobile,omitempty"`
	AadhaarNumber *string          `json:"aadhaarNumber,omitempty"`
	PFID          *string          `json:"pfId,omitempty"`
	ESICID        *string          `json:"esicId,omitempty"`
	HourlyRate    *decimal.Decimal `json:"hourlyRate,omitempty"`
}

func (r *CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	r.Name = strings.TrimSpace(r.Name)
	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}

	errs = append(errs, validateOptionalFields(r.DepartmentID, r.Mobile, r.AadhaarNumber, r.HourlyRate)...)

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateEmployeeRequest struct {
	ID            string           `json:"-"`
	Name          *string          `json:"name,omitempty"`
	DepartmentID  *string          `json:"departmentId,omitempty"`
	Designation   *string          `json:"designation,omitempty"`
	Mobile        *string          `json:"mobile,omitempty"`
	AadhaarNumber *string          `json:"aadhaarNumber,omitempty"`
	PFID          *string          `json:"pfId,omitempty"`
	ESICID        *string          `json:"esicId,omitempty"`
	HourlyRate    *decimal.Decimal `json:"hourlyRate,omitempty"`
}

func (r *UpdateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id must be a valid id",
		})
	}

	if r.Name != nil {
		trimmed := strings.TrimSpace(*r.Name)
		r.Name = &trimmed
		if trimmed == "" {
			errs = append(errs, validator.ValidationError{
				Field:   "name",
				Message: "name cannot be empty",
			})
		}
	}

	errs = append(errs, validateOptionalFields(r.DepartmentID, r.Mobile, r.AadhaarNumber, r.HourlyRate)...)

	if len(errs) > 0 {
		return errs
	}

	return nil
}

func validateOptionalFields(departmentID, mobile, aadhaar *string, hourlyRate *decimal.Decimal) validator.ValidationErrors {
	var errs validator.ValidationErrors

	if departmentID != nil && !validator.IsValidUUID(*departmentID) {
		errs = append(errs, validator.ValidationError{
			Field:   "departmentId",
			Message: "departmentId must be a valid id",
		})
	}

	if mobile != nil && !validator.IsValidMobile(*mobile) {
		errs = append(errs, validator.ValidationError{
			Field:   "mobile",
			Message: ErrInvalidMobile.Error(),
		})
	}

	if aadhaar != nil && !validator.IsValidAadhaar(*aadhaar) {
		errs = append(errs, validator.ValidationError{
			Field:   "aadhaarNumber",
			Message: ErrInvalidAadhaar.Error(),
		})
	}

	if hourlyRate != nil && !hourlyRate.IsPositive() {
		errs = append(errs, validator.ValidationError{
			Field:   "hourlyRate",
			Message: ErrInvalidHourlyRate.Error(),
		})
	}

	return errs
}

type EmployeeResponse struct {
	ID              string          `json:"id"`
	EmployeeCode    string          `json:"empCode"`
	Name            string          `json:"name"`
	DepartmentID    *string         `json:"departmentId,omitempty"`
	Designation     *string         `json:"designation,omitempty"`
	Mobile          *string         `json:"mobile,omitempty"`
	AadhaarNumber   *string         `json:"aadhaarNumber,omitempty"`
	PFID            *string         `json:"pfId,omitempty"`
	ESICID          *string         `json:"esicId,omitempty"`
	HourlyRate      decimal.Decimal `json:"hourlyRate"`
	ProfileComplete bool            `json:"profileComplete"`
	CreatedAt       string          `json:"createdAt"`
	UpdatedAt       string          `json:"updatedAt"`
}

func NewEmployeeResponse(e Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:              e.ID,
		EmployeeCode:    e.EmployeeCode,
		Name:            e.Name,
		DepartmentID:    e.DepartmentID,
		Designation:     e.Designation,
		Mobile:          e.Mobile,
		AadhaarNumber:   e.AadhaarNumber,
		PFID:            e.PFID,
		ESICID:          e.ESICID,
		HourlyRate:      e.HourlyRate,
		ProfileComplete: e.ProfileComplete,
		CreatedAt:       e.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       e.UpdatedAt.Format(time.RFC3339),
	}
}
