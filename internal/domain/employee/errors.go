package employee

import "errors"

var (
	ErrEmployeeNotFound     = errors.New("employee not found")
	ErrEmployeeCodeExists   = errors.New("employee code already exists")
	ErrAadhaarExists        = errors.New("aadhaar number already exists")
	ErrPFIDExists           = errors.New("PF ID already exists")
	ErrESICIDExists         = errors.New("ESIC ID already exists")
	ErrCodeGenerationFailed = errors.New("could not generate a unique employee code")
	ErrInvalidAadhaar       = errors.New("aadhaar number must be a 12-digit number")
	ErrInvalidMobile        = errors.New("mobile number must be a 10-digit number")
	ErrInvalidHourlyRate    = errors.New("hourly rate must be greater than 0")
)
