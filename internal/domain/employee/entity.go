package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultHourlyRate applies when an employee is created without a rate.
var DefaultHourlyRate = decimal.NewFromInt(100)

type Employee struct {
	ID              string
	EmployeeCode    string
	Name            string
	DepartmentID    *string
	Designation     *string
	Mobile          *string
	AadhaarNumber   *string
	PFID            *string
	ESICID          *string
	HourlyRate      decimal.Decimal
	ProfileComplete bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
