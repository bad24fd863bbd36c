package wallet

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/scan-attendance-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ========================================
// SCAN DTOs
// ========================================

type ScanRequest struct {
	EmployeeCode string `json:"empCode"`
}

func (r *ScanRequest) Validate() error {
	var errs validator.ValidationErrors

	r.EmployeeCode = strings.ToUpper(strings.TrimSpace(r.EmployeeCode))
	if validator.IsEmpty(r.EmployeeCode) {
		errs = append(errs, validator.ValidationError{
			Field:   "empCode",
			Message: "empCode is required",
		})
	} else if !validator.IsValidEmployeeCode(r.EmployeeCode) {
		errs = append(errs, validator.ValidationError{
			Field:   "empCode",
			Message: "empCode must be 8 letters or digits",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ScanResponse struct {
	EmployeeID   string   `json:"employeeId"`
	LastScanType ScanType `json:"lastScanType"`
}

// ========================================
// WALLET DTOs
// ========================================

type WalletResponse struct {
	ID         string      `json:"id"`
	EmployeeID string      `json:"employeeId"`
	Entries    []ScanEntry `json:"entries"`
	CreatedAt  string      `json:"createdAt"`
	UpdatedAt  string      `json:"updatedAt"`
}

func NewWalletResponse(w *AttendanceWallet) WalletResponse {
	entries := w.Entries
	if entries == nil {
		entries = []ScanEntry{}
	}
	return WalletResponse{
		ID:         w.ID,
		EmployeeID: w.EmployeeID,
		Entries:    entries,
		CreatedAt:  w.CreatedAt.Format(time.RFC3339),
		UpdatedAt:  w.UpdatedAt.Format(time.RFC3339),
	}
}

// ========================================
// REPORT DTOs
// ========================================

type WorkLogRequest struct {
	EmployeeID string           `json:"employeeId"`
	HourlyRate *decimal.Decimal `json:"hourlyRate,omitempty"`
}

func (r *WorkLogRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employeeId",
			Message: "employeeId must be a valid id",
		})
	}

	if r.HourlyRate != nil && !r.HourlyRate.IsPositive() {
		errs = append(errs, validator.ValidationError{
			Field:   "hourlyRate",
			Message: "hourlyRate must be greater than 0",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// SupervisorScanLog is one entry recorded by the current operator, flattened
// across wallets for the supervisor history screen.
type SupervisorScanLog struct {
	EmployeeID     string    `json:"employeeId"`
	EmployeeName   string    `json:"employeeName"`
	DepartmentID   string    `json:"departmentId"`
	DepartmentName string    `json:"departmentName"`
	ScanType       ScanType  `json:"scanType"`
	Timestamp      time.Time `json:"timestamp"`
	AutoClosed     bool      `json:"autoClosed,omitempty"`
}

type SSETokenResponse struct {
	Token     string `json:"token"`
	ExpiresIn int    `json:"expiresIn"`
}

// ScanEvent is pushed to the operator's live stream after each scan.
type ScanEvent struct {
	EmployeeID             string    `json:"employeeId"`
	EmployeeName           string    `json:"employeeName"`
	DepartmentID           string    `json:"departmentId"`
	ScanType               ScanType  `json:"scanType"`
	AutoClosedDepartmentID *string   `json:"autoClosedDepartmentId,omitempty"`
	Timestamp              time.Time `json:"timestamp"`
}
