package wallet

import (
	"context"

	"github.com/cmlabs-hris/scan-attendance-go/internal/pkg/sse"
)

// AttendanceService defines scan recording and payroll reporting.
type AttendanceService interface {
	// RecordScan classifies and stores a scan by the operator found in ctx
	RecordScan(ctx context.Context, req ScanRequest) (ScanResponse, error)

	// GetWallet returns the raw scan history of an employee
	GetWallet(ctx context.Context, employeeID string) (WalletResponse, error)

	// GetWorkLogs aggregates an employee's history into payroll records
	GetWorkLogs(ctx context.Context, req WorkLogRequest) ([]WorkLogRecord, error)

	// GetMyScans lists every entry recorded by the operator found in ctx, newest first
	GetMyScans(ctx context.Context) ([]SupervisorScanLog, error)

	// AddSampleEntries appends fixed demo sessions to an existing wallet (development only)
	AddSampleEntries(ctx context.Context, employeeID string) (WalletResponse, error)

	// Subscribe opens the live scan feed of a user. Admins receive every scan,
	// other users the scans they record.
	Subscribe(ctx context.Context, userID string) (<-chan sse.Event, func(), error)
}
