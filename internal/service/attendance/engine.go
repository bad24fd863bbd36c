package attendance

import (
	"time"

	"github.com/cmlabs-hris/scan-attendance-go/internal/domain/wallet"
)

// autoCloseLead places a synthetic OUT strictly before the scan that triggers it.
const autoCloseLead = time.Second

// scanPlan is the outcome of classifying one scan against a wallet.
type scanPlan struct {
	ScanType wallet.ScanType
	// AutoClosed is the synthetic OUT ending another department's open session, if any.
	AutoClosed *wallet.ScanEntry
	Entry      wallet.ScanEntry
}

// Entries returns the entries to append, in order.
func (p scanPlan) Entries() []wallet.ScanEntry {
	if p.AutoClosed != nil {
		return []wallet.ScanEntry{*p.AutoClosed, p.Entry}
	}
	return []wallet.ScanEntry{p.Entry}
}

// planScan decides whether a scan by op is an IN or an OUT.
// IN and OUT alternate per department. A resulting IN that follows an open IN
// of another department first closes that session with an auto-closed OUT.
func planScan(w *wallet.AttendanceWallet, op wallet.Operator, now time.Time) scanPlan {
	scanType := wallet.ScanTypeIn
	if last, ok := w.LastEntryInDepartment(op.DepartmentID); ok && last.ScanType == wallet.ScanTypeIn {
		scanType = wallet.ScanTypeOut
	}

	plan := scanPlan{
		ScanType: scanType,
		Entry: wallet.ScanEntry{
			Timestamp:    now,
			ScanType:     scanType,
			DepartmentID: op.DepartmentID,
			ScannedBy:    op.UserID,
		},
	}

	if scanType != wallet.ScanTypeIn {
		return plan
	}

	last, ok := w.LastEntry()
	if ok && last.ScanType == wallet.ScanTypeIn && last.DepartmentID != op.DepartmentID {
		plan.AutoClosed = &wallet.ScanEntry{
			Timestamp:    now.Add(-autoCloseLead),
			ScanType:     wallet.ScanTypeOut,
			DepartmentID: last.DepartmentID,
			ScannedBy:    op.UserID,
			AutoClosed:   true,
		}
	}

	return plan
}
