package attendance

import (
	"github.com/cmlabs-hris/scan-attendance-go/internal/domain/wallet"
	"github.com/cmlabs-hris/scan-attendance-go/internal/fixtures"
	"github.com/google/uuid"
)

// sampleEntries builds the demo entries for w. They reuse the department and
// operator of the wallet's first entry, or fresh ids for an empty wallet.
func sampleEntries(w *wallet.AttendanceWallet) []wallet.ScanEntry {
	departmentID, scannedBy := uuid.NewString(), uuid.NewString()
	if len(w.Entries) > 0 {
		departmentID, scannedBy = w.Entries[0].DepartmentID, w.Entries[0].ScannedBy
	}

	sessions := fixtures.GetSampleSessions()
	entries := make([]wallet.ScanEntry, 0, len(sessions)*2)
	for _, session := range sessions {
		entries = append(entries,
			wallet.ScanEntry{Timestamp: session.In, ScanType: wallet.ScanTypeIn, DepartmentID: departmentID, ScannedBy: scannedBy},
			wallet.ScanEntry{Timestamp: session.Out, ScanType: wallet.ScanTypeOut, DepartmentID: departmentID, ScannedBy: scannedBy},
		)
	}
	return entries
}
