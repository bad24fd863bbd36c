package wallet

import (
	"time"
)

type ScanType string

const (
	ScanTypeIn  ScanType = "in"
	ScanTypeOut ScanType = "out"
)

// ScanEntry is one IN or OUT event. The json tags double as the persisted
// shape inside the wallet document.
type ScanEntry struct {
	Timestamp    time.Time `json:"timestamp"`
	ScanType     ScanType  `json:"scanType"`
	DepartmentID string    `json:"departmentId"`
	ScannedBy    string    `json:"scannedBy"`
	AutoClosed   bool      `json:"autoClosed"`
}

// AttendanceWallet holds the complete scan history of one employee.
// Entries are kept in insertion order.
type AttendanceWallet struct {
	ID         string
	EmployeeID string
	Entries    []ScanEntry
	Version    int64
	CreatedAt  time.Time
	UpdatedAt  time.Time

	// position of the most recent entry per department, by insertion order
	lastByDepartment map[string]int
}

// NewWallet returns an empty, not yet persisted wallet.
func NewWallet(employeeID string) *AttendanceWallet {
	return &AttendanceWallet{
		EmployeeID:       employeeID,
		Entries:          []ScanEntry{},
		lastByDepartment: make(map[string]int),
	}
}

// IsNew reports whether the wallet has never been saved.
func (w *AttendanceWallet) IsNew() bool {
	return w.Version == 0
}

func (w *AttendanceWallet) index() map[string]int {
	if w.lastByDepartment == nil {
		w.lastByDepartment = make(map[string]int, 4)
		for i, e := range w.Entries {
			w.lastByDepartment[e.DepartmentID] = i
		}
	}
	return w.lastByDepartment
}

// LastEntry returns the most recently appended entry across all departments.
func (w *AttendanceWallet) LastEntry() (ScanEntry, bool) {
	if len(w.Entries) == 0 {
		return ScanEntry{}, false
	}
	return w.Entries[len(w.Entries)-1], true
}

// LastEntryInDepartment returns the most recently appended entry recorded
// under departmentID.
func (w *AttendanceWallet) LastEntryInDepartment(departmentID string) (ScanEntry, bool) {
	i, ok := w.index()[departmentID]
	if !ok {
		return ScanEntry{}, false
	}
	return w.Entries[i], true
}

// Append adds entries in order and keeps the department index current.
func (w *AttendanceWallet) Append(entries ...ScanEntry) {
	idx := w.index()
	for _, e := range entries {
		w.Entries = append(w.Entries, e)
		idx[e.DepartmentID] = len(w.Entries) - 1
	}
}

// Operator is the authenticated principal recording a scan.
type Operator struct {
	UserID       string
	Username     string
	Role         string
	DepartmentID string
}

// WorkLogRecord is the payroll summary of all completed sessions of one
// department on one calendar day. It is derived and never persisted.
type WorkLogRecord struct {
	Date         string  `json:"date"`
	DepartmentID string  `json:"departmentId"`
	TotalMinutes int64   `json:"totalMinutes"`
	Hours        int64   `json:"hours"`
	Minutes      int64   `json:"minutes"`
	TotalHours   float64 `json:"totalHours"`
	SalaryEarned float64 `json:"salaryEarned"`
}
