package wallet

import "errors"

// Attendance wallet domain errors
var (
	// Operator errors
	ErrOperatorUnauthorized      = errors.New("operator is not authenticated")
	ErrOperatorWithoutDepartment = errors.New("operator has no assigned department")

	// Wallet errors
	ErrWalletNotFound = errors.New("attendance wallet not found")
	ErrConcurrentScan = errors.New("attendance wallet was modified by another scan, please scan again")
	ErrSampleDisabled = errors.New("sample attendance entries are only available in development")
)
