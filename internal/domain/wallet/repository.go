package wallet

import (
	"context"
)

// WalletRepository persists attendance wallets with whole-document writes.
type WalletRepository interface {
	// FindByEmployee returns ErrWalletNotFound when the employee has never been scanned.
	FindByEmployee(ctx context.Context, employeeID string) (*AttendanceWallet, error)

	// Save writes the entire wallet in one operation. When strict versioning is
	// enabled it fails with ErrConcurrentScan if the stored version moved since
	// the wallet was loaded. On success Version, CreatedAt and UpdatedAt are refreshed.
	Save(ctx context.Context, w *AttendanceWallet) error

	// ListScannedBy returns every wallet holding at least one entry recorded by operatorID.
	ListScannedBy(ctx context.Context, operatorID string) ([]*AttendanceWallet, error)
}
