// Package memory holds map-backed repositories with the same error contracts
// as the database implementations. Services and handlers are tested against them.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/cmlabs-hris/scan-attendance-go/internal/domain/wallet"
	"github.com/google/uuid"
)

type WalletRepository struct {
	mu      sync.Mutex
	strict  bool
	wallets map[string]*wallet.AttendanceWallet

	// SaveErr, when set, is returned by the next Save instead of writing.
	SaveErr error
}

func NewWalletRepository(strict bool) *WalletRepository {
	return &WalletRepository{strict: strict, wallets: make(map[string]*wallet.AttendanceWallet)}
}

func cloneWallet(w *wallet.AttendanceWallet) *wallet.AttendanceWallet {
	entries := make([]wallet.ScanEntry, len(w.Entries))
	copy(entries, w.Entries)
	return &wallet.AttendanceWallet{
		ID:         w.ID,
		EmployeeID: w.EmployeeID,
		Entries:    entries,
		Version:    w.Version,
		CreatedAt:  w.CreatedAt,
		UpdatedAt:  w.UpdatedAt,
	}
}

// FindByEmployee implements wallet.WalletRepository.
func (r *WalletRepository) FindByEmployee(_ context.Context, employeeID string) (*wallet.AttendanceWallet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	w, ok := r.wallets[employeeID]
	if !ok {
		return nil, wallet.ErrWalletNotFound
	}
	return cloneWallet(w), nil
}

// Save implements wallet.WalletRepository.
func (r *WalletRepository) Save(_ context.Context, w *wallet.AttendanceWallet) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.SaveErr != nil {
		err := r.SaveErr
		r.SaveErr = nil
		return err
	}

	now := time.Now().UTC()
	stored, exists := r.wallets[w.EmployeeID]
	switch {
	case !exists && !w.IsNew() && !r.strict:
		return wallet.ErrWalletNotFound
	case !exists && !w.IsNew():
		return wallet.ErrConcurrentScan
	case exists && r.strict && stored.Version != w.Version:
		return wallet.ErrConcurrentScan
	}

	if exists {
		w.ID, w.CreatedAt = stored.ID, stored.CreatedAt
		w.Version = stored.Version + 1
	} else {
		w.ID, w.CreatedAt = uuid.NewString(), now
		w.Version = 1
	}
	w.UpdatedAt = now

	r.wallets[w.EmployeeID] = cloneWallet(w)
	return nil
}

// ListScannedBy implements wallet.WalletRepository.
func (r *WalletRepository) ListScannedBy(_ context.Context, operatorID string) ([]*wallet.AttendanceWallet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	result := []*wallet.AttendanceWallet{}
	for _, w := range r.wallets {
		for _, e := range w.Entries {
			if e.ScannedBy == operatorID {
				result = append(result, cloneWallet(w))
				break
			}
		}
	}
	return result, nil
}
