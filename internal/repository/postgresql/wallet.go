package postgresql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/scan-attendance-go/internal/domain/wallet"
	"github.com/cmlabs-hris/scan-attendance-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type walletRepositoryImpl struct {
	db *database.DB
	// strict rejects writes whose loaded version is stale
	strict bool
}

// NewWalletRepository stores each wallet as one row with its entries in a JSONB array.
func NewWalletRepository(db *database.DB, strict bool) wallet.WalletRepository {
	return &walletRepositoryImpl{db: db, strict: strict}
}

const walletColumns = `id, employee_id, entries, version, created_at, updated_at`

func scanWallet(row pgx.Row) (*wallet.AttendanceWallet, error) {
	var (
		w   wallet.AttendanceWallet
		raw []byte
	)
	if err := row.Scan(&w.ID, &w.EmployeeID, &raw, &w.Version, &w.CreatedAt, &w.UpdatedAt); err != nil {
		return nil, err
	}

	w.Entries = []wallet.ScanEntry{}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &w.Entries); err != nil {
			return nil, fmt.Errorf("decode wallet entries: %w", err)
		}
	}

	return &w, nil
}

// FindByEmployee implements wallet.WalletRepository.
func (r *walletRepositoryImpl) FindByEmployee(ctx context.Context, employeeID string) (*wallet.AttendanceWallet, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + walletColumns + ` FROM attendance_wallets WHERE employee_id = $1`

	w, err := scanWallet(q.QueryRow(ctx, query, employeeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, wallet.ErrWalletNotFound
		}
		return nil, fmt.Errorf("find wallet of employee %s: %w", employeeID, err)
	}

	return w, nil
}

// Save implements wallet.WalletRepository.
func (r *walletRepositoryImpl) Save(ctx context.Context, w *wallet.AttendanceWallet) error {
	entries := w.Entries
	if entries == nil {
		entries = []wallet.ScanEntry{}
	}
	raw, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("encode wallet entries: %w", err)
	}

	if w.IsNew() {
		return r.insert(ctx, w, raw)
	}
	return r.update(ctx, w, raw)
}

func (r *walletRepositoryImpl) insert(ctx context.Context, w *wallet.AttendanceWallet, raw []byte) error {
	q := GetQuerier(ctx, r.db)

	id, err := uuid.NewV7()
	if err != nil {
		return fmt.Errorf("generate wallet id: %w", err)
	}

	// A concurrent first scan may have created the row between load and save.
	onConflict := `DO NOTHING`
	if !r.strict {
		onConflict = `DO UPDATE SET entries = EXCLUDED.entries,
			version = attendance_wallets.version + 1, updated_at = NOW()`
	}

	query := `
		INSERT INTO attendance_wallets (id, employee_id, entries, version)
		VALUES ($1, $2, $3, 1)
		ON CONFLICT (employee_id) ` + onConflict + `
		RETURNING id, version, created_at, updated_at`

	err = q.QueryRow(ctx, query, id.String(), w.EmployeeID, raw).Scan(&w.ID, &w.Version, &w.CreatedAt, &w.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return wallet.ErrConcurrentScan
		}
		return fmt.Errorf("insert wallet of employee %s: %w", w.EmployeeID, err)
	}

	return nil
}

func (r *walletRepositoryImpl) update(ctx context.Context, w *wallet.AttendanceWallet, raw []byte) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendance_wallets
		SET entries = $1, version = version + 1, updated_at = NOW()
		WHERE employee_id = $2`
	args := []interface{}{raw, w.EmployeeID}
	if r.strict {
		query += ` AND version = $3`
		args = append(args, w.Version)
	}
	query += ` RETURNING id, version, created_at, updated_at`

	err := q.QueryRow(ctx, query, args...).Scan(&w.ID, &w.Version, &w.CreatedAt, &w.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			if r.strict {
				return wallet.ErrConcurrentScan
			}
			return wallet.ErrWalletNotFound
		}
		return fmt.Errorf("update wallet of employee %s: %w", w.EmployeeID, err)
	}

	return nil
}

// ListScannedBy implements wallet.WalletRepository.
func (r *walletRepositoryImpl) ListScannedBy(ctx context.Context, operatorID string) ([]*wallet.AttendanceWallet, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + walletColumns + `
		FROM attendance_wallets
		WHERE entries @> jsonb_build_array(jsonb_build_object('scannedBy', $1::text))
		ORDER BY updated_at DESC`

	rows, err := q.Query(ctx, query, operatorID)
	if err != nil {
		return nil, fmt.Errorf("list wallets scanned by %s: %w", operatorID, err)
	}
	defer rows.Close()

	wallets := []*wallet.AttendanceWallet{}
	for rows.Next() {
		w, err := scanWallet(rows)
		if err != nil {
			return nil, fmt.Errorf("scan wallet: %w", err)
		}
		wallets = append(wallets, w)
	}

	return wallets, rows.Err()
}
