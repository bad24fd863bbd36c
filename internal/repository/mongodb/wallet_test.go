package mongodb_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/cmlabs-hris/scan-attendance-go/internal/domain/wallet"
	"github.com/cmlabs-hris/scan-attendance-go/internal/pkg/database"
	"github.com/cmlabs-hris/scan-attendance-go/internal/repository/mongodb"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupMongo(t *testing.T) *database.MongoDB {
	t.Helper()
	uri := os.Getenv("TEST_MONGO_URI")
	if uri == "" {
		t.Skip("TEST_MONGO_URI not set")
	}

	ctx := context.Background()
	db, err := database.NewMongoDB(ctx, uri, fmt.Sprintf("wallet_test_%d", time.Now().UnixNano()))
	require.NoError(t, err)
	require.NoError(t, mongodb.EnsureIndexes(ctx, db))

	t.Cleanup(func() {
		_ = db.Database.Drop(context.Background())
		_ = db.Close(context.Background())
	})
	return db
}

func entry(ts time.Time, scanType wallet.ScanType, dept, operator string) wallet.ScanEntry {
	return wallet.ScanEntry{Timestamp: ts, ScanType: scanType, DepartmentID: dept, ScannedBy: operator}
}

func TestWalletRepository_SaveAndFind(t *testing.T) {
	db := setupMongo(t)
	ctx := context.Background()
	repo := mongodb.NewWalletRepository(db, true)
	employeeID := uuid.NewString()

	_, err := repo.FindByEmployee(ctx, employeeID)
	assert.ErrorIs(t, err, wallet.ErrWalletNotFound)

	ts := time.Date(2025, 10, 4, 9, 15, 0, 0, time.UTC)
	w := wallet.NewWallet(employeeID)
	w.Append(entry(ts, wallet.ScanTypeIn, "dept-a", "op-1"))
	require.NoError(t, repo.Save(ctx, w))
	assert.Equal(t, int64(1), w.Version)

	loaded, err := repo.FindByEmployee(ctx, employeeID)
	require.NoError(t, err)
	require.Len(t, loaded.Entries, 1)
	assert.True(t, ts.Equal(loaded.Entries[0].Timestamp))

	loaded.Append(entry(ts.Add(time.Hour), wallet.ScanTypeOut, "dept-a", "op-1"))
	require.NoError(t, repo.Save(ctx, loaded))
	assert.Equal(t, int64(2), loaded.Version)
}

func TestWalletRepository_StrictRejectsStaleVersion(t *testing.T) {
	db := setupMongo(t)
	ctx := context.Background()
	repo := mongodb.NewWalletRepository(db, true)
	employeeID := uuid.NewString()
	ts := time.Now().UTC()

	w := wallet.NewWallet(employeeID)
	w.Append(entry(ts, wallet.ScanTypeIn, "dept-a", "op-1"))
	require.NoError(t, repo.Save(ctx, w))

	first, err := repo.FindByEmployee(ctx, employeeID)
	require.NoError(t, err)
	second, err := repo.FindByEmployee(ctx, employeeID)
	require.NoError(t, err)

	first.Append(entry(ts.Add(time.Minute), wallet.ScanTypeOut, "dept-a", "op-1"))
	require.NoError(t, repo.Save(ctx, first))

	second.Append(entry(ts.Add(time.Minute), wallet.ScanTypeOut, "dept-a", "op-2"))
	assert.ErrorIs(t, repo.Save(ctx, second), wallet.ErrConcurrentScan)

	dup := wallet.NewWallet(employeeID)
	assert.ErrorIs(t, repo.Save(ctx, dup), wallet.ErrConcurrentScan)
}

func TestWalletRepository_ListScannedBy(t *testing.T) {
	db := setupMongo(t)
	ctx := context.Background()
	repo := mongodb.NewWalletRepository(db, false)
	ts := time.Now().UTC()

	for _, operator := range []string{"op-1", "op-2", "op-1"} {
		w := wallet.NewWallet(uuid.NewString())
		w.Append(entry(ts, wallet.ScanTypeIn, "dept-a", operator))
		require.NoError(t, repo.Save(ctx, w))
	}

	wallets, err := repo.ListScannedBy(ctx, "op-1")
	require.NoError(t, err)
	assert.Len(t, wallets, 2)
}
