package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cmlabs-hris/scan-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/scan-attendance-go/internal/domain/wallet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWalletRepository_StrictVersioning(t *testing.T) {
	ctx := context.Background()
	repo := NewWalletRepository(true)

	w := wallet.NewWallet("emp-1")
	w.Append(wallet.ScanEntry{Timestamp: time.Now(), ScanType: wallet.ScanTypeIn, DepartmentID: "A"})
	require.NoError(t, repo.Save(ctx, w))
	assert.Equal(t, int64(1), w.Version)

	first, err := repo.FindByEmployee(ctx, "emp-1")
	require.NoError(t, err)
	second, err := repo.FindByEmployee(ctx, "emp-1")
	require.NoError(t, err)

	require.NoError(t, repo.Save(ctx, first))
	assert.ErrorIs(t, repo.Save(ctx, second), wallet.ErrConcurrentScan)
	assert.ErrorIs(t, repo.Save(ctx, wallet.NewWallet("emp-1")), wallet.ErrConcurrentScan)
}

func TestWalletRepository_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewWalletRepository(false)

	w := wallet.NewWallet("emp-1")
	require.NoError(t, repo.Save(ctx, w))

	loaded, err := repo.FindByEmployee(ctx, "emp-1")
	require.NoError(t, err)
	loaded.Append(wallet.ScanEntry{ScanType: wallet.ScanTypeIn})

	again, err := repo.FindByEmployee(ctx, "emp-1")
	require.NoError(t, err)
	assert.Empty(t, again.Entries)
}

func TestWalletRepository_SaveErr(t *testing.T) {
	repo := NewWalletRepository(true)
	boom := errors.New("boom")
	repo.SaveErr = boom

	assert.ErrorIs(t, repo.Save(context.Background(), wallet.NewWallet("emp-1")), boom)
	assert.NoError(t, repo.Save(context.Background(), wallet.NewWallet("emp-1")))
}

func TestEmployeeRepository_UniqueFields(t *testing.T) {
	ctx := context.Background()
	repo := NewEmployeeRepository()
	aadhaar := "123412341234"

	first, err := repo.Create(ctx, employee.Employee{EmployeeCode: "AAAA1111", Name: "A", AadhaarNumber: &aadhaar})
	require.NoError(t, err)

	_, err = repo.Create(ctx, employee.Employee{EmployeeCode: "AAAA1111", Name: "B"})
	assert.ErrorIs(t, err, employee.ErrEmployeeCodeExists)

	_, err = repo.Create(ctx, employee.Employee{EmployeeCode: "BBBB2222", Name: "B", AadhaarNumber: &aadhaar})
	assert.ErrorIs(t, err, employee.ErrAadhaarExists)

	exists, err := repo.ExistsByUniqueField(ctx, employee.FieldAadhaarNumber, aadhaar, &first.ID)
	require.NoError(t, err)
	assert.False(t, exists)
}
