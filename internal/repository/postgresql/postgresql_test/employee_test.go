package postgresql_test

import (
	"context"
	"testing"

	"github.com/cmlabs-hris/scan-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/scan-attendance-go/internal/repository/postgresql"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestEmployeeRepository_CreateAndGet(t *testing.T) {
	truncateAllTables(t)
	ctx := context.Background()
	repo := postgresql.NewEmployeeRepository(testDB)

	created, err := repo.Create(ctx, employee.Employee{
		EmployeeCode:    "AB12CD34",
		Name:            "Ravi Kumar",
		AadhaarNumber:   strPtr("123412341234"),
		HourlyRate:      decimal.NewFromInt(120),
		ProfileComplete: true,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.True(t, created.HourlyRate.Equal(decimal.NewFromInt(120)))

	byCode, err := repo.GetByEmployeeCode(ctx, "AB12CD34")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byCode.ID)

	_, err = repo.GetByEmployeeCode(ctx, "ZZZZZZZZ")
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestEmployeeRepository_UniqueFields(t *testing.T) {
	truncateAllTables(t)
	ctx := context.Background()
	repo := postgresql.NewEmployeeRepository(testDB)

	first, err := repo.Create(ctx, employee.Employee{
		EmployeeCode:  "AAAA1111",
		Name:          "First",
		AadhaarNumber: strPtr("111122223333"),
		PFID:          strPtr("PF-1"),
		HourlyRate:    employee.DefaultHourlyRate,
	})
	require.NoError(t, err)

	_, err = repo.Create(ctx, employee.Employee{
		EmployeeCode:  "BBBB2222",
		Name:          "Second",
		AadhaarNumber: strPtr("111122223333"),
		HourlyRate:    employee.DefaultHourlyRate,
	})
	assert.ErrorIs(t, err, employee.ErrAadhaarExists)

	exists, err := repo.ExistsByUniqueField(ctx, employee.FieldPFID, "PF-1", nil)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsByUniqueField(ctx, employee.FieldPFID, "PF-1", &first.ID)
	require.NoError(t, err)
	assert.False(t, exists)

	_, err = repo.ExistsByUniqueField(ctx, employee.UniqueField("name; DROP TABLE employees"), "x", nil)
	assert.Error(t, err)
}

func TestEmployeeRepository_UpdateAndDelete(t *testing.T) {
	truncateAllTables(t)
	ctx := context.Background()
	repo := postgresql.NewEmployeeRepository(testDB)

	created, err := repo.Create(ctx, employee.Employee{
		EmployeeCode: "CCCC3333",
		Name:         "Before",
		HourlyRate:   employee.DefaultHourlyRate,
	})
	require.NoError(t, err)

	created.Name = "After"
	created.Mobile = strPtr("9876543210")
	updated, err := repo.Update(ctx, created)
	require.NoError(t, err)
	assert.Equal(t, "After", updated.Name)
	assert.Equal(t, "9876543210", *updated.Mobile)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, repo.Delete(ctx, created.ID))
	assert.ErrorIs(t, repo.Delete(ctx, created.ID), employee.ErrEmployeeNotFound)
}
