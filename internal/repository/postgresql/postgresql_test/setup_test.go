package postgresql_test

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/cmlabs-hris/scan-attendance-go/internal/pkg/database"
	"github.com/cmlabs-hris/scan-attendance-go/internal/repository/postgresql"
	"github.com/stretchr/testify/require"
)

var testDB *database.DB

func TestMain(m *testing.M) {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		fmt.Println("TEST_DATABASE_URL not set, skipping postgresql repository tests")
		os.Exit(0)
	}

	ctx := context.Background()
	db, err := database.NewPostgreSQLDB(ctx, dsn)
	if err != nil {
		fmt.Printf("failed to connect to test database: %v\n", err)
		os.Exit(1)
	}
	if err := postgresql.Migrate(ctx, db); err != nil {
		fmt.Printf("failed to migrate test database: %v\n", err)
		os.Exit(1)
	}
	testDB = db

	code := m.Run()
	db.Close()
	os.Exit(code)
}

// truncateAllTables empties every table before and after a test
func truncateAllTables(t *testing.T) {
	t.Helper()
	ctx := context.Background()

	_, err := testDB.Exec(ctx, `TRUNCATE TABLE attendance_wallets, employees, users, departments CASCADE`)
	require.NoError(t, err)

	t.Cleanup(func() {
		_, err := testDB.Exec(context.Background(), `TRUNCATE TABLE attendance_wallets, employees, users, departments CASCADE`)
		require.NoError(t, err)
	})
}
