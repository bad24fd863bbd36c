package postgresql

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/scan-attendance-go/internal/pkg/database"
)

// schemaStatements are idempotent and run in order on startup.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS departments (
		id          UUID PRIMARY KEY,
		name        TEXT NOT NULL UNIQUE,
		description TEXT,
		created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS users (
		id            UUID PRIMARY KEY,
		username      TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		role          TEXT NOT NULL DEFAULT 'admin',
		department_id UUID REFERENCES departments(id) ON DELETE SET NULL,
		created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS employees (
		id               UUID PRIMARY KEY,
		emp_code         TEXT NOT NULL UNIQUE,
		name             TEXT NOT NULL,
		department_id    UUID REFERENCES departments(id) ON DELETE SET NULL,
		designation      TEXT,
		mobile           TEXT,
		aadhaar_number   TEXT UNIQUE,
		pf_id            TEXT UNIQUE,
		esic_id          TEXT UNIQUE,
		hourly_rate      NUMERIC(12, 2) NOT NULL DEFAULT 100,
		profile_complete BOOLEAN NOT NULL DEFAULT TRUE,
		created_at       TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at       TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	// Wallets outlive their employee, so employee_id carries no foreign key.
	`CREATE TABLE IF NOT EXISTS attendance_wallets (
		id          UUID PRIMARY KEY,
		employee_id UUID NOT NULL UNIQUE,
		entries     JSONB NOT NULL DEFAULT '[]'::jsonb,
		version     BIGINT NOT NULL DEFAULT 1,
		created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_attendance_wallets_entries ON attendance_wallets USING GIN (entries jsonb_path_ops)`,
}

// Migrate creates the tables used by the repositories when they are missing.
func Migrate(ctx context.Context, db *database.DB) error {
	for i, stmt := range schemaStatements {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema statement %d: %w", i+1, err)
		}
	}
	return nil
}
