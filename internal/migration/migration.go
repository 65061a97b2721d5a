package migration

import (
	"context"
	"fmt"

	"gosurvey/internal/errors"

	"github.com/jmoiron/sqlx"
)

// Migrator defines the interface for database migration operations
type Migrator interface {
	Run(ctx context.Context, db *sqlx.DB) error
	Version() string
}

// MigrationRunner creates the relational cache schema. Every statement is
// idempotent so Run is safe on every start.
type MigrationRunner struct {
	version string
}

// NewRunner creates a new migration runner
func NewRunner() *MigrationRunner {
	return &MigrationRunner{
		version: "1.0.0",
	}
}

// Version returns the migration version
func (r *MigrationRunner) Version() string {
	return r.version
}

// Run executes all database migrations in the correct order
func (r *MigrationRunner) Run(ctx context.Context, db *sqlx.DB) error {
	d := dialectFor(db.DriverName())

	if err := r.createSheetTabsTable(ctx, db, d); err != nil {
		return errors.Wrap(errors.DatabaseError("migration", err), "failed to create sheet_tabs table")
	}

	if err := r.createSheetRowsTable(ctx, db, d); err != nil {
		return errors.Wrap(errors.DatabaseError("migration", err), "failed to create sheet_rows table")
	}

	if err := r.createRefreshRunsTable(ctx, db, d); err != nil {
		return errors.Wrap(errors.DatabaseError("migration", err), "failed to create refresh_runs table")
	}

	if err := r.createIndexes(ctx, db); err != nil {
		return errors.Wrap(errors.DatabaseError("migration", err), "failed to create indexes")
	}

	return nil
}

// dialect holds the column types that differ between SQLite and PostgreSQL
type dialect struct {
	timestamp string
	json      string
}

func dialectFor(driver string) dialect {
	if driver == "postgres" {
		return dialect{timestamp: "TIMESTAMPTZ", json: "JSONB"}
	}
	return dialect{timestamp: "TIMESTAMP", json: "TEXT"}
}

func (r *MigrationRunner) createSheetTabsTable(ctx context.Context, db *sqlx.DB, d dialect) error {
	_, err := db.ExecContext(ctx, fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS sheet_tabs (
			stage VARCHAR(16) PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			headers %s NOT NULL,
			snapshot_id VARCHAR(64) NOT NULL,
			fetched_at %s NOT NULL
		)
	`, d.json, d.timestamp))
	return err
}

func (r *MigrationRunner) createSheetRowsTable(ctx context.Context, db *sqlx.DB, d dialect) error {
	_, err := db.ExecContext(ctx, fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS sheet_rows (
			stage VARCHAR(16) NOT NULL,
			position INTEGER NOT NULL,
			data %s NOT NULL,
			PRIMARY KEY (stage, position)
		)
	`, d.json))
	return err
}

func (r *MigrationRunner) createRefreshRunsTable(ctx context.Context, db *sqlx.DB, d dialect) error {
	_, err := db.ExecContext(ctx, fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS refresh_runs (
			id VARCHAR(64) PRIMARY KEY,
			started_at %[1]s NOT NULL,
			finished_at %[1]s,
			status VARCHAR(16) NOT NULL,
			row_count INTEGER NOT NULL DEFAULT 0,
			snapshot_hash VARCHAR(64) NOT NULL DEFAULT '',
			error_message TEXT
		)
	`, d.timestamp))
	return err
}

func (r *MigrationRunner) createIndexes(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE INDEX IF NOT EXISTS idx_refresh_runs_started_at ON refresh_runs (started_at DESC)
	`)
	return err
}
