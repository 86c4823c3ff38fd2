package report

import (
	"context"
	"database/sql"
	"fmt"
)

// SchemaVersion is the current schema version.
const SchemaVersion = 1

const schemaV1 = `
CREATE TABLE IF NOT EXISTS schema_version (
    version INTEGER NOT NULL,
    applied_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS runs (
    id TEXT PRIMARY KEY,
    started_at TEXT NOT NULL,
    finished_at TEXT,
    seed INTEGER NOT NULL,
    days INTEGER NOT NULL,
    population INTEGER NOT NULL,
    last_day INTEGER,
    config TEXT
);

-- One row per run, day, disease and state.
CREATE TABLE IF NOT EXISTS daily_counts (
    run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
    day INTEGER NOT NULL,
    disease TEXT NOT NULL,
    state TEXT NOT NULL,
    state_index INTEGER NOT NULL,
    count INTEGER NOT NULL,
    PRIMARY KEY (run_id, day, disease, state_index)
);

CREATE TABLE IF NOT EXISTS daily_counters (
    run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
    day INTEGER NOT NULL,
    disease TEXT NOT NULL,
    exposed INTEGER NOT NULL,
    infectious INTEGER NOT NULL,
    symptomatic INTEGER NOT NULL,
    new_exposures INTEGER NOT NULL,
    new_infectious INTEGER NOT NULL,
    new_symptomatic INTEGER NOT NULL,
    new_recoveries INTEGER NOT NULL,
    recovered INTEGER NOT NULL,
    case_fatalities INTEGER NOT NULL,
    cumulative_incidence INTEGER NOT NULL,
    PRIMARY KEY (run_id, day, disease)
);

CREATE TABLE IF NOT EXISTS daily_transmission (
    run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
    day INTEGER NOT NULL,
    network TEXT NOT NULL,
    disease TEXT NOT NULL,
    hosts INTEGER NOT NULL,
    links INTEGER NOT NULL,
    attempts INTEGER NOT NULL,
    contacts INTEGER NOT NULL,
    infections INTEGER NOT NULL,
    PRIMARY KEY (run_id, day, network, disease)
);
CREATE INDEX IF NOT EXISTS idx_transmission_disease ON daily_transmission(run_id, disease);
`

// InitSchema creates the schema on a fresh database and leaves an existing
// one untouched.
func InitSchema(ctx context.Context, db *sql.DB) error {
	currentVersion, err := getSchemaVersion(ctx, db)
	if err != nil {
		// Schema version table doesn't exist yet, create fresh schema
		if err := createSchema(ctx, db); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
		return nil
	}
	if currentVersion > SchemaVersion {
		return fmt.Errorf("database schema version %d is newer than supported %d", currentVersion, SchemaVersion)
	}
	return nil
}

// getSchemaVersion returns the current schema version from the database.
func getSchemaVersion(ctx context.Context, db *sql.DB) (int, error) {
	var version int
	err := db.QueryRowContext(ctx, `SELECT MAX(version) FROM schema_version`).Scan(&version)
	if err != nil {
		return 0, err
	}
	return version, nil
}

func createSchema(ctx context.Context, db *sql.DB) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, schemaV1); err != nil {
		return fmt.Errorf("failed to create tables: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO schema_version (version, applied_at) VALUES (?, datetime('now'))`,
		SchemaVersion); err != nil {
		return fmt.Errorf("failed to record schema version: %w", err)
	}

	return tx.Commit()
}
