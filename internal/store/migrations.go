package store

import (
	"context"
	"database/sql"
)

// schema contains the DDL for the runs table. Each statement uses IF NOT
// EXISTS for idempotency, mirroring the teacher's migration style.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS runs (
		id             TEXT PRIMARY KEY,
		submitted_at   TEXT NOT NULL,
		instance       TEXT NOT NULL,
		schedule       TEXT NOT NULL DEFAULT '',
		failure        TEXT NOT NULL DEFAULT '',
		duration_nanos INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE INDEX IF NOT EXISTS idx_runs_submitted_at ON runs(submitted_at)`,
}

// migrate executes all schema DDL statements.
func migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
