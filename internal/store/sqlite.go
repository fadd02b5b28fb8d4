package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/kjorgen/schedcore/pkg/model"

	_ "modernc.org/sqlite"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewSQLiteStore opens (or creates) a SQLite database at dbPath and returns
// a Store. Use ":memory:" for an in-memory database (useful in tests).
func NewSQLiteStore(dbPath string, logger *slog.Logger) (*SQLiteStore, error) {
	if dbPath != ":memory:" {
		if dir := filepath.Dir(dbPath); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create db directory %s: %w", dir, err)
			}
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", dbPath, err)
	}

	// Enable WAL mode for better concurrent read performance.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("pragma wal: %w", err)
	}

	return &SQLiteStore{
		db:     db,
		logger: logger.With("component", "store"),
	}, nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Migrate creates all required tables and indexes.
func (s *SQLiteStore) Migrate(ctx context.Context) error {
	s.logger.Debug("sql", "op", "migrate")
	return migrate(ctx, s.db)
}

// SaveRun inserts or replaces a run record.
func (s *SQLiteStore) SaveRun(ctx context.Context, run *model.Run) error {
	s.logger.Debug("sql", "op", "insert", "table", "runs", "id", run.ID)

	instanceJSON, err := json.Marshal(run.Instance)
	if err != nil {
		return fmt.Errorf("marshal instance: %w", err)
	}
	scheduleJSON, err := json.Marshal(run.Schedule)
	if err != nil {
		return fmt.Errorf("marshal schedule: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO runs (id, submitted_at, instance, schedule, failure, duration_nanos)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		run.ID, run.SubmittedAt.Format(time.RFC3339Nano),
		string(instanceJSON), string(scheduleJSON), run.Failure, run.DurationNanos,
	)
	return err
}

// GetRun fetches a run by id, returning (nil, nil) if it doesn't exist.
func (s *SQLiteStore) GetRun(ctx context.Context, id string) (*model.Run, error) {
	s.logger.Debug("sql", "op", "select", "table", "runs", "id", id)

	return s.scanRun(s.db.QueryRowContext(ctx,
		`SELECT id, submitted_at, instance, schedule, failure, duration_nanos
		 FROM runs WHERE id = ?`, id))
}

// ListRuns returns the most recent runs, most recent first, along with the
// total row count (for pagination).
func (s *SQLiteStore) ListRuns(ctx context.Context, opts model.ListOptions) ([]*model.Run, int, error) {
	opts.Clamp()
	s.logger.Debug("sql", "op", "list", "table", "runs", "limit", opts.Limit, "offset", opts.Offset)

	var total int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM runs`).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, submitted_at, instance, schedule, failure, duration_nanos
		 FROM runs ORDER BY submitted_at DESC LIMIT ? OFFSET ?`,
		opts.Limit, opts.Offset,
	)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var runs []*model.Run
	for rows.Next() {
		run, err := scanRunRow(rows)
		if err != nil {
			return nil, 0, err
		}
		runs = append(runs, run)
	}
	return runs, total, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func (s *SQLiteStore) scanRun(row scanner) (*model.Run, error) {
	run, err := scanRunRow(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return run, err
}

func scanRunRow(row scanner) (*model.Run, error) {
	var run model.Run
	var submittedAt, instanceJSON, scheduleJSON string

	err := row.Scan(&run.ID, &submittedAt, &instanceJSON, &scheduleJSON, &run.Failure, &run.DurationNanos)
	if err != nil {
		return nil, err
	}

	run.SubmittedAt, _ = time.Parse(time.RFC3339Nano, submittedAt)
	if err := json.Unmarshal([]byte(instanceJSON), &run.Instance); err != nil {
		return nil, fmt.Errorf("unmarshal instance: %w", err)
	}
	if scheduleJSON != "" {
		if err := json.Unmarshal([]byte(scheduleJSON), &run.Schedule); err != nil {
			return nil, fmt.Errorf("unmarshal schedule: %w", err)
		}
	}

	return &run, nil
}
