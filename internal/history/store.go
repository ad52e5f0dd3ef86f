// Package history records one row per search run in a SQLite database and lists recent
// runs back. Writers from concurrent invocations are serialised with a lock file next to
// the database.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/harrison/searchtool/internal/filelock"
	_ "github.com/mattn/go-sqlite3"
)

const (
	memoryDB    = ":memory:"
	lockTimeout = 5 * time.Second
)

// Run is one recorded search invocation
type Run struct {
	ID           int64
	RunID        string
	StartedAt    time.Time
	Expression   string
	Root         string
	Pattern      string
	ContextLines int
	Mode         string
	FilesScanned int
	MatchedFiles int
	TotalMatches int
	Duration     time.Duration
}

// NewRunID returns a fresh identifier for a run.
func NewRunID() string {
	return uuid.NewString()
}

// Store manages the run history database
type Store struct {
	db       *sql.DB
	dbPath   string
	lockPath string
}

// NewStore opens (creating if needed) the database at dbPath and applies the schema.
// ":memory:" opens a private in-memory database without a lock file.
func NewStore(dbPath string) (*Store, error) {
	if dbPath == memoryDB {
		return openAndInitStore(dbPath, "")
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}

	return openAndInitStore(dbPath, dbPath+".lock")
}

func openAndInitStore(dbPath, lockPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if dbPath == memoryDB {
		// Every new connection to :memory: would see an empty database
		db.SetMaxOpenConns(1)
	}

	// busy_timeout first so the remaining pragmas wait on locks
	pragmas := []string{
		"PRAGMA busy_timeout=5000",
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
	}

	for _, pragma := range pragmas {
		if err := execWithRetry(db, pragma, 5, 10*time.Millisecond); err != nil {
			db.Close()
			return nil, fmt.Errorf("set %s: %w", pragma, err)
		}
	}

	store := &Store{
		db:       db,
		dbPath:   dbPath,
		lockPath: lockPath,
	}

	if err := store.withLock(func() error {
		return store.ApplyMigrations(context.Background())
	}); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return store, nil
}

// execWithRetry executes a SQL statement with exponential backoff retry on lock errors.
func execWithRetry(db *sql.DB, stmt string, maxRetries int, baseDelay time.Duration) error {
	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		_, err := db.Exec(stmt)
		if err == nil {
			return nil
		}

		if !strings.Contains(err.Error(), "database is locked") {
			return err
		}

		lastErr = err
		time.Sleep(baseDelay * time.Duration(1<<attempt))
	}
	return lastErr
}

// withLock runs fn under the store's lock file, or directly for in-memory stores.
func (s *Store) withLock(fn func() error) error {
	if s.lockPath == "" {
		return fn()
	}
	return filelock.WithLock(s.lockPath, lockTimeout, fn)
}

// Path returns the database path.
func (s *Store) Path() string {
	return s.dbPath
}

// Close closes the database connection
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Record inserts run and then trims the table to the keepRuns most recent rows
// (keepRuns <= 0 keeps everything). An empty RunID is filled with a new one.
func (s *Store) Record(ctx context.Context, run *Run, keepRuns int) error {
	if run.RunID == "" {
		run.RunID = NewRunID()
	}
	if run.StartedAt.IsZero() {
		run.StartedAt = time.Now()
	}

	return s.withLock(func() error {
		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin transaction: %w", err)
		}
		defer tx.Rollback()

		query := `INSERT INTO runs
			(run_id, started_at, expression, root, pattern, context_lines, context_mode,
			 files_scanned, matched_files, total_matches, duration_ms)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

		result, err := tx.ExecContext(ctx, query,
			run.RunID,
			run.StartedAt.UTC(),
			run.Expression,
			run.Root,
			run.Pattern,
			run.ContextLines,
			run.Mode,
			run.FilesScanned,
			run.MatchedFiles,
			run.TotalMatches,
			run.Duration.Milliseconds(),
		)
		if err != nil {
			return fmt.Errorf("insert run: %w", err)
		}

		id, err := result.LastInsertId()
		if err != nil {
			return fmt.Errorf("get last insert id: %w", err)
		}

		if keepRuns > 0 {
			prune := `DELETE FROM runs WHERE id NOT IN (SELECT id FROM runs ORDER BY id DESC LIMIT ?)`
			if _, err := tx.ExecContext(ctx, prune, keepRuns); err != nil {
				return fmt.Errorf("prune runs: %w", err)
			}
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit run: %w", err)
		}

		run.ID = id
		return nil
	})
}

// Recent returns up to limit runs, newest first. A non-positive limit returns every run.
func (s *Store) Recent(ctx context.Context, limit int) ([]*Run, error) {
	query := `SELECT id, run_id, started_at, expression, root, pattern, context_lines,
			context_mode, files_scanned, matched_files, total_matches, duration_ms
		FROM runs
		ORDER BY id DESC`
	args := []interface{}{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		run := &Run{}
		var durationMs int64
		if err := rows.Scan(
			&run.ID,
			&run.RunID,
			&run.StartedAt,
			&run.Expression,
			&run.Root,
			&run.Pattern,
			&run.ContextLines,
			&run.Mode,
			&run.FilesScanned,
			&run.MatchedFiles,
			&run.TotalMatches,
			&durationMs,
		); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		run.Duration = time.Duration(durationMs) * time.Millisecond
		runs = append(runs, run)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}

	return runs, nil
}

// Count returns the number of stored runs.
func (s *Store) Count(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM runs`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count runs: %w", err)
	}
	return count, nil
}
