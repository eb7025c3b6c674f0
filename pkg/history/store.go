package history

import (
	"context"
	"database/sql"
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/arthur-debert/ordena/pkg/errors"
	"github.com/arthur-debert/ordena/pkg/types"
)

const (
	sqliteBusyCode          = 5
	busyRetryAttempts       = 5
	busyRetryInitialBackoff = 10 * time.Millisecond
	busyRetryMaxBackoff     = 200 * time.Millisecond
)

// recordedLayout is fixed width so recorded_at sorts chronologically as text
const recordedLayout = "2006-01-02T15:04:05.000000000Z"

// DefaultLimit is the number of runs List returns when limit <= 0
const DefaultLimit = 20

// Entry is one indexed run
type Entry struct {
	ID         string
	Timestamp  string
	Mode       types.Mode
	Source     string
	FilesSeen  int
	FilesMoved int
	Errors     int
	Collisions int
	BytesMoved int64
	DurationMs int64
	ReportPath string
	RecordedAt time.Time
}

// EntryFromStats builds an index entry for a finished run
func EntryFromStats(stats *types.RunStatistics, reportPath string) Entry {
	return Entry{
		ID:         stats.ID,
		Timestamp:  stats.Timestamp,
		Mode:       stats.Mode,
		Source:     stats.Source,
		FilesSeen:  stats.FilesSeen,
		FilesMoved: stats.FilesMoved,
		Errors:     stats.Errors,
		Collisions: stats.Collisions,
		BytesMoved: stats.BytesMoved,
		DurationMs: stats.DurationMs,
		ReportPath: reportPath,
	}
}

// Store manages run history persistence backed by SQLite
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the history database at path
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, errors.Wrapf(err, errors.ErrHistory, "create history directory for %s", path)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrHistory, "open sqlite db")
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, errors.Wrapf(execErr, errors.ErrHistory, "apply pragma %q", pragma)
		}
	}

	store := &Store{db: db, path: path}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Path returns the database file path
func (s *Store) Path() string {
	return s.path
}

// Close closes the underlying database connection
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) initSchema(ctx context.Context) error {
	const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id          TEXT PRIMARY KEY,
	timestamp   TEXT NOT NULL,
	mode        TEXT NOT NULL,
	source      TEXT NOT NULL,
	files_seen  INTEGER NOT NULL,
	files_moved INTEGER NOT NULL,
	errors      INTEGER NOT NULL,
	collisions  INTEGER NOT NULL,
	bytes_moved INTEGER NOT NULL,
	duration_ms INTEGER NOT NULL,
	report_path TEXT NOT NULL DEFAULT '',
	recorded_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_runs_recorded_at ON runs(recorded_at);`

	if err := s.execWithRetry(ctx, schema); err != nil {
		return errors.Wrap(err, errors.ErrHistory, "initialize history schema")
	}
	return nil
}

// Record stores one run. Recording the same run id twice replaces it.
func (s *Store) Record(ctx context.Context, e Entry) error {
	if e.RecordedAt.IsZero() {
		e.RecordedAt = time.Now().UTC()
	}
	err := s.execWithRetry(ctx, `
INSERT OR REPLACE INTO runs
	(id, timestamp, mode, source, files_seen, files_moved, errors, collisions,
	 bytes_moved, duration_ms, report_path, recorded_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.Timestamp, string(e.Mode), e.Source, e.FilesSeen, e.FilesMoved, e.Errors,
		e.Collisions, e.BytesMoved, e.DurationMs, e.ReportPath, e.RecordedAt.UTC().Format(recordedLayout))
	if err != nil {
		return errors.Wrapf(err, errors.ErrHistory, "record run %s", e.ID).
			WithDetail("run_id", e.ID)
	}
	return nil
}

// List returns the most recent runs first
func (s *Store) List(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	rows, err := s.db.QueryContext(ctx, `
SELECT id, timestamp, mode, source, files_seen, files_moved, errors, collisions,
	bytes_moved, duration_ms, report_path, recorded_at
FROM runs
ORDER BY recorded_at DESC, id DESC
LIMIT ?`, limit)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrHistory, "query runs")
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			e          Entry
			mode       string
			recordedAt string
		)
		if err := rows.Scan(&e.ID, &e.Timestamp, &mode, &e.Source, &e.FilesSeen, &e.FilesMoved,
			&e.Errors, &e.Collisions, &e.BytesMoved, &e.DurationMs, &e.ReportPath, &recordedAt); err != nil {
			return nil, errors.Wrap(err, errors.ErrHistory, "scan run")
		}
		e.Mode = types.Mode(mode)
		if t, parseErr := time.Parse(recordedLayout, recordedAt); parseErr == nil {
			e.RecordedAt = t
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, errors.ErrHistory, "iterate runs")
	}
	return entries, nil
}

func (s *Store) execWithRetry(ctx context.Context, query string, args ...any) error {
	if ctx == nil {
		ctx = context.Background()
	}
	return retryOnBusy(ctx, func() error {
		_, err := s.db.ExecContext(ctx, query, args...)
		return err
	})
}

func isSQLiteBusy(err error) bool {
	if err == nil {
		return false
	}
	var coder interface{ Code() int }
	if stderrors.As(err, &coder) && coder.Code() == sqliteBusyCode {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "SQLITE_BUSY") || strings.Contains(msg, "database is locked")
}

func retryOnBusy(ctx context.Context, op func() error) error {
	delay := busyRetryInitialBackoff
	var lastErr error
	for attempt := 0; attempt < busyRetryAttempts; attempt++ {
		lastErr = op()
		if lastErr == nil {
			return nil
		}
		if !isSQLiteBusy(lastErr) || attempt == busyRetryAttempts-1 {
			break
		}
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
		if next := delay * 2; next <= busyRetryMaxBackoff {
			delay = next
		}
	}
	return lastErr
}
