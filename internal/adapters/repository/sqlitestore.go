package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/okian/leetview/pkg/metrics"
)

const schema = `CREATE TABLE IF NOT EXISTS ratings (
	filename TEXT PRIMARY KEY,
	rating   INTEGER NOT NULL CHECK (rating BETWEEN 1 AND 5)
)`

// SQLiteStore implements Store backed by a single SQLite file.
type SQLiteStore struct {
	db          *sql.DB
	path        string
	busyTimeout time.Duration
	journalMode string
}

// OpenSQLite creates or opens the database at path and ensures the ratings
// table exists. The parent directory is created when missing.
func OpenSQLite(ctx context.Context, path string, opts ...Option) (*SQLiteStore, error) {
	s := &SQLiteStore{
		path:        path,
		busyTimeout: 5 * time.Second,
		journalMode: "WAL",
	}
	for _, opt := range opts {
		opt(s)
	}

	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}

	dsn := fmt.Sprintf("file:%s?_journal_mode=%s&_busy_timeout=%d", path, s.journalMode, s.busyTimeout.Milliseconds())
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	// One connection serialises writers.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	s.db = db
	return s, nil
}

// Path returns the database file path.
func (s *SQLiteStore) Path() string { return s.path }

func (s *SQLiteStore) Get(ctx context.Context, key string) (int, bool, error) {
	start := time.Now()
	defer func() { metrics.RecordStoreQueryLatency(float64(time.Since(start).Microseconds())/1000) }()

	var rating int
	err := s.db.QueryRowContext(ctx, "SELECT rating FROM ratings WHERE filename = ?", key).Scan(&rating)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		metrics.RecordStoreError("get")
		return 0, false, fmt.Errorf("get rating %q: %w", key, err)
	}
	return rating, true, nil
}

func (s *SQLiteStore) Upsert(ctx context.Context, key string, rating int) error {
	if err := validate(key, rating); err != nil {
		return err
	}
	start := time.Now()
	defer func() { metrics.RecordStoreUpdateLatency(float64(time.Since(start).Microseconds())/1000) }()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO ratings (filename, rating) VALUES (?, ?)
		 ON CONFLICT(filename) DO UPDATE SET rating = excluded.rating`,
		key, rating)
	if err != nil {
		metrics.RecordStoreError("upsert")
		return fmt.Errorf("upsert rating %q: %w", key, err)
	}
	return nil
}

func (s *SQLiteStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM ratings").Scan(&n); err != nil {
		metrics.RecordStoreError("count")
		return 0, fmt.Errorf("count ratings: %w", err)
	}
	metrics.UpdateStoreRecordsTotal(n)
	return n, nil
}

func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
