// Package store persists settings and download history in SQLite.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// DefaultName is the database file created under the user config dir.
const DefaultName = "smarturl.db"

const schema = `
CREATE TABLE IF NOT EXISTS settings (
	key        TEXT PRIMARY KEY,
	value      TEXT NOT NULL,
	updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS downloads (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	filename   TEXT NOT NULL,
	path       TEXT NOT NULL,
	url        TEXT NOT NULL,
	created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

// KV is the key-value settings store.
type KV interface {
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key, value string) error
}

// DownloadRecord is one row of download history.
type DownloadRecord struct {
	ID        int64
	Filename  string
	Path      string
	URL       string
	CreatedAt time.Time
}

// DB wraps the SQLite handle.
type DB struct {
	*sql.DB
	path string
}

// openDB opens a SQLite database at the given path.
func openDB(dbPath string) (*sql.DB, error) {
	sqlDB, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// One connection: every caller is sequential and ":memory:" databases
	// are per connection.
	sqlDB.SetMaxOpenConns(1)
	return sqlDB, nil
}

// Open opens or creates the database at path and ensures the schema.
func Open(path string) (*DB, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("creating store directory: %w", err)
		}
	}

	sqlDB, err := openDB(path)
	if err != nil {
		return nil, err
	}

	db := &DB{DB: sqlDB, path: path}
	if err := db.InitSchema(); err != nil {
		_ = db.Close() // close error less important than schema error
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return db, nil
}

// DefaultPath returns <user config dir>/smarturl/smarturl.db.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, "smarturl", DefaultName)
}

// Path returns the database file path.
func (db *DB) Path() string {
	return db.path
}

// InitSchema creates the tables if needed.
func (db *DB) InitSchema() error {
	_, err := db.Exec(schema)
	return err
}

// Get returns the value stored under key.
func (db *DB) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := db.QueryRowContext(ctx, `SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("reading setting %q: %w", key, err)
	}
	return value, true, nil
}

// Set stores value under key, replacing any previous value.
func (db *DB) Set(ctx context.Context, key, value string) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO settings (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value)
	if err != nil {
		return fmt.Errorf("writing setting %q: %w", key, err)
	}
	return nil
}

// RecordDownload appends a download to the history and returns its id.
func (db *DB) RecordDownload(ctx context.Context, rec DownloadRecord) (int64, error) {
	res, err := db.ExecContext(ctx,
		`INSERT INTO downloads (filename, path, url) VALUES (?, ?, ?)`,
		rec.Filename, rec.Path, rec.URL)
	if err != nil {
		return 0, fmt.Errorf("recording download: %w", err)
	}
	return res.LastInsertId()
}

// Downloads returns the most recent downloads, newest first.
func (db *DB) Downloads(ctx context.Context, limit int) ([]DownloadRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := db.QueryContext(ctx,
		`SELECT id, filename, path, url, created_at FROM downloads ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing downloads: %w", err)
	}
	defer rows.Close()

	var out []DownloadRecord
	for rows.Next() {
		var rec DownloadRecord
		if err := rows.Scan(&rec.ID, &rec.Filename, &rec.Path, &rec.URL, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning download: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
