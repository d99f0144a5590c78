// Package store persists notes and their media blocks in a local SQLite
// database. Annotation sets are embedded on the block row as JSON and
// replaced wholesale when an editing session is saved; the engine in
// internal/ink never touches storage directly.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"
)

// DB wraps the SQLite connection and the media data directory.
type DB struct {
	conn    *sql.DB
	dataDir string // root directory for uploaded media files
	log     zerolog.Logger
}

// Open opens (or creates) the SQLite file at dbPath and ensures the media
// directory under dataDir exists.
func Open(dbPath, dataDir string, log zerolog.Logger) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}
	if err := os.MkdirAll(filepath.Join(dataDir, "media"), 0o755); err != nil {
		return nil, fmt.Errorf("create media directory: %w", err)
	}

	conn, err := sql.Open("sqlite", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// SQLite supports one writer; a single connection avoids SQLITE_BUSY.
	conn.SetMaxOpenConns(1)

	db := &DB{conn: conn, dataDir: dataDir, log: log}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Debug().Str("db", dbPath).Str("data", dataDir).Msg("store opened")
	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

// MediaDir returns the directory uploaded media files live in.
func (db *DB) MediaDir() string {
	return filepath.Join(db.dataDir, "media")
}

func (db *DB) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS notes (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS blocks (
			id TEXT PRIMARY KEY,
			note_id TEXT NOT NULL REFERENCES notes(id),
			kind TEXT NOT NULL DEFAULT 'image',
			media_path TEXT NOT NULL,
			sort_order INTEGER NOT NULL DEFAULT 0,
			annotations TEXT NOT NULL DEFAULT '[]',
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_blocks_note ON blocks(note_id)`,
	}

	for _, m := range migrations {
		if _, err := db.conn.Exec(m); err != nil {
			return fmt.Errorf("exec migration: %w", err)
		}
	}
	return nil
}
