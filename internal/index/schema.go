// Package index provides the SQLite-backed persistent store: the note
// index used for tag discovery and sync, the quote vault, and the
// block-metadata records behind the refresh policy. Full-text quote
// search uses FTS5 when compiled in (sqlite_fts5 build tag).
package index

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

const coreSchemaSQL = `
CREATE TABLE IF NOT EXISTS notes (
	path       TEXT PRIMARY KEY,
	title      TEXT NOT NULL DEFAULT '',
	checksum   TEXT NOT NULL DEFAULT '',
	tags       TEXT NOT NULL DEFAULT '[]',
	updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS authors (
	author         TEXT PRIMARY KEY,
	author_display TEXT NOT NULL DEFAULT '',
	position       INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS quotes (
	author   TEXT NOT NULL,
	text     TEXT NOT NULL,
	position INTEGER NOT NULL DEFAULT 0,
	UNIQUE(author, text)
);

CREATE INDEX IF NOT EXISTS idx_quotes_author ON quotes(author);

CREATE TABLE IF NOT EXISTS block_metadata (
	id              TEXT PRIMARY KEY,
	author          TEXT NOT NULL DEFAULT '',
	custom_class    TEXT NOT NULL DEFAULT '',
	reload_interval INTEGER NOT NULL DEFAULT 0,
	last_update     INTEGER NOT NULL DEFAULT 0,
	text            TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS one_time_blocks (
	filename TEXT PRIMARY KEY,
	search   TEXT NOT NULL DEFAULT '',
	author   TEXT NOT NULL DEFAULT '',
	content  TEXT NOT NULL DEFAULT ''
);
`

// DB wraps a sql.DB with store-specific operations.
type DB struct {
	conn *sql.DB
}

// Open opens (or creates) the SQLite database and applies the schema.
func Open(dsn string) (*DB, error) {
	conn, err := sql.Open("sqlite3", dsn+"?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("index: open db: %w", err)
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("index: ping: %w", err)
	}
	if _, err := conn.Exec(coreSchemaSQL); err != nil {
		conn.Close()
		return nil, fmt.Errorf("index: apply core schema: %w", err)
	}
	if err := initFTS(conn); err != nil {
		conn.Close()
		return nil, fmt.Errorf("index: apply fts schema: %w", err)
	}
	return &DB{conn: conn}, nil
}

// Close closes the underlying database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}
