package index

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/starford/ansuz/internal/block"
)

// GetBlock returns the metadata record for a block id, or nil when the
// block has never been rendered.
func (db *DB) GetBlock(id string) (*block.Metadata, error) {
	var md block.Metadata
	err := db.conn.QueryRow(`
		SELECT id, author, custom_class, reload_interval, last_update, text
		FROM block_metadata WHERE id = ?
	`, id).Scan(&md.ID, &md.Author, &md.CustomClass, &md.ReloadInterval, &md.LastUpdate, &md.Text)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("index: get block: %w", err)
	}
	return &md, nil
}

// UpsertBlock inserts or replaces a block metadata record.
func (db *DB) UpsertBlock(md block.Metadata) error {
	_, err := db.conn.Exec(`
		INSERT INTO block_metadata (id, author, custom_class, reload_interval, last_update, text)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			author          = excluded.author,
			custom_class    = excluded.custom_class,
			reload_interval = excluded.reload_interval,
			last_update     = excluded.last_update,
			text            = excluded.text
	`, md.ID, md.Author, md.CustomClass, md.ReloadInterval, md.LastUpdate, md.Text)
	if err != nil {
		return fmt.Errorf("index: upsert block: %w", err)
	}
	return nil
}

// ListBlocks returns every block metadata record, ordered by id.
func (db *DB) ListBlocks() ([]block.Metadata, error) {
	rows, err := db.conn.Query(`
		SELECT id, author, custom_class, reload_interval, last_update, text
		FROM block_metadata ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("index: list blocks: %w", err)
	}
	defer rows.Close()

	var out []block.Metadata
	for rows.Next() {
		var md block.Metadata
		if err := rows.Scan(&md.ID, &md.Author, &md.CustomClass, &md.ReloadInterval, &md.LastUpdate, &md.Text); err != nil {
			return nil, err
		}
		out = append(out, md)
	}
	return out, rows.Err()
}

// ClearBlocks removes all block metadata records.
func (db *DB) ClearBlocks() error {
	if _, err := db.conn.Exec(`DELETE FROM block_metadata`); err != nil {
		return fmt.Errorf("index: clear blocks: %w", err)
	}
	return nil
}

// GetOneTime returns the one-time block for a filename, or nil if the
// file has not resolved a one-time quote yet.
func (db *DB) GetOneTime(filename string) (*block.OneTimeBlock, error) {
	var b block.OneTimeBlock
	err := db.conn.QueryRow(`
		SELECT filename, search, author, content FROM one_time_blocks WHERE filename = ?
	`, filename).Scan(&b.Filename, &b.Search, &b.Author, &b.Content)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("index: get one-time block: %w", err)
	}
	return &b, nil
}

// UpsertOneTime inserts or replaces a one-time block record.
func (db *DB) UpsertOneTime(b block.OneTimeBlock) error {
	_, err := db.conn.Exec(`
		INSERT INTO one_time_blocks (filename, search, author, content)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(filename) DO UPDATE SET
			search  = excluded.search,
			author  = excluded.author,
			content = excluded.content
	`, b.Filename, b.Search, b.Author, b.Content)
	if err != nil {
		return fmt.Errorf("index: upsert one-time block: %w", err)
	}
	return nil
}

// ClearOneTime removes all one-time block records.
func (db *DB) ClearOneTime() error {
	if _, err := db.conn.Exec(`DELETE FROM one_time_blocks`); err != nil {
		return fmt.Errorf("index: clear one-time blocks: %w", err)
	}
	return nil
}
