//go:build sqlite_fts5

package index

import (
	"database/sql"
	"fmt"
)

func initFTS(conn *sql.DB) error {
	_, err := conn.Exec(`
		CREATE VIRTUAL TABLE IF NOT EXISTS quotes_fts USING fts5(
			author UNINDEXED,
			text,
			tokenize = 'unicode61 remove_diacritics 2'
		);
	`)
	return err
}

func ftsClear(tx *sql.Tx) error {
	if _, err := tx.Exec(`DELETE FROM quotes_fts`); err != nil {
		return fmt.Errorf("index: clear fts: %w", err)
	}
	return nil
}

func ftsInsert(tx *sql.Tx, author, text string) error {
	if _, err := tx.Exec(`INSERT INTO quotes_fts (author, text) VALUES (?, ?)`, author, text); err != nil {
		return fmt.Errorf("index: insert fts: %w", err)
	}
	return nil
}

// SearchQuotes performs an FTS5 full-text search over quote text and
// returns matches with highlighted snippets.
func (db *DB) SearchQuotes(query string, limit int) ([]QuoteHit, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := db.conn.Query(`
		SELECT author,
		       snippet(quotes_fts, 1, '<b>', '</b>', '...', 32)
		FROM quotes_fts
		WHERE quotes_fts MATCH ?
		ORDER BY rank
		LIMIT ?
	`, query, limit)
	if err != nil {
		return nil, fmt.Errorf("index: search quotes: %w", err)
	}
	defer rows.Close()

	var out []QuoteHit
	for rows.Next() {
		var h QuoteHit
		if err := rows.Scan(&h.Author, &h.Snippet); err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}
