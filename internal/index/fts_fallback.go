//go:build !sqlite_fts5

package index

import (
	"database/sql"
	"fmt"
)

func initFTS(_ *sql.DB) error {
	// FTS5 not available; quote search uses a LIKE fallback on the quotes table.
	return nil
}

func ftsClear(_ *sql.Tx) error { return nil }

func ftsInsert(_ *sql.Tx, _, _ string) error {
	// Quote text is already stored in the quotes table; nothing extra to do.
	return nil
}

// SearchQuotes performs a LIKE-based search (fallback when FTS5 is not compiled in).
func (db *DB) SearchQuotes(query string, limit int) ([]QuoteHit, error) {
	if limit <= 0 {
		limit = 20
	}
	like := "%" + query + "%"
	rows, err := db.conn.Query(`
		SELECT author, text
		FROM quotes
		WHERE text LIKE ? OR author LIKE ?
		ORDER BY author, position
		LIMIT ?
	`, like, like, limit)
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
