package index

import (
	"fmt"

	"github.com/starford/ansuz/internal/quote"
)

// ReplaceVault replaces the persisted quote vault with v in a single
// transaction. Replace semantics are deliberate: authors and quotes no
// longer backed by a document line disappear on rescan.
func (db *DB) ReplaceVault(v *quote.Vault) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("index: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // best-effort on failure path

	if _, err := tx.Exec(`DELETE FROM quotes`); err != nil {
		return fmt.Errorf("index: clear quotes: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM authors`); err != nil {
		return fmt.Errorf("index: clear authors: %w", err)
	}
	if err := ftsClear(tx); err != nil {
		return err
	}

	authorStmt, err := tx.Prepare(`INSERT INTO authors (author, author_display, position) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("index: prepare author insert: %w", err)
	}
	defer authorStmt.Close()
	quoteStmt, err := tx.Prepare(`INSERT INTO quotes (author, text, position) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("index: prepare quote insert: %w", err)
	}
	defer quoteStmt.Close()

	for ai, e := range v.Entries() {
		if _, err := authorStmt.Exec(e.Author, e.AuthorDisplay, ai); err != nil {
			return fmt.Errorf("index: insert author: %w", err)
		}
		for qi, q := range e.Quotes {
			if _, err := quoteStmt.Exec(e.Author, q, qi); err != nil {
				return fmt.Errorf("index: insert quote: %w", err)
			}
			if err := ftsInsert(tx, e.Author, q); err != nil {
				return err
			}
		}
	}

	return tx.Commit()
}

// Vault loads the persisted quote vault, preserving author and quote order.
func (db *DB) Vault() (*quote.Vault, error) {
	rows, err := db.conn.Query(`
		SELECT a.author_display, q.text
		FROM authors a
		JOIN quotes q ON q.author = a.author
		ORDER BY a.position, q.position
	`)
	if err != nil {
		return nil, fmt.Errorf("index: load vault: %w", err)
	}
	defer rows.Close()

	v := quote.NewVault()
	for rows.Next() {
		var display, text string
		if err := rows.Scan(&display, &text); err != nil {
			return nil, err
		}
		v.Add(display, text)
	}
	return v, rows.Err()
}
