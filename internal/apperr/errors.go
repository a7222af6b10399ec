// Package apperr defines the recoverable error kinds shared across the
// service, API, and MCP layers.
package apperr

import "errors"

var (
	// ErrNotFound signals a missing resource (note, block record).
	ErrNotFound = errors.New("not found")
	// ErrUnknownAuthor signals a search expression naming an author
	// that is absent from the quote vault.
	ErrUnknownAuthor = errors.New("unknown author")
	// ErrEmptyVault signals that no scan has produced any quote
	// listings yet (or the last scan found none).
	ErrEmptyVault = errors.New("quote vault is empty")
	// ErrNoQuotesForAuthor guards against an author entry with an
	// empty quote set. Vault invariants make this unreachable in
	// practice; it exists so a corrupted store fails loudly.
	ErrNoQuotesForAuthor = errors.New("no quotes for author")
)
