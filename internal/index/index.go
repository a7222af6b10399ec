package index

import (
	"github.com/starford/ansuz/internal/block"
	"github.com/starford/ansuz/internal/quote"
)

// Store defines the persistence operations the rest of the service
// depends on. Consumers should depend on this interface rather than the
// concrete *DB type to facilitate testing with mocks.
type Store interface {
	// Note index (tag discovery + sync bookkeeping).
	UpsertNote(n NoteRow) error
	DeleteNote(path string) error
	GetChecksum(path string) (string, error)
	AllChecksums() (map[string]string, error)
	PathsWithTag(tag string) ([]string, error)

	// Quote vault. ReplaceVault swaps the whole vault in one
	// transaction; readers never observe a partial rebuild.
	ReplaceVault(v *quote.Vault) error
	Vault() (*quote.Vault, error)

	// Block metadata (refresh policy state).
	GetBlock(id string) (*block.Metadata, error)
	UpsertBlock(md block.Metadata) error
	ListBlocks() ([]block.Metadata, error)
	ClearBlocks() error

	// One-time blocks.
	GetOneTime(filename string) (*block.OneTimeBlock, error)
	UpsertOneTime(b block.OneTimeBlock) error
	ClearOneTime() error

	// Full-text quote search.
	SearchQuotes(query string, limit int) ([]QuoteHit, error)

	Close() error
}

// Verify *DB satisfies Store at compile time.
var _ Store = (*DB)(nil)

// QuoteHit is one full-text search match.
type QuoteHit struct {
	Author  string `json:"author"`
	Snippet string `json:"snippet"`
}
