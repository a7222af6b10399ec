package quote

// Entry is one author's listing in the vault. Author is the canonical
// key; AuthorDisplay preserves the styled token from the first header
// that introduced the author. Quotes keeps insertion order and never
// holds duplicates.
type Entry struct {
	Author        string   `json:"author"`
	AuthorDisplay string   `json:"author_display"`
	Quotes        []string `json:"quotes"`
}

// Vault is the author-keyed quote collection. It preserves the order in
// which authors were first seen, which keeps persistence and listings
// stable across rescans of an unchanged vault.
type Vault struct {
	entries []Entry
	idx     map[string]int
}

// NewVault returns an empty vault.
func NewVault() *Vault {
	return &Vault{idx: make(map[string]int)}
}

// Build folds a scan's emissions into a fresh vault. The result is
// meant to replace the persisted vault wholesale: authors and quotes
// that no longer appear in any document are gone after a rescan.
func Build(emissions []Emission) *Vault {
	v := NewVault()
	for _, e := range emissions {
		v.Add(e.Author, e.Text)
	}
	return v
}

// Add merges one (author, quote) pair. The author token is normalized
// to its canonical key; the quote is appended only when the author does
// not already hold an exact (trimmed) copy.
func (v *Vault) Add(authorToken, text string) {
	author := Normalize(authorToken)
	if author == "" {
		return
	}
	if i, ok := v.idx[author]; ok {
		for _, q := range v.entries[i].Quotes {
			if q == text {
				return
			}
		}
		v.entries[i].Quotes = append(v.entries[i].Quotes, text)
		return
	}
	v.idx[author] = len(v.entries)
	v.entries = append(v.entries, Entry{
		Author:        author,
		AuthorDisplay: authorToken,
		Quotes:        []string{text},
	})
}

// Get returns the entry for a canonical author key.
func (v *Vault) Get(author string) (Entry, bool) {
	i, ok := v.idx[author]
	if !ok {
		return Entry{}, false
	}
	return v.entries[i], true
}

// Has reports whether the canonical author key exists.
func (v *Vault) Has(author string) bool {
	_, ok := v.idx[author]
	return ok
}

// Authors returns canonical author keys in first-seen order.
func (v *Vault) Authors() []string {
	out := make([]string, len(v.entries))
	for i, e := range v.entries {
		out[i] = e.Author
	}
	return out
}

// Entries returns all entries in first-seen order.
func (v *Vault) Entries() []Entry {
	return v.entries
}

// Len returns the number of authors in the vault.
func (v *Vault) Len() int {
	return len(v.entries)
}
