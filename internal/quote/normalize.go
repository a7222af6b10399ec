// Package quote implements the quote extraction and selection engine:
// scanning quote listings out of Markdown documents, building the
// deduplicated author-keyed vault, and resolving block search
// expressions to a single quote.
package quote

import "strings"

// stylingChars are the inline emphasis delimiters that may wrap an
// author token in a listing header (`:::**Author**:::` and friends).
const stylingChars = "*_`~="

// Normalize strips inline emphasis markers from a raw author token and
// trims surrounding whitespace, producing the canonical author key.
// Normalizing an already-canonical token returns it unchanged.
func Normalize(token string) string {
	var b strings.Builder
	b.Grow(len(token))
	for _, r := range token {
		if strings.ContainsRune(stylingChars, r) {
			continue
		}
		b.WriteRune(r)
	}
	return strings.TrimSpace(b.String())
}
