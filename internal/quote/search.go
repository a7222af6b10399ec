package quote

import (
	"math/rand"
	"strings"

	"github.com/starford/ansuz/internal/apperr"
)

// advancedSeparator splits an advanced search expression into author
// alternatives: `Seneca||Marcus` picks one of the two at random.
const advancedSeparator = "||"

// Selection is a resolved (author, quote) pair.
type Selection struct {
	Author string
	Text   string
}

// ResolveAuthor resolves a block's search expression to one canonical
// author key using the supplied random source.
//
//   - `*` picks uniformly among all vault authors.
//   - an expression containing `||` picks uniformly among the listed
//     authors whose canonical form exists in the vault; segments that
//     are empty or unknown are dropped silently.
//   - anything else is a direct author reference.
//
// The two-stage pick for `||` lists (author first, then quote) is
// deliberate: with unequal listing sizes it weights authors equally,
// not quotes.
func ResolveAuthor(v *Vault, search string, rng *rand.Rand) (string, error) {
	search = strings.TrimSpace(search)

	if search == "*" {
		if v.Len() == 0 {
			return "", apperr.ErrEmptyVault
		}
		return v.entries[rng.Intn(v.Len())].Author, nil
	}

	if strings.Contains(search, advancedSeparator) {
		var valid []string
		for _, seg := range strings.Split(search, advancedSeparator) {
			author := Normalize(seg)
			if author != "" && v.Has(author) {
				valid = append(valid, author)
			}
		}
		if len(valid) == 0 {
			return "", apperr.ErrUnknownAuthor
		}
		return valid[rng.Intn(len(valid))], nil
	}

	author := Normalize(search)
	if !v.Has(author) {
		return "", apperr.ErrUnknownAuthor
	}
	return author, nil
}

// PickQuote returns one quote of the given canonical author, uniformly
// at random.
func PickQuote(v *Vault, author string, rng *rand.Rand) (string, error) {
	e, ok := v.Get(author)
	if !ok {
		return "", apperr.ErrUnknownAuthor
	}
	if len(e.Quotes) == 0 {
		return "", apperr.ErrNoQuotesForAuthor
	}
	return e.Quotes[rng.Intn(len(e.Quotes))], nil
}

// Resolve runs ResolveAuthor and PickQuote in one step.
func Resolve(v *Vault, search string, rng *rand.Rand) (Selection, error) {
	author, err := ResolveAuthor(v, search, rng)
	if err != nil {
		return Selection{}, err
	}
	text, err := PickQuote(v, author, rng)
	if err != nil {
		return Selection{}, err
	}
	return Selection{Author: author, Text: text}, nil
}
