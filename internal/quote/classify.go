package quote

import (
	"regexp"
	"strings"
)

var (
	authorRe = regexp.MustCompile(`^:::(.+?):::$`)
	bulletRe = regexp.MustCompile(`^[-*+>][ \t]+\S`)
)

// LineKind is the classification of one trimmed document line.
type LineKind int

const (
	// ResetLine is a blank or unrelated line. It clears the active
	// author, so listings end at the first gap.
	ResetLine LineKind = iota
	// AuthorHeader is a `:::Author:::` listing header. Token carries
	// the raw (possibly styled) author token.
	AuthorHeader
	// QuoteLine is a bullet line under an active author. Token carries
	// the quote text (everything after the marker, trimmed).
	QuoteLine
)

// Classification is the result of classifying one line.
type Classification struct {
	Kind  LineKind
	Token string
}

// Classify classifies a single trimmed line. hasAuthor reports whether
// an author header is currently active; a bullet line with no active
// author is a ResetLine, which is what makes quotes group strictly
// under the nearest preceding header.
func Classify(line string, hasAuthor bool) Classification {
	if m := authorRe.FindStringSubmatch(line); m != nil {
		return Classification{Kind: AuthorHeader, Token: m[1]}
	}
	if hasAuthor && bulletRe.MatchString(line) {
		idx := strings.IndexAny(line, " \t")
		return Classification{Kind: QuoteLine, Token: strings.TrimSpace(line[idx:])}
	}
	return Classification{Kind: ResetLine}
}
