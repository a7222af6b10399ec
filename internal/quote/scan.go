package quote

import "strings"

// Emission is one (author, quote) pair produced by scanning. Author is
// the raw header token as written, styling included; canonicalisation
// happens when the vault is built.
type Emission struct {
	Author string
	Text   string
}

// ScanDocument runs the line classifier over one document and returns
// its emissions in line order. Quotes shorter than minLength (after
// trimming) are skipped without touching the author state. The
// current-author state starts empty and never leaks across documents.
func ScanDocument(content string, minLength int) []Emission {
	var out []Emission
	currentAuthor := ""

	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		c := Classify(line, currentAuthor != "")
		switch c.Kind {
		case AuthorHeader:
			currentAuthor = c.Token
		case QuoteLine:
			if len(c.Token) >= minLength {
				out = append(out, Emission{Author: currentAuthor, Text: c.Token})
			}
		case ResetLine:
			currentAuthor = ""
		}
	}
	return out
}

// Scan scans documents in order and concatenates their emissions.
func Scan(documents []string, minLength int) []Emission {
	var out []Emission
	for _, doc := range documents {
		out = append(out, ScanDocument(doc, minLength)...)
	}
	return out
}
