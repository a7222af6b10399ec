package block

import "strings"

// Placeholders recognized in the block format template.
const (
	contentPlaceholder = "{{content}}"
	authorPlaceholder  = "{{author}}"
)

// BaseClass is always attached to a rendered block; a declaration's
// custom class is appended after it.
const BaseClass = "quote-block"

// Render substitutes the resolved quote into the format template and
// returns the rendered lines. The template is a user-configured literal
// with {{content}} and {{author}} placeholders, split on newlines the
// way the host renders one paragraph per line.
func Render(format, content, author string) []string {
	lines := strings.Split(format, "\n")
	out := make([]string, len(lines))
	for i, line := range lines {
		line = strings.ReplaceAll(line, contentPlaceholder, content)
		line = strings.ReplaceAll(line, authorPlaceholder, author)
		out[i] = line
	}
	return out
}

// Classes returns the CSS class list for a block with the given custom
// class ("" for none).
func Classes(customClass string) []string {
	if customClass == "" {
		return []string{BaseClass}
	}
	return []string{BaseClass, customClass}
}
