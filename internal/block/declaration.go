package block

import (
	"fmt"
	"strings"
)

// Declaration is the parsed source of a quote block: the search
// expression plus optional overrides. It lives only for the render that
// parsed it; persistence happens through Metadata.
type Declaration struct {
	Search      string
	ID          string
	CustomClass string
	Reload      string // raw duration string, e.g. "1d"; empty means "use default"
}

// ParseDeclaration parses line-oriented `key: value` block source.
// Recognized keys are search, id, class, and reload; unknown keys and
// malformed lines are ignored. A declaration without a search
// expression is an error.
func ParseDeclaration(source string) (Declaration, error) {
	var d Declaration
	for _, line := range strings.Split(source, "\n") {
		line = strings.TrimSpace(line)
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		value = strings.TrimSpace(value)
		switch strings.TrimSpace(key) {
		case "search":
			d.Search = value
		case "id":
			d.ID = value
		case "class":
			d.CustomClass = value
		case "reload":
			d.Reload = value
		}
	}
	if d.Search == "" {
		return Declaration{}, fmt.Errorf("block: declaration has no search expression")
	}
	return d, nil
}

// FenceName is the code-fence language tag that marks a quote block.
const FenceName = "localquote"

// ToCodeBlock renders a Metadata record back into fenced block source,
// the inverse of ParseDeclaration. reload is the human-readable
// duration string (e.g. "1d") shown in the generated block.
func ToCodeBlock(md Metadata, search, reload string) string {
	var b strings.Builder
	b.WriteString("```" + FenceName + "\n")
	fmt.Fprintf(&b, "id: %s\n", md.ID)
	fmt.Fprintf(&b, "search: %s\n", search)
	if md.CustomClass != "" {
		fmt.Fprintf(&b, "class: %s\n", md.CustomClass)
	}
	if reload != "" {
		fmt.Fprintf(&b, "reload: %s\n", reload)
	}
	b.WriteString("```\n")
	return b.String()
}
