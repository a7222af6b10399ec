package parser

import (
	"testing"
)

func TestParse_FrontmatterAndBody(t *testing.T) {
	input := []byte("---\ntitle: Listings\ntags:\n  - quotes\n  - stoics\n---\n# Listings\nBody text.\n")
	r, err := Parse(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Title != "Listings" {
		t.Errorf("title = %q, want %q", r.Title, "Listings")
	}
	if len(r.Tags) < 2 || r.Tags[0] != "quotes" || r.Tags[1] != "stoics" {
		t.Errorf("tags = %v, want [quotes stoics]", r.Tags)
	}
	if r.Body != "# Listings\nBody text.\n" {
		t.Errorf("body = %q", r.Body)
	}
}

func TestParse_NoFrontmatter(t *testing.T) {
	input := []byte("# Just a heading\nSome text.\n")
	r, err := Parse(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Frontmatter != nil {
		t.Errorf("expected nil frontmatter, got %v", r.Frontmatter)
	}
	if r.Title != "Just a heading" {
		t.Errorf("title = %q, want %q", r.Title, "Just a heading")
	}
}

func TestParse_InvalidYAMLFallback(t *testing.T) {
	input := []byte("---\n: invalid: yaml: {{{\n---\nBody\n")
	r, err := Parse(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Invalid YAML falls back to treating everything as body.
	if r.Frontmatter != nil {
		t.Errorf("expected nil frontmatter on invalid YAML")
	}
}

func TestExtractTags_InlineAndFrontmatter(t *testing.T) {
	fm := map[string]any{
		"tags": []any{"quotes"},
	}
	body := "Some text #stoics and #quotes again."
	tags := extractTags(body, fm)
	// quotes from FM, stoics from body; quotes not duplicated.
	if len(tags) != 2 || tags[0] != "quotes" || tags[1] != "stoics" {
		t.Errorf("tags = %v, want [quotes stoics]", tags)
	}
}

func TestHasTag(t *testing.T) {
	r, err := Parse([]byte("text with #quotes inline"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !r.HasTag("quotes") {
		t.Error("HasTag(quotes) = false, want true")
	}
	if r.HasTag("missing") {
		t.Error("HasTag(missing) = true, want false")
	}
}

func TestDeriveTitle_FrontmatterOverH1(t *testing.T) {
	fm := map[string]any{"title": "FM Title"}
	body := "# H1 Title\ntext"
	title := deriveTitle(fm, body)
	if title != "FM Title" {
		t.Errorf("title = %q, want %q", title, "FM Title")
	}
}

func TestDeriveTitle_H1Fallback(t *testing.T) {
	title := deriveTitle(nil, "some text\n# My Heading\nmore")
	if title != "My Heading" {
		t.Errorf("title = %q, want %q", title, "My Heading")
	}
}
