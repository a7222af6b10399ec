package mcpserver

// ListingFormatContract describes the canonical quote listing format
// that LLM consumers should follow when writing quote notes.
const ListingFormatContract = `# Ansuz Quote Listing Format

Quotes live in ordinary Markdown notes carrying the configured quote tag
(default: ` + "`" + `quotes` + "`" + `). Only tagged notes are scanned.

## Structure

` + "```" + `markdown
---
tags:
  - quotes
---

:::Seneca:::
- Luck is what happens when preparation meets opportunity.
- We suffer more often in imagination than in reality.

:::**Marcus Aurelius**:::
- You have power over your mind, not outside events.
` + "```" + `

## Rules

1. **Author headers** are a line of the form ` + "`" + `:::Name:::` + "`" + `. Inline styling
   inside the fences (` + "`" + `**bold**` + "`" + `, ` + "`" + `_italic_` + "`" + `) is allowed; authors are
   matched with styling stripped, so ` + "`" + `**Marcus**` + "`" + ` and ` + "`" + `Marcus` + "`" + ` are
   the same author.
2. **Quote lines** start with a list marker (` + "`" + `-` + "`" + `, ` + "`" + `*` + "`" + `, ` + "`" + `+` + "`" + ` or ` + "`" + `>` + "`" + `)
   followed by whitespace and text. Each quote attaches to the nearest
   author header above it.
3. **Anything else** (blank lines excepted) resets the current author.
   A quote line with no author above it is ignored.
4. **Short quotes** below the configured minimal length are skipped.
5. Duplicate quote texts under one author are stored once.

## Quote blocks

Render a stored quote inside any note with a fenced block:

` + "```" + `markdown
` + "```" + `localquote
search: Seneca || Marcus
id: ab3f9
reload: 1d
` + "```" + `
` + "```" + `

- ` + "`" + `search` + "`" + ` (required): author name, ` + "`" + `*` + "`" + ` for any, or ` + "`" + `a || b` + "`" + ` for
  a random pick among several authors.
- ` + "`" + `id` + "`" + ` (optional): blocks with an id keep their quote until the reload
  interval elapses; blocks without one resolve fresh on every render.
- ` + "`" + `reload` + "`" + ` (optional): bare seconds or a count with unit
  ` + "`" + `s m h d w M y` + "`" + `, e.g. ` + "`" + `30s` + "`" + `, ` + "`" + `2h` + "`" + `, ` + "`" + `1w` + "`" + `. ` + "`" + `0` + "`" + ` refreshes on
  every render.
- ` + "`" + `class` + "`" + ` (optional): extra CSS class added next to ` + "`" + `quote-block` + "`" + `.

Use the ` + "`" + `make_quote_block` + "`" + ` tool to generate valid block source.
`
