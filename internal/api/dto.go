package api

import (
	"github.com/starford/ansuz/internal/block"
	"github.com/starford/ansuz/internal/index"
	"github.com/starford/ansuz/internal/quote"
	"github.com/starford/ansuz/internal/quoteservice"
)

// RenderRequest is the request body for rendering a quote block.
type RenderRequest struct {
	Source   string `json:"source" example:"search: Seneca\nid: abc12\nreload: 1d" validate:"required"`
	Filename string `json:"filename,omitempty" example:"journal/today.md"`
	OneTime  bool   `json:"one_time,omitempty"`
}

// MakerRequest is the request body for generating a block declaration
// (aliased from the domain layer).
type MakerRequest = quoteservice.MakerRequest

// MakerResponse wraps a generated block declaration.
type MakerResponse struct {
	Source string `json:"source" validate:"required"`
}

// RenderResult is the rendered block response (aliased from the domain layer).
type RenderResult = quoteservice.RenderResult

// ScanSummary is the rescan response (aliased from the domain layer).
type ScanSummary = quoteservice.ScanSummary

// AuthorListResponse wraps the vault's author listing.
type AuthorListResponse struct {
	Authors []quote.Entry `json:"authors" validate:"required"`
	Total   int           `json:"total" example:"2" validate:"required"`
}

// BlockListResponse wraps persisted block metadata records.
type BlockListResponse struct {
	Blocks []block.Metadata `json:"blocks" validate:"required"`
	Total  int              `json:"total" example:"3" validate:"required"`
}

// SearchResponse wraps full-text quote search hits.
type SearchResponse struct {
	Results []index.QuoteHit `json:"results" validate:"required"`
}
