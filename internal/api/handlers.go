package api

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/starford/ansuz/internal/apperr"
	"github.com/starford/ansuz/internal/quote"
	"github.com/starford/ansuz/internal/quoteservice"
)

// Handler holds API route handlers.
type Handler struct {
	svc *quoteservice.Service
}

// NewHandler creates a new Handler.
func NewHandler(svc *quoteservice.Service) *Handler {
	return &Handler{svc: svc}
}

// quoteErrStatus maps the recoverable quote errors to HTTP statuses.
// Anything else is an internal error.
func quoteErrStatus(err error) (int, bool) {
	switch {
	case errors.Is(err, apperr.ErrUnknownAuthor):
		return http.StatusNotFound, true
	case errors.Is(err, apperr.ErrEmptyVault):
		return http.StatusConflict, true
	case errors.Is(err, apperr.ErrNoQuotesForAuthor):
		return http.StatusConflict, true
	case errors.Is(err, apperr.ErrNotFound):
		return http.StatusNotFound, true
	}
	return 0, false
}

func writeQuoteErr(w http.ResponseWriter, err error, op string) {
	if status, ok := quoteErrStatus(err); ok {
		writeJSON(w, status, errorBody(err.Error()))
		return
	}
	slog.Error(op+" failed", slog.String("error", err.Error()))
	writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
}

// Rescan handles POST /api/scan.
//
//	@Summary		Rescan the vault for quote listings
//	@Tags			quotes
//	@Produce		json
//	@Success		200	{object}	ScanSummary
//	@Security		BearerAuth
//	@Router			/scan [post]
func (h *Handler) Rescan(w http.ResponseWriter, r *http.Request) {
	sum, err := h.svc.Rescan(r.Context())
	if err != nil {
		writeQuoteErr(w, err, "rescan")
		return
	}
	writeJSON(w, http.StatusOK, sum)
}

// ListAuthors handles GET /api/authors.
//
//	@Summary		List vault authors with their quotes
//	@Tags			quotes
//	@Produce		json
//	@Success		200	{object}	AuthorListResponse
//	@Security		BearerAuth
//	@Router			/authors [get]
func (h *Handler) ListAuthors(w http.ResponseWriter, r *http.Request) {
	entries, err := h.svc.Authors(r.Context())
	if err != nil {
		writeQuoteErr(w, err, "list authors")
		return
	}
	if entries == nil {
		entries = []quote.Entry{}
	}
	writeJSON(w, http.StatusOK, AuthorListResponse{Authors: entries, Total: len(entries)})
}

// GetAuthorQuotes handles GET /api/quotes?author=.
//
//	@Summary		Get one author's quote listing
//	@Tags			quotes
//	@Produce		json
//	@Param			author	query		string	true	"Author name (styled or canonical)"
//	@Success		200		{object}	quote.Entry
//	@Failure		404		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/quotes [get]
func (h *Handler) GetAuthorQuotes(w http.ResponseWriter, r *http.Request) {
	author := r.URL.Query().Get("author")
	if author == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("author query parameter is required"))
		return
	}
	e, err := h.svc.AuthorQuotes(r.Context(), author)
	if err != nil {
		writeQuoteErr(w, err, "get author quotes")
		return
	}
	writeJSON(w, http.StatusOK, e)
}

// RenderBlock handles POST /api/blocks/render.
//
//	@Summary		Render a quote block declaration
//	@Tags			blocks
//	@Accept			json
//	@Produce		json
//	@Param			request	body		RenderRequest	true	"Block source"
//	@Success		200		{object}	RenderResult
//	@Failure		404		{object}	errResponse
//	@Failure		409		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/blocks/render [post]
func (h *Handler) RenderBlock(w http.ResponseWriter, r *http.Request) {
	var req RenderRequest
	if err := decodeBody(r.Body, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid request body"))
		return
	}
	if req.Source == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("source is required"))
		return
	}

	var (
		res *RenderResult
		err error
	)
	if req.OneTime {
		res, err = h.svc.RenderOneTime(r.Context(), req.Source, req.Filename)
	} else {
		res, err = h.svc.RenderBlock(r.Context(), req.Source)
	}
	if err != nil {
		writeQuoteErr(w, err, "render block")
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// MakeBlock handles POST /api/blocks/maker.
//
//	@Summary		Generate a quote block declaration
//	@Tags			blocks
//	@Accept			json
//	@Produce		json
//	@Param			request	body		MakerRequest	true	"Maker options"
//	@Success		201		{object}	MakerResponse
//	@Failure		404		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/blocks/maker [post]
func (h *Handler) MakeBlock(w http.ResponseWriter, r *http.Request) {
	var req MakerRequest
	if err := decodeBody(r.Body, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid request body"))
		return
	}
	if req.Search == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("search is required"))
		return
	}
	src, err := h.svc.MakeBlock(r.Context(), req)
	if err != nil {
		writeQuoteErr(w, err, "make block")
		return
	}
	writeJSON(w, http.StatusCreated, MakerResponse{Source: src})
}

// ListBlocks handles GET /api/blocks.
//
//	@Summary		List persisted block metadata
//	@Tags			blocks
//	@Produce		json
//	@Success		200	{object}	BlockListResponse
//	@Security		BearerAuth
//	@Router			/blocks [get]
func (h *Handler) ListBlocks(w http.ResponseWriter, r *http.Request) {
	blocks, err := h.svc.ListBlocks(r.Context())
	if err != nil {
		writeQuoteErr(w, err, "list blocks")
		return
	}
	writeJSON(w, http.StatusOK, BlockListResponse{Blocks: blocks, Total: len(blocks)})
}

// ClearBlocks handles DELETE /api/blocks.
//
//	@Summary		Clear all block metadata
//	@Tags			blocks
//	@Success		204
//	@Security		BearerAuth
//	@Router			/blocks [delete]
func (h *Handler) ClearBlocks(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.ClearBlocks(r.Context()); err != nil {
		writeQuoteErr(w, err, "clear blocks")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ClearOneTime handles DELETE /api/onetime.
//
//	@Summary		Clear all one-time block records
//	@Tags			blocks
//	@Success		204
//	@Security		BearerAuth
//	@Router			/onetime [delete]
func (h *Handler) ClearOneTime(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.ClearOneTime(r.Context()); err != nil {
		writeQuoteErr(w, err, "clear one-time blocks")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Search handles GET /api/search.
//
//	@Summary		Full-text search over quote text
//	@Tags			quotes
//	@Produce		json
//	@Param			q		query		string	true	"Search query"
//	@Param			limit	query		int		false	"Max results (default 20)"
//	@Success		200		{object}	SearchResponse
//	@Security		BearerAuth
//	@Router			/search [get]
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("q query parameter is required"))
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	hits, err := h.svc.SearchQuotes(r.Context(), q, limit)
	if err != nil {
		writeQuoteErr(w, err, "search quotes")
		return
	}
	writeJSON(w, http.StatusOK, SearchResponse{Results: hits})
}

func decodeBody(body io.Reader, v any) error {
	return json.NewDecoder(body).Decode(v)
}
