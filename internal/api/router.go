package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/starford/ansuz/internal/quoteservice"
)

// NewRouter creates a chi router with all API routes mounted.
// authEnabled controls whether Bearer token auth is enforced.
// sseHandler, if non-nil, is mounted at GET /events inside the auth group.
func NewRouter(svc *quoteservice.Service, authEnabled bool, token string, sseHandler http.Handler) chi.Router {
	h := NewHandler(svc)

	r := chi.NewRouter()
	r.Use(AuthMiddleware(authEnabled, token))

	// Vault scanning and listings.
	r.Post("/scan", h.Rescan)
	r.Get("/authors", h.ListAuthors)
	r.Get("/quotes", h.GetAuthorQuotes)
	r.Get("/search", h.Search)

	// Block rendering and maintenance.
	r.Post("/blocks/render", h.RenderBlock)
	r.Post("/blocks/maker", h.MakeBlock)
	r.Get("/blocks", h.ListBlocks)
	r.Delete("/blocks", h.ClearBlocks)
	r.Delete("/onetime", h.ClearOneTime)

	// SSE endpoint (protected by same auth middleware).
	if sseHandler != nil {
		r.Get("/events", sseHandler.ServeHTTP)
	}

	return r
}
