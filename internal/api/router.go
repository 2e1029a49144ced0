package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/starford/bindrune/internal/linkservice"
)

// NewRouter creates a chi router with all API routes mounted.
// authEnabled controls whether Bearer token auth is enforced.
func NewRouter(svc *linkservice.Service, authEnabled bool, token string) chi.Router {
	h := NewHandler(svc)

	r := chi.NewRouter()
	r.Use(AuthMiddleware(authEnabled, token))

	// Links.
	r.Get("/links", h.ListLinks)
	r.Post("/links", h.CreateLink)
	r.Get("/links/{id}", h.GetLink)
	r.Get("/links/{id}/related", h.GetRelated)

	// Search.
	r.Get("/search", h.Search)

	return r
}
