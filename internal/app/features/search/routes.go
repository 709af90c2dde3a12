package search

import "github.com/go-chi/chi/v5"

// Routes returns the router mounted at /search.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServeSearch)
	return r
}
