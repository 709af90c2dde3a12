package game

import "github.com/go-chi/chi/v5"

// Routes returns the router mounted at /game.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/{id}", h.ServeGame)
	r.Post("/{id}/feedback", h.SubmitFeedback)
	return r
}
