package handlers

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers screener routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/screener", func(r chi.Router) {
		r.Get("/rows", h.HandleGetRows)
		r.Route("/preferences/{account}", func(r chi.Router) {
			r.Get("/", h.HandleGetPreferences)
			r.Put("/", h.HandleSavePreferences)
			r.Post("/sort/{field}", h.HandleToggleSort)
		})
	})
}
