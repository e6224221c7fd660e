package handlers

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers all universe routes
func (h *UniverseHandlers) RegisterRoutes(r chi.Router) {
	r.Route("/universe", func(r chi.Router) {
		r.Route("/securities", func(r chi.Router) {
			r.Get("/", h.HandleGetSecurities)
			r.Post("/", h.HandleCreateSecurity)
			r.Get("/{id}", h.HandleGetSecurity)
			r.Put("/{id}", h.HandleUpdateSecurity)
			r.Delete("/{id}", h.HandleDeleteSecurity)
		})
		r.Route("/risk-groups", func(r chi.Router) {
			r.Get("/", h.HandleGetRiskGroups)
			r.Post("/", h.HandleCreateRiskGroup)
			r.Delete("/{id}", h.HandleDeleteRiskGroup)
		})
	})
}
