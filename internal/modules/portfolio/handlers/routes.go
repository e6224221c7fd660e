package handlers

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers all portfolio routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/portfolio", func(r chi.Router) {
		r.Get("/open-positions", h.HandleGetOpenPositions)     // Open lots with target-gain bands
		r.Get("/closed-positions", h.HandleGetClosedPositions) // Sold lots with realized results
		r.Get("/aggregate/{securityID}", h.HandleGetAggregate) // Position of one security
	})
}
