// Package handlers provides HTTP handlers for portfolio position views.
package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/aristath/divdesk/internal/domain"
	"github.com/aristath/divdesk/internal/modules/portfolio"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// Handler handles portfolio HTTP requests
type Handler struct {
	service *portfolio.PortfolioService
	log     zerolog.Logger
}

// NewHandler creates a new portfolio handler
func NewHandler(
	service *portfolio.PortfolioService,
	log zerolog.Logger,
) *Handler {
	return &Handler{
		service: service,
		log:     log.With().Str("handler", "portfolio").Logger(),
	}
}

// HandleGetOpenPositions handles GET /api/portfolio/open-positions?account=
func (h *Handler) HandleGetOpenPositions(w http.ResponseWriter, r *http.Request) {
	scope := scopeFromRequest(r)

	positions, err := h.service.GetOpenPositions(r.Context(), scope)
	if err != nil {
		h.log.Error().Err(err).Str("scope", string(scope)).Msg("Failed to build open positions")
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"account":   scope,
		"positions": positions,
		"count":     len(positions),
	})
}

// HandleGetClosedPositions handles GET /api/portfolio/closed-positions?account=
func (h *Handler) HandleGetClosedPositions(w http.ResponseWriter, r *http.Request) {
	scope := scopeFromRequest(r)

	positions, err := h.service.GetClosedPositions(r.Context(), scope)
	if err != nil {
		h.log.Error().Err(err).Str("scope", string(scope)).Msg("Failed to build closed positions")
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	var realized float64
	for _, p := range positions {
		realized += p.RealizedGain
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"account":        scope,
		"positions":      positions,
		"count":          len(positions),
		"total_realized": realized,
	})
}

// HandleGetAggregate handles GET /api/portfolio/aggregate/{securityID}?account=
func (h *Handler) HandleGetAggregate(w http.ResponseWriter, r *http.Request) {
	securityID := chi.URLParam(r, "securityID")
	if securityID == "" {
		h.writeError(w, http.StatusBadRequest, "security ID is required")
		return
	}
	scope := scopeFromRequest(r)

	agg, err := h.service.GetAggregate(r.Context(), securityID, scope)
	if err != nil {
		h.log.Error().Err(err).Str("security_id", securityID).Msg("Failed to aggregate security")
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if agg == nil {
		h.writeError(w, http.StatusNotFound, "security not found")
		return
	}

	h.writeJSON(w, http.StatusOK, agg)
}

// scopeFromRequest reads ?account=, defaulting to every account
func scopeFromRequest(r *http.Request) domain.AccountScope {
	account := strings.TrimSpace(r.URL.Query().Get("account"))
	if account == "" {
		return domain.AllAccounts
	}
	return domain.AccountScope(account)
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"error": message})
}
