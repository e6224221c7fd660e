// Package handlers provides HTTP handlers for universe management.
package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/aristath/divdesk/internal/domain"
	"github.com/aristath/divdesk/internal/modules/portfolio"
	"github.com/aristath/divdesk/internal/modules/universe"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

const isoDate = "2006-01-02"

// TradeLister supplies the trade ledger for deletion checks
type TradeLister interface {
	GetAll(ctx context.Context) ([]domain.Trade, error)
}

// UniverseHandlers contains HTTP handlers for securities and risk groups
type UniverseHandlers struct {
	securityRepo  universe.SecurityRepositoryInterface
	riskGroupRepo universe.RiskGroupRepositoryInterface
	trades        TradeLister
	log           zerolog.Logger
}

// NewUniverseHandlers creates a new universe handlers instance
func NewUniverseHandlers(
	securityRepo universe.SecurityRepositoryInterface,
	riskGroupRepo universe.RiskGroupRepositoryInterface,
	trades TradeLister,
	log zerolog.Logger,
) *UniverseHandlers {
	return &UniverseHandlers{
		securityRepo:  securityRepo,
		riskGroupRepo: riskGroupRepo,
		trades:        trades,
		log:           log.With().Str("module", "universe_handlers").Logger(),
	}
}

// SecurityRequest is the body of security create and update requests.
// Pointer fields left out of an update are not changed.
type SecurityRequest struct {
	Distribution         *float64 `json:"distribution"`
	DistributionsPerYear *int     `json:"distributions_per_year"`
	LastPrice            *float64 `json:"last_price"`
	ExDate               *string  `json:"ex_date"`
	Expired              *bool    `json:"expired"`
	RiskGroupID          *string  `json:"risk_group_id"`
	IsClosedEndFund      *bool    `json:"is_closed_end_fund"`
	Symbol               string   `json:"symbol"`
}

// HandleGetSecurities returns all securities
// GET /api/universe/securities
func (h *UniverseHandlers) HandleGetSecurities(w http.ResponseWriter, r *http.Request) {
	securities, err := h.securityRepo.GetAll(r.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to get securities")
		http.Error(w, "Failed to get securities", http.StatusInternalServerError)
		return
	}
	h.writeJSON(w, http.StatusOK, securities)
}

// HandleGetSecurity returns one security
// GET /api/universe/securities/{id}
func (h *UniverseHandlers) HandleGetSecurity(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	security, err := h.securityRepo.GetByID(r.Context(), id)
	if err != nil {
		h.log.Error().Err(err).Str("id", id).Msg("Failed to get security")
		http.Error(w, "Failed to get security", http.StatusInternalServerError)
		return
	}
	if security == nil {
		http.Error(w, "Security not found", http.StatusNotFound)
		return
	}
	h.writeJSON(w, http.StatusOK, security)
}

// HandleCreateSecurity adds a security to the universe
// POST /api/universe/securities
func (h *UniverseHandlers) HandleCreateSecurity(w http.ResponseWriter, r *http.Request) {
	var req SecurityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Symbol) == "" {
		http.Error(w, "Symbol is required", http.StatusBadRequest)
		return
	}

	exDate, err := parseOptionalDate(req.ExDate)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	security := domain.Security{
		Symbol:               req.Symbol,
		Distribution:         req.Distribution,
		DistributionsPerYear: req.DistributionsPerYear,
		ExDate:               exDate,
		Expired:              req.Expired,
		RiskGroupID:          req.RiskGroupID,
	}
	if req.LastPrice != nil {
		security.LastPrice = *req.LastPrice
	}
	if req.IsClosedEndFund != nil {
		security.IsClosedEndFund = *req.IsClosedEndFund
	}

	created, err := h.securityRepo.Create(r.Context(), security)
	if err != nil {
		h.log.Error().Err(err).Str("symbol", req.Symbol).Msg("Failed to create security")
		http.Error(w, fmt.Sprintf("Failed to create security: %v", err), http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message":  fmt.Sprintf("Security %s added successfully", created.Symbol),
		"security": created,
	})
}

// HandleUpdateSecurity updates the fields present in the request
// PUT /api/universe/securities/{id}
func (h *UniverseHandlers) HandleUpdateSecurity(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req SecurityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	updates := make(map[string]interface{})
	if req.Symbol != "" {
		updates["symbol"] = req.Symbol
	}
	if req.Distribution != nil {
		updates["distribution"] = req.Distribution
	}
	if req.DistributionsPerYear != nil {
		updates["distributions_per_year"] = req.DistributionsPerYear
	}
	if req.LastPrice != nil {
		updates["last_price"] = *req.LastPrice
	}
	if req.ExDate != nil {
		exDate, err := parseOptionalDate(req.ExDate)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		updates["ex_date"] = exDate
	}
	if req.Expired != nil {
		updates["expired"] = req.Expired
	}
	if req.RiskGroupID != nil {
		updates["risk_group_id"] = req.RiskGroupID
	}
	if req.IsClosedEndFund != nil {
		updates["is_closed_end_fund"] = *req.IsClosedEndFund
	}

	if len(updates) == 0 {
		http.Error(w, "No fields to update", http.StatusBadRequest)
		return
	}

	if err := h.securityRepo.Update(r.Context(), id, updates); err != nil {
		h.log.Error().Err(err).Str("id", id).Msg("Failed to update security")
		http.Error(w, "Failed to update security", http.StatusInternalServerError)
		return
	}

	security, err := h.securityRepo.GetByID(r.Context(), id)
	if err != nil || security == nil {
		http.Error(w, "Security not found", http.StatusNotFound)
		return
	}
	h.writeJSON(w, http.StatusOK, security)
}

// HandleDeleteSecurity removes a security unless an account still holds it
// DELETE /api/universe/securities/{id}
func (h *UniverseHandlers) HandleDeleteSecurity(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	security, err := h.securityRepo.GetByID(r.Context(), id)
	if err != nil {
		h.log.Error().Err(err).Str("id", id).Msg("Failed to get security")
		http.Error(w, "Failed to delete security", http.StatusInternalServerError)
		return
	}
	if security == nil {
		http.Error(w, "Security not found", http.StatusNotFound)
		return
	}

	trades, err := h.trades.GetAll(r.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to load trades")
		http.Error(w, "Failed to delete security", http.StatusInternalServerError)
		return
	}

	accounts := domain.Snapshot{Trades: trades}.AccountsOrTrades()
	if portfolio.HasOpenPositionInAnyAccount(accounts, id) {
		h.log.Warn().Str("symbol", security.Symbol).Msg("Cannot delete security - open position")
		http.Error(w, fmt.Sprintf("Security %s has an open position", security.Symbol), http.StatusConflict)
		return
	}

	if err := h.securityRepo.Delete(r.Context(), id); err != nil {
		h.log.Error().Err(err).Str("id", id).Msg("Failed to delete security")
		http.Error(w, "Failed to delete security", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleGetRiskGroups returns all risk groups
// GET /api/universe/risk-groups
func (h *UniverseHandlers) HandleGetRiskGroups(w http.ResponseWriter, r *http.Request) {
	groups, err := h.riskGroupRepo.GetAll(r.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to get risk groups")
		http.Error(w, "Failed to get risk groups", http.StatusInternalServerError)
		return
	}
	h.writeJSON(w, http.StatusOK, groups)
}

// HandleCreateRiskGroup adds a risk group
// POST /api/universe/risk-groups
func (h *UniverseHandlers) HandleCreateRiskGroup(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		http.Error(w, "Name is required", http.StatusBadRequest)
		return
	}

	group, err := h.riskGroupRepo.Create(r.Context(), req.Name)
	if err != nil {
		h.log.Error().Err(err).Str("name", req.Name).Msg("Failed to create risk group")
		http.Error(w, "Failed to create risk group", http.StatusInternalServerError)
		return
	}
	h.writeJSON(w, http.StatusCreated, group)
}

// HandleDeleteRiskGroup removes a risk group
// DELETE /api/universe/risk-groups/{id}
func (h *UniverseHandlers) HandleDeleteRiskGroup(w http.ResponseWriter, r *http.Request) {
	if err := h.riskGroupRepo.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.log.Error().Err(err).Msg("Failed to delete risk group")
		http.Error(w, "Failed to delete risk group", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// parseOptionalDate parses a YYYY-MM-DD string; nil and "" mean no date
func parseOptionalDate(s *string) (*time.Time, error) {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil, nil
	}
	t, err := time.Parse(isoDate, strings.TrimSpace(*s))
	if err != nil {
		return nil, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", *s)
	}
	return &t, nil
}

func (h *UniverseHandlers) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}
