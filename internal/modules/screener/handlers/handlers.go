// Package handlers provides HTTP handlers for the screener pipeline.
package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/aristath/divdesk/internal/modules/screener"
	"github.com/aristath/divdesk/internal/modules/settings"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// SettingsReader supplies the default account scope
type SettingsReader interface {
	GetString(ctx context.Context, key string) (string, error)
}

// Handler handles screener HTTP requests
type Handler struct {
	service     *screener.Service
	preferences *screener.PreferenceStore
	settings    SettingsReader
	log         zerolog.Logger
}

// NewHandler creates a new screener handler
func NewHandler(
	service *screener.Service,
	preferences *screener.PreferenceStore,
	settings SettingsReader,
	log zerolog.Logger,
) *Handler {
	return &Handler{
		service:     service,
		preferences: preferences,
		settings:    settings,
		log:         log.With().Str("handler", "screener").Logger(),
	}
}

// HandleGetRows runs the pipeline.
// GET /api/screener/rows?account=&symbol=&min_yield=&risk_group=&expired=&sort=
//
// Parameters missing from the query fall back to the stored preferences of the account.
func (h *Handler) HandleGetRows(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	account := strings.TrimSpace(query.Get("account"))
	if account == "" {
		account = h.defaultAccount(r.Context())
	}

	params, err := h.preferences.Get(r.Context(), account)
	if err != nil {
		h.log.Error().Err(err).Str("account", account).Msg("Failed to load preferences")
		h.writeError(w, http.StatusInternalServerError, "Failed to load preferences")
		return
	}

	if err := applyQuery(&params, query); err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	rows, err := h.service.Rows(r.Context(), params)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to run screener pipeline")
		h.writeError(w, http.StatusInternalServerError, "Failed to build screener rows")
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"data": map[string]interface{}{
			"rows":   rows,
			"params": params,
		},
		"metadata": map[string]interface{}{
			"count":     len(rows),
			"timestamp": time.Now().Format(time.RFC3339),
		},
	})
}

// HandleGetPreferences returns the stored parameters of an account
// GET /api/screener/preferences/{account}
func (h *Handler) HandleGetPreferences(w http.ResponseWriter, r *http.Request) {
	params, err := h.preferences.Get(r.Context(), chi.URLParam(r, "account"))
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to load preferences")
		h.writeError(w, http.StatusInternalServerError, "Failed to load preferences")
		return
	}
	h.writeJSON(w, http.StatusOK, params)
}

// HandleSavePreferences replaces the stored parameters of an account
// PUT /api/screener/preferences/{account}
func (h *Handler) HandleSavePreferences(w http.ResponseWriter, r *http.Request) {
	var params screener.Params
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	params.SelectedAccount = chi.URLParam(r, "account")

	if err := h.preferences.Save(r.Context(), params); err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	saved, err := h.preferences.Get(r.Context(), params.SelectedAccount)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to reload preferences")
		h.writeError(w, http.StatusInternalServerError, "Failed to load preferences")
		return
	}
	h.writeJSON(w, http.StatusOK, saved)
}

// HandleToggleSort cycles the sort state of one field
// POST /api/screener/preferences/{account}/sort/{field}
func (h *Handler) HandleToggleSort(w http.ResponseWriter, r *http.Request) {
	params, err := h.preferences.ToggleSort(r.Context(), chi.URLParam(r, "account"), chi.URLParam(r, "field"))
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	h.writeJSON(w, http.StatusOK, params)
}

func (h *Handler) defaultAccount(ctx context.Context) string {
	if h.settings == nil {
		return ""
	}
	account, err := h.settings.GetString(ctx, settings.KeyDefaultAccount)
	if err != nil {
		h.log.Warn().Err(err).Msg("Failed to read default account, using all accounts")
		return ""
	}
	return account
}

// applyQuery overrides params with the filters present in the query string
func applyQuery(params *screener.Params, query map[string][]string) error {
	get := func(key string) (string, bool) {
		v, ok := query[key]
		if !ok || len(v) == 0 {
			return "", false
		}
		return v[0], true
	}

	if v, ok := get("symbol"); ok {
		params.SymbolFilter = v
	}

	if v, ok := get("min_yield"); ok {
		if strings.TrimSpace(v) == "" {
			params.MinYield = nil
		} else {
			f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
			if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
				return fmt.Errorf("invalid min_yield %q", v)
			}
			params.MinYield = &f
		}
	}

	if v, ok := get("risk_group"); ok {
		if v == "" {
			params.RiskGroupFilter = nil
		} else {
			params.RiskGroupFilter = &v
		}
	}

	if v, ok := get("expired"); ok {
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "":
			params.ExpiredFilter = nil
		case "true":
			b := true
			params.ExpiredFilter = &b
		case "false":
			b := false
			params.ExpiredFilter = &b
		default:
			return fmt.Errorf("invalid expired %q, expected true or false", v)
		}
	}

	if v, ok := get("sort"); ok {
		criteria, err := screener.ParseCriteria(v)
		if err != nil {
			return err
		}
		params.SortCriteria = criteria
	}

	return nil
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
