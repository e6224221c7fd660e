// Package handlers provides HTTP handlers for trading calendar operations.
package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/aristath/divdesk/internal/modules/market_hours"
	"github.com/rs/zerolog"
)

const dateLayout = "2006-01-02"

// HolidayStore supplies the stored holiday snapshot
type HolidayStore interface {
	GetAll(ctx context.Context) ([]market_hours.Holiday, error)
}

// Handler handles market hours HTTP requests
type Handler struct {
	calendar *market_hours.Calendar
	store    HolidayStore
	log      zerolog.Logger
}

// NewHandler creates a new market hours handler
func NewHandler(
	calendar *market_hours.Calendar,
	store HolidayStore,
	log zerolog.Logger,
) *Handler {
	return &Handler{
		calendar: calendar,
		store:    store,
		log:      log.With().Str("handler", "market_hours").Logger(),
	}
}

// HandleGetTradingDays handles GET /api/market-hours/trading-days?start=&end=
// Counts trading days between two dates, both inclusive
func (h *Handler) HandleGetTradingDays(w http.ResponseWriter, r *http.Request) {
	start, err := time.Parse(dateLayout, r.URL.Query().Get("start"))
	if err != nil {
		http.Error(w, "start must be a YYYY-MM-DD date", http.StatusBadRequest)
		return
	}
	end, err := time.Parse(dateLayout, r.URL.Query().Get("end"))
	if err != nil {
		http.Error(w, "end must be a YYYY-MM-DD date", http.StatusBadRequest)
		return
	}

	stored, err := h.storedDates(r.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to load holidays")
		http.Error(w, "Failed to load holidays", http.StatusInternalServerError)
		return
	}

	response := map[string]interface{}{
		"data": map[string]interface{}{
			"start":        start.Format(dateLayout),
			"end":          end.Format(dateLayout),
			"market":       h.calendar.Market(),
			"trading_days": h.calendar.TradingDaysBetween(start, end, stored),
		},
		"metadata": map[string]interface{}{
			"timestamp": time.Now().Format(time.RFC3339),
		},
	}

	h.writeJSON(w, http.StatusOK, response)
}

// HandleGetHolidays handles GET /api/market-hours/holidays?year=
// Returns generated and stored holidays of a year, defaulting to the current year
func (h *Handler) HandleGetHolidays(w http.ResponseWriter, r *http.Request) {
	year := time.Now().Year()
	if yearStr := r.URL.Query().Get("year"); yearStr != "" {
		if parsedYear, err := strconv.Atoi(yearStr); err == nil && parsedYear > 0 {
			year = parsedYear
		}
	}

	stored, err := h.store.GetAll(r.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to load holidays")
		http.Error(w, "Failed to load holidays", http.StatusInternalServerError)
		return
	}

	seen := make(map[string]bool)
	holidays := make([]map[string]string, 0)
	for _, hol := range h.calendar.HolidaysForYear(year) {
		key := hol.Date.Format(dateLayout)
		seen[key] = true
		holidays = append(holidays, map[string]string{"date": key, "name": hol.Name, "source": "generated"})
	}
	for _, hol := range stored {
		key := hol.Date.Format(dateLayout)
		if hol.Date.Year() != year || seen[key] {
			continue
		}
		seen[key] = true
		holidays = append(holidays, map[string]string{"date": key, "name": hol.Name, "source": "stored"})
	}

	response := map[string]interface{}{
		"data": map[string]interface{}{
			"year":     year,
			"market":   h.calendar.Market(),
			"holidays": holidays,
		},
		"metadata": map[string]interface{}{
			"timestamp": time.Now().Format(time.RFC3339),
		},
	}

	h.writeJSON(w, http.StatusOK, response)
}

func (h *Handler) storedDates(ctx context.Context) ([]time.Time, error) {
	stored, err := h.store.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	dates := make([]time.Time, len(stored))
	for i, hol := range stored {
		dates[i] = hol.Date
	}
	return dates, nil
}

// writeJSON writes a JSON response
func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}
