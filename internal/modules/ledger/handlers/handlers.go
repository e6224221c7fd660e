// Package handlers provides HTTP handlers for the account and trade ledger.
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/aristath/divdesk/internal/domain"
	"github.com/aristath/divdesk/internal/modules/ledger"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

const isoDate = "2006-01-02"

// Handler handles ledger HTTP requests
type Handler struct {
	accounts *ledger.AccountRepository
	trades   *ledger.TradeRepository
	log      zerolog.Logger
}

// NewHandler creates a new ledger handler
func NewHandler(accounts *ledger.AccountRepository, trades *ledger.TradeRepository, log zerolog.Logger) *Handler {
	return &Handler{
		accounts: accounts,
		trades:   trades,
		log:      log.With().Str("handler", "ledger").Logger(),
	}
}

// AccountRequest is the body of account create requests
type AccountRequest struct {
	Name string `json:"name"`
}

// TradeRequest is the body of trade create and correction requests.
// Dates are YYYY-MM-DD; omitted fields are left unchanged on correction.
type TradeRequest struct {
	BuyPrice   *float64 `json:"buy_price"`
	Quantity   *float64 `json:"quantity"`
	SellPrice  *float64 `json:"sell_price"`
	BuyDate    string   `json:"buy_date"`
	SellDate   string   `json:"sell_date"`
	AccountID  string   `json:"account_id"`
	SecurityID string   `json:"security_id"`
}

// SellRequest is the body of a sell request; a missing date means today
type SellRequest struct {
	Date  string  `json:"date"`
	Price float64 `json:"price"`
}

// HandleGetAccounts returns every account, with trades when ?trades=true
func (h *Handler) HandleGetAccounts(w http.ResponseWriter, r *http.Request) {
	var (
		accounts []domain.Account
		err      error
	)
	if r.URL.Query().Get("trades") == "true" {
		accounts, err = h.accounts.GetWithTrades(r.Context())
	} else {
		accounts, err = h.accounts.GetAll(r.Context())
	}
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to get accounts")
		h.writeError(w, http.StatusInternalServerError, "Failed to get accounts")
		return
	}
	h.writeJSON(w, http.StatusOK, accounts)
}

// HandleCreateAccount creates an account
func (h *Handler) HandleCreateAccount(w http.ResponseWriter, r *http.Request) {
	var req AccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	account, err := h.accounts.Create(r.Context(), req.Name)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	h.writeJSON(w, http.StatusCreated, account)
}

// HandleDeleteAccount removes an account and its trades
func (h *Handler) HandleDeleteAccount(w http.ResponseWriter, r *http.Request) {
	if err := h.accounts.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.log.Error().Err(err).Msg("Failed to delete account")
		h.writeError(w, http.StatusInternalServerError, "Failed to delete account")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleGetTrades returns trades, filtered by ?account= when given
func (h *Handler) HandleGetTrades(w http.ResponseWriter, r *http.Request) {
	var (
		trades []domain.Trade
		err    error
	)
	account := strings.TrimSpace(r.URL.Query().Get("account"))
	if account == "" || domain.AccountScope(account).IsAll() {
		trades, err = h.trades.GetAll(r.Context())
	} else {
		trades, err = h.trades.GetByAccount(r.Context(), account)
	}
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to get trades")
		h.writeError(w, http.StatusInternalServerError, "Failed to get trades")
		return
	}
	h.writeJSON(w, http.StatusOK, trades)
}

// HandleCreateTrade records a new lot
func (h *Handler) HandleCreateTrade(w http.ResponseWriter, r *http.Request) {
	var req TradeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.BuyPrice == nil || req.Quantity == nil {
		h.writeError(w, http.StatusBadRequest, "buy_price and quantity are required")
		return
	}

	buyDate, err := parseDate(req.BuyDate)
	if err != nil || buyDate == nil {
		h.writeError(w, http.StatusBadRequest, "buy_date must be YYYY-MM-DD")
		return
	}
	sellDate, err := parseDate(req.SellDate)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	trade := domain.Trade{
		AccountID:  req.AccountID,
		SecurityID: req.SecurityID,
		BuyPrice:   *req.BuyPrice,
		Quantity:   *req.Quantity,
		BuyDate:    *buyDate,
		SellDate:   sellDate,
	}
	if req.SellPrice != nil {
		trade.SellPrice = *req.SellPrice
	}

	created, err := h.trades.Create(r.Context(), trade)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	h.writeJSON(w, http.StatusCreated, created)
}

// HandleSellTrade closes an open lot
func (h *Handler) HandleSellTrade(w http.ResponseWriter, r *http.Request) {
	var req SellRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	date, err := parseDate(req.Date)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if date == nil {
		today := time.Now().UTC().Truncate(24 * time.Hour)
		date = &today
	}

	trade, err := h.trades.Sell(r.Context(), chi.URLParam(r, "id"), req.Price, *date)
	if err != nil {
		h.writeTradeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, trade)
}

// HandleCorrectTrade applies field corrections to a trade
func (h *Handler) HandleCorrectTrade(w http.ResponseWriter, r *http.Request) {
	var req TradeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	buyDate, err := parseDate(req.BuyDate)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	sellDate, err := parseDate(req.SellDate)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	trade, err := h.trades.Correct(r.Context(), chi.URLParam(r, "id"), ledger.TradeCorrection{
		BuyDate:   buyDate,
		SellDate:  sellDate,
		BuyPrice:  req.BuyPrice,
		Quantity:  req.Quantity,
		SellPrice: req.SellPrice,
	})
	if err != nil {
		h.writeTradeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, trade)
}

// HandleDeleteTrade removes a trade
func (h *Handler) HandleDeleteTrade(w http.ResponseWriter, r *http.Request) {
	if err := h.trades.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.writeTradeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) writeTradeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ledger.ErrTradeNotFound):
		h.writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, ledger.ErrTradeClosed):
		h.writeError(w, http.StatusConflict, err.Error())
	default:
		h.log.Error().Err(err).Msg("Trade operation failed")
		h.writeError(w, http.StatusBadRequest, err.Error())
	}
}

// parseDate parses YYYY-MM-DD; "" means no date
func parseDate(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(isoDate, s)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s)
	}
	return &t, nil
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
