// Package ledger stores accounts and their trade lots.
package ledger

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/aristath/divdesk/internal/domain"
)

// ErrTradeNotFound is returned when a trade ID does not exist
var ErrTradeNotFound = errors.New("trade not found")

// ErrTradeClosed is returned when selling a lot that is already sold
var ErrTradeClosed = errors.New("trade already sold")

// TradeCorrection holds the fields of a trade that may be corrected after entry.
// Nil fields are left unchanged.
type TradeCorrection struct {
	BuyDate   *time.Time
	SellDate  *time.Time
	BuyPrice  *float64
	Quantity  *float64
	SellPrice *float64
}

// validateTrade checks a lot before it reaches the database
func validateTrade(t domain.Trade) error {
	if t.AccountID == "" {
		return fmt.Errorf("account ID is required")
	}
	if t.SecurityID == "" {
		return fmt.Errorf("security ID is required")
	}
	if t.BuyPrice < 0 || math.IsNaN(t.BuyPrice) || math.IsInf(t.BuyPrice, 0) {
		return fmt.Errorf("buy price must not be negative, got %v", t.BuyPrice)
	}
	if t.Quantity <= 0 || math.IsNaN(t.Quantity) || math.IsInf(t.Quantity, 0) {
		return fmt.Errorf("quantity must be positive, got %v", t.Quantity)
	}
	if t.BuyDate.IsZero() {
		return fmt.Errorf("buy date is required")
	}
	if t.SellDate != nil && t.SellDate.Before(t.BuyDate) {
		return fmt.Errorf("sell date %s is before buy date %s",
			t.SellDate.Format("2006-01-02"), t.BuyDate.Format("2006-01-02"))
	}
	return nil
}
