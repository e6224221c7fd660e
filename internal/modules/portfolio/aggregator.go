// Package portfolio folds trade lots into per-security positions and builds the
// open and closed position views.
package portfolio

import (
	"time"

	"github.com/aristath/divdesk/internal/domain"
	"github.com/aristath/divdesk/pkg/formulas"
	"github.com/shopspring/decimal"
)

// Aggregate is the position of one security within an account scope.
// Position is the cost basis of the open lots (a currency amount, not a share count).
type Aggregate struct {
	MostRecentSellDate  *time.Time `json:"most_recent_sell_date,omitempty"`
	MostRecentSellPrice *float64   `json:"most_recent_sell_price,omitempty"`
	SecurityID          string     `json:"security_id"`
	TotalCost           float64    `json:"total_cost"`
	TotalQuantity       float64    `json:"total_quantity"`
	Position            float64    `json:"position"`
	AveragePrice        float64    `json:"average_price"`
}

// HasPosition reports whether any open lot contributes to the aggregate
func (a Aggregate) HasPosition() bool {
	return a.Position != 0
}

// AggregateTrades folds the trades of securityID inside scope.
//
// Cost and quantity are summed over open lots only; the most recent sell is
// picked among closed lots by latest sell date. Trades of other securities or
// accounts are ignored. The input is never modified.
func AggregateTrades(trades []domain.Trade, securityID string, scope domain.AccountScope) Aggregate {
	return fold(trades, securityID, func(t domain.Trade) bool {
		return scope.Matches(t.AccountID)
	})
}

// AggregateAccounts folds the per-account trade lists of securityID. With the
// AllAccounts scope every account is merged; otherwise only the named account is read.
func AggregateAccounts(accounts []domain.Account, securityID string, scope domain.AccountScope) Aggregate {
	var trades []domain.Trade
	for _, a := range accounts {
		if scope.Matches(a.ID) {
			trades = append(trades, a.Trades...)
		}
	}
	return fold(trades, securityID, func(domain.Trade) bool { return true })
}

// HasOpenPositionInAnyAccount scans every account separately and reports whether
// at least one of them holds a nonzero open position in securityID.
func HasOpenPositionInAnyAccount(accounts []domain.Account, securityID string) bool {
	for _, a := range accounts {
		if AggregateAccounts([]domain.Account{a}, securityID, domain.AccountScope(a.ID)).HasPosition() {
			return true
		}
	}
	return false
}

// AveragePurchaseYield is the purchase yield of the aggregate's weighted-average
// price, 0 without open lots
func AveragePurchaseYield(agg Aggregate, security domain.Security) float64 {
	return formulas.PurchaseYieldPercent(security.Distribution, security.DistributionsPerYear, agg.AveragePrice)
}

func fold(trades []domain.Trade, securityID string, inScope func(domain.Trade) bool) Aggregate {
	agg := Aggregate{SecurityID: securityID}

	totalCost := decimal.Zero
	totalQuantity := decimal.Zero
	var prices, quantities []float64

	for _, t := range trades {
		if t.SecurityID != securityID || !inScope(t) {
			continue
		}

		if t.IsOpen() {
			quantity := decimal.NewFromFloat(t.Quantity)
			totalCost = totalCost.Add(decimal.NewFromFloat(t.BuyPrice).Mul(quantity))
			totalQuantity = totalQuantity.Add(quantity)
			prices = append(prices, t.BuyPrice)
			quantities = append(quantities, t.Quantity)
			continue
		}

		if agg.MostRecentSellDate == nil || t.SellDate.After(*agg.MostRecentSellDate) {
			sellDate := *t.SellDate
			sellPrice := t.SellPrice
			agg.MostRecentSellDate = &sellDate
			agg.MostRecentSellPrice = &sellPrice
		}
	}

	agg.TotalCost = totalCost.InexactFloat64()
	agg.TotalQuantity = totalQuantity.InexactFloat64()
	agg.Position = agg.TotalCost
	agg.AveragePrice = formulas.WeightedAveragePrice(prices, quantities)
	return agg
}
