// Package screener runs the display-row pipeline: build rows from the universe,
// aggregate positions, filter, and sort.
package screener

import (
	"strings"

	"github.com/aristath/divdesk/internal/domain"
)

// Sortable fields
const (
	FieldSymbol                  = "symbol"
	FieldRiskGroup               = "risk_group"
	FieldLastPrice               = "last_price"
	FieldYieldPercent            = "yield_percent"
	FieldAvgPurchaseYieldPercent = "avg_purchase_yield_percent"
	FieldPosition                = "position"
	FieldDistribution            = "distribution"
	FieldDistributionsPerYear    = "distributions_per_year"
	FieldExDate                  = "ex_date"
	FieldMostRecentSellDate      = "most_recent_sell_date"
	FieldMostRecentSellPrice     = "most_recent_sell_price"
	FieldExpired                 = "expired"
	FieldIsClosedEndFund         = "is_closed_end_fund"
)

// SortableFields lists every field a criterion may name
var SortableFields = map[string]bool{
	FieldSymbol:                  true,
	FieldRiskGroup:               true,
	FieldLastPrice:               true,
	FieldYieldPercent:            true,
	FieldAvgPurchaseYieldPercent: true,
	FieldPosition:                true,
	FieldDistribution:            true,
	FieldDistributionsPerYear:    true,
	FieldExDate:                  true,
	FieldMostRecentSellDate:      true,
	FieldMostRecentSellPrice:     true,
	FieldExpired:                 true,
	FieldIsClosedEndFund:         true,
}

// Criterion is one sort key. Order is 1 for ascending, -1 for descending.
type Criterion struct {
	Field string `json:"field"`
	Order int    `json:"order"`
}

// Params are the user-controlled pipeline inputs.
//
// A nil MinYield, RiskGroupFilter or ExpiredFilter disables that filter. An empty
// SelectedAccount means every account.
type Params struct {
	MinYield        *float64    `json:"min_yield"`
	RiskGroupFilter *string     `json:"risk_group_filter"`
	ExpiredFilter   *bool       `json:"expired_filter"`
	SymbolFilter    string      `json:"symbol_filter"`
	SelectedAccount string      `json:"selected_account"`
	SortCriteria    []Criterion `json:"sort_criteria"`
}

// Scope returns the account scope of the selected account
func (p Params) Scope() domain.AccountScope {
	account := strings.TrimSpace(p.SelectedAccount)
	if account == "" {
		return domain.AllAccounts
	}
	return domain.AccountScope(account)
}
