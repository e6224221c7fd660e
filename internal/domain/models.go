// Package domain provides core domain models and types.
package domain

import "time"

// AccountScope selects the trades an aggregation looks at: a single account ID,
// or AllAccounts to merge every account's trades.
type AccountScope string

// AllAccounts is the scope value that aggregates across every account.
const AllAccounts AccountScope = "all"

// IsAll reports whether the scope spans every account
func (s AccountScope) IsAll() bool {
	return s == AllAccounts
}

// Matches reports whether a trade booked on accountID falls inside the scope
func (s AccountScope) Matches(accountID string) bool {
	return s.IsAll() || string(s) == accountID
}

// Trade is one buy lot, optionally closed by a sell.
// A trade is open while SellDate is nil.
type Trade struct {
	BuyDate    time.Time  `json:"buy_date"`
	SellDate   *time.Time `json:"sell_date,omitempty"`
	ID         string     `json:"id"`
	AccountID  string     `json:"account_id"`
	SecurityID string     `json:"security_id"`
	BuyPrice   float64    `json:"buy_price"`
	Quantity   float64    `json:"quantity"`
	SellPrice  float64    `json:"sell_price"`
}

// IsOpen returns true if the lot has not been sold
func (t Trade) IsOpen() bool {
	return t.SellDate == nil
}

// Cost returns the cost basis of the lot (buy price x quantity)
func (t Trade) Cost() float64 {
	return t.BuyPrice * t.Quantity
}

// Account groups the trades booked on one brokerage account
type Account struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Trades []Trade `json:"trades,omitempty"`
}

// RiskGroup labels securities with a risk bucket
type RiskGroup struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Security is one tradable instrument of the universe.
// Optional reference data uses pointers (nil = not set).
type Security struct {
	ExDate               *time.Time `json:"ex_date,omitempty"`
	Distribution         *float64   `json:"distribution,omitempty"`
	DistributionsPerYear *int       `json:"distributions_per_year,omitempty"`
	Expired              *bool      `json:"expired,omitempty"`
	RiskGroupID          *string    `json:"risk_group_id,omitempty"`
	ID                   string     `json:"id"`
	Symbol               string     `json:"symbol"`
	LastPrice            float64    `json:"last_price"`
	IsClosedEndFund      bool       `json:"is_closed_end_fund"`
}

// IsExpired treats a missing flag as not expired
func (s Security) IsExpired() bool {
	return s.Expired != nil && *s.Expired
}

// Snapshot is the read-only view of the store handed to one pipeline run.
// Nothing in the analytics engine mutates it.
type Snapshot struct {
	Trades     []Trade
	Securities []Security
	RiskGroups []RiskGroup
	Accounts   []Account
	Holidays   []time.Time
}

// SecurityByID returns the security with the given ID, if present
func (s Snapshot) SecurityByID(id string) (Security, bool) {
	for _, sec := range s.Securities {
		if sec.ID == id {
			return sec, true
		}
	}
	return Security{}, false
}

// AllTrades returns the flat trade list, falling back to the trades carried by
// the accounts when the store only supplied the per-account shape
func (s Snapshot) AllTrades() []Trade {
	if len(s.Trades) > 0 || len(s.Accounts) == 0 {
		return s.Trades
	}

	var trades []Trade
	for _, a := range s.Accounts {
		for _, t := range a.Trades {
			if t.AccountID == "" {
				t.AccountID = a.ID
			}
			trades = append(trades, t)
		}
	}
	return trades
}

// AccountsOrTrades returns the per-account trade lists. When the store did not
// supply accounts, the flat trade list is grouped by account ID in first-seen order.
func (s Snapshot) AccountsOrTrades() []Account {
	if len(s.Accounts) > 0 {
		return s.Accounts
	}

	index := make(map[string]int)
	var accounts []Account
	for _, t := range s.Trades {
		i, ok := index[t.AccountID]
		if !ok {
			i = len(accounts)
			index[t.AccountID] = i
			accounts = append(accounts, Account{ID: t.AccountID})
		}
		accounts[i].Trades = append(accounts[i].Trades, t)
	}
	return accounts
}

// Float64Ptr returns a pointer to v
func Float64Ptr(v float64) *float64 {
	return &v
}

// IntPtr returns a pointer to v
func IntPtr(v int) *int {
	return &v
}

// BoolPtr returns a pointer to v
func BoolPtr(v bool) *bool {
	return &v
}

// StringPtr returns a pointer to v
func StringPtr(v string) *string {
	return &v
}

// TimePtr returns a pointer to v
func TimePtr(v time.Time) *time.Time {
	return &v
}
