package universe

import (
	"encoding/json"
	"time"
)

const isoDate = "2006-01-02"

// DisplayRow is one screener row: a security joined with its risk group name,
// market and purchase yields, and the position of the selected account scope.
// Rows are rebuilt on every pipeline run and never stored.
// Dates are converted to ISO strings in MarshalJSON.
type DisplayRow struct {
	ExDate                  *time.Time `json:"-"`
	MostRecentSellDate      *time.Time `json:"-"`
	Distribution            *float64   `json:"distribution,omitempty"`
	DistributionsPerYear    *int       `json:"distributions_per_year,omitempty"`
	MostRecentSellPrice     *float64   `json:"most_recent_sell_price,omitempty"`
	Expired                 *bool      `json:"expired,omitempty"`
	SecurityID              string     `json:"security_id"`
	Symbol                  string     `json:"symbol"`
	RiskGroup               string     `json:"risk_group"`
	LastPrice               float64    `json:"last_price"`
	YieldPercent            float64    `json:"yield_percent"`
	AvgPurchaseYieldPercent float64    `json:"avg_purchase_yield_percent"`
	Position                float64    `json:"position"`
	IsClosedEndFund         bool       `json:"is_closed_end_fund"`
}

// IsExpired treats a missing flag as not expired
func (r DisplayRow) IsExpired() bool {
	return r.Expired != nil && *r.Expired
}

// MarshalJSON customizes JSON serialization to render dates as YYYY-MM-DD
func (r DisplayRow) MarshalJSON() ([]byte, error) {
	type Alias DisplayRow
	aux := &struct {
		ExDate             string `json:"ex_date,omitempty"`
		MostRecentSellDate string `json:"most_recent_sell_date,omitempty"`
		*Alias
	}{
		Alias: (*Alias)(&r),
	}

	if r.ExDate != nil {
		aux.ExDate = r.ExDate.Format(isoDate)
	}
	if r.MostRecentSellDate != nil {
		aux.MostRecentSellDate = r.MostRecentSellDate.Format(isoDate)
	}

	return json.Marshal(aux)
}
