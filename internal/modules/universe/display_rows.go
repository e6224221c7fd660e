package universe

import (
	"github.com/aristath/divdesk/internal/domain"
	"github.com/aristath/divdesk/internal/modules/portfolio"
	"github.com/aristath/divdesk/pkg/formulas"
)

// BuildDisplayRows turns securities into display rows, one per security in input order.
//
// The risk group name is empty when the group cannot be resolved. The market
// yield comes from the security alone; the purchase yield is left at 0 because
// it depends on the account scope and is filled in by ApplyAggregates.
func BuildDisplayRows(securities []domain.Security, riskGroups []domain.RiskGroup) []DisplayRow {
	names := make(map[string]string, len(riskGroups))
	for _, rg := range riskGroups {
		names[rg.ID] = rg.Name
	}

	rows := make([]DisplayRow, 0, len(securities))
	for _, sec := range securities {
		var riskGroup string
		if sec.RiskGroupID != nil {
			riskGroup = names[*sec.RiskGroupID]
		}

		rows = append(rows, DisplayRow{
			ExDate:                  sec.ExDate,
			Distribution:            sec.Distribution,
			DistributionsPerYear:    sec.DistributionsPerYear,
			Expired:                 sec.Expired,
			SecurityID:              sec.ID,
			Symbol:                  sec.Symbol,
			RiskGroup:               riskGroup,
			LastPrice:               sec.LastPrice,
			YieldPercent:            formulas.MarketYieldPercent(sec.Distribution, sec.DistributionsPerYear, sec.LastPrice),
			AvgPurchaseYieldPercent: 0,
			IsClosedEndFund:         sec.IsClosedEndFund,
		})
	}
	return rows
}

// WithAggregate returns a copy of row carrying the position, the most recent sell
// and the purchase yield of agg
func WithAggregate(row DisplayRow, agg portfolio.Aggregate) DisplayRow {
	row.Position = agg.Position
	row.MostRecentSellDate = agg.MostRecentSellDate
	row.MostRecentSellPrice = agg.MostRecentSellPrice
	row.AvgPurchaseYieldPercent = formulas.PurchaseYieldPercent(row.Distribution, row.DistributionsPerYear, agg.AveragePrice)
	return row
}

// ApplyAggregates returns new rows whose position data is aggregated from trades
// inside scope. The input rows are left untouched.
func ApplyAggregates(rows []DisplayRow, trades []domain.Trade, scope domain.AccountScope) []DisplayRow {
	bySecurity := make(map[string][]domain.Trade)
	for _, t := range trades {
		bySecurity[t.SecurityID] = append(bySecurity[t.SecurityID], t)
	}

	out := make([]DisplayRow, len(rows))
	for i, row := range rows {
		out[i] = WithAggregate(row, portfolio.AggregateTrades(bySecurity[row.SecurityID], row.SecurityID, scope))
	}
	return out
}
