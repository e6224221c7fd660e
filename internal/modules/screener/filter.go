package screener

import (
	"strings"

	"github.com/aristath/divdesk/internal/domain"
	"github.com/aristath/divdesk/internal/modules/portfolio"
	"github.com/aristath/divdesk/internal/modules/universe"
)

// Filter runs the filter stages in their fixed order: symbol, minimum yield,
// risk group, account recomputation, expired-with-positions default, and the
// explicit expired filter. The input rows are never modified.
func Filter(rows []universe.DisplayRow, params Params, snapshot domain.Snapshot) []universe.DisplayRow {
	out := FilterSymbol(rows, params.SymbolFilter)
	out = FilterMinYield(out, params.MinYield)
	out = FilterRiskGroup(out, params.RiskGroupFilter)
	out = ApplyAccountScope(out, params.Scope(), snapshot)
	if params.ExpiredFilter == nil {
		out = FilterExpiredDefault(out, params.Scope(), snapshot)
	}
	return FilterExpired(out, params.ExpiredFilter)
}

// FilterSymbol keeps rows whose symbol contains filter, ignoring case.
// An empty or whitespace-only filter keeps everything; otherwise the filter is
// matched as typed, so surrounding spaces are significant.
func FilterSymbol(rows []universe.DisplayRow, filter string) []universe.DisplayRow {
	if strings.TrimSpace(filter) == "" {
		return keep(rows, nil)
	}
	needle := strings.ToLower(filter)
	return keep(rows, func(r universe.DisplayRow) bool {
		return strings.Contains(strings.ToLower(r.Symbol), needle)
	})
}

// FilterMinYield keeps rows with a nonzero market yield of at least min.
// A nil or non-positive minimum keeps everything.
func FilterMinYield(rows []universe.DisplayRow, min *float64) []universe.DisplayRow {
	if min == nil || *min <= 0 {
		return keep(rows, nil)
	}
	threshold := *min
	return keep(rows, func(r universe.DisplayRow) bool {
		return r.YieldPercent != 0 && r.YieldPercent >= threshold
	})
}

// FilterRiskGroup keeps rows whose risk group name equals filter exactly.
// Whitespace is significant, so "  " matches no row.
func FilterRiskGroup(rows []universe.DisplayRow, filter *string) []universe.DisplayRow {
	if filter == nil || *filter == "" {
		return keep(rows, nil)
	}
	name := *filter
	return keep(rows, func(r universe.DisplayRow) bool {
		return r.RiskGroup == name
	})
}

// ApplyAccountScope recomputes position, most recent sell and purchase yield for a
// single-account scope. Rows pass through unchanged for the all-accounts scope.
func ApplyAccountScope(rows []universe.DisplayRow, scope domain.AccountScope, snapshot domain.Snapshot) []universe.DisplayRow {
	if scope.IsAll() {
		return keep(rows, nil)
	}
	return universe.ApplyAggregates(rows, snapshot.AllTrades(), scope)
}

// FilterExpiredDefault hides expired rows nobody holds. Non-expired rows are kept.
// For a single account an expired row stays while its position is positive; for
// the all-accounts scope it stays while any account holds a nonzero open position.
func FilterExpiredDefault(rows []universe.DisplayRow, scope domain.AccountScope, snapshot domain.Snapshot) []universe.DisplayRow {
	if scope.IsAll() {
		accounts := snapshot.AccountsOrTrades()
		return keep(rows, func(r universe.DisplayRow) bool {
			return !r.IsExpired() || portfolio.HasOpenPositionInAnyAccount(accounts, r.SecurityID)
		})
	}
	return keep(rows, func(r universe.DisplayRow) bool {
		return !r.IsExpired() || r.Position > 0
	})
}

// FilterExpired keeps only expired rows (true) or only active rows (false).
// A nil filter keeps everything.
func FilterExpired(rows []universe.DisplayRow, expired *bool) []universe.DisplayRow {
	if expired == nil {
		return keep(rows, nil)
	}
	want := *expired
	return keep(rows, func(r universe.DisplayRow) bool {
		return r.IsExpired() == want
	})
}

// keep copies the rows matching pred into a new slice; a nil pred keeps all
func keep(rows []universe.DisplayRow, pred func(universe.DisplayRow) bool) []universe.DisplayRow {
	out := make([]universe.DisplayRow, 0, len(rows))
	for _, r := range rows {
		if pred == nil || pred(r) {
			out = append(out, r)
		}
	}
	return out
}
