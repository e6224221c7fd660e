package screener

import (
	"sort"
	"time"

	"github.com/aristath/divdesk/internal/modules/universe"
	"github.com/aristath/divdesk/pkg/formulas"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Sort returns the rows ordered by criteria. Each criterion breaks ties left by
// the previous one; rows tied on every criterion keep their input order.
// today anchors the ex-date projection.
func Sort(rows []universe.DisplayRow, criteria []Criterion, today time.Time) []universe.DisplayRow {
	out := make([]universe.DisplayRow, len(rows))
	copy(out, rows)
	if len(criteria) == 0 {
		return out
	}

	// Collators are not safe for concurrent use; one per call.
	c := newComparator()

	sort.SliceStable(out, func(i, j int) bool {
		for _, crit := range criteria {
			cmp := c.compare(FieldValue(out[i], crit.Field, today), FieldValue(out[j], crit.Field, today))
			if cmp != 0 {
				return cmp*direction(crit.Order) < 0
			}
		}
		return false
	})
	return out
}

// FieldValue extracts the value a row is sorted by.
//
// ex_date yields the projected ex-date; most_recent_sell_date yields the epoch
// when unset; yield_percent, most_recent_sell_price and avg_purchase_yield_percent
// default to 0. Other fields are returned as stored, so an unset distribution is nil.
func FieldValue(row universe.DisplayRow, field string, today time.Time) interface{} {
	switch field {
	case FieldSymbol:
		return row.Symbol
	case FieldRiskGroup:
		return row.RiskGroup
	case FieldLastPrice:
		return row.LastPrice
	case FieldYieldPercent:
		return row.YieldPercent
	case FieldAvgPurchaseYieldPercent:
		return row.AvgPurchaseYieldPercent
	case FieldPosition:
		return row.Position
	case FieldDistribution:
		if row.Distribution == nil {
			return nil
		}
		return *row.Distribution
	case FieldDistributionsPerYear:
		if row.DistributionsPerYear == nil {
			return nil
		}
		return float64(*row.DistributionsPerYear)
	case FieldExDate:
		return formulas.ProjectedExDate(row.ExDate, row.DistributionsPerYear, today)
	case FieldMostRecentSellDate:
		if row.MostRecentSellDate == nil {
			return formulas.Epoch
		}
		return *row.MostRecentSellDate
	case FieldMostRecentSellPrice:
		if row.MostRecentSellPrice == nil {
			return 0.0
		}
		return *row.MostRecentSellPrice
	case FieldExpired:
		if row.Expired == nil {
			return nil
		}
		return *row.Expired
	case FieldIsClosedEndFund:
		return row.IsClosedEndFund
	default:
		return nil
	}
}

type comparator struct {
	collator *collate.Collator
}

func newComparator() *comparator {
	return &comparator{collator: collate.New(language.English)}
}

// compare orders dates by epoch milliseconds, numbers by difference and strings
// by English collation. Any other pairing, mixed types included, compares equal.
func (c *comparator) compare(a, b interface{}) int {
	switch av := a.(type) {
	case time.Time:
		if bv, ok := b.(time.Time); ok {
			return sign(float64(av.UnixMilli() - bv.UnixMilli()))
		}
	case float64:
		if bv, ok := b.(float64); ok {
			return sign(av - bv)
		}
	case string:
		if bv, ok := b.(string); ok {
			return c.collator.CompareString(av, bv)
		}
	}
	return 0
}

func sign(d float64) int {
	switch {
	case d < 0:
		return -1
	case d > 0:
		return 1
	default:
		return 0
	}
}

// direction maps an order to ±1; anything negative is descending
func direction(order int) int {
	if order < 0 {
		return -1
	}
	return 1
}
