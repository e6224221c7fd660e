package formulas

import "time"

// Distribution cadences with a well-defined projection step
const (
	MonthlyDistributions   = 12
	QuarterlyDistributions = 4
)

// Epoch is the zero date used for missing dates so they sort first
var Epoch = time.Unix(0, 0).UTC()

// DateOnly normalizes t to midnight UTC of its own calendar date
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ProjectedExDate rolls a stale ex-dividend date forward by its payment cadence.
//
// A missing date returns Epoch. A date after today is returned unchanged
// (normalized to midnight). A date on or before today is advanced by one month
// (monthly payers) or three months (quarterly payers) until it lies after today.
// Any other cadence returns the stale date as-is.
//
// The projection is for ordering only and is never written back to the security.
func ProjectedExDate(exDate *time.Time, distributionsPerYear *int, today time.Time) time.Time {
	if exDate == nil || exDate.IsZero() {
		return Epoch
	}

	projected := DateOnly(*exDate)
	now := DateOnly(today)

	if projected.After(now) {
		return projected
	}

	perYear := 0
	if distributionsPerYear != nil {
		perYear = *distributionsPerYear
	}

	var stepMonths int
	switch perYear {
	case MonthlyDistributions:
		stepMonths = 1
	case QuarterlyDistributions:
		stepMonths = 3
	default:
		return projected
	}

	for !projected.After(now) {
		projected = projected.AddDate(0, stepMonths, 0)
	}
	return projected
}
