package formulas

import "math"

// targetGainMultiplier scales the holding-period ratio in TargetGain
const targetGainMultiplier = 3.0

// ExpectedYield is the cash one distribution pays on the lot: quantity * distribution.
// A missing distribution yields 0.
func ExpectedYield(distribution *float64, quantity float64) float64 {
	if distribution == nil {
		return 0
	}
	return quantity * *distribution
}

// TargetGainFactor is 3 * daysHeld / tradingDaysToExDate.
// A zero denominator clamps the factor to 0.
func TargetGainFactor(daysHeld, tradingDaysToExDate int) float64 {
	if tradingDaysToExDate == 0 {
		return 0
	}
	return targetGainMultiplier * float64(daysHeld) / float64(tradingDaysToExDate)
}

// TargetGain is the gain at which selling an open lot beats waiting for the next
// distribution.
//
// Formula: min(expectedYield, factor * distribution * quantity), where
// factor = 3 * daysHeld / tradingDaysToExDate.
//
// Returns 0 when the distribution is missing.
func TargetGain(distribution *float64, quantity float64, daysHeld, tradingDaysToExDate int) float64 {
	if distribution == nil {
		return 0
	}

	expected := ExpectedYield(distribution, quantity)
	factor := TargetGainFactor(daysHeld, tradingDaysToExDate)
	return math.Min(expected, factor * *distribution * quantity)
}

// TargetSellPrice converts a target gain into a per-share sell price:
// targetGain / quantity + buyPrice. A zero quantity returns buyPrice.
func TargetSellPrice(targetGain, quantity, buyPrice float64) float64 {
	if quantity == 0 {
		return buyPrice
	}
	return targetGain/quantity + buyPrice
}

// RealizedGain is (sellPrice - buyPrice) * quantity for a closed lot
func RealizedGain(buyPrice, sellPrice, quantity float64) float64 {
	return (sellPrice - buyPrice) * quantity
}

// GainPercent is the percentage move from buyPrice to price, 0 when buyPrice is 0
func GainPercent(buyPrice, price float64) float64 {
	if buyPrice == 0 {
		return 0
	}
	return (price - buyPrice) / buyPrice * 100
}
