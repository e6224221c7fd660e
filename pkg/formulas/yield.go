// Package formulas holds the pure yield and position math used by the analytics engine.
// Every function is total: zero denominators and missing inputs resolve to 0.
package formulas

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// annualYieldPercent is the shared yield formula:
// 100 * distributionsPerYear * (distribution / price)
func annualYieldPercent(distribution *float64, distributionsPerYear *int, price float64) float64 {
	if distribution == nil || *distribution == 0 {
		return 0
	}
	if distributionsPerYear == nil || *distributionsPerYear == 0 {
		return 0
	}
	if price == 0 {
		return 0
	}

	result := 100 * float64(*distributionsPerYear) * (*distribution / price)
	if math.IsNaN(result) || math.IsInf(result, 0) {
		return 0
	}
	return result
}

// MarketYieldPercent calculates the distribution yield at the current market price.
//
// Formula: 100 * distributionsPerYear * (distribution / lastPrice)
//
// Returns 0 when the price is 0 or the distribution or cadence is missing/zero.
func MarketYieldPercent(distribution *float64, distributionsPerYear *int, lastPrice float64) float64 {
	return annualYieldPercent(distribution, distributionsPerYear, lastPrice)
}

// PurchaseYieldPercent calculates the distribution yield on the investor's
// weighted-average purchase price. Returns 0 when there is no purchase price
// (no open trades).
func PurchaseYieldPercent(distribution *float64, distributionsPerYear *int, weightedAveragePrice float64) float64 {
	return annualYieldPercent(distribution, distributionsPerYear, weightedAveragePrice)
}

// WeightedAveragePrice returns sum(price*quantity) / sum(quantity).
// prices and quantities are parallel slices; mismatched or empty input and a zero
// total quantity all return 0.
func WeightedAveragePrice(prices, quantities []float64) float64 {
	if len(prices) == 0 || len(prices) != len(quantities) {
		return 0
	}

	var totalQuantity float64
	for _, q := range quantities {
		totalQuantity += q
	}
	if totalQuantity == 0 {
		return 0
	}

	avg := stat.Mean(prices, quantities)
	if math.IsNaN(avg) || math.IsInf(avg, 0) {
		return 0
	}
	return avg
}

// AveragePrice divides a cost basis by its quantity, 0 when quantity is 0
func AveragePrice(totalCost, totalQuantity float64) float64 {
	if totalQuantity == 0 {
		return 0
	}
	return totalCost / totalQuantity
}
