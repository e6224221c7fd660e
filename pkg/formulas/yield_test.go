package formulas

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func f64(v float64) *float64 { return &v }
func intp(v int) *int        { return &v }

func TestMarketYieldPercent(t *testing.T) {
	tests := []struct {
		name         string
		distribution *float64
		perYear      *int
		lastPrice    float64
		expected     float64
		tolerance    float64
	}{
		{
			name:         "quarterly payer",
			distribution: f64(0.58),
			perYear:      intp(4),
			lastPrice:    245.50,
			expected:     0.945,
			tolerance:    0.001,
		},
		{
			name:         "monthly payer",
			distribution: f64(0.10),
			perYear:      intp(12),
			lastPrice:    20,
			expected:     6.0,
			tolerance:    1e-9,
		},
		{
			name:         "zero price",
			distribution: f64(0.58),
			perYear:      intp(4),
			lastPrice:    0,
			expected:     0,
		},
		{
			name:         "missing distribution",
			distribution: nil,
			perYear:      intp(4),
			lastPrice:    100,
			expected:     0,
		},
		{
			name:         "zero distribution",
			distribution: f64(0),
			perYear:      intp(4),
			lastPrice:    100,
			expected:     0,
		},
		{
			name:         "missing cadence",
			distribution: f64(1),
			perYear:      nil,
			lastPrice:    100,
			expected:     0,
		},
		{
			name:         "zero cadence",
			distribution: f64(1),
			perYear:      intp(0),
			lastPrice:    100,
			expected:     0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := MarketYieldPercent(tt.distribution, tt.perYear, tt.lastPrice)
			assert.False(t, math.IsNaN(result))
			assert.False(t, math.IsInf(result, 0))
			assert.InDelta(t, tt.expected, result, tt.tolerance)
		})
	}
}

func TestMarketYieldPercent_ScalesWithDistribution(t *testing.T) {
	base := MarketYieldPercent(f64(0.5), intp(4), 80)
	doubled := MarketYieldPercent(f64(1.0), intp(4), 80)

	assert.InDelta(t, 2*base, doubled, 1e-12)
}

func TestWeightedAveragePrice(t *testing.T) {
	tests := []struct {
		name       string
		prices     []float64
		quantities []float64
		expected   float64
	}{
		{
			name:       "two lots",
			prices:     []float64{220.00, 235.75},
			quantities: []float64{50, 30},
			expected:   225.90625,
		},
		{
			name:       "single lot",
			prices:     []float64{10},
			quantities: []float64{7},
			expected:   10,
		},
		{
			name:       "no trades",
			prices:     nil,
			quantities: nil,
			expected:   0,
		},
		{
			name:       "zero total quantity",
			prices:     []float64{10, 20},
			quantities: []float64{0, 0},
			expected:   0,
		},
		{
			name:       "mismatched lengths",
			prices:     []float64{10, 20},
			quantities: []float64{1},
			expected:   0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := WeightedAveragePrice(tt.prices, tt.quantities)
			assert.InDelta(t, tt.expected, result, 1e-9)
		})
	}
}

func TestPurchaseYieldPercent(t *testing.T) {
	distribution := f64(0.58)
	perYear := intp(4)

	avg := WeightedAveragePrice([]float64{220.00, 235.75}, []float64{50, 30})
	purchase := PurchaseYieldPercent(distribution, perYear, avg)
	market := MarketYieldPercent(distribution, perYear, 245.50)

	assert.InDelta(t, 225.906, avg, 0.001)
	assert.InDelta(t, 1.027, purchase, 0.001)
	assert.Greater(t, purchase, market, "bought below market, so purchase yield beats market yield")
}

func TestPurchaseYieldPercent_NoOpenTrades(t *testing.T) {
	avg := WeightedAveragePrice(nil, nil)

	assert.Equal(t, 0.0, avg)
	assert.Equal(t, 0.0, PurchaseYieldPercent(f64(0.58), intp(4), avg))
}

func TestAveragePrice(t *testing.T) {
	assert.InDelta(t, 225.90625, AveragePrice(18072.5, 80), 1e-9)
	assert.Equal(t, 0.0, AveragePrice(100, 0))
}
