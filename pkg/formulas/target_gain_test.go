package formulas

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTargetGain(t *testing.T) {
	tests := []struct {
		name                string
		distribution        *float64
		quantity            float64
		daysHeld            int
		tradingDaysToExDate int
		expected            float64
	}{
		{
			name:                "factor below one caps at scaled yield",
			distribution:        f64(0.5),
			quantity:            100,
			daysHeld:            5,
			tradingDaysToExDate: 30,
			expected:            25, // 3*5/30 = 0.5 -> 0.5*0.5*100
		},
		{
			name:                "long holding caps at expected yield",
			distribution:        f64(0.5),
			quantity:            100,
			daysHeld:            60,
			tradingDaysToExDate: 10,
			expected:            50, // expected yield 0.5*100
		},
		{
			name:                "zero trading days to ex-date clamps factor",
			distribution:        f64(0.5),
			quantity:            100,
			daysHeld:            12,
			tradingDaysToExDate: 0,
			expected:            0,
		},
		{
			name:                "missing distribution",
			distribution:        nil,
			quantity:            100,
			daysHeld:            12,
			tradingDaysToExDate: 20,
			expected:            0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := TargetGain(tt.distribution, tt.quantity, tt.daysHeld, tt.tradingDaysToExDate)
			assert.False(t, math.IsNaN(result))
			assert.False(t, math.IsInf(result, 0))
			assert.InDelta(t, tt.expected, result, 1e-9)
		})
	}
}

func TestExpectedYield(t *testing.T) {
	assert.InDelta(t, 29.0, ExpectedYield(f64(0.58), 50), 1e-9)
	assert.Equal(t, 0.0, ExpectedYield(nil, 50))
}

func TestTargetGainFactor(t *testing.T) {
	assert.InDelta(t, 1.5, TargetGainFactor(10, 20), 1e-12)
	assert.Equal(t, 0.0, TargetGainFactor(10, 0))
}

func TestTargetSellPrice(t *testing.T) {
	assert.InDelta(t, 20.25, TargetSellPrice(25, 100, 20), 1e-9)
	assert.Equal(t, 20.0, TargetSellPrice(25, 0, 20))
}

func TestRealizedGainAndPercent(t *testing.T) {
	assert.InDelta(t, 150.0, RealizedGain(10, 13, 50), 1e-9)
	assert.InDelta(t, -50.0, RealizedGain(10, 9, 50), 1e-9)
	assert.InDelta(t, 30.0, GainPercent(10, 13), 1e-9)
	assert.Equal(t, 0.0, GainPercent(0, 13))
}
