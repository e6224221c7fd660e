package market_hours

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestTradingDaysBetween(t *testing.T) {
	holidays := NewHolidaySet(day(2024, 1, 15))

	tests := []struct {
		name     string
		start    time.Time
		end      time.Time
		holidays HolidaySet
		expected int
	}{
		{"full week", day(2024, 1, 8), day(2024, 1, 12), nil, 5},
		{"week with holiday", day(2024, 1, 15), day(2024, 1, 19), holidays, 4},
		{"weekend only", day(2024, 1, 13), day(2024, 1, 14), nil, 0},
		{"same trading day", day(2024, 1, 10), day(2024, 1, 10), nil, 1},
		{"same day on holiday", day(2024, 1, 15), day(2024, 1, 15), holidays, 0},
		{"start after end", day(2024, 1, 10), day(2024, 1, 9), nil, 0},
		{"across weekend", day(2024, 1, 12), day(2024, 1, 16), holidays, 2},
		{"two full weeks", day(2024, 1, 1), day(2024, 1, 14), nil, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, TradingDaysBetween(tt.start, tt.end, tt.holidays))
		})
	}
}

func TestTradingDaysBetween_SingleDayProperty(t *testing.T) {
	// Every weekday of a month counts once on its own and zero against the day before
	for d := day(2024, 3, 1); d.Month() == time.March; d = d.AddDate(0, 0, 1) {
		if d.Weekday() == time.Saturday || d.Weekday() == time.Sunday {
			continue
		}
		assert.Equal(t, 1, TradingDaysBetween(d, d, nil), d.Format(dateKeyFormat))
		assert.Equal(t, 0, TradingDaysBetween(d, d.AddDate(0, 0, -1), nil), d.Format(dateKeyFormat))
	}
}

func TestTradingDaysBetween_IgnoresTimeOfDay(t *testing.T) {
	start := time.Date(2024, 1, 8, 23, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 9, 1, 0, 0, 0, time.UTC)

	assert.Equal(t, 2, TradingDaysBetween(start, end, nil))
}

func TestHolidaySet(t *testing.T) {
	set := NewHolidaySet(time.Date(2024, 1, 15, 15, 30, 0, 0, time.UTC), day(2024, 1, 1))
	set.Add(day(2024, 1, 1))

	assert.Equal(t, 2, set.Len())
	assert.True(t, set.Contains(day(2024, 1, 15)))
	assert.True(t, set.Contains(time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)))
	assert.False(t, set.Contains(day(2024, 1, 2)))
	assert.Equal(t, []time.Time{day(2024, 1, 1), day(2024, 1, 15)}, set.Dates())

	var empty HolidaySet
	assert.False(t, empty.Contains(day(2024, 1, 1)))
}

func TestIsTradingDay(t *testing.T) {
	holidays := NewHolidaySet(day(2024, 7, 4))

	assert.True(t, IsTradingDay(day(2024, 7, 3), holidays))
	assert.False(t, IsTradingDay(day(2024, 7, 4), holidays))
	assert.False(t, IsTradingDay(day(2024, 7, 6), holidays))
	assert.False(t, IsTradingDay(day(2024, 7, 7), nil))
}
