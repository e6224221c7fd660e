package market_hours

import (
	"sort"
	"time"

	"github.com/aristath/divdesk/pkg/formulas"
)

// HolidaySet is a set of calendar dates excluded from trading-day counts.
// Membership compares calendar dates only; time of day is ignored.
type HolidaySet map[string]struct{}

const dateKeyFormat = "2006-01-02"

func dateKey(t time.Time) string {
	return formulas.DateOnly(t).Format(dateKeyFormat)
}

// NewHolidaySet builds a set from the given dates
func NewHolidaySet(dates ...time.Time) HolidaySet {
	set := make(HolidaySet, len(dates))
	for _, d := range dates {
		set.Add(d)
	}
	return set
}

// Add inserts a date into the set
func (s HolidaySet) Add(dates ...time.Time) {
	for _, d := range dates {
		s[dateKey(d)] = struct{}{}
	}
}

// Contains reports whether the calendar date of t is a holiday
func (s HolidaySet) Contains(t time.Time) bool {
	if s == nil {
		return false
	}
	_, ok := s[dateKey(t)]
	return ok
}

// Len returns the number of distinct holiday dates
func (s HolidaySet) Len() int {
	return len(s)
}

// Dates returns the holidays in ascending order, at midnight UTC
func (s HolidaySet) Dates() []time.Time {
	dates := make([]time.Time, 0, len(s))
	for key := range s {
		d, err := time.Parse(dateKeyFormat, key)
		if err != nil {
			continue
		}
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates
}

// IsTradingDay reports whether t falls on a weekday that is not a holiday
func IsTradingDay(t time.Time, holidays HolidaySet) bool {
	switch t.Weekday() {
	case time.Saturday, time.Sunday:
		return false
	}
	return !holidays.Contains(t)
}

// TradingDaysBetween counts the trading days from start to end, both inclusive.
//
// Every calendar day in the range is visited; weekends and holidays are skipped.
// A start after end yields 0, and start == end on a trading day yields 1 (a same-day
// buy and sell still held the lot for one trading day).
func TradingDaysBetween(start, end time.Time, holidays HolidaySet) int {
	day := formulas.DateOnly(start)
	last := formulas.DateOnly(end)

	count := 0
	for !day.After(last) {
		if IsTradingDay(day, holidays) {
			count++
		}
		day = day.AddDate(0, 0, 1)
	}
	return count
}
