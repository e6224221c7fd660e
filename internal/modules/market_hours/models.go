// Package market_hours provides trading-day arithmetic against exchange holiday calendars.
package market_hours

import "time"

// CalendarType represents the calendar system used for Easter calculation
type CalendarType int

const (
	// Gregorian calendar (Western/Catholic)
	Gregorian CalendarType = iota
	// Julian calendar (Orthodox)
	Julian
)

// FixedDateHoliday represents a holiday on a fixed date
type FixedDateHoliday struct {
	Name  string
	Month int // 1-12
	Day   int // 1-31
	// If true, observe on nearest weekday if falls on weekend
	ObserveOnWeekday bool
}

// RuleBasedHoliday represents a holiday calculated by rule
type RuleBasedHoliday struct {
	Name    string
	Month   int          // 1-12
	Weekday time.Weekday // Monday, Tuesday, etc.
	N       int          // Nth occurrence (1 = first, -1 = last)
}

// EasterBasedHoliday represents a holiday relative to Easter
type EasterBasedHoliday struct {
	Name       string
	DaysOffset int // Days from Easter (negative = before, positive = after)
}

// HolidayRuleSet defines the recurring holidays of an exchange
type HolidayRuleSet struct {
	Code                string
	EasterType          CalendarType
	FixedDateHolidays   []FixedDateHoliday
	RuleBasedHolidays   []RuleBasedHoliday
	EasterBasedHolidays []EasterBasedHoliday
}

// Holiday is a dated exchange closure
type Holiday struct {
	Date time.Time `json:"date"`
	Name string    `json:"name"`
}
