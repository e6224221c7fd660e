package market_hours

import (
	"sort"
	"strings"
	"time"
)

// NYSE holiday rules (XNYS)
var usMarketRules = HolidayRuleSet{
	Code:       "XNYS",
	EasterType: Gregorian,
	FixedDateHolidays: []FixedDateHoliday{
		{Name: "New Year's Day", Month: 1, Day: 1, ObserveOnWeekday: true},
		{Name: "Juneteenth", Month: 6, Day: 19, ObserveOnWeekday: true},
		{Name: "Independence Day", Month: 7, Day: 4, ObserveOnWeekday: true},
		{Name: "Christmas Day", Month: 12, Day: 25, ObserveOnWeekday: true},
	},
	RuleBasedHolidays: []RuleBasedHoliday{
		{Name: "Martin Luther King Jr. Day", Month: 1, Weekday: time.Monday, N: 3},
		{Name: "Presidents Day", Month: 2, Weekday: time.Monday, N: 3},
		{Name: "Memorial Day", Month: 5, Weekday: time.Monday, N: -1},
		{Name: "Labor Day", Month: 9, Weekday: time.Monday, N: 1},
		{Name: "Thanksgiving Day", Month: 11, Weekday: time.Thursday, N: 4},
	},
	EasterBasedHolidays: []EasterBasedHoliday{
		{Name: "Good Friday", DaysOffset: -2},
	},
}

// noHolidayRules generates nothing; only stored holidays apply
var noHolidayRules = HolidayRuleSet{Code: "NONE"}

// RulesForMarket returns the holiday rules of a market code.
// Unknown codes fall back to an empty rule set.
func RulesForMarket(code string) HolidayRuleSet {
	switch strings.ToUpper(strings.TrimSpace(code)) {
	case "XNYS", "NYSE", "US", "XNAS", "NASDAQ":
		return usMarketRules
	default:
		return noHolidayRules
	}
}

// CalculateEaster calculates the date of Easter for a given year and calendar type
func CalculateEaster(year int, calendarType CalendarType) time.Time {
	if calendarType == Julian {
		return calculateJulianEaster(year)
	}
	return calculateGregorianEaster(year)
}

// calculateGregorianEaster uses the anonymous Gregorian computus
func calculateGregorianEaster(year int) time.Time {
	a := year % 19
	b := year / 100
	c := year % 100
	d := b / 4
	e := b % 4
	f := (b + 8) / 25
	g := (b - f + 1) / 3
	h := (19*a + b - d - g + 15) % 30
	i := c / 4
	k := c % 4
	l := (32 + 2*e + 2*i - h - k) % 7
	m := (a + 11*h + 22*l) / 451

	month := (h + l - 7*m + 114) / 31
	day := ((h + l - 7*m + 114) % 31) + 1

	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

// calculateJulianEaster uses the Meeus Julian computus and shifts the result
// onto the Gregorian calendar (13 days for 1900-2099)
func calculateJulianEaster(year int) time.Time {
	a := year % 4
	b := year % 7
	c := year % 19
	d := (19*c + 15) % 30
	e := (2*a + 4*b - d + 34) % 7

	month := (d + e + 114) / 31
	day := ((d + e + 114) % 31) + 1

	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC).AddDate(0, 0, 13)
}

// CalculateGoodFriday calculates Good Friday (Friday before Easter)
func CalculateGoodFriday(year int, calendarType CalendarType) time.Time {
	return CalculateEaster(year, calendarType).AddDate(0, 0, -2)
}

// findNthWeekday finds the nth occurrence of a weekday in a given month/year
func findNthWeekday(year, month int, weekday time.Weekday, n int) time.Time {
	date := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)

	daysToAdd := int(weekday - date.Weekday())
	if daysToAdd < 0 {
		daysToAdd += 7
	}
	return date.AddDate(0, 0, daysToAdd+(n-1)*7)
}

// findLastWeekday finds the last occurrence of a weekday in a given month/year
func findLastWeekday(year, month int, weekday time.Weekday) time.Time {
	// Day 0 of the next month is the last day of this one
	date := time.Date(year, time.Month(month+1), 0, 0, 0, 0, 0, time.UTC)

	daysToSubtract := int(date.Weekday() - weekday)
	if daysToSubtract < 0 {
		daysToSubtract += 7
	}
	return date.AddDate(0, 0, -daysToSubtract)
}

// observeOnWeekday moves a weekend date to the nearest weekday.
// Saturday -> Friday, Sunday -> Monday
func observeOnWeekday(date time.Time) time.Time {
	switch date.Weekday() {
	case time.Saturday:
		return date.AddDate(0, 0, -1)
	case time.Sunday:
		return date.AddDate(0, 0, 1)
	default:
		return date
	}
}

// HolidaysForYear expands a rule set into the dated holidays of one year, sorted by date
func HolidaysForYear(rules HolidayRuleSet, year int) []Holiday {
	holidays := make([]Holiday, 0,
		len(rules.FixedDateHolidays)+len(rules.RuleBasedHolidays)+len(rules.EasterBasedHolidays))

	for _, h := range rules.FixedDateHolidays {
		date := time.Date(year, time.Month(h.Month), h.Day, 0, 0, 0, 0, time.UTC)
		if h.ObserveOnWeekday {
			date = observeOnWeekday(date)
		}
		// NYSE does not close on Dec 31 for a Saturday New Year's Day
		if date.Year() != year {
			continue
		}
		holidays = append(holidays, Holiday{Date: date, Name: h.Name})
	}

	for _, h := range rules.RuleBasedHolidays {
		var date time.Time
		if h.N == -1 {
			date = findLastWeekday(year, h.Month, h.Weekday)
		} else {
			date = findNthWeekday(year, h.Month, h.Weekday, h.N)
		}
		holidays = append(holidays, Holiday{Date: date, Name: h.Name})
	}

	if len(rules.EasterBasedHolidays) > 0 {
		easter := CalculateEaster(year, rules.EasterType)
		for _, h := range rules.EasterBasedHolidays {
			holidays = append(holidays, Holiday{Date: easter.AddDate(0, 0, h.DaysOffset), Name: h.Name})
		}
	}

	sort.SliceStable(holidays, func(i, j int) bool {
		return holidays[i].Date.Before(holidays[j].Date)
	})
	return holidays
}

// CalculateUSHolidays calculates all US market holidays for a given year
func CalculateUSHolidays(year int) []time.Time {
	holidays := HolidaysForYear(usMarketRules, year)
	dates := make([]time.Time, len(holidays))
	for i, h := range holidays {
		dates[i] = h.Date
	}
	return dates
}
