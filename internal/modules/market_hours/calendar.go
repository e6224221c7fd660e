package market_hours

import (
	"strconv"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/rs/zerolog"
)

// Calendar answers trading-day questions for one market. It merges the holidays the
// store supplies with the ones generated from the market's rule set; generated years
// are cached because rule expansion is repeated for every position row.
type Calendar struct {
	rules HolidayRuleSet
	years *cache.Cache
	log   zerolog.Logger
}

// NewCalendar creates a calendar for the given market code (e.g. "XNYS")
func NewCalendar(market string, log zerolog.Logger) *Calendar {
	return &Calendar{
		rules: RulesForMarket(market),
		years: cache.New(cache.NoExpiration, 0),
		log:   log.With().Str("service", "calendar").Logger(),
	}
}

// Market returns the market code the calendar generates holidays for
func (c *Calendar) Market() string {
	return c.rules.Code
}

// HolidaysForYear returns the generated holidays of one year
func (c *Calendar) HolidaysForYear(year int) []Holiday {
	key := strconv.Itoa(year)
	if cached, ok := c.years.Get(key); ok {
		return cached.([]Holiday)
	}

	holidays := HolidaysForYear(c.rules, year)
	c.years.Set(key, holidays, cache.NoExpiration)

	c.log.Debug().
		Int("year", year).
		Int("holidays", len(holidays)).
		Str("market", c.rules.Code).
		Msg("Generated market holidays")

	return holidays
}

// HolidaySet returns the stored holidays plus the generated holidays of every
// year between start and end
func (c *Calendar) HolidaySet(stored []time.Time, start, end time.Time) HolidaySet {
	set := NewHolidaySet(stored...)
	if end.Before(start) {
		return set
	}

	for year := start.Year(); year <= end.Year(); year++ {
		for _, h := range c.HolidaysForYear(year) {
			set.Add(h.Date)
		}
	}
	return set
}

// TradingDaysBetween counts trading days from start to end inclusive, excluding the
// stored holidays and the market's generated holidays
func (c *Calendar) TradingDaysBetween(start, end time.Time, stored []time.Time) int {
	return TradingDaysBetween(start, end, c.HolidaySet(stored, start, end))
}

// HolidaysForRange returns the generated holidays that fall between start and end inclusive
func (c *Calendar) HolidaysForRange(start, end time.Time) []Holiday {
	holidays := make([]Holiday, 0)
	if end.Before(start) {
		return holidays
	}

	first := dateKey(start)
	last := dateKey(end)
	for year := start.Year(); year <= end.Year(); year++ {
		for _, h := range c.HolidaysForYear(year) {
			key := dateKey(h.Date)
			if key >= first && key <= last {
				holidays = append(holidays, h)
			}
		}
	}
	return holidays
}
