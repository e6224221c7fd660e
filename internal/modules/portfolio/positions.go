package portfolio

import (
	"sort"
	"time"

	"github.com/aristath/divdesk/internal/domain"
	"github.com/aristath/divdesk/pkg/formulas"
)

// TradingCalendar counts trading days against the stored holiday snapshot
type TradingCalendar interface {
	TradingDaysBetween(start, end time.Time, stored []time.Time) int
}

// OpenPosition is one open lot with its aging and target-gain band
type OpenPosition struct {
	BuyDate               time.Time `json:"buy_date"`
	ProjectedExDate       time.Time `json:"projected_ex_date"`
	TradeID               string    `json:"trade_id"`
	AccountID             string    `json:"account_id"`
	SecurityID            string    `json:"security_id"`
	Symbol                string    `json:"symbol"`
	BuyPrice              float64   `json:"buy_price"`
	Quantity              float64   `json:"quantity"`
	Cost                  float64   `json:"cost"`
	LastPrice             float64   `json:"last_price"`
	UnrealizedGain        float64   `json:"unrealized_gain"`
	UnrealizedGainPercent float64   `json:"unrealized_gain_percent"`
	ExpectedYield         float64   `json:"expected_yield"`
	TargetGain            float64   `json:"target_gain"`
	TargetSellPrice       float64   `json:"target_sell_price"`
	DaysHeld              int       `json:"days_held"`
	TradingDaysToExDate   int       `json:"trading_days_to_ex_date"`
}

// ClosedPosition is one sold lot with its realized result
type ClosedPosition struct {
	BuyDate      time.Time `json:"buy_date"`
	SellDate     time.Time `json:"sell_date"`
	TradeID      string    `json:"trade_id"`
	AccountID    string    `json:"account_id"`
	SecurityID   string    `json:"security_id"`
	Symbol       string    `json:"symbol"`
	BuyPrice     float64   `json:"buy_price"`
	SellPrice    float64   `json:"sell_price"`
	Quantity     float64   `json:"quantity"`
	RealizedGain float64   `json:"realized_gain"`
	GainPercent  float64   `json:"gain_percent"`
	DaysHeld     int       `json:"days_held"`
}

// OpenPositions lists the open lots inside scope, ordered by buy date then trade ID.
//
// DaysHeld counts trading days from the buy date to today. TradingDaysToExDate
// counts trading days from the buy date to the projected ex-date and is 0 when the
// projection does not lie after the buy date; the target gain then drops to 0.
func OpenPositions(snapshot domain.Snapshot, scope domain.AccountScope, today time.Time, calendar TradingCalendar) []OpenPosition {
	positions := make([]OpenPosition, 0)

	for _, t := range snapshot.AllTrades() {
		if !t.IsOpen() || !scope.Matches(t.AccountID) {
			continue
		}

		security, _ := snapshot.SecurityByID(t.SecurityID)
		projected := formulas.ProjectedExDate(security.ExDate, security.DistributionsPerYear, today)

		daysHeld := calendar.TradingDaysBetween(t.BuyDate, today, snapshot.Holidays)
		toExDate := 0
		if projected.After(formulas.DateOnly(t.BuyDate)) {
			toExDate = calendar.TradingDaysBetween(t.BuyDate, projected, snapshot.Holidays)
		}
		targetGain := formulas.TargetGain(security.Distribution, t.Quantity, daysHeld, toExDate)

		positions = append(positions, OpenPosition{
			BuyDate:               t.BuyDate,
			ProjectedExDate:       projected,
			TradeID:               t.ID,
			AccountID:             t.AccountID,
			SecurityID:            t.SecurityID,
			Symbol:                security.Symbol,
			BuyPrice:              t.BuyPrice,
			Quantity:              t.Quantity,
			Cost:                  t.Cost(),
			LastPrice:             security.LastPrice,
			UnrealizedGain:        unrealizedGain(t, security),
			UnrealizedGainPercent: unrealizedGainPercent(t, security),
			ExpectedYield:         formulas.ExpectedYield(security.Distribution, t.Quantity),
			TargetGain:            targetGain,
			TargetSellPrice:       formulas.TargetSellPrice(targetGain, t.Quantity, t.BuyPrice),
			DaysHeld:              daysHeld,
			TradingDaysToExDate:   toExDate,
		})
	}

	sort.SliceStable(positions, func(i, j int) bool {
		if !positions[i].BuyDate.Equal(positions[j].BuyDate) {
			return positions[i].BuyDate.Before(positions[j].BuyDate)
		}
		return positions[i].TradeID < positions[j].TradeID
	})
	return positions
}

// ClosedPositions lists the sold lots inside scope, ordered by buy date then trade ID.
// DaysHeld counts trading days from buy to sell; a same-day round trip counts 1.
func ClosedPositions(snapshot domain.Snapshot, scope domain.AccountScope, calendar TradingCalendar) []ClosedPosition {
	positions := make([]ClosedPosition, 0)

	for _, t := range snapshot.AllTrades() {
		if t.IsOpen() || !scope.Matches(t.AccountID) {
			continue
		}

		security, _ := snapshot.SecurityByID(t.SecurityID)
		positions = append(positions, ClosedPosition{
			BuyDate:      t.BuyDate,
			SellDate:     *t.SellDate,
			TradeID:      t.ID,
			AccountID:    t.AccountID,
			SecurityID:   t.SecurityID,
			Symbol:       security.Symbol,
			BuyPrice:     t.BuyPrice,
			SellPrice:    t.SellPrice,
			Quantity:     t.Quantity,
			RealizedGain: formulas.RealizedGain(t.BuyPrice, t.SellPrice, t.Quantity),
			GainPercent:  formulas.GainPercent(t.BuyPrice, t.SellPrice),
			DaysHeld:     calendar.TradingDaysBetween(t.BuyDate, *t.SellDate, snapshot.Holidays),
		})
	}

	sort.SliceStable(positions, func(i, j int) bool {
		if !positions[i].BuyDate.Equal(positions[j].BuyDate) {
			return positions[i].BuyDate.Before(positions[j].BuyDate)
		}
		return positions[i].TradeID < positions[j].TradeID
	})
	return positions
}

// unrealizedGain is 0 while no market price is known
func unrealizedGain(t domain.Trade, security domain.Security) float64 {
	if security.LastPrice == 0 {
		return 0
	}
	return formulas.RealizedGain(t.BuyPrice, security.LastPrice, t.Quantity)
}

func unrealizedGainPercent(t domain.Trade, security domain.Security) float64 {
	if security.LastPrice == 0 {
		return 0
	}
	return formulas.GainPercent(t.BuyPrice, security.LastPrice)
}
