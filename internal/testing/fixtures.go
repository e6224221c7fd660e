package testing

import (
	"fmt"
	"time"

	"github.com/aristath/divdesk/internal/domain"
)

// Date returns midnight UTC of the given day
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// NewRiskGroupFixtures returns the risk groups referenced by NewSecurityFixtures
func NewRiskGroupFixtures() []domain.RiskGroup {
	return []domain.RiskGroup{
		{ID: "rg-core", Name: "Core"},
		{ID: "rg-income", Name: "Income"},
		{ID: "rg-spec", Name: "Speculative"},
	}
}

// NewSecurityFixtures returns a set of test securities for use in tests.
//   - VTI: quarterly payer, core
//   - VXUS: quarterly payer, core
//   - JEPI: monthly payer, income
//   - OLDF: expired closed-end fund, income
//   - ZERO: no distribution, speculative, expired flag unset
func NewSecurityFixtures() []domain.Security {
	return []domain.Security{
		{
			ID:                   "sec-vti",
			Symbol:               "VTI",
			Distribution:         domain.Float64Ptr(0.58),
			DistributionsPerYear: domain.IntPtr(4),
			LastPrice:            245.50,
			ExDate:               domain.TimePtr(Date(2024, 3, 21)),
			Expired:              domain.BoolPtr(false),
			RiskGroupID:          domain.StringPtr("rg-core"),
		},
		{
			ID:                   "sec-vxus",
			Symbol:               "VXUS",
			Distribution:         domain.Float64Ptr(0.42),
			DistributionsPerYear: domain.IntPtr(4),
			LastPrice:            58.10,
			ExDate:               domain.TimePtr(Date(2024, 3, 18)),
			Expired:              domain.BoolPtr(false),
			RiskGroupID:          domain.StringPtr("rg-core"),
		},
		{
			ID:                   "sec-jepi",
			Symbol:               "JEPI",
			Distribution:         domain.Float64Ptr(0.35),
			DistributionsPerYear: domain.IntPtr(12),
			LastPrice:            56.20,
			ExDate:               domain.TimePtr(Date(2024, 4, 1)),
			Expired:              domain.BoolPtr(false),
			RiskGroupID:          domain.StringPtr("rg-income"),
		},
		{
			ID:                   "sec-oldf",
			Symbol:               "OLDF",
			Distribution:         domain.Float64Ptr(0.10),
			DistributionsPerYear: domain.IntPtr(12),
			LastPrice:            9.80,
			Expired:              domain.BoolPtr(true),
			RiskGroupID:          domain.StringPtr("rg-income"),
			IsClosedEndFund:      true,
		},
		{
			ID:          "sec-zero",
			Symbol:      "ZERO",
			LastPrice:   12.00,
			RiskGroupID: domain.StringPtr("rg-spec"),
		},
	}
}

// NewAccountFixtures returns two accounts for use in tests
func NewAccountFixtures() []domain.Account {
	return []domain.Account{
		{ID: "acc-taxable", Name: "Taxable"},
		{ID: "acc-ira", Name: "IRA"},
	}
}

// NewTradeFixtures returns a set of test trades spread over both fixture accounts.
// The taxable account holds VTI (two open lots) and a closed JEPI lot; the IRA holds
// OLDF (open) and a closed VTI lot.
func NewTradeFixtures() []domain.Trade {
	return []domain.Trade{
		{
			ID:         "t-1",
			AccountID:  "acc-taxable",
			SecurityID: "sec-vti",
			BuyPrice:   220.00,
			Quantity:   50,
			BuyDate:    Date(2024, 1, 8),
		},
		{
			ID:         "t-2",
			AccountID:  "acc-taxable",
			SecurityID: "sec-vti",
			BuyPrice:   235.75,
			Quantity:   30,
			BuyDate:    Date(2024, 2, 12),
		},
		{
			ID:         "t-3",
			AccountID:  "acc-taxable",
			SecurityID: "sec-jepi",
			BuyPrice:   54.00,
			Quantity:   100,
			BuyDate:    Date(2024, 1, 16),
			SellPrice:  56.00,
			SellDate:   domain.TimePtr(Date(2024, 3, 1)),
		},
		{
			ID:         "t-4",
			AccountID:  "acc-ira",
			SecurityID: "sec-oldf",
			BuyPrice:   10.00,
			Quantity:   200,
			BuyDate:    Date(2023, 11, 1),
		},
		{
			ID:         "t-5",
			AccountID:  "acc-ira",
			SecurityID: "sec-vti",
			BuyPrice:   210.00,
			Quantity:   10,
			BuyDate:    Date(2023, 10, 2),
			SellPrice:  230.00,
			SellDate:   domain.TimePtr(Date(2024, 2, 20)),
		},
	}
}

// NewSnapshotFixture bundles all fixtures into a snapshot with accounts carrying their trades
func NewSnapshotFixture() domain.Snapshot {
	trades := NewTradeFixtures()
	accounts := NewAccountFixtures()
	for i := range accounts {
		for _, t := range trades {
			if t.AccountID == accounts[i].ID {
				accounts[i].Trades = append(accounts[i].Trades, t)
			}
		}
	}

	return domain.Snapshot{
		Trades:     trades,
		Securities: NewSecurityFixtures(),
		RiskGroups: NewRiskGroupFixtures(),
		Accounts:   accounts,
		Holidays:   []time.Time{Date(2024, 1, 15), Date(2024, 2, 19)},
	}
}

// NewLargeSnapshotFixture builds a snapshot with n quarterly-paying securities spread
// over three risk groups, one open lot per security in alternating accounts, and
// every tenth security expired
func NewLargeSnapshotFixture(n int) domain.Snapshot {
	riskGroups := NewRiskGroupFixtures()
	accounts := NewAccountFixtures()

	securities := make([]domain.Security, 0, n)
	trades := make([]domain.Trade, 0, n)
	for i := 0; i < n; i++ {
		id := fmt.Sprintf("sec-%04d", i)
		securities = append(securities, domain.Security{
			ID:                   id,
			Symbol:               fmt.Sprintf("S%04d", n-i),
			Distribution:         domain.Float64Ptr(0.1 + float64(i%50)/100),
			DistributionsPerYear: domain.IntPtr(4),
			LastPrice:            10 + float64(i%200),
			ExDate:               domain.TimePtr(Date(2023, 1, 1).AddDate(0, 0, i%400)),
			Expired:              domain.BoolPtr(i%10 == 0),
			RiskGroupID:          domain.StringPtr(riskGroups[i%len(riskGroups)].ID),
		})

		if i%3 == 0 {
			continue
		}
		account := &accounts[i%len(accounts)]
		trade := domain.Trade{
			ID:         fmt.Sprintf("t-%04d", i),
			AccountID:  account.ID,
			SecurityID: id,
			BuyPrice:   10 + float64(i%150),
			Quantity:   float64(1 + i%20),
			BuyDate:    Date(2023, 6, 1).AddDate(0, 0, i%200),
		}
		trades = append(trades, trade)
		account.Trades = append(account.Trades, trade)
	}

	return domain.Snapshot{
		Trades:     trades,
		Securities: securities,
		RiskGroups: riskGroups,
		Accounts:   accounts,
	}
}
