package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAccountScope_Matches(t *testing.T) {
	tests := []struct {
		name      string
		scope     AccountScope
		accountID string
		expected  bool
	}{
		{"all matches any account", AllAccounts, "acc-1", true},
		{"all matches empty account", AllAccounts, "", true},
		{"specific account matches itself", AccountScope("acc-1"), "acc-1", true},
		{"specific account rejects others", AccountScope("acc-1"), "acc-2", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.scope.Matches(tt.accountID))
		})
	}
}

func TestTrade_IsOpen(t *testing.T) {
	sold := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	open := Trade{BuyPrice: 10, Quantity: 5}
	closed := Trade{BuyPrice: 10, Quantity: 5, SellPrice: 12, SellDate: &sold}

	assert.True(t, open.IsOpen())
	assert.False(t, closed.IsOpen())
	assert.Equal(t, 50.0, open.Cost())
}

func TestSecurity_IsExpired(t *testing.T) {
	assert.False(t, Security{}.IsExpired(), "missing flag is not expired")
	assert.False(t, Security{Expired: BoolPtr(false)}.IsExpired())
	assert.True(t, Security{Expired: BoolPtr(true)}.IsExpired())
}

func TestSnapshot_AccountsOrTrades(t *testing.T) {
	t.Run("uses supplied accounts", func(t *testing.T) {
		snap := Snapshot{
			Accounts: []Account{{ID: "a"}},
			Trades:   []Trade{{ID: "t1", AccountID: "b"}},
		}
		accounts := snap.AccountsOrTrades()
		assert.Len(t, accounts, 1)
		assert.Equal(t, "a", accounts[0].ID)
	})

	t.Run("groups flat trades by account in first-seen order", func(t *testing.T) {
		snap := Snapshot{
			Trades: []Trade{
				{ID: "t1", AccountID: "b"},
				{ID: "t2", AccountID: "a"},
				{ID: "t3", AccountID: "b"},
			},
		}
		accounts := snap.AccountsOrTrades()
		assert.Len(t, accounts, 2)
		assert.Equal(t, "b", accounts[0].ID)
		assert.Len(t, accounts[0].Trades, 2)
		assert.Equal(t, "a", accounts[1].ID)
	})
}

func TestSnapshot_SecurityByID(t *testing.T) {
	snap := Snapshot{Securities: []Security{{ID: "s1", Symbol: "VTI"}}}

	sec, ok := snap.SecurityByID("s1")
	assert.True(t, ok)
	assert.Equal(t, "VTI", sec.Symbol)

	_, ok = snap.SecurityByID("missing")
	assert.False(t, ok)
}

func TestSnapshot_AllTrades(t *testing.T) {
	t.Run("flat trades win", func(t *testing.T) {
		snap := Snapshot{
			Trades:   []Trade{{ID: "t1", AccountID: "a"}},
			Accounts: []Account{{ID: "b", Trades: []Trade{{ID: "t2"}}}},
		}
		assert.Equal(t, []Trade{{ID: "t1", AccountID: "a"}}, snap.AllTrades())
	})

	t.Run("flattens accounts and fills account ID", func(t *testing.T) {
		snap := Snapshot{Accounts: []Account{
			{ID: "a", Trades: []Trade{{ID: "t1"}}},
			{ID: "b", Trades: []Trade{{ID: "t2", AccountID: "b"}, {ID: "t3"}}},
		}}

		trades := snap.AllTrades()
		assert.Len(t, trades, 3)
		assert.Equal(t, "a", trades[0].AccountID)
		assert.Equal(t, "b", trades[2].AccountID)
		// The snapshot itself is untouched
		assert.Empty(t, snap.Accounts[0].Trades[0].AccountID)
	})

	t.Run("empty snapshot", func(t *testing.T) {
		assert.Empty(t, Snapshot{}.AllTrades())
	})
}
