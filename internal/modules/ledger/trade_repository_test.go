package ledger

import (
	"context"
	"database/sql"
	"testing"

	"github.com/aristath/divdesk/internal/domain"
	testingpkg "github.com/aristath/divdesk/internal/testing"
	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTradeRepo(t *testing.T) (*TradeRepository, *AccountRepository, func()) {
	t.Helper()
	db, cleanup := testingpkg.NewTestDB(t, "ledger")
	log := zerolog.New(nil).Level(zerolog.Disabled)
	trades := NewTradeRepository(db.Conn(), log)
	return trades, NewAccountRepository(db.Conn(), trades, log), cleanup
}

// TestCreate_ValidatesLot tests that Create() validates a lot before insertion
func TestCreate_ValidatesLot(t *testing.T) {
	log := zerolog.New(nil).Level(zerolog.Disabled)

	// In-memory SQLite database without foreign keys
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	defer db.Close()

	_, err = db.Exec(`
		CREATE TABLE trades (
			id TEXT PRIMARY KEY,
			account_id TEXT NOT NULL,
			security_id TEXT NOT NULL,
			buy_price REAL NOT NULL,
			quantity REAL NOT NULL,
			buy_date INTEGER NOT NULL,
			sell_price REAL NOT NULL DEFAULT 0,
			sell_date INTEGER,
			created_at INTEGER NOT NULL,
			updated_at INTEGER NOT NULL
		)
	`)
	if err != nil {
		t.Fatalf("Failed to create test table: %v", err)
	}

	repo := NewTradeRepository(db, log)

	valid := domain.Trade{
		AccountID:  "acc-1",
		SecurityID: "sec-1",
		BuyPrice:   100,
		Quantity:   5,
		BuyDate:    testingpkg.Date(2024, 1, 8),
	}

	testCases := []struct {
		name        string
		mutate      func(*domain.Trade)
		shouldError bool
	}{
		{name: "Valid lot", mutate: func(*domain.Trade) {}},
		{name: "Zero price is allowed", mutate: func(tr *domain.Trade) { tr.BuyPrice = 0 }},
		{name: "Negative price", mutate: func(tr *domain.Trade) { tr.BuyPrice = -1 }, shouldError: true},
		{name: "Zero quantity", mutate: func(tr *domain.Trade) { tr.Quantity = 0 }, shouldError: true},
		{name: "Missing account", mutate: func(tr *domain.Trade) { tr.AccountID = "" }, shouldError: true},
		{name: "Missing security", mutate: func(tr *domain.Trade) { tr.SecurityID = "" }, shouldError: true},
		{
			name: "Sell before buy",
			mutate: func(tr *domain.Trade) {
				tr.SellDate = domain.TimePtr(testingpkg.Date(2024, 1, 5))
			},
			shouldError: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			trade := valid
			tc.mutate(&trade)

			created, err := repo.Create(context.Background(), trade)
			if tc.shouldError {
				assert.Error(t, err)
				assert.Nil(t, created)
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, created.ID)
		})
	}
}

func TestTradeRepository_CreateAndRead(t *testing.T) {
	trades, accounts, cleanup := newTradeRepo(t)
	defer cleanup()
	ctx := context.Background()

	acc, err := accounts.Create(ctx, "Taxable")
	require.NoError(t, err)

	created, err := trades.Create(ctx, domain.Trade{
		AccountID:  acc.ID,
		SecurityID: "sec-vti",
		BuyPrice:   220,
		Quantity:   50,
		BuyDate:    testingpkg.Date(2024, 1, 8),
	})
	require.NoError(t, err)

	got, err := trades.GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, testingpkg.Date(2024, 1, 8), got.BuyDate)
	assert.True(t, got.IsOpen())
	assert.Equal(t, 11000.0, got.Cost())

	missing, err := trades.GetByID(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)

	open, err := trades.GetOpenBySecurity(ctx, "sec-vti")
	require.NoError(t, err)
	assert.Len(t, open, 1)
}

func TestTradeRepository_Sell(t *testing.T) {
	trades, accounts, cleanup := newTradeRepo(t)
	defer cleanup()
	ctx := context.Background()

	acc, err := accounts.Create(ctx, "IRA")
	require.NoError(t, err)
	created, err := trades.Create(ctx, domain.Trade{
		AccountID:  acc.ID,
		SecurityID: "sec-jepi",
		BuyPrice:   54,
		Quantity:   100,
		BuyDate:    testingpkg.Date(2024, 1, 16),
	})
	require.NoError(t, err)

	sold, err := trades.Sell(ctx, created.ID, 56, testingpkg.Date(2024, 3, 1))
	require.NoError(t, err)
	assert.False(t, sold.IsOpen())

	got, err := trades.GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, got.SellDate)
	assert.Equal(t, testingpkg.Date(2024, 3, 1), *got.SellDate)
	assert.Equal(t, 56.0, got.SellPrice)

	_, err = trades.Sell(ctx, created.ID, 57, testingpkg.Date(2024, 3, 2))
	assert.ErrorIs(t, err, ErrTradeClosed)

	_, err = trades.Sell(ctx, "missing", 57, testingpkg.Date(2024, 3, 2))
	assert.ErrorIs(t, err, ErrTradeNotFound)

	open, err := trades.GetOpenBySecurity(ctx, "sec-jepi")
	require.NoError(t, err)
	assert.Empty(t, open)
}

func TestTradeRepository_Correct(t *testing.T) {
	trades, accounts, cleanup := newTradeRepo(t)
	defer cleanup()
	ctx := context.Background()

	acc, err := accounts.Create(ctx, "Taxable")
	require.NoError(t, err)
	created, err := trades.Create(ctx, domain.Trade{
		AccountID:  acc.ID,
		SecurityID: "sec-vti",
		BuyPrice:   220,
		Quantity:   50,
		BuyDate:    testingpkg.Date(2024, 1, 8),
	})
	require.NoError(t, err)

	qty := 40.0
	corrected, err := trades.Correct(ctx, created.ID, TradeCorrection{
		Quantity: &qty,
		BuyDate:  domain.TimePtr(testingpkg.Date(2024, 1, 9)),
	})
	require.NoError(t, err)
	assert.Equal(t, 40.0, corrected.Quantity)
	assert.Equal(t, 220.0, corrected.BuyPrice)

	got, err := trades.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 40.0, got.Quantity)
	assert.Equal(t, testingpkg.Date(2024, 1, 9), got.BuyDate)

	bad := -3.0
	_, err = trades.Correct(ctx, created.ID, TradeCorrection{Quantity: &bad})
	assert.Error(t, err)

	_, err = trades.Correct(ctx, "missing", TradeCorrection{Quantity: &qty})
	assert.ErrorIs(t, err, ErrTradeNotFound)
}

func TestTradeRepository_Delete(t *testing.T) {
	trades, accounts, cleanup := newTradeRepo(t)
	defer cleanup()
	ctx := context.Background()

	acc, err := accounts.Create(ctx, "Taxable")
	require.NoError(t, err)
	created, err := trades.Create(ctx, domain.Trade{
		AccountID:  acc.ID,
		SecurityID: "sec-vti",
		BuyPrice:   220,
		Quantity:   1,
		BuyDate:    testingpkg.Date(2024, 1, 8),
	})
	require.NoError(t, err)

	require.NoError(t, trades.Delete(ctx, created.ID))
	assert.ErrorIs(t, trades.Delete(ctx, created.ID), ErrTradeNotFound)
}
