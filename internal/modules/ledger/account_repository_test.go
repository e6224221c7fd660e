package ledger

import (
	"context"
	"testing"

	"github.com/aristath/divdesk/internal/domain"
	testingpkg "github.com/aristath/divdesk/internal/testing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccountRepository_Create(t *testing.T) {
	_, accounts, cleanup := newTradeRepo(t)
	defer cleanup()
	ctx := context.Background()

	acc, err := accounts.Create(ctx, "  Taxable ")
	require.NoError(t, err)
	assert.Equal(t, "Taxable", acc.Name)
	assert.NotEmpty(t, acc.ID)

	_, err = accounts.Create(ctx, " ")
	assert.Error(t, err)

	_, err = accounts.Create(ctx, "all")
	assert.Error(t, err, "the all-accounts scope name is reserved")

	got, err := accounts.GetByID(ctx, acc.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Taxable", got.Name)

	missing, err := accounts.GetByID(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestAccountRepository_GetWithTrades(t *testing.T) {
	trades, accounts, cleanup := newTradeRepo(t)
	defer cleanup()
	ctx := context.Background()

	taxable, err := accounts.Create(ctx, "Taxable")
	require.NoError(t, err)
	ira, err := accounts.Create(ctx, "IRA")
	require.NoError(t, err)

	for _, tr := range []domain.Trade{
		{AccountID: taxable.ID, SecurityID: "sec-vti", BuyPrice: 220, Quantity: 50, BuyDate: testingpkg.Date(2024, 1, 8)},
		{AccountID: taxable.ID, SecurityID: "sec-vti", BuyPrice: 235.75, Quantity: 30, BuyDate: testingpkg.Date(2024, 2, 12)},
		{AccountID: ira.ID, SecurityID: "sec-oldf", BuyPrice: 10, Quantity: 200, BuyDate: testingpkg.Date(2023, 11, 1)},
	} {
		_, err := trades.Create(ctx, tr)
		require.NoError(t, err)
	}

	result, err := accounts.GetWithTrades(ctx)
	require.NoError(t, err)
	require.Len(t, result, 2)

	// Ordered by name: IRA before Taxable
	assert.Equal(t, "IRA", result[0].Name)
	assert.Len(t, result[0].Trades, 1)
	assert.Equal(t, "Taxable", result[1].Name)
	require.Len(t, result[1].Trades, 2)
	assert.True(t, result[1].Trades[0].BuyDate.Before(result[1].Trades[1].BuyDate))
}

func TestAccountRepository_DeleteCascadesTrades(t *testing.T) {
	trades, accounts, cleanup := newTradeRepo(t)
	defer cleanup()
	ctx := context.Background()

	acc, err := accounts.Create(ctx, "Taxable")
	require.NoError(t, err)
	_, err = trades.Create(ctx, domain.Trade{
		AccountID: acc.ID, SecurityID: "sec-vti", BuyPrice: 220, Quantity: 1, BuyDate: testingpkg.Date(2024, 1, 8),
	})
	require.NoError(t, err)

	require.NoError(t, accounts.Delete(ctx, acc.ID))

	all, err := trades.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}
