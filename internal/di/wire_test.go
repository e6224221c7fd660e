package di

import (
	"context"
	"testing"

	"github.com/aristath/divdesk/internal/config"
	"github.com/aristath/divdesk/internal/domain"
	"github.com/aristath/divdesk/internal/modules/screener"
	"github.com/aristath/divdesk/internal/modules/settings"
	testingpkg "github.com/aristath/divdesk/internal/testing"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestConfig(t *testing.T) *config.Config {
	return &config.Config{
		DataDir:             t.TempDir(),
		HolidaySyncSchedule: "0 3 * * *",
		HolidayMarket:       "XNYS",
	}
}

func TestWire(t *testing.T) {
	container, jobs, err := Wire(newTestConfig(t), zerolog.Nop())
	require.NoError(t, err)
	require.NotNil(t, container)
	require.NotNil(t, jobs)
	defer container.Close()

	assert.NotNil(t, container.Snapshots)
	assert.NotNil(t, container.PortfolioService)
	assert.NotNil(t, container.ScreenerService)
	assert.NotNil(t, container.Preferences)
	assert.NotNil(t, container.SettingsService)
	assert.Equal(t, "XNYS", container.Calendar.Market())

	assert.NotNil(t, jobs.HolidaySync)
	assert.NotNil(t, jobs.DatabaseMaintenance)
	assert.Equal(t, 2, container.Scheduler.Entries())
}

func TestWire_InvalidSchedule(t *testing.T) {
	cfg := newTestConfig(t)
	cfg.HolidaySyncSchedule = "not a cron spec"

	container, jobs, err := Wire(cfg, zerolog.Nop())
	assert.Error(t, err)
	assert.Nil(t, container)
	assert.Nil(t, jobs)
}

func TestWire_EndToEndScreenerRun(t *testing.T) {
	container, jobs, err := Wire(newTestConfig(t), zerolog.Nop())
	require.NoError(t, err)
	defer container.Close()
	ctx := context.Background()

	require.NoError(t, jobs.HolidaySync.Run())

	acc, err := container.AccountRepo.Create(ctx, "Taxable")
	require.NoError(t, err)
	vti, err := container.SecurityRepo.Create(ctx, domain.Security{
		Symbol:               "vti",
		Distribution:         domain.Float64Ptr(0.58),
		DistributionsPerYear: domain.IntPtr(4),
		LastPrice:            245.5,
		Expired:              domain.BoolPtr(false),
	})
	require.NoError(t, err)
	_, err = container.SecurityRepo.Create(ctx, domain.Security{
		Symbol:    "OLDF",
		LastPrice: 9.8,
		Expired:   domain.BoolPtr(true),
	})
	require.NoError(t, err)
	_, err = container.TradeRepo.Create(ctx, domain.Trade{
		AccountID:  acc.ID,
		SecurityID: vti.ID,
		BuyPrice:   220,
		Quantity:   50,
		BuyDate:    testingpkg.Date(2024, 1, 8),
	})
	require.NoError(t, err)

	rows, err := container.ScreenerService.Rows(ctx, screener.Params{})
	require.NoError(t, err)
	require.Len(t, rows, 1, "expired OLDF without a position is hidden by default")
	assert.Equal(t, "VTI", rows[0].Symbol)
	assert.InDelta(t, 11000.0, rows[0].Position, 1e-9)
}

func TestWire_StoredMarketOverridesEnvironment(t *testing.T) {
	cfg := newTestConfig(t)

	first, _, err := Wire(cfg, zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, first.SettingsService.Set(context.Background(), settings.KeyCalendarMarket, "NONE"))
	first.Close()

	second, _, err := Wire(cfg, zerolog.Nop())
	require.NoError(t, err)
	defer second.Close()

	assert.Equal(t, "NONE", cfg.HolidayMarket)
	assert.Equal(t, "NONE", second.Calendar.Market())
}
