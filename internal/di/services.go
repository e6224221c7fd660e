package di

import (
	"context"
	"time"

	"github.com/aristath/divdesk/internal/config"
	"github.com/aristath/divdesk/internal/modules/market_hours"
	"github.com/aristath/divdesk/internal/modules/portfolio"
	"github.com/aristath/divdesk/internal/modules/screener"
	"github.com/aristath/divdesk/internal/modules/settings"
	"github.com/rs/zerolog"
)

// InitializeServices creates the calendar and the analytics services.
// Requires InitializeRepositories to have run.
func InitializeServices(container *Container, cfg *config.Config, log zerolog.Logger) error {
	container.SettingsService = settings.NewService(container.SettingsRepo, log)

	container.Calendar = market_hours.NewCalendar(cfg.HolidayMarket, log)

	container.PortfolioService = portfolio.NewPortfolioService(
		container.Snapshots,
		container.Calendar,
		log,
	)

	container.ScreenerService = screener.NewService(container.Snapshots, log)
	slowMs, err := container.SettingsService.GetFloat(context.Background(), settings.KeyPipelineSlowMs)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to read pipeline slow threshold, using default")
	} else if slowMs > 0 {
		container.ScreenerService.SetSlowThreshold(time.Duration(slowMs * float64(time.Millisecond)))
	}

	container.Preferences = screener.NewPreferenceStore(container.SettingsRepo, log)

	log.Info().Str("market", container.Calendar.Market()).Msg("Services initialized")
	return nil
}
