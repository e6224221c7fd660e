package di

import (
	"github.com/aristath/divdesk/internal/modules/ledger"
	"github.com/aristath/divdesk/internal/modules/market_hours"
	"github.com/aristath/divdesk/internal/modules/settings"
	"github.com/aristath/divdesk/internal/modules/universe"
	"github.com/rs/zerolog"
)

// InitializeRepositories creates all repositories and the snapshot store
func InitializeRepositories(container *Container, log zerolog.Logger) error {
	// Ledger
	container.TradeRepo = ledger.NewTradeRepository(container.LedgerDB.Conn(), log)
	container.AccountRepo = ledger.NewAccountRepository(container.LedgerDB.Conn(), container.TradeRepo, log)

	// Universe
	container.SecurityRepo = universe.NewSecurityRepository(container.UniverseDB.Conn(), log)
	container.RiskGroupRepo = universe.NewRiskGroupRepository(container.UniverseDB.Conn(), log)
	container.HolidayRepo = market_hours.NewHolidayRepository(container.UniverseDB.Conn(), log)

	// Config
	container.SettingsRepo = settings.NewRepository(container.ConfigDB.Conn(), log)

	container.Snapshots = NewSnapshotStore(
		container.AccountRepo,
		container.TradeRepo,
		container.SecurityRepo,
		container.RiskGroupRepo,
		container.HolidayRepo,
		log,
	)

	log.Info().Msg("Repositories initialized")
	return nil
}
