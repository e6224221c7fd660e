// Package di provides dependency injection type definitions.
//
// The Container holds every application dependency. It is created by Wire()
// and handed to the server and to main for job registration.
package di

import (
	"github.com/aristath/divdesk/internal/database"
	"github.com/aristath/divdesk/internal/modules/ledger"
	"github.com/aristath/divdesk/internal/modules/market_hours"
	"github.com/aristath/divdesk/internal/modules/portfolio"
	"github.com/aristath/divdesk/internal/modules/screener"
	"github.com/aristath/divdesk/internal/modules/settings"
	"github.com/aristath/divdesk/internal/modules/universe"
	"github.com/aristath/divdesk/internal/scheduler"
)

// Container holds all dependencies for the application.
//
// Architecture:
//   - Databases: ledger (accounts, trades), universe (securities, risk groups, holidays), config (settings)
//   - Repositories: data access per table
//   - Snapshots: SnapshotStore assembles the immutable view the analytics run over
//   - Services: portfolio views, screener pipeline, settings
//   - Scheduler: holiday sync and database maintenance
type Container struct {
	// Databases
	LedgerDB   *database.DB
	UniverseDB *database.DB
	ConfigDB   *database.DB

	// Repositories
	AccountRepo   *ledger.AccountRepository
	TradeRepo     *ledger.TradeRepository
	SecurityRepo  *universe.SecurityRepository
	RiskGroupRepo *universe.RiskGroupRepository
	HolidayRepo   *market_hours.HolidayRepository
	SettingsRepo  *settings.Repository

	// Snapshots
	Snapshots *SnapshotStore

	// Services
	Calendar         *market_hours.Calendar
	PortfolioService *portfolio.PortfolioService
	ScreenerService  *screener.Service
	Preferences      *screener.PreferenceStore
	SettingsService  *settings.Service

	// Background jobs
	Scheduler *scheduler.Scheduler
}

// Close closes every open database
func (c *Container) Close() {
	for _, db := range []*database.DB{c.LedgerDB, c.UniverseDB, c.ConfigDB} {
		if db != nil {
			db.Close()
		}
	}
}

// JobInstances holds references to the registered jobs
type JobInstances struct {
	HolidaySync         *scheduler.HolidaySyncJob
	DatabaseMaintenance *scheduler.DatabaseMaintenanceJob
}
