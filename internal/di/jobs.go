package di

import (
	"fmt"

	"github.com/aristath/divdesk/internal/config"
	"github.com/aristath/divdesk/internal/scheduler"
	"github.com/rs/zerolog"
)

// databaseMaintenanceSchedule runs integrity and WAL checks hourly
const databaseMaintenanceSchedule = "15 * * * *"

// RegisterJobs creates the background jobs and adds them to the container's scheduler
func RegisterJobs(container *Container, cfg *config.Config, log zerolog.Logger) (*JobInstances, error) {
	container.Scheduler = scheduler.New(log)
	instances := &JobInstances{}

	holidaySync := scheduler.NewHolidaySyncJob(container.Calendar, container.HolidayRepo, container.SettingsService)
	holidaySync.SetLogger(log)
	if err := container.Scheduler.AddJob(cfg.HolidaySyncSchedule, holidaySync); err != nil {
		return nil, fmt.Errorf("failed to register holiday sync job: %w", err)
	}
	instances.HolidaySync = holidaySync

	maintenance := scheduler.NewDatabaseMaintenanceJob(container.LedgerDB, container.UniverseDB, container.ConfigDB)
	maintenance.SetLogger(log)
	if err := container.Scheduler.AddJob(databaseMaintenanceSchedule, maintenance); err != nil {
		return nil, fmt.Errorf("failed to register database maintenance job: %w", err)
	}
	instances.DatabaseMaintenance = maintenance

	log.Info().Int("jobs", container.Scheduler.Entries()).Msg("Jobs registered")
	return instances, nil
}
