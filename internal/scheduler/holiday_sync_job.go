package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/aristath/divdesk/internal/modules/market_hours"
	"github.com/aristath/divdesk/internal/modules/settings"
	"github.com/rs/zerolog"
)

// HolidaySourceGenerated marks holidays written by the sync job
const HolidaySourceGenerated = "generated"

// HolidayGenerator produces the rule-based holidays of a market
type HolidayGenerator interface {
	Market() string
	HolidaysForYear(year int) []market_hours.Holiday
}

// HolidayStore persists holidays
type HolidayStore interface {
	Upsert(ctx context.Context, holidays []market_hours.Holiday, source string) (int, error)
}

// SettingsReader supplies numeric settings
type SettingsReader interface {
	GetFloat(ctx context.Context, key string) (float64, error)
}

// HolidaySyncJob stores the generated holidays of the current year and the
// configured number of following years, so the holiday snapshot handed to
// the analytics stays complete without manual entry
type HolidaySyncJob struct {
	generator HolidayGenerator
	store     HolidayStore
	settings  SettingsReader
	now       func() time.Time
	log       zerolog.Logger
}

// NewHolidaySyncJob creates a new HolidaySyncJob
func NewHolidaySyncJob(generator HolidayGenerator, store HolidayStore, settings SettingsReader) *HolidaySyncJob {
	return &HolidaySyncJob{
		generator: generator,
		store:     store,
		settings:  settings,
		now:       time.Now,
		log:       zerolog.Nop(),
	}
}

// SetLogger sets the logger for the job
func (j *HolidaySyncJob) SetLogger(log zerolog.Logger) {
	j.log = log.With().Str("job", j.Name()).Logger()
}

// Name returns the job name
func (j *HolidaySyncJob) Name() string {
	return "holiday_sync"
}

// Run executes the holiday sync job
func (j *HolidaySyncJob) Run() error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	yearsAhead := 1
	if j.settings != nil {
		v, err := j.settings.GetFloat(ctx, settings.KeyHolidaySyncYearsAhead)
		if err != nil {
			j.log.Warn().Err(err).Msg("Failed to read years ahead, using 1")
		} else if v >= 0 {
			yearsAhead = int(v)
		}
	}

	current := j.now().Year()
	var holidays []market_hours.Holiday
	for year := current; year <= current+yearsAhead; year++ {
		holidays = append(holidays, j.generator.HolidaysForYear(year)...)
	}

	written, err := j.store.Upsert(ctx, holidays, HolidaySourceGenerated)
	if err != nil {
		return fmt.Errorf("failed to store holidays: %w", err)
	}

	j.log.Info().
		Str("market", j.generator.Market()).
		Int("from_year", current).
		Int("to_year", current+yearsAhead).
		Int("holidays", written).
		Msg("Holiday sync completed")
	return nil
}
