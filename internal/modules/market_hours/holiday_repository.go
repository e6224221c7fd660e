package market_hours

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/aristath/divdesk/internal/database"
	"github.com/rs/zerolog"
)

// HolidayRepository handles the holidays table in universe.db
type HolidayRepository struct {
	universeDB *sql.DB
	log        zerolog.Logger
}

// NewHolidayRepository creates a new holiday repository
func NewHolidayRepository(universeDB *sql.DB, log zerolog.Logger) *HolidayRepository {
	return &HolidayRepository{
		universeDB: universeDB,
		log:        log.With().Str("repo", "holiday").Logger(),
	}
}

// GetAll returns every stored holiday ordered by date
func (r *HolidayRepository) GetAll(ctx context.Context) ([]Holiday, error) {
	rows, err := r.universeDB.QueryContext(ctx, "SELECT date, name FROM holidays ORDER BY date")
	if err != nil {
		return nil, fmt.Errorf("failed to query holidays: %w", err)
	}
	defer rows.Close()

	holidays := make([]Holiday, 0)
	for rows.Next() {
		var dateStr, name string
		if err := rows.Scan(&dateStr, &name); err != nil {
			return nil, fmt.Errorf("failed to scan holiday: %w", err)
		}

		date, err := time.Parse(dateKeyFormat, dateStr)
		if err != nil {
			r.log.Warn().Str("date", dateStr).Msg("Skipping holiday with invalid date")
			continue
		}
		holidays = append(holidays, Holiday{Date: date, Name: name})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating holidays: %w", err)
	}

	return holidays, nil
}

// GetDates returns the stored holiday dates (the holiday snapshot)
func (r *HolidayRepository) GetDates(ctx context.Context) ([]time.Time, error) {
	holidays, err := r.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	dates := make([]time.Time, len(holidays))
	for i, h := range holidays {
		dates[i] = h.Date
	}
	return dates, nil
}

// Upsert stores holidays, replacing the name and source of existing dates.
// Returns the number of rows written.
func (r *HolidayRepository) Upsert(ctx context.Context, holidays []Holiday, source string) (int, error) {
	if len(holidays) == 0 {
		return 0, nil
	}

	err := database.WithTransaction(r.universeDB, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, `
			INSERT INTO holidays (date, name, source)
			VALUES (?, ?, ?)
			ON CONFLICT(date) DO UPDATE SET
				name = excluded.name,
				source = excluded.source
		`)
		if err != nil {
			return fmt.Errorf("failed to prepare holiday upsert: %w", err)
		}
		defer stmt.Close()

		for _, h := range holidays {
			if _, err := stmt.ExecContext(ctx, dateKey(h.Date), h.Name, source); err != nil {
				return fmt.Errorf("failed to upsert holiday %s: %w", dateKey(h.Date), err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	r.log.Debug().Int("count", len(holidays)).Str("source", source).Msg("Holidays stored")
	return len(holidays), nil
}

// Delete removes the holiday on the given date
func (r *HolidayRepository) Delete(ctx context.Context, date time.Time) error {
	if _, err := r.universeDB.ExecContext(ctx, "DELETE FROM holidays WHERE date = ?", dateKey(date)); err != nil {
		return fmt.Errorf("failed to delete holiday %s: %w", dateKey(date), err)
	}
	return nil
}
