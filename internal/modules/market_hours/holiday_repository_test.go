package market_hours

import (
	"context"
	"testing"
	"time"

	testingpkg "github.com/aristath/divdesk/internal/testing"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHolidayRepository_UpsertAndGet(t *testing.T) {
	db, cleanup := testingpkg.NewTestDB(t, "universe")
	defer cleanup()

	repo := NewHolidayRepository(db.Conn(), zerolog.New(nil).Level(zerolog.Disabled))
	ctx := context.Background()

	count, err := repo.Upsert(ctx, []Holiday{
		{Date: day(2024, 7, 4), Name: "Independence Day"},
		{Date: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC), Name: "New Year's Day"},
	}, "generated")
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	holidays, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, holidays, 2)
	assert.Equal(t, day(2024, 1, 1), holidays[0].Date)
	assert.Equal(t, "Independence Day", holidays[1].Name)

	// Re-upserting the same date renames it instead of duplicating
	_, err = repo.Upsert(ctx, []Holiday{{Date: day(2024, 7, 4), Name: "Fourth of July"}}, "manual")
	require.NoError(t, err)

	dates, err := repo.GetDates(ctx)
	require.NoError(t, err)
	assert.Equal(t, []time.Time{day(2024, 1, 1), day(2024, 7, 4)}, dates)

	holidays, err = repo.GetAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Fourth of July", holidays[1].Name)
}

func TestHolidayRepository_Delete(t *testing.T) {
	db, cleanup := testingpkg.NewTestDB(t, "universe")
	defer cleanup()

	repo := NewHolidayRepository(db.Conn(), zerolog.New(nil).Level(zerolog.Disabled))
	ctx := context.Background()

	_, err := repo.Upsert(ctx, []Holiday{{Date: day(2024, 12, 25), Name: "Christmas Day"}}, "generated")
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, day(2024, 12, 25)))

	dates, err := repo.GetDates(ctx)
	require.NoError(t, err)
	assert.Empty(t, dates)
}

func TestHolidayRepository_UpsertEmpty(t *testing.T) {
	db, cleanup := testingpkg.NewTestDB(t, "universe")
	defer cleanup()

	repo := NewHolidayRepository(db.Conn(), zerolog.New(nil).Level(zerolog.Disabled))
	count, err := repo.Upsert(context.Background(), nil, "generated")
	require.NoError(t, err)
	assert.Zero(t, count)
}
