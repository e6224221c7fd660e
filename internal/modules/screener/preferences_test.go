package screener

import (
	"context"
	"testing"

	"github.com/aristath/divdesk/internal/domain"
	"github.com/aristath/divdesk/internal/modules/settings"
	testingpkg "github.com/aristath/divdesk/internal/testing"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPreferenceStore(t *testing.T) (*PreferenceStore, func()) {
	t.Helper()
	db, cleanup := testingpkg.NewTestDB(t, "config")
	log := zerolog.New(nil).Level(zerolog.Disabled)
	return NewPreferenceStore(settings.NewRepository(db.Conn(), log), log), cleanup
}

func TestPreferenceStore_DefaultsPerAccount(t *testing.T) {
	store, cleanup := newPreferenceStore(t)
	defer cleanup()

	params, err := store.Get(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "all", params.SelectedAccount)
	assert.Empty(t, params.SortCriteria)
	assert.Nil(t, params.ExpiredFilter)
}

func TestPreferenceStore_SaveIsScopedToAccount(t *testing.T) {
	store, cleanup := newPreferenceStore(t)
	defer cleanup()
	ctx := context.Background()

	minYield, group := 2.5, " Core"
	require.NoError(t, store.Save(ctx, Params{
		SelectedAccount: "acc-ira",
		SymbolFilter:    "jep",
		MinYield:        &minYield,
		RiskGroupFilter: &group,
		ExpiredFilter:   domain.BoolPtr(false),
		SortCriteria:    []Criterion{{Field: FieldSymbol, Order: -1}},
	}))

	got, err := store.Get(ctx, "acc-ira")
	require.NoError(t, err)
	assert.Equal(t, "jep", got.SymbolFilter)
	assert.Equal(t, 2.5, *got.MinYield)
	assert.Equal(t, " Core", *got.RiskGroupFilter, "whitespace survives a round trip")
	assert.False(t, *got.ExpiredFilter)
	assert.Equal(t, []Criterion{{Field: FieldSymbol, Order: -1}}, got.SortCriteria)

	other, err := store.Get(ctx, "acc-taxable")
	require.NoError(t, err)
	assert.Empty(t, other.SymbolFilter)

	assert.Error(t, store.Save(ctx, Params{SortCriteria: []Criterion{{Field: "bogus", Order: 1}}}))
}

func TestPreferenceStore_ToggleSort(t *testing.T) {
	store, cleanup := newPreferenceStore(t)
	defer cleanup()
	ctx := context.Background()

	params, err := store.ToggleSort(ctx, "all", FieldPosition)
	require.NoError(t, err)
	assert.Equal(t, []Criterion{{Field: FieldPosition, Order: 1}}, params.SortCriteria)

	params, err = store.ToggleSort(ctx, "all", FieldSymbol)
	require.NoError(t, err)
	params, err = store.ToggleSort(ctx, "all", FieldPosition)
	require.NoError(t, err)
	assert.Equal(t, []Criterion{{Field: FieldPosition, Order: -1}, {Field: FieldSymbol, Order: 1}}, params.SortCriteria)

	stored, err := store.Get(ctx, "all")
	require.NoError(t, err)
	assert.Equal(t, params.SortCriteria, stored.SortCriteria)

	_, err = store.ToggleSort(ctx, "all", "bogus")
	assert.Error(t, err)
}
