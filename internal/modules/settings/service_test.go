package settings

import (
	"context"
	"testing"

	testingpkg "github.com/aristath/divdesk/internal/testing"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(t *testing.T) (*Service, *Repository, func()) {
	t.Helper()
	db, cleanup := testingpkg.NewTestDB(t, "config")
	log := zerolog.New(nil).Level(zerolog.Disabled)
	repo := NewRepository(db.Conn(), log)
	return NewService(repo, log), repo, cleanup
}

func TestSettingDefaults_HaveDescriptions(t *testing.T) {
	for key := range SettingDefaults {
		assert.NotEmpty(t, SettingDescriptions[key], "setting %s has no description", key)
	}
	for key := range StringSettings {
		_, ok := SettingDefaults[key].(string)
		assert.True(t, ok, "string setting %s must have a string default", key)
	}
}

func TestService_GetAll_MergesDefaults(t *testing.T) {
	svc, repo, cleanup := newService(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, KeyPipelineSlowMs, "300", nil))
	require.NoError(t, repo.Set(ctx, "stray", "ignored", nil))

	values, err := svc.GetAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, 300.0, values[KeyPipelineSlowMs])
	assert.Equal(t, "all", values[KeyDefaultAccount])
	assert.Equal(t, "XNYS", values[KeyCalendarMarket])
	assert.NotContains(t, values, "stray")
}

func TestService_Set(t *testing.T) {
	svc, _, cleanup := newService(t)
	defer cleanup()
	ctx := context.Background()

	tests := []struct {
		name    string
		key     string
		value   interface{}
		wantErr bool
	}{
		{"unknown key", "nope", "x", true},
		{"string setting with number", KeyDefaultAccount, 1.0, true},
		{"number setting with string", KeyPipelineSlowMs, "fast", true},
		{"negative number", KeyPipelineSlowMs, -1.0, true},
		{"unsupported market", KeyCalendarMarket, "XLON", true},
		{"valid market", KeyCalendarMarket, "NONE", false},
		{"valid account", KeyDefaultAccount, "acc-ira", false},
		{"valid int", KeyHolidaySyncYearsAhead, 2, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.Set(ctx, tt.key, tt.value)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}

	account, err := svc.GetString(ctx, KeyDefaultAccount)
	require.NoError(t, err)
	assert.Equal(t, "acc-ira", account)

	years, err := svc.GetFloat(ctx, KeyHolidaySyncYearsAhead)
	require.NoError(t, err)
	assert.Equal(t, 2.0, years)
}

func TestRepository_JSONAndTypedGetters(t *testing.T) {
	_, repo, cleanup := newService(t)
	defer cleanup()
	ctx := context.Background()

	type prefs struct {
		Symbol string `json:"symbol"`
	}

	var got prefs
	found, err := repo.GetJSON(ctx, "screener.prefs.all", &got)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, repo.SetJSON(ctx, "screener.prefs.all", prefs{Symbol: "vt"}))
	found, err = repo.GetJSON(ctx, "screener.prefs.all", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "vt", got.Symbol)

	require.NoError(t, repo.Set(ctx, "n", "12.000000", nil))
	n, err := repo.GetInt(ctx, "n", 0)
	require.NoError(t, err)
	assert.Equal(t, 12, n)

	require.NoError(t, repo.Set(ctx, "bad", "abc", nil))
	f, err := repo.GetFloat(ctx, "bad", 1.5)
	require.NoError(t, err)
	assert.Equal(t, 1.5, f)

	require.NoError(t, repo.Delete(ctx, "n"))
	require.NoError(t, repo.Delete(ctx, "n"))
	v, err := repo.Get(ctx, "n")
	require.NoError(t, err)
	assert.Nil(t, v)
}
