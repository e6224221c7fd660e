package screener

import (
	"context"
	"fmt"

	"github.com/aristath/divdesk/internal/domain"
	"github.com/rs/zerolog"
)

const preferencesKeyPrefix = "screener.preferences."

// KeyValueStore persists JSON values by key
type KeyValueStore interface {
	GetJSON(ctx context.Context, key string, dest interface{}) (bool, error)
	SetJSON(ctx context.Context, key string, value interface{}) error
}

// PreferenceStore keeps the filter and sort parameters of each account scope
type PreferenceStore struct {
	store KeyValueStore
	log   zerolog.Logger
}

// NewPreferenceStore creates a preference store over a key-value store
func NewPreferenceStore(store KeyValueStore, log zerolog.Logger) *PreferenceStore {
	return &PreferenceStore{
		store: store,
		log:   log.With().Str("service", "screener_preferences").Logger(),
	}
}

// Get returns the saved parameters of account, or defaults scoped to it when
// nothing is saved yet
func (p *PreferenceStore) Get(ctx context.Context, account string) (Params, error) {
	scope := Params{SelectedAccount: account}.Scope()

	var params Params
	found, err := p.store.GetJSON(ctx, preferencesKey(scope), &params)
	if err != nil {
		return Params{}, fmt.Errorf("failed to load screener preferences: %w", err)
	}
	if !found {
		params = Params{}
	}
	params.SelectedAccount = string(scope)
	if params.SortCriteria == nil {
		params.SortCriteria = []Criterion{}
	}
	return params, nil
}

// Save stores params under their account scope
func (p *PreferenceStore) Save(ctx context.Context, params Params) error {
	scope := params.Scope()
	params.SelectedAccount = string(scope)
	for _, c := range params.SortCriteria {
		if !SortableFields[c.Field] {
			return fmt.Errorf("unknown sort field %q", c.Field)
		}
	}

	if err := p.store.SetJSON(ctx, preferencesKey(scope), params); err != nil {
		return fmt.Errorf("failed to save screener preferences: %w", err)
	}
	p.log.Debug().Str("account", string(scope)).Msg("Screener preferences saved")
	return nil
}

// ToggleSort applies ToggleCriterion to the saved criteria of account and stores the result
func (p *PreferenceStore) ToggleSort(ctx context.Context, account, field string) (Params, error) {
	if !SortableFields[field] {
		return Params{}, fmt.Errorf("unknown sort field %q", field)
	}

	params, err := p.Get(ctx, account)
	if err != nil {
		return Params{}, err
	}
	params.SortCriteria = ToggleCriterion(params.SortCriteria, field)
	if err := p.Save(ctx, params); err != nil {
		return Params{}, err
	}
	return params, nil
}

func preferencesKey(scope domain.AccountScope) string {
	return preferencesKeyPrefix + string(scope)
}
