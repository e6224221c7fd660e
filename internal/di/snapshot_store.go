package di

import (
	"context"
	"fmt"
	"time"

	"github.com/aristath/divdesk/internal/domain"
	"github.com/aristath/divdesk/internal/utils"
	"github.com/rs/zerolog"
)

// AccountReader reads accounts with their trades embedded
type AccountReader interface {
	GetWithTrades(ctx context.Context) ([]domain.Account, error)
}

// TradeReader reads the flat trade ledger
type TradeReader interface {
	GetAll(ctx context.Context) ([]domain.Trade, error)
}

// SecurityReader reads the security universe
type SecurityReader interface {
	GetAll(ctx context.Context) ([]domain.Security, error)
}

// RiskGroupReader reads the risk groups
type RiskGroupReader interface {
	GetAll(ctx context.Context) ([]domain.RiskGroup, error)
}

// HolidayReader reads the stored holiday dates
type HolidayReader interface {
	GetDates(ctx context.Context) ([]time.Time, error)
}

// SnapshotStore assembles a domain.Snapshot from the ledger, universe and holiday
// repositories. Every Load returns freshly read slices, so callers own the result.
type SnapshotStore struct {
	accounts   AccountReader
	trades     TradeReader
	securities SecurityReader
	riskGroups RiskGroupReader
	holidays   HolidayReader
	log        zerolog.Logger
}

// NewSnapshotStore creates a new snapshot store
func NewSnapshotStore(
	accounts AccountReader,
	trades TradeReader,
	securities SecurityReader,
	riskGroups RiskGroupReader,
	holidays HolidayReader,
	log zerolog.Logger,
) *SnapshotStore {
	return &SnapshotStore{
		accounts:   accounts,
		trades:     trades,
		securities: securities,
		riskGroups: riskGroups,
		holidays:   holidays,
		log:        log.With().Str("component", "snapshot_store").Logger(),
	}
}

var _ domain.SnapshotProvider = (*SnapshotStore)(nil)

// Load reads every collection once
func (s *SnapshotStore) Load(ctx context.Context) (domain.Snapshot, error) {
	defer utils.OperationTimer("snapshot_load", s.log)()

	accounts, err := s.accounts.GetWithTrades(ctx)
	if err != nil {
		return domain.Snapshot{}, fmt.Errorf("failed to load accounts: %w", err)
	}

	trades, err := s.trades.GetAll(ctx)
	if err != nil {
		return domain.Snapshot{}, fmt.Errorf("failed to load trades: %w", err)
	}

	securities, err := s.securities.GetAll(ctx)
	if err != nil {
		return domain.Snapshot{}, fmt.Errorf("failed to load securities: %w", err)
	}

	riskGroups, err := s.riskGroups.GetAll(ctx)
	if err != nil {
		return domain.Snapshot{}, fmt.Errorf("failed to load risk groups: %w", err)
	}

	holidays, err := s.holidays.GetDates(ctx)
	if err != nil {
		return domain.Snapshot{}, fmt.Errorf("failed to load holidays: %w", err)
	}

	s.log.Debug().
		Int("accounts", len(accounts)).
		Int("trades", len(trades)).
		Int("securities", len(securities)).
		Msg("Snapshot loaded")

	return domain.Snapshot{
		Trades:     trades,
		Securities: securities,
		RiskGroups: riskGroups,
		Accounts:   accounts,
		Holidays:   holidays,
	}, nil
}
