package portfolio

import (
	"context"
	"fmt"
	"time"

	"github.com/aristath/divdesk/internal/domain"
	"github.com/rs/zerolog"
)

// SecurityAggregate is an Aggregate joined with the security's purchase yield
type SecurityAggregate struct {
	Aggregate
	Symbol                  string  `json:"symbol"`
	AvgPurchaseYieldPercent float64 `json:"avg_purchase_yield_percent"`
}

// PortfolioService serves the position views over a fresh store snapshot per call.
//
// Responsibilities:
//   - Aggregate one security within an account scope
//   - Build the open-lot view with aging and target-gain bands
//   - Build the closed-lot view with realized results
type PortfolioService struct {
	snapshots domain.SnapshotProvider
	calendar  TradingCalendar
	now       func() time.Time
	log       zerolog.Logger
}

// NewPortfolioService creates a new portfolio service
func NewPortfolioService(
	snapshots domain.SnapshotProvider,
	calendar TradingCalendar,
	log zerolog.Logger,
) *PortfolioService {
	return &PortfolioService{
		snapshots: snapshots,
		calendar:  calendar,
		now:       time.Now,
		log:       log.With().Str("service", "portfolio").Logger(),
	}
}

// SetClock overrides the clock used for "today"
func (s *PortfolioService) SetClock(now func() time.Time) {
	s.now = now
}

// GetAggregate aggregates one security inside scope. Returns nil when the
// security is unknown.
func (s *PortfolioService) GetAggregate(ctx context.Context, securityID string, scope domain.AccountScope) (*SecurityAggregate, error) {
	snapshot, err := s.snapshots.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot: %w", err)
	}

	security, ok := snapshot.SecurityByID(securityID)
	if !ok {
		return nil, nil
	}

	agg := AggregateTrades(snapshot.AllTrades(), securityID, scope)
	return &SecurityAggregate{
		Aggregate:               agg,
		Symbol:                  security.Symbol,
		AvgPurchaseYieldPercent: AveragePurchaseYield(agg, security),
	}, nil
}

// GetOpenPositions returns the open lots of scope
func (s *PortfolioService) GetOpenPositions(ctx context.Context, scope domain.AccountScope) ([]OpenPosition, error) {
	snapshot, err := s.snapshots.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot: %w", err)
	}

	positions := OpenPositions(snapshot, scope, s.now(), s.calendar)
	s.log.Debug().Str("scope", string(scope)).Int("positions", len(positions)).Msg("Built open positions")
	return positions, nil
}

// GetClosedPositions returns the closed lots of scope
func (s *PortfolioService) GetClosedPositions(ctx context.Context, scope domain.AccountScope) ([]ClosedPosition, error) {
	snapshot, err := s.snapshots.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot: %w", err)
	}

	positions := ClosedPositions(snapshot, scope, s.calendar)
	s.log.Debug().Str("scope", string(scope)).Int("positions", len(positions)).Msg("Built closed positions")
	return positions, nil
}
