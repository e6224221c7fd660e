package screener

import (
	"context"
	"fmt"
	"time"

	"github.com/aristath/divdesk/internal/domain"
	"github.com/aristath/divdesk/internal/modules/universe"
	"github.com/aristath/divdesk/internal/utils"
	"github.com/aristath/divdesk/pkg/formulas"
	"github.com/rs/zerolog"
)

// Service runs the screener pipeline over a fresh snapshot per call
type Service struct {
	snapshots     domain.SnapshotProvider
	slowThreshold time.Duration
	now           func() time.Time
	log           zerolog.Logger
}

// NewService creates a new screener service
func NewService(snapshots domain.SnapshotProvider, log zerolog.Logger) *Service {
	return &Service{
		snapshots:     snapshots,
		slowThreshold: utils.DefaultSlowThreshold,
		now:           time.Now,
		log:           log.With().Str("service", "screener").Logger(),
	}
}

// SetSlowThreshold changes the duration above which a run is logged as slow
func (s *Service) SetSlowThreshold(d time.Duration) {
	s.slowThreshold = d
}

// SetClock overrides the clock used to project ex-dates
func (s *Service) SetClock(now func() time.Time) {
	s.now = now
}

// Rows loads a snapshot and returns the filtered, sorted display rows
func (s *Service) Rows(ctx context.Context, params Params) ([]universe.DisplayRow, error) {
	snapshot, err := s.snapshots.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot: %w", err)
	}
	return s.Run(snapshot, params), nil
}

// Run executes the pipeline on an already loaded snapshot
func (s *Service) Run(snapshot domain.Snapshot, params Params) []universe.DisplayRow {
	timer := utils.NewTimer("screener_pipeline", s.log).WithThreshold(s.slowThreshold)

	rows := universe.BuildDisplayRows(snapshot.Securities, snapshot.RiskGroups)
	rows = universe.ApplyAggregates(rows, snapshot.AllTrades(), domain.AllAccounts)
	filtered := Filter(rows, params, snapshot)
	sorted := Sort(filtered, params.SortCriteria, formulas.DateOnly(s.now()))

	timer.StopWithContext(map[string]interface{}{
		"securities": len(snapshot.Securities),
		"rows":       len(sorted),
		"account":    string(params.Scope()),
	})
	return sorted
}
