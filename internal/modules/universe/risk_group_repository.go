package universe

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/aristath/divdesk/internal/domain"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// RiskGroupRepository handles the risk_groups table in universe.db
type RiskGroupRepository struct {
	universeDB *sql.DB
	log        zerolog.Logger
}

// NewRiskGroupRepository creates a new risk group repository
func NewRiskGroupRepository(universeDB *sql.DB, log zerolog.Logger) *RiskGroupRepository {
	return &RiskGroupRepository{
		universeDB: universeDB,
		log:        log.With().Str("repo", "risk_group").Logger(),
	}
}

// GetAll returns every risk group ordered by name
func (r *RiskGroupRepository) GetAll(ctx context.Context) ([]domain.RiskGroup, error) {
	rows, err := r.universeDB.QueryContext(ctx, "SELECT id, name FROM risk_groups ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("failed to query risk groups: %w", err)
	}
	defer rows.Close()

	groups := make([]domain.RiskGroup, 0)
	for rows.Next() {
		var rg domain.RiskGroup
		if err := rows.Scan(&rg.ID, &rg.Name); err != nil {
			return nil, fmt.Errorf("failed to scan risk group: %w", err)
		}
		groups = append(groups, rg)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating risk groups: %w", err)
	}
	return groups, nil
}

// Create inserts a risk group, generating its ID. Names keep their exact
// spelling because risk group filters match case-sensitively.
func (r *RiskGroupRepository) Create(ctx context.Context, name string) (*domain.RiskGroup, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("risk group name is required")
	}

	rg := domain.RiskGroup{ID: uuid.New().String(), Name: name}
	if _, err := r.universeDB.ExecContext(ctx, "INSERT INTO risk_groups (id, name) VALUES (?, ?)", rg.ID, rg.Name); err != nil {
		return nil, fmt.Errorf("failed to insert risk group: %w", err)
	}

	r.log.Info().Str("id", rg.ID).Str("name", rg.Name).Msg("Risk group created")
	return &rg, nil
}

// Delete removes a risk group; securities referencing it lose their group
func (r *RiskGroupRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.universeDB.ExecContext(ctx, "DELETE FROM risk_groups WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to delete risk group: %w", err)
	}
	return nil
}
