package universe

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/aristath/divdesk/internal/domain"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// SecurityRepository handles security database operations in universe.db
type SecurityRepository struct {
	universeDB *sql.DB // universe.db - securities table
	log        zerolog.Logger
}

// securitiesColumns is the list of columns read from the securities table
// Used to avoid SELECT * which can break when schema changes
const securitiesColumns = `id, symbol, distribution, distributions_per_year, last_price,
ex_date, expired, risk_group_id, is_closed_end_fund`

// NewSecurityRepository creates a new security repository
func NewSecurityRepository(universeDB *sql.DB, log zerolog.Logger) *SecurityRepository {
	return &SecurityRepository{
		universeDB: universeDB,
		log:        log.With().Str("repo", "security").Logger(),
	}
}

// GetAll returns every security ordered by symbol
func (r *SecurityRepository) GetAll(ctx context.Context) ([]domain.Security, error) {
	query := "SELECT " + securitiesColumns + " FROM securities ORDER BY symbol"

	rows, err := r.universeDB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query securities: %w", err)
	}
	defer rows.Close()

	securities := make([]domain.Security, 0)
	for rows.Next() {
		security, err := r.scanSecurity(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan security: %w", err)
		}
		securities = append(securities, security)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating securities: %w", err)
	}

	return securities, nil
}

// GetByID returns a security by ID
func (r *SecurityRepository) GetByID(ctx context.Context, id string) (*domain.Security, error) {
	return r.getOne(ctx, "SELECT "+securitiesColumns+" FROM securities WHERE id = ?", id)
}

// GetBySymbol returns a security by symbol (case-insensitive)
func (r *SecurityRepository) GetBySymbol(ctx context.Context, symbol string) (*domain.Security, error) {
	return r.getOne(ctx, "SELECT "+securitiesColumns+" FROM securities WHERE symbol = ?", strings.TrimSpace(symbol))
}

func (r *SecurityRepository) getOne(ctx context.Context, query string, arg string) (*domain.Security, error) {
	rows, err := r.universeDB.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("failed to query security: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, nil // Security not found
	}

	security, err := r.scanSecurity(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to scan security: %w", err)
	}
	return &security, nil
}

// Create inserts a security. A missing ID is generated; the symbol is upper-cased.
// Returns the stored security.
func (r *SecurityRepository) Create(ctx context.Context, security domain.Security) (*domain.Security, error) {
	security.Symbol = strings.ToUpper(strings.TrimSpace(security.Symbol))
	if security.Symbol == "" {
		return nil, fmt.Errorf("symbol is required for security creation")
	}
	if security.ID == "" {
		security.ID = uuid.New().String()
	}

	query := `
		INSERT INTO securities
		(id, symbol, distribution, distributions_per_year, last_price, ex_date, expired,
		 risk_group_id, is_closed_end_fund, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.universeDB.ExecContext(ctx, query,
		security.ID,
		security.Symbol,
		nullFloat64(security.Distribution),
		nullInt(security.DistributionsPerYear),
		security.LastPrice,
		nullDate(security.ExDate),
		nullBool(security.Expired),
		nullString(security.RiskGroupID),
		boolToInt(security.IsClosedEndFund),
		time.Now().Unix(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert security: %w", err)
	}

	r.log.Info().Str("id", security.ID).Str("symbol", security.Symbol).Msg("Security created")
	return &security, nil
}

// Update updates security fields by ID
func (r *SecurityRepository) Update(ctx context.Context, id string, updates map[string]interface{}) error {
	if len(updates) == 0 {
		return nil
	}

	// Whitelist of allowed update fields
	allowedFields := map[string]bool{
		"symbol":                 true,
		"distribution":           true,
		"distributions_per_year": true,
		"last_price":             true,
		"ex_date":                true,
		"expired":                true,
		"risk_group_id":          true,
		"is_closed_end_fund":     true,
	}

	for key := range updates {
		if !allowedFields[key] {
			return fmt.Errorf("invalid update field: %s", key)
		}
	}

	values := make(map[string]interface{}, len(updates)+1)
	for key, val := range updates {
		values[key] = normalizeUpdateValue(key, val)
	}
	values["updated_at"] = time.Now().Unix()

	var setClauses []string
	var args []interface{}
	for key, val := range values {
		setClauses = append(setClauses, fmt.Sprintf("%s = ?", key))
		args = append(args, val)
	}
	args = append(args, id)

	// Safe: all keys are validated against whitelist above, values use parameterized query
	//nolint:gosec // G201: Field names are whitelisted, values are parameterized
	query := fmt.Sprintf("UPDATE securities SET %s WHERE id = ?", strings.Join(setClauses, ", "))
	result, err := r.universeDB.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update security: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	r.log.Info().Str("id", id).Int64("rows_affected", rowsAffected).Msg("Security updated")
	return nil
}

// Delete removes a security
func (r *SecurityRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.universeDB.ExecContext(ctx, "DELETE FROM securities WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to delete security: %w", err)
	}
	r.log.Info().Str("id", id).Msg("Security deleted")
	return nil
}

func (r *SecurityRepository) scanSecurity(rows *sql.Rows) (domain.Security, error) {
	var security domain.Security
	var distribution sql.NullFloat64
	var perYear, expired sql.NullInt64
	var exDate, riskGroupID sql.NullString
	var closedEnd int64

	err := rows.Scan(
		&security.ID,
		&security.Symbol,
		&distribution,
		&perYear,
		&security.LastPrice,
		&exDate,
		&expired,
		&riskGroupID,
		&closedEnd,
	)
	if err != nil {
		return security, err
	}

	if distribution.Valid {
		security.Distribution = domain.Float64Ptr(distribution.Float64)
	}
	if perYear.Valid {
		security.DistributionsPerYear = domain.IntPtr(int(perYear.Int64))
	}
	if exDate.Valid && exDate.String != "" {
		if t, err := time.Parse(isoDate, exDate.String); err == nil {
			security.ExDate = &t
		} else {
			r.log.Warn().Str("symbol", security.Symbol).Str("ex_date", exDate.String).Msg("Ignoring invalid ex-date")
		}
	}
	if expired.Valid {
		security.Expired = domain.BoolPtr(expired.Int64 != 0)
	}
	if riskGroupID.Valid {
		security.RiskGroupID = domain.StringPtr(riskGroupID.String)
	}
	security.IsClosedEndFund = closedEnd != 0

	return security, nil
}

// normalizeUpdateValue converts domain values to their column representation
func normalizeUpdateValue(key string, val interface{}) interface{} {
	switch v := val.(type) {
	case bool:
		return boolToInt(v)
	case *bool:
		return nullBool(v)
	case time.Time:
		return v.Format(isoDate)
	case *time.Time:
		return nullDate(v)
	case *float64:
		return nullFloat64(v)
	case *int:
		return nullInt(v)
	case *string:
		return nullString(v)
	case string:
		if key == "symbol" {
			return strings.ToUpper(strings.TrimSpace(v))
		}
		return v
	default:
		return v
	}
}

func nullFloat64(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

func nullInt(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}

func nullBool(v *bool) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(boolToInt(*v)), Valid: true}
}

func nullString(v *string) sql.NullString {
	if v == nil || *v == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: *v, Valid: true}
}

func nullDate(v *time.Time) sql.NullString {
	if v == nil || v.IsZero() {
		return sql.NullString{}
	}
	return sql.NullString{String: v.Format(isoDate), Valid: true}
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
