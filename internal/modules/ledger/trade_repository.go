package ledger

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/aristath/divdesk/internal/domain"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// TradeRepository handles trade database operations
type TradeRepository struct {
	ledgerDB *sql.DB // ledger.db - trades table
	log      zerolog.Logger
}

// tradesColumns is the list of columns for the trades table
// Column order must match scanTrade() expectations
const tradesColumns = `id, account_id, security_id, buy_price, quantity, buy_date, sell_price, sell_date`

// NewTradeRepository creates a new trade repository
func NewTradeRepository(ledgerDB *sql.DB, log zerolog.Logger) *TradeRepository {
	return &TradeRepository{
		ledgerDB: ledgerDB,
		log:      log.With().Str("repo", "trade").Logger(),
	}
}

// Create inserts a new trade lot, generating its ID when missing
func (r *TradeRepository) Create(ctx context.Context, trade domain.Trade) (*domain.Trade, error) {
	if err := validateTrade(trade); err != nil {
		return nil, fmt.Errorf("failed to create trade: %w", err)
	}
	if trade.ID == "" {
		trade.ID = uuid.New().String()
	}

	now := time.Now().Unix()
	query := `
		INSERT INTO trades
		(id, account_id, security_id, buy_price, quantity, buy_date, sell_price, sell_date, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.ledgerDB.ExecContext(ctx, query,
		trade.ID,
		trade.AccountID,
		trade.SecurityID,
		trade.BuyPrice,
		trade.Quantity,
		trade.BuyDate.Unix(),
		trade.SellPrice,
		nullUnix(trade.SellDate),
		now,
		now,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert trade: %w", err)
	}

	r.log.Info().
		Str("id", trade.ID).
		Str("account_id", trade.AccountID).
		Str("security_id", trade.SecurityID).
		Float64("quantity", trade.Quantity).
		Msg("Trade recorded")

	return &trade, nil
}

// GetByID returns a trade by ID, nil when it does not exist
func (r *TradeRepository) GetByID(ctx context.Context, id string) (*domain.Trade, error) {
	query := "SELECT " + tradesColumns + " FROM trades WHERE id = ?"

	trade, err := scanTrade(r.ledgerDB.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query trade: %w", err)
	}
	return &trade, nil
}

// GetAll returns every trade ordered by buy date
func (r *TradeRepository) GetAll(ctx context.Context) ([]domain.Trade, error) {
	return r.query(ctx, "SELECT "+tradesColumns+" FROM trades ORDER BY buy_date, id")
}

// GetByAccount returns the trades of one account ordered by buy date
func (r *TradeRepository) GetByAccount(ctx context.Context, accountID string) ([]domain.Trade, error) {
	return r.query(ctx, "SELECT "+tradesColumns+" FROM trades WHERE account_id = ? ORDER BY buy_date, id", accountID)
}

// GetOpenBySecurity returns the open lots of one security across all accounts
func (r *TradeRepository) GetOpenBySecurity(ctx context.Context, securityID string) ([]domain.Trade, error) {
	return r.query(ctx, "SELECT "+tradesColumns+" FROM trades WHERE security_id = ? AND sell_date IS NULL ORDER BY buy_date, id", securityID)
}

func (r *TradeRepository) query(ctx context.Context, query string, args ...interface{}) ([]domain.Trade, error) {
	rows, err := r.ledgerDB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query trades: %w", err)
	}
	defer rows.Close()

	trades := make([]domain.Trade, 0)
	for rows.Next() {
		trade, err := scanTrade(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan trade: %w", err)
		}
		trades = append(trades, trade)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating trades: %w", err)
	}
	return trades, nil
}

// Sell closes an open lot at the given price and date
func (r *TradeRepository) Sell(ctx context.Context, id string, price float64, date time.Time) (*domain.Trade, error) {
	trade, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if trade == nil {
		return nil, ErrTradeNotFound
	}
	if !trade.IsOpen() {
		return nil, ErrTradeClosed
	}

	trade.SellPrice = price
	trade.SellDate = &date
	if err := validateTrade(*trade); err != nil {
		return nil, fmt.Errorf("failed to sell trade: %w", err)
	}

	_, err = r.ledgerDB.ExecContext(ctx,
		"UPDATE trades SET sell_price = ?, sell_date = ?, updated_at = ? WHERE id = ?",
		price, date.Unix(), time.Now().Unix(), id)
	if err != nil {
		return nil, fmt.Errorf("failed to sell trade: %w", err)
	}

	r.log.Info().Str("id", id).Float64("price", price).Msg("Trade sold")
	return trade, nil
}

// Correct applies field corrections (date, quantity, prices) to a trade
func (r *TradeRepository) Correct(ctx context.Context, id string, c TradeCorrection) (*domain.Trade, error) {
	trade, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if trade == nil {
		return nil, ErrTradeNotFound
	}

	if c.BuyDate != nil {
		trade.BuyDate = *c.BuyDate
	}
	if c.BuyPrice != nil {
		trade.BuyPrice = *c.BuyPrice
	}
	if c.Quantity != nil {
		trade.Quantity = *c.Quantity
	}
	if c.SellPrice != nil {
		trade.SellPrice = *c.SellPrice
	}
	if c.SellDate != nil {
		trade.SellDate = c.SellDate
	}

	if err := validateTrade(*trade); err != nil {
		return nil, fmt.Errorf("failed to correct trade: %w", err)
	}

	_, err = r.ledgerDB.ExecContext(ctx, `
		UPDATE trades
		SET buy_price = ?, quantity = ?, buy_date = ?, sell_price = ?, sell_date = ?, updated_at = ?
		WHERE id = ?`,
		trade.BuyPrice, trade.Quantity, trade.BuyDate.Unix(), trade.SellPrice,
		nullUnix(trade.SellDate), time.Now().Unix(), id)
	if err != nil {
		return nil, fmt.Errorf("failed to correct trade: %w", err)
	}

	return trade, nil
}

// Delete removes a trade
func (r *TradeRepository) Delete(ctx context.Context, id string) error {
	result, err := r.ledgerDB.ExecContext(ctx, "DELETE FROM trades WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete trade: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return ErrTradeNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanTrade(row rowScanner) (domain.Trade, error) {
	var trade domain.Trade
	var buyDate int64
	var sellDate sql.NullInt64

	err := row.Scan(
		&trade.ID,
		&trade.AccountID,
		&trade.SecurityID,
		&trade.BuyPrice,
		&trade.Quantity,
		&buyDate,
		&trade.SellPrice,
		&sellDate,
	)
	if err != nil {
		return trade, err
	}

	trade.BuyDate = time.Unix(buyDate, 0).UTC()
	if sellDate.Valid {
		t := time.Unix(sellDate.Int64, 0).UTC()
		trade.SellDate = &t
	}
	return trade, nil
}

func nullUnix(t *time.Time) sql.NullInt64 {
	if t == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: t.Unix(), Valid: true}
}
