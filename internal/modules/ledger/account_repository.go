package ledger

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

// AccountRepository handles account database operations
type AccountRepository struct {
	ledgerDB *sql.DB // ledger.db - accounts table
	trades   *TradeRepository
	log      zerolog.Logger
}

// NewAccountRepository creates a new account repository
func NewAccountRepository(ledgerDB *sql.DB, trades *TradeRepository, log zerolog.Logger) *AccountRepository {
	return &AccountRepository{
		ledgerDB: ledgerDB,
		trades:   trades,
		log:      log.With().Str("repo", "account").Logger(),
	}
}

// Create inserts a new account
func (r *AccountRepository) Create(ctx context.Context, name string) (*domain.Account, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("account name is required")
	}
	if domain.AccountScope(name).IsAll() {
		return nil, fmt.Errorf("account name %q is reserved", name)
	}

	account := domain.Account{ID: uuid.New().String(), Name: name}
	_, err := r.ledgerDB.ExecContext(ctx,
		"INSERT INTO accounts (id, name, created_at) VALUES (?, ?, ?)",
		account.ID, account.Name, time.Now().Unix())
	if err != nil {
		return nil, fmt.Errorf("failed to insert account: %w", err)
	}

	r.log.Info().Str("id", account.ID).Str("name", account.Name).Msg("Account created")
	return &account, nil
}

// GetAll returns every account without trades, ordered by name
func (r *AccountRepository) GetAll(ctx context.Context) ([]domain.Account, error) {
	rows, err := r.ledgerDB.QueryContext(ctx, "SELECT id, name FROM accounts ORDER BY name, id")
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts: %w", err)
	}
	defer rows.Close()

	accounts := make([]domain.Account, 0)
	for rows.Next() {
		var a domain.Account
		if err := rows.Scan(&a.ID, &a.Name); err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		accounts = append(accounts, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating accounts: %w", err)
	}
	return accounts, nil
}

// GetWithTrades returns every account carrying its trades
func (r *AccountRepository) GetWithTrades(ctx context.Context) ([]domain.Account, error) {
	accounts, err := r.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	trades, err := r.trades.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	index := make(map[string]int, len(accounts))
	for i, a := range accounts {
		index[a.ID] = i
	}
	for _, t := range trades {
		if i, ok := index[t.AccountID]; ok {
			accounts[i].Trades = append(accounts[i].Trades, t)
		}
	}
	return accounts, nil
}

// GetByID returns an account by ID, nil when it does not exist
func (r *AccountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	var a domain.Account
	err := r.ledgerDB.QueryRowContext(ctx, "SELECT id, name FROM accounts WHERE id = ?", id).Scan(&a.ID, &a.Name)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query account: %w", err)
	}
	return &a, nil
}

// Delete removes an account together with its trades
func (r *AccountRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.ledgerDB.ExecContext(ctx, "DELETE FROM accounts WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to delete account: %w", err)
	}
	r.log.Info().Str("id", id).Msg("Account deleted")
	return nil
}
