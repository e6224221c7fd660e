package universe

import (
	"context"

	"github.com/aristath/divdesk/internal/domain"
)

// SecurityRepositoryInterface defines the contract for security repository operations
type SecurityRepositoryInterface interface {
	GetAll(ctx context.Context) ([]domain.Security, error)
	GetByID(ctx context.Context, id string) (*domain.Security, error)
	GetBySymbol(ctx context.Context, symbol string) (*domain.Security, error)
	Create(ctx context.Context, security domain.Security) (*domain.Security, error)
	Update(ctx context.Context, id string, updates map[string]interface{}) error
	Delete(ctx context.Context, id string) error
}

// RiskGroupRepositoryInterface defines the contract for risk group repository operations
type RiskGroupRepositoryInterface interface {
	GetAll(ctx context.Context) ([]domain.RiskGroup, error)
	Create(ctx context.Context, name string) (*domain.RiskGroup, error)
	Delete(ctx context.Context, id string) error
}

// Compile-time checks that implementations satisfy interfaces
var (
	_ SecurityRepositoryInterface  = (*SecurityRepository)(nil)
	_ RiskGroupRepositoryInterface = (*RiskGroupRepository)(nil)
)
