package storage

import (
	"context"

	"github.com/pokeforge/pokeforge/pkg/models"
)

// BalanceStore defines the interface for the singleton token-balance document.
type BalanceStore interface {
	// GetBalance retrieves the balance document, or ErrBalanceNotFound.
	GetBalance(ctx context.Context) (*models.TokenBalance, error)

	// EnsureBalance retrieves the balance document, creating it with the given
	// starting value on first access.
	EnsureBalance(ctx context.Context, starting int64) (*models.TokenBalance, error)

	// SetBalance unconditionally overwrites the balance with a new value.
	SetBalance(ctx context.Context, value int64) (*models.TokenBalance, error)
}
