package storage

import (
	"context"

	"github.com/pokeforge/pokeforge/pkg/models"
)

// TradeStore defines the compound operations that mutate the balance and the
// item collection in one atomic write. These are used when the core bypasses
// the split ledger/orchestrator path and commits a charge together with the
// item write.
type TradeStore interface {
	// GenerateItem atomically debits the generation cost and stores the new
	// item. Fails with ErrInsufficientTokens when the balance cannot cover the
	// cost, leaving both records untouched.
	GenerateItem(ctx context.Context, item *models.CreatureItem, cost int64) (*models.TokenBalance, error)

	// SellItem atomically deletes the item and credits the resale reward.
	// Fails with ErrItemNotFound when the item does not exist.
	SellItem(ctx context.Context, id string, reward int64) (*models.TokenBalance, *models.CreatureItem, error)
}
