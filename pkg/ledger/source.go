package ledger

import (
	"context"

	"github.com/pokeforge/pokeforge/pkg/storage"
)

// BalanceSource abstracts where the ledger loads and persists its balance.
// Selected at construction: a local store in offline mode, the remote balance
// API when the backend keeps its own accounting.
type BalanceSource interface {
	// Load returns the current balance, creating it on first access when the
	// source owns the record.
	Load(ctx context.Context) (int64, error)

	// Persist makes a balance mutation durable. Must complete before the
	// triggering ledger operation is considered done.
	Persist(ctx context.Context, balance int64) error
}

// StoreSource persists the balance in the local store.
type StoreSource struct {
	Store           storage.BalanceStore
	StartingBalance int64
}

// Make sure we conform to the interface
var _ BalanceSource = (*StoreSource)(nil)

func (s *StoreSource) Load(ctx context.Context) (int64, error) {
	doc, err := s.Store.EnsureBalance(ctx, s.StartingBalance)
	if err != nil {
		return 0, err
	}
	return doc.Balance, nil
}

func (s *StoreSource) Persist(ctx context.Context, balance int64) error {
	_, err := s.Store.SetBalance(ctx, balance)
	return err
}

// BalanceFetcher fetches the balance from an authoritative remote service.
type BalanceFetcher interface {
	FetchBalance(ctx context.Context) (int64, error)
}

// RemoteSource reads the balance from the remote balance API. The remote
// service owns the record, so Persist is a no-op; the ledger's local view is
// kept consistent through SyncBalance calls fed by API responses.
type RemoteSource struct {
	Client BalanceFetcher
}

// Make sure we conform to the interface
var _ BalanceSource = (*RemoteSource)(nil)

func (s *RemoteSource) Load(ctx context.Context) (int64, error) {
	return s.Client.FetchBalance(ctx)
}

func (s *RemoteSource) Persist(ctx context.Context, balance int64) error {
	return nil
}
