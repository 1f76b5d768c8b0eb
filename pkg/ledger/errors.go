package ledger

import (
	"errors"
	"fmt"
)

// ErrBalanceNotReady is returned when a ledger operation is called before
// Initialize has completed.
var ErrBalanceNotReady = errors.New("token balance not initialized")

// ErrMissingIdempotencyKey is returned when a generation charge is requested
// without an idempotency key.
var ErrMissingIdempotencyKey = errors.New("idempotency key is required for a generation charge")

// ErrMissingPokemonID is returned when a resale reward is requested without an
// item id.
var ErrMissingPokemonID = errors.New("pokemon id is required for a resale reward")

// InsufficientTokensError is returned when the balance cannot cover the
// generation cost. It carries the amounts so callers can surface them.
type InsufficientTokensError struct {
	Balance  int64
	Required int64
}

func (e *InsufficientTokensError) Error() string {
	return fmt.Sprintf("insufficient tokens: balance %d, required %d", e.Balance, e.Required)
}
