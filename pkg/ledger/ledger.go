package ledger

import (
	"context"
	"sync"
)

// Config holds the token economy constants the ledger applies.
type Config struct {
	GenerationCost int64
	ResaleReward   int64
}

// attempt tracks the charge/refund state of one logical generation attempt,
// keyed by its idempotency key. Attempts are session-scoped; a restart loses
// in-flight attempt state.
type attempt struct {
	charged  bool
	refunded bool
	jobID    string
}

// Ledger is the token-ledger state machine. It tracks the balance, applies and
// refunds generation charges exactly once per attempt, applies resale rewards
// exactly once per item, and persists every mutation through its BalanceSource
// before the triggering call returns.
//
// All operations serialize through an internal mutex, so read-modify-write
// sequences are atomic relative to other calls from the same process.
type Ledger struct {
	mu       sync.Mutex
	balance  *int64
	attempts map[string]*attempt
	rewarded map[string]struct{}

	source BalanceSource
	cfg    Config
}

// New creates a Ledger. Initialize must be called before any charge, refund or
// reward operation.
func New(source BalanceSource, cfg Config) *Ledger {
	return &Ledger{
		attempts: make(map[string]*attempt),
		rewarded: make(map[string]struct{}),
		source:   source,
		cfg:      cfg,
	}
}

// Initialize loads the balance from the source, creating it with the starting
// value when absent. Operations called before Initialize fail with
// ErrBalanceNotReady.
func (l *Ledger) Initialize(ctx context.Context) error {
	balance, err := l.source.Load(ctx)
	if err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.balance = &balance
	return nil
}

// Balance returns the current balance and whether the ledger is initialized.
func (l *Ledger) Balance() (int64, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.balance == nil {
		return 0, false
	}
	return *l.balance, true
}

// ChargeResult reports the outcome of ApplyGenerationCharge.
type ChargeResult struct {
	Balance int64
	Applied bool
}

// ApplyGenerationCharge debits the generation cost for the attempt identified
// by the idempotency key. A key that is already charged and not refunded is a
// no-op returning Applied=false, so retries of the same logical attempt never
// double-charge. The new balance is persisted before the call returns.
func (l *Ledger) ApplyGenerationCharge(ctx context.Context, idempotencyKey string) (ChargeResult, error) {
	if idempotencyKey == "" {
		return ChargeResult{}, ErrMissingIdempotencyKey
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.balance == nil {
		return ChargeResult{}, ErrBalanceNotReady
	}

	if existing, ok := l.attempts[idempotencyKey]; ok && existing.charged && !existing.refunded {
		return ChargeResult{Balance: *l.balance, Applied: false}, nil
	}

	current := *l.balance
	if current < l.cfg.GenerationCost {
		return ChargeResult{}, &InsufficientTokensError{Balance: current, Required: l.cfg.GenerationCost}
	}

	next := current - l.cfg.GenerationCost
	if err := l.source.Persist(ctx, next); err != nil {
		return ChargeResult{}, err
	}

	*l.balance = next
	l.attempts[idempotencyKey] = &attempt{charged: true}
	return ChargeResult{Balance: next, Applied: true}, nil
}

// AttachJob records the remote job id on a charged attempt once the backend
// has accepted it, so the charge can be correlated with its job. Unknown keys
// are ignored.
func (l *Ledger) AttachJob(idempotencyKey, jobID string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if entry, ok := l.attempts[idempotencyKey]; ok {
		entry.jobID = jobID
	}
}

// AttachedJob returns the job id recorded for an attempt, or "" when none was
// attached.
func (l *Ledger) AttachedJob(idempotencyKey string) string {
	l.mu.Lock()
	defer l.mu.Unlock()

	if entry, ok := l.attempts[idempotencyKey]; ok {
		return entry.jobID
	}
	return ""
}

// RefundResult reports the outcome of RefundGenerationCharge.
type RefundResult struct {
	Balance  int64
	Refunded bool
}

// RefundGenerationCharge credits the generation cost back for a charged
// attempt. Unknown keys, uncharged attempts and already-refunded attempts are
// no-ops returning Refunded=false, so racing failure paths may call it freely.
func (l *Ledger) RefundGenerationCharge(ctx context.Context, idempotencyKey string) (RefundResult, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.balance == nil {
		return RefundResult{}, ErrBalanceNotReady
	}

	entry, ok := l.attempts[idempotencyKey]
	if idempotencyKey == "" || !ok || !entry.charged || entry.refunded {
		return RefundResult{Balance: *l.balance, Refunded: false}, nil
	}

	next := *l.balance + l.cfg.GenerationCost
	if err := l.source.Persist(ctx, next); err != nil {
		return RefundResult{}, err
	}

	*l.balance = next
	entry.refunded = true
	return RefundResult{Balance: next, Refunded: true}, nil
}

// RewardResult reports the outcome of ApplyResaleReward.
type RewardResult struct {
	Balance  int64
	Rewarded bool
}

// ApplyResaleReward credits the resale reward for a sold item. Each item id is
// rewarded at most once; repeats are no-ops returning Rewarded=false.
func (l *Ledger) ApplyResaleReward(ctx context.Context, pokemonID string) (RewardResult, error) {
	if pokemonID == "" {
		return RewardResult{}, ErrMissingPokemonID
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.balance == nil {
		return RewardResult{}, ErrBalanceNotReady
	}

	if _, sold := l.rewarded[pokemonID]; sold {
		return RewardResult{Balance: *l.balance, Rewarded: false}, nil
	}

	next := *l.balance + l.cfg.ResaleReward
	if err := l.source.Persist(ctx, next); err != nil {
		return RewardResult{}, err
	}

	*l.balance = next
	l.rewarded[pokemonID] = struct{}{}
	return RewardResult{Balance: next, Rewarded: true}, nil
}

// MarkRewarded records that an item's reward has already been applied
// externally (e.g. by an atomic store transaction) without crediting again.
// Returns false when the id was already marked.
func (l *Ledger) MarkRewarded(pokemonID string) bool {
	if pokemonID == "" {
		return false
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if _, sold := l.rewarded[pokemonID]; sold {
		return false
	}
	l.rewarded[pokemonID] = struct{}{}
	return true
}

// SyncBalance unconditionally overwrites the balance with a value reported by
// an authoritative external source, then persists it. Used when the remote
// generation or resale API reports its own post-charge accounting, so a local
// charge is never stacked on top of a remote one.
func (l *Ledger) SyncBalance(ctx context.Context, value int64) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.source.Persist(ctx, value); err != nil {
		return err
	}

	if l.balance == nil {
		l.balance = &value
	} else {
		*l.balance = value
	}
	return nil
}

// IsCharged reports whether the attempt is currently charged and not refunded.
func (l *Ledger) IsCharged(idempotencyKey string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	entry, ok := l.attempts[idempotencyKey]
	return ok && entry.charged && !entry.refunded
}

// IsRefunded reports whether the attempt was charged and then refunded.
func (l *Ledger) IsRefunded(idempotencyKey string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	entry, ok := l.attempts[idempotencyKey]
	return ok && entry.charged && entry.refunded
}

// IsRewarded reports whether the item id has already received its resale reward.
func (l *Ledger) IsRewarded(pokemonID string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, sold := l.rewarded[pokemonID]
	return sold
}
