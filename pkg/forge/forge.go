package forge

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pokeforge/pokeforge/pkg/generation"
	"github.com/pokeforge/pokeforge/pkg/inventory"
	"github.com/pokeforge/pokeforge/pkg/ledger"
	"github.com/pokeforge/pokeforge/pkg/models"
	"github.com/pokeforge/pokeforge/pkg/scheduler"
	"github.com/pokeforge/pokeforge/pkg/storage"
)

// Config holds the economy constants and commit strategy the service applies.
type Config struct {
	GenerationCost int64
	ResaleReward   int64

	// AtomicTrades commits generation and resale as single storage
	// transactions instead of going through the ledger.
	AtomicTrades bool

	// RemoteResale reports resales to the backend and trusts its accounting.
	RemoteResale bool
}

// ResaleReporter reports a resale to the remote backend. *generation.API
// implements it.
type ResaleReporter interface {
	Sell(ctx context.Context, pokemonID string) (*generation.SellResponse, error)
}

// Service orchestrates the generation and resale flows end to end: charging
// and refunding tokens, calling the remote generator, validating the result
// and committing it to the collection.
type Service struct {
	ledger    *ledger.Ledger
	client    generation.Client
	inventory *inventory.Manager
	trades    storage.TradeStore
	backend   ResaleReporter
	events    scheduler.EventScheduler
	logger    *slog.Logger
	cfg       Config
}

// New creates a Service. trades is only required when AtomicTrades is set,
// backend only when RemoteResale is set. events may be nil, in which case job
// status transitions are not broadcast.
func New(
	l *ledger.Ledger,
	client generation.Client,
	inv *inventory.Manager,
	trades storage.TradeStore,
	backend ResaleReporter,
	events scheduler.EventScheduler,
	logger *slog.Logger,
	cfg Config,
) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		ledger:    l,
		client:    client,
		inventory: inv,
		trades:    trades,
		backend:   backend,
		events:    events,
		logger:    logger,
		cfg:       cfg,
	}
}

// GenerateParams describes one generation request.
type GenerateParams struct {
	Prompt string
	Name   string

	// IdempotencyKey identifies the logical attempt. Empty means a fresh
	// attempt and a new key is minted.
	IdempotencyKey string
}

// GenerateResult is the committed outcome of a generation.
type GenerateResult struct {
	Item           *models.CreatureItem
	Balance        int64
	IdempotencyKey string
}

// Generate runs the full generation flow: charge the generation cost, call the
// remote generator, validate the artifact and commit it to the collection. Any
// failure after the charge refunds it before the error is returned.
func (s *Service) Generate(ctx context.Context, params GenerateParams) (*GenerateResult, error) {
	key := params.IdempotencyKey
	if key == "" {
		key = uuid.NewString()
	}

	if s.cfg.AtomicTrades {
		return s.generateAtomic(ctx, params, key)
	}

	charge, err := s.ledger.ApplyGenerationCharge(ctx, key)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("generation charge applied",
		"idempotencyKey", key, "applied", charge.Applied, "balance", charge.Balance)

	artifact, err := s.generate(ctx, params, key)
	if err != nil {
		s.refund(ctx, key, err)
		return nil, err
	}

	item, err := s.inventory.Add(ctx, s.candidate(artifact, params))
	if err != nil {
		s.refund(ctx, key, err)
		return nil, err
	}

	balance, _ := s.ledger.Balance()
	return &GenerateResult{Item: item, Balance: balance, IdempotencyKey: key}, nil
}

// generateAtomic defers the debit to the storage transaction: the balance is
// only checked upfront, and the debit commits together with the item write, so
// no refund path is needed.
func (s *Service) generateAtomic(ctx context.Context, params GenerateParams, key string) (*GenerateResult, error) {
	if balance, ok := s.ledger.Balance(); !ok {
		return nil, ledger.ErrBalanceNotReady
	} else if balance < s.cfg.GenerationCost {
		return nil, &ledger.InsufficientTokensError{Balance: balance, Required: s.cfg.GenerationCost}
	}

	artifact, err := s.generate(ctx, params, key)
	if err != nil {
		return nil, err
	}

	candidate := s.candidate(artifact, params)
	item, err := s.inventory.Rules.ValidateItem(candidate)
	if err != nil {
		return nil, err
	}

	balance, err := s.trades.GenerateItem(ctx, &item, s.cfg.GenerationCost)
	if err != nil {
		return nil, err
	}
	if err := s.ledger.SyncBalance(ctx, balance.Balance); err != nil {
		return nil, err
	}

	return &GenerateResult{Item: &item, Balance: balance.Balance, IdempotencyKey: key}, nil
}

// generate calls the remote client. When the backend reports its own charge
// accounting the ledger is overwritten with that balance, so a local charge is
// never stacked on top of a remote one. Every status transition the job goes
// through is broadcast as a generationUpdate change event.
func (s *Service) generate(ctx context.Context, params GenerateParams, key string) (*generation.Artifact, error) {
	var lastStatus models.JobStatus
	observe := func(job *generation.Job) {
		if job.Status == "" || job.Status == lastStatus {
			return
		}
		lastStatus = job.Status
		s.emitStatus(ctx, job.JobID, job.Status)
	}

	req := generation.GenerateRequest{Prompt: params.Prompt, Name: params.Name}
	opts := generation.GenerateOptions{
		IdempotencyKey: key,
		OnAccepted: func(job *generation.Job) error {
			s.ledger.AttachJob(key, job.JobID)
			observe(job)
			if job.Balance == nil {
				return nil
			}
			s.logger.Debug("backend reported balance", "balance", *job.Balance)
			return s.ledger.SyncBalance(ctx, *job.Balance)
		},
		OnUpdate: func(job *generation.Job) {
			s.logger.Debug("generation status", "jobId", job.JobID, "status", job.Status)
			observe(job)
		},
	}
	return s.client.Generate(ctx, req, opts)
}

// emitStatus broadcasts a job status transition through the change-event
// pipeline so subscribed clients can render generation progress.
func (s *Service) emitStatus(ctx context.Context, jobID string, status models.JobStatus) {
	if s.events == nil {
		return
	}

	event := &models.ChangeEvent{
		ID:         openapi_types.UUID(uuid.New()),
		Type:       models.EventGenerationUpdate,
		JobID:      jobID,
		Status:     status,
		OccurredAt: time.Now(),
	}
	if err := s.events.ScheduleEvent(ctx, event); err != nil {
		s.logger.Error("failed to enqueue generation status event",
			"jobId", jobID, "status", status, "error", err)
	}
}

func (s *Service) candidate(artifact *generation.Artifact, params GenerateParams) models.CreatureItem {
	name := params.Name
	if name == "" {
		name = artifact.DisplayName
	}
	return models.CreatureItem{
		ID:        artifact.ItemID,
		Name:      name,
		ImageURL:  artifact.ImageReference,
		Prompt:    params.Prompt,
		Rarity:    artifact.Rarity,
		CreatedAt: artifact.GeneratedAt,
	}
}

// refund reverses a charge after a post-charge failure. A refund failure is
// logged but never masks the original error.
func (s *Service) refund(ctx context.Context, key string, cause error) {
	result, err := s.ledger.RefundGenerationCharge(ctx, key)
	if err != nil {
		s.logger.Error("failed to refund generation charge",
			"idempotencyKey", key, "cause", cause, "error", err)
		return
	}
	if result.Refunded {
		s.logger.Info("generation charge refunded",
			"idempotencyKey", key, "balance", result.Balance)
	}
}

// SellResult is the committed outcome of a resale.
type SellResult struct {
	Item     *models.CreatureItem
	Balance  int64
	Rewarded bool
}

// Sell removes an item from the collection and credits the resale reward. Each
// item is rewarded at most once.
func (s *Service) Sell(ctx context.Context, pokemonID string) (*SellResult, error) {
	if pokemonID == "" {
		return nil, ledger.ErrMissingPokemonID
	}

	if s.cfg.AtomicTrades {
		return s.sellAtomic(ctx, pokemonID)
	}

	item, err := s.inventory.Remove(ctx, pokemonID)
	if err != nil {
		return nil, err
	}

	if s.cfg.RemoteResale && s.backend != nil {
		return s.sellRemote(ctx, pokemonID, item)
	}

	reward, err := s.ledger.ApplyResaleReward(ctx, pokemonID)
	if err != nil {
		return nil, err
	}
	return &SellResult{Item: item, Balance: reward.Balance, Rewarded: reward.Rewarded}, nil
}

// sellAtomic deletes the item and credits the reward in one storage
// transaction, then brings the ledger in line with the committed balance.
func (s *Service) sellAtomic(ctx context.Context, pokemonID string) (*SellResult, error) {
	balance, item, err := s.trades.SellItem(ctx, pokemonID, s.cfg.ResaleReward)
	if err != nil {
		return nil, err
	}

	rewarded := s.ledger.MarkRewarded(pokemonID)
	if err := s.ledger.SyncBalance(ctx, balance.Balance); err != nil {
		return nil, err
	}
	return &SellResult{Item: item, Balance: balance.Balance, Rewarded: rewarded}, nil
}

// sellRemote reports the resale to the backend. When the backend returns its
// own accounting the ledger is overwritten with it; otherwise the reward is
// credited locally.
func (s *Service) sellRemote(ctx context.Context, pokemonID string, item *models.CreatureItem) (*SellResult, error) {
	resp, err := s.backend.Sell(ctx, pokemonID)
	if err != nil {
		return nil, fmt.Errorf("failed to report resale: %w", err)
	}

	if resp.Balance != nil {
		rewarded := s.ledger.MarkRewarded(pokemonID)
		if err := s.ledger.SyncBalance(ctx, *resp.Balance); err != nil {
			return nil, err
		}
		return &SellResult{Item: item, Balance: *resp.Balance, Rewarded: rewarded}, nil
	}

	reward, err := s.ledger.ApplyResaleReward(ctx, pokemonID)
	if err != nil {
		return nil, err
	}
	return &SellResult{Item: item, Balance: reward.Balance, Rewarded: reward.Rewarded}, nil
}

// Balance returns the current token balance.
func (s *Service) Balance() (int64, error) {
	balance, ok := s.ledger.Balance()
	if !ok {
		return 0, ledger.ErrBalanceNotReady
	}
	return balance, nil
}
