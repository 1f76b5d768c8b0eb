package generation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/pokeforge/pokeforge/pkg/forge"
	genclient "github.com/pokeforge/pokeforge/pkg/generation"
	"github.com/pokeforge/pokeforge/pkg/ledger"
	"github.com/pokeforge/pokeforge/pkg/storage"
	"github.com/pokeforge/pokeforge/pkg/validation"
)

// Service is the part of the forge service this handler needs.
type Service interface {
	Generate(ctx context.Context, params forge.GenerateParams) (*forge.GenerateResult, error)
}

// GenerationHandler holds the dependencies for generation-related handlers.
type GenerationHandler struct {
	Service Service
}

// NewGenerationHandler creates a new GenerationHandler.
func NewGenerationHandler(svc Service) *GenerationHandler {
	return &GenerationHandler{Service: svc}
}

type generateRequest struct {
	Prompt         string `json:"prompt,omitempty"`
	Name           string `json:"name,omitempty"`
	IdempotencyKey string `json:"idempotencyKey,omitempty"`
}

type generateResponse struct {
	Pokemon        interface{} `json:"pokemon"`
	Balance        int64       `json:"balance"`
	IdempotencyKey string      `json:"idempotencyKey"`
}

// GeneratePokemon handles the logic for generating a new creature.
func (h *GenerationHandler) GeneratePokemon(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	result, err := h.Service.Generate(r.Context(), forge.GenerateParams{
		Prompt:         req.Prompt,
		Name:           req.Name,
		IdempotencyKey: req.IdempotencyKey,
	})
	if err != nil {
		writeGenerationError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(generateResponse{
		Pokemon:        result.Item,
		Balance:        result.Balance,
		IdempotencyKey: result.IdempotencyKey,
	}); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}

func writeGenerationError(w http.ResponseWriter, err error) {
	var insufficient *ledger.InsufficientTokensError
	var vErr *validation.Error
	var jobErr *genclient.JobFailedError
	var httpErr *genclient.HTTPError

	switch {
	case errors.As(err, &insufficient):
		http.Error(w, fmt.Sprintf("Insufficient tokens: have %d, need %d", insufficient.Balance, insufficient.Required), http.StatusUnprocessableEntity)
	case errors.Is(err, storage.ErrInsufficientTokens):
		http.Error(w, "Insufficient tokens", http.StatusUnprocessableEntity)
	case errors.As(err, &vErr):
		http.Error(w, vErr.Error(), http.StatusBadRequest)
	case errors.Is(err, ledger.ErrBalanceNotReady):
		http.Error(w, "Token balance not loaded yet", http.StatusServiceUnavailable)
	case errors.Is(err, genclient.ErrPollTimeout):
		http.Error(w, "Generation timed out", http.StatusGatewayTimeout)
	case errors.As(err, &jobErr):
		http.Error(w, fmt.Sprintf("Generation failed: %v", jobErr), http.StatusBadGateway)
	case errors.As(err, &httpErr):
		http.Error(w, fmt.Sprintf("Generation backend error: %v", httpErr), http.StatusBadGateway)
	case errors.Is(err, storage.ErrItemExists):
		http.Error(w, "A pokemon with this id already exists", http.StatusConflict)
	default:
		http.Error(w, fmt.Sprintf("Failed to generate pokemon: %v", err), http.StatusInternalServerError)
	}
}
