package tokens

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/pokeforge/pokeforge/pkg/ledger"
)

// BalanceProvider exposes the current token balance.
type BalanceProvider interface {
	Balance() (int64, error)
}

// TokensHandler holds the dependencies for token-related handlers.
type TokensHandler struct {
	Provider BalanceProvider
}

// NewTokensHandler creates a new TokensHandler.
func NewTokensHandler(provider BalanceProvider) *TokensHandler {
	return &TokensHandler{Provider: provider}
}

type balanceResponse struct {
	Balance int64 `json:"balance"`
}

// GetBalance handles the logic for retrieving the current token balance.
func (h *TokensHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	balance, err := h.Provider.Balance()
	if err != nil {
		if errors.Is(err, ledger.ErrBalanceNotReady) {
			http.Error(w, "Token balance not loaded yet", http.StatusServiceUnavailable)
		} else {
			http.Error(w, fmt.Sprintf("Failed to retrieve balance: %v", err), http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(balanceResponse{Balance: balance}); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}
