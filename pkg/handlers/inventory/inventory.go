package inventory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/pokeforge/pokeforge/pkg/forge"
	"github.com/pokeforge/pokeforge/pkg/ledger"
	"github.com/pokeforge/pokeforge/pkg/models"
	"github.com/pokeforge/pokeforge/pkg/storage"
	"github.com/pokeforge/pokeforge/pkg/validation"
)

// Collection is the part of the inventory manager this handler needs.
type Collection interface {
	List(ctx context.Context) ([]models.CreatureItem, error)
	Get(ctx context.Context, id string) (*models.CreatureItem, error)
	Add(ctx context.Context, candidate models.CreatureItem) (*models.CreatureItem, error)
}

// Seller sells an item: removal plus reward, committed together.
type Seller interface {
	Sell(ctx context.Context, pokemonID string) (*forge.SellResult, error)
}

// InventoryHandler holds the dependencies for collection-related handlers.
type InventoryHandler struct {
	Collection Collection
	Seller     Seller
}

// NewInventoryHandler creates a new InventoryHandler.
func NewInventoryHandler(collection Collection, seller Seller) *InventoryHandler {
	return &InventoryHandler{Collection: collection, Seller: seller}
}

// ListPokemons handles the logic for retrieving the whole collection,
// newest-first.
func (h *InventoryHandler) ListPokemons(w http.ResponseWriter, r *http.Request) {
	items, err := h.Collection.List(r.Context())
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to retrieve pokemons: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(items); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}

// GetPokemonById handles the logic for retrieving a single creature.
func (h *InventoryHandler) GetPokemonById(w http.ResponseWriter, r *http.Request, pokemonId string) {
	item, err := h.Collection.Get(r.Context(), pokemonId)
	if err != nil {
		if errors.Is(err, storage.ErrItemNotFound) {
			http.Error(w, "Pokemon not found", http.StatusNotFound)
		} else {
			http.Error(w, fmt.Sprintf("Failed to retrieve pokemon: %v", err), http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(item); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}

// AddPokemon handles the logic for storing an externally supplied creature,
// e.g. from an import surface.
func (h *InventoryHandler) AddPokemon(w http.ResponseWriter, r *http.Request) {
	var candidate models.CreatureItem
	if err := json.NewDecoder(r.Body).Decode(&candidate); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	item, err := h.Collection.Add(r.Context(), candidate)
	if err != nil {
		var vErr *validation.Error
		switch {
		case errors.As(err, &vErr):
			http.Error(w, vErr.Error(), http.StatusBadRequest)
		case errors.Is(err, storage.ErrItemExists):
			http.Error(w, "A pokemon with this id already exists", http.StatusConflict)
		default:
			http.Error(w, fmt.Sprintf("Failed to store pokemon: %v", err), http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(item); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}

type sellResponse struct {
	Pokemon  *models.CreatureItem `json:"pokemon"`
	Balance  int64                `json:"balance"`
	Rewarded bool                 `json:"rewarded"`
}

// SellPokemon handles the logic for selling a creature back for tokens.
func (h *InventoryHandler) SellPokemon(w http.ResponseWriter, r *http.Request, pokemonId string) {
	result, err := h.Seller.Sell(r.Context(), pokemonId)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrItemNotFound):
			http.Error(w, "Pokemon not found", http.StatusNotFound)
		case errors.Is(err, ledger.ErrMissingPokemonID):
			http.Error(w, "Pokemon id is required", http.StatusBadRequest)
		case errors.Is(err, ledger.ErrBalanceNotReady):
			http.Error(w, "Token balance not loaded yet", http.StatusServiceUnavailable)
		default:
			http.Error(w, fmt.Sprintf("Failed to sell pokemon: %v", err), http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(sellResponse{
		Pokemon:  result.Item,
		Balance:  result.Balance,
		Rewarded: result.Rewarded,
	}); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}
