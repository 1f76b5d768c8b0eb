package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pokeforge/pokeforge/pkg/forge"
	genhandler "github.com/pokeforge/pokeforge/pkg/handlers/generation"
	invhandler "github.com/pokeforge/pokeforge/pkg/handlers/inventory"
	mainthandler "github.com/pokeforge/pokeforge/pkg/handlers/maintenance"
	tokenshandler "github.com/pokeforge/pokeforge/pkg/handlers/tokens"
	"github.com/pokeforge/pokeforge/pkg/inventory"
	"github.com/pokeforge/pokeforge/pkg/ledger"
	custommw "github.com/pokeforge/pokeforge/pkg/middleware"
	"github.com/pokeforge/pokeforge/pkg/storage"
)

// NewRouter wires every handler onto a chi router with request logging.
func NewRouter(
	logger *slog.Logger,
	svc *forge.Service,
	collection *inventory.Manager,
	store storage.MaintenanceStore,
	led *ledger.Ledger,
	startingBalance int64,
) chi.Router {
	router := chi.NewRouter()
	router.Use(custommw.NewStructuredLogger(logger))

	gen := genhandler.NewGenerationHandler(svc)
	inv := invhandler.NewInventoryHandler(collection, svc)
	tok := tokenshandler.NewTokensHandler(svc)
	maint := mainthandler.NewMaintenanceHandler(store, led, collection.Rules, startingBalance)

	router.Post("/generate", gen.GeneratePokemon)

	router.Get("/inventory", inv.ListPokemons)
	router.Post("/inventory", inv.AddPokemon)
	router.Get("/inventory/{pokemonId}", func(w http.ResponseWriter, r *http.Request) {
		inv.GetPokemonById(w, r, chi.URLParam(r, "pokemonId"))
	})
	// Selling is the only way out of the inventory, so DELETE commits the
	// removal together with the resale reward.
	router.Delete("/inventory/{pokemonId}", func(w http.ResponseWriter, r *http.Request) {
		inv.SellPokemon(w, r, chi.URLParam(r, "pokemonId"))
	})

	router.Get("/tokens/balance", tok.GetBalance)

	router.Get("/export", maint.ExportData)
	router.Post("/import", maint.ImportData)
	router.Post("/reset", maint.ResetData)

	return router
}
