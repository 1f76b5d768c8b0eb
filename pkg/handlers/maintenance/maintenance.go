package maintenance

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/pokeforge/pokeforge/pkg/models"
	"github.com/pokeforge/pokeforge/pkg/storage"
	"github.com/pokeforge/pokeforge/pkg/validation"
)

// LedgerReloader reloads the in-memory ledger after the stored balance was
// replaced wholesale by an import or reset.
type LedgerReloader interface {
	Initialize(ctx context.Context) error
}

// MaintenanceHandler holds the dependencies for the privileged
// whole-database operations.
type MaintenanceHandler struct {
	Store           storage.MaintenanceStore
	Ledger          LedgerReloader
	Rules           validation.Rules
	StartingBalance int64
}

// NewMaintenanceHandler creates a new MaintenanceHandler.
func NewMaintenanceHandler(store storage.MaintenanceStore, ledger LedgerReloader, rules validation.Rules, startingBalance int64) *MaintenanceHandler {
	return &MaintenanceHandler{
		Store:           store,
		Ledger:          ledger,
		Rules:           rules,
		StartingBalance: startingBalance,
	}
}

// ExportData handles the logic for exporting the whole database as a portable
// snapshot.
func (h *MaintenanceHandler) ExportData(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.Store.Export(r.Context())
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to export data: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="pokeforge-export.json"`)
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(snapshot); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}

// ImportData handles the logic for restoring a previously exported snapshot.
func (h *MaintenanceHandler) ImportData(w http.ResponseWriter, r *http.Request) {
	var snapshot models.Snapshot
	if err := json.NewDecoder(r.Body).Decode(&snapshot); err != nil {
		http.Error(w, fmt.Sprintf("Invalid snapshot body: %v", err), http.StatusBadRequest)
		return
	}

	// Snapshots come from untrusted files. Validate every item before
	// anything is written so a bad snapshot never partially imports.
	for i, item := range snapshot.Pokemons {
		validated, err := h.Rules.ValidateItem(item)
		if err != nil {
			http.Error(w, fmt.Sprintf("Invalid item %q in snapshot: %v", item.ID, err), http.StatusBadRequest)
			return
		}
		snapshot.Pokemons[i] = validated
	}

	if err := h.Store.Import(r.Context(), &snapshot); err != nil {
		http.Error(w, fmt.Sprintf("Failed to import data: %v", err), http.StatusInternalServerError)
		return
	}

	if err := h.Ledger.Initialize(r.Context()); err != nil {
		http.Error(w, fmt.Sprintf("Data imported but ledger reload failed: %v", err), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ResetData handles the logic for wiping the database and reseeding the
// starting balance.
func (h *MaintenanceHandler) ResetData(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.Reset(r.Context(), h.StartingBalance); err != nil {
		http.Error(w, fmt.Sprintf("Failed to reset data: %v", err), http.StatusInternalServerError)
		return
	}

	if err := h.Ledger.Initialize(r.Context()); err != nil {
		http.Error(w, fmt.Sprintf("Data reset but ledger reload failed: %v", err), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
