package storage

import (
	"context"

	"github.com/pokeforge/pokeforge/pkg/models"
)

// MaintenanceStore defines the privileged whole-database operations: bulk
// export/import for data portability and a full reset. It should only be
// exposed to the maintenance surface.
type MaintenanceStore interface {
	// Export returns a snapshot of the balance document and all items.
	Export(ctx context.Context) (*models.Snapshot, error)

	// Import writes a snapshot back into the store. Items are upserted one by
	// one; the balance document is overwritten when present in the snapshot.
	Import(ctx context.Context, snapshot *models.Snapshot) error

	// Reset deletes and recreates both collections, then seeds the balance
	// document with the given starting value.
	Reset(ctx context.Context, startingBalance int64) error
}

// ConnectionStore defines the interface for storing and retrieving WebSocket
// connection IDs used for change-notification fanout.
type ConnectionStore interface {
	AddConnection(ctx context.Context, connectionID string) error
	RemoveConnection(ctx context.Context, connectionID string) error
	GetAllConnections(ctx context.Context) ([]string, error)
}
