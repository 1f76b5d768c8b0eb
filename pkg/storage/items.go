package storage

import (
	"context"

	"github.com/pokeforge/pokeforge/pkg/models"
)

// ItemReader defines the interface for reading creature items.
type ItemReader interface {
	// GetItem retrieves a creature item by its ID.
	GetItem(ctx context.Context, id string) (*models.CreatureItem, error)

	// ListItems retrieves all stored creature items, in no particular order.
	ListItems(ctx context.Context) ([]models.CreatureItem, error)
}

// ItemWriter defines the interface for creating and deleting creature items.
type ItemWriter interface {
	// PutItem upserts a creature item and returns the stored form.
	PutItem(ctx context.Context, item *models.CreatureItem) (*models.CreatureItem, error)

	// DeleteItem deletes a creature item by its ID.
	DeleteItem(ctx context.Context, id string) error
}

// ItemStore combines the reader and writer interfaces.
type ItemStore interface {
	ItemReader
	ItemWriter
}
