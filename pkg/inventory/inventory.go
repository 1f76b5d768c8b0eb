package inventory

import (
	"context"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pokeforge/pokeforge/pkg/models"
	"github.com/pokeforge/pokeforge/pkg/scheduler"
	"github.com/pokeforge/pokeforge/pkg/storage"
	"github.com/pokeforge/pokeforge/pkg/validation"
)

// Manager owns the creature collection: it validates and stores new items,
// removes sold ones, lists the collection newest-first, and emits change
// events so subscribed clients can refresh.
type Manager struct {
	Store     storage.ItemStore
	Rules     validation.Rules
	Scheduler scheduler.EventScheduler
}

// NewManager creates a Manager. Scheduler may be nil, in which case no change
// events are emitted.
func NewManager(store storage.ItemStore, rules validation.Rules, sched scheduler.EventScheduler) *Manager {
	return &Manager{
		Store:     store,
		Rules:     rules,
		Scheduler: sched,
	}
}

// List returns the whole collection sorted newest-first.
func (m *Manager) List(ctx context.Context) ([]models.CreatureItem, error) {
	items, err := m.Store.ListItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}

	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	return items, nil
}

// Get retrieves a single item by id.
func (m *Manager) Get(ctx context.Context, id string) (*models.CreatureItem, error) {
	return m.Store.GetItem(ctx, id)
}

// Add validates, stamps and stores a new creature item, then emits an
// inventory change event.
func (m *Manager) Add(ctx context.Context, candidate models.CreatureItem) (*models.CreatureItem, error) {
	item, err := m.Rules.ValidateItem(candidate)
	if err != nil {
		return nil, err
	}
	validation.StampTimestamps(&item, time.Now())

	stored, err := m.Store.PutItem(ctx, &item)
	if err != nil {
		return nil, fmt.Errorf("failed to store item: %w", err)
	}

	m.emit(ctx, stored.ID, "added")
	return stored, nil
}

// Remove deletes an item and returns its last stored form. A missing item
// surfaces as storage.ErrItemNotFound.
func (m *Manager) Remove(ctx context.Context, id string) (*models.CreatureItem, error) {
	item, err := m.Store.GetItem(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := m.Store.DeleteItem(ctx, id); err != nil {
		return nil, err
	}

	m.emit(ctx, id, "removed")
	return item, nil
}

// Purge deletes the oldest items beyond keepLast and returns how many were
// removed. keepLast <= 0 is a no-op.
func (m *Manager) Purge(ctx context.Context, keepLast int) (int, error) {
	if keepLast <= 0 {
		return 0, nil
	}

	items, err := m.List(ctx)
	if err != nil {
		return 0, err
	}
	if len(items) <= keepLast {
		return 0, nil
	}

	purged := 0
	for _, item := range items[keepLast:] {
		if err := m.Store.DeleteItem(ctx, item.ID); err != nil {
			return purged, fmt.Errorf("failed to purge item %s: %w", item.ID, err)
		}
		purged++
	}
	return purged, nil
}

func (m *Manager) emit(ctx context.Context, itemID, action string) {
	if m.Scheduler == nil {
		return
	}

	event := &models.ChangeEvent{
		ID:         openapi_types.UUID(uuid.New()),
		Type:       models.EventInventoryUpdate,
		ItemID:     itemID,
		Action:     action,
		OccurredAt: time.Now(),
	}
	if err := m.Scheduler.ScheduleEvent(ctx, event); err != nil {
		log.Printf("CRITICAL: item %s %s but change event failed to enqueue: %v", itemID, action, err)
	}
}
