package scheduler

import (
	"context"

	"github.com/pokeforge/pokeforge/pkg/models"
)

// EventScheduler defines the interface for a component that enqueues a change
// event for asynchronous fanout to subscribed clients.
type EventScheduler interface {
	// ScheduleEvent enqueues a change event for asynchronous delivery.
	ScheduleEvent(ctx context.Context, event *models.ChangeEvent) error
}
