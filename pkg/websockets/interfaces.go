package websockets

import (
	"context"
)

// ConnectionManager tracks the clients subscribed to change notifications.
// Connections are added on $connect and removed on $disconnect or when a
// publish discovers they are gone.
type ConnectionManager interface {
	AddConnection(ctx context.Context, connectionID string) error
	RemoveConnection(ctx context.Context, connectionID string) error
}

// Publisher fans a change notification out to every subscribed client.
type Publisher interface {
	Publish(ctx context.Context, message Message) error
}
