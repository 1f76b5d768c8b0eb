package websockets

import "context"

// NoOpPublisher drops every notification. It stands in for the real fanout in
// tests and in deployments that run without a websocket endpoint.
type NoOpPublisher struct{}

// Publish discards the message.
func (p *NoOpPublisher) Publish(ctx context.Context, message Message) error {
	return nil
}
