package messaging

import "context"

// PublisherInterface defines the contract for event publishing.
// Services depend on this rather than the concrete Publisher so tests
// can substitute an in-memory implementation.
type PublisherInterface interface {
	Publish(ctx context.Context, routingKey string, eventData interface{}) error
	Close() error
}

// Ensure Publisher implements PublisherInterface
var _ PublisherInterface = (*Publisher)(nil)
