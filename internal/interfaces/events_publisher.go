package interfaces

import "context"

// EventPublisher delivers domain events to an external sink.
type EventPublisher interface {
	Publish(ctx context.Context, event any) error
}
