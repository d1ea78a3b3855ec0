package shared

import "context"

// EventHandler processes a domain event
type EventHandler func(ctx context.Context, event DomainEvent) error

// EventPublisher publishes domain events to interested subscribers
type EventPublisher interface {
	Publish(ctx context.Context, events ...DomainEvent) error
}

// EventSubscriber registers handlers for event types
type EventSubscriber interface {
	Subscribe(eventType string, handler EventHandler)
}

// EventBus combines publishing and subscribing
type EventBus interface {
	EventPublisher
	EventSubscriber
}
