package ports

import (
	"tableside/internal/core/domain/events"
)

// EventPublisher fans domain events out to connected clients.
//
// Publish is fire-and-forget relative to the caller: it must be safe to call
// concurrently from many request-handling goroutines and must never block the
// request that triggered it, even when individual subscribers are slow.
// Delivery failures to a subscriber are swallowed; they never fail the
// triggering operation.
type EventPublisher interface {
	Publish(event events.Event)
}
