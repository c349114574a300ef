// Package eventbus implements the in-process fan-out registry that pushes
// domain events to every connected client and tracks per-table presence.
//
// The bus is deliberately decoupled from the request cycle: Publish never
// blocks, a slow subscriber only loses its own events, and nothing here is
// persisted. Presence is rebuilt purely from live subscriptions.
package eventbus

import (
	"log/slog"
	"sync"

	"tableside/internal/core/domain/events"
)

// subscriberBuffer is the per-subscription channel capacity. A subscriber
// that falls this far behind starts losing events; the sync agent treats any
// gap as full staleness, so dropped events degrade freshness, not
// correctness.
const subscriberBuffer = 16

// Subscription is one live sink. Events arrive on C until Close; the channel
// is closed by the bus, never by the consumer.
type Subscription struct {
	bus     *Bus
	ch      chan events.Event
	tableID string
	once    sync.Once
}

// C returns the subscription's event channel.
func (s *Subscription) C() <-chan events.Event {
	return s.ch
}

// Close deregisters the sink and updates presence. Safe to call twice.
func (s *Subscription) Close() {
	s.once.Do(func() {
		s.bus.unsubscribe(s)
	})
}

// Bus is a concurrency-safe in-memory event fan-out with presence tracking.
type Bus struct {
	mu          sync.Mutex
	subscribers map[*Subscription]struct{}
	presence    map[string]int
	log         *slog.Logger
}

// NewBus creates an empty bus.
func NewBus(log *slog.Logger) *Bus {
	return &Bus{
		subscribers: make(map[*Subscription]struct{}),
		presence:    make(map[string]int),
		log:         log,
	}
}

// Subscribe registers a new sink. A non-empty tableID declares the
// connection as a viewer of that table and counts toward its presence.
//
// The new subscriber immediately receives a presence snapshot so it renders
// consistent state without waiting for the next change; when the
// subscription affects a table's count, the updated snapshot is also
// broadcast to everyone else.
func (b *Bus) Subscribe(tableID string) *Subscription {
	sub := &Subscription{
		ch:      make(chan events.Event, subscriberBuffer),
		tableID: tableID,
	}
	sub.bus = b

	b.mu.Lock()
	b.subscribers[sub] = struct{}{}
	if tableID != "" {
		// The count changed, so everyone gets the new snapshot, the new
		// subscriber included.
		b.presence[tableID]++
		b.publishLocked(events.TablePresence(b.snapshotLocked()))
	} else {
		sub.ch <- events.TablePresence(b.snapshotLocked())
	}
	b.mu.Unlock()

	return sub
}

func (b *Bus) unsubscribe(sub *Subscription) {
	b.mu.Lock()
	if _, ok := b.subscribers[sub]; ok {
		delete(b.subscribers, sub)
		close(sub.ch)
		if sub.tableID != "" {
			b.presence[sub.tableID]--
			if b.presence[sub.tableID] <= 0 {
				delete(b.presence, sub.tableID)
			}
			b.publishLocked(events.TablePresence(b.snapshotLocked()))
		}
	}
	b.mu.Unlock()
}

// Publish fans the event out to every live sink. Fire-and-forget: a
// subscriber whose buffer is full loses the event and everyone else is
// unaffected. Never blocks the caller beyond the registry lock.
func (b *Bus) Publish(event events.Event) {
	b.mu.Lock()
	b.publishLocked(event)
	b.mu.Unlock()
}

func (b *Bus) publishLocked(event events.Event) {
	for sub := range b.subscribers {
		select {
		case sub.ch <- event:
		default:
			b.log.Debug("dropping event for slow subscriber", "kind", event.Kind)
		}
	}
}

// Snapshot returns a copy of the current presence mapping.
func (b *Bus) Snapshot() map[string]int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.snapshotLocked()
}

// SubscriberCount returns the number of live sinks.
func (b *Bus) SubscriberCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subscribers)
}

func (b *Bus) snapshotLocked() map[string]int {
	snapshot := make(map[string]int, len(b.presence))
	for tableID, count := range b.presence {
		snapshot[tableID] = count
	}
	return snapshot
}
