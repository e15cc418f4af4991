// Package realtime implements the in-process change notification bus. UI
// surfaces subscribe to (table, event, filter) tuples and receive callbacks
// synchronously when the record store mutates, emulating a realtime server
// push channel without a wire protocol.
package realtime

import (
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Event classifies a store mutation.
type Event string

const (
	EventInsert Event = "INSERT"
	EventUpdate Event = "UPDATE"
	EventDelete Event = "DELETE"
	EventAll    Event = "*"
)

// Message is delivered to subscribers on every matching mutation. Old carries
// the same row as New for updates since the store keeps no pre-image.
type Message struct {
	Table string
	Event Event
	New   map[string]any
	Old   map[string]any
}

// Handler receives matching messages at publish time, on the publisher's
// goroutine.
type Handler func(Message)

// Subscription is the opaque handle returned by Subscribe.
type Subscription struct {
	id string
}

type subscriber struct {
	id      string
	table   string
	event   Event
	filter  *filter
	handler Handler
}

// Bus fans store mutations out to subscribers. Delivery is synchronous and in
// registration order.
type Bus struct {
	mu   sync.RWMutex
	subs []subscriber
	log  *zap.Logger
}

// NewBus creates an empty bus.
func NewBus(log *zap.Logger) *Bus {
	return &Bus{log: log.Named("realtime.bus")}
}

// Subscribe registers a handler for mutations on table matching event and the
// optional equality filter ("column=eq.value", empty for all rows).
func (b *Bus) Subscribe(table string, event Event, filterExpr string, fn Handler) (Subscription, error) {
	f, err := parseFilter(filterExpr)
	if err != nil {
		return Subscription{}, err
	}

	sub := subscriber{
		id:      uuid.NewString(),
		table:   table,
		event:   event,
		filter:  f,
		handler: fn,
	}

	b.mu.Lock()
	b.subs = append(b.subs, sub)
	b.mu.Unlock()

	b.log.Debug("subscribed",
		zap.String("subscription_id", sub.id),
		zap.String("table", table),
		zap.String("event", string(event)),
		zap.String("filter", filterExpr),
	)
	return Subscription{id: sub.id}, nil
}

// Unsubscribe removes exactly the given subscription. Unknown or already
// removed handles are a no-op.
func (b *Bus) Unsubscribe(sub Subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range b.subs {
		if b.subs[i].id == sub.id {
			b.subs = append(b.subs[:i], b.subs[i+1:]...)
			return
		}
	}
}

// Publish invokes every matching subscriber's handler with the mutated row.
// Handlers run synchronously on the publisher's goroutine while the store's
// writer lock is held, so they must not write back into the store.
func (b *Bus) Publish(table string, event Event, row map[string]any) {
	b.mu.RLock()
	subs := make([]subscriber, len(b.subs))
	copy(subs, b.subs)
	b.mu.RUnlock()

	msg := Message{Table: table, Event: event, New: row, Old: row}
	for _, sub := range subs {
		if sub.table != table {
			continue
		}
		if sub.event != EventAll && sub.event != event {
			continue
		}
		if sub.filter != nil && !sub.filter.matches(row) {
			continue
		}
		sub.handler(msg)
	}
}
