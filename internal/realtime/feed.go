package realtime

import (
	"sync"
)

// EventType marks the kind of row change carried by an event.
type EventType string

// Change feed event types
const (
	EventInsert EventType = "insert"
	EventUpdate EventType = "update"
	EventDelete EventType = "delete"
)

// Entity names used on the feed
const (
	EntityOrder     = "orders"
	EntityInventory = "inventory_items"
)

// Event is a single row-level change: the row before and after.
// Old is nil for inserts, New is nil for deletes.
type Event struct {
	Entity string
	Type   EventType
	Old    interface{}
	New    interface{}
}

// Handler consumes feed events. Handlers run on the publisher's
// goroutine and must not block.
type Handler func(Event)

// Feed is an in-process change feed keyed by entity name. Services
// publish row changes after commit; views subscribe per entity and
// derive their own state from the events.
type Feed struct {
	mu     sync.RWMutex
	nextID uint64
	subs   map[string]map[uint64]Handler
}

// NewFeed creates an empty feed.
func NewFeed() *Feed {
	return &Feed{
		subs: make(map[string]map[uint64]Handler),
	}
}

// Subscribe registers a handler for an entity and returns the
// unsubscribe function.
func (f *Feed) Subscribe(entity string, handler Handler) func() {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.nextID++
	id := f.nextID
	if f.subs[entity] == nil {
		f.subs[entity] = make(map[uint64]Handler)
	}
	f.subs[entity][id] = handler

	return func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		if handlers, ok := f.subs[entity]; ok {
			delete(handlers, id)
			if len(handlers) == 0 {
				delete(f.subs, entity)
			}
		}
	}
}

// Publish delivers an event to every subscriber of its entity.
func (f *Feed) Publish(event Event) {
	f.mu.RLock()
	handlers := make([]Handler, 0, len(f.subs[event.Entity]))
	for _, h := range f.subs[event.Entity] {
		handlers = append(handlers, h)
	}
	f.mu.RUnlock()

	for _, h := range handlers {
		h(event)
	}
}

// SubscriberCount reports the number of handlers for an entity.
func (f *Feed) SubscriberCount(entity string) int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.subs[entity])
}
