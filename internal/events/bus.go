package events

import "sync"

// EventTokenUpdated is broadcast by the auth client whenever the stored
// token or user info changes, so the session router can refresh without
// waiting for its next poll.
const EventTokenUpdated = "tokenUpdated"

// Handler receives the event name it subscribed to
type Handler func(event string)

// Bus is a minimal in-process broadcast bus. Emit runs handlers
// synchronously on the caller's goroutine.
type Bus struct {
	mu       sync.RWMutex
	nextID   int
	handlers map[string]map[int]Handler
}

// NewBus creates an empty bus
func NewBus() *Bus {
	return &Bus{
		handlers: make(map[string]map[int]Handler),
	}
}

// Subscribe registers a handler for an event and returns a function that
// removes it. Unsubscribing twice is a no-op.
func (b *Bus) Subscribe(event string, h Handler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.handlers[event] == nil {
		b.handlers[event] = make(map[int]Handler)
	}
	id := b.nextID
	b.nextID++
	b.handlers[event][id] = h

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.handlers[event], id)
	}
}

// Emit delivers the event to every current subscriber. The handler set is
// snapshotted first so a handler may unsubscribe itself or others while
// the emit is in flight.
func (b *Bus) Emit(event string) {
	b.mu.RLock()
	snapshot := make([]Handler, 0, len(b.handlers[event]))
	for _, h := range b.handlers[event] {
		snapshot = append(snapshot, h)
	}
	b.mu.RUnlock()

	for _, h := range snapshot {
		h(event)
	}
}
