package events

import (
	"sort"
	"sync"
)

// Envelope is a replicated event stamped with its position in the match.
type Envelope struct {
	Seq   uint64 `json:"seq"`
	Tick  uint64 `json:"tick"`
	Type  Type   `json:"type"`
	Event Event  `json:"event"`
}

// Listener receives deferred notifications at the end of a tick.
type Listener interface {
	HandleEvent(e Event)
}

// ListenerFunc adapts a function to Listener.
type ListenerFunc func(e Event)

func (f ListenerFunc) HandleEvent(e Event) { f(e) }

// Bus has two tiers. Publish appends to the replicated log that is drained
// once per tick for broadcasting, and to the deferred queue that Flush fans
// out to listeners after all mutation for the tick has committed.
//
// Listeners are keyed by an integer (the owning player id for AI agents)
// and always receive events in ascending key order, regardless of when
// they subscribed. Changes to the listener set during a flush take effect
// on the next flush.
type Bus struct {
	mu sync.Mutex

	tick       uint64
	seq        uint64
	replicated []Envelope
	pending    []Event
	listeners  map[int]Listener
}

func NewBus() *Bus {
	return &Bus{
		listeners: make(map[int]Listener),
	}
}

// SetTick stamps subsequent events with tick.
func (b *Bus) SetTick(tick uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.tick = tick
}

// Publish records e for replication and for deferred delivery.
func (b *Bus) Publish(e Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.seq++
	b.replicated = append(b.replicated, Envelope{
		Seq:   b.seq,
		Tick:  b.tick,
		Type:  e.EventType(),
		Event: e,
	})
	b.pending = append(b.pending, e)
}

// Drain returns and clears the replicated events published since the last drain.
func (b *Bus) Drain() []Envelope {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := b.replicated
	b.replicated = nil
	return out
}

// Subscribe registers l under key, replacing any previous listener with that key.
func (b *Bus) Subscribe(key int, l Listener) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.listeners[key] = l
}

// Unsubscribe removes the listener registered under key.
func (b *Bus) Unsubscribe(key int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.listeners, key)
}

// Listeners returns the number of registered listeners.
func (b *Bus) Listeners() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.listeners)
}

// Pending returns the number of events waiting for the next flush.
func (b *Bus) Pending() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.pending)
}

// Flush delivers every pending event to every listener, event by event,
// listeners in key order. Events published by a listener during the flush
// are delivered on the next flush. Returns the number of events delivered.
func (b *Bus) Flush() int {
	b.mu.Lock()
	pending := b.pending
	b.pending = nil
	keys := make([]int, 0, len(b.listeners))
	for k := range b.listeners {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	listeners := make([]Listener, 0, len(keys))
	for _, k := range keys {
		listeners = append(listeners, b.listeners[k])
	}
	b.mu.Unlock()

	for _, e := range pending {
		for _, l := range listeners {
			l.HandleEvent(e)
		}
	}
	return len(pending)
}

// Reset drops everything that has not been delivered yet.
func (b *Bus) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.replicated = nil
	b.pending = nil
}
