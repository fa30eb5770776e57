// Package changebus delivers key-change notifications between reel contexts.
//
// A context is one live view of the persisted state (a store adapter plus the
// stores built on it). When a context writes a key it publishes an Event;
// every other context subscribed to that key is told to re-read it. Events
// carry no value, only the key name and the publishing context.
package changebus

import (
	"cmp"
	"slices"
	"sync"

	"github.com/google/uuid"
)

// External is the origin used for changes made outside this process.
var External = uuid.Nil

// Event announces that the persisted value for Key changed.
type Event struct {
	Key    string
	Origin uuid.UUID
}

type subscriber struct {
	id   uint64
	self uuid.UUID
	keys map[string]struct{}
	fn   func(Event)
}

// Bus fans events out to subscribers. The zero value is not usable; call New.
type Bus struct {
	mu     sync.RWMutex
	nextID uint64
	subs   map[uint64]subscriber
}

// New returns an empty bus.
func New() *Bus {
	return &Bus{subs: make(map[uint64]subscriber)}
}

// Subscribe registers fn for events on keys. Events published by self are not
// delivered back to it. An empty key list subscribes to every key. The
// returned function removes the subscription and is safe to call twice.
func (b *Bus) Subscribe(self uuid.UUID, fn func(Event), keys ...string) (cancel func()) {
	if b == nil || fn == nil {
		return func() {}
	}
	set := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		set[k] = struct{}{}
	}

	b.mu.Lock()
	b.nextID++
	id := b.nextID
	b.subs[id] = subscriber{id: id, self: self, keys: set, fn: fn}
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.subs, id)
			b.mu.Unlock()
		})
	}
}

// Publish delivers ev synchronously to every interested subscriber. Handlers
// run outside the bus lock so they may publish or subscribe themselves.
func (b *Bus) Publish(ev Event) {
	if b == nil {
		return
	}
	b.mu.RLock()
	targets := make([]subscriber, 0, len(b.subs))
	for _, s := range b.subs {
		if ev.Origin != External && s.self == ev.Origin {
			continue
		}
		if len(s.keys) > 0 {
			if _, ok := s.keys[ev.Key]; !ok {
				continue
			}
		}
		targets = append(targets, s)
	}
	b.mu.RUnlock()

	// Map iteration order is random; keep delivery in subscription order.
	slices.SortFunc(targets, func(a, b subscriber) int { return cmp.Compare(a.id, b.id) })
	for _, s := range targets {
		s.fn(ev)
	}
}

// size reports the number of live subscriptions.
func (b *Bus) size() int {
	if b == nil {
		return 0
	}
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}
