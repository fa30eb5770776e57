package storage

import (
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/five82/reel/internal/changebus"
)

// Adapter is the never-failing view of a Backend that stores build on. A nil
// backend means persistence is unavailable: reads report absent and writes
// are dropped.
type Adapter struct {
	backend Backend
	bus     *changebus.Bus
	id      uuid.UUID
	log     *zap.Logger
}

// NewAdapter creates an adapter with a fresh context id. bus and log may be
// nil.
func NewAdapter(backend Backend, bus *changebus.Bus, log *zap.Logger) *Adapter {
	if log == nil {
		log = zap.NewNop()
	}
	id := uuid.New()
	return &Adapter{
		backend: backend,
		bus:     bus,
		id:      id,
		log:     log.Named("storage").With(zap.String("context", id.String())),
	}
}

// ID returns the context id used to tag published changes.
func (a *Adapter) ID() uuid.UUID {
	if a == nil {
		return uuid.Nil
	}
	return a.id
}

// Available reports whether a backend is attached.
func (a *Adapter) Available() bool {
	return a != nil && a.backend != nil
}

// Read returns the stored value for key.
func (a *Adapter) Read(key string) (string, bool) {
	if !a.Available() {
		return "", false
	}
	v, ok, err := a.backend.Get(key)
	if err != nil {
		a.log.Warn("read failed; treating key as absent", zap.String("key", key), zap.Error(err))
		return "", false
	}
	return v, ok
}

// Write stores value under key and notifies other contexts.
func (a *Adapter) Write(key, value string) {
	if !a.Available() {
		return
	}
	if err := a.backend.Set(key, value); err != nil {
		a.log.Warn("write dropped", zap.String("key", key), zap.Error(err))
		return
	}
	a.publish(key)
}

// Remove deletes key and notifies other contexts.
func (a *Adapter) Remove(key string) {
	if !a.Available() {
		return
	}
	if err := a.backend.Delete(key); err != nil {
		a.log.Warn("remove dropped", zap.String("key", key), zap.Error(err))
		return
	}
	a.publish(key)
}

// Watch subscribes fn to changes of keys made by other contexts. The returned
// function unsubscribes.
func (a *Adapter) Watch(fn func(changebus.Event), keys ...string) func() {
	if a == nil || a.bus == nil {
		return func() {}
	}
	return a.bus.Subscribe(a.id, fn, keys...)
}

func (a *Adapter) publish(key string) {
	if a.bus == nil {
		return
	}
	a.bus.Publish(changebus.Event{Key: key, Origin: a.id})
}
