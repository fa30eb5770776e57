package storage

import (
	"slices"

	"go.uber.org/zap"

	"github.com/five82/reel/internal/changebus"
)

// Watcher detects changes made to a Backend by other processes and publishes
// them on the bus with the external origin. It is driven by an outside loop
// calling Poll; it holds no goroutine of its own.
type Watcher struct {
	backend Backend
	bus     *changebus.Bus
	log     *zap.Logger
	last    map[string]string
	primed  bool
}

// NewWatcher returns a watcher over backend. log may be nil.
func NewWatcher(backend Backend, bus *changebus.Bus, log *zap.Logger) *Watcher {
	if log == nil {
		log = zap.NewNop()
	}
	return &Watcher{backend: backend, bus: bus, log: log.Named("watcher")}
}

// Poll takes a snapshot and publishes one event per key whose value appeared,
// changed or disappeared since the previous successful poll. The first poll
// only records a baseline. Changed keys are returned in sorted order.
func (w *Watcher) Poll() ([]string, error) {
	if w.backend == nil {
		return nil, nil
	}
	current, err := w.backend.Snapshot()
	if err != nil {
		return nil, err
	}
	if !w.primed {
		w.last = current
		w.primed = true
		return nil, nil
	}

	changed := diffKeys(w.last, current)
	w.last = current
	for _, key := range changed {
		w.log.Debug("external change", zap.String("key", key))
		if w.bus != nil {
			w.bus.Publish(changebus.Event{Key: key, Origin: changebus.External})
		}
	}
	return changed, nil
}

func diffKeys(prev, next map[string]string) []string {
	var changed []string
	for k, v := range next {
		if old, ok := prev[k]; !ok || old != v {
			changed = append(changed, k)
		}
	}
	for k := range prev {
		if _, ok := next[k]; !ok {
			changed = append(changed, k)
		}
	}
	slices.Sort(changed)
	return changed
}
