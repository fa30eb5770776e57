// Package wishlist keeps the user's favourite movies.
//
// The list is ordered newest first and holds each movie id at most once. A
// single Toggle operation adds or removes an entry, and every mutation writes
// the whole list back to the store immediately. When another context writes
// the list, the in-memory copy is thrown away and re-read; the last writer
// wins and nothing is merged.
package wishlist

import (
	"encoding/json"
	"slices"
	"sync"

	"go.uber.org/zap"

	"github.com/five82/reel/internal/changebus"
	"github.com/five82/reel/internal/storage"
)

// Entry is one wishlisted movie.
type Entry struct {
	ID         int64   `json:"id"`
	Title      string  `json:"title"`
	PosterPath *string `json:"poster_path"`
}

// Store is the wishlist of one context.
type Store struct {
	kv  *storage.Adapter
	log *zap.Logger

	mu        sync.RWMutex
	entries   []Entry
	listeners []func([]Entry)
	unwatch   func()
}

// New loads the persisted wishlist and follows changes from other contexts.
func New(kv *storage.Adapter, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Store{kv: kv, log: log.Named("wishlist")}
	s.entries = s.load()
	s.unwatch = kv.Watch(s.onChange, storage.KeyWishlist)
	return s
}

// Toggle removes the entry with e.ID if present, otherwise prepends e. The
// resulting list is persisted before Toggle returns. It reports whether the
// movie is now on the list.
func (s *Store) Toggle(e Entry) bool {
	s.mu.Lock()
	idx := slices.IndexFunc(s.entries, func(x Entry) bool { return x.ID == e.ID })
	var added bool
	if idx >= 0 {
		s.entries = slices.Delete(slices.Clone(s.entries), idx, idx+1)
	} else {
		s.entries = append([]Entry{e}, s.entries...)
		added = true
	}
	snapshot := slices.Clone(s.entries)
	listeners := slices.Clone(s.listeners)
	s.mu.Unlock()

	// Written outside the lock: the write notifies other contexts
	// synchronously and they may be toggling at the same time.
	s.persist(snapshot)
	s.log.Debug("toggled", zap.Int64("id", e.ID), zap.Bool("added", added))
	notify(listeners, snapshot)
	return added
}

// IsMember reports whether id is on the in-memory list.
func (s *Store) IsMember(id int64) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.ContainsFunc(s.entries, func(x Entry) bool { return x.ID == id })
}

// Entries returns a copy of the list, newest first.
func (s *Store) Entries() []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.entries)
}

// Len returns the number of entries.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// OnChange registers fn to run after every toggle or re-read.
func (s *Store) OnChange(fn func([]Entry)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// Close stops following other contexts.
func (s *Store) Close() {
	if s.unwatch != nil {
		s.unwatch()
	}
}

func (s *Store) onChange(changebus.Event) {
	fresh := s.load()

	s.mu.Lock()
	s.entries = fresh
	listeners := slices.Clone(s.listeners)
	s.mu.Unlock()

	s.log.Debug("re-read", zap.Int("entries", len(fresh)))
	notify(listeners, slices.Clone(fresh))
}

func (s *Store) persist(entries []Entry) {
	if entries == nil {
		entries = []Entry{}
	}
	data, err := json.Marshal(entries)
	if err != nil {
		s.log.Warn("encode wishlist", zap.Error(err))
		return
	}
	s.kv.Write(storage.KeyWishlist, string(data))
}

// load decodes the persisted list. Anything that is not a list of entries
// with positive ids reads as empty; repeated ids keep their first position.
func (s *Store) load() []Entry {
	raw, ok := s.kv.Read(storage.KeyWishlist)
	if !ok {
		return nil
	}
	var decoded []Entry
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		s.log.Debug("malformed wishlist ignored", zap.Error(err))
		return nil
	}
	seen := make(map[int64]struct{}, len(decoded))
	entries := make([]Entry, 0, len(decoded))
	for _, e := range decoded {
		if e.ID <= 0 {
			return nil
		}
		if _, dup := seen[e.ID]; dup {
			continue
		}
		seen[e.ID] = struct{}{}
		entries = append(entries, e)
	}
	return entries
}

func notify(listeners []func([]Entry), entries []Entry) {
	for _, fn := range listeners {
		fn(entries)
	}
}
