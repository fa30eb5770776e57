// Package prefs handles reel user preferences persistence.
// Preferences live in the local state store next to the session and the
// wishlist and follow changes made by other contexts the same way.
package prefs

import (
	"slices"
	"strings"
	"sync"

	"github.com/five82/reel/internal/changebus"
	"github.com/five82/reel/internal/storage"
)

// Theme names.
const (
	ThemeDark  = "dark"
	ThemeLight = "light"

	defaultTheme = ThemeDark
)

// Store holds the preferences of one context.
type Store struct {
	kv *storage.Adapter

	mu        sync.RWMutex
	theme     string
	listeners []func(string)
	unwatch   func()
}

// New loads preferences from kv, falling back to defaults when missing.
func New(kv *storage.Adapter) *Store {
	s := &Store{kv: kv}
	s.theme = s.load()
	s.unwatch = kv.Watch(s.onChange, storage.KeyTheme)
	return s
}

// Theme returns the active theme name.
func (s *Store) Theme() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.theme
}

// SetTheme persists name. Unknown names select the default theme.
func (s *Store) SetTheme(name string) {
	name = normalize(name)
	s.kv.Write(storage.KeyTheme, name)
	s.set(name)
}

// Toggle switches between the dark and light themes and returns the new one.
func (s *Store) Toggle() string {
	next := ThemeLight
	if s.Theme() == ThemeLight {
		next = ThemeDark
	}
	s.SetTheme(next)
	return next
}

// OnChange registers fn to run when the theme changes.
func (s *Store) OnChange(fn func(string)) {
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
	s.set(s.load())
}

func (s *Store) set(theme string) {
	s.mu.Lock()
	s.theme = theme
	listeners := slices.Clone(s.listeners)
	s.mu.Unlock()
	for _, fn := range listeners {
		fn(theme)
	}
}

func (s *Store) load() string {
	v, _ := s.kv.Read(storage.KeyTheme)
	return normalize(v)
}

func normalize(name string) string {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case ThemeLight:
		return ThemeLight
	case ThemeDark:
		return ThemeDark
	default:
		return defaultTheme
	}
}
