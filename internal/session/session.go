// Package session tracks whether a user is signed in and which API key to
// attach to catalog requests.
//
// The session is persisted as two independent keys, a "logged in" flag and
// the secret. They are written by separate operations, so another process
// (or a crash) can leave them disagreeing. One rule resolves every
// combination: the session is signed in only when the flag reads "true" and
// the secret is non-empty. Login writes the secret before the flag and Logout
// clears the flag before the secret, so an interrupted transition always
// resolves to signed out.
package session

import (
	"slices"
	"sync"

	"go.uber.org/zap"

	"github.com/five82/reel/internal/changebus"
	"github.com/five82/reel/internal/storage"
)

const loggedInValue = "true"

// State is the resolved session.
type State struct {
	LoggedIn bool
	Secret   string
}

// Manager owns the session of one context.
type Manager struct {
	kv  *storage.Adapter
	log *zap.Logger

	mu        sync.RWMutex
	state     State
	listeners []func(State)
	unwatch   func()
}

// New loads the persisted session and starts following changes made by other
// contexts. Call Close to stop following.
func New(kv *storage.Adapter, log *zap.Logger) *Manager {
	if log == nil {
		log = zap.NewNop()
	}
	m := &Manager{kv: kv, log: log.Named("session")}
	m.state = m.readPersisted()
	m.unwatch = kv.Watch(m.onChange, storage.KeySecret, storage.KeyLoggedIn)
	return m
}

// Login persists secret and marks the session signed in.
func (m *Manager) Login(secret string) {
	m.kv.Write(storage.KeySecret, secret)
	m.kv.Write(storage.KeyLoggedIn, loggedInValue)
	m.set(resolve(loggedInValue, secret, true))
	m.log.Debug("login")
}

// Logout marks the session signed out and drops the secret.
func (m *Manager) Logout() {
	m.kv.Write(storage.KeyLoggedIn, "false")
	m.kv.Remove(storage.KeySecret)
	m.set(State{})
	m.log.Debug("logout")
}

// IsLoggedIn reads the persisted values directly, so a stale in-memory copy
// cannot grant access.
func (m *Manager) IsLoggedIn() bool {
	return m.readPersisted().LoggedIn
}

// State returns the in-memory session.
func (m *Manager) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// Secret returns the API key of the signed-in session, or "".
func (m *Manager) Secret() string {
	return m.State().Secret
}

// OnChange registers fn to run whenever the in-memory session is re-derived.
func (m *Manager) OnChange(fn func(State)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listeners = append(m.listeners, fn)
}

// Refresh re-derives the in-memory session from the store.
func (m *Manager) Refresh() State {
	st := m.readPersisted()
	m.set(st)
	return st
}

// Close stops following other contexts.
func (m *Manager) Close() {
	if m.unwatch != nil {
		m.unwatch()
	}
}

func (m *Manager) onChange(ev changebus.Event) {
	st := m.Refresh()
	m.log.Debug("session re-read", zap.String("key", ev.Key), zap.Bool("logged_in", st.LoggedIn))
}

func (m *Manager) readPersisted() State {
	flag, _ := m.kv.Read(storage.KeyLoggedIn)
	secret, hasSecret := m.kv.Read(storage.KeySecret)
	return resolve(flag, secret, hasSecret)
}

func (m *Manager) set(st State) {
	m.mu.Lock()
	m.state = st
	listeners := slices.Clone(m.listeners)
	m.mu.Unlock()

	for _, fn := range listeners {
		fn(st)
	}
}

func resolve(flag, secret string, hasSecret bool) State {
	if flag != loggedInValue || !hasSecret || secret == "" {
		return State{}
	}
	return State{LoggedIn: true, Secret: secret}
}
