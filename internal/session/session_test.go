package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/reel/internal/changebus"
	"github.com/five82/reel/internal/storage"
)

func twoContexts(t *testing.T) (*storage.Adapter, *storage.Adapter) {
	t.Helper()
	bus := changebus.New()
	backend := storage.NewMemoryBackend()
	return storage.NewAdapter(backend, bus, nil), storage.NewAdapter(backend, bus, nil)
}

func TestLoginLogout(t *testing.T) {
	kv, _ := twoContexts(t)
	m := New(kv, nil)
	t.Cleanup(m.Close)

	assert.False(t, m.IsLoggedIn())
	assert.Equal(t, State{}, m.State())

	m.Login("secret-key")
	assert.True(t, m.IsLoggedIn())
	assert.Equal(t, State{LoggedIn: true, Secret: "secret-key"}, m.State())

	flag, _ := kv.Read(storage.KeyLoggedIn)
	assert.Equal(t, "true", flag)

	m.Logout()
	assert.False(t, m.IsLoggedIn())
	assert.Empty(t, m.Secret())
	_, ok := kv.Read(storage.KeySecret)
	assert.False(t, ok)
}

func TestNew_RestoresPersistedSession(t *testing.T) {
	kv, _ := twoContexts(t)
	kv.Write(storage.KeySecret, "k")
	kv.Write(storage.KeyLoggedIn, "true")

	m := New(kv, nil)
	t.Cleanup(m.Close)
	assert.Equal(t, State{LoggedIn: true, Secret: "k"}, m.State())
}

func TestInconsistentPersistedStateResolvesLoggedOut(t *testing.T) {
	cases := map[string]map[string]string{
		"flag without secret":   {storage.KeyLoggedIn: "true"},
		"flag with empty key":   {storage.KeyLoggedIn: "true", storage.KeySecret: ""},
		"secret without flag":   {storage.KeySecret: "k"},
		"flag not exactly true": {storage.KeyLoggedIn: "TRUE", storage.KeySecret: "k"},
	}
	for name, values := range cases {
		t.Run(name, func(t *testing.T) {
			kv, _ := twoContexts(t)
			for k, v := range values {
				kv.Write(k, v)
			}
			m := New(kv, nil)
			t.Cleanup(m.Close)

			assert.False(t, m.IsLoggedIn())
			assert.Equal(t, State{}, m.State())
			assert.Empty(t, m.Secret())
		})
	}
}

func TestIsLoggedIn_IgnoresStaleMemory(t *testing.T) {
	backend := storage.NewMemoryBackend()
	// No bus: the manager never hears about the external logout.
	kv := storage.NewAdapter(backend, nil, nil)
	m := New(kv, nil)
	m.Login("k")

	require.NoError(t, backend.Set(storage.KeyLoggedIn, "false"))

	assert.True(t, m.State().LoggedIn, "memory is stale")
	assert.False(t, m.IsLoggedIn(), "guard reads the store")
}

func TestCrossContextSync(t *testing.T) {
	first, second := twoContexts(t)
	a := New(first, nil)
	b := New(second, nil)
	t.Cleanup(a.Close)
	t.Cleanup(b.Close)

	var seen []State
	b.OnChange(func(st State) { seen = append(seen, st) })

	a.Login("k")
	assert.Equal(t, State{LoggedIn: true, Secret: "k"}, b.State())

	a.Logout()
	assert.Equal(t, State{}, b.State())
	require.NotEmpty(t, seen)
	assert.Equal(t, State{}, seen[len(seen)-1])
}

func TestClose_StopsFollowing(t *testing.T) {
	first, second := twoContexts(t)
	a := New(first, nil)
	b := New(second, nil)
	b.Close()

	a.Login("k")
	assert.False(t, b.State().LoggedIn)
	assert.True(t, b.Refresh().LoggedIn)
}

func TestUnavailableStorage(t *testing.T) {
	m := New(storage.NewAdapter(nil, changebus.New(), nil), nil)
	m.Login("k")

	assert.True(t, m.State().LoggedIn, "memory still reflects the login")
	assert.False(t, m.IsLoggedIn(), "nothing was persisted")
}

func TestOnChange_OwnWritesNotify(t *testing.T) {
	first, _ := twoContexts(t)
	m := New(first, nil)
	t.Cleanup(m.Close)

	var seen []State
	m.OnChange(func(st State) {
		seen = append(seen, st)
		// Registering from inside a listener must not affect this round.
		m.OnChange(func(State) {})
	})

	m.Login("k")
	m.Logout()
	assert.Equal(t, []State{{LoggedIn: true, Secret: "k"}, {}}, seen)
}
