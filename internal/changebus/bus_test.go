package changebus

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublish_SkipsOwnOrigin(t *testing.T) {
	bus := New()
	a, b := uuid.New(), uuid.New()

	var gotA, gotB []Event
	bus.Subscribe(a, func(ev Event) { gotA = append(gotA, ev) }, "wishlist")
	bus.Subscribe(b, func(ev Event) { gotB = append(gotB, ev) }, "wishlist")

	bus.Publish(Event{Key: "wishlist", Origin: a})

	assert.Empty(t, gotA)
	require.Len(t, gotB, 1)
	assert.Equal(t, "wishlist", gotB[0].Key)
	assert.Equal(t, a, gotB[0].Origin)
}

func TestPublish_ExternalReachesEveryone(t *testing.T) {
	bus := New()
	a, b := uuid.New(), uuid.New()

	count := 0
	bus.Subscribe(a, func(Event) { count++ })
	bus.Subscribe(b, func(Event) { count++ })

	bus.Publish(Event{Key: "theme", Origin: External})
	assert.Equal(t, 2, count)
}

func TestPublish_FiltersKeys(t *testing.T) {
	bus := New()
	var keys []string
	bus.Subscribe(uuid.New(), func(ev Event) { keys = append(keys, ev.Key) }, "apiKey", "isLoggedIn")

	bus.Publish(Event{Key: "wishlist"})
	bus.Publish(Event{Key: "isLoggedIn"})
	bus.Publish(Event{Key: "apiKey"})

	assert.Equal(t, []string{"isLoggedIn", "apiKey"}, keys)
}

func TestSubscribe_CancelIsIdempotent(t *testing.T) {
	bus := New()
	calls := 0
	cancel := bus.Subscribe(uuid.New(), func(Event) { calls++ })
	require.Equal(t, 1, bus.size())

	cancel()
	cancel()
	bus.Publish(Event{Key: "theme"})

	assert.Zero(t, calls)
	assert.Zero(t, bus.size())
}

func TestPublish_HandlerMayPublish(t *testing.T) {
	bus := New()
	a, b := uuid.New(), uuid.New()

	var seen []string
	bus.Subscribe(b, func(ev Event) {
		seen = append(seen, ev.Key)
		if ev.Key == "apiKey" {
			bus.Publish(Event{Key: "isLoggedIn", Origin: b})
		}
	})
	bus.Subscribe(a, func(ev Event) { seen = append(seen, "a:"+ev.Key) })

	bus.Publish(Event{Key: "apiKey", Origin: a})
	assert.Equal(t, []string{"apiKey", "a:isLoggedIn"}, seen)
}

func TestNilBusIsSafe(t *testing.T) {
	var bus *Bus
	cancel := bus.Subscribe(uuid.New(), func(Event) {})
	cancel()
	bus.Publish(Event{Key: "x"})
	assert.Zero(t, bus.size())
}
