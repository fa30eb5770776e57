package wishlist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/reel/internal/changebus"
	"github.com/five82/reel/internal/storage"
)

func ids(entries []Entry) []int64 {
	out := make([]int64, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.ID)
	}
	return out
}

func newContexts(n int) []*storage.Adapter {
	bus := changebus.New()
	backend := storage.NewMemoryBackend()
	out := make([]*storage.Adapter, n)
	for i := range out {
		out[i] = storage.NewAdapter(backend, bus, nil)
	}
	return out
}

func TestToggle_NewestFirstAndRemoval(t *testing.T) {
	s := New(newContexts(1)[0], nil)
	t.Cleanup(s.Close)

	assert.True(t, s.Toggle(Entry{ID: 5, Title: "Five"}))
	assert.True(t, s.Toggle(Entry{ID: 7, Title: "Seven"}))
	assert.Equal(t, []int64{7, 5}, ids(s.Entries()))

	assert.False(t, s.Toggle(Entry{ID: 5}))
	assert.Equal(t, []int64{7}, ids(s.Entries()))
	assert.False(t, s.IsMember(5))
	assert.True(t, s.IsMember(7))
}

func TestToggle_TwiceRestoresOriginal(t *testing.T) {
	s := New(newContexts(1)[0], nil)
	t.Cleanup(s.Close)
	for _, id := range []int64{1, 2, 3} {
		s.Toggle(Entry{ID: id})
	}
	before := s.Entries()

	s.Toggle(Entry{ID: 9})
	s.Toggle(Entry{ID: 9})
	assert.Equal(t, before, s.Entries())
}

func TestToggle_WritesThrough(t *testing.T) {
	kv := newContexts(1)[0]
	s := New(kv, nil)
	t.Cleanup(s.Close)

	poster := "/p.jpg"
	s.Toggle(Entry{ID: 5, Title: "Five", PosterPath: &poster})
	s.Toggle(Entry{ID: 7, Title: "Seven"})

	raw, ok := kv.Read(storage.KeyWishlist)
	require.True(t, ok)
	assert.JSONEq(t, `[{"id":7,"title":"Seven","poster_path":null},{"id":5,"title":"Five","poster_path":"/p.jpg"}]`, raw)

	reloaded := New(kv, nil)
	t.Cleanup(reloaded.Close)
	assert.Equal(t, s.Entries(), reloaded.Entries())
}

func TestEntries_ReturnsCopy(t *testing.T) {
	s := New(newContexts(1)[0], nil)
	t.Cleanup(s.Close)
	s.Toggle(Entry{ID: 1, Title: "One"})

	got := s.Entries()
	got[0].Title = "changed"
	assert.Equal(t, "One", s.Entries()[0].Title)
}

func TestLoad_MalformedAndDuplicates(t *testing.T) {
	cases := map[string]struct {
		raw  string
		want []int64
	}{
		"not json":     {raw: "nope", want: []int64{}},
		"object":       {raw: `{"id":1}`, want: []int64{}},
		"missing id":   {raw: `[{"id":1},{"title":"x"}]`, want: []int64{}},
		"duplicate id": {raw: `[{"id":3},{"id":1},{"id":3}]`, want: []int64{3, 1}},
		"empty list":   {raw: `[]`, want: []int64{}},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			kv := newContexts(1)[0]
			kv.Write(storage.KeyWishlist, tc.raw)
			s := New(kv, nil)
			t.Cleanup(s.Close)
			assert.Equal(t, tc.want, ids(s.Entries()))
		})
	}
}

func TestCrossContext_ReReadOnNotification(t *testing.T) {
	ctxs := newContexts(2)
	a := New(ctxs[0], nil)
	b := New(ctxs[1], nil)
	t.Cleanup(a.Close)
	t.Cleanup(b.Close)

	var notified [][]Entry
	b.OnChange(func(e []Entry) { notified = append(notified, e) })

	a.Toggle(Entry{ID: 5})
	a.Toggle(Entry{ID: 7})
	assert.True(t, b.IsMember(5))
	assert.True(t, b.IsMember(7))
	assert.Equal(t, []int64{7, 5}, ids(b.Entries()))

	a.Toggle(Entry{ID: 5})
	assert.False(t, b.IsMember(5))
	assert.Len(t, notified, 3)
}

func TestCrossContext_LastWriterWins(t *testing.T) {
	ctxs := newContexts(2)
	a := New(ctxs[0], nil)
	b := New(ctxs[1], nil)
	t.Cleanup(a.Close)
	t.Cleanup(b.Close)

	a.Toggle(Entry{ID: 1})
	// b writes its own view; a discards its local state and adopts b's.
	b.Toggle(Entry{ID: 2})
	assert.Equal(t, []int64{2, 1}, ids(a.Entries()))

	// An external writer replaces the list wholesale.
	ctxs[1].Write(storage.KeyWishlist, `[{"id":42,"title":"x","poster_path":null}]`)
	assert.Equal(t, []int64{42}, ids(a.Entries()))
}

func TestUnavailableStorage(t *testing.T) {
	s := New(storage.NewAdapter(nil, nil, nil), nil)
	assert.True(t, s.Toggle(Entry{ID: 1}))
	assert.True(t, s.IsMember(1))
	assert.Equal(t, 1, s.Len())
}
