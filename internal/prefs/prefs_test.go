package prefs

import (
	"testing"

	"github.com/five82/reel/internal/changebus"
	"github.com/five82/reel/internal/storage"
)

func TestNew_MissingValueUsesDefault(t *testing.T) {
	s := New(storage.NewAdapter(storage.NewMemoryBackend(), nil, nil))
	if got := s.Theme(); got != defaultTheme {
		t.Fatalf("Theme = %q, want %q", got, defaultTheme)
	}
}

func TestNew_ReadsExistingValue(t *testing.T) {
	kv := storage.NewAdapter(storage.NewMemoryBackend(), nil, nil)
	kv.Write(storage.KeyTheme, "light")

	if got := New(kv).Theme(); got != ThemeLight {
		t.Fatalf("Theme = %q, want %q", got, ThemeLight)
	}
}

func TestNew_InvalidValueFallsBackToDefault(t *testing.T) {
	kv := storage.NewAdapter(storage.NewMemoryBackend(), nil, nil)
	kv.Write(storage.KeyTheme, "solarized")

	if got := New(kv).Theme(); got != defaultTheme {
		t.Fatalf("Theme = %q, want %q", got, defaultTheme)
	}
}

func TestToggle_PersistsAndAlternates(t *testing.T) {
	kv := storage.NewAdapter(storage.NewMemoryBackend(), nil, nil)
	s := New(kv)

	if got := s.Toggle(); got != ThemeLight {
		t.Fatalf("Toggle = %q, want %q", got, ThemeLight)
	}
	if v, _ := kv.Read(storage.KeyTheme); v != ThemeLight {
		t.Fatalf("persisted theme = %q, want %q", v, ThemeLight)
	}
	if got := s.Toggle(); got != ThemeDark {
		t.Fatalf("Toggle = %q, want %q", got, ThemeDark)
	}
}

func TestSetTheme_FollowedByOtherContext(t *testing.T) {
	bus := changebus.New()
	backend := storage.NewMemoryBackend()
	a := New(storage.NewAdapter(backend, bus, nil))
	b := New(storage.NewAdapter(backend, bus, nil))
	defer a.Close()
	defer b.Close()

	var seen string
	b.OnChange(func(theme string) { seen = theme })

	a.SetTheme("Light")
	if got := b.Theme(); got != ThemeLight {
		t.Fatalf("other context Theme = %q, want %q", got, ThemeLight)
	}
	if seen != ThemeLight {
		t.Fatalf("OnChange saw %q, want %q", seen, ThemeLight)
	}
}
