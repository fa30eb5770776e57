package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestLoad_MissingConfigFallsBackToDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := Load(filepath.Join(home, "does-not-exist.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.APIBaseURL != defaultAPIBaseURL {
		t.Fatalf("APIBaseURL = %q, want %q", cfg.APIBaseURL, defaultAPIBaseURL)
	}
	if cfg.Storage != StorageFile {
		t.Fatalf("Storage = %q, want %q", cfg.Storage, StorageFile)
	}
	if cfg.WatchInterval != 2*time.Second || cfg.SearchDebounce != 400*time.Millisecond {
		t.Fatalf("durations = %v/%v, want 2s/400ms", cfg.WatchInterval, cfg.SearchDebounce)
	}
	if cfg.RequestsPerSecond != 20 {
		t.Fatalf("RequestsPerSecond = %v, want 20", cfg.RequestsPerSecond)
	}

	wantDataDir, err := expandPath(defaultDataDir)
	if err != nil {
		t.Fatalf("expandPath(defaultDataDir) returned error: %v", err)
	}
	if cfg.DataDir != wantDataDir {
		t.Fatalf("DataDir = %q, want %q", cfg.DataDir, wantDataDir)
	}
	if cfg.StatePath() != filepath.Join(wantDataDir, "state.json") {
		t.Fatalf("StatePath = %q, want state.json under %q", cfg.StatePath(), wantDataDir)
	}
}

func TestLoad_ParsesAndTrimsConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	path := writeConfig(t, `
api_base_url = "  http://localhost:8080/3  "
language = " fr-FR "
storage = " SQLite "
data_dir = "  ~/.reel  "
watch_interval = "500ms"
search_debounce = "1s"
requests_per_second = 0.0
log_level = "DEBUG"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.APIBaseURL != "http://localhost:8080/3" || cfg.Language != "fr-FR" {
		t.Fatalf("APIBaseURL/Language = %q/%q", cfg.APIBaseURL, cfg.Language)
	}
	if cfg.ImageBaseURL != defaultImageBaseURL {
		t.Fatalf("ImageBaseURL = %q, want default", cfg.ImageBaseURL)
	}
	if cfg.Storage != StorageSQLite {
		t.Fatalf("Storage = %q, want sqlite", cfg.Storage)
	}
	if !strings.HasPrefix(cfg.DataDir, home) {
		t.Fatalf("DataDir = %q, want it under HOME %q", cfg.DataDir, home)
	}
	if cfg.StatePath() != filepath.Join(cfg.DataDir, "state.db") {
		t.Fatalf("StatePath = %q, want state.db", cfg.StatePath())
	}
	if cfg.WatchInterval != 500*time.Millisecond || cfg.SearchDebounce != time.Second {
		t.Fatalf("durations = %v/%v", cfg.WatchInterval, cfg.SearchDebounce)
	}
	if cfg.RequestsPerSecond != 0 {
		t.Fatalf("RequestsPerSecond = %v, want explicit 0", cfg.RequestsPerSecond)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("LogLevel = %q, want debug", cfg.LogLevel)
	}
}

func TestLoad_EmptyValuesUseDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	path := writeConfig(t, `
api_base_url = "   "
storage = ""
watch_interval = " "
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.APIBaseURL != defaultAPIBaseURL {
		t.Fatalf("APIBaseURL = %q, want %q", cfg.APIBaseURL, defaultAPIBaseURL)
	}
	if cfg.Storage != StorageFile || cfg.WatchInterval != defaultWatchInterval {
		t.Fatalf("Storage/WatchInterval = %q/%v, want defaults", cfg.Storage, cfg.WatchInterval)
	}
}

func TestLoad_InvalidTOMLFails(t *testing.T) {
	_, err := Load(writeConfig(t, `api_base_url = [`))
	if err == nil {
		t.Fatalf("Load returned nil error, want parse error")
	}
	if !strings.Contains(err.Error(), "parse config") {
		t.Fatalf("Load error = %q, want it to mention parse config", err.Error())
	}
}

func TestLoad_InvalidValuesFail(t *testing.T) {
	for _, body := range []string{
		`storage = "redis"`,
		`watch_interval = "soon"`,
		`search_debounce = "-1s"`,
		`requests_per_second = -3.5`,
	} {
		if _, err := Load(writeConfig(t, body)); err == nil {
			t.Fatalf("Load(%s) returned nil error, want error", body)
		}
	}
}

func TestParseStorage(t *testing.T) {
	for _, name := range []string{"file", "SQLITE", " memory ", "none"} {
		if _, err := ParseStorage(name); err != nil {
			t.Fatalf("ParseStorage(%q) returned error: %v", name, err)
		}
	}
	if _, err := ParseStorage("bolt"); err == nil {
		t.Fatalf("ParseStorage(bolt) returned nil error")
	}
}

func TestExpandPath_ExpandsTildeAndReturnsAbs(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := expandPath("~/a/b")
	if err != nil {
		t.Fatalf("expandPath returned error: %v", err)
	}
	want := filepath.Join(home, "a/b")
	if got != want {
		t.Fatalf("expandPath = %q, want %q", got, want)
	}
}

func TestExpandPath_EmptyErrors(t *testing.T) {
	if _, err := expandPath("   "); err == nil {
		t.Fatalf("expandPath returned nil error, want error")
	}
}

func TestLogPath_DefaultsWhenDataDirEmpty(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	var cfg Config
	got := cfg.LogPath()
	if !strings.HasPrefix(got, home) {
		t.Fatalf("LogPath = %q, want it under HOME %q", got, home)
	}
	if !strings.HasSuffix(got, filepath.FromSlash("/reel.log")) {
		t.Fatalf("LogPath = %q, want it to end with /reel.log", got)
	}
}
