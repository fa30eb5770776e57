package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Storage selects the persistence backend.
type Storage string

const (
	StorageFile   Storage = "file"
	StorageSQLite Storage = "sqlite"
	StorageMemory Storage = "memory"
	StorageNone   Storage = "none"
)

// ParseStorage validates a storage name.
func ParseStorage(name string) (Storage, error) {
	switch s := Storage(strings.ToLower(strings.TrimSpace(name))); s {
	case StorageFile, StorageSQLite, StorageMemory, StorageNone:
		return s, nil
	default:
		return "", fmt.Errorf("unknown storage %q (want file, sqlite, memory or none)", name)
	}
}

// Config holds reel's settings.
type Config struct {
	APIBaseURL        string
	ImageBaseURL      string
	Language          string
	Storage           Storage
	DataDir           string
	WatchInterval     time.Duration
	SearchDebounce    time.Duration
	RequestsPerSecond float64
	LogLevel          string
}

const (
	defaultConfigPath     = "~/.config/reel/config.toml"
	defaultAPIBaseURL     = "https://api.themoviedb.org/3"
	defaultImageBaseURL   = "https://image.tmdb.org/t/p/w342"
	defaultLanguage       = "en-US"
	defaultDataDir        = "~/.local/share/reel"
	defaultWatchInterval  = 2 * time.Second
	defaultSearchDebounce = 400 * time.Millisecond
	defaultRequestsPerSec = 20
	defaultLogLevel       = "info"
)

// Default returns the settings used when no config file exists.
func Default() Config {
	return Config{
		APIBaseURL:        defaultAPIBaseURL,
		ImageBaseURL:      defaultImageBaseURL,
		Language:          defaultLanguage,
		Storage:           StorageFile,
		DataDir:           mustExpand(defaultDataDir),
		WatchInterval:     defaultWatchInterval,
		SearchDebounce:    defaultSearchDebounce,
		RequestsPerSecond: defaultRequestsPerSec,
		LogLevel:          defaultLogLevel,
	}
}

// Load locates and parses the reel config, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		APIBaseURL        string   `toml:"api_base_url"`
		ImageBaseURL      string   `toml:"image_base_url"`
		Language          string   `toml:"language"`
		Storage           string   `toml:"storage"`
		DataDir           string   `toml:"data_dir"`
		WatchInterval     string   `toml:"watch_interval"`
		SearchDebounce    string   `toml:"search_debounce"`
		RequestsPerSecond *float64 `toml:"requests_per_second"`
		LogLevel          string   `toml:"log_level"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	cfg.APIBaseURL = orDefault(raw.APIBaseURL, defaultAPIBaseURL)
	cfg.ImageBaseURL = orDefault(raw.ImageBaseURL, defaultImageBaseURL)
	cfg.Language = orDefault(raw.Language, defaultLanguage)
	cfg.LogLevel = strings.ToLower(orDefault(raw.LogLevel, defaultLogLevel))
	cfg.DataDir = mustExpand(orDefault(raw.DataDir, defaultDataDir))

	if strings.TrimSpace(raw.Storage) != "" {
		if cfg.Storage, err = ParseStorage(raw.Storage); err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
	}
	if cfg.WatchInterval, err = parseDuration("watch_interval", raw.WatchInterval, defaultWatchInterval); err != nil {
		return Config{}, err
	}
	if cfg.SearchDebounce, err = parseDuration("search_debounce", raw.SearchDebounce, defaultSearchDebounce); err != nil {
		return Config{}, err
	}
	if raw.RequestsPerSecond != nil {
		if *raw.RequestsPerSecond < 0 {
			return Config{}, fmt.Errorf("parse config: requests_per_second must not be negative")
		}
		cfg.RequestsPerSecond = *raw.RequestsPerSecond
	}

	return cfg, nil
}

// StatePath returns the file backing the persistent store.
func (c Config) StatePath() string {
	name := "state.json"
	if c.Storage == StorageSQLite {
		name = "state.db"
	}
	return filepath.Join(c.dataDir(), name)
}

// LogPath returns the path of reel's log file.
func (c Config) LogPath() string {
	return filepath.Join(c.dataDir(), "reel.log")
}

func (c Config) dataDir() string {
	if strings.TrimSpace(c.DataDir) == "" {
		return mustExpand(defaultDataDir)
	}
	return c.DataDir
}

func orDefault(value, fallback string) string {
	if trimmed := strings.TrimSpace(value); trimmed != "" {
		return trimmed
	}
	return fallback
}

func parseDuration(key, value string, fallback time.Duration) (time.Duration, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(trimmed)
	if err != nil {
		return 0, fmt.Errorf("parse config: %s: %w", key, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("parse config: %s must not be negative", key)
	}
	return d, nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
