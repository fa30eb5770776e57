// Package config loads reel's TOML configuration.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/reel/config.toml (default)
//  3. If the config file doesn't exist, fall back to Default()
//  4. If the file exists but fields are missing or blank, use defaults
//
// # TOML Format
//
// Every field is optional:
//
//	api_base_url        = "https://api.themoviedb.org/3"
//	image_base_url      = "https://image.tmdb.org/t/p/w342"
//	language            = "en-US"
//	storage             = "file"   # file | sqlite | memory | none
//	data_dir            = "~/.local/share/reel"
//	watch_interval      = "2s"     # "0s" disables cross-process sync
//	search_debounce     = "400ms"
//	requests_per_second = 20       # 0 disables rate limiting
//	log_level           = "info"
//
// Tilde expansion is performed for the config path and data_dir.
//
// # Derived Paths
//
//   - StatePath: <data_dir>/state.json, or state.db for sqlite storage
//   - LogPath: <data_dir>/reel.log
//
// # Error Handling
//
// Load returns errors for path expansion failures, file read errors (except
// os.ErrNotExist, which triggers defaults), TOML parsing errors and invalid
// values (unknown storage, malformed or negative durations, negative rates).
// Missing config files are NOT an error.
package config
