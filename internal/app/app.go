package app

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/five82/reel/internal/auth"
	"github.com/five82/reel/internal/changebus"
	"github.com/five82/reel/internal/config"
	"github.com/five82/reel/internal/fetch"
	"github.com/five82/reel/internal/logging"
	"github.com/five82/reel/internal/prefs"
	"github.com/five82/reel/internal/session"
	"github.com/five82/reel/internal/storage"
	"github.com/five82/reel/internal/tmdb"
	"github.com/five82/reel/internal/ui"
	"github.com/five82/reel/internal/wishlist"
)

// Options configure the reel application.
type Options struct {
	ConfigPath string // empty uses default ~/.config/reel/config.toml
	Storage    string // overrides the configured backend when set
	WatchEvery int    // seconds; zero uses the configured interval
}

// Run boots the reel TUI until the user quits or the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if opts.Storage != "" {
		if cfg.Storage, err = config.ParseStorage(opts.Storage); err != nil {
			return err
		}
	}
	if opts.WatchEvery > 0 {
		cfg.WatchInterval = time.Duration(opts.WatchEvery) * time.Second
	}

	log, err := logging.New(cfg.LogPath(), cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	defer func() { _ = log.Sync() }()

	backend, err := openBackend(cfg)
	if err != nil {
		return fmt.Errorf("open %s storage: %w", cfg.Storage, err)
	}
	if backend != nil {
		defer func() {
			if err := backend.Close(); err != nil {
				log.Warn("close storage", zap.Error(err))
			}
		}()
	}

	api, err := tmdb.NewClient(cfg.APIBaseURL,
		tmdb.WithLanguage(cfg.Language),
		tmdb.WithRateLimit(cfg.RequestsPerSecond),
	)
	if err != nil {
		return fmt.Errorf("init catalog client: %w", err)
	}

	bus := changebus.New()
	kv := storage.NewAdapter(backend, bus, log)
	creds := auth.NewStore(kv)

	log.Info("starting reel",
		zap.String("storage", string(cfg.Storage)),
		zap.String("state_path", cfg.StatePath()),
		zap.String("context", kv.ID().String()),
		zap.Int("accounts", len(creds.Credentials())),
		zap.Duration("watch_interval", cfg.WatchInterval),
	)
	if !kv.Available() {
		log.Warn("persistence disabled; accounts, session and wishlist last only for this run")
	}

	sess := session.New(kv, log)
	defer sess.Close()
	wish := wishlist.New(kv, log)
	defer wish.Close()
	userPrefs := prefs.New(kv)
	defer userPrefs.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	StartWatcher(ctx, storage.NewWatcher(backend, bus, log), cfg.WatchInterval, log)

	registry := prometheus.NewRegistry()
	metrics := fetch.NewCollector(registry)
	defer logMetrics(log, registry)

	loaderOpts := []fetch.Option{
		fetch.WithCredentials(sess),
		fetch.WithMetrics(metrics),
		fetch.WithLogger(log),
	}
	pages := fetch.NewPageLoader(api, fetch.NewCache[tmdb.Page](), loaderOpts...)
	details := fetch.NewDetailLoader(api, fetch.NewCache[tmdb.MovieDetail](), loaderOpts...)

	return ui.Run(ui.Options{
		Context:      ctx,
		Auth:         auth.NewService(creds, sess, log),
		Session:      sess,
		Wishlist:     wish,
		Prefs:        userPrefs,
		Pages:        pages,
		Details:      details,
		Debouncer:    fetch.NewDebouncer(cfg.SearchDebounce),
		ImageBaseURL: cfg.ImageBaseURL,
		Logger:       log,
	})
}

// openBackend returns the configured backend, or nil when persistence is
// disabled.
func openBackend(cfg config.Config) (storage.Backend, error) {
	switch cfg.Storage {
	case config.StorageNone:
		return nil, nil
	case config.StorageMemory:
		return storage.NewMemoryBackend(), nil
	case config.StorageSQLite:
		return storage.NewSQLiteBackend(cfg.StatePath())
	default:
		return storage.NewFileBackend(cfg.StatePath())
	}
}

// logMetrics writes the fetch counters gathered during the session.
func logMetrics(log *zap.Logger, g prometheus.Gatherer) {
	families, err := g.Gather()
	if err != nil {
		log.Warn("gather metrics", zap.Error(err))
		return
	}
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			fields := []zap.Field{zap.String("metric", mf.GetName())}
			for _, lp := range m.GetLabel() {
				fields = append(fields, zap.String(lp.GetName(), lp.GetValue()))
			}
			fields = append(fields, zap.Float64("value", m.GetCounter().GetValue()))
			log.Info("fetch metrics", fields...)
		}
	}
}
