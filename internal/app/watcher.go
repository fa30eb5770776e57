package app

import (
	"context"
	"time"

	"go.uber.org/zap"
)

const (
	defaultWatchInterval = 2 * time.Second
	maxBackoff           = 30 * time.Second
)

// poller is the part of storage.Watcher the loop drives.
type poller interface {
	Poll() ([]string, error)
}

// StartWatcher launches a background goroutine that polls the backend for
// changes made by other processes. Failed polls back off exponentially up to
// maxBackoff. It returns immediately.
func StartWatcher(ctx context.Context, w poller, interval time.Duration, log *zap.Logger) {
	if interval <= 0 {
		interval = defaultWatchInterval
	}
	if log == nil {
		log = zap.NewNop()
	}
	go watchLoop(ctx, w, interval, log)
}

func watchLoop(ctx context.Context, w poller, interval time.Duration, log *zap.Logger) {
	failures := 0
	timer := time.NewTimer(0)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
		}

		changed, err := w.Poll()
		switch {
		case err != nil:
			failures++
			log.Warn("storage poll failed", zap.Int("failures", failures), zap.Error(err))
		case failures > 0:
			log.Info("storage poll recovered", zap.Int("after_failures", failures))
			failures = 0
		}
		if len(changed) > 0 {
			log.Debug("external changes", zap.Strings("keys", changed))
		}
		timer.Reset(calculateBackoff(failures, interval))
	}
}

// calculateBackoff doubles base for every consecutive failure, capped at
// maxBackoff.
func calculateBackoff(failures int, base time.Duration) time.Duration {
	if failures <= 0 {
		return base
	}
	d := base
	for range failures {
		d *= 2
		if d >= maxBackoff {
			return maxBackoff
		}
	}
	return d
}
