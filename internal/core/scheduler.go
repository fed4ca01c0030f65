package core

// scheduler.go refreshes the cached dataset in the background so edits to
// the published sheet show up without a restart. A failed refresh keeps the
// previous snapshot and is retried on the next tick.

import (
	"context"
	"log/slog"
	"time"
)

// StartRefreshScheduler reloads the dataset every interval until ctx is
// cancelled. An interval of zero or less returns immediately. The first
// reload happens one interval after start; the initial load stays lazy.
func (l *Loader) StartRefreshScheduler(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}

	slog.Info("refresh scheduler started", "interval", interval.String(), "source", l.url)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("refresh scheduler stopped")
			return
		case <-ticker.C:
			l.runRefresh(ctx)
		}
	}
}

func (l *Loader) runRefresh(ctx context.Context) {
	start := time.Now()
	if err := l.Reload(ctx); err != nil {
		slog.Warn("scheduled refresh failed",
			"error", err,
			"code", MapError(err).Code,
			"duration_ms", time.Since(start).Milliseconds(),
		)
		return
	}
	slog.Debug("scheduled refresh completed",
		"entries", l.Dataset().Len(),
		"duration_ms", time.Since(start).Milliseconds(),
	)
}
