package session

import (
	"context"
	"time"
)

// RunJanitor reclaims finished sessions on a fixed cadence until the context
// is canceled. It runs both eviction policies: TTL first, then the retention
// count. Safe to run concurrently with all foreground operations.
func (that *Manager) RunJanitor(ctx context.Context, interval, ttl time.Duration, keepFinished int) {
	log := that.logger.With("component", "janitor")

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info("janitor stopped")
			return
		case <-ticker.C:
			if removed := that.EvictStale(ttl); removed > 0 {
				log.Info("evicted stale finished games", "count", removed)
			}

			if removed := that.EvictOldestFinished(keepFinished); removed > 0 {
				log.Info("evicted old finished games beyond retention", "count", removed)
			}
		}
	}
}
