package mlb

import (
	"context"
	"log/slog"
	"time"

	"github.com/couchcryptid/gameday-weather-service/internal/cache"
	"github.com/couchcryptid/gameday-weather-service/internal/domain"
	"github.com/couchcryptid/gameday-weather-service/internal/observability"
)

const cacheName = "schedule"

// CachedSchedule wraps a ScheduleSource with a per-date cache.
type CachedSchedule struct {
	inner   domain.ScheduleSource
	cache   cache.Cache[[]domain.ScheduledEvent]
	logger  *slog.Logger
	metrics *observability.Metrics
}

// NewCachedSchedule creates a cache decorator around a schedule source.
func NewCachedSchedule(inner domain.ScheduleSource, c cache.Cache[[]domain.ScheduledEvent], logger *slog.Logger, metrics *observability.Metrics) *CachedSchedule {
	return &CachedSchedule{inner: inner, cache: c, logger: logger, metrics: metrics}
}

func (c *CachedSchedule) Schedule(ctx context.Context, date time.Time) ([]domain.ScheduledEvent, error) {
	// The cache is dedicated to schedules; its namespace supplies any prefix.
	key := date.Format(time.DateOnly)

	events, ok, err := c.cache.Get(ctx, key)
	switch {
	case err != nil:
		c.metrics.CacheLookups.WithLabelValues(cacheName, "error").Inc()
		c.logger.Warn("schedule cache read failed", "key", key, "error", err)
	case ok:
		c.metrics.CacheLookups.WithLabelValues(cacheName, "hit").Inc()
		return events, nil
	default:
		c.metrics.CacheLookups.WithLabelValues(cacheName, "miss").Inc()
	}

	events, err = c.inner.Schedule(ctx, date)
	if err != nil {
		return nil, err
	}
	// Only cache non-empty schedules so a slate published late is picked up.
	if len(events) > 0 {
		if err := c.cache.Set(ctx, key, events); err != nil {
			c.logger.Warn("schedule cache write failed", "key", key, "error", err)
		}
	}
	return events, nil
}
