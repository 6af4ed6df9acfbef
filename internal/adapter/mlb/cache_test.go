package mlb

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/gameday-weather-service/internal/cache"
	"github.com/couchcryptid/gameday-weather-service/internal/domain"
	"github.com/couchcryptid/gameday-weather-service/internal/observability"
)

type countingSchedule struct {
	calls  int
	events []domain.ScheduledEvent
	err    error
}

func (c *countingSchedule) Schedule(_ context.Context, _ time.Time) ([]domain.ScheduledEvent, error) {
	c.calls++
	return c.events, c.err
}

var july4 = time.Date(2024, 7, 4, 0, 0, 0, 0, time.UTC)

func newCached(inner domain.ScheduleSource, clock clockwork.Clock) *CachedSchedule {
	return NewCachedSchedule(inner,
		cache.NewMemory[[]domain.ScheduledEvent](10, time.Hour, clock),
		discardLogger(),
		observability.NewMetricsForTesting(),
	)
}

func TestCachedSchedule_HitWithinTTL(t *testing.T) {
	inner := &countingSchedule{events: []domain.ScheduledEvent{{GamePK: 1}}}
	clock := clockwork.NewFakeClock()
	c := newCached(inner, clock)

	first, err := c.Schedule(context.Background(), july4)
	require.NoError(t, err)
	clock.Advance(30 * time.Minute)
	second, err := c.Schedule(context.Background(), july4)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, inner.calls)
}

func TestCachedSchedule_ExpiresAfterTTL(t *testing.T) {
	inner := &countingSchedule{events: []domain.ScheduledEvent{{GamePK: 1}}}
	clock := clockwork.NewFakeClock()
	c := newCached(inner, clock)

	_, err := c.Schedule(context.Background(), july4)
	require.NoError(t, err)
	clock.Advance(time.Hour)
	_, err = c.Schedule(context.Background(), july4)
	require.NoError(t, err)

	assert.Equal(t, 2, inner.calls)
}

func TestCachedSchedule_KeyedByDate(t *testing.T) {
	inner := &countingSchedule{events: []domain.ScheduledEvent{{GamePK: 1}}}
	c := newCached(inner, clockwork.NewFakeClock())

	_, _ = c.Schedule(context.Background(), july4)
	_, _ = c.Schedule(context.Background(), july4.AddDate(0, 0, 1))

	assert.Equal(t, 2, inner.calls)
}

func TestCachedSchedule_EmptyNotCached(t *testing.T) {
	inner := &countingSchedule{}
	c := newCached(inner, clockwork.NewFakeClock())

	_, _ = c.Schedule(context.Background(), july4)
	_, _ = c.Schedule(context.Background(), july4)

	assert.Equal(t, 2, inner.calls)
}

func TestCachedSchedule_ErrorNotCached(t *testing.T) {
	inner := &countingSchedule{err: errors.New("boom")}
	c := newCached(inner, clockwork.NewFakeClock())

	_, err := c.Schedule(context.Background(), july4)
	require.Error(t, err)
	_, err = c.Schedule(context.Background(), july4)
	require.Error(t, err)

	assert.Equal(t, 2, inner.calls)
}

type recordingCache struct {
	cache.Cache[[]domain.ScheduledEvent]
	keys []string
}

func (r *recordingCache) Get(ctx context.Context, key string) ([]domain.ScheduledEvent, bool, error) {
	r.keys = append(r.keys, key)
	return r.Cache.Get(ctx, key)
}

func (r *recordingCache) Set(ctx context.Context, key string, value []domain.ScheduledEvent) error {
	r.keys = append(r.keys, key)
	return r.Cache.Set(ctx, key, value)
}

func TestCachedSchedule_KeyIsBareDate(t *testing.T) {
	rec := &recordingCache{Cache: cache.NewMemory[[]domain.ScheduledEvent](10, time.Hour, clockwork.NewFakeClock())}
	inner := &countingSchedule{events: []domain.ScheduledEvent{{GamePK: 1}}}
	c := NewCachedSchedule(inner, rec, discardLogger(), observability.NewMetricsForTesting())

	_, err := c.Schedule(context.Background(), july4)
	require.NoError(t, err)

	assert.Equal(t, []string{"2024-07-04", "2024-07-04"}, rec.keys)
}
