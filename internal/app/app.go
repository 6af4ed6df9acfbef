// Package app wires configuration into a ready-to-run report Runner.
package app

import (
	"log/slog"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"

	"github.com/couchcryptid/gameday-weather-service/internal/adapter/kafka"
	"github.com/couchcryptid/gameday-weather-service/internal/adapter/mapbox"
	"github.com/couchcryptid/gameday-weather-service/internal/adapter/mlb"
	"github.com/couchcryptid/gameday-weather-service/internal/adapter/openmeteo"
	"github.com/couchcryptid/gameday-weather-service/internal/cache"
	"github.com/couchcryptid/gameday-weather-service/internal/config"
	"github.com/couchcryptid/gameday-weather-service/internal/domain"
	"github.com/couchcryptid/gameday-weather-service/internal/observability"
	"github.com/couchcryptid/gameday-weather-service/internal/pipeline"
	"github.com/couchcryptid/gameday-weather-service/internal/venue"
)

const redisKeyPrefix = "gameday:"

// App holds the wired Runner and the resources that must be released on exit.
type App struct {
	Runner *pipeline.Runner

	logger  *slog.Logger
	closers []namedCloser
}

type namedCloser struct {
	name  string
	close func() error
}

// New builds every collaborator from cfg. Kafka publication is wired only
// when cfg.KafkaEnabled is set.
func New(cfg *config.Config, logger *slog.Logger, metrics *observability.Metrics) *App {
	a := &App{logger: logger}
	clock := clockwork.NewRealClock()

	geocodeCache, scheduleCache := a.caches(cfg, clock)

	pacer := NewPacer(cfg.PacingInterval)

	var schedule domain.ScheduleSource = mlb.NewClient(cfg.MLBBaseURL, cfg.HTTPTimeout, logger, metrics)
	schedule = mlb.NewCachedSchedule(schedule, scheduleCache, logger, metrics)

	var providers []venue.Provider
	if cfg.MapboxEnabled {
		providers = append(providers, venue.Provider{
			Name:     "mapbox",
			Geocoder: mapbox.NewClient(cfg.MapboxToken, cfg.HTTPTimeout, logger, metrics),
		})
		logger.Info("mapbox geocoding enabled", "timeout", cfg.HTTPTimeout)
	} else {
		logger.Info("mapbox geocoding disabled")
	}
	providers = append(providers, venue.Provider{
		Name:     "openmeteo",
		Geocoder: openmeteo.NewGeocodingClient(cfg.OpenMeteoGeocodingURL, cfg.HTTPTimeout, logger, metrics),
	})
	resolver := venue.NewResolver(geocodeCache, pacer, logger, metrics, providers...)
	if cfg.VenueCoordinates == config.VenueCoordinatesStadium {
		resolver.WithStadiumCoordinates()
		logger.Info("using stadium coordinates where known")
	}

	forecast := openmeteo.NewForecastClient(cfg.OpenMeteoForecastURL, cfg.HTTPTimeout, logger, metrics)

	joiner := pipeline.NewJoiner(resolver, forecast, pacer, pipeline.JoinOptions{
		Normalizer:        domain.NewTimeZoneNormalizer(cfg.TimeZonePolicy, cfg.ReportLocation),
		Selector:          domain.SampleSelector{Units: cfg.Units, Fallback: cfg.SampleFallback},
		Precipitation:     cfg.Precipitation,
		DegradeUnresolved: cfg.UnmappedVenuePolicy == config.UnmappedDegrade,
	}, logger, metrics)

	var publisher pipeline.ReportPublisher
	if cfg.KafkaEnabled {
		p := kafka.NewPublisher(cfg, logger, metrics)
		a.closers = append(a.closers, namedCloser{"kafka publisher", p.Close})
		publisher = p
		logger.Info("kafka publication enabled", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaSinkTopic)
	}

	a.Runner = pipeline.NewRunner(schedule, joiner, publisher, clock, cfg.ReportLocation, logger, metrics)
	return a
}

func (a *App) caches(cfg *config.Config, clock clockwork.Clock) (cache.Cache[domain.Coordinate], cache.Cache[[]domain.ScheduledEvent]) {
	if cfg.RedisAddr == "" {
		return cache.NewMemory[domain.Coordinate](cfg.CacheSize, cfg.GeocodeCacheTTL, clock),
			cache.NewMemory[[]domain.ScheduledEvent](cfg.CacheSize, cfg.ScheduleCacheTTL, clock)
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
	a.closers = append(a.closers, namedCloser{"redis client", client.Close})
	a.logger.Info("redis cache enabled", "addr", cfg.RedisAddr)
	return cache.NewRedis[domain.Coordinate](client, redisKeyPrefix+"geocode:", cfg.GeocodeCacheTTL),
		cache.NewRedis[[]domain.ScheduledEvent](client, redisKeyPrefix+"schedule:", cfg.ScheduleCacheTTL)
}

// Close releases resources in reverse order of creation.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		c := a.closers[i]
		if err := c.close(); err != nil {
			a.logger.Error(c.name+" close error", "error", err)
		}
	}
}

// NewPacer returns a limiter allowing one external call per interval.
// A non-positive interval disables pacing.
func NewPacer(interval time.Duration) *rate.Limiter {
	if interval <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	return rate.NewLimiter(rate.Every(interval), 1)
}
