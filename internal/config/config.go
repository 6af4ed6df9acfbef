package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	"github.com/couchcryptid/gameday-weather-service/internal/domain"
)

// Unmapped venue policies.
const (
	UnmappedSkip    = "skip"
	UnmappedDegrade = "degrade"
)

// Venue coordinate sources.
const (
	VenueCoordinatesGeocode = "geocode"
	VenueCoordinatesStadium = "stadium"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string        `env:"HTTP_ADDR" validate:"required"`
	LogLevel        string        `env:"LOG_LEVEL" validate:"oneof=debug info warn error"`
	LogFormat       string        `env:"LOG_FORMAT" validate:"oneof=json text"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT"`
	HTTPTimeout     time.Duration `env:"HTTP_TIMEOUT"`

	// Report settings.
	ReportCron          string                   `env:"REPORT_CRON" validate:"required"`
	ReportLocation      *time.Location           `env:"REPORT_TIMEZONE" validate:"-"`
	TimeZonePolicy      domain.ZonePolicy        `env:"TIME_ZONE_POLICY"`
	Units               domain.UnitSystem        `env:"UNITS"`
	Precipitation       domain.PrecipitationUnit `env:"PRECIPITATION_MODE"`
	SampleFallback      domain.FallbackPolicy    `env:"SAMPLE_FALLBACK"`
	UnmappedVenuePolicy string                   `env:"UNMAPPED_VENUE_POLICY" validate:"oneof=skip degrade"`
	VenueCoordinates    string                   `env:"VENUE_COORDINATES" validate:"oneof=geocode stadium"`
	PacingInterval      time.Duration            `env:"PACING_INTERVAL"`

	// Memoization.
	ScheduleCacheTTL time.Duration `env:"SCHEDULE_CACHE_TTL"`
	GeocodeCacheTTL  time.Duration `env:"GEOCODE_CACHE_TTL"`
	CacheSize        int           `env:"CACHE_SIZE" validate:"min=1"`
	RedisAddr        string        `env:"REDIS_ADDR" validate:"omitempty,hostname_port"`
	RedisPassword    string        `env:"REDIS_PASSWORD"`

	// Upstream providers.
	MLBBaseURL            string `env:"MLB_BASE_URL" validate:"url"`
	OpenMeteoForecastURL  string `env:"OPENMETEO_FORECAST_URL" validate:"url"`
	OpenMeteoGeocodingURL string `env:"OPENMETEO_GEOCODING_URL" validate:"url"`
	MapboxToken           string `env:"MAPBOX_TOKEN"`
	MapboxEnabled         bool   `env:"MAPBOX_ENABLED"`

	// Kafka publication of report records.
	KafkaEnabled   bool     `env:"KAFKA_ENABLED"`
	KafkaBrokers   []string `env:"KAFKA_BROKERS" validate:"required_if=KafkaEnabled true,dive,hostname_port"`
	KafkaSinkTopic string   `env:"KAFKA_SINK_TOPIC" validate:"required_if=KafkaEnabled true"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report failures by environment variable name rather than Go field name.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		if name := f.Tag.Get("env"); name != "" {
			return name
		}
		return f.Name
	})
	return v
}

// Load reads configuration from environment variables, applying defaults where
// unset. A .env file in the working directory is loaded first when present;
// variables already set in the environment take precedence.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	shutdownTimeout, err := parseDuration("SHUTDOWN_TIMEOUT", "10s", false)
	if err != nil {
		return nil, err
	}
	httpTimeout, err := parseDuration("HTTP_TIMEOUT", "10s", false)
	if err != nil {
		return nil, err
	}
	pacing, err := parseDuration("PACING_INTERVAL", "500ms", true)
	if err != nil {
		return nil, err
	}
	scheduleTTL, err := parseDuration("SCHEDULE_CACHE_TTL", "1h", false)
	if err != nil {
		return nil, err
	}
	geocodeTTL, err := parseDuration("GEOCODE_CACHE_TTL", "24h", false)
	if err != nil {
		return nil, err
	}

	loc, err := time.LoadLocation(envOrDefault("REPORT_TIMEZONE", "America/New_York"))
	if err != nil {
		return nil, fmt.Errorf("invalid REPORT_TIMEZONE: %w", err)
	}
	policy, err := domain.ParseZonePolicy(envOrDefault("TIME_ZONE_POLICY", string(domain.ZonePolicyReporting)))
	if err != nil {
		return nil, fmt.Errorf("invalid TIME_ZONE_POLICY: %w", err)
	}
	units, err := domain.ParseUnitSystem(envOrDefault("UNITS", string(domain.Imperial)))
	if err != nil {
		return nil, fmt.Errorf("invalid UNITS: %w", err)
	}
	precip, err := domain.ParsePrecipitationMode(envOrDefault("PRECIPITATION_MODE", "probability"))
	if err != nil {
		return nil, fmt.Errorf("invalid PRECIPITATION_MODE: %w", err)
	}
	fallback, err := domain.ParseFallbackPolicy(envOrDefault("SAMPLE_FALLBACK", string(domain.FallbackFirst)))
	if err != nil {
		return nil, fmt.Errorf("invalid SAMPLE_FALLBACK: %w", err)
	}
	cacheSize, err := parseInt("CACHE_SIZE", 1000)
	if err != nil {
		return nil, err
	}

	mapboxToken := os.Getenv("MAPBOX_TOKEN")
	mapboxEnabled := mapboxToken != ""
	if v := os.Getenv("MAPBOX_ENABLED"); v != "" {
		mapboxEnabled = v == "true"
	}

	cfg := &Config{
		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
		LogFormat:       envOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,
		HTTPTimeout:     httpTimeout,

		ReportCron:          envOrDefault("REPORT_CRON", "0 9 * * *"),
		ReportLocation:      loc,
		TimeZonePolicy:      policy,
		Units:               units,
		Precipitation:       precip,
		SampleFallback:      fallback,
		UnmappedVenuePolicy: envOrDefault("UNMAPPED_VENUE_POLICY", UnmappedSkip),
		VenueCoordinates:    envOrDefault("VENUE_COORDINATES", VenueCoordinatesGeocode),
		PacingInterval:      pacing,

		ScheduleCacheTTL: scheduleTTL,
		GeocodeCacheTTL:  geocodeTTL,
		CacheSize:        cacheSize,
		RedisAddr:        os.Getenv("REDIS_ADDR"),
		RedisPassword:    os.Getenv("REDIS_PASSWORD"),

		MLBBaseURL:            envOrDefault("MLB_BASE_URL", "https://statsapi.mlb.com/api/v1"),
		OpenMeteoForecastURL:  envOrDefault("OPENMETEO_FORECAST_URL", "https://api.open-meteo.com/v1/forecast"),
		OpenMeteoGeocodingURL: envOrDefault("OPENMETEO_GEOCODING_URL", "https://geocoding-api.open-meteo.com/v1/search"),
		MapboxToken:           mapboxToken,
		MapboxEnabled:         mapboxEnabled,

		KafkaEnabled:   os.Getenv("KAFKA_ENABLED") == "true",
		KafkaBrokers:   parseList(envOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaSinkTopic: envOrDefault("KAFKA_SINK_TOPIC", "gameday-weather"),
	}

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if cfg.MapboxEnabled && cfg.MapboxToken == "" {
		return nil, errors.New("MAPBOX_ENABLED is true but MAPBOX_TOKEN is not set")
	}

	return cfg, nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseDuration(key, def string, allowZero bool) (time.Duration, error) {
	d, err := time.ParseDuration(envOrDefault(key, def))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	if d < 0 || (d == 0 && !allowZero) {
		return 0, fmt.Errorf("invalid %s: must be positive", key)
	}
	return d, nil
}

func parseInt(key string, def int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func parseList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
