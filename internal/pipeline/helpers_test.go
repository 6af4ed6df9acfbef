package pipeline_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/gameday-weather-service/internal/cache"
	"github.com/couchcryptid/gameday-weather-service/internal/domain"
	"github.com/couchcryptid/gameday-weather-service/internal/observability"
	"github.com/couchcryptid/gameday-weather-service/internal/pipeline"
	"github.com/couchcryptid/gameday-weather-service/internal/venue"
)

// --- mocks ---

type mockGeocoder struct {
	mu     sync.Mutex
	result domain.GeocodingResult
	err    error
	calls  int
}

func (m *mockGeocoder) ForwardGeocode(_ context.Context, _, _ string) (domain.GeocodingResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	return m.result, m.err
}

// mockForecast serves a 24-hour series for the requested local day.
// temps etc. override the values at the given hours.
type mockForecast struct {
	err      error
	hours    []int // hours to include; nil means 0..23
	temp     map[int]float64
	precip   map[int]float64
	wind     map[int]float64
	requests []domain.ForecastRequest
}

func (m *mockForecast) HourlyForecast(_ context.Context, req domain.ForecastRequest) (domain.HourlyForecastSeries, error) {
	m.requests = append(m.requests, req)
	if m.err != nil {
		return domain.HourlyForecastSeries{}, m.err
	}
	hours := m.hours
	if hours == nil {
		for h := 0; h < 24; h++ {
			hours = append(hours, h)
		}
	}
	s := domain.HourlyForecastSeries{Units: domain.Metric, PrecipitationUnit: req.Precipitation}
	for _, h := range hours {
		s.Timestamps = append(s.Timestamps, req.Date.Add(time.Duration(h)*time.Hour))
		s.Temperature = append(s.Temperature, lookup(m.temp, h, 20))
		s.Precipitation = append(s.Precipitation, lookup(m.precip, h, 0))
		s.WindSpeed = append(s.WindSpeed, lookup(m.wind, h, 5))
	}
	return s, nil
}

func lookup(m map[int]float64, h int, def float64) float64 {
	if v, ok := m[h]; ok {
		return v
	}
	return def
}

type mockSchedule struct {
	events []domain.ScheduledEvent
	err    error
	dates  []time.Time
}

func (m *mockSchedule) Schedule(_ context.Context, date time.Time) ([]domain.ScheduledEvent, error) {
	m.dates = append(m.dates, date)
	return m.events, m.err
}

type mockPublisher struct {
	reports []domain.Report
	err     error
}

func (m *mockPublisher) Publish(_ context.Context, report domain.Report) error {
	m.reports = append(m.reports, report)
	return m.err
}

var errNetwork = errors.New("dial tcp: connection refused")

// --- fixtures ---

var bostonGeocode = domain.GeocodingResult{Lat: 42.3601, Lon: -71.0589, PlaceName: "Boston, Massachusetts, United States"}

func fenwayEvent() domain.ScheduledEvent {
	return domain.ScheduledEvent{
		GamePK:       745123,
		HomeName:     "Boston Red Sox",
		AwayName:     "New York Yankees",
		VenueName:    "Fenway Park",
		StartTimeUTC: time.Date(2024, 7, 4, 23, 5, 0, 0, time.UTC),
		Link:         "https://www.mlb.com/gameday/745123",
	}
}

func neutralSiteEvent() domain.ScheduledEvent {
	return domain.ScheduledEvent{
		GamePK:       745999,
		HomeName:     "Home Club",
		AwayName:     "Away Club",
		VenueName:    "Neutral Site X",
		StartTimeUTC: time.Date(2024, 7, 4, 18, 0, 0, 0, time.UTC),
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func eastern(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)
	return loc
}

type joinerDeps struct {
	geocoder *mockGeocoder
	forecast *mockForecast
	opts     pipeline.JoinOptions
}

func newJoiner(t *testing.T, deps joinerDeps) *pipeline.Joiner {
	t.Helper()
	metrics := observability.NewMetricsForTesting()
	resolver := venue.NewResolver(
		cache.NewMemory[domain.Coordinate](100, 24*time.Hour, clockwork.NewFakeClock()),
		nil,
		discardLogger(),
		metrics,
		venue.Provider{Name: "primary", Geocoder: deps.geocoder},
	)
	opts := deps.opts
	if opts.Normalizer == (domain.TimeZoneNormalizer{}) {
		opts.Normalizer = domain.NewTimeZoneNormalizer(domain.ZonePolicyReporting, eastern(t))
	}
	return pipeline.NewJoiner(resolver, deps.forecast, nil, opts, discardLogger(), metrics)
}
