package openmeteo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net/url"
	"strconv"
	"time"

	"github.com/couchcryptid/gameday-weather-service/internal/adapter/upstream"
	"github.com/couchcryptid/gameday-weather-service/internal/domain"
	"github.com/couchcryptid/gameday-weather-service/internal/observability"
)

const (
	forecastProvider       = "openmeteo_forecast"
	DefaultForecastBaseURL = "https://api.open-meteo.com/v1/forecast"
)

// ForecastClient implements domain.ForecastSource.
type ForecastClient struct {
	upstream *upstream.Client
	baseURL  string
	metrics  *observability.Metrics
	logger   *slog.Logger
}

// NewForecastClient creates a forecast client. An empty baseURL uses the
// public endpoint.
func NewForecastClient(baseURL string, timeout time.Duration, logger *slog.Logger, metrics *observability.Metrics) *ForecastClient {
	if baseURL == "" {
		baseURL = DefaultForecastBaseURL
	}
	return &ForecastClient{
		upstream: upstream.NewClient(forecastProvider, timeout, metrics),
		baseURL:  baseURL,
		metrics:  metrics,
		logger:   logger,
	}
}

// HourlyForecast fetches temperature, precipitation, and wind speed for each
// hour of req.Date in req.Location.
func (c *ForecastClient) HourlyForecast(ctx context.Context, req domain.ForecastRequest) (domain.HourlyForecastSeries, error) {
	loc := req.Location
	if loc == nil {
		loc = time.UTC
	}
	precipField := precipitationField(req.Precipitation)
	day := req.Date.In(loc).Format(time.DateOnly)

	params := url.Values{
		"latitude":         {strconv.FormatFloat(req.Coordinate.Lat, 'f', 4, 64)},
		"longitude":        {strconv.FormatFloat(req.Coordinate.Lon, 'f', 4, 64)},
		"hourly":           {"temperature_2m," + precipField + ",wind_speed_10m"},
		"timezone":         {loc.String()},
		"start_date":       {day},
		"end_date":         {day},
		"timeformat":       {"unixtime"},
		"temperature_unit": {"celsius"},
		"wind_speed_unit":  {"kmh"},
	}

	var resp forecastResponse
	if err := c.upstream.GetJSON(ctx, c.baseURL+"?"+params.Encode(), &resp); err != nil {
		c.observe("error")
		return domain.HourlyForecastSeries{}, fmt.Errorf("%w: %w", domain.ErrForecastUnavailable, err)
	}
	if resp.Error {
		c.observe("error")
		return domain.HourlyForecastSeries{}, fmt.Errorf("%w: %s", domain.ErrForecastUnavailable, resp.Reason)
	}

	series, err := resp.series(loc, precipField, req.Precipitation)
	if err != nil {
		c.observe("error")
		return domain.HourlyForecastSeries{}, fmt.Errorf("%w: %w", domain.ErrForecastUnavailable, err)
	}
	c.observe("success")
	c.logger.Debug("forecast fetched",
		"lat", req.Coordinate.Lat,
		"lon", req.Coordinate.Lon,
		"date", day,
		"hours", series.Len(),
	)
	return series, nil
}

func (c *ForecastClient) observe(outcome string) {
	if c.metrics != nil {
		c.metrics.ForecastRequests.WithLabelValues(outcome).Inc()
	}
}

func precipitationField(unit domain.PrecipitationUnit) string {
	if unit == domain.PrecipitationAmount {
		return "precipitation"
	}
	return "precipitation_probability"
}

type forecastResponse struct {
	Error  bool   `json:"error"`
	Reason string `json:"reason"`
	Hourly struct {
		Time                     []int64    `json:"time"`
		Temperature2m            []*float64 `json:"temperature_2m"`
		PrecipitationProbability []*float64 `json:"precipitation_probability"`
		Precipitation            []*float64 `json:"precipitation"`
		WindSpeed10m             []*float64 `json:"wind_speed_10m"`
	} `json:"hourly"`
}

var errNoHourly = errors.New("response has no hourly data")

func (r forecastResponse) series(loc *time.Location, precipField string, unit domain.PrecipitationUnit) (domain.HourlyForecastSeries, error) {
	if len(r.Hourly.Time) == 0 {
		return domain.HourlyForecastSeries{}, errNoHourly
	}
	precip := r.Hourly.PrecipitationProbability
	if precipField == "precipitation" {
		precip = r.Hourly.Precipitation
	}
	if unit == "" {
		unit = domain.PrecipitationProbability
	}

	ts := make([]time.Time, len(r.Hourly.Time))
	for i, sec := range r.Hourly.Time {
		ts[i] = time.Unix(sec, 0).In(loc)
	}
	series := domain.HourlyForecastSeries{
		Timestamps:        ts,
		Temperature:       values(r.Hourly.Temperature2m),
		Precipitation:     values(precip),
		WindSpeed:         values(r.Hourly.WindSpeed10m),
		Units:             domain.Metric,
		PrecipitationUnit: unit,
	}
	if err := series.Validate(); err != nil {
		return domain.HourlyForecastSeries{}, err
	}
	return series, nil
}

// values maps JSON nulls to NaN so the slices stay parallel to the timestamps.
func values(in []*float64) []float64 {
	out := make([]float64, len(in))
	for i, v := range in {
		if v == nil {
			out[i] = math.NaN()
			continue
		}
		out[i] = *v
	}
	return out
}
