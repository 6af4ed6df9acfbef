package openmeteo

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/couchcryptid/gameday-weather-service/internal/adapter/upstream"
	"github.com/couchcryptid/gameday-weather-service/internal/domain"
	"github.com/couchcryptid/gameday-weather-service/internal/observability"
)

const (
	geocodingProvider       = "openmeteo"
	DefaultGeocodingBaseURL = "https://geocoding-api.open-meteo.com/v1/search"
	geocodingCandidates     = 10
)

// GeocodingClient implements domain.Geocoder using the Open-Meteo search API.
// The API matches on name only, so candidates are filtered by region.
type GeocodingClient struct {
	upstream *upstream.Client
	baseURL  string
	metrics  *observability.Metrics
	logger   *slog.Logger
}

// NewGeocodingClient creates a geocoding client. An empty baseURL uses the
// public endpoint.
func NewGeocodingClient(baseURL string, timeout time.Duration, logger *slog.Logger, metrics *observability.Metrics) *GeocodingClient {
	if baseURL == "" {
		baseURL = DefaultGeocodingBaseURL
	}
	return &GeocodingClient{
		upstream: upstream.NewClient(geocodingProvider, timeout, metrics),
		baseURL:  baseURL,
		metrics:  metrics,
		logger:   logger,
	}
}

// ForwardGeocode returns the first candidate named name whose first-level
// administrative area equals region. No such candidate is an empty result.
func (c *GeocodingClient) ForwardGeocode(ctx context.Context, name, region string) (domain.GeocodingResult, error) {
	params := url.Values{
		"name":     {name},
		"count":    {fmt.Sprint(geocodingCandidates)},
		"language": {"en"},
		"format":   {"json"},
	}

	var resp geocodingResponse
	if err := c.upstream.GetJSON(ctx, c.baseURL+"?"+params.Encode(), &resp); err != nil {
		c.observe("error")
		return domain.GeocodingResult{}, fmt.Errorf("geocode %q: %w", name, err)
	}

	for _, r := range resp.Results {
		if region != "" && !strings.EqualFold(r.Admin1, region) {
			continue
		}
		c.observe("success")
		return domain.GeocodingResult{
			Lat:        r.Latitude,
			Lon:        r.Longitude,
			PlaceName:  placeName(r),
			Confidence: 1,
		}, nil
	}

	c.observe("empty")
	c.logger.Debug("no geocoding candidate in region",
		"name", name,
		"region", region,
		"candidates", len(resp.Results),
	)
	return domain.GeocodingResult{}, nil
}

func (c *GeocodingClient) observe(outcome string) {
	if c.metrics != nil {
		c.metrics.GeocodeRequests.WithLabelValues(geocodingProvider, outcome).Inc()
	}
}

func placeName(r geocodingResult) string {
	parts := []string{r.Name}
	if r.Admin1 != "" {
		parts = append(parts, r.Admin1)
	}
	if r.Country != "" {
		parts = append(parts, r.Country)
	}
	return strings.Join(parts, ", ")
}

type geocodingResponse struct {
	Results []geocodingResult `json:"results"`
}

type geocodingResult struct {
	Name        string  `json:"name"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	CountryCode string  `json:"country_code"`
	Country     string  `json:"country"`
	Admin1      string  `json:"admin1"`
	Timezone    string  `json:"timezone"`
}
