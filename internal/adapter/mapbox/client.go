package mapbox

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/couchcryptid/gameday-weather-service/internal/adapter/upstream"
	"github.com/couchcryptid/gameday-weather-service/internal/domain"
	"github.com/couchcryptid/gameday-weather-service/internal/observability"
)

const (
	providerName   = "mapbox"
	defaultBaseURL = "https://api.mapbox.com/geocoding/v5/mapbox.places"
)

// Client implements domain.Geocoder using the Mapbox Geocoding API.
type Client struct {
	token    string
	upstream *upstream.Client
	baseURL  string
	metrics  *observability.Metrics
	logger   *slog.Logger
}

// NewClient creates a Mapbox geocoding client.
func NewClient(token string, timeout time.Duration, logger *slog.Logger, metrics *observability.Metrics) *Client {
	return &Client{
		token:    token,
		upstream: upstream.NewClient(providerName, timeout, metrics),
		baseURL:  defaultBaseURL,
		metrics:  metrics,
		logger:   logger,
	}
}

// ForwardGeocode converts a city and region (state or province) to coordinates.
func (c *Client) ForwardGeocode(ctx context.Context, name, region string) (domain.GeocodingResult, error) {
	query := name
	if region != "" {
		query = fmt.Sprintf("%s, %s", name, region)
	}

	u := fmt.Sprintf("%s/%s.json", c.baseURL, url.PathEscape(query))
	params := url.Values{
		"access_token": {c.token},
		"limit":        {"1"},
		"types":        {"place,locality"},
	}

	var resp response
	if err := c.upstream.GetJSON(ctx, u+"?"+params.Encode(), &resp); err != nil {
		c.observe("error")
		return domain.GeocodingResult{}, fmt.Errorf("forward geocode %q: %w", query, err)
	}

	if len(resp.Features) == 0 {
		c.observe("empty")
		c.logger.Debug("mapbox returned no features", "query", query)
		return domain.GeocodingResult{}, nil
	}

	f := resp.Features[0]
	result := domain.GeocodingResult{
		PlaceName:  f.PlaceName,
		Confidence: f.Relevance,
	}
	if len(f.Center) == 2 {
		result.Lon = f.Center[0]
		result.Lat = f.Center[1]
	}
	c.observe("success")
	return result, nil
}

func (c *Client) observe(outcome string) {
	if c.metrics != nil {
		c.metrics.GeocodeRequests.WithLabelValues(providerName, outcome).Inc()
	}
}

// Mapbox API response types.

type response struct {
	Features []feature `json:"features"`
}

type feature struct {
	Center    []float64 `json:"center"` // [lon, lat]
	PlaceName string    `json:"place_name"`
	Relevance float64   `json:"relevance"`
}
