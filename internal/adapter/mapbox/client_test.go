package mapbox

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/gameday-weather-service/internal/adapter/upstream"
	"github.com/couchcryptid/gameday-weather-service/internal/observability"
)

const (
	testToken         = "test-token"
	contentTypeJSON   = "application/json"
	headerContentType = "Content-Type"
)

func testClient(baseURL, token string, timeout time.Duration) *Client {
	metrics := observability.NewMetricsForTesting()
	return &Client{
		token:    token,
		upstream: upstream.NewClientWithHTTP(providerName, &http.Client{Timeout: timeout}, metrics),
		baseURL:  baseURL,
		metrics:  metrics,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func TestClient_ForwardGeocode_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/Boston, MA.json", r.URL.Path)
		assert.Equal(t, "1", r.URL.Query().Get("limit"))
		assert.Equal(t, testToken, r.URL.Query().Get("access_token"))

		resp := response{
			Features: []feature{
				{
					Center:    []float64{-71.0589, 42.3601},
					PlaceName: "Boston, Massachusetts, United States",
					Relevance: 0.95,
				},
			},
		}
		w.Header().Set(headerContentType, contentTypeJSON)
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
	defer srv.Close()

	c := testClient(srv.URL, testToken, 5*time.Second)
	result, err := c.ForwardGeocode(context.Background(), "Boston", "MA")
	require.NoError(t, err)

	assert.Equal(t, 42.3601, result.Lat)
	assert.Equal(t, -71.0589, result.Lon)
	assert.Equal(t, "Boston, Massachusetts, United States", result.PlaceName)
	assert.Equal(t, 0.95, result.Confidence)
}

func TestClient_ForwardGeocode_NoResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set(headerContentType, contentTypeJSON)
		require.NoError(t, json.NewEncoder(w).Encode(response{Features: []feature{}}))
	}))
	defer srv.Close()

	c := testClient(srv.URL, testToken, 5*time.Second)
	result, err := c.ForwardGeocode(context.Background(), "Nowhere", "XX")
	require.NoError(t, err)
	assert.True(t, result.Empty())
}

func TestClient_ForwardGeocode_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"Not Authorized"}`))
	}))
	defer srv.Close()

	c := testClient(srv.URL, "bad-token", 5*time.Second)

	_, err := c.ForwardGeocode(context.Background(), "Boston", "MA")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}

func TestClient_ForwardGeocode_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := testClient(srv.URL, testToken, 50*time.Millisecond)

	_, err := c.ForwardGeocode(context.Background(), "Boston", "MA")
	require.Error(t, err)
}

func TestClient_ForwardGeocode_NoRegion(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/Toronto.json", r.URL.Path)
		w.Header().Set(headerContentType, contentTypeJSON)
		require.NoError(t, json.NewEncoder(w).Encode(response{Features: []feature{
			{Center: []float64{-79.3832, 43.6532}, PlaceName: "Toronto, Ontario, Canada", Relevance: 1},
		}}))
	}))
	defer srv.Close()

	c := testClient(srv.URL, testToken, 5*time.Second)
	result, err := c.ForwardGeocode(context.Background(), "Toronto", "")
	require.NoError(t, err)
	assert.Equal(t, 43.6532, result.Lat)
}
