package openmeteo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/gameday-weather-service/internal/observability"
)

const arlingtonResults = `{"results":[
	{"name":"Arlington","latitude":38.88101,"longitude":-77.10428,"country_code":"US","country":"United States","admin1":"Virginia","timezone":"America/New_York"},
	{"name":"Arlington","latitude":32.73569,"longitude":-97.10807,"country_code":"US","country":"United States","admin1":"Texas","timezone":"America/Chicago"}
]}`

func testGeocodingClient(baseURL string) *GeocodingClient {
	return NewGeocodingClient(baseURL, 5*time.Second, discardLogger(), observability.NewMetricsForTesting())
}

func TestForwardGeocode_MatchesRegion(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "Arlington", q.Get("name"))
		assert.Equal(t, "10", q.Get("count"))
		assert.Equal(t, "en", q.Get("language"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(arlingtonResults))
	}))
	defer srv.Close()

	result, err := testGeocodingClient(srv.URL).ForwardGeocode(context.Background(), "Arlington", "texas")
	require.NoError(t, err)

	assert.InDelta(t, 32.73569, result.Lat, 1e-9)
	assert.InDelta(t, -97.10807, result.Lon, 1e-9)
	assert.Equal(t, "Arlington, Texas, United States", result.PlaceName)
}

func TestForwardGeocode_NoRegionTakesFirst(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(arlingtonResults))
	}))
	defer srv.Close()

	result, err := testGeocodingClient(srv.URL).ForwardGeocode(context.Background(), "Arlington", "")
	require.NoError(t, err)
	assert.InDelta(t, 38.88101, result.Lat, 1e-9)
}

func TestForwardGeocode_NoCandidateInRegion(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(arlingtonResults))
	}))
	defer srv.Close()

	result, err := testGeocodingClient(srv.URL).ForwardGeocode(context.Background(), "Arlington", "Ontario")
	require.NoError(t, err)
	assert.True(t, result.Empty())
}

func TestForwardGeocode_NoResultsField(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"generationtime_ms":0.5}`))
	}))
	defer srv.Close()

	result, err := testGeocodingClient(srv.URL).ForwardGeocode(context.Background(), "Nowhere", "Texas")
	require.NoError(t, err)
	assert.True(t, result.Empty())
}

func TestForwardGeocode_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := testGeocodingClient(srv.URL).ForwardGeocode(context.Background(), "Boston", "Massachusetts")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
}
