// Package upstream performs the outbound JSON GETs shared by every provider
// adapter. Each provider gets its own circuit breaker so a provider that keeps
// failing is skipped quickly instead of stalling every game in a report.
package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sony/gobreaker"

	"github.com/couchcryptid/gameday-weather-service/internal/observability"
)

// ErrCircuitOpen is returned while a provider's breaker rejects calls.
var ErrCircuitOpen = errors.New("circuit breaker open")

// tripAfter consecutive failures opens the breaker for openFor.
const (
	tripAfter = 5
	openFor   = time.Minute
)

// StatusError is a non-2xx response from a provider.
type StatusError struct {
	Provider   string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s API error: status %d: %s", e.Provider, e.StatusCode, e.Body)
}

// Client issues GET requests to one provider.
type Client struct {
	name       string
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker
	metrics    *observability.Metrics
}

// NewClient creates a client for the named provider. metrics may be nil.
func NewClient(name string, timeout time.Duration, metrics *observability.Metrics) *Client {
	return NewClientWithHTTP(name, &http.Client{Timeout: timeout}, metrics)
}

// NewClientWithHTTP creates a client around an existing *http.Client.
func NewClientWithHTTP(name string, httpClient *http.Client, metrics *observability.Metrics) *Client {
	return &Client{
		name:       name,
		httpClient: httpClient,
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:    name,
			Timeout: openFor,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= tripAfter
			},
		}),
		metrics: metrics,
	}
}

// Name returns the provider name.
func (c *Client) Name() string { return c.name }

// GetJSON fetches rawURL and decodes the JSON body into out. Non-2xx statuses
// return a *StatusError; malformed bodies return a decode error. There are no
// retries.
func (c *Client) GetJSON(ctx context.Context, rawURL string, out any) error {
	start := time.Now()
	_, err := c.breaker.Execute(func() (interface{}, error) {
		return nil, c.get(ctx, rawURL, out)
	})
	if c.metrics != nil {
		c.metrics.UpstreamDuration.WithLabelValues(c.name).Observe(time.Since(start).Seconds())
	}

	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return fmt.Errorf("%s: %w", c.name, ErrCircuitOpen)
	}
	return err
}

func (c *Client) get(ctx context.Context, rawURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s request: %w", c.name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &StatusError{Provider: c.name, StatusCode: resp.StatusCode, Body: string(body)}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", c.name, err)
	}
	return nil
}
