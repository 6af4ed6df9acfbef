// Package mlb reads the day's games from the MLB Stats API schedule endpoint.
package mlb

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"time"

	"github.com/couchcryptid/gameday-weather-service/internal/adapter/upstream"
	"github.com/couchcryptid/gameday-weather-service/internal/domain"
	"github.com/couchcryptid/gameday-weather-service/internal/observability"
)

const (
	providerName   = "mlb"
	DefaultBaseURL = "https://statsapi.mlb.com/api/v1"
	gamedayURL     = "https://www.mlb.com/gameday/"
	sportMLB       = "1"
)

// Client implements domain.ScheduleSource.
type Client struct {
	upstream *upstream.Client
	baseURL  string
	logger   *slog.Logger
}

// NewClient creates a schedule client. An empty baseURL uses the public API.
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger, metrics *observability.Metrics) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		upstream: upstream.NewClient(providerName, timeout, metrics),
		baseURL:  baseURL,
		logger:   logger,
	}
}

// Schedule returns the games scheduled on date's calendar day, in schedule
// order. Entries are returned as listed, even when fields are missing or the
// start time does not parse; the caller decides what to drop. A transport or
// decode failure wraps domain.ErrScheduleUnavailable.
func (c *Client) Schedule(ctx context.Context, date time.Time) ([]domain.ScheduledEvent, error) {
	day := date.Format(time.DateOnly)
	params := url.Values{
		"sportId": {sportMLB},
		"date":    {day},
	}

	var resp scheduleResponse
	if err := c.upstream.GetJSON(ctx, c.baseURL+"/schedule?"+params.Encode(), &resp); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrScheduleUnavailable, day, err)
	}

	var events []domain.ScheduledEvent
	for _, d := range resp.Dates {
		for _, g := range d.Games {
			events = append(events, g.toEvent())
		}
	}

	c.logger.Debug("schedule fetched", "date", day, "games", len(events))
	return events, nil
}

// Stats API response types.

type scheduleResponse struct {
	Dates []scheduleDate `json:"dates"`
}

type scheduleDate struct {
	Date  string `json:"date"`
	Games []game `json:"games"`
}

type game struct {
	GamePK   int    `json:"gamePk"`
	GameDate string `json:"gameDate"`
	Teams    struct {
		Away side `json:"away"`
		Home side `json:"home"`
	} `json:"teams"`
	Venue struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	} `json:"venue"`
}

type side struct {
	Team struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	} `json:"team"`
}

func (g game) toEvent() domain.ScheduledEvent {
	event := domain.ScheduledEvent{
		GamePK:    g.GamePK,
		HomeName:  g.Teams.Home.Team.Name,
		AwayName:  g.Teams.Away.Team.Name,
		VenueName: g.Venue.Name,
	}
	if start, err := time.Parse(time.RFC3339, g.GameDate); err == nil {
		event.StartTimeUTC = start.UTC()
	}
	if g.GamePK != 0 {
		event.Link = gamedayURL + strconv.Itoa(g.GamePK)
	}
	return event
}
