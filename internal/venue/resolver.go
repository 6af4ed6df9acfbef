// Package venue resolves a schedule's venue name to a location label and
// coordinates. The venue-to-city mapping is static; coordinates come from
// geocoding providers tried in order and are memoized per location label, or
// from the table's ballpark coordinates when the resolver is set to use them.
package venue

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/couchcryptid/gameday-weather-service/internal/cache"
	"github.com/couchcryptid/gameday-weather-service/internal/domain"
	"github.com/couchcryptid/gameday-weather-service/internal/observability"
)

// Status is the outcome of resolving one venue.
type Status int

const (
	// Resolved means coordinates were found.
	Resolved Status = iota
	// Unmapped means the venue name is not in the static table.
	Unmapped
	// Unavailable means the venue is known but every provider failed.
	Unavailable
)

func (s Status) String() string {
	switch s {
	case Resolved:
		return "resolved"
	case Unmapped:
		return "unmapped"
	case Unavailable:
		return "unavailable"
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// Resolution is the result of Resolve. Venue is set unless Status is
// Unmapped; Coordinate is set only when Status is Resolved.
type Resolution struct {
	Status     Status
	Venue      domain.VenueInfo
	Coordinate domain.Coordinate
	Provider   string // "cache" on a cache hit, "stadium" from the static table
	Err        error
}

// Provider is a named geocoder.
type Provider struct {
	Name     string
	Geocoder domain.Geocoder
}

const (
	cacheName       = "geocode"
	stadiumProvider = "stadium"
)

// Resolver maps venue names to coordinates.
type Resolver struct {
	providers []Provider
	cache     cache.Cache[domain.Coordinate]
	pacer     domain.Pacer
	stadiums  bool
	logger    *slog.Logger
	metrics   *observability.Metrics
}

// NewResolver creates a resolver that tries providers in the given order.
// Providers with a nil Geocoder are ignored. pacer may be nil.
func NewResolver(c cache.Cache[domain.Coordinate], pacer domain.Pacer, logger *slog.Logger, metrics *observability.Metrics, providers ...Provider) *Resolver {
	var active []Provider
	for _, p := range providers {
		if p.Geocoder != nil {
			active = append(active, p)
		}
	}
	return &Resolver{
		providers: active,
		cache:     c,
		pacer:     pacer,
		logger:    logger,
		metrics:   metrics,
	}
}

// WithStadiumCoordinates makes Resolve return a venue's ballpark coordinate
// from the static table when one is known, without a cache lookup or provider
// call. Venues without one are still geocoded.
func (r *Resolver) WithStadiumCoordinates() *Resolver {
	r.stadiums = true
	return r
}

// Resolve looks up venueName in the static table and geocodes its city.
// Repeated calls within the cache TTL return the same coordinates without
// another external call.
func (r *Resolver) Resolve(ctx context.Context, venueName string) Resolution {
	info, ok := domain.LookupVenue(venueName)
	if !ok {
		return Resolution{
			Status: Unmapped,
			Err:    fmt.Errorf("venue %q is not mapped to a location", venueName),
		}
	}

	if r.stadiums && info.Stadium != nil {
		return Resolution{Status: Resolved, Venue: info, Coordinate: *info.Stadium, Provider: stadiumProvider}
	}

	key := info.Label()
	if coord, hit := r.cached(ctx, key); hit {
		return Resolution{Status: Resolved, Venue: info, Coordinate: coord, Provider: "cache"}
	}

	var errs []error
	for _, p := range r.providers {
		coord, err := r.geocode(ctx, p, info)
		if err != nil {
			r.logger.Warn("geocoding provider failed",
				"provider", p.Name,
				"venue", venueName,
				"location", key,
				"error", err,
			)
			errs = append(errs, fmt.Errorf("%s: %w", p.Name, err))
			if ctx.Err() != nil {
				break
			}
			continue
		}

		if err := r.cache.Set(ctx, key, coord); err != nil {
			r.metrics.CacheLookups.WithLabelValues(cacheName, "error").Inc()
			r.logger.Warn("geocode cache write failed", "location", key, "error", err)
		}
		return Resolution{Status: Resolved, Venue: info, Coordinate: coord, Provider: p.Name}
	}

	if len(errs) == 0 {
		errs = append(errs, errors.New("no geocoding provider configured"))
	}
	return Resolution{Status: Unavailable, Venue: info, Err: errors.Join(errs...)}
}

func (r *Resolver) cached(ctx context.Context, key string) (domain.Coordinate, bool) {
	coord, ok, err := r.cache.Get(ctx, key)
	switch {
	case err != nil:
		r.metrics.CacheLookups.WithLabelValues(cacheName, "error").Inc()
		r.logger.Warn("geocode cache read failed", "location", key, "error", err)
		return domain.Coordinate{}, false
	case ok:
		r.metrics.CacheLookups.WithLabelValues(cacheName, "hit").Inc()
		return coord, true
	}
	r.metrics.CacheLookups.WithLabelValues(cacheName, "miss").Inc()
	return domain.Coordinate{}, false
}

func (r *Resolver) geocode(ctx context.Context, p Provider, info domain.VenueInfo) (domain.Coordinate, error) {
	if r.pacer != nil {
		if err := r.pacer.Wait(ctx); err != nil {
			return domain.Coordinate{}, fmt.Errorf("pacing: %w", err)
		}
	}
	res, err := p.Geocoder.ForwardGeocode(ctx, info.City, info.Region)
	if err != nil {
		return domain.Coordinate{}, err
	}
	if res.Empty() {
		return domain.Coordinate{}, domain.ErrNoGeocodeMatch
	}
	return domain.Coordinate{Lat: res.Lat, Lon: res.Lon}, nil
}
