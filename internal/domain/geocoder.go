package domain

import (
	"context"
	"time"
)

// GeocodingResult contains location data returned by a geocoding provider.
type GeocodingResult struct {
	Lat        float64
	Lon        float64
	PlaceName  string
	Confidence float64 // 0.0–1.0 provider confidence score
}

// Empty reports whether the provider found nothing.
func (r GeocodingResult) Empty() bool {
	return r.Lat == 0 && r.Lon == 0
}

// Geocoder converts a place name to coordinates.
type Geocoder interface {
	// ForwardGeocode resolves a city name within a region (state or province).
	// An empty result with a nil error means the provider had no match.
	ForwardGeocode(ctx context.Context, name, region string) (GeocodingResult, error)
}

// ScheduleSource lists the games scheduled on a calendar date.
type ScheduleSource interface {
	Schedule(ctx context.Context, date time.Time) ([]ScheduledEvent, error)
}

// ForecastRequest asks for the hourly forecast of one local calendar day.
type ForecastRequest struct {
	Coordinate    Coordinate
	Date          time.Time
	Location      *time.Location
	Precipitation PrecipitationUnit
}

// ForecastSource returns hourly forecasts aligned to the requested zone.
type ForecastSource interface {
	HourlyForecast(ctx context.Context, req ForecastRequest) (HourlyForecastSeries, error)
}

// Pacer gates outbound calls to respect upstream rate limits.
// *rate.Limiter satisfies it.
type Pacer interface {
	Wait(ctx context.Context) error
}
