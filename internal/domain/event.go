package domain

import (
	"errors"
	"time"
)

var (
	// ErrScheduleUnavailable means the schedule source could not be read.
	ErrScheduleUnavailable = errors.New("schedule unavailable")
	// ErrForecastUnavailable means the forecast source failed for a coordinate.
	ErrForecastUnavailable = errors.New("forecast unavailable")
	// ErrNoGeocodeMatch means a geocoding provider returned no usable result.
	ErrNoGeocodeMatch = errors.New("no geocode match")
)

// ScheduledEvent is one game from the schedule source.
type ScheduledEvent struct {
	GamePK       int       `json:"game_pk" validate:"required"`
	HomeName     string    `json:"home_name" validate:"required"`
	AwayName     string    `json:"away_name" validate:"required"`
	VenueName    string    `json:"venue_name" validate:"required"`
	StartTimeUTC time.Time `json:"start_time_utc" validate:"required"`
	Link         string    `json:"link,omitempty"`
}

// Matchup renders the game as "Away @ Home".
func (e ScheduledEvent) Matchup() string {
	return e.AwayName + " @ " + e.HomeName
}

// Coordinate is a WGS-84 latitude/longitude pair.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// WeatherSample is the forecast triple chosen for a game. A nil field means
// the value is unknown.
type WeatherSample struct {
	Temperature       *float64
	Precipitation     *float64
	WindSpeed         *float64
	Units             UnitSystem
	PrecipitationUnit PrecipitationUnit

	// Aligned is true when the sample came from the exact alignment hour.
	Aligned bool
	// Index is the position in the series the sample was taken from, -1 when null.
	Index int
}

// IsNull reports whether no measurement is present.
func (s WeatherSample) IsNull() bool {
	return s.Temperature == nil && s.Precipitation == nil && s.WindSpeed == nil
}

// EventWeatherRecord is the joined output row for a game. Identifying fields
// (GamePK, Matchup, Venue) are always set; every other field may be null.
type EventWeatherRecord struct {
	GamePK            int      `json:"game_pk"`
	Matchup           string   `json:"matchup"`
	Venue             string   `json:"venue"`
	Location          *string  `json:"location"`
	Latitude          *float64 `json:"latitude"`
	Longitude         *float64 `json:"longitude"`
	LocalTime         *string  `json:"local_time"`
	Temperature       *float64 `json:"temperature"`
	TemperatureUnit   string   `json:"temperature_unit"`
	Precipitation     *float64 `json:"precipitation"`
	PrecipitationUnit string   `json:"precipitation_unit"`
	Wind              *float64 `json:"wind"`
	WindUnit          string   `json:"wind_unit"`
	Link              string   `json:"link,omitempty"`
	Degraded          bool     `json:"degraded"`
}

// Stage names the step of the per-game join that produced a diagnostic.
type Stage string

const (
	StageSchedule Stage = "schedule"
	StageVenue    Stage = "venue"
	StageGeocode  Stage = "geocode"
	StageTimezone Stage = "timezone"
	StageForecast Stage = "forecast"
	StageSample   Stage = "sample"
)

// Diagnostic describes a skipped or degraded game so an operator can tell
// "no games today" apart from "games today, data incomplete".
type Diagnostic struct {
	GamePK  int    `json:"game_pk,omitempty"`
	Matchup string `json:"matchup,omitempty"`
	Venue   string `json:"venue,omitempty"`
	Stage   Stage  `json:"stage"`
	Message string `json:"message"`
	Cause   string `json:"cause,omitempty"`
	Skipped bool   `json:"skipped"`
}

// Report is the outcome of one report run.
type Report struct {
	RunID       string               `json:"run_id"`
	Date        string               `json:"date"`
	GeneratedAt time.Time            `json:"generated_at"`
	Records     []EventWeatherRecord `json:"records"`
	Diagnostics []Diagnostic         `json:"diagnostics"`
}
