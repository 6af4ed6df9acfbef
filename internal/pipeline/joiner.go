package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/couchcryptid/gameday-weather-service/internal/domain"
	"github.com/couchcryptid/gameday-weather-service/internal/observability"
	"github.com/couchcryptid/gameday-weather-service/internal/venue"
)

// VenueResolver maps a venue name to a location and coordinates.
type VenueResolver interface {
	Resolve(ctx context.Context, venueName string) venue.Resolution
}

// JoinOptions are the presentation and policy knobs of a Joiner.
type JoinOptions struct {
	Normalizer    domain.TimeZoneNormalizer
	Selector      domain.SampleSelector
	Precipitation domain.PrecipitationUnit
	// DegradeUnresolved emits a null-weather record for games whose venue
	// cannot be resolved instead of dropping them.
	DegradeUnresolved bool
}

// Joiner turns scheduled games into weather records, one game at a time.
type Joiner struct {
	resolver VenueResolver
	forecast domain.ForecastSource
	pacer    domain.Pacer
	opts     JoinOptions
	logger   *slog.Logger
	metrics  *observability.Metrics
}

// NewJoiner creates a Joiner. pacer may be nil.
func NewJoiner(resolver VenueResolver, forecast domain.ForecastSource, pacer domain.Pacer, opts JoinOptions, logger *slog.Logger, metrics *observability.Metrics) *Joiner {
	if opts.Precipitation == "" {
		opts.Precipitation = domain.PrecipitationProbability
	}
	if opts.Selector.Units == "" {
		opts.Selector.Units = domain.Imperial
	}
	return &Joiner{
		resolver: resolver,
		forecast: forecast,
		pacer:    pacer,
		opts:     opts,
		logger:   logger,
		metrics:  metrics,
	}
}

// Join processes events in order and never fails as a whole. Each event
// yields one record, except an unresolved venue under the skip policy, which
// yields only a diagnostic. Degraded records are also accompanied by a
// diagnostic naming the failed stage.
func (j *Joiner) Join(ctx context.Context, events []domain.ScheduledEvent) ([]domain.EventWeatherRecord, []domain.Diagnostic) {
	records := make([]domain.EventWeatherRecord, 0, len(events))
	var diags []domain.Diagnostic

	// Each venue is resolved once per run, failures included.
	resolved := make(map[string]venue.Resolution)

	for _, e := range events {
		res, ok := resolved[e.VenueName]
		if !ok {
			res = j.resolver.Resolve(ctx, e.VenueName)
			resolved[e.VenueName] = res
		}

		rec, eventDiags := j.joinOne(ctx, e, res)
		diags = append(diags, eventDiags...)
		if rec == nil {
			continue
		}
		records = append(records, *rec)
		j.metrics.RecordsEmitted.WithLabelValues(strconv.FormatBool(rec.Degraded)).Inc()
	}
	return records, diags
}

func (j *Joiner) joinOne(ctx context.Context, e domain.ScheduledEvent, res venue.Resolution) (*domain.EventWeatherRecord, []domain.Diagnostic) {
	var diags []domain.Diagnostic

	if res.Status != venue.Resolved {
		stage, msg := domain.StageGeocode, "venue location could not be geocoded"
		if res.Status == venue.Unmapped {
			stage, msg = domain.StageVenue, fmt.Sprintf("venue %q is not mapped to a known location", e.VenueName)
		}
		if !j.opts.DegradeUnresolved {
			return nil, append(diags, j.diagnose(e, stage, msg, res.Err, true))
		}
		diags = append(diags, j.diagnose(e, stage, msg, res.Err, false))
	}

	local, err := j.opts.Normalizer.ToLocalHour(e.StartTimeUTC, res.Venue)
	if err != nil {
		diags = append(diags, j.diagnose(e, domain.StageTimezone, "venue zone unavailable, using reporting zone", err, false))
	}

	rec := j.baseRecord(e, res, local)
	if res.Status != venue.Resolved {
		return rec, diags
	}

	series, err := j.fetchForecast(ctx, res.Coordinate, local)
	if err != nil {
		return rec, append(diags, j.diagnose(e, domain.StageForecast, "forecast fetch failed", err, false))
	}

	sample := j.opts.Selector.Select(series, local.Hour)
	switch {
	case sample.IsNull():
		return rec, append(diags, j.diagnose(e, domain.StageSample, "forecast has no usable values for the game hour", nil, false))
	case !sample.Aligned:
		j.logger.Debug("forecast lacks game hour, using fallback entry",
			"game_pk", e.GamePK,
			"hour", local.Hour,
			"index", sample.Index,
		)
	}

	rec.Temperature = sample.Temperature
	rec.Precipitation = sample.Precipitation
	rec.Wind = sample.WindSpeed
	rec.PrecipitationUnit = string(sample.PrecipitationUnit)
	rec.Degraded = false
	if missing := missingFields(sample); len(missing) > 0 {
		rec.Degraded = true
		diags = append(diags, j.diagnose(e, domain.StageSample,
			"forecast is missing "+strings.Join(missing, ", ")+" for the game hour", nil, false))
	}
	return rec, diags
}

func missingFields(s domain.WeatherSample) []string {
	var missing []string
	if s.Temperature == nil {
		missing = append(missing, "temperature")
	}
	if s.Precipitation == nil {
		missing = append(missing, "precipitation")
	}
	if s.WindSpeed == nil {
		missing = append(missing, "wind")
	}
	return missing
}

func (j *Joiner) fetchForecast(ctx context.Context, coord domain.Coordinate, local domain.LocalTime) (domain.HourlyForecastSeries, error) {
	if j.pacer != nil {
		if err := j.pacer.Wait(ctx); err != nil {
			return domain.HourlyForecastSeries{}, fmt.Errorf("pacing: %w", err)
		}
	}
	return j.forecast.HourlyForecast(ctx, domain.ForecastRequest{
		Coordinate:    coord,
		Date:          local.Date(),
		Location:      local.Time.Location(),
		Precipitation: j.opts.Precipitation,
	})
}

// baseRecord fills identity, location, and time; weather fields stay null and
// the record is marked degraded until a sample is applied.
func (j *Joiner) baseRecord(e domain.ScheduledEvent, res venue.Resolution, local domain.LocalTime) *domain.EventWeatherRecord {
	units := j.opts.Selector.Units
	rec := &domain.EventWeatherRecord{
		GamePK:            e.GamePK,
		Matchup:           e.Matchup(),
		Venue:             e.VenueName,
		LocalTime:         &local.Label,
		TemperatureUnit:   units.TemperatureUnit(),
		PrecipitationUnit: string(j.opts.Precipitation),
		WindUnit:          units.WindUnit(),
		Link:              e.Link,
		Degraded:          true,
	}
	if res.Status != venue.Unmapped {
		label := res.Venue.Label()
		rec.Location = &label
	}
	if res.Status == venue.Resolved {
		lat, lon := res.Coordinate.Lat, res.Coordinate.Lon
		rec.Latitude, rec.Longitude = &lat, &lon
	}
	return rec
}

func (j *Joiner) diagnose(e domain.ScheduledEvent, stage domain.Stage, msg string, cause error, skipped bool) domain.Diagnostic {
	d := domain.Diagnostic{
		GamePK:  e.GamePK,
		Matchup: e.Matchup(),
		Venue:   e.VenueName,
		Stage:   stage,
		Message: msg,
		Skipped: skipped,
	}
	if cause != nil {
		d.Cause = cause.Error()
	}
	j.metrics.Diagnostics.WithLabelValues(string(stage)).Inc()
	j.logger.Warn(msg,
		"game_pk", e.GamePK,
		"matchup", d.Matchup,
		"venue", e.VenueName,
		"stage", string(stage),
		"skipped", skipped,
		"error", d.Cause,
	)
	return d
}
