package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/gameday-weather-service/internal/domain"
	"github.com/couchcryptid/gameday-weather-service/internal/observability"
)

// EventJoiner joins scheduled games with weather.
type EventJoiner interface {
	Join(ctx context.Context, events []domain.ScheduledEvent) ([]domain.EventWeatherRecord, []domain.Diagnostic)
}

// ReportPublisher delivers a finished report downstream.
type ReportPublisher interface {
	Publish(ctx context.Context, report domain.Report) error
}

// Runner builds daily reports: fetch the schedule, join, publish, and keep
// the latest report for readers.
type Runner struct {
	schedule  domain.ScheduleSource
	joiner    EventJoiner
	publisher ReportPublisher
	clock     clockwork.Clock
	zone      *time.Location
	validate  *validator.Validate
	logger    *slog.Logger
	metrics   *observability.Metrics

	mu     sync.Mutex // serializes runs
	latest atomic.Pointer[domain.Report]
	ready  atomic.Bool
}

// NewRunner creates a Runner. zone decides which calendar day "today" is;
// publisher may be nil.
func NewRunner(schedule domain.ScheduleSource, joiner EventJoiner, publisher ReportPublisher, clock clockwork.Clock, zone *time.Location, logger *slog.Logger, metrics *observability.Metrics) *Runner {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if zone == nil {
		zone = time.UTC
	}
	return &Runner{
		schedule:  schedule,
		joiner:    joiner,
		publisher: publisher,
		clock:     clock,
		zone:      zone,
		validate:  validator.New(),
		logger:    logger,
		metrics:   metrics,
	}
}

// Today returns local midnight of the current day in the reporting zone.
func (r *Runner) Today() time.Time {
	y, m, d := r.clock.Now().In(r.zone).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, r.zone)
}

// RunToday builds the report for the current day.
func (r *Runner) RunToday(ctx context.Context) (domain.Report, error) {
	return r.Run(ctx, r.Today())
}

// Run builds the report for date. Only a schedule failure is returned as an
// error, wrapping domain.ErrScheduleUnavailable; per-game problems are
// reported as diagnostics, including schedule entries too incomplete to join. A publish failure is logged and leaves the report
// intact.
func (r *Runner) Run(ctx context.Context, date time.Time) (domain.Report, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	start := r.clock.Now()
	report := domain.Report{
		RunID: uuid.NewString(),
		Date:  date.Format(time.DateOnly),
	}
	log := r.logger.With("run_id", report.RunID, "date", report.Date)
	log.Info("report run started")

	events, err := r.schedule.Schedule(ctx, date)
	if err != nil {
		if !errors.Is(err, domain.ErrScheduleUnavailable) {
			err = fmt.Errorf("%w: %w", domain.ErrScheduleUnavailable, err)
		}
		r.metrics.ReportRuns.WithLabelValues("schedule_error").Inc()
		r.metrics.Diagnostics.WithLabelValues(string(domain.StageSchedule)).Inc()
		log.Error("schedule fetch failed, no report built", "error", err)
		return domain.Report{}, err
	}

	valid, dropped := r.screen(events, log)
	records, diags := r.joiner.Join(ctx, valid)
	report.Records = records
	report.Diagnostics = append(dropped, diags...)
	report.GeneratedAt = r.clock.Now().UTC()

	r.metrics.ReportRuns.WithLabelValues("success").Inc()
	r.metrics.ReportDuration.Observe(r.clock.Since(start).Seconds())
	r.metrics.ReportLastSuccess.Set(float64(report.GeneratedAt.Unix()))

	r.latest.Store(&report)
	r.ready.Store(true)

	if len(events) == 0 {
		log.Info("no games scheduled")
	} else {
		log.Info("report run finished",
			"games", len(events),
			"records", len(report.Records),
			"diagnostics", len(report.Diagnostics),
		)
	}

	if r.publisher != nil {
		if err := r.publisher.Publish(ctx, report); err != nil {
			log.Error("publish report failed", "error", err)
		}
	}
	return report, nil
}

// screen drops schedule entries missing an identifier, a team, a venue, or a
// start time, with a skipped diagnostic for each.
func (r *Runner) screen(events []domain.ScheduledEvent, log *slog.Logger) ([]domain.ScheduledEvent, []domain.Diagnostic) {
	valid := make([]domain.ScheduledEvent, 0, len(events))
	var diags []domain.Diagnostic
	for _, e := range events {
		err := r.validate.Struct(e)
		if err == nil {
			valid = append(valid, e)
			continue
		}
		d := domain.Diagnostic{
			GamePK:  e.GamePK,
			Matchup: e.Matchup(),
			Venue:   e.VenueName,
			Stage:   domain.StageSchedule,
			Message: "schedule entry is missing required fields",
			Cause:   err.Error(),
			Skipped: true,
		}
		r.metrics.Diagnostics.WithLabelValues(string(domain.StageSchedule)).Inc()
		log.Warn(d.Message,
			"game_pk", e.GamePK,
			"matchup", d.Matchup,
			"venue", e.VenueName,
			"stage", string(d.Stage),
			"skipped", true,
			"error", d.Cause,
		)
		diags = append(diags, d)
	}
	return valid, diags
}

// Latest returns the most recent successful report.
func (r *Runner) Latest() (domain.Report, bool) {
	p := r.latest.Load()
	if p == nil {
		return domain.Report{}, false
	}
	return *p, true
}

// CheckReadiness returns nil once a report has been built, or an error
// describing why the service is not yet ready.
func (r *Runner) CheckReadiness(_ context.Context) error {
	if !r.ready.Load() {
		return errors.New("no report has been built yet")
	}
	return nil
}
