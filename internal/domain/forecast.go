package domain

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// HourlyForecastSeries is one local calendar day of hourly forecast values.
// Timestamps carry the zone the forecast was requested in; the value slices
// are parallel to Timestamps. A NaN value means the provider returned null.
type HourlyForecastSeries struct {
	Timestamps        []time.Time
	Temperature       []float64
	Precipitation     []float64
	WindSpeed         []float64
	Units             UnitSystem
	PrecipitationUnit PrecipitationUnit
}

var errEmptySeries = errors.New("empty forecast series")

// Len returns the number of hourly entries.
func (s HourlyForecastSeries) Len() int { return len(s.Timestamps) }

// Validate checks that the parallel slices line up and that timestamps are
// strictly increasing within a single calendar day.
func (s HourlyForecastSeries) Validate() error {
	n := len(s.Timestamps)
	if n == 0 {
		return errEmptySeries
	}
	if len(s.Temperature) != n || len(s.Precipitation) != n || len(s.WindSpeed) != n {
		return fmt.Errorf("series length mismatch: time=%d temperature=%d precipitation=%d wind=%d",
			n, len(s.Temperature), len(s.Precipitation), len(s.WindSpeed))
	}
	y, m, d := s.Timestamps[0].Date()
	for i := 1; i < n; i++ {
		if !s.Timestamps[i].After(s.Timestamps[i-1]) {
			return fmt.Errorf("timestamps not increasing at index %d", i)
		}
		if yy, mm, dd := s.Timestamps[i].Date(); yy != y || mm != m || dd != d {
			return fmt.Errorf("timestamp at index %d leaves calendar day %04d-%02d-%02d", i, y, m, d)
		}
	}
	return nil
}

func valueAt(values []float64, i int) *float64 {
	v := values[i]
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}
