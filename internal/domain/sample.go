package domain

import "fmt"

// FallbackPolicy decides which entry stands in when the series lacks the
// alignment hour.
type FallbackPolicy string

const (
	// FallbackFirst uses index 0, the first hour of the day.
	FallbackFirst FallbackPolicy = "first"
	// FallbackNearest uses the entry whose hour is closest to the target.
	FallbackNearest FallbackPolicy = "nearest"
)

// ParseFallbackPolicy validates a configured fallback policy.
func ParseFallbackPolicy(s string) (FallbackPolicy, error) {
	switch FallbackPolicy(s) {
	case FallbackFirst, FallbackNearest:
		return FallbackPolicy(s), nil
	}
	return "", fmt.Errorf("unknown sample fallback %q", s)
}

// SampleSelector picks the forecast entry representing a game's start hour
// and converts it to the presentation unit system.
type SampleSelector struct {
	Units    UnitSystem
	Fallback FallbackPolicy
}

// Select returns the sample for targetHour (0–23). A missing hour falls back
// per the selector's policy and never fails the sample; an empty or malformed
// series yields an all-null sample.
func (s SampleSelector) Select(series HourlyForecastSeries, targetHour int) WeatherSample {
	units := s.Units
	if units == "" {
		units = series.Units
	}
	null := WeatherSample{Units: units, PrecipitationUnit: series.PrecipitationUnit, Index: -1}

	if err := series.Validate(); err != nil {
		return null
	}

	idx, aligned := s.index(series, targetHour)

	sample := WeatherSample{
		Temperature:       valueAt(series.Temperature, idx),
		Precipitation:     valueAt(series.Precipitation, idx),
		WindSpeed:         valueAt(series.WindSpeed, idx),
		Units:             units,
		PrecipitationUnit: series.PrecipitationUnit,
		Aligned:           aligned,
		Index:             idx,
	}

	from := series.Units
	if from == "" {
		from = Metric
	}
	if sample.Temperature != nil {
		v := ConvertTemperature(*sample.Temperature, from, units)
		sample.Temperature = &v
	}
	if sample.WindSpeed != nil {
		v := ConvertWindSpeed(*sample.WindSpeed, from, units)
		sample.WindSpeed = &v
	}
	return sample
}

func (s SampleSelector) index(series HourlyForecastSeries, targetHour int) (int, bool) {
	for i, ts := range series.Timestamps {
		if ts.Hour() == targetHour {
			return i, true
		}
	}
	if s.Fallback != FallbackNearest {
		return 0, false
	}
	best, bestDist := 0, 24
	for i, ts := range series.Timestamps {
		d := ts.Hour() - targetHour
		if d < 0 {
			d = -d
		}
		if d < bestDist {
			best, bestDist = i, d
		}
	}
	return best, false
}
