// Package domain models the daily gameday weather report: scheduled MLB games,
// venue locations, hourly forecasts, and the joined per-game record.
//
// # Data Sources
//
// The schedule comes from the MLB Stats API (statsapi.mlb.com). Each game
// carries a gamePk, home and away team names, a venue name, and the first
// pitch as an RFC 3339 UTC timestamp ("2024-07-04T23:05:00Z").
//
// Venue names are resolved through a static table ([LookupVenue]) to a
// city/region label and an IANA zone. The label is geocoded to a coordinate,
// and the coordinate is used to request an hourly forecast for the game's
// local calendar day.
//
// # Time Alignment
//
// A game is matched to the forecast hour that contains its first pitch in the
// report's zone. Two zone policies exist:
//
//	reporting: every game is expressed in one fixed zone (default America/New_York)
//	venue:     every game is expressed in the venue's own zone
//
// The forecast is always requested in the same zone used for alignment, so
// forecast timestamps and the alignment hour share one wall clock. Conversion
// goes through time.Location rules, never a fixed offset, so daylight-saving
// transitions are handled.
//
// # Sample Selection
//
// [SampleSelector] picks the first forecast entry whose local hour equals the
// alignment hour. When the series lacks that hour it falls back to index 0
// (or the nearest hour, when configured). Empty or malformed series yield an
// all-null sample.
//
// # Units
//
// Forecasts are requested in metric (°C, km/h). The selector converts the
// whole sample to the configured presentation system:
//
//	°F  = °C × 9/5 + 32
//	mph = km/h × 0.621371
//
// Precipitation is passed through untouched; it is either a probability (%)
// or an accumulation (mm) depending on which forecast field was requested.
//
// # Degradation
//
// Per-game failures never abort a report. They surface as [Diagnostic] values
// naming the game and the [Stage] that failed, alongside a record with null
// measurement fields. Only a failed schedule fetch ([ErrScheduleUnavailable])
// stops a report.
package domain
