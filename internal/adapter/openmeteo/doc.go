// Package openmeteo adapts the Open-Meteo forecast and geocoding APIs.
//
// Forecasts are requested for a single local calendar day with
// timeformat=unixtime and the alignment zone passed as timezone, so the hourly
// entries cover local midnight to midnight and every timestamp is an
// unambiguous instant even on DST transition days. Values arrive in Celsius
// and km/h; conversion to the presentation system happens in the domain.
package openmeteo
