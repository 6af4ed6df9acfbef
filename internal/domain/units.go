package domain

import "fmt"

// UnitSystem selects how temperature and wind speed are presented.
type UnitSystem string

const (
	Metric   UnitSystem = "metric"   // °C, km/h
	Imperial UnitSystem = "imperial" // °F, mph
)

const kmhToMph = 0.621371

// ParseUnitSystem validates a configured unit system.
func ParseUnitSystem(s string) (UnitSystem, error) {
	switch UnitSystem(s) {
	case Metric, Imperial:
		return UnitSystem(s), nil
	}
	return "", fmt.Errorf("unknown unit system %q", s)
}

// TemperatureUnit is the display label for temperatures.
func (u UnitSystem) TemperatureUnit() string {
	if u == Imperial {
		return "°F"
	}
	return "°C"
}

// WindUnit is the display label for wind speeds.
func (u UnitSystem) WindUnit() string {
	if u == Imperial {
		return "mph"
	}
	return "km/h"
}

// CelsiusToFahrenheit converts °C to °F.
func CelsiusToFahrenheit(c float64) float64 { return c*9/5 + 32 }

// FahrenheitToCelsius converts °F to °C.
func FahrenheitToCelsius(f float64) float64 { return (f - 32) * 5 / 9 }

// KmhToMph converts km/h to mph.
func KmhToMph(kmh float64) float64 { return kmh * kmhToMph }

// MphToKmh converts mph to km/h.
func MphToKmh(mph float64) float64 { return mph / kmhToMph }

// ConvertTemperature converts v from one unit system to another.
func ConvertTemperature(v float64, from, to UnitSystem) float64 {
	switch {
	case from == to:
		return v
	case from == Metric && to == Imperial:
		return CelsiusToFahrenheit(v)
	default:
		return FahrenheitToCelsius(v)
	}
}

// ConvertWindSpeed converts v from one unit system to another.
func ConvertWindSpeed(v float64, from, to UnitSystem) float64 {
	switch {
	case from == to:
		return v
	case from == Metric && to == Imperial:
		return KmhToMph(v)
	default:
		return MphToKmh(v)
	}
}

// PrecipitationUnit identifies which precipitation field a forecast carries.
// The value is passed through unconverted.
type PrecipitationUnit string

const (
	PrecipitationProbability PrecipitationUnit = "%"
	PrecipitationAmount      PrecipitationUnit = "mm"
)

// ParsePrecipitationMode maps a configured mode ("probability" or "amount")
// to the unit the forecast will carry.
func ParsePrecipitationMode(s string) (PrecipitationUnit, error) {
	switch s {
	case "probability":
		return PrecipitationProbability, nil
	case "amount":
		return PrecipitationAmount, nil
	}
	return "", fmt.Errorf("unknown precipitation mode %q", s)
}
