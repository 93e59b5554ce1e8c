package weather

import (
	"errors"
	"fmt"
	"strings"
)

// Unit selects the display unit system.
type Unit string

const (
	Metric   Unit = "metric"
	Imperial Unit = "imperial"
)

// ErrInvalidUnit is returned for a unit string other than metric or imperial.
var ErrInvalidUnit = errors.New("invalid unit")

// ParseUnit parses a unit name, case-insensitively. An empty string is metric.
func ParseUnit(s string) (Unit, error) {
	switch Unit(strings.ToLower(strings.TrimSpace(s))) {
	case "", Metric:
		return Metric, nil
	case Imperial:
		return Imperial, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidUnit, s)
	}
}

// Valid reports whether u is a known unit system.
func (u Unit) Valid() bool {
	return u == Metric || u == Imperial
}

// Toggle returns the other unit system.
func (u Unit) Toggle() Unit {
	if u == Imperial {
		return Metric
	}
	return Imperial
}

// Temp picks the provider's Celsius or Fahrenheit reading.
func (u Unit) Temp(c, f float64) float64 {
	if u == Imperial {
		return f
	}
	return c
}

// Speed returns m/s derived from kph for metric, or the provider's own mph
// reading for imperial.
func (u Unit) Speed(kph, mph float64) float64 {
	if u == Imperial {
		return mph
	}
	return kph / 3.6
}

// TempSymbol is the display suffix for temperatures.
func (u Unit) TempSymbol() string {
	if u == Imperial {
		return "°F"
	}
	return "°C"
}

// SpeedSymbol is the display suffix for wind speeds.
func (u Unit) SpeedSymbol() string {
	if u == Imperial {
		return "mph"
	}
	return "m/s"
}

// dailyRange synthesizes a day's min/max around temp when the provider
// has no daily aggregate.
func dailyRange(temp float64, u Unit) (lo, hi float64) {
	spread := 2.0
	if u == Imperial {
		spread = 4.0
	}
	return temp - spread, temp + spread
}

// hourlyRange is the narrower per-hour equivalent of dailyRange.
func hourlyRange(temp float64, u Unit) (lo, hi float64) {
	spread := 1.0
	if u == Imperial {
		spread = 2.0
	}
	return temp - spread, temp + spread
}
