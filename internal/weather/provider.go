package weather

import (
	"context"
	"errors"
)

// Upstream abstracts the weather data provider (WeatherAPI.com).
type Upstream interface {
	// Forecast returns current conditions plus an hourly forecast for the
	// given number of days.
	Forecast(ctx context.Context, city string, days int) (*RawForecast, error)
	Search(ctx context.Context, query string) ([]RawCity, error)
}

// ErrUpstream matches every failure to obtain data from the provider.
var ErrUpstream = errors.New("upstream failure")

// UpstreamError describes a failed provider call. Message is the
// provider's own error text when it sent one, otherwise a generic message
// for the operation.
type UpstreamError struct {
	Op      string
	Status  int // HTTP status, 0 when no response was received
	Message string
	Err     error
}

func (e *UpstreamError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return ErrUpstream.Error()
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

func (e *UpstreamError) Is(target error) bool {
	return target == ErrUpstream
}
