package weather

import (
	"context"
	"errors"
	"log"
	"strconv"
	"time"
	"unicode/utf8"

	"golang.org/x/sync/singleflight"

	"github.com/i474232898/weather-dashboard/internal/cache"
)

const (
	currentDays  = 1
	forecastDays = 7

	// MinQueryLength is the shortest search query sent upstream.
	MinQueryLength = 2

	// DefaultFetchTimeout bounds one shared upstream fetch.
	DefaultFetchTimeout = 30 * time.Second
)

type operation struct {
	name    string
	failure string
}

var (
	opCurrent  = operation{name: "current", failure: "Failed to fetch weather data"}
	opForecast = operation{name: "forecast", failure: "Failed to fetch forecast data"}
	opSearch   = operation{name: "search", failure: "Failed to search cities"}
)

// Service fronts the provider with a TTL cache. Concurrent misses for the
// same key share a single upstream call.
type Service struct {
	upstream     Upstream
	cache        *cache.Cache[any]
	flights      singleflight.Group
	now          func() time.Time
	fetchTimeout time.Duration
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithClock overrides the time source used for sunrise/sunset resolution.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *Service) {
		s.now = now
	}
}

// WithFetchTimeout bounds each shared upstream fetch. Fetches outlive the
// callers that started them, so this is their only deadline.
func WithFetchTimeout(d time.Duration) ServiceOption {
	return func(s *Service) {
		if d > 0 {
			s.fetchTimeout = d
		}
	}
}

// NewService creates a new Service.
func NewService(upstream Upstream, c *cache.Cache[any], opts ...ServiceOption) *Service {
	s := &Service{
		upstream:     upstream,
		cache:        c,
		now:          time.Now,
		fetchTimeout: DefaultFetchTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetCurrentWeather returns present conditions for city. An empty unit
// means metric.
func (s *Service) GetCurrentWeather(ctx context.Context, city string, unit Unit) (CurrentWeather, error) {
	unit, err := resolveUnit(unit)
	if err != nil {
		return CurrentWeather{}, err
	}

	params := map[string]string{
		"city": city,
		"days": strconv.Itoa(currentDays),
		"unit": string(unit),
	}
	return load(ctx, s, opCurrent, params, func(ctx context.Context) (CurrentWeather, error) {
		raw, err := s.upstream.Forecast(ctx, city, currentDays)
		if err != nil {
			return CurrentWeather{}, err
		}
		cw := TransformCurrent(raw, unit, s.now())
		if cw.Sunrise.Fallback || cw.Sunset.Fallback {
			log.Printf("WARN: sunrise/sunset for %s could not be parsed; using current time", city)
		}
		return cw, nil
	})
}

// GetForecast returns the seven-day hourly forecast for city. An empty unit
// means metric.
func (s *Service) GetForecast(ctx context.Context, city string, unit Unit) (ForecastBundle, error) {
	unit, err := resolveUnit(unit)
	if err != nil {
		return ForecastBundle{}, err
	}

	params := map[string]string{
		"city": city,
		"days": strconv.Itoa(forecastDays),
		"unit": string(unit),
	}
	return load(ctx, s, opForecast, params, func(ctx context.Context) (ForecastBundle, error) {
		raw, err := s.upstream.Forecast(ctx, city, forecastDays)
		if err != nil {
			return ForecastBundle{}, err
		}
		return TransformForecast(raw, unit), nil
	})
}

// SearchCities looks up cities matching query. Queries shorter than
// MinQueryLength return an empty result without contacting the provider.
func (s *Service) SearchCities(ctx context.Context, query string) ([]CitySearchResult, error) {
	if utf8.RuneCountInString(query) < MinQueryLength {
		return []CitySearchResult{}, nil
	}

	params := map[string]string{"query": query}
	return load(ctx, s, opSearch, params, func(ctx context.Context) ([]CitySearchResult, error) {
		raw, err := s.upstream.Search(ctx, query)
		if err != nil {
			return nil, err
		}
		return TransformSearch(raw), nil
	})
}

// ClearCache drops every cached response.
func (s *Service) ClearCache() {
	s.cache.Clear()
}

// CacheSize reports the number of cached responses.
func (s *Service) CacheSize() int {
	return s.cache.Size()
}

func resolveUnit(u Unit) (Unit, error) {
	if u == "" {
		return Metric, nil
	}
	if !u.Valid() {
		return "", ErrInvalidUnit
	}
	return u, nil
}

// load serves key from the cache or runs fetch once for all concurrent
// callers and caches its result. Failures are never cached. A caller whose
// context ends stops waiting, but the shared fetch runs on until it
// completes or the Service's fetch timeout elapses.
func load[T any](ctx context.Context, s *Service, op operation, params map[string]string, fetch func(context.Context) (T, error)) (T, error) {
	var zero T
	key := cache.Key(op.name, params)

	if v, ok := s.cache.Get(key); ok {
		if t, ok := v.(T); ok {
			return t, nil
		}
	}

	ch := s.flights.DoChan(key, func() (any, error) {
		if v, ok := s.cache.Get(key); ok {
			return v, nil
		}

		log.Printf("DEBUG: cache miss for %s; fetching upstream", key)
		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.fetchTimeout)
		defer cancel()

		v, err := fetch(fetchCtx)
		if err != nil {
			log.Printf("ERROR: %s upstream call failed: %v", op.name, err)
			return nil, upstreamFailure(op, err)
		}
		s.cache.Put(key, v)
		return v, nil
	})

	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return zero, res.Err
		}
		t, ok := res.Val.(T)
		if !ok {
			return zero, upstreamFailure(op, errors.New("unexpected cached value type"))
		}
		return t, nil
	}
}

func upstreamFailure(op operation, err error) error {
	var ue *UpstreamError
	if errors.As(err, &ue) && ue.Message != "" {
		if ue.Op == "" {
			ue.Op = op.name
		}
		return ue
	}

	status := 0
	if ue != nil {
		status = ue.Status
	}
	return &UpstreamError{
		Op:      op.name,
		Status:  status,
		Message: op.failure,
		Err:     err,
	}
}
