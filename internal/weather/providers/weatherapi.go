package providers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sony/gobreaker"

	"github.com/i474232898/weather-dashboard/internal/weather"
)

// DefaultBaseURL is the WeatherAPI.com v1 root.
const DefaultBaseURL = "https://api.weatherapi.com/v1"

var errMissingAPIKey = errors.New("weatherapi api key is not configured")

// WeatherAPIClient implements weather.Upstream for WeatherAPI.com.
type WeatherAPIClient struct {
	name    string
	apiKey  string
	baseURL string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

var _ weather.Upstream = (*WeatherAPIClient)(nil)

// NewWeatherAPIClient creates a client. maxRetries of 0 disables automatic
// retries; an empty baseURL uses DefaultBaseURL.
func NewWeatherAPIClient(client *http.Client, apiKey, baseURL string, maxRetries int) *WeatherAPIClient {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "weatherapi",
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})

	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	return &WeatherAPIClient{
		name:    "weatherapi",
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		httpCfg: HTTPClientConfig{
			Client: client,
			Backoff: BackoffConfig{
				MaxRetries:      maxRetries,
				InitialInterval: 500 * time.Millisecond,
				MaxInterval:     5 * time.Second,
			},
		},
		circuit: cb,
	}
}

// Forecast calls forecast.json, which carries current conditions as well as
// the hourly forecast for the requested days.
func (p *WeatherAPIClient) Forecast(ctx context.Context, city string, days int) (*weather.RawForecast, error) {
	values := url.Values{}
	values.Set("q", city)
	values.Set("days", strconv.Itoa(days))
	values.Set("aqi", "no")
	values.Set("alerts", "no")

	var payload weather.RawForecast
	if err := p.get(ctx, "/forecast.json", values, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// Search calls search.json.
func (p *WeatherAPIClient) Search(ctx context.Context, query string) ([]weather.RawCity, error) {
	values := url.Values{}
	values.Set("q", query)

	var payload []weather.RawCity
	if err := p.get(ctx, "/search.json", values, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

func (p *WeatherAPIClient) get(ctx context.Context, path string, values url.Values, out any) error {
	if p.apiKey == "" {
		return &weather.UpstreamError{Message: errMissingAPIKey.Error(), Err: errMissingAPIKey}
	}
	values.Set("key", p.apiKey)

	buildRequest := func() (*http.Request, error) {
		u := fmt.Sprintf("%s%s?%s", p.baseURL, path, values.Encode())
		return http.NewRequest(http.MethodGet, u, nil)
	}

	resp, err := doRequestWithResilience(ctx, p.httpCfg, p.circuit, buildRequest)
	if err != nil {
		var se *statusError
		if errors.As(err, &se) {
			return &weather.UpstreamError{Status: se.status, Message: providerMessage(se.body), Err: err}
		}
		return fmt.Errorf("%s %s: %w", p.name, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
		return &weather.UpstreamError{
			Status:  resp.StatusCode,
			Message: providerMessage(body),
			Err:     fmt.Errorf("%s %s: unexpected status code %d", p.name, path, resp.StatusCode),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}

// providerMessage extracts error.message from a WeatherAPI error body.
func providerMessage(body []byte) string {
	var apiErr struct {
		Error struct {
			Code    int    `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &apiErr); err != nil {
		return ""
	}
	return apiErr.Error.Message
}
