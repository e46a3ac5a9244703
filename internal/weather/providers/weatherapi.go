package providers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/i474232898/weather-premium/internal/weather"
)

const (
	// DefaultWeatherAPIBaseURL is the public WeatherAPI.com endpoint root.
	DefaultWeatherAPIBaseURL = "https://api.weatherapi.com/v1"

	defaultForecastDays = 3
)

// WeatherAPIClient implements weather.Provider for WeatherAPI.com.
type WeatherAPIClient struct {
	apiKey       string
	baseURL      string
	forecastDays int
	httpCfg      HTTPClientConfig
}

var _ weather.Provider = (*WeatherAPIClient)(nil)

// ClientOption configures a WeatherAPIClient.
type ClientOption func(*WeatherAPIClient)

// WithForecastDays sets the number of days requested from forecast.json.
func WithForecastDays(days int) ClientOption {
	return func(c *WeatherAPIClient) {
		if days > 0 {
			c.forecastDays = days
		}
	}
}

// WithCircuitBreaker guards outbound calls with a circuit breaker. While the
// breaker is open lookups return no data without touching the network.
func WithCircuitBreaker() ClientOption {
	return func(c *WeatherAPIClient) {
		c.httpCfg.Breaker = newBreaker("weatherapi")
	}
}

// NewWeatherAPIClient creates a client for the API rooted at baseURL. A nil
// client falls back to http.DefaultClient.
func NewWeatherAPIClient(client *http.Client, baseURL, apiKey string, opts ...ClientOption) *WeatherAPIClient {
	if client == nil {
		client = http.DefaultClient
	}
	if baseURL == "" {
		baseURL = DefaultWeatherAPIBaseURL
	}

	c := &WeatherAPIClient{
		apiKey:       apiKey,
		baseURL:      strings.TrimRight(baseURL, "/"),
		forecastDays: defaultForecastDays,
		httpCfg: HTTPClientConfig{
			Client: client,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Current fetches current conditions, including air quality, for city.
func (c *WeatherAPIClient) Current(ctx context.Context, city string) (*weather.CurrentWeather, error) {
	values := url.Values{}
	values.Set("q", city)
	values.Set("aqi", "yes")

	var payload weather.CurrentWeather
	ok, err := c.get(ctx, "current.json", values, &payload)
	if err != nil || !ok {
		return nil, err
	}
	return &payload, nil
}

// Historical fetches the day summary for city on date (UTC calendar day).
func (c *WeatherAPIClient) Historical(ctx context.Context, city string, date time.Time) (*weather.HistoricalWeather, error) {
	values := url.Values{}
	values.Set("q", city)
	values.Set("dt", date.UTC().Format(weather.DateLayout))

	var payload weather.HistoricalWeather
	ok, err := c.get(ctx, "history.json", values, &payload)
	if err != nil || !ok {
		return nil, err
	}
	return &payload, nil
}

// Forecast fetches the multi-day forecast for city.
func (c *WeatherAPIClient) Forecast(ctx context.Context, city string) (*weather.ForecastWeather, error) {
	values := url.Values{}
	values.Set("q", city)
	values.Set("days", strconv.Itoa(c.forecastDays))
	values.Set("aqi", "yes")

	var payload weather.ForecastWeather
	ok, err := c.get(ctx, "forecast.json", values, &payload)
	if err != nil || !ok {
		return nil, err
	}
	return &payload, nil
}

func (c *WeatherAPIClient) get(ctx context.Context, endpoint string, values url.Values, v interface{}) (bool, error) {
	values.Set("key", c.apiKey)

	buildRequest := func(ctx context.Context) (*http.Request, error) {
		u := fmt.Sprintf("%s/%s?%s", c.baseURL, endpoint, values.Encode())
		return http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	}

	body, err := fetchBody(ctx, c.httpCfg, buildRequest)
	if err != nil {
		return false, err
	}
	return decodeLenient(body, v), nil
}
