package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"tripplanner.app/config"
	"tripplanner.app/errors"
)

// OpenWeatherMapProvider fetches current conditions and forecasts from OpenWeatherMap
type OpenWeatherMapProvider struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewOpenWeatherMapProvider creates a new OpenWeatherMap provider
func NewOpenWeatherMapProvider(cfg *config.WeatherConfig) *OpenWeatherMapProvider {
	return &OpenWeatherMapProvider{
		apiKey:  cfg.APIKey,
		baseURL: cfg.BaseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// FetchCurrent retrieves current weather conditions for a city
func (p *OpenWeatherMapProvider) FetchCurrent(ctx context.Context, city string) (*CurrentWeatherData, error) {
	endpoint := fmt.Sprintf("%s/weather?q=%s&appid=%s&units=metric",
		p.baseURL, url.QueryEscape(city), p.apiKey)

	var data CurrentWeatherData
	if err := p.getJSON(ctx, endpoint, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

// FetchForecast retrieves up to the requested number of 3-hour forecast readings
func (p *OpenWeatherMapProvider) FetchForecast(ctx context.Context, city string, readings int) (*ForecastData, error) {
	endpoint := fmt.Sprintf("%s/forecast?q=%s&appid=%s&units=metric&cnt=%d",
		p.baseURL, url.QueryEscape(city), p.apiKey, readings)

	var data ForecastData
	if err := p.getJSON(ctx, endpoint, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

func (p *OpenWeatherMapProvider) getJSON(ctx context.Context, endpoint string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return errors.NewExternalAPIError("failed to build weather request", err)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return errors.NewExternalAPIError("openweathermap API request failed", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			slog.Warn("close response body", "error", closeErr)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return p.handleHTTPError(resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.NewExternalAPIError("decode openweathermap response", err)
	}
	return nil
}

func (p *OpenWeatherMapProvider) handleHTTPError(statusCode int) error {
	switch statusCode {
	case http.StatusUnauthorized:
		return errors.NewExternalAPIError("openweathermap: invalid API key", nil)
	case http.StatusNotFound:
		return errors.NewNotFoundError("openweathermap: city not found")
	case http.StatusTooManyRequests:
		return errors.NewExternalAPIError("openweathermap: rate limit exceeded", nil)
	case http.StatusServiceUnavailable:
		return errors.NewExternalAPIError("openweathermap: service unavailable", nil)
	default:
		return errors.NewExternalAPIError(fmt.Sprintf("openweathermap: HTTP %d error", statusCode), nil)
	}
}
