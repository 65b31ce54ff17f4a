package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"

	"github.com/weatherwidget/backend/internal/domain"
)

const (
	// DefaultBaseURL is the OpenWeatherMap current weather API root
	DefaultBaseURL = "https://api.openweathermap.org/data/2.5"
	// DefaultIconHost serves the condition icons
	DefaultIconHost = "https://openweathermap.org"
)

// WeatherService looks up current weather by city name
type WeatherService struct {
	apiKey     string
	baseURL    string
	iconHost   string
	httpClient *http.Client
}

// Option customizes a WeatherService
type Option func(*WeatherService)

// WithBaseURL points the service at another API root
func WithBaseURL(baseURL string) Option {
	return func(s *WeatherService) {
		if baseURL != "" {
			s.baseURL = strings.TrimRight(baseURL, "/")
		}
	}
}

// WithIconHost changes the host used by IconURL
func WithIconHost(host string) Option {
	return func(s *WeatherService) {
		if host != "" {
			s.iconHost = strings.TrimRight(host, "/")
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(c *http.Client) Option {
	return func(s *WeatherService) {
		if c != nil {
			s.httpClient = c
		}
	}
}

// NewWeatherService creates a new weather service.
// An empty apiKey is not rejected here; the API answers 401 for it.
func NewWeatherService(apiKey string, opts ...Option) *WeatherService {
	s := &WeatherService{
		apiKey:     apiKey,
		baseURL:    DefaultBaseURL,
		iconHost:   DefaultIconHost,
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// OpenWeatherResponse represents the OpenWeatherMap API response
type OpenWeatherResponse struct {
	Main struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
		Humidity  int     `json:"humidity"`
	} `json:"main"`
	Weather []struct {
		Main        string `json:"main"`
		Description string `json:"description"`
		Icon        string `json:"icon"`
	} `json:"weather"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
	Name string `json:"name"`
}

// openWeatherError is the body OpenWeatherMap sends with error statuses
type openWeatherError struct {
	Message string `json:"message"`
}

// Lookup fetches current conditions for city. Failures are classified as
// domain.ErrNotFound, domain.ErrUnauthorized, *domain.UpstreamError or
// domain.ErrNetwork.
func (s *WeatherService) Lookup(ctx context.Context, city string) (domain.WeatherSnapshot, error) {
	city = strings.TrimSpace(city)
	if city == "" {
		return domain.WeatherSnapshot{}, domain.ErrEmptyCity
	}

	params := url.Values{}
	params.Set("q", city)
	params.Set("appid", s.apiKey)
	params.Set("units", "metric")
	endpoint := s.baseURL + "/weather?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return domain.WeatherSnapshot{}, fmt.Errorf("weather: failed to create request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return domain.WeatherSnapshot{}, fmt.Errorf("%w: %v", domain.ErrNetwork, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return domain.WeatherSnapshot{}, domain.ErrNotFound
	case resp.StatusCode == http.StatusUnauthorized:
		return domain.WeatherSnapshot{}, domain.ErrUnauthorized
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return domain.WeatherSnapshot{}, &domain.UpstreamError{
			Status:  resp.StatusCode,
			Message: readErrorMessage(resp.Body),
		}
	}

	var owResp OpenWeatherResponse
	if err := json.NewDecoder(resp.Body).Decode(&owResp); err != nil {
		log.Printf("weather: failed to decode response for %q: %v", city, err)
		return domain.WeatherSnapshot{}, &domain.UpstreamError{Status: resp.StatusCode}
	}

	snapshot := domain.WeatherSnapshot{
		Name:        owResp.Name,
		Temperature: owResp.Main.Temp,
		FeelsLike:   owResp.Main.FeelsLike,
		Humidity:    owResp.Main.Humidity,
		WindSpeed:   owResp.Wind.Speed,
	}

	if len(owResp.Weather) > 0 {
		snapshot.Condition = owResp.Weather[0].Main
		snapshot.Description = owResp.Weather[0].Description
		snapshot.Icon = owResp.Weather[0].Icon
	}

	return snapshot, nil
}

// IconURL builds the image URL for an icon identifier
func (s *WeatherService) IconURL(icon string) string {
	if icon == "" {
		return ""
	}
	return fmt.Sprintf("%s/img/wn/%s@2x.png", s.iconHost, url.PathEscape(icon))
}

// readErrorMessage extracts the "message" field of an error body, if any
func readErrorMessage(body io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(body, 64<<10))
	if err != nil {
		return ""
	}
	var owErr openWeatherError
	if err := json.Unmarshal(data, &owErr); err != nil {
		return ""
	}
	return owErr.Message
}
