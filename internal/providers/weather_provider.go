package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ErrLocationNotFound is returned when the provider answers with cod "404".
var ErrLocationNotFound = errors.New("location not found")

type WeatherProvider interface {
	GetCurrentWeather(ctx context.Context, city, countryCode string) (*CurrentWeather, error)
	GetHTTPClient() *http.Client
}

type openWeatherProvider struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewOpenWeatherProvider builds a client for the OpenWeather current weather
// endpoint. A zero timeout leaves requests unbounded except by ctx.
func NewOpenWeatherProvider(baseURL, apiKey string, timeout time.Duration) WeatherProvider {
	return &openWeatherProvider{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// CurrentWeather mirrors the subset of /data/2.5/weather the form renders.
// Temperatures are in Kelvin.
type CurrentWeather struct {
	Name string `json:"name"`
	Main struct {
		Temp    float64 `json:"temp"`
		TempMin float64 `json:"temp_min"`
		TempMax float64 `json:"temp_max"`
	} `json:"main"`
	Weather []Condition `json:"weather"`
	Cod     StatusCode  `json:"cod"`
	Message string      `json:"message,omitempty"`
}

type Condition struct {
	ID          int    `json:"id"`
	Main        string `json:"main"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// StatusCode is the provider's "cod" field. Success payloads carry it as a
// number and error payloads as a string.
type StatusCode string

func (c *StatusCode) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*c = ""
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*c = StatusCode(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("cod is neither string nor number: %w", err)
	}
	*c = StatusCode(n.String())
	return nil
}

// IsSuccess reports a 200 cod. A missing cod counts as success.
func (c StatusCode) IsSuccess() bool {
	return c == "" || c == "200"
}

// Icon returns the primary weather icon identifier.
func (w *CurrentWeather) Icon() string {
	if len(w.Weather) == 0 {
		return ""
	}
	return w.Weather[0].Icon
}

// weatherURL builds the request URL. City and country are escaped one by
// one so the provider decodes exactly what the user typed, and the comma
// separator stays literal.
func (s *openWeatherProvider) weatherURL(city, countryCode string) string {
	return fmt.Sprintf("%s/data/2.5/weather?q=%s,%s&appid=%s",
		s.baseURL,
		url.QueryEscape(city),
		url.QueryEscape(countryCode),
		url.QueryEscape(s.apiKey),
	)
}

func (s *openWeatherProvider) GetCurrentWeather(ctx context.Context, city, countryCode string) (*CurrentWeather, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.weatherURL(city, countryCode), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request failed: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("openweather request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("openweather body read failed: %w", err)
	}

	// the not-found payload arrives with HTTP 404, so decode before looking at the status
	var apiResp CurrentWeather
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return nil, fmt.Errorf("openweather returned malformed JSON (status %d): %w", resp.StatusCode, err)
	}

	if apiResp.Cod == "404" {
		return nil, fmt.Errorf("openweather %q: %w", city+","+countryCode, ErrLocationNotFound)
	}

	if !apiResp.Cod.IsSuccess() {
		return nil, fmt.Errorf("openweather error: %s (cod %s)", apiResp.Message, apiResp.Cod)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("openweather returned status code: %d", resp.StatusCode)
	}

	if len(apiResp.Weather) == 0 {
		return nil, fmt.Errorf("openweather returned no weather conditions for %q", apiResp.Name)
	}

	return &apiResp, nil
}

func (s *openWeatherProvider) GetHTTPClient() *http.Client {
	return s.client
}
