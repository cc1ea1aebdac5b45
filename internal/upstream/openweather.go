package upstream

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// OpenWeatherClient reads 5 day / 3 hour forecasts.
type OpenWeatherClient struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// NewOpenWeatherClient creates a forecast client.
func NewOpenWeatherClient(baseURL, apiKey string, httpClient *http.Client) *OpenWeatherClient {
	return &OpenWeatherClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		http:    httpClient,
	}
}

// ForecastEntry is one 3 hour slot of a forecast.
type ForecastEntry struct {
	DtTxt   string             `json:"dt_txt"`
	Main    ForecastMain       `json:"main"`
	Weather []WeatherCondition `json:"weather"`
}

// ForecastMain holds the slot's measurements.
type ForecastMain struct {
	Temp float64 `json:"temp"`
}

// WeatherCondition describes the sky for a slot.
type WeatherCondition struct {
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// ErrMissingForecast is returned when a 2xx forecast body carries no list.
var ErrMissingForecast = errors.New("openweather: response has no forecast list")

type forecastResponse struct {
	List []ForecastEntry `json:"list"`
}

// Forecast returns the metric forecast slots for city.
func (c *OpenWeatherClient) Forecast(ctx context.Context, city string) ([]ForecastEntry, error) {
	params := url.Values{}
	params.Set("q", city)
	params.Set("appid", c.apiKey)
	params.Set("units", "metric")

	req, err := http.NewRequest(http.MethodGet, c.baseURL+"/data/2.5/forecast?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("openweather: build request: %w", err)
	}

	var out forecastResponse
	if err := doJSON(ctx, c.http, "openweather", req, &out); err != nil {
		return nil, err
	}
	if out.List == nil {
		return nil, ErrMissingForecast
	}
	return out.List, nil
}
