package service

import (
	"context"
	"fmt"
	"strings"

	apperrors "tripcraft/internal/errors"
	"tripcraft/internal/logging"
	"tripcraft/internal/upstream"
)

const (
	weatherIconURL = "https://openweathermap.org/img/wn/%s.png"
	middaySlot     = "12:00:00"
)

// PhotoSearcher finds a representative photo for a query.
type PhotoSearcher interface {
	SearchPhoto(ctx context.Context, query string) (photoURL string, found bool, err error)
}

// ForecastProvider returns 3 hour forecast slots for a city.
type ForecastProvider interface {
	Forecast(ctx context.Context, city string) ([]upstream.ForecastEntry, error)
}

// CityImage pairs a city with a photo of it.
type CityImage struct {
	City     string `json:"city"`
	ImageURL string `json:"imageUrl"`
}

// DailyForecast is the midday forecast for one date.
type DailyForecast struct {
	Date        string  `json:"date"`
	Description string  `json:"description"`
	Temperature float64 `json:"temperature"`
	Icon        string  `json:"icon"`
}

// EnrichmentService decorates a trip with a city photo and a weather forecast.
type EnrichmentService interface {
	CityImage(ctx context.Context, city string) (*CityImage, error)
	Weather(ctx context.Context, city string) ([]DailyForecast, error)
}

type enrichmentService struct {
	photos   PhotoSearcher
	forecast ForecastProvider
}

// NewEnrichmentService creates a new enrichment service.
func NewEnrichmentService(photos PhotoSearcher, forecast ForecastProvider) EnrichmentService {
	return &enrichmentService{photos: photos, forecast: forecast}
}

func (s *enrichmentService) CityImage(ctx context.Context, city string) (*CityImage, error) {
	if strings.TrimSpace(city) == "" {
		return nil, fmt.Errorf("%w: city is required", apperrors.ErrBadRequest)
	}

	photoURL, found, err := s.photos.SearchPhoto(ctx, city)
	if err != nil {
		logging.FromContext(ctx).Error("upstream_failed", "upstream", "unsplash", "error", err)
		return nil, fmt.Errorf("%w: %w", apperrors.ErrUpstream, err)
	}
	if !found {
		return nil, apperrors.ErrNotFound
	}
	return &CityImage{City: city, ImageURL: photoURL}, nil
}

// Weather keeps the first 12:00:00 slot of every date.
func (s *enrichmentService) Weather(ctx context.Context, city string) ([]DailyForecast, error) {
	if strings.TrimSpace(city) == "" {
		return nil, fmt.Errorf("%w: city is required", apperrors.ErrBadRequest)
	}

	entries, err := s.forecast.Forecast(ctx, city)
	if err != nil {
		logging.FromContext(ctx).Error("upstream_failed", "upstream", "openweather", "error", err)
		return nil, fmt.Errorf("%w: %w", apperrors.ErrUpstream, err)
	}

	out := make([]DailyForecast, 0, len(entries)/8+1)
	seen := make(map[string]struct{})
	for _, e := range entries {
		if !strings.Contains(e.DtTxt, middaySlot) || len(e.Weather) == 0 {
			continue
		}
		date, _, _ := strings.Cut(e.DtTxt, " ")
		if _, dup := seen[date]; dup {
			continue
		}
		seen[date] = struct{}{}
		out = append(out, DailyForecast{
			Date:        date,
			Description: e.Weather[0].Description,
			Temperature: e.Main.Temp,
			Icon:        fmt.Sprintf(weatherIconURL, e.Weather[0].Icon),
		})
	}
	return out, nil
}
