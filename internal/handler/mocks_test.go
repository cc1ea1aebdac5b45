package handler

import (
	"context"
	"encoding/json"

	"github.com/stretchr/testify/mock"

	"tripcraft/internal/service"
)

type MockGenerationService struct {
	mock.Mock
}

func (m *MockGenerationService) Generate(ctx context.Context, in service.GenerateInput) ([]string, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

type MockEnrichmentService struct {
	mock.Mock
}

func (m *MockEnrichmentService) CityImage(ctx context.Context, city string) (*service.CityImage, error) {
	args := m.Called(ctx, city)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.CityImage), args.Error(1)
}

func (m *MockEnrichmentService) Weather(ctx context.Context, city string) ([]service.DailyForecast, error) {
	args := m.Called(ctx, city)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]service.DailyForecast), args.Error(1)
}

type MockHotelService struct {
	mock.Mock
}

func (m *MockHotelService) Search(ctx context.Context, city, checkIn, checkOut string) (json.RawMessage, error) {
	args := m.Called(ctx, city, checkIn, checkOut)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(json.RawMessage), args.Error(1)
}
