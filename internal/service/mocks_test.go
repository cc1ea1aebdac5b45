package service

import (
	"context"
	"encoding/json"

	"github.com/stretchr/testify/mock"

	"tripcraft/internal/events"
	"tripcraft/internal/model"
	"tripcraft/internal/upstream"
)

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error) {
	args := m.Called(ctx, username, email)
	return args.Bool(0), args.Error(1)
}

// MockItineraryRepository is a mock implementation of ItineraryRepository.
type MockItineraryRepository struct {
	mock.Mock
}

func (m *MockItineraryRepository) Create(ctx context.Context, itinerary *model.SavedItinerary) (int64, error) {
	args := m.Called(ctx, itinerary)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockItineraryRepository) ListByUser(ctx context.Context, userID uint) ([]model.SavedItinerary, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.SavedItinerary), args.Error(1)
}

// MockPublisher is a mock implementation of events.Publisher.
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, event events.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockPublisher) Close() error {
	return m.Called().Error(0)
}

// MockTextGenerator is a mock implementation of TextGenerator.
type MockTextGenerator struct {
	mock.Mock
}

func (m *MockTextGenerator) Complete(ctx context.Context, system, prompt string) (string, error) {
	args := m.Called(ctx, system, prompt)
	return args.String(0), args.Error(1)
}

// MockPhotoSearcher is a mock implementation of PhotoSearcher.
type MockPhotoSearcher struct {
	mock.Mock
}

func (m *MockPhotoSearcher) SearchPhoto(ctx context.Context, query string) (string, bool, error) {
	args := m.Called(ctx, query)
	return args.String(0), args.Bool(1), args.Error(2)
}

// MockForecastProvider is a mock implementation of ForecastProvider.
type MockForecastProvider struct {
	mock.Mock
}

func (m *MockForecastProvider) Forecast(ctx context.Context, city string) ([]upstream.ForecastEntry, error) {
	args := m.Called(ctx, city)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]upstream.ForecastEntry), args.Error(1)
}

// MockHotelSearcher is a mock implementation of HotelSearcher.
type MockHotelSearcher struct {
	mock.Mock
}

func (m *MockHotelSearcher) HotelOffers(ctx context.Context, cityCode, checkIn, checkOut string) (json.RawMessage, error) {
	args := m.Called(ctx, cityCode, checkIn, checkOut)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(json.RawMessage), args.Error(1)
}
