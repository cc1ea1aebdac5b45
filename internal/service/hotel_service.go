package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	apperrors "tripcraft/internal/errors"
	"tripcraft/internal/logging"
)

// HotelSearcher queries hotel offers for a city and stay.
type HotelSearcher interface {
	HotelOffers(ctx context.Context, cityCode, checkIn, checkOut string) (json.RawMessage, error)
}

// HotelService proxies hotel searches.
type HotelService interface {
	Search(ctx context.Context, city, checkIn, checkOut string) (json.RawMessage, error)
}

type hotelService struct {
	searcher HotelSearcher
}

// NewHotelService creates a new hotel service.
func NewHotelService(searcher HotelSearcher) HotelService {
	return &hotelService{searcher: searcher}
}

// Search returns the upstream offers document unchanged.
func (s *hotelService) Search(ctx context.Context, city, checkIn, checkOut string) (json.RawMessage, error) {
	if strings.TrimSpace(city) == "" || strings.TrimSpace(checkIn) == "" || strings.TrimSpace(checkOut) == "" {
		return nil, fmt.Errorf("%w: city, checkInDate and checkOutDate are required", apperrors.ErrBadRequest)
	}

	offers, err := s.searcher.HotelOffers(ctx, city, checkIn, checkOut)
	if err != nil {
		logging.FromContext(ctx).Error("upstream_failed", "upstream", "amadeus", "city", city, "error", err)
		return nil, fmt.Errorf("%w: %w", apperrors.ErrUpstream, err)
	}
	return offers, nil
}
