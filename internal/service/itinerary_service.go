package service

import (
	"context"
	"fmt"
	"strings"

	apperrors "tripcraft/internal/errors"
	"tripcraft/internal/events"
	"tripcraft/internal/logging"
	"tripcraft/internal/model"
	"tripcraft/internal/repository"
)

// SaveItineraryInput carries a trip the user wants to keep.
type SaveItineraryInput struct {
	City        string
	Arrival     string
	Departure   string
	Itinerary   []string
	Preferences []string
}

// ItineraryService persists and lists saved itineraries.
type ItineraryService interface {
	Save(ctx context.Context, userID uint, in SaveItineraryInput) (*model.SavedItinerary, error)
	List(ctx context.Context, userID uint) ([]model.SavedItinerary, error)
}

type itineraryService struct {
	repo      repository.ItineraryRepository
	publisher events.Publisher
}

// NewItineraryService creates a new itinerary service.
func NewItineraryService(repo repository.ItineraryRepository, publisher events.Publisher) ItineraryService {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &itineraryService{repo: repo, publisher: publisher}
}

// Save stores in for userID. Exactly one row must be written.
func (s *itineraryService) Save(ctx context.Context, userID uint, in SaveItineraryInput) (*model.SavedItinerary, error) {
	l := logging.FromContext(ctx).With("svc", "itinerary.save", "user_id", userID)

	if strings.TrimSpace(in.City) == "" || strings.TrimSpace(in.Arrival) == "" ||
		strings.TrimSpace(in.Departure) == "" || len(in.Itinerary) == 0 {
		return nil, fmt.Errorf("%w: city, arrival, departure and itinerary are required", apperrors.ErrBadRequest)
	}

	itinerary := &model.SavedItinerary{
		UserID:         userID,
		City:           in.City,
		ArrivalDate:    in.Arrival,
		DepartureDate:  in.Departure,
		Preferences:    model.StringList(in.Preferences).OrEmpty(),
		ItineraryItems: model.StringList(in.Itinerary),
	}

	rows, err := s.repo.Create(ctx, itinerary)
	if err != nil {
		l.Error("itinerary_save_failed", "error", err)
		return nil, fmt.Errorf("%w: %w", apperrors.ErrSaveFailed, err)
	}
	if rows != 1 {
		l.Error("itinerary_save_failed", "rows", rows)
		return nil, fmt.Errorf("%w: %d rows written", apperrors.ErrSaveFailed, rows)
	}

	if err := s.publisher.Publish(ctx, events.Event{
		Type:   events.TypeItinerarySaved,
		UserID: userID,
		Data:   map[string]any{"itinerary_id": itinerary.ID, "city": itinerary.City},
	}); err != nil {
		l.Error("event_publish_failed", "type", events.TypeItinerarySaved, "error", err)
	}
	return itinerary, nil
}

// List returns the user's itineraries newest first; never nil.
func (s *itineraryService) List(ctx context.Context, userID uint) ([]model.SavedItinerary, error) {
	itineraries, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list itineraries: %w", err)
	}
	if itineraries == nil {
		itineraries = []model.SavedItinerary{}
	}
	for i := range itineraries {
		itineraries[i].Preferences = itineraries[i].Preferences.OrEmpty()
		itineraries[i].ItineraryItems = itineraries[i].ItineraryItems.OrEmpty()
	}
	return itineraries, nil
}
