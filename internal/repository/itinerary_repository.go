package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"tripcraft/internal/model"
)

// ItineraryRepository defines saved itinerary persistence operations.
type ItineraryRepository interface {
	// Create inserts itinerary and returns the number of rows written.
	Create(ctx context.Context, itinerary *model.SavedItinerary) (int64, error)
	ListByUser(ctx context.Context, userID uint) ([]model.SavedItinerary, error)
}

type itineraryRepository struct {
	db *gorm.DB
}

// NewItineraryRepository creates a new saved itinerary repository.
func NewItineraryRepository(db *gorm.DB) ItineraryRepository {
	return &itineraryRepository{db: db}
}

func (r *itineraryRepository) Create(ctx context.Context, itinerary *model.SavedItinerary) (int64, error) {
	res := r.db.WithContext(ctx).Omit(clause.Associations).Create(itinerary)
	return res.RowsAffected, res.Error
}

// ListByUser returns the user's itineraries, newest first.
func (r *itineraryRepository) ListByUser(ctx context.Context, userID uint) ([]model.SavedItinerary, error) {
	itineraries := make([]model.SavedItinerary, 0)
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Order("id DESC").
		Find(&itineraries).Error
	if err != nil {
		return nil, err
	}
	return itineraries, nil
}
