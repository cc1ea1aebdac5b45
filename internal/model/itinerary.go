package model

import (
	"bytes"
	"encoding/json"
	"time"
)

// SavedItinerary is an itinerary a user chose to keep.
// Preferences and ItineraryItems are stored as JSON arrays of strings in text columns.
type SavedItinerary struct {
	ID             uint       `json:"id" gorm:"primaryKey"`
	UserID         uint       `json:"user_id" gorm:"not null;index:idx_saved_itineraries_user_created,priority:1"`
	City           string     `json:"city" gorm:"size:255;not null"`
	ArrivalDate    string     `json:"arrival_date" gorm:"size:64;not null"`
	DepartureDate  string     `json:"departure_date" gorm:"size:64;not null"`
	Preferences    StringList `json:"preferences" gorm:"type:text;serializer:json"`
	ItineraryItems StringList `json:"itinerary_items" gorm:"type:text;serializer:json;not null"`
	CreatedAt      time.Time  `json:"created_at" gorm:"index:idx_saved_itineraries_user_created,priority:2"`

	// Relations
	User User `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// StringList is an ordered list of strings.
// It decodes from either a JSON array or a single JSON string.
type StringList []string

// UnmarshalJSON implements json.Unmarshaler.
func (l *StringList) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*l = nil
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var single string
		if err := json.Unmarshal(data, &single); err != nil {
			return err
		}
		if single == "" {
			*l = StringList{}
			return nil
		}
		*l = StringList{single}
		return nil
	}
	var items []string
	if err := json.Unmarshal(data, &items); err != nil {
		return err
	}
	*l = items
	return nil
}

// OrEmpty returns l, or an empty non-nil list when l is nil.
func (l StringList) OrEmpty() StringList {
	if l == nil {
		return StringList{}
	}
	return l
}
