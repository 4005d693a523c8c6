package model

import "time"

// Favorite links a user to a place they saved.
type Favorite struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"-"`
	PlaceID   int64     `json:"place_id"`
	Place     *Place    `json:"place,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
