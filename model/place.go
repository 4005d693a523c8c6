package model

import "time"

// Place is a venue users can review and favorite.
// AverageRating is derived from reviews and doubles as the popularity score.
type Place struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	Address       string    `json:"address"`
	City          string    `json:"city"`
	Contacts      string    `json:"contacts"`
	Photos        []string  `json:"photos"`
	Latitude      *float64  `json:"latitude,omitempty"`
	Longitude     *float64  `json:"longitude,omitempty"`
	AverageRating float64   `json:"average_rating"`
	ReviewCount   int       `json:"review_count"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Text returns the free text the ranking engine tokenizes: name and description.
func (p Place) Text() string {
	return p.Name + " " + p.Description
}

// Popularity returns the non-personalized ranking score.
func (p Place) Popularity() float64 {
	return p.AverageRating
}

// PlaceCreate holds the fields a user supplies when adding a place.
type PlaceCreate struct {
	Name        string   `json:"name" form:"name" binding:"required,min=1,max=50"`
	Description string   `json:"description" form:"description" binding:"required,min=5"`
	Address     string   `json:"address" form:"address" binding:"required,min=5"`
	City        string   `json:"city" form:"city" binding:"required,min=2"`
	Contacts    string   `json:"contacts" form:"contacts" binding:"required,min=5"`
	Photos      []string `json:"photos" form:"-"`
}
