package model

import "time"

// Review is one user's rating of one place. A user reviews a place at most once.
type Review struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	PlaceID   int64     `json:"place_id"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	Username  string    `json:"user_username"`
	CreatedAt time.Time `json:"created_at"`
}

// ReviewCreate is the payload for a new review.
type ReviewCreate struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment" binding:"required,min=1"`
}
