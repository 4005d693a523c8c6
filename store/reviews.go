package store

import (
	"context"
	"fmt"

	apperrors "github.com/lleukocyte/travel-guide/internal/errors"
	"github.com/lleukocyte/travel-guide/model"
)

// CreateReview inserts a review. A second review of the same place by the
// same user fails with ErrReviewExists.
func (s *Store) CreateReview(ctx context.Context, review *model.Review) error {
	now := s.now()
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO reviews (place_id, user_id, rating, comment, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		review.PlaceID, review.UserID, review.Rating, review.Comment, now,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.NewReviewExistsError(review.PlaceID, review.UserID)
		}
		return fmt.Errorf("insert review: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("get review id: %w", err)
	}
	review.ID = id
	review.CreatedAt = now
	return nil
}

// ListReviews returns a place's reviews, newest first, with the author's username.
func (s *Store) ListReviews(ctx context.Context, placeID int64) ([]model.Review, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT r.id, r.user_id, r.place_id, r.rating, r.comment, u.username, r.created_at
		FROM reviews r
		JOIN users u ON u.id = r.user_id
		WHERE r.place_id = ?
		ORDER BY r.created_at DESC, r.id DESC`, placeID)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	defer rows.Close()

	reviews := []model.Review{}
	for rows.Next() {
		var r model.Review
		if err := rows.Scan(&r.ID, &r.UserID, &r.PlaceID, &r.Rating, &r.Comment, &r.Username, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan review: %w", err)
		}
		reviews = append(reviews, r)
	}
	return reviews, rows.Err()
}
