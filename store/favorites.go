package store

import (
	"context"
	"fmt"

	apperrors "github.com/lleukocyte/travel-guide/internal/errors"
	"github.com/lleukocyte/travel-guide/model"
)

// AddFavorite saves placeID to the user's favorites.
func (s *Store) AddFavorite(ctx context.Context, userID, placeID int64) (*model.Favorite, error) {
	now := s.now()
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO favorites (user_id, place_id, created_at) VALUES (?, ?, ?)`,
		userID, placeID, now)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperrors.NewFavoriteExistsError(placeID, userID)
		}
		return nil, fmt.Errorf("insert favorite: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("get favorite id: %w", err)
	}
	return &model.Favorite{ID: id, UserID: userID, PlaceID: placeID, CreatedAt: now}, nil
}

// RemoveFavorite deletes placeID from the user's favorites.
func (s *Store) RemoveFavorite(ctx context.Context, userID, placeID int64) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM favorites WHERE user_id = ? AND place_id = ?`, userID, placeID)
	if err != nil {
		return fmt.Errorf("delete favorite: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete favorite: %w", err)
	}
	if n == 0 {
		return apperrors.NewFavoriteNotFoundError(placeID, userID)
	}
	return nil
}

// IsFavorite reports whether placeID is in the user's favorites.
func (s *Store) IsFavorite(ctx context.Context, userID, placeID int64) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM favorites WHERE user_id = ? AND place_id = ?)`,
		userID, placeID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check favorite: %w", err)
	}
	return exists, nil
}

// FavoritePlaceIDs returns the IDs of the user's favorite places in the order they were added.
func (s *Store) FavoritePlaceIDs(ctx context.Context, userID int64) ([]int64, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT place_id FROM favorites WHERE user_id = ? ORDER BY created_at, id`, userID)
	if err != nil {
		return nil, fmt.Errorf("list favorite ids: %w", err)
	}
	defer rows.Close()

	ids := []int64{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan favorite id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// ListFavorites returns the user's favorites with their places, newest first.
func (s *Store) ListFavorites(ctx context.Context, userID int64) ([]model.Favorite, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, place_id, created_at FROM favorites
		WHERE user_id = ?
		ORDER BY created_at DESC, id DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}

	favorites := []model.Favorite{}
	ids := []int64{}
	for rows.Next() {
		f := model.Favorite{UserID: userID}
		if err := rows.Scan(&f.ID, &f.PlaceID, &f.CreatedAt); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan favorite: %w", err)
		}
		favorites = append(favorites, f)
		ids = append(ids, f.PlaceID)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	// Close before the next query: the pool holds a single connection.
	rows.Close()

	places, err := s.GetPlacesByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[int64]*model.Place, len(places))
	for i := range places {
		byID[places[i].ID] = &places[i]
	}
	for i := range favorites {
		favorites[i].Place = byID[favorites[i].PlaceID]
	}
	return favorites, nil
}
