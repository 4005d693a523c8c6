package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	apperrors "github.com/lleukocyte/travel-guide/internal/errors"
	"github.com/lleukocyte/travel-guide/model"
)

const placeColumns = `
	p.id, p.name, p.description, p.address, p.city, p.contacts, p.photos,
	p.latitude, p.longitude,
	COALESCE(AVG(r.rating), 0), COUNT(r.id),
	p.created_at, p.updated_at`

const placeFrom = `
	FROM places p
	LEFT JOIN reviews r ON r.place_id = p.id`

// CreatePlace inserts a place and fills in its ID and timestamps.
func (s *Store) CreatePlace(ctx context.Context, place *model.Place, createdBy int64) error {
	photos := place.Photos
	if photos == nil {
		photos = []string{}
	}
	photosJSON, err := json.Marshal(photos)
	if err != nil {
		return fmt.Errorf("marshal photos: %w", err)
	}

	now := s.now()
	var owner sql.NullInt64
	if createdBy > 0 {
		owner = sql.NullInt64{Int64: createdBy, Valid: true}
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO places (name, description, address, city, contacts, photos,
			latitude, longitude, created_by, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		place.Name, place.Description, place.Address, place.City, place.Contacts,
		string(photosJSON), nullFloat(place.Latitude), nullFloat(place.Longitude),
		owner, now, now,
	)
	if err != nil {
		return fmt.Errorf("insert place: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("get place id: %w", err)
	}

	place.ID = id
	place.Photos = photos
	place.CreatedAt = now
	place.UpdatedAt = now
	return nil
}

// GetPlace returns one place with its rating aggregates.
func (s *Store) GetPlace(ctx context.Context, id int64) (*model.Place, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT"+placeColumns+placeFrom+" WHERE p.id = ? GROUP BY p.id", id)

	place, err := scanPlace(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewPlaceNotFoundError(id)
	}
	if err != nil {
		return nil, fmt.Errorf("get place: %w", err)
	}
	return place, nil
}

// ListPlaces returns every place, or only those in city when it is non-empty,
// ordered by ID.
func (s *Store) ListPlaces(ctx context.Context, city string) ([]model.Place, error) {
	query := "SELECT" + placeColumns + placeFrom
	var args []any
	if city != "" {
		query += " WHERE p.city = ?"
		args = append(args, city)
	}
	query += " GROUP BY p.id ORDER BY p.id"

	return s.queryPlaces(ctx, query, args...)
}

// GetPlacesByIDs returns the places with the given IDs, ordered by ID.
// Unknown IDs are skipped.
func (s *Store) GetPlacesByIDs(ctx context.Context, ids []int64) ([]model.Place, error) {
	if len(ids) == 0 {
		return []model.Place{}, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	query := "SELECT" + placeColumns + placeFrom +
		" WHERE p.id IN (" + placeholders + ") GROUP BY p.id ORDER BY p.id"
	return s.queryPlaces(ctx, query, args...)
}

// ListCities returns the distinct cities that have places, sorted.
func (s *Store) ListCities(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT DISTINCT city FROM places ORDER BY city`)
	if err != nil {
		return nil, fmt.Errorf("list cities: %w", err)
	}
	defer rows.Close()

	cities := []string{}
	for rows.Next() {
		var city string
		if err := rows.Scan(&city); err != nil {
			return nil, fmt.Errorf("scan city: %w", err)
		}
		cities = append(cities, city)
	}
	return cities, rows.Err()
}

func (s *Store) queryPlaces(ctx context.Context, query string, args ...any) ([]model.Place, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query places: %w", err)
	}
	defer rows.Close()

	places := []model.Place{}
	for rows.Next() {
		place, err := scanPlace(rows)
		if err != nil {
			return nil, fmt.Errorf("scan place: %w", err)
		}
		places = append(places, *place)
	}
	return places, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPlace(row scanner) (*model.Place, error) {
	var (
		p          model.Place
		photosJSON string
		lat, lon   sql.NullFloat64
	)
	err := row.Scan(
		&p.ID, &p.Name, &p.Description, &p.Address, &p.City, &p.Contacts, &photosJSON,
		&lat, &lon, &p.AverageRating, &p.ReviewCount, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(photosJSON), &p.Photos); err != nil {
		return nil, fmt.Errorf("unmarshal photos: %w", err)
	}
	if p.Photos == nil {
		p.Photos = []string{}
	}
	if lat.Valid {
		p.Latitude = &lat.Float64
	}
	if lon.Valid {
		p.Longitude = &lon.Float64
	}
	return &p, nil
}

func nullFloat(f *float64) sql.NullFloat64 {
	if f == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *f, Valid: true}
}
