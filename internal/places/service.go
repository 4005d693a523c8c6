// Package places implements the place catalog: listing with personalized
// ranking, creation with geocoding, reviews and favorites.
package places

import (
	"context"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/lleukocyte/travel-guide/internal/geocoder"
	"github.com/lleukocyte/travel-guide/internal/ranking"
	"github.com/lleukocyte/travel-guide/model"
)

// Store is the persistence the service needs.
type Store interface {
	CreatePlace(ctx context.Context, place *model.Place, createdBy int64) error
	GetPlace(ctx context.Context, id int64) (*model.Place, error)
	ListPlaces(ctx context.Context, city string) ([]model.Place, error)
	GetPlacesByIDs(ctx context.Context, ids []int64) ([]model.Place, error)
	ListCities(ctx context.Context) ([]string, error)

	CreateReview(ctx context.Context, review *model.Review) error
	ListReviews(ctx context.Context, placeID int64) ([]model.Review, error)

	AddFavorite(ctx context.Context, userID, placeID int64) (*model.Favorite, error)
	RemoveFavorite(ctx context.Context, userID, placeID int64) error
	IsFavorite(ctx context.Context, userID, placeID int64) (bool, error)
	ListFavorites(ctx context.Context, userID int64) ([]model.Favorite, error)
	FavoritePlaceIDs(ctx context.Context, userID int64) ([]int64, error)
}

// EventTracker receives one event per ranked listing.
type EventTracker interface {
	TrackRankingEvent(event model.RankingEvent)
}

// Service coordinates the store, the ranker and the geocoder.
type Service struct {
	store          Store
	ranker         *ranking.Ranker
	geocoder       geocoder.Geocoder
	tracker        EventTracker
	geocodeTimeout time.Duration
	logger         *logrus.Entry
}

// NewService wires a place service. geo and tracker may be nil.
func NewService(store Store, ranker *ranking.Ranker, geo geocoder.Geocoder, tracker EventTracker, logger *logrus.Logger) *Service {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Service{
		store:          store,
		ranker:         ranker,
		geocoder:       geo,
		tracker:        tracker,
		geocodeTimeout: 15 * time.Second,
		logger:         logger.WithField("component", "places"),
	}
}

// ListPlaces returns the places of city (all cities when empty) ranked for
// userID. Anonymous callers (userID 0) get the popularity order.
func (s *Service) ListPlaces(ctx context.Context, city string, userID int64) (ranking.Result, error) {
	start := time.Now()
	city = strings.TrimSpace(city)

	catalog, err := s.store.ListPlaces(ctx, city)
	if err != nil {
		return ranking.Result{}, err
	}

	favorites, err := s.favoritePlaces(ctx, userID)
	if err != nil {
		return ranking.Result{}, err
	}

	result := s.ranker.Rank(catalog, favorites)

	elapsed := time.Since(start)
	s.logger.WithFields(logrus.Fields{
		"city":      city,
		"user_id":   userID,
		"favorites": len(favorites),
		"strategy":  result.Strategy,
		"scored":    len(result.Scored),
		"results":   len(result.Places),
		"elapsed":   elapsed,
	}).Debug("Ranked places")

	if s.tracker != nil {
		s.tracker.TrackRankingEvent(model.RankingEvent{
			City:          city,
			Strategy:      string(result.Strategy),
			FavoriteCount: len(favorites),
			ScoredCount:   len(result.Scored),
			ResultCount:   len(result.Places),
			ResponseTime:  elapsed,
		})
	}

	return result, nil
}

// favoritePlaces loads the user's favorites from every city, not only the listed one.
func (s *Service) favoritePlaces(ctx context.Context, userID int64) ([]model.Place, error) {
	if userID == 0 {
		return nil, nil
	}
	ids, err := s.store.FavoritePlaceIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.store.GetPlacesByIDs(ctx, ids)
}

// GetPlace returns one place.
func (s *Service) GetPlace(ctx context.Context, id int64) (*model.Place, error) {
	return s.store.GetPlace(ctx, id)
}

// Cities returns the distinct cities that have places.
func (s *Service) Cities(ctx context.Context) ([]string, error) {
	return s.store.ListCities(ctx)
}

// CreatePlace stores a new place. Coordinates are looked up from the address;
// a failed lookup is logged and the place is stored without them.
func (s *Service) CreatePlace(ctx context.Context, data model.PlaceCreate, userID int64) (*model.Place, error) {
	place := &model.Place{
		Name:        strings.TrimSpace(data.Name),
		Description: strings.TrimSpace(data.Description),
		Address:     strings.TrimSpace(data.Address),
		City:        strings.TrimSpace(data.City),
		Contacts:    strings.TrimSpace(data.Contacts),
		Photos:      nonEmpty(data.Photos),
	}

	if s.geocoder != nil {
		geoCtx, cancel := context.WithTimeout(ctx, s.geocodeTimeout)
		coords, err := s.geocoder.Geocode(geoCtx, place.City, place.Address)
		cancel()
		switch {
		case err != nil:
			s.logger.WithError(err).WithField("address", place.Address).Warn("Geocoding failed")
		case coords != nil:
			place.Latitude = &coords.Latitude
			place.Longitude = &coords.Longitude
		}
	}

	if err := s.store.CreatePlace(ctx, place, userID); err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"place_id": place.ID,
		"city":     place.City,
		"user_id":  userID,
	}).Info("Place created")
	return place, nil
}

// CreateReview rates a place on behalf of user. The place must exist and
// each user reviews a place once.
func (s *Service) CreateReview(ctx context.Context, placeID int64, user *model.User, data model.ReviewCreate) (*model.Review, error) {
	if _, err := s.store.GetPlace(ctx, placeID); err != nil {
		return nil, err
	}

	review := &model.Review{
		PlaceID:  placeID,
		UserID:   user.ID,
		Rating:   data.Rating,
		Comment:  strings.TrimSpace(data.Comment),
		Username: user.Username,
	}
	if err := s.store.CreateReview(ctx, review); err != nil {
		return nil, err
	}
	return review, nil
}

// ListReviews returns the reviews of a place, newest first.
func (s *Service) ListReviews(ctx context.Context, placeID int64) ([]model.Review, error) {
	return s.store.ListReviews(ctx, placeID)
}

// AddFavorite saves an existing place to the user's favorites.
func (s *Service) AddFavorite(ctx context.Context, userID, placeID int64) (*model.Favorite, error) {
	place, err := s.store.GetPlace(ctx, placeID)
	if err != nil {
		return nil, err
	}

	fav, err := s.store.AddFavorite(ctx, userID, placeID)
	if err != nil {
		return nil, err
	}
	fav.Place = place
	return fav, nil
}

// RemoveFavorite drops a place from the user's favorites.
func (s *Service) RemoveFavorite(ctx context.Context, userID, placeID int64) error {
	return s.store.RemoveFavorite(ctx, userID, placeID)
}

// IsFavorite reports whether the user saved the place.
func (s *Service) IsFavorite(ctx context.Context, userID, placeID int64) (bool, error) {
	return s.store.IsFavorite(ctx, userID, placeID)
}

// ListFavorites returns the user's favorites with their places.
func (s *Service) ListFavorites(ctx context.Context, userID int64) ([]model.Favorite, error) {
	return s.store.ListFavorites(ctx, userID)
}

func nonEmpty(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
