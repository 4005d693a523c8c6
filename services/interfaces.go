package services

import (
	"context"

	"github.com/lleukocyte/travel-guide/internal/ranking"
	"github.com/lleukocyte/travel-guide/model"
)

// UserService manages accounts and authentication.
type UserService interface {
	Register(ctx context.Context, data model.UserCreate) (*model.User, error)
	Verify(ctx context.Context, email, code string) error
	Login(ctx context.Context, creds model.Credentials) (*model.Token, error)
	Authenticate(ctx context.Context, token string) (*model.User, error)
}

// PlaceLister ranks the catalog for a user (0 for anonymous callers).
type PlaceLister interface {
	ListPlaces(ctx context.Context, city string, userID int64) (ranking.Result, error)
}

// PlaceCatalog reads and creates places.
type PlaceCatalog interface {
	GetPlace(ctx context.Context, id int64) (*model.Place, error)
	Cities(ctx context.Context) ([]string, error)
	CreatePlace(ctx context.Context, data model.PlaceCreate, userID int64) (*model.Place, error)
}

// ReviewManager creates and lists reviews.
type ReviewManager interface {
	CreateReview(ctx context.Context, placeID int64, user *model.User, data model.ReviewCreate) (*model.Review, error)
	ListReviews(ctx context.Context, placeID int64) ([]model.Review, error)
}

// FavoriteManager manages a user's saved places.
type FavoriteManager interface {
	AddFavorite(ctx context.Context, userID, placeID int64) (*model.Favorite, error)
	RemoveFavorite(ctx context.Context, userID, placeID int64) error
	IsFavorite(ctx context.Context, userID, placeID int64) (bool, error)
	ListFavorites(ctx context.Context, userID int64) ([]model.Favorite, error)
}

// PlaceService combines all place operations.
type PlaceService interface {
	PlaceLister
	PlaceCatalog
	ReviewManager
	FavoriteManager
}

// AnalyticsProvider exposes ranking statistics.
type AnalyticsProvider interface {
	GetDashboardData() model.AnalyticsDashboard
}

// HealthChecker reports whether a backing resource is reachable.
type HealthChecker interface {
	Ping(ctx context.Context) error
}
