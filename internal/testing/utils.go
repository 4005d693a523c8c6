// Package testing provides utilities and helpers for testing the travel guide.
package testing

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lleukocyte/travel-guide/model"
	"github.com/lleukocyte/travel-guide/store"
)

// CreateTestStore opens a SQLite store in a temporary directory that is
// removed when the test ends
func CreateTestStore(t *testing.T) *store.Store {
	t.Helper()

	st, err := store.Open(filepath.Join(t.TempDir(), "travel_guide_test.db"))
	require.NoError(t, err, "Failed to open test store")

	t.Cleanup(func() {
		_ = st.Close()
	})
	return st
}

// NewTestLogger returns a logger that records entries instead of printing them
func NewTestLogger() (*logrus.Logger, *test.Hook) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	return logger, hook
}

// CreateTestUser inserts a user with the given password hash
func CreateTestUser(t *testing.T, st *store.Store, email, username string, active bool) *model.User {
	t.Helper()

	user := &model.User{
		Email:            email,
		Username:         username,
		PasswordHash:     "not-a-real-hash",
		IsActive:         active,
		VerificationCode: "TEST42",
	}
	require.NoError(t, st.CreateUser(context.Background(), user), "Failed to create test user")
	return user
}

// PlaceFixture describes a place to seed
type PlaceFixture struct {
	Name        string
	Description string
	City        string
}

// SeedPlaces inserts the fixtures in order and returns them with IDs
func SeedPlaces(t *testing.T, st *store.Store, fixtures ...PlaceFixture) []model.Place {
	t.Helper()

	places := make([]model.Place, 0, len(fixtures))
	for _, f := range fixtures {
		city := f.City
		if city == "" {
			city = "Москва"
		}
		place := &model.Place{
			Name:        f.Name,
			Description: f.Description,
			Address:     "ул. Тестовая, 1",
			City:        city,
			Contacts:    "+7 900 000-00-00",
		}
		require.NoError(t, st.CreatePlace(context.Background(), place, 0), "Failed to seed place %q", f.Name)
		places = append(places, *place)
	}
	return places
}

// RateTestPlace adds a review so the place gets a popularity score
func RateTestPlace(t *testing.T, st *store.Store, placeID, userID int64, rating int) {
	t.Helper()

	review := &model.Review{PlaceID: placeID, UserID: userID, Rating: rating, Comment: "test review"}
	require.NoError(t, st.CreateReview(context.Background(), review), "Failed to rate place %d", placeID)
}

// AssertPlaceOrder checks the IDs of places in order
func AssertPlaceOrder(t *testing.T, expected []int64, places []model.Place) {
	t.Helper()

	actual := make([]int64, len(places))
	for i, p := range places {
		actual[i] = p.ID
	}
	assert.Equal(t, expected, actual, "Unexpected place order")
}
