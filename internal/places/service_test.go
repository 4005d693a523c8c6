package places

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lleukocyte/travel-guide/internal/analytics"
	apperrors "github.com/lleukocyte/travel-guide/internal/errors"
	"github.com/lleukocyte/travel-guide/internal/geocoder"
	"github.com/lleukocyte/travel-guide/internal/ranking"
	"github.com/lleukocyte/travel-guide/internal/tokenizer"
	"github.com/lleukocyte/travel-guide/model"
	"github.com/lleukocyte/travel-guide/store"
)

type stubGeocoder struct {
	coords *geocoder.Coordinates
	err    error
	calls  int
}

func (g *stubGeocoder) Geocode(_ context.Context, _, _ string) (*geocoder.Coordinates, error) {
	g.calls++
	return g.coords, g.err
}

type fixture struct {
	svc     *Service
	store   *store.Store
	tracker *analytics.Service
	user    *model.User
}

func newFixture(t *testing.T, geo geocoder.Geocoder) *fixture {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "places.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	user := &model.User{Email: "ann@example.com", Username: "ann", PasswordHash: "x", IsActive: true}
	require.NoError(t, st.CreateUser(context.Background(), user))

	logger, _ := test.NewNullLogger()
	tracker := analytics.NewService()
	svc := NewService(st, ranking.NewRanker(tokenizer.NewRussian()), geo, tracker, logger)
	return &fixture{svc: svc, store: st, tracker: tracker, user: user}
}

func (f *fixture) create(t *testing.T, name, description, city string) *model.Place {
	t.Helper()
	p, err := f.svc.CreatePlace(context.Background(), model.PlaceCreate{
		Name:        name,
		Description: description,
		Address:     "ул. Пушкина, 10",
		City:        city,
		Contacts:    "+7 900 000-00-00",
	}, f.user.ID)
	require.NoError(t, err)
	return p
}

func TestListPlaces_PersonalizedAndAnonymous(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)

	museum := f.create(t, "Музей живописи", "картины скульптуры", "Москва")
	park := f.create(t, "Парк Горького", "прогулки реки", "Казань")
	gallery := f.create(t, "Галерея живописи", "картины художников", "Москва")
	cafe := f.create(t, "Кафе Парк", "кофе десерты", "Москва")
	cinema := f.create(t, "Кинотеатр", "новые фильмы", "Москва")

	_, err := f.svc.CreateReview(ctx, cinema.ID, f.user, model.ReviewCreate{Rating: 5, Comment: "Отлично"})
	require.NoError(t, err)

	_, err = f.svc.AddFavorite(ctx, f.user.ID, museum.ID)
	require.NoError(t, err)
	_, err = f.svc.AddFavorite(ctx, f.user.ID, park.ID)
	require.NoError(t, err)

	t.Run("personalized", func(t *testing.T) {
		result, err := f.svc.ListPlaces(ctx, "Москва", f.user.ID)
		require.NoError(t, err)

		assert.Equal(t, ranking.StrategyPersonalized, result.Strategy)
		// Favorites from other cities still shape the ranking; favorites themselves are excluded.
		assert.Equal(t, []int64{gallery.ID, cafe.ID, cinema.ID}, result.IDs())
		require.Len(t, result.Scored, 2)
		assert.Greater(t, result.Scored[0].Score, result.Scored[1].Score)
	})

	t.Run("anonymous", func(t *testing.T) {
		result, err := f.svc.ListPlaces(ctx, "  Москва ", 0)
		require.NoError(t, err)

		assert.Equal(t, ranking.StrategyPopularity, result.Strategy)
		assert.Equal(t, []int64{cinema.ID, museum.ID, gallery.ID, cafe.ID}, result.IDs())
	})

	t.Run("tracked", func(t *testing.T) {
		dashboard := f.tracker.GetDashboardData()
		assert.Equal(t, 2, dashboard.TotalListings)
		assert.Equal(t, 1, dashboard.Strategies.Personalized)
		assert.Equal(t, 1, dashboard.Strategies.Popularity)
		require.NotEmpty(t, dashboard.TopCities)
		assert.Equal(t, "Москва", dashboard.TopCities[0].City)
	})
}

func TestListPlaces_UserWithoutFavorites(t *testing.T) {
	f := newFixture(t, nil)
	a := f.create(t, "Музей", "история города", "Москва")

	result, err := f.svc.ListPlaces(context.Background(), "", f.user.ID)
	require.NoError(t, err)
	assert.Equal(t, ranking.StrategyPopularity, result.Strategy)
	assert.Equal(t, []int64{a.ID}, result.IDs())
}

func TestCreatePlace_Geocoding(t *testing.T) {
	t.Run("coordinates stored", func(t *testing.T) {
		geo := &stubGeocoder{coords: &geocoder.Coordinates{Latitude: 55.75, Longitude: 37.61}}
		f := newFixture(t, geo)

		p := f.create(t, "  Музей ", "история города", "Москва")
		assert.Equal(t, "Музей", p.Name)
		assert.Equal(t, 1, geo.calls)

		got, err := f.svc.GetPlace(context.Background(), p.ID)
		require.NoError(t, err)
		require.NotNil(t, got.Latitude)
		assert.InDelta(t, 55.75, *got.Latitude, 1e-9)
		assert.InDelta(t, 37.61, *got.Longitude, 1e-9)
	})

	t.Run("lookup failure does not block creation", func(t *testing.T) {
		f := newFixture(t, &stubGeocoder{err: errors.New("timeout")})

		p := f.create(t, "Музей", "история города", "Москва")
		assert.NotZero(t, p.ID)
		assert.Nil(t, p.Latitude)
	})

	t.Run("empty photo names dropped", func(t *testing.T) {
		f := newFixture(t, nil)
		p, err := f.svc.CreatePlace(context.Background(), model.PlaceCreate{
			Name: "Музей", Description: "история", Address: "ул. Пушкина", City: "Москва", Contacts: "12345",
			Photos: []string{"/static/uploads/a.jpg", " ", ""},
		}, f.user.ID)
		require.NoError(t, err)
		assert.Equal(t, []string{"/static/uploads/a.jpg"}, p.Photos)
	})
}

func TestCities(t *testing.T) {
	f := newFixture(t, nil)
	f.create(t, "Музей", "история", "Москва")
	f.create(t, "Кремль", "крепость", "Казань")
	f.create(t, "Парк", "прогулки", "Москва")

	cities, err := f.svc.Cities(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Казань", "Москва"}, cities)
}

func TestReviews(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)
	p := f.create(t, "Музей", "история", "Москва")

	review, err := f.svc.CreateReview(ctx, p.ID, f.user, model.ReviewCreate{Rating: 4, Comment: " Хорошо "})
	require.NoError(t, err)
	assert.Equal(t, "ann", review.Username)
	assert.Equal(t, "Хорошо", review.Comment)

	_, err = f.svc.CreateReview(ctx, p.ID, f.user, model.ReviewCreate{Rating: 2, Comment: "again"})
	assert.True(t, errors.Is(err, apperrors.ErrReviewExists))

	_, err = f.svc.CreateReview(ctx, 999, f.user, model.ReviewCreate{Rating: 2, Comment: "nowhere"})
	assert.True(t, errors.Is(err, apperrors.ErrPlaceNotFound))

	reviews, err := f.svc.ListReviews(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, reviews, 1)
	assert.Equal(t, 4, reviews[0].Rating)

	got, err := f.svc.GetPlace(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 4.0, got.AverageRating)
	assert.Equal(t, 1, got.ReviewCount)
}

func TestFavorites(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)
	p := f.create(t, "Музей", "история", "Москва")

	_, err := f.svc.AddFavorite(ctx, f.user.ID, 999)
	assert.True(t, errors.Is(err, apperrors.ErrPlaceNotFound))

	fav, err := f.svc.AddFavorite(ctx, f.user.ID, p.ID)
	require.NoError(t, err)
	require.NotNil(t, fav.Place)
	assert.Equal(t, "Музей", fav.Place.Name)

	_, err = f.svc.AddFavorite(ctx, f.user.ID, p.ID)
	assert.True(t, errors.Is(err, apperrors.ErrFavoriteExists))

	ok, err := f.svc.IsFavorite(ctx, f.user.ID, p.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	favorites, err := f.svc.ListFavorites(ctx, f.user.ID)
	require.NoError(t, err)
	require.Len(t, favorites, 1)

	require.NoError(t, f.svc.RemoveFavorite(ctx, f.user.ID, p.ID))
	err = f.svc.RemoveFavorite(ctx, f.user.ID, p.ID)
	assert.True(t, errors.Is(err, apperrors.ErrFavoriteNotFound))
}
