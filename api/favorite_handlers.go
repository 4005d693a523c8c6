package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// AddFavoriteHandler saves a place to the caller's favorites
func (api *API) AddFavoriteHandler(c *gin.Context) {
	placeID, result := ValidateID("placeId", c.Param("placeId"))
	if result.HasErrors() {
		SendValidationError(c, result)
		return
	}

	favorite, err := api.places.AddFavorite(c.Request.Context(), currentUser(c).ID, placeID)
	if err != nil {
		SendServiceError(c, "adding favorite", err)
		return
	}

	c.JSON(http.StatusCreated, favorite)
}

// RemoveFavoriteHandler drops a place from the caller's favorites
func (api *API) RemoveFavoriteHandler(c *gin.Context) {
	placeID, result := ValidateID("placeId", c.Param("placeId"))
	if result.HasErrors() {
		SendValidationError(c, result)
		return
	}

	if err := api.places.RemoveFavorite(c.Request.Context(), currentUser(c).ID, placeID); err != nil {
		SendServiceError(c, "removing favorite", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Place removed from favorites"})
}

// FavoriteStatusHandler reports whether the caller saved the place
func (api *API) FavoriteStatusHandler(c *gin.Context) {
	placeID, result := ValidateID("placeId", c.Param("placeId"))
	if result.HasErrors() {
		SendValidationError(c, result)
		return
	}

	isFavorite, err := api.places.IsFavorite(c.Request.Context(), currentUser(c).ID, placeID)
	if err != nil {
		SendServiceError(c, "checking favorite", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"is_favorite": isFavorite})
}

// ListFavoritesHandler returns the caller's favorites with their places
func (api *API) ListFavoritesHandler(c *gin.Context) {
	favorites, err := api.places.ListFavorites(c.Request.Context(), currentUser(c).ID)
	if err != nil {
		SendServiceError(c, "listing favorites", err)
		return
	}

	c.JSON(http.StatusOK, favorites)
}
