package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lleukocyte/travel-guide/model"
)

// CreateReviewHandler rates a place on behalf of the caller.
// Request Body: model.ReviewCreate
func (api *API) CreateReviewHandler(c *gin.Context) {
	placeID, result := ValidateID("placeId", c.Param("placeId"))
	if result.HasErrors() {
		SendValidationError(c, result)
		return
	}

	var data model.ReviewCreate
	if result := ValidateJSONBinding(c, &data); result.HasErrors() {
		SendValidationError(c, result)
		return
	}
	if result := ValidateReviewCreate(&data); result.HasErrors() {
		SendValidationError(c, result)
		return
	}

	review, err := api.places.CreateReview(c.Request.Context(), placeID, currentUser(c), data)
	if err != nil {
		SendServiceError(c, "creating review", err)
		return
	}

	c.JSON(http.StatusCreated, review)
}

// ListReviewsHandler returns a place's reviews
func (api *API) ListReviewsHandler(c *gin.Context) {
	placeID, result := ValidateID("placeId", c.Param("placeId"))
	if result.HasErrors() {
		SendValidationError(c, result)
		return
	}

	reviews, err := api.places.ListReviews(c.Request.Context(), placeID)
	if err != nil {
		SendServiceError(c, "listing reviews", err)
		return
	}

	c.JSON(http.StatusOK, reviews)
}
