package api

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/lleukocyte/travel-guide/internal/ranking"
	"github.com/lleukocyte/travel-guide/model"
)

const (
	photosFormField   = "photos"
	maxPhotosPerPlace = 10
	uploadsURLPrefix  = "/uploads"
	strategyHeader    = "X-Ranking-Strategy"
)

// ListPlacesHandler returns places ranked for the caller.
// Query: city (optional), explain=true to include the strategy and scores.
func (api *API) ListPlacesHandler(c *gin.Context) {
	city := c.Query("city")
	explain, _ := strconv.ParseBool(c.DefaultQuery("explain", "false"))

	var userID int64
	if user := currentUser(c); user != nil {
		userID = user.ID
	}

	result, err := api.places.ListPlaces(c.Request.Context(), city, userID)
	if err != nil {
		SendServiceError(c, "listing places", err)
		return
	}

	c.Header(strategyHeader, string(result.Strategy))
	if explain {
		c.JSON(http.StatusOK, result)
		return
	}
	c.JSON(http.StatusOK, placesOrEmpty(result))
}

// GetPlaceHandler returns a single place
func (api *API) GetPlaceHandler(c *gin.Context) {
	placeID, result := ValidateID("placeId", c.Param("placeId"))
	if result.HasErrors() {
		SendValidationError(c, result)
		return
	}

	place, err := api.places.GetPlace(c.Request.Context(), placeID)
	if err != nil {
		SendServiceError(c, "retrieving place", err)
		return
	}

	c.JSON(http.StatusOK, place)
}

// ListCitiesHandler returns the cities that have places
func (api *API) ListCitiesHandler(c *gin.Context) {
	cities, err := api.places.Cities(c.Request.Context())
	if err != nil {
		SendServiceError(c, "listing cities", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"cities": cities})
}

// CreatePlaceHandler stores a place from a multipart form with optional photos.
// Form fields: name, description, address, city, contacts, photos (files)
func (api *API) CreatePlaceHandler(c *gin.Context) {
	var data model.PlaceCreate
	if result := ValidateFormBinding(c, &data); result.HasErrors() {
		SendValidationError(c, result)
		return
	}
	if result := ValidatePlaceCreate(&data); result.HasErrors() {
		SendValidationError(c, result)
		return
	}

	photos, err := api.savePhotos(c)
	if err != nil {
		var vr *photoValidationError
		if errors.As(err, &vr) {
			SendValidationError(c, vr.result)
			return
		}
		_ = c.Error(err)
		SendError(c, http.StatusInternalServerError, ErrorCodeUploadFailed, "Failed to store photos")
		return
	}
	data.Photos = photos

	place, err := api.places.CreatePlace(c.Request.Context(), data, currentUser(c).ID)
	if err != nil {
		api.removePhotos(photos)
		SendServiceError(c, "creating place", err)
		return
	}

	c.JSON(http.StatusCreated, place)
}

type photoValidationError struct {
	result *ValidationResult
}

func (e *photoValidationError) Error() string {
	return "invalid photo upload"
}

// savePhotos writes uploaded files under uploadDir with random names and
// returns their public URLs
func (api *API) savePhotos(c *gin.Context) ([]string, error) {
	form, err := c.MultipartForm()
	if err != nil || form == nil {
		// Not multipart (e.g. urlencoded): no photos.
		return []string{}, nil
	}

	files := form.File[photosFormField]
	if len(files) > maxPhotosPerPlace {
		result := &ValidationResult{Valid: true}
		result.AddError(photosFormField, fmt.Sprintf("At most %d photos are allowed", maxPhotosPerPlace))
		return nil, &photoValidationError{result: result}
	}
	for _, file := range files {
		if result := ValidatePhotoFilename(file.Filename); result.HasErrors() {
			return nil, &photoValidationError{result: result}
		}
	}
	if len(files) == 0 {
		return []string{}, nil
	}

	if err := os.MkdirAll(api.uploadDir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload directory: %w", err)
	}

	urls := make([]string, 0, len(files))
	for _, file := range files {
		name := uuid.NewString() + strings.ToLower(filepath.Ext(file.Filename))
		if err := c.SaveUploadedFile(file, filepath.Join(api.uploadDir, name)); err != nil {
			api.removePhotos(urls)
			return nil, fmt.Errorf("save %s: %w", file.Filename, err)
		}
		urls = append(urls, path.Join(uploadsURLPrefix, name))
	}
	return urls, nil
}

// removePhotos deletes files saved for a request that failed afterwards
func (api *API) removePhotos(urls []string) {
	for _, u := range urls {
		p := filepath.Join(api.uploadDir, path.Base(u))
		if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
			api.logger.WithError(err).WithField("path", p).Warn("Failed to remove orphaned photo")
		}
	}
}

func placesOrEmpty(result ranking.Result) []model.Place {
	if result.Places == nil {
		return []model.Place{}
	}
	return result.Places
}
