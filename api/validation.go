// Package api provides the HTTP handlers, middleware and request validation.
package api

import (
	"path/filepath"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/gin-gonic/gin"

	"github.com/lleukocyte/travel-guide/model"
)

// allowedPhotoExtensions lists the image types accepted for place photos
var allowedPhotoExtensions = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
	".gif":  {},
	".webp": {},
}

// ValidationError represents a validation error with field context
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationResult holds the result of validation operations
type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

// AddError adds a validation error to the result
func (vr *ValidationResult) AddError(field, message string) {
	vr.Valid = false
	vr.Errors = append(vr.Errors, ValidationError{
		Field:   field,
		Message: message,
	})
}

// HasErrors returns true if there are validation errors
func (vr *ValidationResult) HasErrors() bool {
	return len(vr.Errors) > 0
}

// ValidateID parses a positive integer path parameter
func ValidateID(field, raw string) (int64, *ValidationResult) {
	result := &ValidationResult{Valid: true}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		result.AddError(field, "Must be a positive integer")
		return 0, result
	}
	return id, result
}

// ValidatePlaceCreate checks the trimmed lengths of a new place's fields
func ValidatePlaceCreate(data *model.PlaceCreate) *ValidationResult {
	result := &ValidationResult{Valid: true}

	checkLength(result, "name", data.Name, 1, 50)
	checkLength(result, "description", data.Description, 5, 0)
	checkLength(result, "address", data.Address, 5, 0)
	checkLength(result, "city", data.City, 2, 0)
	checkLength(result, "contacts", data.Contacts, 5, 0)

	return result
}

// ValidateReviewCreate checks a review's rating range and comment
func ValidateReviewCreate(data *model.ReviewCreate) *ValidationResult {
	result := &ValidationResult{Valid: true}

	if data.Rating < 1 || data.Rating > 5 {
		result.AddError("rating", "Rating must be between 1 and 5")
	}
	checkLength(result, "comment", data.Comment, 1, 0)

	return result
}

// ValidateUserCreate checks registration fields beyond the binding tags
func ValidateUserCreate(data *model.UserCreate) *ValidationResult {
	result := &ValidationResult{Valid: true}

	checkLength(result, "username", data.Username, 1, 50)
	if strings.TrimSpace(data.Password) == "" {
		result.AddError("password", "Password cannot be empty or whitespace-only")
	}

	return result
}

// ValidatePhotoFilename accepts common image extensions only
func ValidatePhotoFilename(name string) *ValidationResult {
	result := &ValidationResult{Valid: true}

	ext := strings.ToLower(filepath.Ext(name))
	if _, ok := allowedPhotoExtensions[ext]; !ok {
		result.AddError("photos", "Unsupported image type '"+ext+"' in '"+name+"'")
	}
	return result
}

// checkLength validates the rune length of the trimmed value; max 0 means unbounded
func checkLength(result *ValidationResult, field, value string, min, max int) {
	n := utf8.RuneCountInString(strings.TrimSpace(value))
	switch {
	case n < min && min == 1:
		result.AddError(field, "Field is required")
	case n < min:
		result.AddError(field, "Must be at least "+strconv.Itoa(min)+" characters")
	case max > 0 && n > max:
		result.AddError(field, "Must be at most "+strconv.Itoa(max)+" characters")
	}
}

// SendValidationError sends a standardized validation error response
func SendValidationError(c *gin.Context, result *ValidationResult) {
	SendStructuredValidationError(c, result)
}

// ValidateJSONBinding validates JSON binding and returns a standardized error
func ValidateJSONBinding(c *gin.Context, target interface{}) *ValidationResult {
	result := &ValidationResult{Valid: true}

	if err := c.ShouldBindJSON(target); err != nil {
		result.AddError("request_body", "Invalid request body: "+err.Error())
	}

	return result
}

// ValidateFormBinding validates form (including multipart) binding
func ValidateFormBinding(c *gin.Context, target interface{}) *ValidationResult {
	result := &ValidationResult{Valid: true}

	if err := c.ShouldBind(target); err != nil {
		result.AddError("form", "Invalid form data: "+err.Error())
	}

	return result
}
