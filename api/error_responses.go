package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "github.com/lleukocyte/travel-guide/internal/errors"
)

// ErrorCode represents standardized error codes for the API
type ErrorCode string

const (
	// Client Error Codes (4xx)
	ErrorCodeValidationFailed   ErrorCode = "VALIDATION_FAILED"
	ErrorCodeInvalidRequest     ErrorCode = "INVALID_REQUEST"
	ErrorCodeInvalidJSON        ErrorCode = "INVALID_JSON"
	ErrorCodePlaceNotFound      ErrorCode = "PLACE_NOT_FOUND"
	ErrorCodeUserNotFound       ErrorCode = "USER_NOT_FOUND"
	ErrorCodeEmailTaken         ErrorCode = "EMAIL_ALREADY_REGISTERED"
	ErrorCodeReviewExists       ErrorCode = "REVIEW_ALREADY_EXISTS"
	ErrorCodeFavoriteExists     ErrorCode = "FAVORITE_ALREADY_EXISTS"
	ErrorCodeFavoriteNotFound   ErrorCode = "FAVORITE_NOT_FOUND"
	ErrorCodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	ErrorCodeUserNotActive      ErrorCode = "USER_NOT_ACTIVE"
	ErrorCodeInvalidCode        ErrorCode = "INVALID_VERIFICATION_CODE"
	ErrorCodeUnauthorized       ErrorCode = "UNAUTHORIZED"

	// Server Error Codes (5xx)
	ErrorCodeInternalError ErrorCode = "INTERNAL_ERROR"
	ErrorCodeUploadFailed  ErrorCode = "UPLOAD_FAILED"
	ErrorCodeUnavailable   ErrorCode = "SERVICE_UNAVAILABLE"
)

// ErrorDetail provides additional context for an error
type ErrorDetail struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// APIError represents a standardized API error response
type APIError struct {
	Error     string        `json:"error"`
	Code      ErrorCode     `json:"code"`
	Message   string        `json:"message"`
	Details   []ErrorDetail `json:"details,omitempty"`
	Timestamp time.Time     `json:"timestamp"`
	RequestID string        `json:"request_id,omitempty"`
}

// APIErrorResponse creates a standardized error response
func APIErrorResponse(code ErrorCode, message string, details ...ErrorDetail) *APIError {
	return &APIError{
		Error:     "Request failed",
		Code:      code,
		Message:   message,
		Details:   details,
		Timestamp: time.Now(),
	}
}

// SendError sends a standardized error response
func SendError(c *gin.Context, statusCode int, code ErrorCode, message string, details ...ErrorDetail) {
	errorResponse := APIErrorResponse(code, message, details...)

	// Add request ID if available
	if requestID, exists := c.Get(requestIDKey); exists {
		if id, ok := requestID.(string); ok {
			errorResponse.RequestID = id
		}
	}

	c.AbortWithStatusJSON(statusCode, errorResponse)
}

// SendStructuredValidationError sends a validation error with structured details
func SendStructuredValidationError(c *gin.Context, result *ValidationResult) {
	details := make([]ErrorDetail, len(result.Errors))
	for i, err := range result.Errors {
		details[i] = ErrorDetail{
			Field:   err.Field,
			Message: err.Message,
			Code:    "VALIDATION_ERROR",
		}
	}

	SendError(c, http.StatusBadRequest, ErrorCodeValidationFailed, "Request validation failed", details...)
}

// SendInvalidJSONError sends a standardized invalid JSON error
func SendInvalidJSONError(c *gin.Context, err error) {
	SendError(c, http.StatusBadRequest, ErrorCodeInvalidJSON,
		"Invalid JSON in request body: "+err.Error())
}

// SendUnauthorizedError sends a 401 with a bearer challenge
func SendUnauthorizedError(c *gin.Context, message string) {
	c.Header("WWW-Authenticate", "Bearer")
	SendError(c, http.StatusUnauthorized, ErrorCodeUnauthorized, message)
}

// SendInternalError sends a standardized internal server error. The cause is
// logged, not returned to the client.
func SendInternalError(c *gin.Context, operation string, err error) {
	_ = c.Error(err)
	SendError(c, http.StatusInternalServerError, ErrorCodeInternalError,
		"Internal error during "+operation)
}

// SendServiceError maps domain errors to HTTP responses; anything unknown is a 500.
func SendServiceError(c *gin.Context, operation string, err error) {
	switch {
	case errors.Is(err, apperrors.ErrPlaceNotFound):
		SendError(c, http.StatusNotFound, ErrorCodePlaceNotFound, err.Error())
	case errors.Is(err, apperrors.ErrUserNotFound):
		SendError(c, http.StatusNotFound, ErrorCodeUserNotFound, err.Error())
	case errors.Is(err, apperrors.ErrEmailTaken):
		SendError(c, http.StatusConflict, ErrorCodeEmailTaken, err.Error())
	case errors.Is(err, apperrors.ErrReviewExists):
		SendError(c, http.StatusConflict, ErrorCodeReviewExists, err.Error())
	case errors.Is(err, apperrors.ErrFavoriteExists):
		SendError(c, http.StatusConflict, ErrorCodeFavoriteExists, err.Error())
	case errors.Is(err, apperrors.ErrFavoriteNotFound):
		SendError(c, http.StatusNotFound, ErrorCodeFavoriteNotFound, err.Error())
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		SendError(c, http.StatusUnauthorized, ErrorCodeInvalidCredentials, "Invalid credentials")
	case errors.Is(err, apperrors.ErrUserNotActive):
		SendError(c, http.StatusForbidden, ErrorCodeUserNotActive, "Account is not verified")
	case errors.Is(err, apperrors.ErrInvalidCode):
		SendError(c, http.StatusBadRequest, ErrorCodeInvalidCode, err.Error())
	case errors.Is(err, apperrors.ErrInvalidToken):
		SendUnauthorizedError(c, "Invalid or expired token")
	case errors.Is(err, apperrors.ErrInvalidInput):
		SendError(c, http.StatusBadRequest, ErrorCodeValidationFailed, err.Error())
	default:
		SendInternalError(c, operation, err)
	}
}
