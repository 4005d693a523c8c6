package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common error conditions
var (
	// ErrPlaceNotFound is returned when a place is not found
	ErrPlaceNotFound = errors.New("place not found")

	// ErrUserNotFound is returned when a user is not found
	ErrUserNotFound = errors.New("user not found")

	// ErrEmailTaken is returned when registering an e-mail that already has an account
	ErrEmailTaken = errors.New("email already registered")

	// ErrReviewExists is returned when a user reviews the same place twice
	ErrReviewExists = errors.New("review already exists")

	// ErrFavoriteExists is returned when a place is already in the user's favorites
	ErrFavoriteExists = errors.New("favorite already exists")

	// ErrFavoriteNotFound is returned when removing a place that is not a favorite
	ErrFavoriteNotFound = errors.New("favorite not found")

	// ErrInvalidCredentials is returned on a wrong e-mail/password pair
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrUserNotActive is returned when an unverified user tries to log in
	ErrUserNotActive = errors.New("user not activated")

	// ErrInvalidCode is returned when an e-mail verification code does not match
	ErrInvalidCode = errors.New("invalid verification code")

	// ErrInvalidToken is returned when an access token is malformed, forged or expired
	ErrInvalidToken = errors.New("invalid or expired token")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")
)

// PlaceNotFoundError represents a place not found error with context
type PlaceNotFoundError struct {
	PlaceID int64
}

func (e *PlaceNotFoundError) Error() string {
	return fmt.Sprintf("place with ID '%d' not found", e.PlaceID)
}

func (e *PlaceNotFoundError) Is(target error) bool {
	return target == ErrPlaceNotFound
}

// NewPlaceNotFoundError creates a new PlaceNotFoundError
func NewPlaceNotFoundError(placeID int64) *PlaceNotFoundError {
	return &PlaceNotFoundError{PlaceID: placeID}
}

// UserNotFoundError represents a user lookup miss, by e-mail or by ID
type UserNotFoundError struct {
	Email  string
	UserID int64
}

func (e *UserNotFoundError) Error() string {
	if e.Email != "" {
		return fmt.Sprintf("user with email '%s' not found", e.Email)
	}
	return fmt.Sprintf("user with ID '%d' not found", e.UserID)
}

func (e *UserNotFoundError) Is(target error) bool {
	return target == ErrUserNotFound
}

// NewUserNotFoundError creates a new UserNotFoundError for an e-mail lookup
func NewUserNotFoundError(email string) *UserNotFoundError {
	return &UserNotFoundError{Email: email}
}

// NewUserIDNotFoundError creates a new UserNotFoundError for an ID lookup
func NewUserIDNotFoundError(userID int64) *UserNotFoundError {
	return &UserNotFoundError{UserID: userID}
}

// EmailTakenError represents a duplicate registration
type EmailTakenError struct {
	Email string
}

func (e *EmailTakenError) Error() string {
	return fmt.Sprintf("user with email '%s' is already registered", e.Email)
}

func (e *EmailTakenError) Is(target error) bool {
	return target == ErrEmailTaken
}

// NewEmailTakenError creates a new EmailTakenError
func NewEmailTakenError(email string) *EmailTakenError {
	return &EmailTakenError{Email: email}
}

// ReviewExistsError represents a second review of the same place by one user
type ReviewExistsError struct {
	PlaceID int64
	UserID  int64
}

func (e *ReviewExistsError) Error() string {
	return fmt.Sprintf("user '%d' already reviewed place '%d'", e.UserID, e.PlaceID)
}

func (e *ReviewExistsError) Is(target error) bool {
	return target == ErrReviewExists
}

// NewReviewExistsError creates a new ReviewExistsError
func NewReviewExistsError(placeID, userID int64) *ReviewExistsError {
	return &ReviewExistsError{PlaceID: placeID, UserID: userID}
}

// FavoriteError represents a favorite add/remove conflict with context
type FavoriteError struct {
	PlaceID int64
	UserID  int64
	Exists  bool // true: already a favorite; false: not a favorite
}

func (e *FavoriteError) Error() string {
	if e.Exists {
		return fmt.Sprintf("place '%d' is already in favorites of user '%d'", e.PlaceID, e.UserID)
	}
	return fmt.Sprintf("place '%d' is not in favorites of user '%d'", e.PlaceID, e.UserID)
}

func (e *FavoriteError) Is(target error) bool {
	if e.Exists {
		return target == ErrFavoriteExists
	}
	return target == ErrFavoriteNotFound
}

// NewFavoriteExistsError creates a FavoriteError for a duplicate favorite
func NewFavoriteExistsError(placeID, userID int64) *FavoriteError {
	return &FavoriteError{PlaceID: placeID, UserID: userID, Exists: true}
}

// NewFavoriteNotFoundError creates a FavoriteError for a missing favorite
func NewFavoriteNotFoundError(placeID, userID int64) *FavoriteError {
	return &FavoriteError{PlaceID: placeID, UserID: userID}
}

// ValidationError represents an input validation error with context
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error for field '%s': %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
