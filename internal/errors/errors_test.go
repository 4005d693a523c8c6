package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestPlaceNotFoundError(t *testing.T) {
	err := NewPlaceNotFoundError(42)

	// Test error message
	expectedMsg := "place with ID '42' not found"
	if err.Error() != expectedMsg {
		t.Errorf("Expected error message '%s', got '%s'", expectedMsg, err.Error())
	}

	// Test Is() method
	if !errors.Is(err, ErrPlaceNotFound) {
		t.Error("Expected error to match ErrPlaceNotFound sentinel")
	}

	// Test that it doesn't match other sentinels
	if errors.Is(err, ErrUserNotFound) {
		t.Error("Error should not match ErrUserNotFound")
	}
}

func TestUserNotFoundError(t *testing.T) {
	err := NewUserNotFoundError("ann@example.com")

	expectedMsg := "user with email 'ann@example.com' not found"
	if err.Error() != expectedMsg {
		t.Errorf("Expected error message '%s', got '%s'", expectedMsg, err.Error())
	}

	err2 := NewUserIDNotFoundError(7)

	expectedMsg2 := "user with ID '7' not found"
	if err2.Error() != expectedMsg2 {
		t.Errorf("Expected error message '%s', got '%s'", expectedMsg2, err2.Error())
	}

	if !errors.Is(err, ErrUserNotFound) || !errors.Is(err2, ErrUserNotFound) {
		t.Error("Expected both errors to match ErrUserNotFound sentinel")
	}
}

func TestEmailTakenError(t *testing.T) {
	err := NewEmailTakenError("ann@example.com")

	expectedMsg := "user with email 'ann@example.com' is already registered"
	if err.Error() != expectedMsg {
		t.Errorf("Expected error message '%s', got '%s'", expectedMsg, err.Error())
	}

	if !errors.Is(err, ErrEmailTaken) {
		t.Error("Expected error to match ErrEmailTaken sentinel")
	}
}

func TestReviewExistsError(t *testing.T) {
	err := NewReviewExistsError(3, 9)

	expectedMsg := "user '9' already reviewed place '3'"
	if err.Error() != expectedMsg {
		t.Errorf("Expected error message '%s', got '%s'", expectedMsg, err.Error())
	}

	if !errors.Is(err, ErrReviewExists) {
		t.Error("Expected error to match ErrReviewExists sentinel")
	}
}

func TestFavoriteError(t *testing.T) {
	exists := NewFavoriteExistsError(3, 9)
	missing := NewFavoriteNotFoundError(3, 9)

	if exists.Error() != "place '3' is already in favorites of user '9'" {
		t.Errorf("Unexpected message: %s", exists.Error())
	}
	if missing.Error() != "place '3' is not in favorites of user '9'" {
		t.Errorf("Unexpected message: %s", missing.Error())
	}

	if !errors.Is(exists, ErrFavoriteExists) || errors.Is(exists, ErrFavoriteNotFound) {
		t.Error("Expected duplicate favorite to match only ErrFavoriteExists")
	}
	if !errors.Is(missing, ErrFavoriteNotFound) || errors.Is(missing, ErrFavoriteExists) {
		t.Error("Expected missing favorite to match only ErrFavoriteNotFound")
	}
}

func TestValidationError(t *testing.T) {
	// Test with field
	err := NewValidationError("name", "cannot be empty")

	expectedMsg := "validation error for field 'name': cannot be empty"
	if err.Error() != expectedMsg {
		t.Errorf("Expected error message '%s', got '%s'", expectedMsg, err.Error())
	}

	// Test without field
	err2 := NewValidationError("", "cannot be empty")

	expectedMsg2 := "validation error: cannot be empty"
	if err2.Error() != expectedMsg2 {
		t.Errorf("Expected error message '%s', got '%s'", expectedMsg2, err2.Error())
	}

	if !errors.Is(err, ErrInvalidInput) {
		t.Error("Expected error to match ErrInvalidInput sentinel")
	}
	if !errors.Is(err2, ErrInvalidInput) {
		t.Error("Expected error without field to match ErrInvalidInput sentinel")
	}
}

func TestErrorChaining(t *testing.T) {
	// Test that our custom errors can be wrapped and unwrapped
	originalErr := NewPlaceNotFoundError(5)
	wrappedErr := fmt.Errorf("load favorites: %w", originalErr)

	// Should still be able to detect the original error
	if !errors.Is(wrappedErr, ErrPlaceNotFound) {
		t.Error("Expected wrapped error to still match ErrPlaceNotFound sentinel")
	}

	var placeErr *PlaceNotFoundError
	if !errors.As(wrappedErr, &placeErr) {
		t.Fatal("Expected to be able to unwrap to PlaceNotFoundError")
	}

	if placeErr.PlaceID != 5 {
		t.Errorf("Expected place ID 5, got %d", placeErr.PlaceID)
	}

	joined := errors.Join(NewEmailTakenError("a@b.c"), errors.New("additional context"))
	if !errors.Is(joined, ErrEmailTaken) {
		t.Error("Expected joined error to still match ErrEmailTaken sentinel")
	}
}
