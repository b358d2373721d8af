package repository

import (
	"errors"
	"fmt"
)

// Rating bounds, inclusive.
const (
	MinRating = 1
	MaxRating = 5
)

// Sentinel kinds for rating store errors.
var (
	ErrInvalidRating = errors.New("invalid rating")
	ErrEmptyKey      = errors.New("empty rating key")
	ErrClosed        = errors.New("store closed")
)

// ValidateRating reports ErrInvalidRating for values outside the bounds.
func ValidateRating(rating int) error {
	if rating < MinRating || rating > MaxRating {
		return fmt.Errorf("%w: %d not in [%d, %d]", ErrInvalidRating, rating, MinRating, MaxRating)
	}
	return nil
}

func validate(key string, rating int) error {
	if key == "" {
		return ErrEmptyKey
	}
	return ValidateRating(rating)
}
