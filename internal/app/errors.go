package service

import (
	"errors"
	"fmt"

	"github.com/okian/leetview/internal/adapters/filesystem"
	"github.com/okian/leetview/internal/adapters/repository"
)

// Sentinel kinds callers map to responses with errors.Is.
var (
	ErrValidation      = errors.New("validation failed")
	ErrInvalidRating   = fmt.Errorf("%w: rating must be an integer between %d and %d", ErrValidation, repository.MinRating, repository.MaxRating)
	ErrNotFound        = errors.New("not found")
	ErrUnknownLanguage = fmt.Errorf("%w: unknown language", ErrNotFound)
	ErrPathTraversal   = errors.New("path escapes solutions directory")
	ErrNotStarted      = errors.New("service not started")
)

// classify maps adapter errors onto the service taxonomy. Client-visible
// kinds keep only the adapter sentinel, never its message, so server paths
// stay out of 4xx bodies.
func classify(rel string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, filesystem.ErrOutsideRoot):
		return fmt.Errorf("%w: %q", ErrPathTraversal, rel)
	case errors.Is(err, filesystem.ErrRootMissing):
		return fmt.Errorf("%w: %q: %w", ErrNotFound, rel, filesystem.ErrRootMissing)
	case errors.Is(err, filesystem.ErrNotRegular):
		return fmt.Errorf("%w: %q: %w", ErrNotFound, rel, filesystem.ErrNotRegular)
	case errors.Is(err, filesystem.ErrNotExist):
		return fmt.Errorf("%w: %q: %w", ErrNotFound, rel, filesystem.ErrNotExist)
	case errors.Is(err, repository.ErrInvalidRating):
		return fmt.Errorf("%w: %w", ErrInvalidRating, err)
	case errors.Is(err, repository.ErrEmptyKey):
		return fmt.Errorf("%w: filename is required", ErrValidation)
	}
	return err
}
