// Package repository persists per-file ratings.
package repository

import "context"

// Store provides read/write access to ratings keyed by a solution path.
type Store interface {
	// Get returns the rating for key and whether one exists.
	Get(ctx context.Context, key string) (int, bool, error)

	// Upsert inserts or replaces the rating for key.
	// Returns ErrInvalidRating when rating is outside [MinRating, MaxRating].
	Upsert(ctx context.Context, key string, rating int) error

	// Count returns the number of rated files.
	Count(ctx context.Context) (int, error)

	// Ping reports whether the store is reachable.
	Ping(ctx context.Context) error

	// Close releases the underlying resources.
	Close() error
}
