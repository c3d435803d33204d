// Copyright (c) 2026 Funtush. All rights reserved.

package movie

import "context"

// # Movie Data Access

// Repository is the data store gateway for movies.
//
// Implementations return NOT_FOUND app errors for missing ids and
// [dberr.ErrVersionConflict] when an update lost a version race.
type Repository interface {

	/*
		FindByID returns the movie with the given id.

		Returns:
		  - *Movie: the stored document
		  - error: NOT_FOUND when missing
	*/
	FindByID(ctx context.Context, id string) (*Movie, error)

	// FindByIDs returns the movies that exist among ids, in no particular order.
	FindByIDs(ctx context.Context, ids []string) ([]*Movie, error)

	// FindMany executes a structured query.
	FindMany(ctx context.Context, query Query) ([]*Movie, error)

	// Count returns the number of movies matching every condition.
	Count(ctx context.Context, conditions []Condition) (int, error)

	// Create inserts a new movie.
	Create(ctx context.Context, movie *Movie) error

	/*
		Update replaces a stored movie when its version still matches.

		Description: On success movie.Version is advanced to the stored value.

		Returns:
		  - error: NOT_FOUND when missing, dberr.ErrVersionConflict on a lost race
	*/
	Update(ctx context.Context, movie *Movie) error

	// Delete removes one movie. NOT_FOUND when missing.
	Delete(ctx context.Context, id string) error

	// DeleteAll removes every movie and returns how many were removed.
	DeleteAll(ctx context.Context) (int64, error)

	/*
		ReplaceAll swaps the whole collection for movies.

		Description: Atomic where the backend supports transactions. Otherwise a
		failure after the delete returns dberr.ErrPartialReplace.
	*/
	ReplaceAll(ctx context.Context, movies []*Movie) error

	// RandomSample returns up to size movies chosen at random.
	RandomSample(ctx context.Context, size int) ([]*Movie, error)
}
