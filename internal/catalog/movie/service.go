// Copyright (c) 2026 Funtush. All rights reserved.

package movie

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/parthibdhar/Funtush-Server/internal/catalog/seed"
	"github.com/parthibdhar/Funtush-Server/internal/platform/apperr"
	"github.com/parthibdhar/Funtush-Server/internal/platform/constants"
	"github.com/parthibdhar/Funtush-Server/internal/platform/dberr"
	"github.com/parthibdhar/Funtush-Server/internal/platform/lock"
	"github.com/parthibdhar/Funtush-Server/internal/platform/metrics"
	"github.com/parthibdhar/Funtush-Server/pkg/slice"
	"github.com/parthibdhar/Funtush-Server/pkg/uuid"
)

// RatingBounds is the accepted review rating range, inclusive.
type RatingBounds struct {
	Min float64
	Max float64
}

// # Service Layer

// Service orchestrates the movie catalogue: discovery, reviews and administration.
type Service struct {
	repo    Repository
	locker  lock.Locker
	metrics *metrics.Registry
	ratings RatingBounds
	logger  *slog.Logger
	now     func() time.Time
}

// NewService constructs a new [Service] with its required dependencies.
func NewService(repo Repository, locker lock.Locker, registry *metrics.Registry, ratings RatingBounds, logger *slog.Logger) *Service {
	return &Service{
		repo:    repo,
		locker:  locker,
		metrics: registry,
		ratings: ratings,
		logger:  logger,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// # Discovery

/*
ListMovies runs a filtered, searchable and paginated listing.

Parameters:
  - ctx: context.Context
  - filter: Filter (raw query string values)

Returns:
  - *ListResult: one page plus page count and total
  - error: VALIDATION_ERROR for malformed filters, NOT_FOUND when nothing matches
*/
func (service *Service) ListMovies(ctx context.Context, filter Filter) (*ListResult, error) {
	query, page, err := BuildQuery(filter)
	if err != nil {
		return nil, err
	}

	total, err := service.repo.Count(ctx, query.Conditions)
	if err != nil {
		return nil, err
	}
	if total == 0 {
		return nil, apperr.NotFound("Movies")
	}

	movies, err := service.repo.FindMany(ctx, query)
	if err != nil {
		return nil, err
	}

	return NewListResult(movies, page, total), nil
}

// GetMovie returns one movie by id.
func (service *Service) GetMovie(ctx context.Context, id string) (*Movie, error) {
	return service.repo.FindByID(ctx, id)
}

// TopRated returns the best rated movies, newest first among equal rates.
func (service *Service) TopRated(ctx context.Context) ([]*Movie, error) {
	return service.repo.FindMany(ctx, Query{Sort: topRatedFirst, Limit: constants.TopRatedLimit})
}

// RandomMovies returns a random selection of movies.
func (service *Service) RandomMovies(ctx context.Context) ([]*Movie, error) {
	return service.repo.RandomSample(ctx, constants.RandomSampleSize)
}

// FindByIDs returns the stored movies among ids. Unknown ids are skipped.
func (service *Service) FindByIDs(ctx context.Context, ids []string) ([]*Movie, error) {
	return service.repo.FindByIDs(ctx, ids)
}

// Exists reports whether a movie with id is stored.
func (service *Service) Exists(ctx context.Context, id string) (bool, error) {
	_, err := service.repo.FindByID(ctx, id)
	if apperr.HasCode(err, apperr.CodeNotFound) {
		return false, nil
	}
	return err == nil, err
}

// # Reviews

/*
AddReview posts a review on behalf of reviewer.

Description: The rating must fall inside the configured bounds. The movie is
read, reviewed and written back under the per-movie lock, and the write is
retried when another replica won the version race.

Parameters:
  - ctx: context.Context
  - movieID: string
  - reviewer: Reviewer (id plus profile snapshot)
  - rating: float64
  - comment: string

Returns:
  - *Movie: the movie with the new review
  - error: VALIDATION_ERROR, NOT_FOUND, ALREADY_REVIEWED or CONFLICT
*/
func (service *Service) AddReview(ctx context.Context, movieID string, reviewer Reviewer, rating float64, comment string) (*Movie, error) {
	if rating < service.ratings.Min || rating > service.ratings.Max {
		return nil, apperr.ValidationError("Invalid review", apperr.FieldError{
			Field:   FieldRating,
			Message: fmt.Sprintf("Must be between %g and %g", service.ratings.Min, service.ratings.Max),
		})
	}

	reviewedAt := service.now()
	updated, err := service.mutate(ctx, movieID, func(current *Movie) (*Movie, error) {
		return AddReview(current, reviewer, rating, comment, reviewedAt)
	})
	if err != nil {
		return nil, err
	}

	service.metrics.ReviewsCreated.Inc()
	service.logger.InfoContext(ctx, "movie_review_created",
		slog.String("movie_id", movieID),
		slog.String("user_id", reviewer.ID),
		slog.Float64("rate", updated.Rate),
	)

	return updated, nil
}

// # Administration

/*
CreateMovie stores a single new movie.

Parameters:
  - ctx: context.Context
  - draft: Draft
  - actorID: string (the admin creating the movie)

Returns:
  - *Movie: the stored movie
  - error: VALIDATION_ERROR or persistence errors
*/
func (service *Service) CreateMovie(ctx context.Context, draft Draft, actorID string) (*Movie, error) {
	movie := NewMovie(uuid.New(), draft, actorID, service.now())
	if err := movie.Validate(); err != nil {
		return nil, err
	}

	if err := service.repo.Create(ctx, movie); err != nil {
		return nil, err
	}

	service.logger.InfoContext(ctx, "movie_created",
		slog.String("movie_id", movie.ID),
		slog.String("name", movie.Name),
	)

	return movie, nil
}

/*
UpdateMovie applies an admin patch.

Description: An empty patch writes nothing and returns the stored movie.

Returns:
  - *Movie: the updated movie
  - error: VALIDATION_ERROR, NOT_FOUND or CONFLICT
*/
func (service *Service) UpdateMovie(ctx context.Context, id string, patch Patch) (*Movie, error) {
	if patch.IsEmpty() {
		return service.repo.FindByID(ctx, id)
	}

	updated, err := service.mutate(ctx, id, func(current *Movie) (*Movie, error) {
		next := ApplyPatch(current, patch)
		if err := next.Validate(); err != nil {
			return nil, err
		}
		return next, nil
	})
	if err != nil {
		return nil, err
	}

	service.logger.InfoContext(ctx, "movie_updated", slog.String("movie_id", id))
	return updated, nil
}

// DeleteMovie removes one movie.
func (service *Service) DeleteMovie(ctx context.Context, id string) error {
	if err := service.repo.Delete(ctx, id); err != nil {
		return err
	}

	service.logger.InfoContext(ctx, "movie_deleted", slog.String("movie_id", id))
	return nil
}

// DeleteAllMovies empties the catalogue and returns how many movies were removed.
func (service *Service) DeleteAllMovies(ctx context.Context) (int64, error) {
	removed, err := service.repo.DeleteAll(ctx)
	if err != nil {
		return 0, err
	}

	service.logger.InfoContext(ctx, "movies_deleted", slog.Int64("count", removed))
	return removed, nil
}

/*
ImportMovies replaces the whole catalogue with drafts.

Description: Every draft is validated before anything is deleted. An empty
set empties the catalogue.

Returns:
  - []*Movie: the imported movies
  - error: VALIDATION_ERROR, REIMPORT_REQUIRED or persistence errors
*/
func (service *Service) ImportMovies(ctx context.Context, drafts []Draft) ([]*Movie, error) {
	now := service.now()

	movies := make([]*Movie, 0, len(drafts))
	for index, draft := range drafts {
		movie := NewMovie(uuid.New(), draft, "", now)
		if err := movie.Validate(); err != nil {
			return nil, importEntryError(index, err)
		}
		movies = append(movies, movie)
	}

	if err := service.repo.ReplaceAll(ctx, movies); err != nil {
		service.metrics.CatalogImports.WithLabelValues("movie", "failure").Inc()
		if errors.Is(err, dberr.ErrPartialReplace) {
			return nil, apperr.ReimportRequired("Movie", err)
		}
		return nil, err
	}

	service.metrics.CatalogImports.WithLabelValues("movie", "success").Inc()
	service.logger.InfoContext(ctx, "movies_imported", slog.Int("count", len(movies)))

	return movies, nil
}

// ImportSeed replaces the catalogue with the embedded starter movies.
func (service *Service) ImportSeed(ctx context.Context) ([]*Movie, error) {
	var drafts []Draft
	if err := json.Unmarshal(seed.Movies, &drafts); err != nil {
		return nil, apperr.Internal(fmt.Errorf("movie_seed_decode_failed: %w", err))
	}
	return service.ImportMovies(ctx, drafts)
}

// # Helpers

/*
mutate runs one read-modify-write cycle on a movie.

Description: The cycle holds the per-movie lock. If the versioned write still
loses to a writer that bypassed the lock, it re-reads and retries up to
[constants.MaxWriteAttempts] times.
*/
func (service *Service) mutate(ctx context.Context, id string, change func(current *Movie) (*Movie, error)) (*Movie, error) {
	var updated *Movie

	err := lock.With(ctx, service.locker, constants.LockPrefixMovie+id, constants.LockTTL, constants.LockWait, func(ctx context.Context) error {
		for attempt := 1; ; attempt++ {

			// ── 1. Read ──
			current, err := service.repo.FindByID(ctx, id)
			if err != nil {
				return err
			}

			// ── 2. Modify ──
			next, err := change(current)
			if err != nil {
				return err
			}
			next.UpdatedAt = service.now()

			// ── 3. Versioned write ──
			err = service.repo.Update(ctx, next)
			if err == nil {
				updated = next
				return nil
			}
			if !errors.Is(err, dberr.ErrVersionConflict) {
				return err
			}

			service.metrics.WriteConflicts.WithLabelValues("movie").Inc()
			if attempt >= constants.MaxWriteAttempts {
				return apperr.Conflict("Movie was modified concurrently, try again").WithCause(err)
			}
		}
	})

	if errors.Is(err, lock.ErrNotAcquired) {
		return nil, apperr.Conflict("Movie is being updated, try again").WithCause(err)
	}
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// importEntryError prefixes validation details with the failing entry index.
func importEntryError(index int, err error) error {
	appError := apperr.As(err)
	if appError == nil || appError.Code != apperr.CodeValidation {
		return err
	}

	details := slice.Map(appError.Details, func(detail apperr.FieldError) apperr.FieldError {
		return apperr.FieldError{
			Field:   fmt.Sprintf("[%d].%s", index, detail.Field),
			Message: detail.Message,
		}
	})
	return apperr.ValidationError(appError.Message, details...)
}
