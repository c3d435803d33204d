// Copyright (c) 2026 Funtush. All rights reserved.

package movie_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parthibdhar/Funtush-Server/internal/catalog/movie"
	"github.com/parthibdhar/Funtush-Server/internal/platform/apperr"
	"github.com/parthibdhar/Funtush-Server/internal/platform/dberr"
	"github.com/parthibdhar/Funtush-Server/internal/platform/lock"
	"github.com/parthibdhar/Funtush-Server/internal/platform/metrics"
	"github.com/parthibdhar/Funtush-Server/pkg/pointer"
)

var defaultRatings = movie.RatingBounds{Min: 1, Max: 5}

type fixture struct {
	service *movie.Service
	repo    movie.Repository
	metrics *metrics.Registry
}

func newFixture(t *testing.T, repo movie.Repository) fixture {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	registry := metrics.New()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	service := movie.NewService(repo, lock.NewMemoryLocker(ctx), registry, defaultRatings, logger)

	return fixture{service: service, repo: repo, metrics: registry}
}

func drafts(count int) []movie.Draft {
	result := make([]movie.Draft, count)
	for i := range result {
		result[i] = movie.Draft{Name: fmt.Sprintf("Movie %d", i+1), Category: "Drama", Language: "English", Year: 2020 + i, Time: 90}
	}
	return result
}

// conflictingRepository loses the first n version races.
type conflictingRepository struct {
	movie.Repository
	remaining atomic.Int32
}

func (repository *conflictingRepository) Update(ctx context.Context, target *movie.Movie) error {
	if repository.remaining.Add(-1) >= 0 {
		return dberr.ErrVersionConflict
	}
	return repository.Repository.Update(ctx, target)
}

// partialRepository fails every bulk replace half way.
type partialRepository struct {
	movie.Repository
}

func (partialRepository) ReplaceAll(context.Context, []*movie.Movie) error {
	return fmt.Errorf("%w: insert failed", dberr.ErrPartialReplace)
}

/*
TestListMovies_Pagination pages five movies two at a time.
*/
func TestListMovies_Pagination(t *testing.T) {
	f := newFixture(t, movie.NewMemoryRepository())
	ctx := context.Background()

	imported, err := f.service.ImportMovies(ctx, drafts(5))
	require.NoError(t, err)
	require.Len(t, imported, 5)

	result, err := f.service.ListMovies(ctx, movie.Filter{PageNumber: "3", Limit: "2"})
	require.NoError(t, err)

	assert.Len(t, result.Movies, 1)
	assert.Equal(t, 3, result.Page)
	assert.Equal(t, 3, result.Pages)
	assert.Equal(t, 5, result.TotalMovies)

	past, err := f.service.ListMovies(ctx, movie.Filter{PageNumber: "9", Limit: "2"})
	require.NoError(t, err)
	assert.Empty(t, past.Movies)
	assert.Equal(t, 5, past.TotalMovies)
}

/*
TestListMovies_NoMatch reports NOT_FOUND instead of an empty listing.
*/
func TestListMovies_NoMatch(t *testing.T) {
	f := newFixture(t, movie.NewMemoryRepository())

	_, err := f.service.ImportMovies(context.Background(), drafts(2))
	require.NoError(t, err)

	_, err = f.service.ListMovies(context.Background(), movie.Filter{Category: "Horror"})
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))
}

/*
TestListMovies_Search matches names case-insensitively.
*/
func TestListMovies_Search(t *testing.T) {
	f := newFixture(t, movie.NewMemoryRepository())
	ctx := context.Background()

	_, err := f.service.ImportMovies(ctx, []movie.Draft{{Name: "The Dark Harbor"}, {Name: "Sunny Days"}})
	require.NoError(t, err)

	result, err := f.service.ListMovies(ctx, movie.Filter{Search: "dark", Limit: "10"})
	require.NoError(t, err)
	require.Len(t, result.Movies, 1)
	assert.Equal(t, "The Dark Harbor", result.Movies[0].Name)
}

/*
TestAddReview_RatingBounds rejects ratings outside the configured range.
*/
func TestAddReview_RatingBounds(t *testing.T) {
	f := newFixture(t, movie.NewMemoryRepository())
	ctx := context.Background()

	created, err := f.service.CreateMovie(ctx, movie.Draft{Name: "Bounds"}, "admin")
	require.NoError(t, err)

	for _, rating := range []float64{0, 5.5, -1} {
		_, err := f.service.AddReview(ctx, created.ID, movie.Reviewer{ID: "u1"}, rating, "")
		assert.True(t, apperr.HasCode(err, apperr.CodeValidation), "rating %v", rating)
	}

	updated, err := f.service.AddReview(ctx, created.ID, movie.Reviewer{ID: "u1"}, 5, "")
	require.NoError(t, err)
	assert.Equal(t, 1, updated.NumberOfReviews)
}

/*
TestService_AddReview_Duplicate leaves the stored movie unchanged.
*/
func TestService_AddReview_Duplicate(t *testing.T) {
	f := newFixture(t, movie.NewMemoryRepository())
	ctx := context.Background()

	created, err := f.service.CreateMovie(ctx, movie.Draft{Name: "Once"}, "admin")
	require.NoError(t, err)

	_, err = f.service.AddReview(ctx, created.ID, movie.Reviewer{ID: "u1"}, 4, "first")
	require.NoError(t, err)

	_, err = f.service.AddReview(ctx, created.ID, movie.Reviewer{ID: "u1"}, 2, "again")
	assert.True(t, apperr.HasCode(err, apperr.CodeAlreadyReviewed))

	stored, err := f.service.GetMovie(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, stored.NumberOfReviews)
	assert.Equal(t, 4.0, stored.Rate)
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.ReviewsCreated))
}

/*
TestAddReview_Concurrent keeps every review when many users post at once.
*/
func TestAddReview_Concurrent(t *testing.T) {
	f := newFixture(t, movie.NewMemoryRepository())
	ctx := context.Background()

	created, err := f.service.CreateMovie(ctx, movie.Draft{Name: "Busy"}, "admin")
	require.NoError(t, err)

	const reviewers = 20
	var wg sync.WaitGroup
	for i := range reviewers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			rating := float64(i%5 + 1)
			_, err := f.service.AddReview(ctx, created.ID, movie.Reviewer{ID: fmt.Sprintf("user-%d", i)}, rating, "")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	stored, err := f.service.GetMovie(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, reviewers, stored.NumberOfReviews)
	assert.Len(t, stored.Reviews, reviewers)
	assert.InDelta(t, 3.0, stored.Rate, 1e-9)
}

/*
TestAddReview_RetriesVersionConflict re-reads and retries lost races.
*/
func TestAddReview_RetriesVersionConflict(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name      string
		conflicts int32
		wantErr   bool
	}{
		{"recovers after two conflicts", 2, false},
		{"gives up after the retry budget", 3, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &conflictingRepository{Repository: movie.NewMemoryRepository()}
			f := newFixture(t, repo)

			created, err := f.service.CreateMovie(ctx, movie.Draft{Name: "Race"}, "admin")
			require.NoError(t, err)
			repo.remaining.Store(tt.conflicts)

			_, err = f.service.AddReview(ctx, created.ID, movie.Reviewer{ID: "u1"}, 3, "")
			if tt.wantErr {
				assert.True(t, apperr.HasCode(err, apperr.CodeConflict))
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, float64(min(tt.conflicts, 3)), testutil.ToFloat64(f.metrics.WriteConflicts.WithLabelValues("movie")))
		})
	}
}

/*
TestUpdateMovie applies present fields and keeps the rest.
*/
func TestUpdateMovie(t *testing.T) {
	f := newFixture(t, movie.NewMemoryRepository())
	ctx := context.Background()

	created, err := f.service.CreateMovie(ctx, movie.Draft{Name: "Before", Language: "English", Year: 2001}, "admin")
	require.NoError(t, err)

	updated, err := f.service.UpdateMovie(ctx, created.ID, movie.Patch{Name: pointer.To("After"), Year: pointer.To(0)})
	require.NoError(t, err)
	assert.Equal(t, "After", updated.Name)
	assert.Equal(t, 0, updated.Year)
	assert.Equal(t, "English", updated.Language)

	unchanged, err := f.service.UpdateMovie(ctx, created.ID, movie.Patch{})
	require.NoError(t, err)
	assert.Equal(t, updated.Version, unchanged.Version)

	_, err = f.service.UpdateMovie(ctx, created.ID, movie.Patch{Name: pointer.To("")})
	assert.True(t, apperr.HasCode(err, apperr.CodeValidation))

	_, err = f.service.UpdateMovie(ctx, "0190f000-0000-7000-8000-000000000000", movie.Patch{Name: pointer.To("x")})
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))
}

/*
TestImportMovies covers replacement, emptying and validation.
*/
func TestImportMovies(t *testing.T) {
	f := newFixture(t, movie.NewMemoryRepository())
	ctx := context.Background()

	_, err := f.service.ImportMovies(ctx, drafts(3))
	require.NoError(t, err)

	_, err = f.service.ImportMovies(ctx, []movie.Draft{{Name: "ok"}, {Name: ""}})
	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, apperr.CodeValidation, appError.Code)
	assert.Equal(t, "[1].name", appError.Details[0].Field)

	// A rejected import leaves the catalogue untouched.
	count, err := f.repo.Count(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	_, err = f.service.ImportMovies(ctx, []movie.Draft{})
	require.NoError(t, err)
	count, err = f.repo.Count(ctx, nil)
	require.NoError(t, err)
	assert.Zero(t, count)

	assert.Equal(t, 2.0, testutil.ToFloat64(f.metrics.CatalogImports.WithLabelValues("movie", "success")))
}

/*
TestImportMovies_Partial surfaces REIMPORT_REQUIRED.
*/
func TestImportMovies_Partial(t *testing.T) {
	f := newFixture(t, partialRepository{Repository: movie.NewMemoryRepository()})

	_, err := f.service.ImportMovies(context.Background(), drafts(1))
	assert.True(t, apperr.HasCode(err, apperr.CodeReimportRequired))
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.CatalogImports.WithLabelValues("movie", "failure")))
}

/*
TestImportSeed loads the embedded starter catalogue.
*/
func TestImportSeed(t *testing.T) {
	f := newFixture(t, movie.NewMemoryRepository())

	movies, err := f.service.ImportSeed(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, movies)

	for _, imported := range movies {
		assert.NotEmpty(t, imported.ID)
		assert.NotEmpty(t, imported.Category)
	}
}

/*
TestTopRatedAndRandom caps both listings.
*/
func TestTopRatedAndRandom(t *testing.T) {
	f := newFixture(t, movie.NewMemoryRepository())
	ctx := context.Background()

	set := drafts(12)
	for i := range set {
		set[i].Rate = float64(i % 6)
	}
	_, err := f.service.ImportMovies(ctx, set)
	require.NoError(t, err)

	top, err := f.service.TopRated(ctx)
	require.NoError(t, err)
	require.Len(t, top, 10)
	for i := 1; i < len(top); i++ {
		assert.GreaterOrEqual(t, top[i-1].Rate, top[i].Rate)
	}

	random, err := f.service.RandomMovies(ctx)
	require.NoError(t, err)
	assert.Len(t, random, 8)
}

/*
TestDeleteMovies removes one and then all movies.
*/
func TestDeleteMovies(t *testing.T) {
	f := newFixture(t, movie.NewMemoryRepository())
	ctx := context.Background()

	imported, err := f.service.ImportMovies(ctx, drafts(3))
	require.NoError(t, err)

	require.NoError(t, f.service.DeleteMovie(ctx, imported[0].ID))
	assert.True(t, apperr.HasCode(f.service.DeleteMovie(ctx, imported[0].ID), apperr.CodeNotFound))

	removed, err := f.service.DeleteAllMovies(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), removed)
}
