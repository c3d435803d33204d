// Copyright (c) 2026 Funtush. All rights reserved.

package movie

import (
	"cmp"
	"context"
	"math/rand/v2"
	"slices"
	"strings"
	"sync"

	"golang.org/x/text/cases"

	"github.com/parthibdhar/Funtush-Server/internal/platform/apperr"
	"github.com/parthibdhar/Funtush-Server/internal/platform/dberr"
)

// memoryRepository is the in-process [Repository] used by STORE_DRIVER=memory and tests.
type memoryRepository struct {
	mu     sync.RWMutex
	movies map[string]*Movie
}

// NewMemoryRepository constructs an empty in-memory movie store.
func NewMemoryRepository() Repository {
	return &memoryRepository{movies: make(map[string]*Movie)}
}

func (repository *memoryRepository) FindByID(_ context.Context, id string) (*Movie, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	stored, found := repository.movies[id]
	if !found {
		return nil, apperr.NotFound("Movie")
	}
	return stored.Clone(), nil
}

func (repository *memoryRepository) FindByIDs(_ context.Context, ids []string) ([]*Movie, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	found := make([]*Movie, 0, len(ids))
	for _, id := range ids {
		if stored, ok := repository.movies[id]; ok {
			found = append(found, stored.Clone())
		}
	}
	return found, nil
}

func (repository *memoryRepository) FindMany(_ context.Context, query Query) ([]*Movie, error) {
	repository.mu.RLock()
	matched := repository.filter(query.Conditions)
	repository.mu.RUnlock()

	slices.SortFunc(matched, func(a, b *Movie) int { return compareMovies(a, b, query.Sort) })

	if query.Skip >= len(matched) {
		return []*Movie{}, nil
	}
	matched = matched[query.Skip:]

	if query.Limit > 0 && query.Limit < len(matched) {
		matched = matched[:query.Limit]
	}
	return matched, nil
}

func (repository *memoryRepository) Count(_ context.Context, conditions []Condition) (int, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	return len(repository.filter(conditions)), nil
}

func (repository *memoryRepository) Create(_ context.Context, movie *Movie) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	if _, exists := repository.movies[movie.ID]; exists {
		return apperr.AlreadyExists("Movie already exists")
	}
	repository.movies[movie.ID] = movie.Clone()
	return nil
}

func (repository *memoryRepository) Update(_ context.Context, movie *Movie) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	stored, found := repository.movies[movie.ID]
	if !found {
		return apperr.NotFound("Movie")
	}
	if stored.Version != movie.Version {
		return dberr.ErrVersionConflict
	}

	movie.Version++
	repository.movies[movie.ID] = movie.Clone()
	return nil
}

func (repository *memoryRepository) Delete(_ context.Context, id string) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	if _, found := repository.movies[id]; !found {
		return apperr.NotFound("Movie")
	}
	delete(repository.movies, id)
	return nil
}

func (repository *memoryRepository) DeleteAll(_ context.Context) (int64, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	removed := int64(len(repository.movies))
	repository.movies = make(map[string]*Movie)
	return removed, nil
}

func (repository *memoryRepository) ReplaceAll(_ context.Context, movies []*Movie) error {
	replacement := make(map[string]*Movie, len(movies))
	for _, movie := range movies {
		if _, duplicate := replacement[movie.ID]; duplicate {
			return apperr.AlreadyExists("Movie already exists")
		}
		replacement[movie.ID] = movie.Clone()
	}

	repository.mu.Lock()
	repository.movies = replacement
	repository.mu.Unlock()
	return nil
}

func (repository *memoryRepository) RandomSample(_ context.Context, size int) ([]*Movie, error) {
	repository.mu.RLock()
	all := repository.filter(nil)
	repository.mu.RUnlock()

	rand.Shuffle(len(all), func(i, j int) { all[i], all[j] = all[j], all[i] })

	if size < len(all) {
		all = all[:size]
	}
	return all, nil
}

// filter returns clones of the movies matching every condition. Callers hold the lock.
func (repository *memoryRepository) filter(conditions []Condition) []*Movie {
	matched := make([]*Movie, 0, len(repository.movies))
	for _, stored := range repository.movies {
		if matches(stored, conditions) {
			matched = append(matched, stored.Clone())
		}
	}
	return matched
}

// # Predicate Translation

func matches(movie *Movie, conditions []Condition) bool {
	for _, condition := range conditions {
		if !matchesCondition(movie, condition) {
			return false
		}
	}
	return true
}

func matchesCondition(movie *Movie, condition Condition) bool {
	switch condition.Op {
	case OpContains:
		text, _ := fieldValue(movie, condition.Field).(string)
		needle, _ := condition.Value.(string)
		fold := cases.Fold()
		return strings.Contains(fold.String(text), fold.String(needle))
	default:
		return fieldValue(movie, condition.Field) == condition.Value
	}
}

func fieldValue(movie *Movie, field string) any {
	switch field {
	case FieldID:
		return movie.ID
	case FieldName:
		return movie.Name
	case FieldCategory:
		return movie.Category
	case FieldLanguage:
		return movie.Language
	case FieldTime:
		return movie.Time
	case FieldYear:
		return movie.Year
	case FieldRate:
		return movie.Rate
	default:
		return nil
	}
}

func compareMovies(a, b *Movie, sort []SortField) int {
	for _, field := range sort {
		var result int
		switch field.Field {
		case FieldCreatedAt:
			result = a.CreatedAt.Compare(b.CreatedAt)
		case FieldRate:
			result = cmp.Compare(a.Rate, b.Rate)
		case FieldName:
			result = cmp.Compare(a.Name, b.Name)
		case FieldID:
			result = cmp.Compare(a.ID, b.ID)
		}

		if field.Descending {
			result = -result
		}
		if result != 0 {
			return result
		}
	}
	return 0
}
