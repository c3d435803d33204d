// Copyright (c) 2026 Funtush. All rights reserved.

package category

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/parthibdhar/Funtush-Server/internal/platform/apperr"
)

type memoryRepository struct {
	mu         sync.RWMutex
	categories map[string]Category
}

// NewMemoryRepository constructs an empty in-memory category store.
func NewMemoryRepository() Repository {
	return &memoryRepository{categories: make(map[string]Category)}
}

func (repository *memoryRepository) List(_ context.Context) ([]*Category, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	list := make([]*Category, 0, len(repository.categories))
	for _, stored := range repository.categories {
		list = append(list, &stored)
	}

	slices.SortFunc(list, func(a, b *Category) int { return strings.Compare(a.Title, b.Title) })
	return list, nil
}

func (repository *memoryRepository) FindByID(_ context.Context, id string) (*Category, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	stored, found := repository.categories[id]
	if !found {
		return nil, apperr.NotFound("Category")
	}
	return &stored, nil
}

func (repository *memoryRepository) Create(_ context.Context, category *Category) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	if repository.titleTaken(category.Title, category.ID) {
		return errTitleTaken()
	}
	repository.categories[category.ID] = *category
	return nil
}

func (repository *memoryRepository) Update(_ context.Context, category *Category) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	if _, found := repository.categories[category.ID]; !found {
		return apperr.NotFound("Category")
	}
	if repository.titleTaken(category.Title, category.ID) {
		return errTitleTaken()
	}
	repository.categories[category.ID] = *category
	return nil
}

func (repository *memoryRepository) Delete(_ context.Context, id string) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	if _, found := repository.categories[id]; !found {
		return apperr.NotFound("Category")
	}
	delete(repository.categories, id)
	return nil
}

func (repository *memoryRepository) ReplaceAll(_ context.Context, categories []*Category) error {
	replacement := make(map[string]Category, len(categories))
	titles := make(map[string]struct{}, len(categories))

	for _, category := range categories {
		if _, duplicate := titles[category.Title]; duplicate {
			return errTitleTaken()
		}
		titles[category.Title] = struct{}{}
		replacement[category.ID] = *category
	}

	repository.mu.Lock()
	repository.categories = replacement
	repository.mu.Unlock()
	return nil
}

// titleTaken reports whether another category already uses title. Callers hold the lock.
func (repository *memoryRepository) titleTaken(title, exceptID string) bool {
	for id, stored := range repository.categories {
		if id != exceptID && stored.Title == title {
			return true
		}
	}
	return false
}

func errTitleTaken() error {
	return apperr.AlreadyExists("Category already exists")
}
