// Copyright (c) 2026 Funtush. All rights reserved.

package auth

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/parthibdhar/Funtush-Server/internal/platform/apperr"
	"github.com/parthibdhar/Funtush-Server/internal/platform/dberr"
)

type memoryRepository struct {
	mu    sync.RWMutex
	users map[string]*User
}

// NewMemoryRepository constructs an empty in-memory account store.
func NewMemoryRepository() Repository {
	return &memoryRepository{users: make(map[string]*User)}
}

func (repository *memoryRepository) FindByID(_ context.Context, id string) (*User, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	stored, found := repository.users[id]
	if !found {
		return nil, apperr.NotFound("User")
	}
	return stored.Clone(), nil
}

func (repository *memoryRepository) FindByEmail(_ context.Context, email string) (*User, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	for _, stored := range repository.users {
		if stored.Email == email {
			return stored.Clone(), nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (repository *memoryRepository) List(_ context.Context, limit, offset int) ([]*User, int, error) {
	repository.mu.RLock()
	all := make([]*User, 0, len(repository.users))
	for _, stored := range repository.users {
		all = append(all, stored.Clone())
	}
	repository.mu.RUnlock()

	slices.SortFunc(all, func(a, b *User) int {
		if byTime := a.CreatedAt.Compare(b.CreatedAt); byTime != 0 {
			return byTime
		}
		return strings.Compare(a.ID, b.ID)
	})

	total := len(all)
	if offset >= total {
		return []*User{}, total, nil
	}
	all = all[offset:]
	if limit > 0 && limit < len(all) {
		all = all[:limit]
	}
	return all, total, nil
}

func (repository *memoryRepository) Create(_ context.Context, user *User) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	if _, exists := repository.users[user.ID]; exists || repository.emailTaken(user.Email, user.ID) {
		return errEmailTaken()
	}

	user.normalize()
	repository.users[user.ID] = user.Clone()
	return nil
}

func (repository *memoryRepository) Update(_ context.Context, user *User) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	stored, found := repository.users[user.ID]
	if !found {
		return apperr.NotFound("User")
	}
	if stored.Version != user.Version {
		return dberr.ErrVersionConflict
	}
	if repository.emailTaken(user.Email, user.ID) {
		return errEmailTaken()
	}

	user.normalize()
	user.Version++
	repository.users[user.ID] = user.Clone()
	return nil
}

func (repository *memoryRepository) Delete(_ context.Context, id string) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	if _, found := repository.users[id]; !found {
		return apperr.NotFound("User")
	}
	delete(repository.users, id)
	return nil
}

// emailTaken reports whether another account uses email. Callers hold the lock.
func (repository *memoryRepository) emailTaken(email, exceptID string) bool {
	for id, stored := range repository.users {
		if id != exceptID && stored.Email == email {
			return true
		}
	}
	return false
}

func errEmailTaken() error {
	return apperr.AlreadyExists("User already exists")
}
