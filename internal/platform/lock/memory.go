// Copyright (c) 2026 Funtush. All rights reserved.

package lock

import (
	"context"
	"sync"
	"time"
)

// MemoryLocker implements [Locker] with an in-process map.
// Locks are NOT shared across process restarts or multiple instances.
type MemoryLocker struct {
	mu    sync.Mutex
	locks map[string]lockEntry
	now   func() time.Time
}

type lockEntry struct {
	expiresAt time.Time
	token     string
}

// NewMemoryLocker creates a new in-memory locker whose cleanup loop stops with ctx.
func NewMemoryLocker(ctx context.Context) *MemoryLocker {
	locker := &MemoryLocker{
		locks: make(map[string]lockEntry),
		now:   time.Now,
	}

	go locker.cleanupLoop(ctx)

	return locker
}

func (m *MemoryLocker) cleanupLoop(ctx context.Context) {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.cleanup()
		case <-ctx.Done():
			return
		}
	}
}

// cleanup removes expired locks.
func (m *MemoryLocker) cleanup() {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	for key, entry := range m.locks {
		if now.After(entry.expiresAt) {
			delete(m.locks, key)
		}
	}
}

// TryAcquire takes key unless a live entry exists.
func (m *MemoryLocker) TryAcquire(ctx context.Context, key, token string, ttl time.Duration) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	if entry, exists := m.locks[key]; exists && now.Before(entry.expiresAt) {
		return false, nil
	}

	m.locks[key] = lockEntry{expiresAt: now.Add(ttl), token: token}
	return true, nil
}

// Release deletes key when token still owns it.
func (m *MemoryLocker) Release(_ context.Context, key, token string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[key]
	if !exists || entry.token != token {
		return false, nil
	}

	delete(m.locks, key)
	return true, nil
}

var _ Locker = (*MemoryLocker)(nil)
