// Copyright (c) 2026 Funtush. All rights reserved.

// Package lock provides per-entity mutual exclusion for read-modify-write
// sections such as posting a review or editing a favourites list.
//
// Single-node deployments use [MemoryLocker]. When REDIS_URL is configured,
// [RedisLocker] shares locks across API replicas.
package lock

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/parthibdhar/Funtush-Server/internal/platform/ctxutil"
	"github.com/parthibdhar/Funtush-Server/pkg/uuid"
)

// ErrNotAcquired is returned when a lock stays busy for the whole wait budget.
var ErrNotAcquired = errors.New("lock: not acquired")

// retryDelay is the pause between acquisition attempts.
const retryDelay = 25 * time.Millisecond

// Locker is the backend contract. Tokens identify the holder so an expired
// holder cannot release a lock that someone else re-acquired.
type Locker interface {
	// TryAcquire makes one attempt and reports whether key is now held with token.
	TryAcquire(ctx context.Context, key, token string, ttl time.Duration) (bool, error)

	// Release frees key if it is still held with token.
	Release(ctx context.Context, key, token string) (bool, error)
}

// Lock is a held lock instance.
type Lock struct {
	locker Locker
	key    string
	token  string
}

// Acquire retries [Locker.TryAcquire] until it succeeds, wait elapses or ctx ends.
func Acquire(ctx context.Context, locker Locker, key string, ttl, wait time.Duration) (*Lock, error) {
	token := uuid.New()
	deadline := time.Now().Add(wait)

	for {
		acquired, err := locker.TryAcquire(ctx, key, token, ttl)
		if err != nil {
			return nil, fmt.Errorf("lock: acquire %s: %w", key, err)
		}
		if acquired {
			return &Lock{locker: locker, key: key, token: token}, nil
		}

		if time.Now().Add(retryDelay).After(deadline) {
			return nil, fmt.Errorf("%w: %s", ErrNotAcquired, key)
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(retryDelay):
		}
	}
}

// Release frees the lock. Releasing an expired lock is not an error.
func (l *Lock) Release(ctx context.Context) error {
	_, err := l.locker.Release(ctx, l.key, l.token)
	return err
}

// Key returns the locked key.
func (l *Lock) Key() string {
	return l.key
}

// With runs fn while holding key.
//
// The release uses a context detached from ctx cancellation so a client
// disconnect does not leave the key locked until its TTL. A failed release
// is logged and the key expires with its TTL.
func With(ctx context.Context, locker Locker, key string, ttl, wait time.Duration, fn func(ctx context.Context) error) error {
	held, err := Acquire(ctx, locker, key, ttl, wait)
	if err != nil {
		return err
	}

	defer func() {
		releaseCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), time.Second)
		defer cancel()
		if err := held.Release(releaseCtx); err != nil {
			ctxutil.GetLogger(ctx).WarnContext(ctx, "lock_release_failed",
				slog.String("key", held.Key()),
				slog.String("error", err.Error()),
			)
		}
	}()

	return fn(ctx)
}
