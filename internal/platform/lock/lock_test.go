// Copyright (c) 2026 Funtush. All rights reserved.

package lock_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parthibdhar/Funtush-Server/internal/platform/ctxutil"
	"github.com/parthibdhar/Funtush-Server/internal/platform/lock"
)

/*
TestMemoryLocker_Ownership verifies that only the token holder can release.
*/
func TestMemoryLocker_Ownership(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	locker := lock.NewMemoryLocker(ctx)

	acquired, err := locker.TryAcquire(ctx, "lock:movie:1", "a", time.Minute)
	require.NoError(t, err)
	assert.True(t, acquired)

	acquired, err = locker.TryAcquire(ctx, "lock:movie:1", "b", time.Minute)
	require.NoError(t, err)
	assert.False(t, acquired)

	released, err := locker.Release(ctx, "lock:movie:1", "b")
	require.NoError(t, err)
	assert.False(t, released)

	released, err = locker.Release(ctx, "lock:movie:1", "a")
	require.NoError(t, err)
	assert.True(t, released)
}

/*
TestMemoryLocker_Expiry verifies an expired lock can be taken over.
*/
func TestMemoryLocker_Expiry(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	locker := lock.NewMemoryLocker(ctx)

	acquired, err := locker.TryAcquire(ctx, "k", "a", time.Millisecond)
	require.NoError(t, err)
	require.True(t, acquired)

	time.Sleep(5 * time.Millisecond)

	acquired, err = locker.TryAcquire(ctx, "k", "b", time.Minute)
	require.NoError(t, err)
	assert.True(t, acquired)
}

/*
TestAcquire_Timeout returns ErrNotAcquired when the key stays busy.
*/
func TestAcquire_Timeout(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	locker := lock.NewMemoryLocker(ctx)

	held, err := lock.Acquire(ctx, locker, "k", time.Minute, time.Second)
	require.NoError(t, err)
	defer held.Release(ctx)

	_, err = lock.Acquire(ctx, locker, "k", time.Minute, 60*time.Millisecond)
	assert.ErrorIs(t, err, lock.ErrNotAcquired)
}

/*
TestWith_Serializes runs concurrent critical sections and checks none overlap.
*/
func TestWith_Serializes(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	locker := lock.NewMemoryLocker(ctx)

	var inside, maxInside, total int32
	var wg sync.WaitGroup

	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := lock.With(ctx, locker, "lock:user:1", time.Minute, 5*time.Second, func(context.Context) error {
				current := atomic.AddInt32(&inside, 1)
				if current > atomic.LoadInt32(&maxInside) {
					atomic.StoreInt32(&maxInside, current)
				}
				time.Sleep(2 * time.Millisecond)
				atomic.AddInt32(&inside, -1)
				atomic.AddInt32(&total, 1)
				return nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), maxInside)
	assert.Equal(t, int32(8), total)
}

/*
TestWith_PropagatesError returns fn's error and still releases the key.
*/
func TestWith_PropagatesError(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	locker := lock.NewMemoryLocker(ctx)
	boom := errors.New("boom")

	err := lock.With(ctx, locker, "k", time.Minute, time.Second, func(context.Context) error { return boom })
	assert.ErrorIs(t, err, boom)

	acquired, err := locker.TryAcquire(ctx, "k", "next", time.Minute)
	require.NoError(t, err)
	assert.True(t, acquired)
}

// brokenReleaseLocker grants every lock and fails every release.
type brokenReleaseLocker struct{}

func (brokenReleaseLocker) TryAcquire(context.Context, string, string, time.Duration) (bool, error) {
	return true, nil
}

func (brokenReleaseLocker) Release(context.Context, string, string) (bool, error) {
	return false, errors.New("connection reset")
}

/*
TestWith_LogsReleaseFailure keeps the result of fn and logs the failed release.
*/
func TestWith_LogsReleaseFailure(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&logs, nil))
	ctx := ctxutil.WithLogger(context.Background(), logger)

	err := lock.With(ctx, brokenReleaseLocker{}, "lock:user:7", time.Minute, time.Second, func(context.Context) error {
		return nil
	})
	require.NoError(t, err)

	assert.Contains(t, logs.String(), `"msg":"lock_release_failed"`)
	assert.Contains(t, logs.String(), `"key":"lock:user:7"`)
	assert.Contains(t, logs.String(), "connection reset")
}
