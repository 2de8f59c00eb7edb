// Package lock serialises reconcile passes across processes with a file lock.
package lock

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
)

const retryDelay = 100 * time.Millisecond

// ErrLocked is returned when another holder keeps the lock past the wait.
var ErrLocked = errors.New("lock is held by another process")

// FileLock is held by at most one caller at a time, in this process and
// across processes. flock alone does not exclude goroutines sharing the same
// handle, so holders first take the in-process slot.
type FileLock struct {
	path  string
	flock *flock.Flock
	slot  chan struct{}
}

// New returns a lock on path, creating its directory if needed.
func New(path string) (*FileLock, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create lock directory: %w", err)
		}
	}
	return &FileLock{path: path, flock: flock.New(path), slot: make(chan struct{}, 1)}, nil
}

func (l *FileLock) Path() string {
	return l.path
}

// Do runs fn while holding the lock. With wait 0 it makes a single attempt;
// otherwise it retries until wait elapses or ctx is done.
func (l *FileLock) Do(ctx context.Context, wait time.Duration, fn func(context.Context) error) error {
	deadline := time.Now().Add(wait)

	held, err := l.enter(ctx, wait)
	if err != nil {
		return fmt.Errorf("failed to acquire %s: %w", l.path, err)
	}
	if !held {
		return ErrLocked
	}
	defer l.leave()

	locked, err := l.acquire(ctx, wait, time.Until(deadline))
	if err != nil {
		return fmt.Errorf("failed to acquire %s: %w", l.path, err)
	}
	if !locked {
		return ErrLocked
	}
	defer l.flock.Unlock()

	return fn(ctx)
}

// enter takes the in-process slot, waiting up to wait.
func (l *FileLock) enter(ctx context.Context, wait time.Duration) (bool, error) {
	select {
	case l.slot <- struct{}{}:
		return true, nil
	default:
	}
	if wait <= 0 {
		return false, nil
	}

	timer := time.NewTimer(wait)
	defer timer.Stop()

	select {
	case l.slot <- struct{}{}:
		return true, nil
	case <-timer.C:
		return false, nil
	case <-ctx.Done():
		return false, ctx.Err()
	}
}

func (l *FileLock) leave() {
	<-l.slot
}

func (l *FileLock) acquire(ctx context.Context, wait, remaining time.Duration) (bool, error) {
	if wait <= 0 || remaining <= 0 {
		return l.flock.TryLock()
	}

	waitCtx, cancel := context.WithTimeout(ctx, remaining)
	defer cancel()

	locked, err := l.flock.TryLockContext(waitCtx, retryDelay)
	if errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
		return false, nil
	}
	return locked, err
}
