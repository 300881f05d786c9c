// Package lock provides the output directory lock that keeps two sweeps from
// writing the same lineage directories at once.
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

// ErrLocked is returned when another process holds the output directory lock.
var ErrLocked = errors.New("output directory is locked by another sweep")

// FileName is the lock file created inside the output directory.
const FileName = ".lineage.lock"

// retryDelay is how often AcquireWait polls a held lock.
const retryDelay = 250 * time.Millisecond

// OutputLock is an advisory file lock on an output directory. It is released
// automatically when the process exits.
type OutputLock struct {
	flock *flock.Flock
	dir   string
}

// NewOutputLock creates a lock for dir. The lock is not acquired until
// Acquire or AcquireWait is called.
func NewOutputLock(dir string) *OutputLock {
	return &OutputLock{
		flock: flock.New(filepath.Join(dir, FileName)),
		dir:   dir,
	}
}

// Acquire takes the lock without waiting, creating dir if needed.
// Returns ErrLocked if another process holds it.
func (l *OutputLock) Acquire() error {
	if err := os.MkdirAll(l.dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory %q: %w", l.dir, err)
	}

	ok, err := l.flock.TryLock()
	if err != nil {
		return fmt.Errorf("failed to lock %q: %w", l.flock.Path(), err)
	}
	if !ok {
		return fmt.Errorf("%w: %s", ErrLocked, l.dir)
	}
	return nil
}

// AcquireWait waits for the lock until ctx is done.
func (l *OutputLock) AcquireWait(ctx context.Context) error {
	if err := os.MkdirAll(l.dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory %q: %w", l.dir, err)
	}

	ok, err := l.flock.TryLockContext(ctx, retryDelay)
	if err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("%w: %s: %v", ErrLocked, l.dir, ctx.Err())
		}
		return fmt.Errorf("failed to lock %q: %w", l.flock.Path(), err)
	}
	if !ok {
		return fmt.Errorf("%w: %s", ErrLocked, l.dir)
	}
	return nil
}

// Release drops the lock. Releasing a lock that is not held is a no-op.
func (l *OutputLock) Release() error {
	if !l.flock.Locked() {
		return nil
	}
	if err := l.flock.Unlock(); err != nil {
		return fmt.Errorf("failed to unlock %q: %w", l.flock.Path(), err)
	}
	return nil
}

// IsHeld reports whether this instance holds the lock.
func (l *OutputLock) IsHeld() bool {
	return l.flock.Locked()
}

// Path returns the lock file path.
func (l *OutputLock) Path() string {
	return l.flock.Path()
}
