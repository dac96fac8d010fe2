package lockfile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// ErrLocked is returned when the lock is already held by another process.
var ErrLocked = errors.New("lock already held")

// Lock is a cross-platform advisory file lock, used to keep a second
// process instance from booting against the same resources.
type Lock struct {
	fl *flock.Flock
}

// New creates a lock on the given path. The lock is not acquired until
// TryAcquire is called.
func New(path string) *Lock {
	return &Lock{fl: flock.New(path)}
}

// TryAcquire attempts to take the lock without blocking. It returns
// ErrLocked if another holder exists.
func (l *Lock) TryAcquire() error {
	if err := os.MkdirAll(filepath.Dir(l.fl.Path()), 0o755); err != nil {
		return fmt.Errorf("create lock directory: %w", err)
	}
	ok, err := l.fl.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock %s: %w", l.fl.Path(), err)
	}
	if !ok {
		return fmt.Errorf("%w: %s", ErrLocked, l.fl.Path())
	}
	return nil
}

// Release drops the lock. Releasing a lock that was never acquired is a no-op.
func (l *Lock) Release() error {
	return l.fl.Unlock()
}

// Path returns the lock file path.
func (l *Lock) Path() string {
	return l.fl.Path()
}
