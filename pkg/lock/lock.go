// Package lock guards a source directory against concurrent ordena runs
// with an advisory file lock.
package lock

import (
	"os"
	"path/filepath"

	"github.com/arthur-debert/ordena/pkg/errors"
	"github.com/gofrs/flock"
)

// RunLock is an acquired advisory lock
type RunLock struct {
	path string
	lock *flock.Flock
}

// Acquire takes the lock at path without blocking. A lock held by another
// run yields ErrSourceLocked.
func Acquire(path, sourceRoot string) (*RunLock, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "cannot create lock directory for %s", path).
			WithDetail("path", path)
	}

	fl := flock.New(path)
	ok, err := fl.TryLock()
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "acquire lock %s", path).
			WithDetail("path", path)
	}
	if !ok {
		return nil, errors.Newf(errors.ErrSourceLocked,
			"another ordena run is already organizing %s", sourceRoot).
			WithDetail("source", sourceRoot).
			WithDetail("lock", path)
	}
	return &RunLock{path: path, lock: fl}, nil
}

// Path returns the lock file path
func (l *RunLock) Path() string {
	return l.path
}

// Release unlocks. Safe on a nil lock and safe to call twice.
func (l *RunLock) Release() error {
	if l == nil || l.lock == nil {
		return nil
	}
	return l.lock.Unlock()
}
