// Package lockfile guards a server's local state so only one gertty
// process syncs it at a time.
package lockfile

import (
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	"github.com/thoreinstein/gertty/internal/errors"
)

// ErrLocked indicates another process holds the lock.
var ErrLocked = errors.New("lock file is held by another process")

// Lock is an acquired lock file.
type Lock struct {
	fl *flock.Flock
}

// Acquire takes an exclusive lock on path without blocking. The parent
// directory is created when missing.
func Acquire(path string) (*Lock, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, errors.Wrap(err, "creating lock directory")
	}

	fl := flock.New(path)
	ok, err := fl.TryLock()
	if err != nil {
		return nil, errors.Wrapf(err, "locking %s", path)
	}
	if !ok {
		return nil, errors.Wrap(ErrLocked, path)
	}
	return &Lock{fl: fl}, nil
}

// Path returns the locked file.
func (l *Lock) Path() string {
	return l.fl.Path()
}

// Release drops the lock. The file itself is left in place.
func (l *Lock) Release() error {
	if err := l.fl.Unlock(); err != nil {
		return errors.Wrapf(err, "unlocking %s", l.fl.Path())
	}
	return nil
}

// Probe reports whether path could be locked right now. The lock is
// released before returning.
func Probe(path string) error {
	l, err := Acquire(path)
	if err != nil {
		return err
	}
	return l.Release()
}
