package platform

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/gofrs/flock"
)

// ErrAlreadyRunning indicates another instance already holds the lock.
var ErrAlreadyRunning = errors.New("instance already running")

// InstanceGuard holds the single-instance lock.
type InstanceGuard struct {
	lock *flock.Flock
}

// DefaultLockPath returns the lock file location for appName, preferring the
// user's runtime dir.
func DefaultLockPath(appName string) string {
	dir := xdg.RuntimeDir
	if dir == "" {
		dir = os.TempDir()
	}
	return filepath.Join(dir, appName+".lock")
}

// AcquireSingleInstance takes an exclusive lock on path without blocking.
func AcquireSingleInstance(path string) (*InstanceGuard, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create lock directory: %w", err)
	}

	lock := flock.New(path)
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock: %w", err)
	}
	if !locked {
		return nil, ErrAlreadyRunning
	}
	return &InstanceGuard{lock: lock}, nil
}

// Release frees the single instance lock.
func (guard *InstanceGuard) Release() error {
	if guard == nil || guard.lock == nil {
		return nil
	}
	return guard.lock.Unlock()
}

// Path returns the lock file path.
func (guard *InstanceGuard) Path() string {
	if guard == nil || guard.lock == nil {
		return ""
	}
	return guard.lock.Path()
}
