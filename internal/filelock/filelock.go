// Package filelock serializes hookline runs against a repository. Two
// concurrent runs would stash and restore the same working tree on top
// of each other, so a run holds an exclusive flock for its duration.
package filelock

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// RunLock is an exclusive per-repository lock backed by a lock file in
// the git directory.
type RunLock struct {
	flock *flock.Flock
	path  string
}

// NewRunLock creates the lock for the repository whose git directory is
// gitDir. The lock file is created on first use.
func NewRunLock(gitDir string) *RunLock {
	path := filepath.Join(gitDir, "hookline.lock")
	return &RunLock{
		flock: flock.New(path),
		path:  path,
	}
}

// Acquire takes the lock, blocking until it is available.
func (l *RunLock) Acquire() error {
	if err := os.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
		return fmt.Errorf("create lock directory: %w", err)
	}
	if err := l.flock.Lock(); err != nil {
		return fmt.Errorf("acquire run lock %s: %w", l.path, err)
	}
	return nil
}

// TryAcquire takes the lock without blocking. It reports false when
// another hookline run holds it.
func (l *RunLock) TryAcquire() (bool, error) {
	if err := os.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
		return false, fmt.Errorf("create lock directory: %w", err)
	}
	acquired, err := l.flock.TryLock()
	if err != nil {
		return false, fmt.Errorf("try run lock %s: %w", l.path, err)
	}
	return acquired, nil
}

// Release drops the lock.
func (l *RunLock) Release() error {
	if err := l.flock.Unlock(); err != nil {
		return fmt.Errorf("release run lock %s: %w", l.path, err)
	}
	return nil
}
