package hook

import (
	"fmt"
	"os"
	"path/filepath"
	"syscall"
	"time"

	"gopkg.in/yaml.v3"
)

// lockFileName is the run-lock file placed inside the output directory.
const lockFileName = ".updatefeed.lock"

// RunLock records who holds the generation lock.
type RunLock struct {
	// PID is the process ID holding the lock.
	PID int `yaml:"pid"`
	// StartedAt is when the lock was acquired.
	StartedAt time.Time `yaml:"started_at"`
}

// LockPath returns the path of the run-lock file for an output directory.
func LockPath(outDir string) string {
	return filepath.Join(outDir, lockFileName)
}

// AcquireRunLock takes the generation lock for outDir. A live lock held by
// another process is an error; a stale lock (holder no longer running) is
// cleaned up and replaced.
func AcquireRunLock(outDir string) error {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	existing, err := loadLock(outDir)
	if err != nil {
		return err
	}
	if existing != nil && !isLockStale(existing) {
		return fmt.Errorf("another generation run is in progress (PID %d, started %s)",
			existing.PID, existing.StartedAt.Format(time.RFC3339))
	}

	return writeLock(outDir, &RunLock{PID: os.Getpid(), StartedAt: time.Now()})
}

// ReleaseRunLock removes the run-lock file.
func ReleaseRunLock(outDir string) error {
	if err := os.Remove(LockPath(outDir)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing lock file: %w", err)
	}
	return nil
}

// loadLock reads the lock file. Returns nil with no error when the file
// does not exist; an unreadable lock is treated as absent.
func loadLock(outDir string) (*RunLock, error) {
	data, err := os.ReadFile(LockPath(outDir))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading lock file: %w", err)
	}

	var lock RunLock
	if err := yaml.Unmarshal(data, &lock); err != nil {
		return nil, nil
	}
	return &lock, nil
}

// isLockStale reports whether the lock's holder is no longer running.
func isLockStale(lock *RunLock) bool {
	process, err := os.FindProcess(lock.PID)
	if err != nil {
		return true
	}
	// On Unix, FindProcess always succeeds. Send signal 0 to check existence.
	return process.Signal(syscall.Signal(0)) != nil
}

// writeLock writes the lock file atomically.
func writeLock(outDir string, lock *RunLock) error {
	data, err := yaml.Marshal(lock)
	if err != nil {
		return fmt.Errorf("marshaling lock: %w", err)
	}

	lockPath := LockPath(outDir)
	tmpPath := lockPath + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("writing temp lock file: %w", err)
	}
	if err := os.Rename(tmpPath, lockPath); err != nil {
		os.Remove(tmpPath) // Best effort cleanup
		return fmt.Errorf("renaming temp lock file: %w", err)
	}
	return nil
}
