package patch

import (
	"errors"
	"fmt"
	"os"
	"time"

	"golang.org/x/sys/unix"
)

// LockTimeout is how long Rewrite waits for another process to release its
// lock on the same target before giving up.
const LockTimeout = 2 * time.Second

const lockFilePerms = 0o644

var (
	errLockTimeout  = errors.New("lock timeout")
	errLockFileOpen = errors.New("failed to open lock file")
)

// Rewrite locks path, reads its full content, applies transform, and
// persists the result atomically. If transform returns an error no write is
// performed and the target is left byte-for-byte unchanged.
//
// The advisory lock serializes concurrent runs against the same target; it
// does not protect against writers that ignore the lock file.
func Rewrite(path string, opts PersistOptions, transform func(Document) (Document, error)) error {
	lock, lockErr := acquireLock(path)
	if lockErr != nil {
		return fmt.Errorf("acquiring lock: %w", lockErr)
	}

	defer lock.release()

	content, readErr := os.ReadFile(path)
	if readErr != nil {
		return fmt.Errorf("reading %s: %w", path, readErr)
	}

	newDoc, transformErr := transform(Document(content))
	if transformErr != nil {
		return transformErr // no write
	}

	return Persist(newDoc, path, opts)
}

// fileLock represents a held lock on a target's sidecar lock file.
type fileLock struct {
	path string
	file *os.File
}

// release releases the lock and removes the lock file.
// Order matters: remove while holding lock, then unlock, then close.
func (l *fileLock) release() {
	if l.file != nil {
		_ = os.Remove(l.path)
		_ = unix.Flock(int(l.file.Fd()), unix.LOCK_UN)
		_ = l.file.Close()
		l.file = nil
	}
}

func acquireLock(path string) (*fileLock, error) {
	return acquireLockWithTimeout(path, LockTimeout)
}

// acquireLockWithTimeout takes an exclusive flock on a sidecar "<path>.lock"
// file. Because release deletes the lock file, there is a race between flock
// acquisition and deletion; the inode is verified after acquiring to detect
// a lock file that was deleted and recreated while we waited.
func acquireLockWithTimeout(path string, timeout time.Duration) (*fileLock, error) {
	lockPath := path + ".lock"
	deadline := time.Now().Add(timeout)

	for {
		remaining := time.Until(deadline)
		if remaining <= 0 {
			return nil, fmt.Errorf("%w: %s", errLockTimeout, path)
		}

		file, openErr := os.OpenFile(lockPath, os.O_CREATE|os.O_RDWR, lockFilePerms)
		if openErr != nil {
			return nil, fmt.Errorf("%w: %w", errLockFileOpen, openErr)
		}

		var openStat unix.Stat_t

		statErr := unix.Fstat(int(file.Fd()), &openStat)
		if statErr != nil {
			_ = file.Close()

			return nil, fmt.Errorf("fstat lock file: %w", statErr)
		}

		fd := int(file.Fd())
		done := make(chan error, 1)

		go func() {
			done <- unix.Flock(fd, unix.LOCK_EX)
		}()

		select {
		case err := <-done:
			if err != nil {
				_ = file.Close()

				return nil, fmt.Errorf("flock: %w", err)
			}

			// Verify the file at the path still has the same inode.
			// If not, someone deleted and recreated it while we were waiting.
			var pathStat unix.Stat_t

			pathErr := unix.Stat(lockPath, &pathStat)
			if pathErr != nil || pathStat.Ino != openStat.Ino {
				// File was deleted/replaced, retry with new file.
				_ = unix.Flock(fd, unix.LOCK_UN)
				_ = file.Close()

				continue
			}

			return &fileLock{path: lockPath, file: file}, nil
		case <-time.After(remaining):
			_ = file.Close()

			return nil, fmt.Errorf("%w: %s", errLockTimeout, path)
		}
	}
}
