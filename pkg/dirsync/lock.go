package dirsync

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"time"

	"github.com/arthur-debert/clseek/pkg/errors"
	"github.com/arthur-debert/clseek/pkg/paths"
	"github.com/gofrs/flock"
)

// destinationLock keeps two runs from writing into the same destination
type destinationLock struct {
	flock *flock.Flock
	path  string
}

// lockPath derives a per destination lock file below dir, or below the XDG
// state directory when dir is empty
func lockPath(dir, dst string) (string, error) {
	abs, err := filepath.Abs(dst)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrInvalidInput, "cannot resolve %s", dst)
	}
	if dir == "" {
		dir = paths.LockDir()
	}
	sum := sha256.Sum256([]byte(abs))
	return filepath.Join(dir, hex.EncodeToString(sum[:8])+".lock"), nil
}

// lockRetryDelay is the polling interval while waiting for a busy lock
const lockRetryDelay = 50 * time.Millisecond

// acquireLock takes the destination lock. With a zero wait it fails at once
// when another run holds it; otherwise it polls until wait elapses.
func acquireLock(dir, dst string, wait time.Duration) (*destinationLock, error) {
	path, err := lockPath(dir, dst)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, errors.Wrapf(err, errors.ErrDirCreate, "cannot create lock directory %s", filepath.Dir(path))
	}

	fl := flock.New(path)
	var acquired bool
	if wait > 0 {
		ctx, cancel := context.WithTimeout(context.Background(), wait)
		defer cancel()
		acquired, err = fl.TryLockContext(ctx, lockRetryDelay)
		if err != nil && ctx.Err() != nil {
			err = nil
		}
	} else {
		acquired, err = fl.TryLock()
	}
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrLocked, "failed to try lock on %s", path)
	}
	if !acquired {
		return nil, errors.Newf(errors.ErrLocked, "another sync into %s is running", dst).
			WithDetail("lock", path)
	}
	return &destinationLock{flock: fl, path: path}, nil
}

func (l *destinationLock) release() error {
	if err := l.flock.Unlock(); err != nil {
		return errors.Wrapf(err, errors.ErrLocked, "failed to release lock on %s", l.path)
	}
	return nil
}
