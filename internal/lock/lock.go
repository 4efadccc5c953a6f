// Package lock serializes installs that target the same destination path,
// across goroutines and across processes.
package lock

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"

	"github.com/ajilantony/copilot-agentops-mcp/internal/errors"
)

// DefaultRetryDelay is how often a contended lock is retried.
const DefaultRetryDelay = 50 * time.Millisecond

// Locker hands out advisory file locks kept in dir. Lock files are named
// after a hash of the absolute destination path and are left in place.
type Locker struct {
	dir        string
	retryDelay time.Duration
}

// New returns a Locker whose lock files live in dir.
func New(dir string) *Locker {
	return &Locker{dir: dir, retryDelay: DefaultRetryDelay}
}

// Dir returns the lock directory.
func (l *Locker) Dir() string {
	return l.dir
}

// Acquire blocks until the lock for dest is held or ctx is done. The
// returned function releases it.
func (l *Locker) Acquire(ctx context.Context, dest string) (func(), error) {
	if err := os.MkdirAll(l.dir, 0o700); err != nil {
		return nil, errors.Wrapf(err, "creating lock directory %s", l.dir)
	}

	lockPath, err := l.pathFor(dest)
	if err != nil {
		return nil, err
	}

	fl := flock.New(lockPath)
	locked, err := fl.TryLockContext(ctx, l.retryDelay)
	if err != nil {
		return nil, errors.Wrapf(err, "locking %s", dest)
	}
	if !locked {
		return nil, errors.Newf("could not lock %s", dest)
	}
	return func() { _ = fl.Unlock() }, nil
}

func (l *Locker) pathFor(dest string) (string, error) {
	abs, err := filepath.Abs(dest)
	if err != nil {
		return "", errors.Wrapf(err, "resolving %s", dest)
	}
	sum := sha256.Sum256([]byte(filepath.Clean(abs)))
	return filepath.Join(l.dir, hex.EncodeToString(sum[:12])+".lock"), nil
}
