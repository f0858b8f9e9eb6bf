package dirsync

import (
	"time"

	"github.com/arthur-debert/clseek/pkg/criteria"
	"github.com/arthur-debert/clseek/pkg/errors"
)

// DefaultBufferSize is the copy buffer used when Options.BufferSize is 0
const DefaultBufferSize = 32 * 1024

// Options controls one sync run
type Options struct {
	Recursive bool
	DryRun    bool
	// Force allows overwriting and deleting without confirmation
	Force bool
	// Keep never deletes destination entries missing from the source
	Keep bool
	// UpdateNewer treats a destination newer than its source as up to date
	UpdateNewer   bool
	SkipEmptyDir  bool
	SkipEmptyTree bool
	Quiet         bool
	// Criteria selects source entries; path categories see the path
	// relative to the sync root
	Criteria   *criteria.Criteria
	BufferSize int
	// Gitignore skips source entries ignored by the source root .gitignore
	Gitignore bool
	// Lock takes an exclusive lock per destination for the run
	Lock    bool
	LockDir string
	// LockWait is how long to wait for a busy lock; 0 fails at once
	LockWait time.Duration
}

// Validate rejects contradictory options
func (o Options) Validate() error {
	if o.Keep && o.Force {
		return errors.New(errors.ErrInvalidInput, "--keep conflicts with --force")
	}
	if o.LockWait < 0 {
		return errors.Newf(errors.ErrInvalidInput, "invalid lock wait %s", o.LockWait)
	}
	if o.BufferSize < 0 {
		return errors.Newf(errors.ErrInvalidInput, "invalid buffer size %d", o.BufferSize)
	}
	return nil
}
