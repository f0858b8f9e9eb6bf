// Package walker visits a directory tree depth first and hands every entry to
// a Visitor. It classifies each entry once, keeps per kind counts and stops
// cleanly when a visitor asks it to.
package walker

import (
	"io/fs"
	"os"
	"strings"

	"github.com/arthur-debert/clseek/pkg/classify"
	"github.com/arthur-debert/clseek/pkg/errors"
	"github.com/arthur-debert/clseek/pkg/logging"
	"github.com/arthur-debert/clseek/pkg/types"
	"github.com/rs/zerolog"
)

// SkipAll returned by a visitor stops the whole walk without an error
var SkipAll = fs.SkipAll

// SkipDir returned for a directory entry keeps the walker out of it
var SkipDir = fs.SkipDir

// Visitor receives every entry below the walk root
type Visitor interface {
	VisitEntry(e *types.Entry) error
}

// PostVisitor is implemented by visitors that need to act on a directory
// after all of its children were visited. The walk root is included.
type PostVisitor interface {
	LeaveDirectory(dir *types.Entry) error
}

// Options controls recursion
type Options struct {
	Recursive bool
	// MaxDepth bounds recursion; 0 means unlimited. Children of the root
	// are at depth 1.
	MaxDepth int
}

// Stats counts visited entries per kind
type Stats struct {
	Directories int
	Files       int
	Others      int
}

// Total returns the number of visited entries
func (s Stats) Total() int {
	return s.Directories + s.Files + s.Others
}

// Walker walks one tree at a time. It is not safe for concurrent use.
type Walker struct {
	fs      types.FS
	opts    Options
	stats   Stats
	stopped bool
	logger  zerolog.Logger
}

// New creates a walker over fsys
func New(fsys types.FS, opts Options) *Walker {
	return &Walker{
		fs:     fsys,
		opts:   opts,
		logger: logging.GetLogger("walker"),
	}
}

// Stats returns the counts accumulated over every Walk call
func (w *Walker) Stats() Stats {
	return w.stats
}

// Stopped reports whether a visitor returned SkipAll
func (w *Walker) Stopped() bool {
	return w.stopped
}

// Walk visits the entries below root and returns how many were visited. An
// unreadable root fails with ErrDirectoryUnreadable; unreadable directories
// deeper in the tree are logged and skipped.
func (w *Walker) Walk(root string, v Visitor) (int, error) {
	before := w.stats.Total()
	w.stopped = false

	err := w.walkDir(root, 1, v)
	if err == SkipAll {
		w.stopped = true
		err = nil
	}
	if err == nil && !w.stopped {
		err = w.leave(root, v)
		if err == SkipAll {
			w.stopped = true
			err = nil
		}
	}
	return w.stats.Total() - before, err
}

func (w *Walker) walkDir(dir string, depth int, v Visitor) error {
	children, err := w.fs.ReadDir(dir)
	if err != nil {
		if depth == 1 {
			return errors.Wrapf(err, errors.ErrDirectoryUnreadable, "cannot read directory %s", dir).
				WithDetail("path", dir)
		}
		w.logger.Warn().Err(err).Str("path", dir).Msg("Skipping unreadable directory")
		return nil
	}

	for _, child := range children {
		name := child.Name()
		if name == "." || name == ".." {
			continue
		}
		path := join(dir, name)

		entry, err := classify.Classify(w.fs, path)
		if err != nil {
			w.logger.Debug().Str("path", path).Msg("Entry vanished before stat, skipping")
			continue
		}
		w.count(entry)

		err = v.VisitEntry(entry)
		if err == SkipDir && entry.IsDir() {
			continue
		}
		if err != nil {
			return err
		}

		if entry.IsDir() && w.descend(depth) {
			if err := w.walkDir(path, depth+1, v); err != nil {
				return err
			}
			if err := w.leave(path, v); err != nil {
				return err
			}
		}
	}
	return nil
}

func (w *Walker) descend(depth int) bool {
	return w.opts.Recursive && (w.opts.MaxDepth == 0 || depth < w.opts.MaxDepth)
}

// leave calls the post visit hook for a directory whose children were walked
func (w *Walker) leave(dir string, v Visitor) error {
	pv, ok := v.(PostVisitor)
	if !ok {
		return nil
	}
	entry, err := classify.Classify(w.fs, dir)
	if err != nil {
		w.logger.Debug().Str("path", dir).Msg("Directory vanished before post visit")
		return nil
	}
	return pv.LeaveDirectory(entry)
}

func (w *Walker) count(e *types.Entry) {
	switch e.Kind {
	case types.KindDirectory:
		w.stats.Directories++
	case types.KindFile:
		w.stats.Files++
	default:
		w.stats.Others++
	}
}

// join appends name to dir without doubling a trailing separator
func join(dir, name string) string {
	if strings.HasSuffix(dir, "/") || strings.HasSuffix(dir, string(os.PathSeparator)) {
		return dir + name
	}
	return dir + string(os.PathSeparator) + name
}
