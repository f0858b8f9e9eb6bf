package dirsync

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/clseek/pkg/classify"
	"github.com/arthur-debert/clseek/pkg/criteria"
	"github.com/arthur-debert/clseek/pkg/emptiness"
	"github.com/arthur-debert/clseek/pkg/errors"
	"github.com/arthur-debert/clseek/pkg/logging"
	"github.com/arthur-debert/clseek/pkg/style"
	"github.com/arthur-debert/clseek/pkg/types"
	"github.com/arthur-debert/clseek/pkg/walker"
	gitignore "github.com/monochromegane/go-gitignore"
	"github.com/rs/zerolog"
)

// Syncer runs one-way syncs. It is not safe for concurrent use.
type Syncer struct {
	fs      types.FS
	opts    Options
	out     io.Writer
	confirm Confirmer
	logger  zerolog.Logger

	stats   Stats
	ignore  gitignore.IgnoreMatcher
	srcRoot string
	dstRoot string
}

// New creates a syncer reporting its actions to out
func New(fsys types.FS, opts Options, out io.Writer) *Syncer {
	if opts.BufferSize == 0 {
		opts.BufferSize = DefaultBufferSize
	}
	if opts.Criteria == nil {
		opts.Criteria = &criteria.Criteria{FullPathScope: true}
	}
	s := &Syncer{
		fs:      fsys,
		opts:    opts,
		out:     out,
		confirm: NewPromptConfirmer(os.Stdin, os.Stderr),
		logger:  logging.GetLogger("dirsync"),
	}
	if opts.Force {
		s.confirm = alwaysConfirm{}
	}
	return s
}

// WithConfirmer replaces the deletion prompt. It has no effect with Force.
func (s *Syncer) WithConfirmer(c Confirmer) *Syncer {
	if !s.opts.Force {
		s.confirm = c
	}
	return s
}

// Stats returns the counters of the last run
func (s *Syncer) Stats() Stats {
	return s.stats
}

// Sync mirrors src into dst. src is a directory, or a regular file when dst
// is an existing directory.
func (s *Syncer) Sync(src, dst string) (Stats, error) {
	if err := s.opts.Validate(); err != nil {
		return s.stats, err
	}
	done := logging.LogOperationStart(s.logger, "sync "+src+" -> "+dst)
	defer done()

	if s.opts.Lock && !s.opts.DryRun {
		lock, err := acquireLock(s.opts.LockDir, dst, s.opts.LockWait)
		if err != nil {
			return s.stats, err
		}
		defer func() {
			if err := lock.release(); err != nil {
				s.logger.Warn().Err(err).Msg("Releasing destination lock failed")
			}
		}()
	}

	srcEntry, err := classify.Classify(s.fs, src)
	if err != nil {
		return s.stats, errors.Wrapf(err, errors.ErrNotFound, "source not found: %s", src)
	}
	dstEntry, dstErr := classify.Classify(s.fs, dst)

	if srcEntry.Kind == types.KindFile {
		if dstErr != nil || !dstEntry.IsDir() {
			return s.stats, errors.Newf(errors.ErrInvalidInput, "syncing the file %s needs an existing destination directory", src)
		}
		s.srcRoot, s.dstRoot = filepath.Dir(src), dst
		s.syncFile(srcEntry, join(dst, srcEntry.Name))
		return s.stats, nil
	}
	if !srcEntry.IsDir() {
		return s.stats, errors.Newf(errors.ErrInvalidInput, "not a directory: %s", src)
	}

	s.srcRoot, s.dstRoot = src, dst
	if err := s.loadGitignore(); err != nil {
		return s.stats, err
	}

	switch {
	case dstErr != nil:
		if !s.makeDir(dst) {
			return s.stats, errors.Newf(errors.ErrDirCreate, "cannot create directory %s", dst)
		}
	case !dstEntry.IsDir():
		return s.stats, errors.Newf(errors.ErrInvalidInput, "not a directory: %s", dst)
	default:
		s.reverseCheck(src, dst)
	}

	w := walker.New(s.fs, walker.Options{Recursive: s.opts.Recursive})
	if _, err := w.Walk(src, &syncVisitor{syncer: s}); err != nil {
		return s.stats, err
	}
	s.logger.Info().
		Int("filesCreated", s.stats.FilesCreated).
		Int("filesDeleted", s.stats.FilesDeleted).
		Int("dirsCreated", s.stats.DirsCreated).
		Bool("dryRun", s.opts.DryRun).
		Msg("Sync complete")
	return s.stats, nil
}

func (s *Syncer) loadGitignore() error {
	if !s.opts.Gitignore {
		return nil
	}
	path := join(s.srcRoot, ".gitignore")
	data, err := s.fs.ReadFile(path)
	if err != nil {
		s.logger.Debug().Str("path", path).Msg("No .gitignore at the source root")
		return nil
	}
	s.ignore = gitignore.NewGitIgnoreFromReader(s.srcRoot, bytes.NewReader(data))
	return nil
}

func (s *Syncer) ignored(e *types.Entry) bool {
	return s.ignore != nil && s.ignore.Match(e.Path, e.IsDir())
}

// selected evaluates e with its path made relative to root. vetoed reports
// an exclude hit, which keeps a whole directory out of the sync.
func (s *Syncer) selected(e *types.Entry, root string) (matched, vetoed bool) {
	probe := *e
	probe.Path = relative(e.Path, root)
	res := s.opts.Criteria.Score(&probe)
	return res.Matched, res.Vetoed
}

// sameFile compares size and modification second, or accepts an older
// source when UpdateNewer is set
func (s *Syncer) sameFile(src, dst *types.Entry) bool {
	if src.Size == dst.Size && src.ModTime.Unix() == dst.ModTime.Unix() {
		return true
	}
	return s.opts.UpdateNewer && src.ModTime.Before(dst.ModTime)
}

func (s *Syncer) skipEmpty(dir string) bool {
	var (
		empty bool
		err   error
	)
	switch {
	case s.opts.SkipEmptyTree:
		empty, err = emptiness.IsEmptyTree(s.fs, dir)
	case s.opts.SkipEmptyDir:
		empty, err = emptiness.IsEmptyDir(s.fs, dir)
	default:
		return false
	}
	if err != nil {
		s.logger.Warn().Err(err).Str("path", dir).Msg("Cannot check directory emptiness")
		return false
	}
	return empty
}

// syncFile brings dstPath in line with the source file
func (s *Syncer) syncFile(src *types.Entry, dstPath string) {
	s.stats.FilesChecked++

	dst, err := classify.Classify(s.fs, dstPath)
	if err != nil {
		s.copyFile(src, dstPath, nil)
		return
	}
	if dst.IsDir() {
		if s.deleteEntry(dst) {
			s.copyFile(src, dstPath, nil)
		}
		return
	}
	if s.sameFile(src, dst) {
		s.logger.Trace().Str("src", src.Path).Str("dst", dstPath).Msg("Files match")
		return
	}
	s.report("update", "copy file %s into %s", src.Path, dstPath)
	s.copyFile(src, dstPath, dst)
}

func (s *Syncer) report(action, format string, args ...interface{}) {
	if s.opts.Quiet {
		return
	}
	tag, styleName := "sync", actionStyles[action]
	if s.opts.DryRun {
		tag, styleName = "would", "muted"
	}
	label := style.Paint(styleName, "["+tag+"-"+action+"]")
	fmt.Fprintf(s.out, "%s %s\n", label, fmt.Sprintf(format, args...))
}

var actionStyles = map[string]string{
	"create": "success",
	"update": "warning",
	"remove": "error",
}

func relative(path, root string) string {
	rel := strings.TrimPrefix(path, root)
	return strings.TrimLeft(rel, "/"+string(os.PathSeparator))
}

func join(dir, name string) string {
	if name == "" {
		return dir
	}
	if strings.HasSuffix(dir, "/") || strings.HasSuffix(dir, string(os.PathSeparator)) {
		return dir + name
	}
	return dir + string(os.PathSeparator) + name
}
