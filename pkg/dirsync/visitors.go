package dirsync

import (
	"github.com/arthur-debert/clseek/pkg/classify"
	"github.com/arthur-debert/clseek/pkg/types"
	"github.com/arthur-debert/clseek/pkg/walker"
)

// syncVisitor walks the source tree
type syncVisitor struct {
	syncer *Syncer
}

func (v *syncVisitor) VisitEntry(e *types.Entry) error {
	s := v.syncer
	if s.ignored(e) {
		s.logger.Debug().Str("path", e.Path).Msg("Ignored by .gitignore")
		return skip(e)
	}
	matched, vetoed := s.selected(e, s.srcRoot)
	if vetoed {
		return skip(e)
	}
	if !matched {
		// Children of a non matching directory may still match
		return nil
	}

	dstPath := join(s.dstRoot, relative(e.Path, s.srcRoot))
	switch e.Kind {
	case types.KindDirectory:
		return s.syncDir(e, dstPath)
	case types.KindFile:
		s.syncFile(e, dstPath)
	default:
		s.logger.Debug().Str("path", e.Path).Str("kind", e.Kind.String()).Msg("Skipping entry that is neither file nor directory")
	}
	return nil
}

func (s *Syncer) syncDir(src *types.Entry, dstPath string) error {
	s.stats.DirsChecked++
	if s.skipEmpty(src.Path) {
		s.logger.Debug().Str("path", src.Path).Msg("Skipping empty source directory")
		return walker.SkipDir
	}

	dst, err := classify.Classify(s.fs, dstPath)
	if err == nil && dst.IsDir() {
		s.reverseCheck(src.Path, dstPath)
		return nil
	}
	if err == nil && !s.deleteEntry(dst) {
		return walker.SkipDir
	}
	if !s.makeDir(dstPath) {
		return walker.SkipDir
	}
	return nil
}

func skip(e *types.Entry) error {
	if e.IsDir() {
		return walker.SkipDir
	}
	return nil
}

// reverseCheckVisitor looks at one destination directory and removes what
// its source directory no longer has
type reverseCheckVisitor struct {
	syncer *Syncer
	srcDir string
	dstDir string
}

func (s *Syncer) reverseCheck(srcDir, dstDir string) {
	v := &reverseCheckVisitor{syncer: s, srcDir: srcDir, dstDir: dstDir}
	if _, err := walker.New(s.fs, walker.Options{}).Walk(dstDir, v); err != nil {
		s.logger.Warn().Err(err).Str("path", dstDir).Msg("Reverse check failed")
	}
}

func (v *reverseCheckVisitor) VisitEntry(e *types.Entry) error {
	s := v.syncer
	if matched, _ := s.selected(e, s.dstRoot); !matched {
		return nil
	}
	srcPath := join(v.srcDir, e.Name)
	_, missing := s.fs.Lstat(srcPath)

	if e.IsDir() {
		s.stats.DirsChecked++
		// Subdirectories are only compared when the sync recurses
		if s.opts.Recursive && missing != nil && !s.opts.Keep {
			s.deleteDir(e)
		}
		return nil
	}
	s.stats.FilesChecked++
	if missing != nil && !s.opts.Keep {
		s.deleteFile(e)
	}
	return nil
}

// rmdirSweepVisitor deletes a tree: files while descending, directories once
// their children are gone
type rmdirSweepVisitor struct {
	syncer *Syncer
	root   string
}

func (v *rmdirSweepVisitor) VisitEntry(e *types.Entry) error {
	if !e.IsDir() {
		v.syncer.deleteFile(e)
	}
	return nil
}

func (v *rmdirSweepVisitor) LeaveDirectory(dir *types.Entry) error {
	s := v.syncer
	if dir.Path != v.root {
		s.report("remove", "delete directory %s", dir.Path)
		s.stats.DirsDeleted++
	}
	s.removeDir(dir.Path)
	return nil
}

// deleteEntry removes an entry standing in the way of a source entry of the
// other kind. It needs Force.
func (s *Syncer) deleteEntry(e *types.Entry) bool {
	if !s.opts.Force {
		s.logger.Warn().Str("path", e.Path).Msg("Destination entry is in the way, use --force to replace it")
		return false
	}
	if e.IsDir() {
		return s.deleteDir(e)
	}
	return s.deleteFile(e)
}

func (s *Syncer) deleteFile(e *types.Entry) bool {
	s.report("remove", "delete file %s", e.Path)
	s.stats.FilesDeleted++
	if s.opts.DryRun {
		return true
	}
	if !s.confirm.Confirm(e.Path) {
		return false
	}
	if s.opts.Force {
		_ = s.fs.Chmod(e.Path, 0700)
	}
	if err := s.fs.Remove(e.Path); err != nil {
		s.logger.Error().Err(err).Str("path", e.Path).Msg("Cannot delete destination file")
		s.stats.FileDeleteFailed++
		return false
	}
	return true
}

func (s *Syncer) deleteDir(e *types.Entry) bool {
	s.report("remove", "recursively delete %s", e.Path)
	s.stats.DirsDeleted++

	before := s.stats.DirDeleteFailed
	sweep := &rmdirSweepVisitor{syncer: s, root: e.Path}
	if _, err := walker.New(s.fs, walker.Options{Recursive: true}).Walk(e.Path, sweep); err != nil {
		s.logger.Error().Err(err).Str("path", e.Path).Msg("Cannot delete directory")
		s.stats.DirDeleteFailed++
		return false
	}
	return s.opts.DryRun || s.stats.DirDeleteFailed == before
}

func (s *Syncer) removeDir(path string) {
	if s.opts.DryRun {
		return
	}
	if !s.confirm.Confirm(path) {
		s.stats.DirDeleteFailed++
		return
	}
	if err := s.fs.Remove(path); err != nil {
		s.logger.Error().Err(err).Str("path", path).Msg("Cannot delete directory")
		s.stats.DirDeleteFailed++
	}
}

func (s *Syncer) makeDir(path string) bool {
	s.report("create", "mkdir %s", path)
	s.stats.DirsCreated++
	if s.opts.DryRun {
		return true
	}
	if err := s.fs.MkdirAll(path, 0777); err != nil {
		s.logger.Error().Err(err).Str("path", path).Msg("Cannot create directory")
		return false
	}
	return true
}
