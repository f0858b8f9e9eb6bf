package dirsync

import (
	"io"
	"path/filepath"

	"github.com/arthur-debert/clseek/pkg/errors"
	"github.com/arthur-debert/clseek/pkg/types"
)

// copyFile copies src to dstPath. existing is the destination file being
// replaced, if any; replacing needs Force.
func (s *Syncer) copyFile(src *types.Entry, dstPath string, existing *types.Entry) bool {
	if existing != nil && !s.opts.Force {
		s.logger.Warn().Str("path", dstPath).Msg("Destination exists and differs, use --force to overwrite")
		return false
	}

	s.report("create", "copy file %s into %s", src.Path, dstPath)
	if s.opts.DryRun {
		s.stats.FilesCreated++
		return true
	}

	if err := s.writeCopy(src, dstPath, existing != nil); err != nil {
		s.logger.Error().Err(err).Str("src", src.Path).Str("dst", dstPath).Msg("Copy failed")
		return false
	}
	s.stats.FilesCreated++
	return true
}

// writeCopy streams the content, removes a partial destination on failure
// and carries over times and permission bits
func (s *Syncer) writeCopy(src *types.Entry, dstPath string, replace bool) error {
	if replace {
		_ = s.fs.Chmod(dstPath, 0700)
		if err := s.fs.Remove(dstPath); err != nil {
			return errors.Wrapf(err, errors.ErrFileDelete, "cannot remove %s", dstPath)
		}
	}
	if err := s.fs.MkdirAll(filepath.Dir(dstPath), 0755); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "cannot create parent of %s", dstPath)
	}

	in, err := s.fs.Open(src.Path)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileCopy, "cannot open %s for reading", src.Path)
	}
	defer func() {
		_ = in.Close()
	}()

	out, err := s.fs.Create(dstPath, 0600)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileCopy, "cannot open %s for writing", dstPath)
	}

	buf := make([]byte, s.opts.BufferSize)
	_, copyErr := io.CopyBuffer(writerOnly{out}, in, buf)
	closeErr := out.Close()
	if copyErr == nil {
		copyErr = closeErr
	}
	if copyErr != nil {
		if err := s.fs.Remove(dstPath); err != nil {
			s.logger.Warn().Err(err).Str("path", dstPath).Msg("Cannot remove partial copy")
		}
		return errors.Wrapf(copyErr, errors.ErrFileCopy, "copying %s into %s failed", src.Path, dstPath)
	}

	// Times first: the final mode may be read only
	if err := s.fs.Chtimes(dstPath, src.AccessTime, src.ModTime); err != nil {
		return errors.Wrapf(err, errors.ErrFileCopy, "cannot set times on %s", dstPath)
	}
	if err := s.fs.Chmod(dstPath, src.Mode.Perm()); err != nil {
		return errors.Wrapf(err, errors.ErrFileCopy, "cannot set mode on %s", dstPath)
	}
	return nil
}

// writerOnly hides ReadFrom so CopyBuffer really uses the configured buffer
type writerOnly struct {
	io.Writer
}
