// Package classify turns a path into a types.Entry with a single lstat call.
package classify

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/arthur-debert/clseek/pkg/errors"
	"github.com/arthur-debert/clseek/pkg/types"
)

// Classify stats path once and returns the classified entry. A path that
// cannot be stat'ed yields an ErrNotFound error; callers skip such entries.
func Classify(fsys types.FS, path string) (*types.Entry, error) {
	info, err := fsys.Lstat(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrNotFound, "cannot stat %s", path).
			WithDetail("path", path)
	}
	return FromInfo(path, info), nil
}

// FromInfo builds an entry from metadata already at hand
func FromInfo(path string, info fs.FileInfo) *types.Entry {
	return &types.Entry{
		Name:       filepath.Base(path),
		Path:       path,
		Kind:       KindOf(info.Mode()),
		Size:       info.Size(),
		ModTime:    info.ModTime(),
		AccessTime: accessTime(info),
		Mode:       info.Mode(),
	}
}

// KindOf maps file mode type bits onto an entry kind
func KindOf(mode fs.FileMode) types.Kind {
	switch {
	case mode.IsDir():
		return types.KindDirectory
	case mode&os.ModeSymlink != 0:
		return types.KindSymlink
	case mode.IsRegular():
		return types.KindFile
	default:
		return types.KindOther
	}
}
