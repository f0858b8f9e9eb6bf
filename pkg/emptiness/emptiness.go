// Package emptiness decides whether files, directories and whole trees are
// empty. A tree is empty when it holds nothing but directories.
package emptiness

import (
	"fmt"

	"github.com/arthur-debert/clseek/pkg/classify"
	"github.com/arthur-debert/clseek/pkg/errors"
	"github.com/arthur-debert/clseek/pkg/types"
	"github.com/arthur-debert/clseek/pkg/walker"
)

// IsEmptyFile reports whether path is a regular file of size 0
func IsEmptyFile(fsys types.FS, path string) (bool, error) {
	e, err := classify.Classify(fsys, path)
	if err != nil {
		return false, err
	}
	return e.Kind == types.KindFile && e.Size == 0, nil
}

// IsEmptyDir reports whether the directory has no entries at all
func IsEmptyDir(fsys types.FS, path string) (bool, error) {
	children, err := fsys.ReadDir(path)
	if err != nil {
		return false, errors.Wrapf(err, errors.ErrDirectoryUnreadable, "cannot read directory %s", path)
	}
	return len(children) == 0, nil
}

// nonDirFinder stops the walk at the first entry that is not a directory
type nonDirFinder struct {
	found string
}

func (f *nonDirFinder) VisitEntry(e *types.Entry) error {
	if e.IsDir() {
		return nil
	}
	f.found = e.Path
	return walker.SkipAll
}

// IsEmptyTree reports whether the tree below path contains no file, symlink
// or other non-directory entry
func IsEmptyTree(fsys types.FS, path string) (bool, error) {
	finder := &nonDirFinder{}
	if _, err := walker.New(fsys, walker.Options{Recursive: true}).Walk(path, finder); err != nil {
		return false, err
	}
	return finder.found == "", nil
}

// Verdict is the result of Check
type Verdict struct {
	Path  string
	Kind  types.Kind
	Empty bool
}

// String renders the verdict as a sentence
func (v Verdict) String() string {
	noun := "file"
	if v.Kind == types.KindDirectory {
		noun = "directory"
	}
	if v.Empty {
		return fmt.Sprintf("%s: an empty %s.", v.Path, noun)
	}
	return fmt.Sprintf("%s: non-empty %s.", v.Path, noun)
}

// Check classifies path and applies the matching emptiness test: files by
// size, directories by their whole tree
func Check(fsys types.FS, path string) (Verdict, error) {
	e, err := classify.Classify(fsys, path)
	if err != nil {
		return Verdict{}, err
	}
	v := Verdict{Path: path, Kind: e.Kind}
	switch e.Kind {
	case types.KindDirectory:
		v.Empty, err = IsEmptyTree(fsys, path)
	case types.KindFile:
		v.Empty = e.Size == 0
	default:
		return v, errors.Newf(errors.ErrInvalidInput, "%s is neither a file nor a directory", path)
	}
	return v, err
}
