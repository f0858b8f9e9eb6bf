package types

import (
	"io/fs"
	"time"
)

// Kind is the classification of a directory entry
type Kind int

const (
	KindFile Kind = iota
	KindDirectory
	KindSymlink
	KindOther
)

// String returns the lower case kind name used in logs and reports
func (k Kind) String() string {
	switch k {
	case KindFile:
		return "file"
	case KindDirectory:
		return "directory"
	case KindSymlink:
		return "symlink"
	default:
		return "other"
	}
}

// Entry is one filesystem object met during a walk. Its Kind is set once by
// the classifier and never recomputed.
type Entry struct {
	Name       string
	Path       string
	Kind       Kind
	Size       int64
	ModTime    time.Time
	AccessTime time.Time
	Mode       fs.FileMode
}

// IsDir reports whether the entry is a directory
func (e *Entry) IsDir() bool {
	return e.Kind == KindDirectory
}

// Perm returns the owner rwx bits, the only permission bits the tools compare
func (e *Entry) Perm() fs.FileMode {
	return e.Mode.Perm() & 0700
}

// TypeTag returns the short type column of detail listings: REG, DIR, LNK,
// SOCK or OTH
func (e *Entry) TypeTag() string {
	switch e.Kind {
	case KindFile:
		return "REG"
	case KindDirectory:
		return "DIR"
	case KindSymlink:
		return "LNK"
	}
	if e.Mode&fs.ModeSocket != 0 {
		return "SOCK"
	}
	return "OTH"
}
