package types

import (
	"io"
	"io/fs"
	"time"
)

// FS is the filesystem interface required by the walker, the classifier and the tools
type FS interface {
	// Query operations
	Stat(name string) (fs.FileInfo, error)
	// Lstat does not follow symlinks; implementations without symlink
	// support fall back to Stat
	Lstat(name string) (fs.FileInfo, error)
	ReadDir(name string) ([]fs.DirEntry, error)
	ReadFile(name string) ([]byte, error)

	// Content operations
	Open(name string) (io.ReadCloser, error)
	Create(name string, perm fs.FileMode) (io.WriteCloser, error)
	WriteFile(name string, data []byte, perm fs.FileMode) error

	// Directory operations
	Mkdir(path string, perm fs.FileMode) error
	MkdirAll(path string, perm fs.FileMode) error

	// Metadata operations
	Chmod(name string, mode fs.FileMode) error
	Chtimes(name string, atime, mtime time.Time) error

	// Removal
	Remove(name string) error
	RemoveAll(path string) error
}
