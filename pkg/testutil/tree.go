package testutil

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/arthur-debert/clseek/pkg/filesystem"
	"github.com/arthur-debert/clseek/pkg/types"
	"github.com/spf13/afero"
)

// FileTree represents a nested file structure for declarative test setup.
// String values are file contents, FileTree values are directories.
type FileTree map[string]interface{}

// NewMemFS returns an empty in-memory filesystem
func NewMemFS() types.FS {
	return filesystem.NewAferoFS(afero.NewMemMapFs())
}

// CreateFileTree creates tree below basePath on fs
func CreateFileTree(t *testing.T, fs types.FS, basePath string, tree FileTree) {
	t.Helper()

	if err := fs.MkdirAll(basePath, 0755); err != nil {
		t.Fatalf("Failed to create directory %s: %v", basePath, err)
	}
	for name, content := range tree {
		fullPath := filepath.Join(basePath, name)

		switch v := content.(type) {
		case string:
			if err := fs.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
				t.Fatalf("Failed to create parent of %s: %v", fullPath, err)
			}
			if err := fs.WriteFile(fullPath, []byte(v), 0644); err != nil {
				t.Fatalf("Failed to write file %s: %v", fullPath, err)
			}
		case FileTree:
			CreateFileTree(t, fs, fullPath, v)
		default:
			t.Fatalf("Invalid file tree content type for %s: %T", name, content)
		}
	}
}

// SetModTime sets both access and modification time of path
func SetModTime(t *testing.T, fs types.FS, path string, when time.Time) {
	t.Helper()

	if err := fs.Chtimes(path, when, when); err != nil {
		t.Fatalf("Failed to set times on %s: %v", path, err)
	}
}

// ReadString reads a file from fs
func ReadString(t *testing.T, fs types.FS, path string) string {
	t.Helper()

	data, err := fs.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(data)
}

// Exists reports whether path can be stat'ed on fs
func Exists(fs types.FS, path string) bool {
	_, err := fs.Lstat(path)
	return err == nil
}
