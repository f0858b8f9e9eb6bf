// Package testutil provides helpers shared by the clseek tests.
//
// Key components:
//   - FileTree / CreateFileTree: declarative tree setup on any types.FS
//   - NewMemFS: afero backed in-memory filesystem for fast, isolated tests
//   - File helpers for tests that need the real filesystem (permissions,
//     symlinks, timestamps)
//
// Usage guidelines:
//   - Prefer NewMemFS; use t.TempDir with filesystem.NewOS only when the
//     behavior under test depends on the operating system
//   - All test data should be defined inline, not in external files
package testutil
