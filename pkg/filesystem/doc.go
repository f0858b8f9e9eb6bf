// Package filesystem provides filesystem implementations for clseek.
//
// This package contains implementations of the types.FS interface: the
// standard OS filesystem used by the CLI and an afero adapter used by tests.
package filesystem
