// Package types defines the core types and interfaces shared by the clseek tools.
// This includes the FS interface every tool talks to and the Entry value the
// walker hands to visitors.
package types
