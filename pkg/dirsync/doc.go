// Package dirsync mirrors a source tree into a destination tree, one way.
//
// Three visitors drive the work:
//   - syncVisitor walks the source and creates, updates or replaces
//     destination entries
//   - reverseCheckVisitor walks one destination directory and removes the
//     entries that no longer exist in the source
//   - rmdirSweepVisitor deletes a directory tree bottom up, files on the way
//     down and directories in the post visit
//
// Overwriting or deleting existing destination entries needs Force; deletions
// of extra destination files are confirmed through a Confirmer otherwise.
package dirsync
