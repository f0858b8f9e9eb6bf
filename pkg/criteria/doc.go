// Package criteria holds the match criteria shared by the clseek tools and the
// evaluator that applies them to one directory entry.
//
// # Accounting
//
// Every enabled predicate kind is a category. Evaluation counts the
// categories an entry satisfies and the entry matches only when that count
// equals the number of configured categories, so categories combine with AND.
//
// Exclude categories (name excludes contains/begins/ends, path excludes)
// earn their unit by not hitting; any hit vetoes the entry at once. Name
// contains and path contains count one unit per pattern, so all of their
// patterns must be present. Path contains additionally rejects as soon as one
// of its patterns is missing.
//
// The fixed evaluation order is: exclusions, path contains, name equals,
// name length, name contains, begins, ends, regexes, glob, time, size,
// permission.
//
// # Building
//
// A Builder consumes options one at a time, either through typed setters or
// through Apply with the (code, value) pairs produced by the command line
// layer, and produces an immutable Criteria with Build. Malformed time, size,
// length, permission or attribute specs fail with ErrConstraintParse and bad
// regular expressions or globs with ErrPatternCompile, before any traversal.
package criteria
