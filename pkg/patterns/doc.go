// Package patterns implements the deduplicating pattern table used by every
// name and path filter.
//
// A table keeps a set of plain substrings. When one pattern subsumes another
// the table keeps the one that is most useful for its role:
//
//   - KeepLonger (inclusion sets): "foobar" replaces "foo", because requiring
//     the longer string is the stricter, more specific filter.
//   - KeepShorter (exclusion sets): "foo" replaces "foobar", because the
//     shorter exclusion already vetoes everything the longer one would.
//   - KeepShorterAnchoredAtEnd: like KeepShorter but containment is judged on
//     suffixes only, for "name ends with" exclusions.
//
// Insert reports whether a pattern was added, replaced an entry or was
// rejected, so callers can count configured categories exactly once.
package patterns
