package patterns

import "strings"

// Policy selects which of two subsuming patterns a table keeps
type Policy int

const (
	KeepLonger Policy = iota
	KeepShorter
	KeepShorterAnchoredAtEnd
)

func (p Policy) String() string {
	switch p {
	case KeepLonger:
		return "keep-longer"
	case KeepShorter:
		return "keep-shorter"
	case KeepShorterAnchoredAtEnd:
		return "keep-shorter-at-end"
	default:
		return "unknown"
	}
}

// InsertResult tells the caller what Insert did with a pattern
type InsertResult int

const (
	Added InsertResult = iota
	Replaced
	Rejected
)

func (r InsertResult) String() string {
	switch r {
	case Added:
		return "added"
	case Replaced:
		return "replaced"
	default:
		return "rejected"
	}
}

// Table is an ordered set of unique patterns. It is mutated while options are
// parsed and only read during traversal.
type Table struct {
	policy   Policy
	patterns []string
	folded   bool
}

// New creates an empty table with the given policy
func New(policy Policy) *Table {
	return &Table{policy: policy}
}

// Policy returns the table policy
func (t *Table) Policy() Policy {
	return t.policy
}

// Len returns the number of patterns. A nil table is empty.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.patterns)
}

// Patterns returns a copy of the patterns in insertion order
func (t *Table) Patterns() []string {
	if t == nil {
		return nil
	}
	out := make([]string, len(t.patterns))
	copy(out, t.patterns)
	return out
}

// Insert adds pattern according to the table policy. A pattern already
// covered by an entry is rejected; otherwise it replaces every entry it
// covers, or is appended when it covers none.
func (t *Table) Insert(pattern string) InsertResult {
	if pattern == "" {
		return Rejected
	}
	for _, existing := range t.patterns {
		if t.covers(existing, pattern) {
			return Rejected
		}
	}

	slot := -1
	kept := t.patterns[:0]
	for _, existing := range t.patterns {
		if t.covers(pattern, existing) {
			if slot < 0 {
				slot = len(kept)
				kept = append(kept, pattern)
			}
			continue
		}
		kept = append(kept, existing)
	}
	t.patterns = kept
	if slot >= 0 {
		return Replaced
	}
	t.patterns = append(t.patterns, pattern)
	return Added
}

// covers reports whether keeping a makes b redundant under the table policy
func (t *Table) covers(a, b string) bool {
	switch t.policy {
	case KeepLonger:
		return strings.Contains(a, b)
	case KeepShorter:
		return strings.Contains(b, a)
	case KeepShorterAnchoredAtEnd:
		return len(b) >= len(a) && strings.HasSuffix(b, a)
	default:
		return a == b
	}
}

// Remove drops pattern from the table and reports whether it was present
func (t *Table) Remove(pattern string) bool {
	for i, existing := range t.patterns {
		if existing == pattern {
			t.patterns = append(t.patterns[:i], t.patterns[i+1:]...)
			return true
		}
	}
	return false
}

// Lower returns a case-folded copy of the table. Candidates matched against
// the copy are lower cased too, so both sides are compared folded.
func (t *Table) Lower() *Table {
	if t == nil {
		return nil
	}
	out := &Table{policy: t.policy, folded: true}
	for _, p := range t.patterns {
		out.Insert(strings.ToLower(p))
	}
	return out
}

func (t *Table) candidate(s string) string {
	if t.folded {
		return strings.ToLower(s)
	}
	return s
}

// MatchCount returns how many patterns occur as substrings of s
func (t *Table) MatchCount(s string) int {
	return t.count(s, strings.Contains)
}

// AnyMatch reports whether at least one pattern occurs in s
func (t *Table) AnyMatch(s string) bool {
	return t.MatchCount(s) > 0
}

// PrefixCount returns how many patterns s begins with
func (t *Table) PrefixCount(s string) int {
	return t.count(s, strings.HasPrefix)
}

// SuffixCount returns how many patterns s ends with
func (t *Table) SuffixCount(s string) int {
	return t.count(s, strings.HasSuffix)
}

func (t *Table) count(s string, hit func(s, pattern string) bool) int {
	if t.Len() == 0 {
		return 0
	}
	s = t.candidate(s)
	n := 0
	for _, p := range t.patterns {
		if hit(s, p) {
			n++
		}
	}
	return n
}

// ResolveConflicts drops every exclude pattern that overlaps an include
// pattern, either one containing the other. Inclusion wins. It returns the
// dropped patterns.
func ResolveConflicts(include, exclude *Table) []string {
	if include.Len() == 0 || exclude.Len() == 0 {
		return nil
	}
	var dropped []string
	for _, ex := range exclude.Patterns() {
		for _, in := range include.patterns {
			if strings.Contains(in, ex) || strings.Contains(ex, in) {
				exclude.Remove(ex)
				dropped = append(dropped, ex)
				break
			}
		}
	}
	return dropped
}
