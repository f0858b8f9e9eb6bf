package criteria

import (
	"fmt"
	"io/fs"
	"regexp"
	"strings"
	"time"

	"github.com/arthur-debert/clseek/pkg/patterns"
	"github.com/arthur-debert/clseek/pkg/types"
)

// Attributes is the set of entry kinds an evaluation accepts
type Attributes uint8

const (
	AttrFile Attributes = 1 << iota
	AttrDirectory
	AttrSymlink
	AttrOther

	AttrDefault = AttrFile | AttrDirectory | AttrSymlink
	AttrAll     = AttrDefault | AttrOther
)

// Accepts reports whether kind is in the set. An empty set accepts everything.
func (a Attributes) Accepts(kind types.Kind) bool {
	if a == 0 {
		return true
	}
	switch kind {
	case types.KindFile:
		return a&AttrFile != 0
	case types.KindDirectory:
		return a&AttrDirectory != 0
	case types.KindSymlink:
		return a&AttrSymlink != 0
	default:
		return a&AttrOther != 0
	}
}

// Names lists the kinds in the set
func (a Attributes) Names() []string {
	var names []string
	for _, k := range []types.Kind{types.KindFile, types.KindDirectory, types.KindSymlink, types.KindOther} {
		if a != 0 && a.Accepts(k) {
			names = append(names, k.String())
		}
	}
	return names
}

// TimeDirection selects how the modification age is compared to a duration
type TimeDirection int

const (
	Within TimeDirection = iota
	Over
)

// TimeConstraint matches entries by age relative to "now"
type TimeConstraint struct {
	Direction TimeDirection
	Duration  time.Duration
}

// Matches compares the age of mtime at now against the constraint
func (tc TimeConstraint) Matches(now, mtime time.Time) bool {
	age := now.Sub(mtime)
	if tc.Direction == Within {
		return age <= tc.Duration
	}
	return age >= tc.Duration
}

// Comparison is the shape of a size or name length constraint
type Comparison int

const (
	Equal Comparison = iota
	Less
	LessOrEqual
	Greater
	GreaterOrEqual
	InRange
)

func (c Comparison) String() string {
	switch c {
	case Equal:
		return "equal"
	case Less:
		return "less"
	case LessOrEqual:
		return "less-or-equal"
	case Greater:
		return "over"
	case GreaterOrEqual:
		return "over-or-equal"
	default:
		return "in-range"
	}
}

// RangeConstraint compares a number against a value or an inclusive range
type RangeConstraint struct {
	Mode  Comparison
	Value int64
	Lower int64
	Upper int64
}

// Matches applies the constraint to v. A range whose bounds were given in
// reverse order matches nothing.
func (rc RangeConstraint) Matches(v int64) bool {
	switch rc.Mode {
	case Equal:
		return v == rc.Value
	case Less:
		return v < rc.Value
	case LessOrEqual:
		return v <= rc.Value
	case Greater:
		return v > rc.Value
	case GreaterOrEqual:
		return v >= rc.Value
	default:
		return v >= rc.Lower && v <= rc.Upper
	}
}

// PermissionState selects how requested bits are compared to an entry mode
type PermissionState int

const (
	NotInclude PermissionState = iota
	ToInclude
	ToMatch
)

// PermissionConstraint compares owner rwx bits
type PermissionConstraint struct {
	State PermissionState
	Bits  fs.FileMode
}

// Matches applies the constraint to the owner bits of mode
func (pc PermissionConstraint) Matches(mode fs.FileMode) bool {
	owner := mode.Perm() & 0700
	switch pc.State {
	case NotInclude:
		return owner&pc.Bits == 0
	case ToInclude:
		return owner&pc.Bits == pc.Bits
	default:
		return owner == pc.Bits
	}
}

// Criteria is an immutable match configuration. Nil tables and zero values
// mean the category is not configured. Tables and strings are expected to be
// lower cased already when IgnoreCase is set; Builder.Build takes care of it.
type Criteria struct {
	IgnoreCase bool
	Kinds      Attributes
	// FullPathScope applies path contains/excludes to the whole path instead
	// of the directory part
	FullPathScope bool

	NameEquals string
	NameBegins string
	NameEnds   string

	NameContains      *patterns.Table
	NameExcludes      *patterns.Table
	NameExcludesBegin *patterns.Table
	NameExcludesEnd   *patterns.Table
	PathContains      *patterns.Table
	PathExcludes      *patterns.Table

	NameRegex *regexp.Regexp
	PathRegex *regexp.Regexp
	Glob      string

	NewerThan  *time.Time
	OlderThan  *time.Time
	TimeWindow *TimeConstraint

	Size       *RangeConstraint
	NameLength *RangeConstraint
	Permission *PermissionConstraint

	Now time.Time
}

// HasTime reports whether the time category is configured
func (c *Criteria) HasTime() bool {
	return c.NewerThan != nil || c.OlderThan != nil || c.TimeWindow != nil
}

// HasNameCriteria reports whether any name or path predicate is configured
func (c *Criteria) HasNameCriteria() bool {
	return c.NameEquals != "" || c.NameBegins != "" || c.NameEnds != "" ||
		c.NameContains.Len() > 0 || c.NameExcludes.Len() > 0 ||
		c.NameExcludesBegin.Len() > 0 || c.NameExcludesEnd.Len() > 0 ||
		c.PathContains.Len() > 0 || c.PathExcludes.Len() > 0 ||
		c.NameRegex != nil || c.PathRegex != nil || c.Glob != "" ||
		c.NameLength != nil
}

// Configured returns the number of configured categories
func (c *Criteria) Configured() int {
	n := 0
	for _, t := range []*patterns.Table{c.NameExcludes, c.NameExcludesBegin, c.NameExcludesEnd, c.PathExcludes} {
		if t.Len() > 0 {
			n++
		}
	}
	n += c.PathContains.Len() + c.NameContains.Len()
	for _, s := range []string{c.NameEquals, c.NameBegins, c.NameEnds, c.Glob} {
		if s != "" {
			n++
		}
	}
	if c.NameRegex != nil {
		n++
	}
	if c.PathRegex != nil {
		n++
	}
	if c.NameLength != nil {
		n++
	}
	if c.HasTime() {
		n++
	}
	if c.Size != nil {
		n++
	}
	if c.Permission != nil {
		n++
	}
	return n
}

// directoryPart strips the final path component. A path without a separator
// is returned unchanged.
func directoryPart(path string) string {
	if i := strings.LastIndexAny(path, separators); i >= 0 {
		return path[:i]
	}
	return path
}

func (rc RangeConstraint) String() string {
	if rc.Mode == InRange {
		return fmt.Sprintf("%s %d..%d", rc.Mode, rc.Lower, rc.Upper)
	}
	return fmt.Sprintf("%s %d", rc.Mode, rc.Value)
}

func (pc PermissionConstraint) String() string {
	state := [...]string{"not-include", "include", "match"}[pc.State]
	return fmt.Sprintf("%s %s", state, pc.Bits.String()[1:4])
}
