package criteria

import (
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/arthur-debert/clseek/pkg/types"
	"github.com/bmatcuk/doublestar/v4"
)

const separators = "/" + string(os.PathSeparator)

// Result is the outcome of one evaluation
type Result struct {
	Configured int
	Satisfied  int
	// Vetoed is set when an exclude category hit
	Vetoed bool
	// Rejected is set when a category failed early
	Rejected bool
	Matched  bool
}

// Evaluate reports whether the entry satisfies every configured category
func (c *Criteria) Evaluate(e *types.Entry) bool {
	return c.Score(e).Matched
}

// Score evaluates the entry and returns the full accounting
func (c *Criteria) Score(e *types.Entry) Result {
	res := Result{Configured: c.Configured()}
	if !c.Kinds.Accepts(e.Kind) {
		res.Rejected = true
		return res
	}

	name := e.Name
	if c.IgnoreCase {
		name = strings.ToLower(name)
	}
	scope := e.Path
	if !c.FullPathScope {
		scope = directoryPart(e.Path)
	}

	// Exclusions first: each earns its unit by not hitting
	for _, hits := range []struct {
		configured bool
		count      func() int
	}{
		{c.NameExcludes.Len() > 0, func() int { return c.NameExcludes.MatchCount(name) }},
		{c.NameExcludesBegin.Len() > 0, func() int { return c.NameExcludesBegin.PrefixCount(name) }},
		{c.NameExcludesEnd.Len() > 0, func() int { return c.NameExcludesEnd.SuffixCount(name) }},
		{c.PathExcludes.Len() > 0, func() int { return c.PathExcludes.MatchCount(scope) }},
	} {
		if !hits.configured {
			continue
		}
		if hits.count() > 0 {
			res.Vetoed = true
			return res
		}
		res.Satisfied++
	}

	if n := c.PathContains.Len(); n > 0 {
		found := c.PathContains.MatchCount(scope)
		res.Satisfied += found
		if found != n {
			res.Rejected = true
			return res
		}
	}

	if c.NameEquals != "" {
		if name != c.NameEquals {
			res.Rejected = true
			return res
		}
		res.Satisfied++
	}

	if c.NameLength != nil {
		if !c.NameLength.Matches(int64(utf8.RuneCountInString(e.Name))) {
			res.Rejected = true
			return res
		}
		res.Satisfied++
	}

	res.Satisfied += c.NameContains.MatchCount(name)

	if c.NameBegins != "" && strings.HasPrefix(name, c.NameBegins) {
		res.Satisfied++
	}
	if c.NameEnds != "" && strings.HasSuffix(name, c.NameEnds) {
		res.Satisfied++
	}
	if c.NameRegex != nil && c.NameRegex.MatchString(e.Name) {
		res.Satisfied++
	}
	if c.PathRegex != nil && c.PathRegex.MatchString(e.Path) {
		res.Satisfied++
	}
	if c.Glob != "" && c.globMatches(e) {
		res.Satisfied++
	}

	if c.HasTime() && c.timeMatches(e) {
		res.Satisfied++
	}
	// Directories never satisfy a size constraint
	if c.Size != nil && e.Kind != types.KindDirectory && c.Size.Matches(e.Size) {
		res.Satisfied++
	}
	if c.Permission != nil && c.Permission.Matches(e.Mode) {
		res.Satisfied++
	}

	res.Matched = res.Satisfied == res.Configured
	return res
}

// globMatches checks a glob without a separator against the name and any
// other glob against the slash separated path
func (c *Criteria) globMatches(e *types.Entry) bool {
	target := e.Name
	if strings.Contains(c.Glob, "/") {
		target = filepath.ToSlash(e.Path)
	}
	ok, err := doublestar.Match(c.Glob, target)
	return err == nil && ok
}

// timeMatches passes when any configured time clause passes
func (c *Criteria) timeMatches(e *types.Entry) bool {
	if c.NewerThan != nil && e.ModTime.After(*c.NewerThan) {
		return true
	}
	if c.OlderThan != nil && e.ModTime.Before(*c.OlderThan) {
		return true
	}
	return c.TimeWindow != nil && c.TimeWindow.Matches(c.Now, e.ModTime)
}
