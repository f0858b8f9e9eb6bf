package criteria

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/arthur-debert/clseek/pkg/errors"
	"github.com/arthur-debert/clseek/pkg/logging"
	"github.com/arthur-debert/clseek/pkg/patterns"
	"github.com/arthur-debert/clseek/pkg/types"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
)

// Option is one (code, value) pair from the command line layer. Boolean
// options carry "true" or "false".
type Option struct {
	Code  rune
	Value string
}

// Option codes understood by Builder.Apply
const (
	CodeNameEquals        = '='
	CodeNameBegins        = 'b'
	CodeNameEnds          = 'e'
	CodeNameContains      = 'c'
	CodeNameExcludes      = 'x'
	CodeNameExcludesBegin = 'y'
	CodeNameExcludesEnd   = 'z'
	CodePathContains      = 'C'
	CodePathExcludes      = 'X'
	CodeNameRegex         = 'm'
	CodePathRegex         = 'M'
	CodeGlob              = 'g'
	CodeNewer             = 'n'
	CodeOlder             = 'o'
	CodeTime              = 't'
	CodeSize              = 's'
	CodeNameLength        = 'w'
	CodePermission        = 'p'
	CodeAttributes        = 'a'
	CodeIgnoreCase        = 'i'
	CodeCaseSensitive     = 'I'
)

// Builder accumulates options and produces an immutable Criteria
type Builder struct {
	fs     types.FS
	now    func() time.Time
	logger zerolog.Logger

	ignoreCase bool
	fullPath   bool
	kinds      Attributes
	details    bool

	nameEquals string
	nameBegins string
	nameEnds   string

	nameContains      *patterns.Table
	nameExcludes      *patterns.Table
	nameExcludesBegin *patterns.Table
	nameExcludesEnd   *patterns.Table
	pathContains      *patterns.Table
	pathExcludes      *patterns.Table

	nameRegex *regexp.Regexp
	pathRegex *regexp.Regexp
	glob      string

	newer  *time.Time
	older  *time.Time
	window *TimeConstraint

	size       *RangeConstraint
	nameLength *RangeConstraint
	permission *PermissionConstraint
}

// NewBuilder creates a builder. fsys is used to stat newer/older reference paths.
func NewBuilder(fsys types.FS) *Builder {
	return &Builder{
		fs:                fsys,
		now:               time.Now,
		logger:            logging.GetLogger("criteria.builder"),
		nameContains:      patterns.New(patterns.KeepLonger),
		nameExcludes:      patterns.New(patterns.KeepShorter),
		nameExcludesBegin: patterns.New(patterns.KeepShorter),
		nameExcludesEnd:   patterns.New(patterns.KeepShorterAnchoredAtEnd),
		pathContains:      patterns.New(patterns.KeepLonger),
		pathExcludes:      patterns.New(patterns.KeepShorter),
	}
}

// WithClock replaces the clock used for "now"
func (b *Builder) WithClock(now func() time.Time) *Builder {
	b.now = now
	return b
}

// SetIgnoreCase toggles case-insensitive name and path comparison
func (b *Builder) SetIgnoreCase(on bool) { b.ignoreCase = on }

// SetFullPathScope applies path contains/excludes to the whole path
func (b *Builder) SetFullPathScope(on bool) { b.fullPath = on }

// Details reports whether an uppercase attribute letter asked for details
func (b *Builder) Details() bool { return b.details }

// SetAttributes adds the kinds named by spec to the accepted set
func (b *Builder) SetAttributes(spec string) error {
	attrs, details, err := ParseAttributes(spec)
	if err != nil {
		return err
	}
	b.kinds |= attrs
	b.details = b.details || details
	return nil
}

// SetKinds replaces the accepted kinds
func (b *Builder) SetKinds(kinds Attributes) { b.kinds = kinds }

func (b *Builder) SetNameEquals(s string) { b.nameEquals = s }
func (b *Builder) SetNameBegins(s string) { b.nameBegins = s }
func (b *Builder) SetNameEnds(s string)   { b.nameEnds = s }

func (b *Builder) AddNameContains(p string) patterns.InsertResult {
	return b.insert(b.nameContains, "name-contains", p)
}

func (b *Builder) AddNameExcludes(p string) patterns.InsertResult {
	return b.insert(b.nameExcludes, "name-excludes", p)
}

func (b *Builder) AddNameExcludesBegin(p string) patterns.InsertResult {
	return b.insert(b.nameExcludesBegin, "name-excludes-begin", p)
}

func (b *Builder) AddNameExcludesEnd(p string) patterns.InsertResult {
	return b.insert(b.nameExcludesEnd, "name-excludes-end", p)
}

func (b *Builder) AddPathContains(p string) patterns.InsertResult {
	return b.insert(b.pathContains, "path-contains", p)
}

func (b *Builder) AddPathExcludes(p string) patterns.InsertResult {
	return b.insert(b.pathExcludes, "path-excludes", p)
}

func (b *Builder) insert(t *patterns.Table, category, p string) patterns.InsertResult {
	res := t.Insert(p)
	if res != patterns.Added {
		b.logger.Warn().
			Str("category", category).
			Str("pattern", p).
			Str("result", res.String()).
			Msg("redundant option ignored")
	}
	return res
}

// SetNameRegex compiles expr for a search anywhere in the entry name
func (b *Builder) SetNameRegex(expr string) error {
	re, err := compile(expr)
	if err != nil {
		return err
	}
	b.nameRegex = re
	return nil
}

// SetPathRegex compiles expr for a search anywhere in the entry path
func (b *Builder) SetPathRegex(expr string) error {
	re, err := compile(expr)
	if err != nil {
		return err
	}
	b.pathRegex = re
	return nil
}

func compile(expr string) (*regexp.Regexp, error) {
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrPatternCompile, "cannot compile regular expression %q", expr)
	}
	return re, nil
}

// SetGlob validates a doublestar glob
func (b *Builder) SetGlob(pattern string) error {
	if !doublestar.ValidatePattern(pattern) {
		return errors.Newf(errors.ErrPatternCompile, "invalid glob %q", pattern)
	}
	b.glob = pattern
	return nil
}

// SetNewerThan matches entries modified after the reference path
func (b *Builder) SetNewerThan(path string) error {
	t, err := b.referenceTime(path)
	if err != nil {
		return err
	}
	b.newer = &t
	return nil
}

// SetOlderThan matches entries modified before the reference path
func (b *Builder) SetOlderThan(path string) error {
	t, err := b.referenceTime(path)
	if err != nil {
		return err
	}
	b.older = &t
	return nil
}

func (b *Builder) referenceTime(path string) (time.Time, error) {
	info, err := b.fs.Stat(path)
	if err != nil {
		return time.Time{}, errors.Wrapf(err, errors.ErrNotFound, "cannot stat reference path %s", path)
	}
	return info.ModTime(), nil
}

// SetTimeWindow parses a time spec. It is ignored once any time clause exists.
func (b *Builder) SetTimeWindow(spec string) error {
	if b.newer != nil || b.older != nil || b.window != nil {
		b.redundant("time", spec)
		return nil
	}
	tc, err := ParseTimeSpec(spec)
	if err != nil {
		return err
	}
	b.window = &tc
	return nil
}

// SetSize parses a size spec; a second one is ignored
func (b *Builder) SetSize(spec string) error {
	if b.size != nil {
		b.redundant("size", spec)
		return nil
	}
	rc, err := ParseSizeSpec(spec)
	if err != nil {
		return err
	}
	b.size = &rc
	return nil
}

// SetNameLength parses a name length spec; a second one is ignored
func (b *Builder) SetNameLength(spec string) error {
	if b.nameLength != nil {
		b.redundant("name-length", spec)
		return nil
	}
	rc, err := ParseNameLengthSpec(spec)
	if err != nil {
		return err
	}
	b.nameLength = &rc
	return nil
}

// SetPermission parses a permission spec; a second one is ignored
func (b *Builder) SetPermission(spec string) error {
	if b.permission != nil {
		b.redundant("permission", spec)
		return nil
	}
	pc, err := ParsePermissionSpec(spec)
	if err != nil {
		return err
	}
	b.permission = &pc
	return nil
}

func (b *Builder) redundant(category, value string) {
	b.logger.Warn().Str("category", category).Str("value", value).Msg("redundant option ignored")
}

// Apply routes one option to its setter. It returns false for codes that
// are not match criteria so the caller can handle them.
func (b *Builder) Apply(opt Option) (bool, error) {
	switch opt.Code {
	case CodeNameEquals:
		b.SetNameEquals(opt.Value)
	case CodeNameBegins:
		b.SetNameBegins(opt.Value)
	case CodeNameEnds:
		b.SetNameEnds(opt.Value)
	case CodeNameContains:
		b.AddNameContains(opt.Value)
	case CodeNameExcludes:
		b.AddNameExcludes(opt.Value)
	case CodeNameExcludesBegin:
		b.AddNameExcludesBegin(opt.Value)
	case CodeNameExcludesEnd:
		b.AddNameExcludesEnd(opt.Value)
	case CodePathContains:
		b.AddPathContains(opt.Value)
	case CodePathExcludes:
		b.AddPathExcludes(opt.Value)
	case CodeNameRegex:
		return true, b.SetNameRegex(opt.Value)
	case CodePathRegex:
		return true, b.SetPathRegex(opt.Value)
	case CodeGlob:
		return true, b.SetGlob(opt.Value)
	case CodeNewer:
		return true, b.SetNewerThan(opt.Value)
	case CodeOlder:
		return true, b.SetOlderThan(opt.Value)
	case CodeTime:
		return true, b.SetTimeWindow(opt.Value)
	case CodeSize:
		return true, b.SetSize(opt.Value)
	case CodeNameLength:
		return true, b.SetNameLength(opt.Value)
	case CodePermission:
		return true, b.SetPermission(opt.Value)
	case CodeAttributes:
		return true, b.SetAttributes(opt.Value)
	case CodeIgnoreCase, CodeCaseSensitive:
		on, err := parseBool(opt)
		if err != nil {
			return true, err
		}
		b.SetIgnoreCase(on == (opt.Code == CodeIgnoreCase))
	default:
		return false, nil
	}
	return true, nil
}

func parseBool(opt Option) (bool, error) {
	if opt.Value == "" {
		return true, nil
	}
	on, err := strconv.ParseBool(opt.Value)
	if err != nil {
		return false, errors.Wrapf(err, errors.ErrInvalidInput, "option -%c expects a boolean", opt.Code)
	}
	return on, nil
}

// Build resolves include/exclude conflicts, folds case when asked and
// returns the immutable criteria. The builder can keep being used.
func (b *Builder) Build() (*Criteria, error) {
	c := &Criteria{
		IgnoreCase:        b.ignoreCase,
		Kinds:             b.kinds,
		FullPathScope:     b.fullPath,
		NameEquals:        b.nameEquals,
		NameBegins:        b.nameBegins,
		NameEnds:          b.nameEnds,
		NameContains:      clone(b.nameContains),
		NameExcludes:      clone(b.nameExcludes),
		NameExcludesBegin: clone(b.nameExcludesBegin),
		NameExcludesEnd:   clone(b.nameExcludesEnd),
		PathContains:      clone(b.pathContains),
		PathExcludes:      clone(b.pathExcludes),
		NameRegex:         b.nameRegex,
		PathRegex:         b.pathRegex,
		Glob:              b.glob,
		NewerThan:         b.newer,
		OlderThan:         b.older,
		TimeWindow:        b.window,
		Size:              b.size,
		NameLength:        b.nameLength,
		Permission:        b.permission,
		Now:               b.now(),
	}
	if c.Kinds == 0 {
		c.Kinds = AttrDefault
	}

	for _, pair := range [][2]*patterns.Table{
		{c.NameContains, c.NameExcludes},
		{c.PathContains, c.PathExcludes},
	} {
		for _, dropped := range patterns.ResolveConflicts(pair[0], pair[1]) {
			b.logger.Warn().Str("pattern", dropped).Msg("exclude pattern overlaps an include pattern, dropped")
		}
	}

	if c.IgnoreCase {
		c.NameEquals = strings.ToLower(c.NameEquals)
		c.NameBegins = strings.ToLower(c.NameBegins)
		c.NameEnds = strings.ToLower(c.NameEnds)
		c.NameContains = c.NameContains.Lower()
		c.NameExcludes = c.NameExcludes.Lower()
		c.NameExcludesBegin = c.NameExcludesBegin.Lower()
		c.NameExcludesEnd = c.NameExcludesEnd.Lower()
		c.PathContains = c.PathContains.Lower()
		c.PathExcludes = c.PathExcludes.Lower()
	}

	b.logger.Debug().
		Int("categories", c.Configured()).
		Bool("ignoreCase", c.IgnoreCase).
		Strs("kinds", c.Kinds.Names()).
		Msg("Criteria built")
	return c, nil
}

func clone(t *patterns.Table) *patterns.Table {
	out := patterns.New(t.Policy())
	for _, p := range t.Patterns() {
		out.Insert(p)
	}
	return out
}
