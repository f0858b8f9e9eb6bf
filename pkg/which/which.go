// Package which looks for a program name in the directories of a PATH-like
// list. Names compare case-insensitively; extensions are handled the way a
// Windows shell resolves commands, so "sort" finds "sort.exe".
package which

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/clseek/pkg/errors"
	"github.com/arthur-debert/clseek/pkg/logging"
	"github.com/arthur-debert/clseek/pkg/style"
	"github.com/arthur-debert/clseek/pkg/types"
	"github.com/arthur-debert/clseek/pkg/walker"
	"github.com/rs/zerolog"
)

// BuiltinExtensions are known even without configuration
var BuiltinExtensions = []string{".exe", ".com", ".bat", ".sh", ".zsh", ".pl"}

// Options controls a search
type Options struct {
	// IgnoreExtension strips the candidate extension before comparing
	IgnoreExtension bool
	// All lists every exact match in every directory
	All bool
	// AllPartial also lists candidates that merely begin with the target
	AllPartial bool
	// ListPaths prints each searched directory
	ListPaths  bool
	Extensions []string
}

// KnownExtensions merges the configured extensions with a PATHEXT value,
// dropping duplicates
func KnownExtensions(configured []string, pathext string) []string {
	seen := make(map[string]bool)
	var out []string
	add := func(ext string) {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" || seen[ext] {
			return
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		seen[ext] = true
		out = append(out, ext)
	}
	for _, ext := range configured {
		add(ext)
	}
	for _, ext := range strings.Split(pathext, ";") {
		add(ext)
	}
	return out
}

// Finder runs searches and prints matches to out
type Finder struct {
	fs     types.FS
	opts   Options
	out    io.Writer
	logger zerolog.Logger
	known  map[string]bool
	found  int
}

// New creates a finder
func New(fsys types.FS, opts Options, out io.Writer) *Finder {
	f := &Finder{
		fs:     fsys,
		opts:   opts,
		out:    out,
		logger: logging.GetLogger("which"),
		known:  make(map[string]bool),
	}
	for _, ext := range opts.Extensions {
		f.known[strings.ToLower(ext)] = true
	}
	return f
}

func (f *Finder) listAll() bool {
	return f.opts.All || f.opts.AllPartial
}

// Search walks each element of pathList in order and returns the number of
// matches. Without All it stops after the first directory holding a match.
func (f *Finder) Search(pathList, target string) (int, error) {
	if target == "" {
		return 0, errors.New(errors.ErrInvalidInput, "no program name given")
	}
	f.found = 0
	q := f.query(target)

	for _, dir := range filepath.SplitList(pathList) {
		if dir == "" {
			continue
		}
		if f.opts.ListPaths {
			fmt.Fprintf(f.out, "%s %s\n", style.Paint("muted", "Path="), style.Paint("path", dir))
		}
		v := &matchVisitor{finder: f, query: q}
		if _, err := walker.New(f.fs, walker.Options{}).Walk(dir, v); err != nil {
			f.logger.Debug().Err(err).Str("dir", dir).Msg("Skipping unreadable path element")
			continue
		}
		f.found += v.matches
		if f.found > 0 && !f.listAll() {
			break
		}
	}
	f.logger.Debug().Str("target", target).Int("found", f.found).Msg("Search complete")
	return f.found, nil
}

type query struct {
	target   string
	hasKnown bool
	partial  bool
}

func (f *Finder) query(target string) query {
	return query{
		target:   strings.ToLower(target),
		hasKnown: f.isKnown(filepath.Ext(target)),
		partial:  f.opts.AllPartial,
	}
}

func (f *Finder) isKnown(ext string) bool {
	return ext != "" && f.known[strings.ToLower(ext)]
}

// Matches reports whether a directory entry name resolves to the target
func (f *Finder) Matches(name, target string) bool {
	return f.matches(name, f.query(target))
}

func (f *Finder) matches(name string, q query) bool {
	name = strings.ToLower(name)
	if q.hasKnown {
		return name == q.target
	}

	ext := ""
	if !strings.HasPrefix(name, ".") {
		ext = filepath.Ext(name)
	}
	switch {
	case f.opts.IgnoreExtension:
	case ext != "" && f.isKnown(ext):
	default:
		return false
	}
	base := strings.TrimSuffix(name, ext)
	if q.partial {
		return strings.HasPrefix(base, q.target)
	}
	return base == q.target
}

type matchVisitor struct {
	finder  *Finder
	query   query
	matches int
}

func (v *matchVisitor) VisitEntry(e *types.Entry) error {
	if e.IsDir() || !v.finder.matches(e.Name, v.query) {
		return nil
	}
	f := v.finder
	if v.matches > 0 && !f.listAll() {
		fmt.Fprintf(f.out, "%s %s\n", style.Paint("muted", "~"), e.Path)
	} else {
		fmt.Fprintln(f.out, e.Path)
	}
	v.matches++
	return nil
}
