// Package dirinfo walks a directory and reports how many directories, files
// and other entries it holds, the bytes in its files, and the entries that
// satisfy a match criteria.
package dirinfo

import (
	"time"

	"github.com/arthur-debert/clseek/pkg/criteria"
	"github.com/arthur-debert/clseek/pkg/logging"
	"github.com/arthur-debert/clseek/pkg/types"
	"github.com/arthur-debert/clseek/pkg/walker"
)

// Options controls Collect
type Options struct {
	Walk walker.Options
	// Criteria selects the listed entries. Nil lists nothing.
	Criteria *criteria.Criteria
}

// Match is one listed entry
type Match struct {
	Path    string    `json:"path" yaml:"path" toml:"path"`
	Type    string    `json:"type" yaml:"type" toml:"type"`
	Size    int64     `json:"size" yaml:"size" toml:"size"`
	ModTime time.Time `json:"mod_time" yaml:"mod_time" toml:"mod_time"`
}

// Report is the outcome of one walk
type Report struct {
	Root        string  `json:"root" yaml:"root" toml:"root"`
	Recursive   bool    `json:"recursive" yaml:"recursive" toml:"recursive"`
	Directories int     `json:"directories" yaml:"directories" toml:"directories"`
	Files       int     `json:"files" yaml:"files" toml:"files"`
	Others      int     `json:"others" yaml:"others" toml:"others"`
	Bytes       int64   `json:"bytes" yaml:"bytes" toml:"bytes"`
	Matches     []Match `json:"matches" yaml:"matches" toml:"matches"`
}

type collector struct {
	report   *Report
	criteria *criteria.Criteria
}

func (c *collector) VisitEntry(e *types.Entry) error {
	if e.Kind == types.KindFile {
		c.report.Bytes += e.Size
	}
	if c.criteria != nil && c.criteria.Evaluate(e) {
		c.report.Matches = append(c.report.Matches, Match{
			Path:    e.Path,
			Type:    e.TypeTag(),
			Size:    e.Size,
			ModTime: e.ModTime,
		})
	}
	return nil
}

// Collect walks root and builds its report. Counts come from the walker, so
// they cover every visited entry whether or not it matched.
func Collect(fsys types.FS, root string, opts Options) (*Report, error) {
	logger := logging.GetLogger("dirinfo")
	done := logging.LogOperationStart(logger, "dirinfo "+root)
	defer done()

	r := &Report{Root: root, Recursive: opts.Walk.Recursive, Matches: []Match{}}
	w := walker.New(fsys, opts.Walk)
	if _, err := w.Walk(root, &collector{report: r, criteria: opts.Criteria}); err != nil {
		return nil, err
	}
	stats := w.Stats()
	r.Directories, r.Files, r.Others = stats.Directories, stats.Files, stats.Others
	logger.Debug().
		Int("directories", r.Directories).
		Int("files", r.Files).
		Int("matches", len(r.Matches)).
		Msg("Walk complete")
	return r, nil
}
