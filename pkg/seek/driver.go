package seek

import (
	"fmt"
	"io"
	"strings"

	"github.com/arthur-debert/clseek/pkg/errors"
	"github.com/arthur-debert/clseek/pkg/logging"
	"github.com/arthur-debert/clseek/pkg/style"
	"github.com/arthur-debert/clseek/pkg/types"
	"github.com/arthur-debert/clseek/pkg/walker"
	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog"
)

// State accumulates over every root of one run
type State struct {
	Matches int
	Stats   walker.Stats
	// Stopped is set when the limit ended the run early
	Stopped bool
}

// Driver runs the finder over one or more roots
type Driver struct {
	cfg    *Config
	out    io.Writer
	walker *walker.Walker
	runner Runner
	logger zerolog.Logger

	state        State
	execDisabled bool
}

// NewDriver creates a driver writing matches to out. Commands run through
// sh unless WithRunner replaces the runner.
func NewDriver(fsys types.FS, cfg *Config, out io.Writer) *Driver {
	return &Driver{
		cfg:    cfg,
		out:    out,
		walker: walker.New(fsys, cfg.Walk),
		runner: NewShellRunner("sh"),
		logger: logging.GetLogger("seek.driver"),
	}
}

// WithRunner replaces the command runner used by --exec
func (d *Driver) WithRunner(r Runner) *Driver {
	d.runner = r
	return d
}

// State returns the accumulated totals
func (d *Driver) State() State {
	s := d.state
	s.Stats = d.walker.Stats()
	return s
}

// Run traverses every configured root and stops early when the limit is hit.
// A root that cannot be read is skipped; the remaining roots are still searched.
func (d *Driver) Run() (State, error) {
	for _, root := range d.cfg.Roots {
		if _, err := d.Traverse(root); err != nil {
			if errors.IsErrorCode(err, errors.ErrDirectoryUnreadable) {
				d.logger.Warn().Err(err).Str("root", root).Msg("Skipping unreadable root")
				continue
			}
			return d.State(), err
		}
		if d.state.Stopped {
			break
		}
	}
	return d.State(), nil
}

// Traverse walks one root and returns the matches found below it
func (d *Driver) Traverse(root string) (int, error) {
	done := logging.LogOperationStart(d.logger, "seek "+root)
	defer done()

	before := d.state.Matches
	_, err := d.walker.Walk(root, &seekVisitor{driver: d})
	if d.walker.Stopped() {
		d.state.Stopped = true
	}
	found := d.state.Matches - before
	d.logger.Debug().Str("root", root).Int("matches", found).Msg("Root traversed")
	return found, err
}

// seekVisitor evaluates each entry against the criteria and reports matches
type seekVisitor struct {
	driver *Driver
}

func (v *seekVisitor) VisitEntry(e *types.Entry) error {
	d := v.driver
	if !d.cfg.Criteria.Evaluate(e) {
		return nil
	}
	if err := d.report(e); err != nil {
		return err
	}
	d.state.Matches++
	if d.cfg.Limit > 0 && d.state.Matches >= d.cfg.Limit {
		d.logger.Info().Int("limit", d.cfg.Limit).Msg("Match limit reached")
		return walker.SkipAll
	}
	return nil
}

func (d *Driver) report(e *types.Entry) error {
	path := strings.TrimPrefix(e.Path, "./")

	if d.cfg.Command != "" && !d.execDisabled {
		return d.execute(path)
	}
	if d.cfg.Quiet {
		return nil
	}

	var line string
	switch {
	case d.cfg.JunkPaths:
		line = e.Name
	case d.cfg.Details:
		line = DetailsLine(e, path)
	default:
		line = path
	}
	_, err := io.WriteString(d.out, line+d.cfg.Terminator)
	return err
}

func (d *Driver) execute(path string) error {
	command, substituted := ComposeCommand(d.cfg.Command, path)
	if !d.cfg.Quiet {
		if _, err := fmt.Fprintln(d.out, style.Paint("command", command)); err != nil {
			return err
		}
	}
	logging.LogCommand(command, nil)

	if err := d.runner.Run(command); err != nil {
		d.logger.Warn().Err(err).Str("command", command).Msg("Command failed")
		if !substituted {
			// A plain command that fails once is not retried on later matches
			d.execDisabled = true
			_, werr := fmt.Fprintln(d.out, style.Paint("warning", "?? "+command))
			return werr
		}
	}
	return nil
}

// DetailsLine formats "[time].[size].[type] path"
func DetailsLine(e *types.Entry, path string) string {
	return fmt.Sprintf("[%s].[%15s].[%s] %s",
		e.ModTime.Local().Format("2006-01-02 15:04:05"),
		humanize.Comma(e.Size),
		e.TypeTag(),
		path)
}
