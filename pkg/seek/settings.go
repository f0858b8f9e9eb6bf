package seek

import (
	"path/filepath"
	"strconv"

	"github.com/arthur-debert/clseek/pkg/criteria"
	"github.com/arthur-debert/clseek/pkg/errors"
	"github.com/arthur-debert/clseek/pkg/types"
	"github.com/arthur-debert/clseek/pkg/walker"
	"github.com/pelletier/go-toml/v2"
)

// Option codes handled here rather than by the criteria builder
const (
	CodeRecursive    = 'r'
	CodeMaxDepth     = 'L'
	CodeLimit        = 'l'
	CodeTarget       = 'D'
	CodeJunkPaths    = 'j'
	CodeNull         = '0'
	CodeQuiet        = 'q'
	CodeExec         = 'E'
	CodeShowSettings = 'S'
)

// Config is the immutable result of option parsing
type Config struct {
	Criteria     *criteria.Criteria
	Walk         walker.Options
	Limit        int
	JunkPaths    bool
	Details      bool
	Terminator   string
	Command      string
	Quiet        bool
	ShowSettings bool
	Roots        []string

	// NamedLike is set when a lone file argument became the name to look
	// for; such runs exit 0 whatever the match count.
	NamedLike bool
}

// Defaults are the starting values taken from the configuration file
type Defaults struct {
	IgnoreCase bool
	Recursive  bool
}

// Settings consumes the option stream in order
type Settings struct {
	fs       types.FS
	criteria *criteria.Builder

	recursive    bool
	maxDepth     int
	limit        int
	targets      []string
	junkPaths    bool
	null         bool
	quiet        bool
	command      string
	showSettings bool
}

// NewSettings starts from the configured defaults
func NewSettings(fsys types.FS, defaults Defaults) *Settings {
	b := criteria.NewBuilder(fsys)
	b.SetIgnoreCase(defaults.IgnoreCase)
	return &Settings{
		fs:        fsys,
		criteria:  b,
		recursive: defaults.Recursive,
	}
}

// Criteria exposes the underlying builder, mostly for tests and clocks
func (s *Settings) Criteria() *criteria.Builder {
	return s.criteria
}

// ApplyAll applies options in order and stops at the first error
func (s *Settings) ApplyAll(opts []criteria.Option) error {
	for _, opt := range opts {
		if err := s.Apply(opt); err != nil {
			return err
		}
	}
	return nil
}

// Apply routes one option. Unknown codes are an input error.
func (s *Settings) Apply(opt criteria.Option) error {
	handled, err := s.criteria.Apply(opt)
	if handled || err != nil {
		return err
	}

	switch opt.Code {
	case CodeRecursive:
		s.recursive, err = flagValue(opt)
	case CodeMaxDepth:
		s.maxDepth, err = count(opt)
		if err == nil && s.maxDepth > 1 {
			s.recursive = true
		}
	case CodeLimit:
		s.limit, err = count(opt)
	case CodeTarget:
		s.targets = append(s.targets, opt.Value)
	case CodeJunkPaths:
		s.junkPaths, err = flagValue(opt)
	case CodeNull:
		s.null, err = flagValue(opt)
	case CodeQuiet:
		s.quiet, err = flagValue(opt)
	case CodeExec:
		s.command = opt.Value
	case CodeShowSettings:
		s.showSettings, err = flagValue(opt)
	default:
		return errors.Newf(errors.ErrInvalidInput, "unknown option -%c", opt.Code)
	}
	return err
}

func flagValue(opt criteria.Option) (bool, error) {
	if opt.Value == "" {
		return true, nil
	}
	v, err := strconv.ParseBool(opt.Value)
	if err != nil {
		return false, errors.Wrapf(err, errors.ErrInvalidInput, "option -%c expects a boolean", opt.Code)
	}
	return v, nil
}

func count(opt criteria.Option) (int, error) {
	n, err := strconv.Atoi(opt.Value)
	if err != nil || n < 0 {
		return 0, errors.Newf(errors.ErrInvalidInput, "option -%c expects a non-negative number, got %q", opt.Code, opt.Value)
	}
	return n, nil
}

// Build finalizes the configuration. args are the positional arguments;
// targets given with -D take precedence over them.
func (s *Settings) Build(args []string) (*Config, error) {
	c, err := s.criteria.Build()
	if err != nil {
		return nil, err
	}

	roots := s.targets
	if len(roots) == 0 {
		roots = args
	}
	namedLike := false

	// A lone existing file with no name criteria means "find files named like this one"
	if len(s.targets) == 0 && len(args) == 1 && !c.HasNameCriteria() {
		if info, statErr := s.fs.Stat(args[0]); statErr == nil && info.Mode().IsRegular() {
			s.criteria.SetNameEquals(filepath.Base(args[0]))
			if c, err = s.criteria.Build(); err != nil {
				return nil, err
			}
			roots = nil
			namedLike = true
		}
	}
	if len(roots) == 0 {
		roots = []string{"."}
	}

	terminator := "\n"
	if s.null {
		terminator = "\x00"
	}

	return &Config{
		Criteria:     c,
		Walk:         walker.Options{Recursive: s.recursive, MaxDepth: s.maxDepth},
		Limit:        s.limit,
		JunkPaths:    s.junkPaths,
		Details:      s.criteria.Details(),
		Terminator:   terminator,
		Command:      s.command,
		Quiet:        s.quiet,
		ShowSettings: s.showSettings,
		Roots:        roots,
		NamedLike:    namedLike,
	}, nil
}

type settingsDoc struct {
	Roots     []string         `toml:"roots"`
	Recursive bool             `toml:"recursive"`
	MaxDepth  int              `toml:"max_depth"`
	Limit     int              `toml:"limit"`
	JunkPaths bool             `toml:"junk_paths"`
	Details   bool             `toml:"details"`
	Null      bool             `toml:"null"`
	Quiet     bool             `toml:"quiet"`
	Command   string           `toml:"command,omitempty"`
	Criteria  criteria.Summary `toml:"criteria"`
}

// SettingsTOML renders the effective settings for --show-settings
func (c *Config) SettingsTOML() ([]byte, error) {
	return toml.Marshal(settingsDoc{
		Roots:     c.Roots,
		Recursive: c.Walk.Recursive,
		MaxDepth:  c.Walk.MaxDepth,
		Limit:     c.Limit,
		JunkPaths: c.JunkPaths,
		Details:   c.Details,
		Null:      c.Terminator == "\x00",
		Quiet:     c.Quiet,
		Command:   c.Command,
		Criteria:  c.Criteria.Summarize(),
	})
}
