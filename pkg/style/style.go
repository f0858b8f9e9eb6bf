// Package style holds the lipgloss styles of clseek output. Styles have
// semantic names, are defined in an embedded YAML file and can be used as
// markup tags:
//
//	[heading]Sync summary[/heading]
//	[error]Error:[/error] cannot read directory
package style

import (
	_ "embed"
	"regexp"

	"github.com/arthur-debert/clseek/pkg/errors"
	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"
)

//go:embed styles.yaml
var defaultStyles []byte

// ColorDef represents an adaptive color definition in YAML
type ColorDef struct {
	Light string `yaml:"light"`
	Dark  string `yaml:"dark"`
}

// StyleDef represents a style definition in YAML
type StyleDef struct {
	Bold       bool   `yaml:"bold,omitempty"`
	Italic     bool   `yaml:"italic,omitempty"`
	Underline  bool   `yaml:"underline,omitempty"`
	Foreground string `yaml:"foreground,omitempty"`
	Background string `yaml:"background,omitempty"`
}

// Config represents the complete styles configuration
type Config struct {
	Colors map[string]ColorDef `yaml:"colors"`
	Styles map[string]StyleDef `yaml:"styles"`
}

type tagged struct {
	style   lipgloss.Style
	pattern *regexp.Regexp
}

var registry map[string]tagged

func init() {
	if err := Reset(); err != nil {
		panic(err)
	}
}

// Reset restores the embedded default styles
func Reset() error {
	return LoadStyles(defaultStyles)
}

// LoadStyles replaces the registry with the styles defined in data
func LoadStyles(data []byte) error {
	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return errors.Wrap(err, errors.ErrConfigParse, "failed to parse styles")
	}

	colors := make(map[string]lipgloss.AdaptiveColor, len(config.Colors))
	for name, def := range config.Colors {
		colors[name] = lipgloss.AdaptiveColor{Light: def.Light, Dark: def.Dark}
	}

	next := make(map[string]tagged, len(config.Styles))
	for name, def := range config.Styles {
		style, err := buildStyle(def, colors)
		if err != nil {
			return errors.Wrapf(err, errors.ErrConfigParse, "style %s", name)
		}
		next[name] = tagged{
			style:   style,
			pattern: regexp.MustCompile(`\[` + regexp.QuoteMeta(name) + `\]((?s).*?)\[/` + regexp.QuoteMeta(name) + `\]`),
		}
	}
	registry = next
	return nil
}

func buildStyle(def StyleDef, colors map[string]lipgloss.AdaptiveColor) (lipgloss.Style, error) {
	style := lipgloss.NewStyle().
		Bold(def.Bold).
		Italic(def.Italic).
		Underline(def.Underline)

	for _, c := range []struct {
		name  string
		apply func(lipgloss.Style, lipgloss.TerminalColor) lipgloss.Style
	}{
		{def.Foreground, lipgloss.Style.Foreground},
		{def.Background, lipgloss.Style.Background},
	} {
		if c.name == "" {
			continue
		}
		color, ok := colors[c.name]
		if !ok {
			return style, errors.Newf(errors.ErrConfigParse, "unknown color %q", c.name)
		}
		style = c.apply(style, color)
	}
	return style, nil
}

// Get returns the named style, or a plain style when it is not defined
func Get(name string) lipgloss.Style {
	if t, ok := registry[name]; ok {
		return t.style
	}
	return lipgloss.NewStyle()
}

// Apply renders text with the named style
func Apply(name, text string) string {
	return Get(name).Render(text)
}

// Paint renders text with the named style when colors are enabled and
// returns it untouched otherwise, so piped output stays byte for byte plain.
func Paint(name, text string) string {
	if !Enabled() {
		return text
	}
	return Apply(name, text)
}

// Markup replaces every [name]text[/name] span with text rendered in the
// named style. Nested spans of different styles are supported.
func Markup(text string) string {
	for changed := true; changed; {
		changed = false
		for _, t := range registry {
			out := t.pattern.ReplaceAllStringFunc(text, func(match string) string {
				return t.style.Render(t.pattern.FindStringSubmatch(match)[1])
			})
			if out != text {
				text, changed = out, true
			}
		}
	}
	return text
}
