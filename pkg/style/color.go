package style

import (
	"io"
	"os"

	"github.com/arthur-debert/clseek/pkg/errors"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
	"github.com/pterm/pterm"
)

// Color modes accepted by SetColorMode and the output.color setting
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// ProfileFor resolves a color mode to the termenv profile used for w. Auto
// honors NO_COLOR and disables color when w is not a terminal.
func ProfileFor(mode string, w io.Writer) (termenv.Profile, error) {
	switch mode {
	case ColorNever:
		return termenv.Ascii, nil
	case ColorAlways:
		return termenv.TrueColor, nil
	case ColorAuto, "":
	default:
		return termenv.Ascii, errors.Newf(errors.ErrInvalidInput, "unknown color mode %q", mode)
	}

	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return termenv.Ascii, nil
	}
	f, ok := w.(*os.File)
	if !ok || !isatty.IsTerminal(f.Fd()) && !isatty.IsCygwinTerminal(f.Fd()) {
		return termenv.Ascii, nil
	}
	return termenv.NewOutput(f).EnvColorProfile(), nil
}

// SetColorMode configures lipgloss and pterm for output written to w
func SetColorMode(mode string, w io.Writer) error {
	profile, err := ProfileFor(mode, w)
	if err != nil {
		return err
	}
	lipgloss.SetColorProfile(profile)
	if profile == termenv.Ascii {
		pterm.DisableStyling()
	} else {
		pterm.EnableStyling()
	}
	return nil
}

// Enabled reports whether styled output currently emits colors
func Enabled() bool {
	return lipgloss.ColorProfile() != termenv.Ascii
}
