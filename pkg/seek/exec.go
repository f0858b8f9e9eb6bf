package seek

import (
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Runner executes one composed command line
type Runner interface {
	Run(command string) error
}

// ShellRunner runs commands through "<shell> -c"
type ShellRunner struct {
	Shell  string
	Stdout io.Writer
	Stderr io.Writer
}

// NewShellRunner creates a runner attached to the process stdout and stderr
func NewShellRunner(shell string) *ShellRunner {
	if shell == "" {
		shell = "sh"
	}
	return &ShellRunner{Shell: shell, Stdout: os.Stdout, Stderr: os.Stderr}
}

func (r *ShellRunner) Run(command string) error {
	cmd := exec.Command(r.Shell, "-c", command)
	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr
	return cmd.Run()
}

// ComposeCommand substitutes path into tmpl. "%:r" becomes the quoted path
// without its extension and "%" the quoted path. Without any "%" the quoted
// path is appended. The bool reports whether tmpl had a substitution.
func ComposeCommand(tmpl, path string) (string, bool) {
	if !strings.Contains(tmpl, "%") {
		return tmpl + " " + quote(path), false
	}
	root := strings.TrimSuffix(path, filepath.Ext(path))

	var b strings.Builder
	for s := tmpl; ; {
		i := strings.IndexByte(s, '%')
		if i < 0 {
			b.WriteString(s)
			break
		}
		b.WriteString(s[:i])
		s = s[i+1:]
		if strings.HasPrefix(s, ":r") {
			b.WriteString(quote(root))
			s = s[2:]
		} else {
			b.WriteString(quote(path))
		}
	}
	return b.String(), true
}

func quote(s string) string {
	return `"` + s + `"`
}
