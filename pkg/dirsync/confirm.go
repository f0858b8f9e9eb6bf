package dirsync

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Confirmer decides whether a destination entry may be deleted
type Confirmer interface {
	Confirm(path string) bool
}

// PromptConfirmer asks on Out and reads the answer from In. Only an answer
// starting with y or Y confirms.
type PromptConfirmer struct {
	in  *bufio.Reader
	out io.Writer
}

// NewPromptConfirmer creates a confirmer reading answers from in
func NewPromptConfirmer(in io.Reader, out io.Writer) *PromptConfirmer {
	return &PromptConfirmer{in: bufio.NewReader(in), out: out}
}

func (p *PromptConfirmer) Confirm(path string) bool {
	fmt.Fprintf(p.out, "Do you really want to delete %s? ", path)
	answer, err := p.in.ReadString('\n')
	if err != nil && answer == "" {
		return false
	}
	answer = strings.TrimSpace(answer)
	return strings.HasPrefix(answer, "y") || strings.HasPrefix(answer, "Y")
}

// alwaysConfirm is used with --force
type alwaysConfirm struct{}

func (alwaysConfirm) Confirm(string) bool { return true }
