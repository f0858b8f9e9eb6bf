// Package probe implements the single-item existence and attribute tests of
// the iftest tool. Tests follow symlinks.
package probe

import (
	"fmt"
	"io/fs"

	"github.com/arthur-debert/clseek/pkg/errors"
	"github.com/arthur-debert/clseek/pkg/logging"
	"github.com/arthur-debert/clseek/pkg/types"
)

// Test selects what Run checks
type Test rune

const (
	Directory   Test = 'd'
	Exists      Test = 'e'
	RegularFile Test = 'f'
	Readable    Test = 'r'
	Writable    Test = 'w'
	Executable  Test = 'x'
	NonEmpty    Test = 's'
	Empty       Test = 'z'
	CharDevice  Test = 'c'
	NamedPipe   Test = 'p'
)

// DefaultTest is used when no test is given
const DefaultTest = RegularFile

// ExitFailed is the exit status for a missing item or a failed test
const ExitFailed = 7

var checks = map[Test]struct {
	check   func(fs.FileInfo) bool
	pass    string
	failure string
}{
	Directory:   {func(i fs.FileInfo) bool { return i.IsDir() }, "Directory", "Directory doesn't exist"},
	Exists:      {func(fs.FileInfo) bool { return true }, "", ""},
	RegularFile: {func(i fs.FileInfo) bool { return i.Mode().IsRegular() }, "File", "File doesn't exist"},
	Readable:    {func(i fs.FileInfo) bool { return i.Mode().Perm()&0400 != 0 }, "File", "File is not readable"},
	Writable:    {func(i fs.FileInfo) bool { return i.Mode().Perm()&0200 != 0 }, "File", "File is not writable"},
	Executable:  {func(i fs.FileInfo) bool { return i.Mode().Perm()&0100 != 0 }, "File", "File is not an executable"},
	NonEmpty:    {func(i fs.FileInfo) bool { return i.Mode().IsRegular() && i.Size() != 0 }, "Non-zero size File", "File is not non-zero size"},
	Empty:       {func(i fs.FileInfo) bool { return i.Mode().IsRegular() && i.Size() == 0 }, "Zero size File", "File is not zero size"},
	CharDevice:  {func(i fs.FileInfo) bool { return i.Mode()&fs.ModeCharDevice != 0 }, "File", "File is not a character special"},
	NamedPipe:   {func(i fs.FileInfo) bool { return i.Mode()&fs.ModeNamedPipe != 0 }, "File", "File is not a named pipe"},
}

// ParseTest accepts a test letter with or without a leading dash. An empty
// string selects DefaultTest.
func ParseTest(s string) (Test, error) {
	if s == "" {
		return DefaultTest, nil
	}
	if s[0] == '-' {
		s = s[1:]
	}
	if len(s) != 1 {
		return 0, errors.Newf(errors.ErrInvalidInput, "invalid test %q", s)
	}
	t := Test(s[0])
	if _, ok := checks[t]; !ok {
		return 0, errors.Newf(errors.ErrInvalidInput, "unknown test -%c", s[0])
	}
	return t, nil
}

// Outcome is the result of one test
type Outcome struct {
	Path    string
	Test    Test
	Passed  bool
	Message string
}

// ExitCode maps the outcome to the tool exit status
func (o Outcome) ExitCode() int {
	if o.Passed {
		return 0
	}
	return ExitFailed
}

// Run applies test to path
func Run(fsys types.FS, test Test, path string) (Outcome, error) {
	c, ok := checks[test]
	if !ok {
		return Outcome{}, errors.Newf(errors.ErrInvalidInput, "unknown test -%c", rune(test))
	}
	out := Outcome{Path: path, Test: test}

	info, err := fsys.Stat(path)
	if err != nil {
		logger := logging.GetLogger("probe")
		logger.Debug().Err(err).Str("path", path).Msg("Stat failed")
		out.Message = fmt.Sprintf("%s does not exist", path)
		return out, nil
	}

	out.Passed = c.check(info)
	switch {
	case !out.Passed:
		out.Message = fmt.Sprintf("%s: %s", path, c.failure)
	case c.pass == "":
		out.Message = path
	default:
		out.Message = fmt.Sprintf("%s: %s", path, c.pass)
	}
	return out, nil
}
