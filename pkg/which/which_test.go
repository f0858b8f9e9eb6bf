// pkg/which/which_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: afero MemMapFs
// PURPOSE: Test program lookup across path elements and extension handling

package which_test

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/arthur-debert/clseek/pkg/errors"
	"github.com/arthur-debert/clseek/pkg/testutil"
	"github.com/arthur-debert/clseek/pkg/types"
	"github.com/arthur-debert/clseek/pkg/which"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pathList(dirs ...string) string {
	return strings.Join(dirs, string(os.PathListSeparator))
}

func binTree(t *testing.T) types.FS {
	fs := testutil.NewMemFS()
	testutil.CreateFileTree(t, fs, "/bin1", testutil.FileTree{
		"sort":      "",
		"Sort.exe":  "",
		"sorted.sh": "",
		"notes.txt": "",
	})
	testutil.CreateFileTree(t, fs, "/bin2", testutil.FileTree{
		"sort.bat": "",
		".sortrc":  "",
		"sortlib":  testutil.FileTree{},
		"grep.exe": "",
	})
	return fs
}

func defaults() which.Options {
	return which.Options{
		IgnoreExtension: true,
		Extensions:      which.KnownExtensions(which.BuiltinExtensions, ""),
	}
}

func search(t *testing.T, fs types.FS, opts which.Options, target string, dirs ...string) (int, string) {
	t.Helper()
	var out bytes.Buffer
	n, err := which.New(fs, opts, &out).Search(pathList(dirs...), target)
	require.NoError(t, err)
	return n, out.String()
}

func TestFirstDirectoryWins(t *testing.T) {
	fs := binTree(t)
	n, out := search(t, fs, defaults(), "sort", "/bin1", "/bin2")

	assert.Equal(t, 2, n)
	assert.Equal(t, "/bin1/Sort.exe\n~ /bin1/sort\n", out)
}

func TestListAll(t *testing.T) {
	fs := binTree(t)
	opts := defaults()
	opts.All = true
	n, out := search(t, fs, opts, "SORT", "/bin1", "/bin2")

	assert.Equal(t, 3, n)
	assert.Equal(t, "/bin1/Sort.exe\n/bin1/sort\n/bin2/sort.bat\n", out)
}

func TestListAllPartial(t *testing.T) {
	fs := binTree(t)
	opts := defaults()
	opts.AllPartial = true
	n, out := search(t, fs, opts, "sort", "/bin1", "/bin2")

	assert.Equal(t, 4, n, "directories and dot files are not programs")
	assert.Contains(t, out, "/bin1/sorted.sh\n")
	assert.NotContains(t, out, "sortlib")
	assert.NotContains(t, out, ".sortrc")
}

func TestKnownExtensionNeedsExactName(t *testing.T) {
	fs := binTree(t)
	n, out := search(t, fs, defaults(), "sort.bat", "/bin1", "/bin2")
	assert.Equal(t, 1, n)
	assert.Equal(t, "/bin2/sort.bat\n", out)
}

func TestWithoutIgnoreExtension(t *testing.T) {
	fs := binTree(t)
	opts := defaults()
	opts.IgnoreExtension = false
	opts.All = true
	n, out := search(t, fs, opts, "sort", "/bin1", "/bin2")

	assert.Equal(t, 2, n, "only candidates with a known extension count")
	assert.Equal(t, "/bin1/Sort.exe\n/bin2/sort.bat\n", out)
}

func TestListPathsAndMissingElements(t *testing.T) {
	fs := binTree(t)
	opts := defaults()
	opts.ListPaths = true
	n, out := search(t, fs, opts, "grep", "/nowhere", "/bin1", "/bin2")

	assert.Equal(t, 1, n)
	assert.Equal(t, "Path= /nowhere\nPath= /bin1\nPath= /bin2\n/bin2/grep.exe\n", out)
}

func TestListPathsColored(t *testing.T) {
	old := lipgloss.ColorProfile()
	lipgloss.SetColorProfile(termenv.ANSI256)
	t.Cleanup(func() { lipgloss.SetColorProfile(old) })

	fs := binTree(t)
	opts := defaults()
	opts.ListPaths = true
	_, out := search(t, fs, opts, "grep", "/bin2")

	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "\x1b[")
	assert.Contains(t, lines[0], "/bin2")
	assert.Equal(t, "/bin2/grep.exe", lines[1], "found programs are printed plain")
}

func TestNoMatch(t *testing.T) {
	fs := binTree(t)
	n, out := search(t, fs, defaults(), "awk", "/bin1", "/bin2")
	assert.Zero(t, n)
	assert.Empty(t, out)

	_, err := which.New(fs, defaults(), &bytes.Buffer{}).Search("/bin1", "")
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}

func TestKnownExtensions(t *testing.T) {
	exts := which.KnownExtensions([]string{".exe", "sh"}, ".COM;.EXE;;.Cmd")
	assert.Equal(t, []string{".exe", ".sh", ".com", ".cmd"}, exts)
}

func TestMatches(t *testing.T) {
	f := which.New(testutil.NewMemFS(), defaults(), &bytes.Buffer{})
	assert.True(t, f.Matches("Python.EXE", "python"))
	assert.True(t, f.Matches("python", "python"))
	assert.False(t, f.Matches(".python", "python"))
	assert.False(t, f.Matches("python3", "python"))
	assert.True(t, f.Matches("python.exe", "python.exe"))
	assert.False(t, f.Matches("python", "python.exe"))
}
