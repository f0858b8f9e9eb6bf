// pkg/seek/seek_test.go
// TEST TYPE: Integration Test
// DEPENDENCIES: afero MemMapFs
// PURPOSE: Test option handling, reporting, the match limit and --exec of the finder

package seek_test

import (
	"bytes"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/arthur-debert/clseek/pkg/criteria"
	"github.com/arthur-debert/clseek/pkg/errors"
	"github.com/arthur-debert/clseek/pkg/filesystem"
	"github.com/arthur-debert/clseek/pkg/seek"
	"github.com/arthur-debert/clseek/pkg/testutil"
	"github.com/arthur-debert/clseek/pkg/types"
	"github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func opt(code rune, value string) criteria.Option {
	return criteria.Option{Code: code, Value: value}
}

func build(t *testing.T, fs types.FS, args []string, opts ...criteria.Option) *seek.Config {
	t.Helper()
	s := seek.NewSettings(fs, seek.Defaults{})
	require.NoError(t, s.ApplyAll(opts))
	cfg, err := s.Build(args)
	require.NoError(t, err)
	return cfg
}

func run(t *testing.T, fs types.FS, cfg *seek.Config) (string, seek.State) {
	t.Helper()
	var out bytes.Buffer
	state, err := seek.NewDriver(fs, cfg, &out).Run()
	require.NoError(t, err)
	return out.String(), state
}

func TestEndToEndTxtWithContent(t *testing.T) {
	fs := testutil.NewMemFS()
	testutil.CreateFileTree(t, fs, "/data", testutil.FileTree{
		"a.txt": "0123456789",
		"b.log": "",
		"sub": testutil.FileTree{
			"c.txt": "content",
		},
	})

	cfg := build(t, fs, []string{"/data"}, opt('e', ".txt"), opt('s', "+0"), opt('r', "true"))
	out, state := run(t, fs, cfg)

	assert.Equal(t, "/data/a.txt\n/data/sub/c.txt\n", out)
	assert.Equal(t, 2, state.Matches)
	assert.False(t, state.Stopped)
	assert.Equal(t, 1, state.Stats.Directories)
	assert.Equal(t, 3, state.Stats.Files)
}

func TestLimitStopsTheRun(t *testing.T) {
	fs := testutil.NewMemFS()
	tree := testutil.FileTree{}
	for i := 0; i < 10; i++ {
		tree[fmt.Sprintf("file%d.dat", i)] = "x"
	}
	testutil.CreateFileTree(t, fs, "/first", tree)
	testutil.CreateFileTree(t, fs, "/second", tree)

	cfg := build(t, fs, []string{"/first", "/second"}, opt('l', "3"), opt('e', ".dat"))
	out, state := run(t, fs, cfg)

	assert.Equal(t, 3, state.Matches)
	assert.True(t, state.Stopped)
	assert.Len(t, strings.Split(strings.TrimSuffix(out, "\n"), "\n"), 3)
	assert.NotContains(t, out, "/second")
}

func TestUnreadableRootIsSkipped(t *testing.T) {
	fs := testutil.NewMemFS()
	testutil.CreateFileTree(t, fs, "/good", testutil.FileTree{"a.txt": "a"})
	testutil.CreateFileTree(t, fs, "/other", testutil.FileTree{"plain.txt": "p"})

	cfg := build(t, fs, []string{"/missing", "/other/plain.txt", "/good"}, opt('e', ".txt"))
	out, state := run(t, fs, cfg)

	assert.Equal(t, "/good/a.txt\n", out)
	assert.Equal(t, 1, state.Matches)
}

func TestOutputModes(t *testing.T) {
	fs := testutil.NewMemFS()
	testutil.CreateFileTree(t, fs, "/o", testutil.FileTree{
		"deep": testutil.FileTree{"x.go": "package x"},
	})

	t.Run("junk_paths", func(t *testing.T) {
		out, _ := run(t, fs, build(t, fs, []string{"/o"}, opt('r', ""), opt('e', ".go"), opt('j', "")))
		assert.Equal(t, "x.go\n", out)
	})

	t.Run("null_terminator", func(t *testing.T) {
		out, _ := run(t, fs, build(t, fs, []string{"/o"}, opt('r', ""), opt('a', "f"), opt('0', "")))
		assert.Equal(t, "/o/deep/x.go\x00", out)
	})

	t.Run("quiet_counts_only", func(t *testing.T) {
		out, state := run(t, fs, build(t, fs, []string{"/o"}, opt('r', ""), opt('q', "")))
		assert.Empty(t, out)
		assert.Equal(t, 2, state.Matches)
	})

	t.Run("kinds_filter_directories", func(t *testing.T) {
		out, _ := run(t, fs, build(t, fs, []string{"/o"}, opt('r', ""), opt('a', "d")))
		assert.Equal(t, "/o/deep\n", out)
	})
}

func TestDetailsLine(t *testing.T) {
	when := time.Date(2021, 7, 4, 9, 5, 3, 0, time.Local)
	e := &types.Entry{Name: "big.bin", Path: "big.bin", Kind: types.KindFile, Size: 1234567, ModTime: when}

	assert.Equal(t, "[2021-07-04 09:05:03].[      1,234,567].[REG] big.bin", seek.DetailsLine(e, e.Path))

	e.Kind = types.KindDirectory
	assert.Contains(t, seek.DetailsLine(e, e.Path), "[DIR]")
	e.Kind = types.KindSymlink
	assert.Contains(t, seek.DetailsLine(e, e.Path), "[LNK]")
	e.Kind = types.KindOther
	assert.Contains(t, seek.DetailsLine(e, e.Path), "[OTH]")
}

func TestDetailsFromUppercaseAttribute(t *testing.T) {
	fs := testutil.NewMemFS()
	testutil.CreateFileTree(t, fs, "/d", testutil.FileTree{"f.txt": "abc"})

	out, _ := run(t, fs, build(t, fs, []string{"/d"}, opt('a', "F")))
	assert.Regexp(t, `^\[\d{4}-\d\d-\d\d \d\d:\d\d:\d\d\]\.\[\s+3\]\.\[REG\] /d/f.txt\n$`, out)
}

func TestLeadingDotSlashIsStripped(t *testing.T) {
	dir := t.TempDir()
	testutil.CreateFile(t, dir, "here.txt", "x")
	testutil.Chdir(t, dir)
	fs := filesystem.NewOS()

	out, _ := run(t, fs, build(t, fs, []string{"./"}, opt('=', "here.txt")))
	assert.Equal(t, "here.txt\n", out)
}

type fakeRunner struct {
	commands []string
	fail     bool
}

func (f *fakeRunner) Run(command string) error {
	f.commands = append(f.commands, command)
	if f.fail {
		return errors.New(errors.ErrInternal, "exit status 1")
	}
	return nil
}

func TestComposeCommand(t *testing.T) {
	tests := []struct {
		tmpl, path, want string
		substituted      bool
	}{
		{"wc -l", "a/b.txt", `wc -l "a/b.txt"`, false},
		{"cp % /backup", "a/b.txt", `cp "a/b.txt" /backup`, true},
		{"mv % %:r.bak", "a/b.txt", `mv "a/b.txt" "a/b".bak`, true},
		{"echo %:r", "noext", `echo "noext"`, true},
	}
	for _, tt := range tests {
		t.Run(tt.tmpl, func(t *testing.T) {
			got, substituted := seek.ComposeCommand(tt.tmpl, tt.path)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.substituted, substituted)
		})
	}
}

func TestExecAction(t *testing.T) {
	fs := testutil.NewMemFS()
	testutil.CreateFileTree(t, fs, "/x", testutil.FileTree{"1.c": "", "2.c": ""})

	t.Run("runs_once_per_match", func(t *testing.T) {
		runner := &fakeRunner{}
		var out bytes.Buffer
		cfg := build(t, fs, []string{"/x"}, opt('E', "gcc -c %"))
		_, err := seek.NewDriver(fs, cfg, &out).WithRunner(runner).Run()
		require.NoError(t, err)
		assert.Equal(t, []string{`gcc -c "/x/1.c"`, `gcc -c "/x/2.c"`}, runner.commands)
		assert.Equal(t, "gcc -c \"/x/1.c\"\ngcc -c \"/x/2.c\"\n", out.String())
	})

	t.Run("failing_plain_command_is_disabled", func(t *testing.T) {
		runner := &fakeRunner{fail: true}
		var out bytes.Buffer
		cfg := build(t, fs, []string{"/x"}, opt('E', "false"), opt('q', ""))
		state, err := seek.NewDriver(fs, cfg, &out).WithRunner(runner).Run()
		require.NoError(t, err)
		assert.Len(t, runner.commands, 1)
		assert.Equal(t, 2, state.Matches)
		assert.Contains(t, out.String(), `?? false "/x/1.c"`)
	})
}

func TestSettings(t *testing.T) {
	fs := testutil.NewMemFS()
	testutil.CreateFileTree(t, fs, "/s", testutil.FileTree{"notes.md": "n"})

	t.Run("max_depth_implies_recursive", func(t *testing.T) {
		cfg := build(t, fs, nil, opt('L', "3"))
		assert.True(t, cfg.Walk.Recursive)
		assert.Equal(t, 3, cfg.Walk.MaxDepth)
		assert.Equal(t, []string{"."}, cfg.Roots)
	})

	t.Run("targets_override_positionals", func(t *testing.T) {
		cfg := build(t, fs, []string{"/ignored"}, opt('D', "/a"), opt('D', "/b"))
		assert.Equal(t, []string{"/a", "/b"}, cfg.Roots)
	})

	t.Run("single_file_shortcut", func(t *testing.T) {
		cfg := build(t, fs, []string{"/s/notes.md"})
		assert.Equal(t, "notes.md", cfg.Criteria.NameEquals)
		assert.Equal(t, []string{"."}, cfg.Roots)
		assert.True(t, cfg.NamedLike)
	})

	t.Run("no_shortcut_with_name_criteria", func(t *testing.T) {
		cfg := build(t, fs, []string{"/s/notes.md"}, opt('b', "n"))
		assert.Empty(t, cfg.Criteria.NameEquals)
		assert.Equal(t, []string{"/s/notes.md"}, cfg.Roots)
		assert.False(t, cfg.NamedLike)
	})

	t.Run("defaults_apply_first", func(t *testing.T) {
		s := seek.NewSettings(fs, seek.Defaults{IgnoreCase: true, Recursive: true})
		require.NoError(t, s.Apply(opt('I', "")))
		cfg, err := s.Build(nil)
		require.NoError(t, err)
		assert.False(t, cfg.Criteria.IgnoreCase)
		assert.True(t, cfg.Walk.Recursive)
	})

	t.Run("bad_numbers", func(t *testing.T) {
		s := seek.NewSettings(fs, seek.Defaults{})
		err := s.Apply(opt('l', "many"))
		assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
	})

	t.Run("unknown_code", func(t *testing.T) {
		s := seek.NewSettings(fs, seek.Defaults{})
		assert.Error(t, s.Apply(opt('%', "")))
	})
}

func TestSettingsTOML(t *testing.T) {
	fs := testutil.NewMemFS()
	cfg := build(t, fs, []string{"/tmp"}, opt('c', "main"), opt('l', "5"), opt('r', ""))

	data, err := cfg.SettingsTOML()
	require.NoError(t, err)

	var doc map[string]interface{}
	require.NoError(t, toml.Unmarshal(data, &doc))
	assert.Equal(t, int64(5), doc["limit"])
	assert.Equal(t, true, doc["recursive"])
	crit, ok := doc["criteria"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, []interface{}{"main"}, crit["name_contains"])
}
