// pkg/dirsync/dirsync_test.go
// TEST TYPE: Integration Test
// DEPENDENCIES: afero MemMapFs
// PURPOSE: Test one-way sync: creation, updates, reverse check deletions, filters and dry runs

package dirsync_test

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/arthur-debert/clseek/pkg/criteria"
	"github.com/arthur-debert/clseek/pkg/dirsync"
	"github.com/arthur-debert/clseek/pkg/errors"
	"github.com/arthur-debert/clseek/pkg/testutil"
	"github.com/arthur-debert/clseek/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var stamp = time.Date(2022, 11, 5, 8, 30, 0, 0, time.UTC)

func sourceTree(t *testing.T) types.FS {
	fs := testutil.NewMemFS()
	testutil.CreateFileTree(t, fs, "/src", testutil.FileTree{
		"readme.md": "# readme",
		"lib": testutil.FileTree{
			"a.go": "package lib",
			"b.go": "package lib // b",
		},
		"build": testutil.FileTree{
			"out.bin": "binary",
		},
		"empty": testutil.FileTree{},
	})
	for _, p := range []string{"/src/readme.md", "/src/lib/a.go", "/src/lib/b.go", "/src/build/out.bin"} {
		testutil.SetModTime(t, fs, p, stamp)
	}
	return fs
}

func syncer(fs types.FS, opts dirsync.Options) (*dirsync.Syncer, *bytes.Buffer) {
	var out bytes.Buffer
	return dirsync.New(fs, opts, &out), &out
}

// answer is a scripted Confirmer
type answer struct {
	yes   bool
	asked []string
}

func (a *answer) Confirm(path string) bool {
	a.asked = append(a.asked, path)
	return a.yes
}

func TestFreshSync(t *testing.T) {
	fs := sourceTree(t)
	s, out := syncer(fs, dirsync.Options{Recursive: true})

	stats, err := s.Sync("/src", "/dst")
	require.NoError(t, err)

	assert.Equal(t, "package lib", testutil.ReadString(t, fs, "/dst/lib/a.go"))
	assert.Equal(t, "binary", testutil.ReadString(t, fs, "/dst/build/out.bin"))
	assert.True(t, testutil.Exists(fs, "/dst/empty"))

	info, err := fs.Stat("/dst/lib/b.go")
	require.NoError(t, err)
	assert.True(t, info.ModTime().Equal(stamp), "modification time is carried over")
	assert.Equal(t, "-rw-r--r--", info.Mode().Perm().String())

	assert.Equal(t, 4, stats.FilesCreated)
	assert.Equal(t, 4, stats.FilesChecked)
	assert.Equal(t, 4, stats.DirsCreated, "root, lib, build and empty")
	assert.Contains(t, out.String(), "[sync-create] mkdir /dst\n")
	assert.Contains(t, out.String(), "[sync-create] copy file /src/lib/a.go into /dst/lib/a.go\n")
}

func TestResyncIsANoop(t *testing.T) {
	fs := sourceTree(t)
	s, _ := syncer(fs, dirsync.Options{Recursive: true})
	_, err := s.Sync("/src", "/dst")
	require.NoError(t, err)

	again, out := syncer(fs, dirsync.Options{Recursive: true})
	stats, err := again.Sync("/src", "/dst")
	require.NoError(t, err)
	assert.Equal(t, 0, stats.FilesCreated)
	assert.Equal(t, 0, stats.DirsCreated)
	assert.Equal(t, 0, stats.FilesDeleted)
	assert.Empty(t, out.String())
}

func TestUpdatesNeedForce(t *testing.T) {
	fs := sourceTree(t)
	s, _ := syncer(fs, dirsync.Options{Recursive: true})
	_, err := s.Sync("/src", "/dst")
	require.NoError(t, err)

	require.NoError(t, fs.WriteFile("/src/lib/a.go", []byte("package lib // changed"), 0644))

	t.Run("without_force", func(t *testing.T) {
		s, out := syncer(fs, dirsync.Options{Recursive: true})
		stats, err := s.Sync("/src", "/dst")
		require.NoError(t, err)
		assert.Equal(t, "package lib", testutil.ReadString(t, fs, "/dst/lib/a.go"))
		assert.Equal(t, 0, stats.FilesCreated)
		assert.Contains(t, out.String(), "[sync-update] copy file /src/lib/a.go into /dst/lib/a.go")
	})

	t.Run("with_force", func(t *testing.T) {
		s, _ := syncer(fs, dirsync.Options{Recursive: true, Force: true})
		stats, err := s.Sync("/src", "/dst")
		require.NoError(t, err)
		assert.Equal(t, "package lib // changed", testutil.ReadString(t, fs, "/dst/lib/a.go"))
		assert.Equal(t, 1, stats.FilesCreated)
	})
}

func TestUpdateNewerKeepsNewerDestination(t *testing.T) {
	fs := sourceTree(t)
	testutil.CreateFileTree(t, fs, "/dst", testutil.FileTree{"readme.md": "edited in place"})
	testutil.SetModTime(t, fs, "/dst/readme.md", stamp.Add(time.Hour))

	s, _ := syncer(fs, dirsync.Options{Force: true, UpdateNewer: true})
	_, err := s.Sync("/src", "/dst")
	require.NoError(t, err)
	assert.Equal(t, "edited in place", testutil.ReadString(t, fs, "/dst/readme.md"))
}

func TestReverseCheckDeletesExtras(t *testing.T) {
	setup := func(t *testing.T) types.FS {
		fs := sourceTree(t)
		testutil.CreateFileTree(t, fs, "/dst", testutil.FileTree{
			"stale.txt": "old",
			"gone": testutil.FileTree{
				"x.txt": "x",
				"y":     testutil.FileTree{"z.txt": "z"},
			},
		})
		return fs
	}

	t.Run("force_deletes_without_asking", func(t *testing.T) {
		fs := setup(t)
		s, out := syncer(fs, dirsync.Options{Recursive: true, Force: true})
		stats, err := s.Sync("/src", "/dst")
		require.NoError(t, err)

		assert.False(t, testutil.Exists(fs, "/dst/stale.txt"))
		assert.False(t, testutil.Exists(fs, "/dst/gone"))
		assert.Equal(t, 3, stats.FilesDeleted)
		assert.Equal(t, 2, stats.DirsDeleted)
		assert.Equal(t, 0, stats.DirDeleteFailed)
		assert.Contains(t, out.String(), "[sync-remove] recursively delete /dst/gone")
	})

	t.Run("confirmer_declines", func(t *testing.T) {
		fs := setup(t)
		confirm := &answer{yes: false}
		s, _ := syncer(fs, dirsync.Options{})
		s.WithConfirmer(confirm)
		_, err := s.Sync("/src", "/dst")
		require.NoError(t, err)

		assert.True(t, testutil.Exists(fs, "/dst/stale.txt"))
		assert.Equal(t, []string{"/dst/stale.txt"}, confirm.asked, "directories are left alone without recursion")
	})

	t.Run("confirmer_accepts", func(t *testing.T) {
		fs := setup(t)
		s, _ := syncer(fs, dirsync.Options{Recursive: true})
		s.WithConfirmer(&answer{yes: true})
		_, err := s.Sync("/src", "/dst")
		require.NoError(t, err)
		assert.False(t, testutil.Exists(fs, "/dst/stale.txt"))
		assert.False(t, testutil.Exists(fs, "/dst/gone/y/z.txt"))
		assert.False(t, testutil.Exists(fs, "/dst/gone"))
	})

	t.Run("keep", func(t *testing.T) {
		fs := setup(t)
		s, _ := syncer(fs, dirsync.Options{Recursive: true, Keep: true})
		stats, err := s.Sync("/src", "/dst")
		require.NoError(t, err)
		assert.True(t, testutil.Exists(fs, "/dst/stale.txt"))
		assert.True(t, testutil.Exists(fs, "/dst/gone/y/z.txt"))
		assert.Equal(t, 0, stats.FilesDeleted)
	})
}

func TestDryRunTouchesNothing(t *testing.T) {
	fs := sourceTree(t)
	testutil.CreateFileTree(t, fs, "/dst", testutil.FileTree{"stale.txt": "old"})

	s, out := syncer(fs, dirsync.Options{Recursive: true, DryRun: true, Force: true})
	stats, err := s.Sync("/src", "/dst")
	require.NoError(t, err)

	assert.True(t, testutil.Exists(fs, "/dst/stale.txt"))
	assert.False(t, testutil.Exists(fs, "/dst/lib"))
	assert.Equal(t, 4, stats.FilesCreated)
	assert.Equal(t, 1, stats.FilesDeleted)
	assert.Contains(t, out.String(), "[would-create] copy file /src/readme.md into /dst/readme.md")
	assert.Contains(t, out.String(), "[would-remove] delete file /dst/stale.txt")
}

func TestCriteriaFilterTheSync(t *testing.T) {
	fs := sourceTree(t)
	b := criteria.NewBuilder(fs)
	b.SetFullPathScope(true)
	b.AddPathExcludes("build")
	b.SetNameEnds(".go")
	crit, err := b.Build()
	require.NoError(t, err)

	s, _ := syncer(fs, dirsync.Options{Recursive: true, Criteria: crit})
	stats, err := s.Sync("/src", "/dst")
	require.NoError(t, err)

	assert.True(t, testutil.Exists(fs, "/dst/lib/a.go"), "parent directories are created for matching files")
	assert.False(t, testutil.Exists(fs, "/dst/readme.md"))
	assert.False(t, testutil.Exists(fs, "/dst/build"))
	assert.Equal(t, 2, stats.FilesCreated)
}

func TestSkipEmpty(t *testing.T) {
	fs := sourceTree(t)
	testutil.CreateFileTree(t, fs, "/src/hollow", testutil.FileTree{"inner": testutil.FileTree{}})

	t.Run("skip_empty_dir", func(t *testing.T) {
		s, _ := syncer(fs, dirsync.Options{Recursive: true, SkipEmptyDir: true})
		_, err := s.Sync("/src", "/d1")
		require.NoError(t, err)
		assert.False(t, testutil.Exists(fs, "/d1/empty"))
		assert.True(t, testutil.Exists(fs, "/d1/hollow"))
		assert.False(t, testutil.Exists(fs, "/d1/hollow/inner"))
	})

	t.Run("skip_empty_tree", func(t *testing.T) {
		s, _ := syncer(fs, dirsync.Options{Recursive: true, SkipEmptyTree: true})
		_, err := s.Sync("/src", "/d2")
		require.NoError(t, err)
		assert.False(t, testutil.Exists(fs, "/d2/empty"))
		assert.False(t, testutil.Exists(fs, "/d2/hollow"))
		assert.True(t, testutil.Exists(fs, "/d2/lib/a.go"))
	})
}

func TestGitignore(t *testing.T) {
	fs := sourceTree(t)
	require.NoError(t, fs.WriteFile("/src/.gitignore", []byte("build/\n*.md\n"), 0644))

	s, _ := syncer(fs, dirsync.Options{Recursive: true, Gitignore: true})
	_, err := s.Sync("/src", "/dst")
	require.NoError(t, err)

	assert.False(t, testutil.Exists(fs, "/dst/build"))
	assert.False(t, testutil.Exists(fs, "/dst/readme.md"))
	assert.True(t, testutil.Exists(fs, "/dst/lib/b.go"))
	assert.True(t, testutil.Exists(fs, "/dst/.gitignore"))
}

func TestNonRecursiveSync(t *testing.T) {
	fs := sourceTree(t)
	s, _ := syncer(fs, dirsync.Options{})
	_, err := s.Sync("/src", "/dst")
	require.NoError(t, err)

	assert.True(t, testutil.Exists(fs, "/dst/readme.md"))
	assert.True(t, testutil.Exists(fs, "/dst/lib"))
	assert.False(t, testutil.Exists(fs, "/dst/lib/a.go"))
}

func TestSingleFileSync(t *testing.T) {
	fs := sourceTree(t)
	require.NoError(t, fs.MkdirAll("/target", 0755))

	s, _ := syncer(fs, dirsync.Options{})
	stats, err := s.Sync("/src/readme.md", "/target")
	require.NoError(t, err)
	assert.Equal(t, "# readme", testutil.ReadString(t, fs, "/target/readme.md"))
	assert.Equal(t, 1, stats.FilesCreated)

	_, err = dirsync.New(fs, dirsync.Options{}, &bytes.Buffer{}).Sync("/src/readme.md", "/nowhere")
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}

func TestSyncErrors(t *testing.T) {
	fs := sourceTree(t)

	_, err := dirsync.New(fs, dirsync.Options{}, &bytes.Buffer{}).Sync("/missing", "/dst")
	assert.True(t, errors.IsErrorCode(err, errors.ErrNotFound))

	require.NoError(t, fs.WriteFile("/afile", []byte("x"), 0644))
	_, err = dirsync.New(fs, dirsync.Options{}, &bytes.Buffer{}).Sync("/src", "/afile")
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))

	_, err = dirsync.New(fs, dirsync.Options{Keep: true, Force: true}, &bytes.Buffer{}).Sync("/src", "/dst")
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}

func TestQuietSuppressesReports(t *testing.T) {
	fs := sourceTree(t)
	s, out := syncer(fs, dirsync.Options{Recursive: true, Quiet: true})
	stats, err := s.Sync("/src", "/dst")
	require.NoError(t, err)
	assert.Empty(t, out.String())
	assert.Equal(t, 4, stats.FilesCreated)
}

func TestStatsTable(t *testing.T) {
	table, err := dirsync.Stats{FilesChecked: 3, FilesCreated: 2, DirsDeleted: 1}.Table(true)
	require.NoError(t, err)
	assert.Contains(t, table, "would create")
	assert.Contains(t, table, "files")
	assert.Contains(t, table, "directories")
}

func TestPromptConfirmer(t *testing.T) {
	var prompt bytes.Buffer
	c := dirsync.NewPromptConfirmer(strings.NewReader("y\nn\nYes\n"), &prompt)
	assert.True(t, c.Confirm("/a"))
	assert.False(t, c.Confirm("/b"))
	assert.True(t, c.Confirm("/c"))
	assert.False(t, c.Confirm("/d"), "end of input declines")
	assert.Contains(t, prompt.String(), "Do you really want to delete /a? ")
}

func TestReadPatternFile(t *testing.T) {
	fs := testutil.NewMemFS()
	require.NoError(t, fs.WriteFile("/p.txt", []byte("# comment\nvendor\n\n  node_modules  \n"), 0644))

	patterns, err := dirsync.ReadPatternFile(fs, "/p.txt")
	require.NoError(t, err)
	assert.Equal(t, []string{"vendor", "node_modules"}, patterns)

	_, err = dirsync.ReadPatternFile(fs, "/none")
	assert.True(t, errors.IsErrorCode(err, errors.ErrNotFound))
}
