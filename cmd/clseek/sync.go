package clseek

import (
	"fmt"
	"strings"

	"github.com/arthur-debert/clseek/pkg/criteria"
	"github.com/arthur-debert/clseek/pkg/dirsync"
	"github.com/arthur-debert/clseek/pkg/style"
	"github.com/spf13/cobra"
)

// syncFlags are the sync command line options
type syncFlags struct {
	noRecursive   bool
	begins        string
	ends          string
	contains      []string
	containsFrom  string
	excludes      []string
	excludesFrom  string
	dryRun        bool
	force         bool
	keep          bool
	update        bool
	skipEmptyDir  bool
	skipEmptyTree bool
	ignoreCase    bool
	quiet         bool
	gitignore     bool
	noLock        bool
}

func newSyncCmd(a *app) *cobra.Command {
	var f syncFlags

	cmd := &cobra.Command{
		Use:     "sync [flags] SRC DST",
		Short:   MsgSyncShort,
		Long:    MsgSyncLong,
		Example: MsgSyncExample,
		GroupID: "tools",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runSync(cmd, f, args[0], args[1])
		},
	}

	flags := cmd.Flags()
	flags.SortFlags = false
	flags.BoolVarP(&f.noRecursive, "no-recursive", "t", false, MsgFlagNoRecursive)
	flags.StringVarP(&f.begins, "begins", "b", "", MsgFlagSyncBegins)
	flags.StringVarP(&f.ends, "ends", "e", "", MsgFlagSyncEnds)
	flags.StringArrayVarP(&f.contains, "contains", "c", nil, MsgFlagSyncContains)
	flags.StringVarP(&f.containsFrom, "contains-from", "C", "", MsgFlagContainsFrom)
	flags.StringArrayVarP(&f.excludes, "excludes", "x", nil, MsgFlagSyncExcludes)
	flags.StringVarP(&f.excludesFrom, "excludes-from", "X", "", MsgFlagExcludesFrom)
	flags.BoolVarP(&f.dryRun, "dry-run", "n", false, MsgFlagDryRun)
	flags.BoolVarP(&f.force, "force", "f", false, MsgFlagForce)
	flags.BoolVarP(&f.keep, "keep", "k", false, MsgFlagKeep)
	flags.BoolVarP(&f.update, "update", "u", false, MsgFlagUpdate)
	flags.BoolVarP(&f.skipEmptyDir, "skip-empty-dir", "s", false, MsgFlagSkipEmptyDir)
	flags.BoolVarP(&f.skipEmptyTree, "skip-empty-tree", "S", false, MsgFlagSkipEmptyTree)
	flags.BoolVarP(&f.ignoreCase, "ignore-case", "i", false, MsgFlagSyncIgnoreCase)
	flags.BoolVarP(&f.quiet, "quiet", "q", false, MsgFlagSyncQuiet)
	flags.BoolVar(&f.gitignore, "gitignore", false, MsgFlagGitignore)
	flags.BoolVar(&f.noLock, "no-lock", false, MsgFlagNoLock)
	cmd.MarkFlagsMutuallyExclusive("keep", "force")

	return cmd
}

// syncFilter builds the full path criteria selecting source entries
func (a *app) syncFilter(f syncFlags) (*criteria.Criteria, error) {
	b := criteria.NewBuilder(a.fs)
	b.SetFullPathScope(true)
	b.SetIgnoreCase(f.ignoreCase)
	b.SetNameBegins(f.begins)
	b.SetNameEnds(f.ends)

	contains := f.contains
	if f.containsFrom != "" {
		more, err := dirsync.ReadPatternFile(a.fs, f.containsFrom)
		if err != nil {
			return nil, err
		}
		contains = append(contains, more...)
	}
	for _, p := range contains {
		b.AddPathContains(p)
	}

	excludes := f.excludes
	if f.excludesFrom != "" {
		more, err := dirsync.ReadPatternFile(a.fs, f.excludesFrom)
		if err != nil {
			return nil, err
		}
		excludes = append(excludes, more...)
	}
	for _, p := range excludes {
		b.AddPathExcludes(p)
	}

	return b.Build()
}

func (a *app) runSync(cmd *cobra.Command, f syncFlags, src, dst string) error {
	filter, err := a.syncFilter(f)
	if err != nil {
		return err
	}

	cfg := a.config.Sync
	opts := dirsync.Options{
		Recursive:     !f.noRecursive,
		DryRun:        f.dryRun,
		Force:         f.force,
		Keep:          f.keep,
		UpdateNewer:   f.update,
		SkipEmptyDir:  f.skipEmptyDir,
		SkipEmptyTree: f.skipEmptyTree,
		Quiet:         f.quiet,
		Criteria:      filter,
		BufferSize:    cfg.BufferSize,
		Gitignore:     f.gitignore,
		Lock:          cfg.Lock && !f.noLock,
		LockWait:      cfg.LockWait,
	}

	out := cmd.OutOrStdout()
	syncer := dirsync.New(a.fs, opts, out).
		WithConfirmer(dirsync.NewPromptConfirmer(cmd.InOrStdin(), cmd.ErrOrStderr()))
	stats, err := syncer.Sync(src, dst)
	if err != nil {
		return err
	}
	if f.quiet {
		return nil
	}

	table, err := stats.Table(f.dryRun)
	if err != nil {
		return err
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, strings.TrimRight(table, "\n"))
	if f.dryRun {
		fmt.Fprintln(out, style.Markup(MsgSyncDryRunNotice))
	}
	return nil
}
