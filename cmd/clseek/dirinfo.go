package clseek

import (
	"github.com/arthur-debert/clseek/pkg/criteria"
	"github.com/arthur-debert/clseek/pkg/dirinfo"
	"github.com/arthur-debert/clseek/pkg/walker"
	"github.com/spf13/cobra"
)

// dirinfoFlags are the dirinfo command line options
type dirinfoFlags struct {
	recursive bool
	maxDepth  int
	contains  []string
	begins    string
	ends      string
	newer     string
	older     string
	format    string
}

func newDirinfoCmd(a *app) *cobra.Command {
	var f dirinfoFlags

	cmd := &cobra.Command{
		Use:     "dirinfo [flags] [DIR]",
		Short:   MsgDirinfoShort,
		Long:    MsgDirinfoLong,
		GroupID: "tools",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := "."
			if len(args) == 1 {
				root = args[0]
			}
			return a.runDirinfo(cmd, f, root)
		},
	}

	flags := cmd.Flags()
	flags.SortFlags = false
	flags.BoolVarP(&f.recursive, "recursive", "r", false, MsgFlagRecursive)
	flags.IntVarP(&f.maxDepth, "max-depth", "L", 0, MsgFlagMaxDepth)
	flags.StringArrayVarP(&f.contains, "contains", "c", nil, MsgFlagInfoContains)
	flags.StringVarP(&f.begins, "begins", "b", "", MsgFlagInfoBegins)
	flags.StringVarP(&f.ends, "ends", "e", "", MsgFlagInfoEnds)
	flags.StringVarP(&f.newer, "newer", "n", "", MsgFlagInfoNewer)
	flags.StringVarP(&f.older, "older", "o", "", MsgFlagInfoOlder)
	flags.StringVar(&f.format, "format", dirinfo.FormatText.String(), MsgFlagFormat)

	return cmd
}

// dirinfoCriteria returns nil when no listing criteria were given
func (a *app) dirinfoCriteria(f dirinfoFlags) (*criteria.Criteria, error) {
	b := criteria.NewBuilder(a.fs)
	b.SetNameBegins(f.begins)
	b.SetNameEnds(f.ends)
	for _, p := range f.contains {
		b.AddNameContains(p)
	}
	if f.newer != "" {
		if err := b.SetNewerThan(f.newer); err != nil {
			return nil, err
		}
	}
	if f.older != "" {
		if err := b.SetOlderThan(f.older); err != nil {
			return nil, err
		}
	}
	c, err := b.Build()
	if err != nil || c.Configured() == 0 {
		return nil, err
	}
	return c, nil
}

func (a *app) runDirinfo(cmd *cobra.Command, f dirinfoFlags, root string) error {
	format, err := dirinfo.ParseFormat(f.format)
	if err != nil {
		return err
	}
	c, err := a.dirinfoCriteria(f)
	if err != nil {
		return err
	}

	report, err := dirinfo.Collect(a.fs, root, dirinfo.Options{
		Walk:     walker.Options{Recursive: f.recursive || f.maxDepth > 1, MaxDepth: f.maxDepth},
		Criteria: c,
	})
	if err != nil {
		return err
	}
	return report.Render(cmd.OutOrStdout(), format)
}
