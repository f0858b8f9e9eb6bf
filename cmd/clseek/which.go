package clseek

import (
	"os"

	"github.com/arthur-debert/clseek/pkg/which"
	"github.com/spf13/cobra"
)

func newWhichCmd(a *app) *cobra.Command {
	var (
		opts    which.Options
		pathEnv string
	)

	cmd := &cobra.Command{
		Use:     "which [flags] NAME",
		Short:   MsgWhichShort,
		Long:    MsgWhichLong,
		GroupID: "tools",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := a.config.Which
			if !cmd.Flags().Changed("ignore-extension") {
				opts.IgnoreExtension = cfg.IgnoreExtension
			}
			if pathEnv == "" {
				pathEnv = cfg.PathEnv
			}
			opts.Extensions = which.KnownExtensions(cfg.Extensions, os.Getenv("PATHEXT"))

			found, err := which.New(a.fs, opts, cmd.OutOrStdout()).Search(os.Getenv(pathEnv), args[0])
			if err != nil {
				return err
			}
			if found == 0 {
				return exitWith(1)
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.SortFlags = false
	flags.BoolVarP(&opts.All, "all", "a", false, MsgFlagAll)
	flags.BoolVarP(&opts.AllPartial, "all-partial", "A", false, MsgFlagAllPartial)
	flags.BoolVarP(&opts.ListPaths, "list-paths", "V", false, MsgFlagListPaths)
	flags.BoolVar(&opts.IgnoreExtension, "ignore-extension", true, MsgFlagIgnoreExtension)
	flags.StringVarP(&pathEnv, "path-env", "P", "", MsgFlagPathEnv)

	return cmd
}
