package clseek

import (
	"fmt"

	"github.com/arthur-debert/clseek/pkg/emptiness"
	"github.com/spf13/cobra"
)

func newIsemptyCmd(a *app) *cobra.Command {
	var quiet bool

	cmd := &cobra.Command{
		Use:     "isempty [flags] PATH",
		Short:   MsgIsemptyShort,
		Long:    MsgIsemptyLong,
		GroupID: "tools",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			verdict, err := emptiness.Check(a.fs, args[0])
			if err != nil {
				return err
			}
			if !quiet {
				fmt.Fprintln(cmd.OutOrStdout(), verdict.String())
			}
			if verdict.Empty {
				return exitWith(1)
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, MsgFlagQuiet)

	return cmd
}
