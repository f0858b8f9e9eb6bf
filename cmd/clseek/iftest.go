package clseek

import (
	"fmt"

	"github.com/arthur-debert/clseek/pkg/errors"
	"github.com/arthur-debert/clseek/pkg/probe"
	"github.com/spf13/cobra"
)

// iftestLetters are the test flags in the order they are declared
var iftestLetters = []struct {
	test  probe.Test
	name  string
	usage string
}{
	{probe.Directory, "dir", "PATH is a directory"},
	{probe.Exists, "exists", "PATH exists"},
	{probe.RegularFile, "file", "PATH is a regular file (default)"},
	{probe.Readable, "readable", "Owner may read PATH"},
	{probe.Writable, "writable", "Owner may write PATH"},
	{probe.Executable, "executable", "Owner may execute PATH"},
	{probe.NonEmpty, "non-empty", "PATH is a non-empty regular file"},
	{probe.Empty, "empty", "PATH is an empty regular file"},
	{probe.CharDevice, "char-device", "PATH is a character device"},
	{probe.NamedPipe, "pipe", "PATH is a named pipe"},
}

func newIftestCmd(a *app) *cobra.Command {
	var quiet bool
	selected := make([]bool, len(iftestLetters))

	cmd := &cobra.Command{
		Use:     "iftest [-d|-e|-f|-r|-w|-x|-s|-z|-c|-p] PATH",
		Short:   MsgIftestShort,
		Long:    MsgIftestLong,
		GroupID: "tools",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			test := probe.DefaultTest
			chosen := 0
			for i, on := range selected {
				if on {
					test = iftestLetters[i].test
					chosen++
				}
			}
			if chosen > 1 {
				return errors.New(errors.ErrInvalidInput, MsgErrIftestTests)
			}

			outcome, err := probe.Run(a.fs, test, args[0])
			if err != nil {
				return err
			}
			if !quiet {
				fmt.Fprintln(cmd.OutOrStdout(), outcome.Message)
			}
			return exitWith(outcome.ExitCode())
		},
	}

	flags := cmd.Flags()
	flags.SortFlags = false
	for i, l := range iftestLetters {
		flags.BoolVarP(&selected[i], l.name, string(rune(l.test)), false, l.usage)
	}
	flags.BoolVarP(&quiet, "quiet", "q", false, MsgFlagQuiet)

	return cmd
}
