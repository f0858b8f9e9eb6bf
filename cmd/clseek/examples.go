package clseek

import (
	"fmt"

	"github.com/arthur-debert/clseek/pkg/style"
	"github.com/arthur-debert/clseek/pkg/topics"
	"github.com/spf13/cobra"
)

// examplesWidth is the word wrap used for rendered examples
const examplesWidth = 80

func newExamplesCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "examples [TOOL]",
		Short:   MsgExamplesShort,
		Long:    MsgExamplesLong,
		GroupID: "misc",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var renderer topics.Renderer = &topics.PlainRenderer{}
			if stdoutIsTerminal() {
				renderer = topics.NewGlamourRenderer(examplesWidth)
			}
			manager, err := topics.Default(topics.Options{Renderer: renderer})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(args) == 0 {
				fmt.Fprintln(out, style.Paint("heading", MsgExamplesHeading))
				for _, name := range manager.List() {
					fmt.Fprintf(out, MsgExamplesItem, name)
				}
				return nil
			}

			text, err := manager.Render(args[0])
			if err != nil {
				return err
			}
			fmt.Fprint(out, text)
			return nil
		},
	}
}
