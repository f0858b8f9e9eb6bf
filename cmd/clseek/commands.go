package clseek

import (
	"github.com/arthur-debert/clseek/internal/version"
	"github.com/arthur-debert/clseek/pkg/config"
	"github.com/arthur-debert/clseek/pkg/errors"
	"github.com/arthur-debert/clseek/pkg/filesystem"
	"github.com/arthur-debert/clseek/pkg/logging"
	"github.com/arthur-debert/clseek/pkg/style"
	"github.com/arthur-debert/clseek/pkg/types"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// app holds what the root command prepares for every subcommand
type app struct {
	fs     types.FS
	config *config.Config

	verbosity  int
	configPath string
	color      string
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	return newRootCmd(filesystem.NewOS())
}

func newRootCmd(fsys types.FS) *cobra.Command {
	initTemplateFormatting()

	a := &app{fs: fsys}

	rootCmd := &cobra.Command{
		Use:     "clseek",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return errors.New(errors.ErrInvalidInput, MsgErrNoCommand)
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	rootCmd.PersistentFlags().CountVarP(&a.verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", "", MsgFlagConfig)
	rootCmd.PersistentFlags().StringVar(&a.color, "color", style.ColorAuto, MsgFlagColor)

	rootCmd.AddGroup(&cobra.Group{
		ID:    "tools",
		Title: "TOOLS:",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "misc",
		Title: "MISC:",
	})
	rootCmd.SetHelpCommandGroupID("misc")

	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	rootCmd.AddCommand(newSeekCmd(a))
	rootCmd.AddCommand(newSyncCmd(a))
	rootCmd.AddCommand(newWhichCmd(a))
	rootCmd.AddCommand(newIftestCmd(a))
	rootCmd.AddCommand(newIsemptyCmd(a))
	rootCmd.AddCommand(newDirinfoCmd(a))
	rootCmd.AddCommand(newExamplesCmd())
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())
	rootCmd.AddCommand(newManCmd())

	return rootCmd
}

// setup loads the configuration, then logging and color follow it
func (a *app) setup(cmd *cobra.Command) error {
	overrides := map[string]interface{}{}
	if cmd.Flags().Changed("color") {
		overrides["output.color"] = a.color
	}

	cfg, err := config.Load(a.configPath, overrides)
	if err != nil {
		return err
	}
	a.config = cfg

	logging.SetupLoggerWithOptions(logging.Options{
		Verbosity:  a.verbosity,
		FileOutput: cfg.Logging.File,
		Console:    cmd.ErrOrStderr(),
	})
	if err := style.SetColorMode(cfg.Output.Color, cmd.OutOrStdout()); err != nil {
		return err
	}

	log.Debug().
		Str("command", cmd.Name()).
		Strs("config", cfg.Source).
		Msg("Command started")
	return nil
}
