package clseek

import (
	"github.com/arthur-debert/clseek/pkg/criteria"
	"github.com/arthur-debert/clseek/pkg/errors"
	"github.com/arthur-debert/clseek/pkg/logging"
	"github.com/arthur-debert/clseek/pkg/seek"
	"github.com/spf13/cobra"
)

func newSeekCmd(a *app) *cobra.Command {
	stream := &optionStream{}

	cmd := &cobra.Command{
		Use:     "seek [flags] [ROOT...]",
		Short:   MsgSeekShort,
		Long:    MsgSeekLong,
		Example: MsgSeekExample,
		GroupID: "tools",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runSeek(cmd, stream.options, args)
		},
	}
	bindSeekFlags(cmd.Flags(), stream)

	return cmd
}

// runSeek applies the preset, then the command line options, and walks
// every root. The match count becomes the exit status.
func (a *app) runSeek(cmd *cobra.Command, options []criteria.Option, args []string) error {
	logger := logging.GetLogger("cmd.seek")
	cfg := a.config.Seek

	preset, err := presetOptions(cfg.Preset)
	if err != nil {
		return err
	}

	settings := seek.NewSettings(a.fs, seek.Defaults{
		IgnoreCase: cfg.IgnoreCase,
		Recursive:  cfg.Recursive,
	})
	if err := settings.ApplyAll(append(preset, options...)); err != nil {
		return err
	}
	sc, err := settings.Build(args)
	if err != nil {
		return err
	}

	// --show-settings previews the effective settings and walks nothing
	if sc.ShowSettings {
		data, err := sc.SettingsTOML()
		if err != nil {
			return errors.Wrap(err, errors.ErrInternal, "cannot render settings")
		}
		_, err = cmd.ErrOrStderr().Write(data)
		return err
	}

	runner := seek.NewShellRunner(a.config.Seek.Shell)
	runner.Stdout = cmd.OutOrStdout()
	runner.Stderr = cmd.ErrOrStderr()

	state, err := seek.NewDriver(a.fs, sc, cmd.OutOrStdout()).WithRunner(runner).Run()
	if err != nil {
		return err
	}

	logger.Info().
		Int("matches", state.Matches).
		Int("directories", state.Stats.Directories).
		Int("files", state.Stats.Files).
		Bool("stopped", state.Stopped).
		Msg("Seek finished")

	if !cfg.CountExitStatus || sc.NamedLike {
		return nil
	}
	return exitWith(state.Matches)
}
