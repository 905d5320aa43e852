package main

import (
	"fmt"
	"os"

	"github.com/metalagman/chaosrun"
	"github.com/spf13/cobra"
)

var exitFn = os.Exit

func newRunCmd() *cobra.Command {
	opts := &runOptions{}
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Write both decks, then run the reference and perturbed simulations in order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPair(cmd, opts)
		},
	}

	addCommonFlags(cmd, opts, true)
	addExecFlags(cmd, opts)

	return cmd
}

func runPair(cmd *cobra.Command, opts *runOptions) error {
	cfg, err := buildConfig(cmd, opts)
	if err != nil {
		return err
	}

	logger, err := newLogger(cmd.ErrOrStderr(), cfg.LogLevel)
	if err != nil {
		return err
	}

	paths, err := chaosrun.EmitConfigs(cfg.WorkDir)
	if err != nil {
		return err
	}

	logger.Debug().Strs("decks", paths).Msg("decks written")

	err = chaosrun.RunSimulations(
		cmd.Context(),
		cfg.Cmd,
		chaosrun.WithRunner(chaosrun.NewExecRunner(cfg.UseTTY)),
		chaosrun.WithConsole(cmd.OutOrStdout()),
		chaosrun.WithEngineOutput(cmd.OutOrStdout(), cmd.ErrOrStderr()),
		chaosrun.WithLogger(logger),
		chaosrun.WithWorkDir(cfg.WorkDir),
	)
	if err != nil {
		if chaosrun.IsEngineFailure(err) {
			// already reported together with the manual commands
			return exitWithError(1, nil)
		}

		return exitWithError(1, err)
	}

	return nil
}

func exitWithError(code int, err error) error {
	if err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
	}

	if code == 0 {
		code = 1
	}

	exitFn(code)

	return nil
}
