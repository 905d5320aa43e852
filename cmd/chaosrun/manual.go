package main

import (
	"fmt"

	"github.com/metalagman/chaosrun"
	"github.com/spf13/cobra"
)

func newManualCmd() *cobra.Command {
	opts := &runOptions{}
	cmd := &cobra.Command{
		Use:   "manual",
		Short: "Print the engine commands for running both decks by hand",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := buildConfig(cmd, opts)
			if err != nil {
				return err
			}

			driver, err := chaosrun.NewDriver(cfg.Cmd, chaosrun.WithWorkDir(cfg.WorkDir))
			if err != nil {
				return err
			}

			for _, line := range driver.ManualCommands(chaosrun.Invocations(chaosrun.DefaultDecks())) {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), line)
			}

			return nil
		},
	}

	addCommonFlags(cmd, opts, true)

	return cmd
}
