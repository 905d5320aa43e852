package main

import (
	"fmt"

	"github.com/metalagman/chaosrun"
	"github.com/spf13/cobra"
)

func newEmitCmd() *cobra.Command {
	opts := &runOptions{}
	cmd := &cobra.Command{
		Use:   "emit",
		Short: "Write the reference and perturbed input decks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := buildConfig(cmd, opts)
			if err != nil {
				return err
			}

			paths, err := chaosrun.EmitConfigs(cfg.WorkDir)
			if err != nil {
				return err
			}

			for _, p := range paths {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), p)
			}

			return nil
		},
	}

	addCommonFlags(cmd, opts, false)

	return cmd
}
