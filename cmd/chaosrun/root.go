package main

import "github.com/spf13/cobra"

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "chaosrun",
		Short:         "Emit a reference/perturbed LAMMPS deck pair and run both",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newEmitCmd())
	root.AddCommand(newRunCmd())
	root.AddCommand(newManualCmd())

	return root
}
