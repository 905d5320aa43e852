package main

import (
	"github.com/metalagman/chaosrun"
	"github.com/spf13/cobra"
)

type runOptions struct {
	configFile string
	lmp        string
	extraArgs  []string
	workDir    string
	useTTY     bool
	debug      bool
}

func addCommonFlags(cmd *cobra.Command, opts *runOptions, includeEngine bool) {
	cmd.Flags().StringVar(&opts.configFile, "config", "", "path to a YAML run plan")
	cmd.Flags().StringVar(&opts.workDir, "work-dir", ".", "directory for decks and dumps")

	if includeEngine {
		cmd.Flags().StringVar(&opts.lmp, "lmp", chaosrun.DefaultExecutable, "engine executable")
		cmd.Flags().StringArrayVar(&opts.extraArgs, "extra-args", nil, "extra args placed before -in")
	}
}

// addExecFlags registers flags that only matter when the engine is started.
func addExecFlags(cmd *cobra.Command, opts *runOptions) {
	cmd.Flags().BoolVar(&opts.useTTY, "tty", false, "run the engine in a pseudo-terminal")
	cmd.Flags().BoolVar(&opts.debug, "debug", false, "log engine start/exit details to stderr")
}

// buildConfig layers flags that were set explicitly over the run plan file
// (or the defaults when no file is given).
func buildConfig(cmd *cobra.Command, opts *runOptions) (chaosrun.Config, error) {
	cfg := chaosrun.DefaultConfig()

	if opts.configFile != "" {
		loaded, err := chaosrun.LoadConfig(opts.configFile)
		if err != nil {
			return chaosrun.Config{}, err
		}

		cfg = loaded
	}

	flags := cmd.Flags()

	if flags.Changed("lmp") {
		cfg.Cmd = []string{opts.lmp}
	}

	if len(opts.extraArgs) > 0 {
		cfg.Cmd = append(append([]string(nil), cfg.Cmd...), opts.extraArgs...)
	}

	if flags.Changed("work-dir") {
		cfg.WorkDir = opts.workDir
	}

	if flags.Changed("tty") {
		cfg.UseTTY = opts.useTTY
	}

	if opts.debug {
		cfg.LogLevel = "debug"
	}

	if cfg.WorkDir == "" {
		cfg.WorkDir = "."
	}

	return cfg, nil
}
