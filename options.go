package chaosrun

import (
	"io"

	"github.com/rs/zerolog"
)

//go:generate go tool options-gen -from-struct=RunOptions -out-filename=options_generated.go -defaults-from=func=defaultRunOptions

// RunOptions defines how a single engine process is attached to the console.
type RunOptions struct {
	stdout io.Writer `validate:"required"`
	stderr io.Writer `validate:"required"`
	tty    bool
}

// RunOption configures runtime behavior for one engine invocation.
type RunOption = OptRunOptionsSetter

// WithTTY enables or disables pseudo-terminal execution.
func WithTTY(enabled bool) RunOption {
	return WithTty(enabled)
}

func resolveRunOptions(opts []RunOption) (RunOptions, error) {
	out := NewRunOptions(opts...)
	if err := out.Validate(); err != nil {
		return RunOptions{}, err
	}

	return out, nil
}

func defaultRunOptions() RunOptions {
	return RunOptions{
		stdout: io.Discard,
		stderr: io.Discard,
		tty:    false,
	}
}

type driverOptions struct {
	runner  Runner
	console io.Writer
	stdout  io.Writer
	stderr  io.Writer
	logger  zerolog.Logger
	workDir string
}

// DriverOption configures a Driver.
type DriverOption func(*driverOptions)

// WithRunner replaces the process runner.
func WithRunner(r Runner) DriverOption {
	return func(o *driverOptions) { o.runner = r }
}

// WithConsole sets where progress and failure reports are printed.
func WithConsole(w io.Writer) DriverOption {
	return func(o *driverOptions) { o.console = w }
}

// WithEngineOutput sets where engine stdout and stderr are forwarded.
func WithEngineOutput(stdout, stderr io.Writer) DriverOption {
	return func(o *driverOptions) {
		o.stdout = stdout
		o.stderr = stderr
	}
}

// WithLogger sets the diagnostics logger.
func WithLogger(l zerolog.Logger) DriverOption {
	return func(o *driverOptions) { o.logger = l }
}

// WithWorkDir sets the directory the engine runs in.
func WithWorkDir(dir string) DriverOption {
	return func(o *driverOptions) { o.workDir = dir }
}

func defaultDriverOptions() driverOptions {
	return driverOptions{
		runner:  NewExecRunner(false),
		console: io.Discard,
		stdout:  io.Discard,
		stderr:  io.Discard,
		logger:  zerolog.Nop(),
		workDir: ".",
	}
}
