package chaosrun

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"
)

// State is the driver's position in the run sequence.
type State string

const (
	StateNotStarted       State = "not_started"
	StateRunningReference State = "running_reference"
	StateRunningPerturbed State = "running_perturbed"
	StateDone             State = "done"
	StateFailed           State = "failed"
)

// Invocation is one engine run: the arguments appended to the engine command
// and the dump file it is expected to produce.
type Invocation struct {
	Name     string
	Args     []string
	DumpFile string
}

// Driver runs invocations one after another and stops at the first failure.
type Driver struct {
	cmd   []string
	opts  driverOptions
	state State
}

// NewDriver constructs a driver for the given engine command (for example
// []string{"lmp"} or []string{"mpirun", "-np", "4", "lmp"}). An engine given
// as a relative path is resolved against the current directory, not the work
// dir the engine runs in.
func NewDriver(cmd []string, opts ...DriverOption) (*Driver, error) {
	if len(cmd) == 0 || strings.TrimSpace(cmd[0]) == "" {
		return nil, ErrEmptyCommand
	}

	o := defaultDriverOptions()
	for _, opt := range opts {
		opt(&o)
	}

	engine, err := resolveEngine(cmd[0])
	if err != nil {
		return nil, err
	}

	resolved := append([]string{engine}, cmd[1:]...)

	return &Driver{
		cmd:   resolved,
		opts:  o,
		state: StateNotStarted,
	}, nil
}

// State returns the current state.
func (d *Driver) State() State {
	return d.state
}

// Argv returns the full command line for inv.
func (d *Driver) Argv(inv Invocation) []string {
	argv := make([]string, 0, len(d.cmd)+len(inv.Args))
	argv = append(argv, d.cmd...)

	return append(argv, inv.Args...)
}

// ManualCommands returns the shell lines that reproduce each invocation from
// the caller's directory.
func (d *Driver) ManualCommands(invs []Invocation) []string {
	prefix := ""
	if dir := d.opts.workDir; dir != "" && filepath.Clean(dir) != "." {
		prefix = "cd " + dir + " && "
	}

	lines := make([]string, 0, len(invs))
	for _, inv := range invs {
		lines = append(lines, prefix+strings.Join(d.Argv(inv), " "))
	}

	return lines
}

// Run executes invs in order. A launch failure or non-zero exit halts the
// sequence; the failure is printed once along with the manual commands for
// every invocation and returned as a *RunError.
func (d *Driver) Run(ctx context.Context, invs []Invocation) error {
	if len(invs) == 0 {
		return ErrNoInvocations
	}

	console := d.opts.console
	log := d.opts.logger

	_, _ = fmt.Fprintln(console, "Running Chaos Simulation (Periodic Boundary + External Force)...")

	for _, inv := range invs {
		d.state = runningState(inv.Name)
		_, _ = fmt.Fprintf(console, "-> Running %s...\n", displayName(inv.Name))

		argv := d.Argv(inv)
		log.Debug().Strs("argv", argv).Str("dir", d.opts.workDir).Str("run", inv.Name).Msg("engine start")

		start := time.Now()
		_, errBytes, exitCode, err := d.opts.runner.Run(
			ctx,
			argv,
			d.opts.workDir,
			WithStdout(d.opts.stdout),
			WithStderr(d.opts.stderr),
		)
		if err != nil {
			d.state = StateFailed
			runErr := &RunError{Run: inv.Name, Argv: argv, ExitCode: exitCode, Err: err}
			log.Debug().
				Err(err).
				Str("run", inv.Name).
				Int("exit_code", exitCode).
				Str("stderr_tail", tail(errBytes, 512)).
				Msg("engine failed")
			d.reportFailure(console, runErr, invs)

			return runErr
		}

		log.Debug().
			Str("run", inv.Name).
			Int("exit_code", exitCode).
			Dur("elapsed", time.Since(start)).
			Msg("engine finished")
	}

	d.state = StateDone
	d.reportSuccess(console, invs)

	return nil
}

func (d *Driver) reportSuccess(w io.Writer, invs []Invocation) {
	dumps := make([]string, 0, len(invs))
	for _, inv := range invs {
		if inv.DumpFile != "" {
			dumps = append(dumps, "'"+inv.DumpFile+"'")
		}
	}

	_, _ = fmt.Fprintf(w, "\nDONE! Files ready: %s\n", strings.Join(dumps, ", "))
}

func (d *Driver) reportFailure(w io.Writer, err error, invs []Invocation) {
	_, _ = fmt.Fprintf(w, "\nError: %v\n", err)
	_, _ = fmt.Fprintln(w, "LAMMPS manual run commands:")

	for _, line := range d.ManualCommands(invs) {
		_, _ = fmt.Fprintln(w, line)
	}
}

// RunSimulations drives the default reference/perturbed pair with cmd.
// The decks must already exist in the work dir (see EmitConfigs).
func RunSimulations(ctx context.Context, cmd []string, opts ...DriverOption) error {
	d, err := NewDriver(cmd, opts...)
	if err != nil {
		return err
	}

	return d.Run(ctx, Invocations(DefaultDecks()))
}

// IsEngineFailure reports whether err came from launching or running the
// engine rather than from setup.
func IsEngineFailure(err error) bool {
	var runErr *RunError

	return errors.As(err, &runErr)
}

func resolveEngine(engine string) (string, error) {
	if !strings.ContainsRune(engine, '/') && !strings.ContainsRune(engine, filepath.Separator) {
		return engine, nil
	}

	abs, err := filepath.Abs(engine)
	if err != nil {
		return "", fmt.Errorf("resolve engine path: %w", err)
	}

	return abs, nil
}

func runningState(name string) State {
	switch name {
	case RunReference:
		return StateRunningReference
	case RunPerturbed:
		return StateRunningPerturbed
	default:
		return State("running_" + name)
	}
}

func displayName(name string) string {
	if name == "" {
		return "run"
	}

	return strings.ToUpper(name[:1]) + name[1:]
}

func tail(b []byte, n int) string {
	if len(b) > n {
		b = b[len(b)-n:]
	}

	return strings.TrimSpace(string(b))
}
