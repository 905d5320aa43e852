package chaosrun

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"

	"github.com/creack/pty"
)

// Runner executes one engine process and waits for it to exit.
type Runner interface {
	Run(ctx context.Context, argv []string, workDir string, opts ...RunOption) (outBytes, errBytes []byte, exitCode int, err error)
}

// ExecRunner runs the engine as a child process, optionally inside a
// pseudo-terminal so the engine keeps line-buffered progress output.
type ExecRunner struct {
	useTTY bool
}

// NewExecRunner constructs a runner.
func NewExecRunner(useTTY bool) *ExecRunner {
	return &ExecRunner{useTTY: useTTY}
}

func (r *ExecRunner) Run(ctx context.Context, argv []string, workDir string, opts ...RunOption) ([]byte, []byte, int, error) {
	opts = append([]RunOption{WithTTY(r.useTTY)}, opts...)

	runOpts, err := resolveRunOptions(opts)
	if err != nil {
		return nil, nil, 0, fmt.Errorf("resolve options: %w", err)
	}

	var (
		outBytes, errBytes []byte
		exitCode           int
		runErr             error
	)

	if runOpts.tty {
		outBytes, errBytes, exitCode, runErr = runCommandWithTTY(ctx, argv, workDir, runOpts.stdout)
	} else {
		outBytes, errBytes, exitCode, runErr = runCommand(ctx, argv, workDir, runOpts.stdout, runOpts.stderr)
	}

	if runErr != nil && exitCode != 0 {
		runErr = fmt.Errorf("exit code %d: %w: %w", exitCode, ErrRunFailed, runErr)
	}

	return outBytes, errBytes, exitCode, runErr
}

func runCommand(
	ctx context.Context,
	argv []string,
	workDir string,
	stdoutSink io.Writer,
	stderrSink io.Writer,
) ([]byte, []byte, int, error) {
	if len(argv) == 0 {
		return nil, nil, 0, ErrEmptyCommand
	}

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Dir = workDir

	var (
		stdout bytes.Buffer
		stderr bytes.Buffer
	)

	if stdoutSink != nil {
		cmd.Stdout = io.MultiWriter(&stdout, stdoutSink)
	} else {
		cmd.Stdout = &stdout
	}

	if stderrSink != nil {
		cmd.Stderr = io.MultiWriter(&stderr, stderrSink)
	} else {
		cmd.Stderr = &stderr
	}

	if err := cmd.Start(); err != nil {
		return nil, nil, 0, fmt.Errorf("%w: %v", ErrLaunchFailed, err)
	}

	if err := cmd.Wait(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return stdout.Bytes(), stderr.Bytes(), exitErr.ExitCode(), err
		}

		return stdout.Bytes(), stderr.Bytes(), 0, fmt.Errorf("cmd wait: %w", err)
	}

	return stdout.Bytes(), stderr.Bytes(), 0, nil
}

func runCommandWithTTY(
	ctx context.Context,
	argv []string,
	workDir string,
	stdoutSink io.Writer,
) ([]byte, []byte, int, error) {
	if len(argv) == 0 {
		return nil, nil, 0, ErrEmptyCommand
	}

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Dir = workDir

	ptmx, err := pty.Start(cmd)
	if err != nil {
		return nil, nil, 0, fmt.Errorf("%w: start pty: %v", ErrLaunchFailed, err)
	}

	var out bytes.Buffer

	var outWriter io.Writer = &out
	if stdoutSink != nil {
		outWriter = io.MultiWriter(&out, stdoutSink)
	}

	done := make(chan error, 1)

	go func() {
		_, err := io.Copy(outWriter, ptmx)
		done <- err
	}()

	err = cmd.Wait()
	_ = ptmx.Close()

	<-done

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return out.Bytes(), nil, exitErr.ExitCode(), err
		}

		return out.Bytes(), nil, 0, fmt.Errorf("cmd wait: %w", err)
	}

	return out.Bytes(), nil, 0, nil
}
