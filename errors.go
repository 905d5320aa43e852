package chaosrun

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrWriteDeck indicates an input deck could not be written.
	ErrWriteDeck = errors.New("write deck")
	// ErrEmptyCommand indicates no engine command was configured.
	ErrEmptyCommand = errors.New("engine command is empty")
	// ErrNoInvocations indicates Run was called with nothing to run.
	ErrNoInvocations = errors.New("no invocations to run")
	// ErrLaunchFailed indicates the engine could not be started.
	ErrLaunchFailed = errors.New("engine launch failed")
	// ErrRunFailed indicates the engine exited with a non-zero code.
	ErrRunFailed = errors.New("engine run failed")
	// ErrConfigInvalid indicates the run plan does not satisfy its schema.
	ErrConfigInvalid = errors.New("config does not match schema")
)

// RunError reports which invocation stopped the sequence.
type RunError struct {
	Run      string
	Argv     []string
	ExitCode int
	Err      error
}

func (e *RunError) Error() string {
	return fmt.Sprintf("%s run (%s): %v", e.Run, strings.Join(e.Argv, " "), e.Err)
}

func (e *RunError) Unwrap() error {
	return e.Err
}
