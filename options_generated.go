package chaosrun

import (
	"errors"
	"io"
)

type OptRunOptionsSetter func(o *RunOptions)

func NewRunOptions(
	options ...OptRunOptionsSetter,
) RunOptions {
	o := defaultRunOptions()

	for _, opt := range options {
		opt(&o)
	}

	return o
}

func WithStdout(opt io.Writer) OptRunOptionsSetter {
	return func(o *RunOptions) { o.stdout = opt }
}

func WithStderr(opt io.Writer) OptRunOptionsSetter {
	return func(o *RunOptions) { o.stderr = opt }
}

func WithTty(opt bool) OptRunOptionsSetter {
	return func(o *RunOptions) { o.tty = opt }
}

func (o *RunOptions) Validate() error {
	var errs []error
	if o.stdout == nil {
		errs = append(errs, errors.New("stdout: required"))
	}

	if o.stderr == nil {
		errs = append(errs, errors.New("stderr: required"))
	}

	return errors.Join(errs...)
}
