package main

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/bjaus/tablehtml/internal/dataset"
)

const (
	exitOK       = 0
	exitFailure  = 1
	exitUsage    = 2
	exitCanceled = 130
)

// usageError marks an error caused by the command line itself.
type usageError struct{ err error }

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

// exitCode maps a command error to the process exit code.
func exitCode(err error) int {
	if err == nil {
		return exitOK
	}
	if errors.Is(err, context.Canceled) {
		return exitCanceled
	}
	var ue usageError
	if errors.As(err, &ue) || errors.Is(err, dataset.ErrDatasetNotFound) {
		return exitUsage
	}
	return exitFailure
}

// usageArgs wraps positional argument validation so its failures exit with
// the usage code.
func usageArgs(validate cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := validate(cmd, args); err != nil {
			return usageError{err}
		}
		return nil
	}
}
