package cli

import (
	"errors"
	"fmt"
)

// reportedError wraps an error that has already been written to stderr.
type reportedError struct {
	err error
}

func (e reportedError) Error() string { return e.err.Error() }

func (e reportedError) Unwrap() error { return e.err }

// Reported reports whether err was already printed by a command.
func Reported(err error) bool {
	var r reportedError
	return errors.As(err, &r)
}

type confirmRequiredError struct {
	action string
}

func (e confirmRequiredError) Error() string {
	return fmt.Sprintf("%s needs confirmation: re-run with --yes", e.action)
}

func errConfirmRequired(action string) error {
	return confirmRequiredError{action: action}
}
