package store

import (
	"errors"
	"fmt"
)

// ValidationError reports a missing or ill-formed input field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Reason == "" {
		return "please fill in all fields: " + e.Field + " is required"
	}
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// DuplicateTaskError reports that a task with the same name, date and time
// already exists.
type DuplicateTaskError struct {
	Name string
	Date string
	Time string
}

func (e *DuplicateTaskError) Error() string {
	return fmt.Sprintf("this task already exists: %q on %s %s", e.Name, e.Date, e.Time)
}

type NotFoundError struct {
	Ref string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("task not found: %s", e.Ref)
}

// IsUserError reports whether err is a notice for the user (bad input or an
// unknown task) rather than a storage failure.
func IsUserError(err error) bool {
	var ve *ValidationError
	var de *DuplicateTaskError
	var nf *NotFoundError
	return errors.As(err, &ve) || errors.As(err, &de) || errors.As(err, &nf)
}
