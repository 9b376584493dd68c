package task

import (
	"errors"
	"fmt"
)

var ErrNotFound = errors.New("task not found")

// ValidationError reports the first field of a candidate that violates the
// task invariants. It is surfaced back through the form, never fatal.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// PersistenceError wraps a failure of the underlying local store. On save the
// in-memory mutation is kept; the app keeps running without durability.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence %s failed: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
