package driver

import (
	"context"
	"errors"
	"fmt"

	"github.com/hostplay/hostplay/protocol"
)

// ErrClosed is returned when submitting to a driver that has stopped running.
var ErrClosed = errors.New("driver closed")

// errExhausted is returned by a poll loop whose condition never held.
var errExhausted = errors.New("poll budget exhausted")

// CommandError is a command failure. It maps one to one to a Failed event.
type CommandError struct {
	Command protocol.Command
	Reason  protocol.Reason
	Err     error
}

func (e *CommandError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Command.Status(), e.Reason)
	}

	return fmt.Sprintf("%s: %s: %s", e.Command.Status(), e.Reason, e.Err)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// Event returns the Failed event reporting the error.
func (e *CommandError) Event() protocol.Event {
	return protocol.Failed(e.Command, e.Reason)
}

func fail(command protocol.Command, reason protocol.Reason, err error) *CommandError {
	return &CommandError{Command: command, Reason: reason, Err: err}
}

// failed wraps err into a CommandError, classifying its reason.
// Read failures of the page count as a missing element.
func failed(command protocol.Command, err error) error {
	var cerr *CommandError
	if errors.As(err, &cerr) {
		return err
	}

	switch {
	case errors.Is(err, context.Canceled):
		return err
	case errors.Is(err, errExhausted), errors.Is(err, context.DeadlineExceeded):
		return fail(command, protocol.Timeout, err)
	default:
		return fail(command, protocol.SelectorNotFound, err)
	}
}
