// Package protocol defines the messages exchanged between a controller and a driver.
package protocol

import (
	"fmt"
)

// Command is an instruction sent by the controller to a driver. Commands carry no payload.
type Command string

const (
	Advance       Command = "Advance"
	BeginPlayback Command = "BeginPlayback"
	LeaveSession  Command = "LeaveSession"
)

// Commands lists every valid command in protocol order.
var Commands = []Command{Advance, BeginPlayback, LeaveSession}

// ParseCommand resolves a raw command name.
func ParseCommand(raw string) (Command, error) {
	for _, c := range Commands {
		if string(c) == raw {
			return c, nil
		}
	}

	return "", fmt.Errorf("unknown command %q", raw)
}

func (c Command) String() string {
	return string(c)
}

// Status is the per-command qualification of a failure.
func (c Command) Status() Status {
	switch c {
	case Advance:
		return FailedToAdvance
	case BeginPlayback:
		return FailedToStart
	case LeaveSession:
		return FailedToLeave
	default:
		return ""
	}
}

// Reason classifies why a command failed.
type Reason string

const (
	// SelectorNotFound means an expected control element is absent.
	SelectorNotFound Reason = "SelectorNotFound"

	// TitleNotFound means the track title could not be read when it was required.
	TitleNotFound Reason = "TitleNotFound"

	// Timeout means an awaited condition never converged within its poll budget.
	Timeout Reason = "Timeout"

	// ProtocolViolation means the command was issued from a state that does not allow it.
	ProtocolViolation Reason = "ProtocolViolation"
)

// Reasons lists every failure reason.
var Reasons = []Reason{SelectorNotFound, TitleNotFound, Timeout, ProtocolViolation}

func (r Reason) String() string {
	return string(r)
}

// Status is a failure reason qualified by the command that produced it.
type Status string

const (
	FailedToAdvance Status = "FailedToAdvance"
	FailedToStart   Status = "FailedToStart"
	FailedToLeave   Status = "FailedToLeave"
)
