package protocol

import (
	"encoding/json"
	"fmt"

	"github.com/samber/lo"
	"github.com/samber/mo"
)

// Inbound is the wire form of a command.
type Inbound struct {
	Command Command `json:"command" jsonschema:"enum=Advance,enum=BeginPlayback,enum=LeaveSession,description=Command for the driver."`
}

// Payload carries the track of an Advanced event.
type Payload struct {
	Title  string  `json:"title" jsonschema:"description=Title of the staged track."`
	Artist *string `json:"artist,omitempty" jsonschema:"description=Artist of the staged track when the backend exposes it."`
}

// Error carries the failure of a Failed event.
type Error struct {
	Command Command `json:"command" jsonschema:"enum=Advance,enum=BeginPlayback,enum=LeaveSession,description=Command that failed."`
	Reason  Reason  `json:"reason" jsonschema:"enum=SelectorNotFound,enum=TitleNotFound,enum=Timeout,enum=ProtocolViolation,description=Failure classification."`
	Status  Status  `json:"status" jsonschema:"enum=FailedToAdvance,enum=FailedToStart,enum=FailedToLeave,description=Reason qualified by the failed command."`
}

// Outbound is the wire form of an event.
type Outbound struct {
	Event   EventKind `json:"event" jsonschema:"enum=Advanced,enum=Started,enum=TrackEnded,enum=Failed,description=Event kind."`
	Payload *Payload  `json:"payload,omitempty" jsonschema:"description=Present for Advanced events."`
	Error   *Error    `json:"error,omitempty" jsonschema:"description=Present for Failed events."`
}

// EncodeCommand marshals a command for the wire.
func EncodeCommand(command Command) ([]byte, error) {
	return json.Marshal(Inbound{Command: command})
}

// DecodeCommand parses an inbound message.
func DecodeCommand(data []byte) (Command, error) {
	var in Inbound
	if err := json.Unmarshal(data, &in); err != nil {
		return "", fmt.Errorf("decode command: %w", err)
	}

	return ParseCommand(string(in.Command))
}

// ToOutbound converts an event to its wire form.
func ToOutbound(event Event) Outbound {
	out := Outbound{Event: event.Kind}

	switch event.Kind {
	case KindAdvanced:
		out.Payload = &Payload{
			Title:  event.Track.Title,
			Artist: event.Track.Artist.ToPointer(),
		}
	case KindFailed:
		out.Error = &Error{
			Command: event.Command,
			Reason:  event.Reason,
			Status:  event.Command.Status(),
		}
	}

	return out
}

// FromOutbound converts a wire event back to an Event.
func FromOutbound(out Outbound) (Event, error) {
	if !lo.Contains(EventKinds, out.Event) {
		return Event{}, fmt.Errorf("unknown event %q", out.Event)
	}

	event := Event{Kind: out.Event}

	switch out.Event {
	case KindAdvanced:
		if out.Payload == nil || out.Payload.Title == "" {
			return Event{}, fmt.Errorf("advanced event without title")
		}

		event.Track = TrackInfo{
			Title:  out.Payload.Title,
			Artist: mo.PointerToOption(out.Payload.Artist),
		}
	case KindFailed:
		if out.Error == nil {
			return Event{}, fmt.Errorf("failed event without error")
		}

		command, err := ParseCommand(string(out.Error.Command))
		if err != nil {
			return Event{}, err
		}

		if !lo.Contains(Reasons, out.Error.Reason) {
			return Event{}, fmt.Errorf("unknown reason %q", out.Error.Reason)
		}

		event.Command = command
		event.Reason = out.Error.Reason
	}

	return event, nil
}

// EncodeEvent marshals an event for the wire.
func EncodeEvent(event Event) ([]byte, error) {
	return json.Marshal(ToOutbound(event))
}

// DecodeEvent parses an outbound message.
func DecodeEvent(data []byte) (Event, error) {
	var out Outbound
	if err := json.Unmarshal(data, &out); err != nil {
		return Event{}, fmt.Errorf("decode event: %w", err)
	}

	return FromOutbound(out)
}
