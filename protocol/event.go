package protocol

import (
	"fmt"

	"github.com/samber/mo"
)

// EventKind identifies the variant of an Event.
type EventKind string

const (
	KindAdvanced   EventKind = "Advanced"
	KindStarted    EventKind = "Started"
	KindTrackEnded EventKind = "TrackEnded"
	KindFailed     EventKind = "Failed"
)

// EventKinds lists every event variant.
var EventKinds = []EventKind{KindAdvanced, KindStarted, KindTrackEnded, KindFailed}

// TrackInfo describes a track as shown by the hosted player.
type TrackInfo struct {
	Title  string
	Artist mo.Option[string]
}

func (t TrackInfo) String() string {
	if artist, ok := t.Artist.Get(); ok {
		return fmt.Sprintf("%s - %s", artist, t.Title)
	}

	return t.Title
}

// Event is a notification sent by a driver to the controller.
// Track is set only for Advanced, Command and Reason only for Failed.
type Event struct {
	Kind    EventKind
	Track   TrackInfo
	Command Command
	Reason  Reason
}

// Advanced reports a staged track. The title is always present.
func Advanced(track TrackInfo) Event {
	return Event{Kind: KindAdvanced, Track: track}
}

// Started reports that the staged track is now playing.
func Started() Event {
	return Event{Kind: KindStarted}
}

// TrackEnded reports that the playing track reached its end.
func TrackEnded() Event {
	return Event{Kind: KindTrackEnded}
}

// Failed reports that a command could not be completed.
func Failed(command Command, reason Reason) Event {
	return Event{Kind: KindFailed, Command: command, Reason: reason}
}

func (e Event) String() string {
	switch e.Kind {
	case KindAdvanced:
		return fmt.Sprintf("%s(%s)", e.Kind, e.Track)
	case KindFailed:
		return fmt.Sprintf("%s(%s, %s)", e.Kind, e.Command, e.Reason)
	default:
		return string(e.Kind)
	}
}
