// Package probe exposes normalized read and action primitives over a hosted music player page.
package probe

import (
	"context"
	"errors"
	"fmt"

	"github.com/samber/mo"
)

// ErrSelectorNotFound is returned when an expected control element is absent from the page.
var ErrSelectorNotFound = errors.New("selector not found")

// Action is a control a Probe can invoke on the page.
type Action int

const (
	Next Action = iota + 1
	Previous
	Play
	Pause
	StartPlaylist
)

func (a Action) String() string {
	switch a {
	case Next:
		return "next"
	case Previous:
		return "previous"
	case Play:
		return "play"
	case Pause:
		return "pause"
	case StartPlaylist:
		return "start-playlist"
	default:
		return fmt.Sprintf("action(%d)", int(a))
	}
}

// TransportState is the classified state of the player transport controls.
type TransportState int

const (
	// Unknown is reported when the controls give a contradictory reading.
	Unknown TransportState = iota

	// Loading is reported when no transport control can be located.
	Loading

	Playing
	Paused
)

func (s TransportState) String() string {
	switch s {
	case Loading:
		return "loading"
	case Playing:
		return "playing"
	case Paused:
		return "paused"
	default:
		return "unknown"
	}
}

// Probe is the capability set a driver needs from a backend.
// Read errors are transport failures (the page is gone, the context expired);
// an element that is merely absent is reported through the result instead.
type Probe interface {
	// Title reads the title of the track shown in the play bar.
	Title(ctx context.Context) (mo.Option[string], error)

	// Artist reads the artist of the track shown in the play bar.
	Artist(ctx context.Context) (mo.Option[string], error)

	// TransportState classifies the play/pause controls. It never fails on missing controls.
	TransportState(ctx context.Context) (TransportState, error)

	// Progress reads the playback position normalized to 0..100.
	Progress(ctx context.Context) (float64, error)

	// Invoke clicks the control for the action.
	// A missing control yields an error wrapping ErrSelectorNotFound.
	Invoke(ctx context.Context, action Action) error
}
