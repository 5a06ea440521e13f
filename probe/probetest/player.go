// Package probetest provides a simulated player implementing probe.Probe.
package probetest

import (
	"context"
	"fmt"
	"sync"

	"github.com/hostplay/hostplay/probe"
	"github.com/samber/lo"
	"github.com/samber/mo"
)

// Track is a playlist entry of the simulated player.
type Track struct {
	Title  string
	Artist string
}

// Player simulates a hosted player. Progress advances by Step on every read while playing.
type Player struct {
	mu sync.Mutex

	tracks   []Track
	index    int
	playing  bool
	progress float64
	invoked  []probe.Action

	// Step is the progress increment per read while playing.
	Step float64

	// NextPlays makes next and previous start playback, as peek-and-rewind backends do.
	NextPlays bool

	// Missing lists actions whose control cannot be located.
	Missing map[probe.Action]bool

	// HideTitle makes the title element absent once the playlist has moved past its first track.
	HideTitle bool

	// ShowArtist exposes the artist element.
	ShowArtist bool

	// Frozen makes every click a no-op.
	Frozen bool

	// PauseLag is the number of pause clicks ignored before one takes effect.
	PauseLag int

	// ReadErr fails every read.
	ReadErr error
}

// NewPlayer creates a paused player positioned on the first track.
func NewPlayer(titles ...string) *Player {
	return &Player{
		tracks: lo.Map(titles, func(title string, _ int) Track {
			return Track{Title: title, Artist: "Artist " + title}
		}),
		Step:    3,
		Missing: make(map[probe.Action]bool),
	}
}

// Unready hides the play bar until the playlist is started.
func (p *Player) Unready() *Player {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.index = -1
	return p
}

// Index is the current playlist position, -1 before the playlist starts.
func (p *Player) Index() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.index
}

// Playing reports whether the simulated audio is running.
func (p *Player) Playing() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.playing
}

// SetPlaying forces the transport state.
func (p *Player) SetPlaying(playing bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.playing = playing
}

// SetStep changes the progress increment per read.
func (p *Player) SetStep(step float64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.Step = step
}

// SetProgress forces the progress reading.
func (p *Player) SetProgress(progress float64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.progress = progress
}

// Invoked returns every action clicked so far.
func (p *Player) Invoked() []probe.Action {
	p.mu.Lock()
	defer p.mu.Unlock()

	return append([]probe.Action(nil), p.invoked...)
}

// Count returns how many times the action was clicked.
func (p *Player) Count(action probe.Action) int {
	return lo.Count(p.Invoked(), action)
}

func (p *Player) Title(context.Context) (mo.Option[string], error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.ReadErr != nil {
		return mo.None[string](), p.ReadErr
	}

	if p.index < 0 || p.index >= len(p.tracks) || (p.HideTitle && p.index > 0) {
		return mo.None[string](), nil
	}

	return mo.Some(p.tracks[p.index].Title), nil
}

func (p *Player) Artist(context.Context) (mo.Option[string], error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.ReadErr != nil {
		return mo.None[string](), p.ReadErr
	}

	if !p.ShowArtist || p.index < 0 || p.index >= len(p.tracks) {
		return mo.None[string](), nil
	}

	return mo.Some(p.tracks[p.index].Artist), nil
}

func (p *Player) TransportState(context.Context) (probe.TransportState, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.ReadErr != nil {
		return probe.Unknown, p.ReadErr
	}

	switch {
	case p.index < 0:
		return probe.Loading, nil
	case p.playing:
		return probe.Playing, nil
	default:
		return probe.Paused, nil
	}
}

func (p *Player) Progress(context.Context) (float64, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.ReadErr != nil {
		return 0, p.ReadErr
	}

	if p.playing {
		p.progress = min(p.progress+p.Step, 100)
	}

	return p.progress, nil
}

func (p *Player) Invoke(_ context.Context, action probe.Action) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.Missing[action] {
		return fmt.Errorf("%s: %w", action, probe.ErrSelectorNotFound)
	}

	p.invoked = append(p.invoked, action)
	if p.Frozen {
		return nil
	}

	switch action {
	case probe.Next:
		if p.index < len(p.tracks)-1 {
			p.index++
		}
		p.progress = 0
		p.playing = p.playing || p.NextPlays
	case probe.Previous:
		p.index = max(p.index-1, 0)
		p.progress = 0
		p.playing = p.playing || p.NextPlays
	case probe.Play:
		p.playing = true
	case probe.Pause:
		if p.PauseLag > 0 {
			p.PauseLag--
			return nil
		}
		p.playing = false
	case probe.StartPlaylist:
		p.index = 0
		p.progress = 0
		p.playing = true
	}

	return nil
}
