package driver

import (
	"context"
	"fmt"

	"github.com/hostplay/hostplay/log"
	"github.com/hostplay/hostplay/probe"
	"github.com/hostplay/hostplay/protocol"
	"github.com/samber/lo"
	"github.com/samber/mo"
)

// Family is the advance behavior of a backend.
type Family string

const (
	// Direct backends move to the next track when next is clicked, confirmed by a title change.
	Direct Family = "direct"

	// Peek backends start the next track audibly on next. The driver captures its
	// metadata, steps back and pauses, deferring the forward move to BeginPlayback.
	Peek Family = "peek"

	// PeekArtist is Peek on a backend that also exposes the artist.
	PeekArtist Family = "peek-artist"
)

// Families lists every supported family.
var Families = []Family{Direct, Peek, PeekArtist}

// ParseFamily resolves a family name.
func ParseFamily(raw string) (Family, error) {
	family := Family(raw)
	if !lo.Contains(Families, family) {
		return "", fmt.Errorf("unknown family %q, expected one of %v", raw, Families)
	}

	return family, nil
}

func (f Family) policy() policy {
	switch f {
	case Peek:
		return peekPolicy{}
	case PeekArtist:
		return peekPolicy{artist: true}
	default:
		return directPolicy{}
	}
}

// policy is the per family part of the advance and start protocols.
type policy interface {
	// advance stages the next track, leaving the player paused.
	// started is set when the playlist was just started and the play bar shows its first track.
	advance(ctx context.Context, d *Driver, started bool) (protocol.TrackInfo, error)

	// begin plays the staged track.
	begin(ctx context.Context, d *Driver) error
}

type directPolicy struct{}

func (directPolicy) advance(ctx context.Context, d *Driver, started bool) (protocol.TrackInfo, error) {
	const command = protocol.Advance

	if !started {
		before, err := d.probe.Title(ctx)
		if err != nil {
			return protocol.TrackInfo{}, failed(command, err)
		}

		if err := d.invoke(ctx, command, probe.Next); err != nil {
			return protocol.TrackInfo{}, err
		}

		err = poll(ctx, d.config.PollRounds, d.config.PollInterval, func(ctx context.Context) (bool, error) {
			title, err := d.probe.Title(ctx)
			return title.OrEmpty() != before.OrEmpty(), err
		})
		if err != nil {
			return protocol.TrackInfo{}, failed(command, fmt.Errorf("waiting for title change: %w", err))
		}
	}

	track, err := d.readTrack(ctx, command, true)
	if err != nil {
		return protocol.TrackInfo{}, err
	}

	state, err := d.probe.TransportState(ctx)
	if err != nil {
		return protocol.TrackInfo{}, failed(command, err)
	}

	if state == probe.Playing {
		if err := d.convergePaused(ctx, command, d.config.PollRounds); err != nil {
			return protocol.TrackInfo{}, err
		}
	}

	return track, nil
}

func (directPolicy) begin(ctx context.Context, d *Driver) error {
	return d.convergePlaying(ctx, protocol.BeginPlayback, probe.Play, true)
}

type peekPolicy struct {
	artist bool
}

func (p peekPolicy) advance(ctx context.Context, d *Driver, _ bool) (protocol.TrackInfo, error) {
	const command = protocol.Advance

	if err := d.confirmMovement(ctx, command, probe.Next, d.config.MovementAttempts); err != nil {
		return protocol.TrackInfo{}, err
	}

	track, err := d.readTrack(ctx, command, p.artist)
	if err != nil {
		d.pauseQuietly(ctx)
		return protocol.TrackInfo{}, err
	}

	log.Debugf("peeked %q, rewinding", track)

	if err := d.confirmMovement(ctx, command, probe.Previous, 1); err != nil {
		return protocol.TrackInfo{}, err
	}

	if err := d.convergePaused(ctx, command, d.config.PauseRounds); err != nil {
		return protocol.TrackInfo{}, err
	}

	return track, nil
}

func (peekPolicy) begin(ctx context.Context, d *Driver) error {
	return d.convergePlaying(ctx, protocol.BeginPlayback, probe.Next, false)
}

// readTrack reads the play bar metadata. An absent title fails with TitleNotFound.
func (d *Driver) readTrack(ctx context.Context, command protocol.Command, withArtist bool) (protocol.TrackInfo, error) {
	title, err := d.probe.Title(ctx)
	if err != nil {
		return protocol.TrackInfo{}, failed(command, err)
	}

	value, ok := title.Get()
	if !ok {
		return protocol.TrackInfo{}, fail(command, protocol.TitleNotFound, nil)
	}

	track := protocol.TrackInfo{Title: value, Artist: mo.None[string]()}
	if !withArtist {
		return track, nil
	}

	artist, err := d.probe.Artist(ctx)
	if err != nil {
		log.Warnf("reading artist: %s", err)
		return track, nil
	}

	track.Artist = artist
	return track, nil
}
