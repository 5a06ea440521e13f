package driver

import (
	"context"
	"errors"
	"fmt"

	"github.com/hostplay/hostplay/log"
	"github.com/hostplay/hostplay/probe"
	"github.com/hostplay/hostplay/protocol"
)

func (d *Driver) advance(ctx context.Context) (track protocol.TrackInfo, err error) {
	const command = protocol.Advance

	d.setState(AwaitingAdvance)
	defer func() {
		if err != nil {
			d.setState(Idle)
		} else {
			d.setState(Stopped)
		}
	}()

	// the play bar shows a title iff a playlist is loaded
	title, err := d.probe.Title(ctx)
	if err != nil {
		return protocol.TrackInfo{}, failed(command, err)
	}

	started := false
	if title.IsAbsent() {
		log.Info("play bar not ready, starting playlist")
		if err := d.startPlaylist(ctx, command); err != nil {
			return protocol.TrackInfo{}, err
		}
		started = true
	} else {
		state, err := d.probe.TransportState(ctx)
		if err != nil {
			return protocol.TrackInfo{}, failed(command, err)
		}

		if state == probe.Playing {
			if err := d.invoke(ctx, command, probe.Pause); err != nil {
				return protocol.TrackInfo{}, err
			}

			if err := sleep(ctx, d.config.AfterPauseDelay); err != nil {
				return protocol.TrackInfo{}, err
			}
		}
	}

	return d.policy.advance(ctx, d, started)
}

// startPlaylist starts the backend playlist from scratch and pauses its first track.
func (d *Driver) startPlaylist(ctx context.Context, command protocol.Command) error {
	if err := d.invoke(ctx, command, probe.StartPlaylist); err != nil {
		return err
	}

	err := poll(ctx, d.config.PollRounds, d.config.PollInterval, func(ctx context.Context) (bool, error) {
		title, err := d.probe.Title(ctx)
		if err != nil || title.IsAbsent() {
			return false, err
		}

		state, err := d.probe.TransportState(ctx)
		return state == probe.Playing, err
	})
	if err != nil {
		return failed(command, fmt.Errorf("waiting for playlist to start: %w", err))
	}

	if err := d.convergePaused(ctx, command, d.config.PollRounds); err != nil {
		return err
	}

	return sleep(ctx, d.config.AfterPauseDelay)
}

func (d *Driver) begin(ctx context.Context) (err error) {
	const command = protocol.BeginPlayback

	if state := d.State(); state != Stopped {
		return fail(command, protocol.ProtocolViolation, fmt.Errorf("no staged track, session is %s", state))
	}

	d.setState(AwaitingStart)
	defer func() {
		if err != nil {
			d.setState(Stopped)
		} else {
			d.setState(Playing)
		}
	}()

	state, err := d.probe.TransportState(ctx)
	if err != nil {
		return failed(command, err)
	}

	if state != probe.Paused {
		return fail(command, protocol.ProtocolViolation, fmt.Errorf("expected paused player, got %s", state))
	}

	return d.policy.begin(ctx, d)
}

// leave pauses a playing track and resets the session.
func (d *Driver) leave(ctx context.Context) error {
	const command = protocol.LeaveSession

	d.watchdog.Disarm()
	defer d.setState(Idle)

	state, err := d.probe.TransportState(ctx)
	if err != nil {
		return failed(command, err)
	}

	if state != probe.Playing {
		return nil
	}

	return d.invoke(ctx, command, probe.Pause)
}

// invoke clicks the control for action, failing the command when it is missing.
func (d *Driver) invoke(ctx context.Context, command protocol.Command, action probe.Action) error {
	if err := d.probe.Invoke(ctx, action); err != nil {
		return failed(command, err)
	}

	return nil
}

// pauseQuietly pauses a playing track, ignoring every error.
func (d *Driver) pauseQuietly(ctx context.Context) {
	state, err := d.probe.TransportState(ctx)
	if err != nil || state != probe.Playing {
		return
	}

	if err := d.probe.Invoke(ctx, probe.Pause); err != nil {
		log.Warnf("best-effort pause: %s", err)
	}
}

// convergePaused clicks pause and polls until the player reports Paused,
// clicking again every round it still plays.
func (d *Driver) convergePaused(ctx context.Context, command protocol.Command, rounds int) error {
	if err := d.invoke(ctx, command, probe.Pause); err != nil {
		return err
	}

	err := poll(ctx, rounds, d.config.PollInterval, func(ctx context.Context) (bool, error) {
		state, err := d.probe.TransportState(ctx)
		if err != nil {
			return false, err
		}

		switch state {
		case probe.Paused:
			return true, nil
		case probe.Playing:
			return false, d.probe.Invoke(ctx, probe.Pause)
		default:
			return false, nil
		}
	})
	if err != nil {
		return failed(command, fmt.Errorf("waiting for pause: %w", err))
	}

	return nil
}

// convergePlaying clicks action and polls until the player reports Playing.
// With reclick the action is repeated every round the player is still paused.
func (d *Driver) convergePlaying(ctx context.Context, command protocol.Command, action probe.Action, reclick bool) error {
	if err := d.invoke(ctx, command, action); err != nil {
		return err
	}

	err := poll(ctx, d.config.PollRounds, d.config.PollInterval, func(ctx context.Context) (bool, error) {
		state, err := d.probe.TransportState(ctx)
		if err != nil {
			return false, err
		}

		if state == probe.Paused && reclick {
			return false, d.probe.Invoke(ctx, action)
		}

		return state == probe.Playing, nil
	})
	if err != nil {
		return failed(command, fmt.Errorf("waiting for playback: %w", err))
	}

	return nil
}

// confirmMovement clicks action and samples progress until enough distinct
// readings prove the player moved, retrying the click up to attempts times.
// The reading taken before the click seeds the sample set, so with a
// distinct threshold of 4 only 3 readings after the click are needed.
func (d *Driver) confirmMovement(ctx context.Context, command protocol.Command, action probe.Action, attempts int) error {
	for attempt := 1; attempt <= attempts; attempt++ {
		m := newMovement(d.config.MovementDistinct)

		before, err := d.probe.Progress(ctx)
		switch {
		case errors.Is(err, probe.ErrSelectorNotFound):
			return failed(command, err)
		case err == nil:
			m.Observe(before)
		}

		if err := d.invoke(ctx, command, action); err != nil {
			return err
		}

		err = poll(ctx, d.config.MovementRounds, d.config.MovementInterval, func(ctx context.Context) (bool, error) {
			progress, err := d.probe.Progress(ctx)
			if err != nil {
				return false, err
			}

			return m.Observe(progress), nil
		})

		if err == nil {
			log.Debugf("%s confirmed after %d distinct readings", action, m.Distinct())
			return nil
		}

		if !errors.Is(err, errExhausted) {
			return failed(command, err)
		}

		log.Warnf("%s attempt %d/%d: only %d distinct readings", action, attempt, attempts, m.Distinct())
	}

	return fail(command, protocol.Timeout, fmt.Errorf("%s: progress did not move", action))
}
