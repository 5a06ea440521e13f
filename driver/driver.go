// Package driver turns the unreliable UI surface of a hosted player into the
// Advance / BeginPlayback / LeaveSession protocol.
package driver

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/hostplay/hostplay/log"
	"github.com/hostplay/hostplay/probe"
	"github.com/hostplay/hostplay/protocol"
	"github.com/hostplay/hostplay/watchdog"
)

// shutdownTimeout bounds the best-effort pause issued when the driver stops.
const shutdownTimeout = 2 * time.Second

type envelope struct {
	command    protocol.Command
	generation uint64
}

// Driver services commands one at a time against a probe.
//
// Commands are queued by Submit and executed by Run, which is also the only
// goroutine touching the probe and the watchdog. LeaveSession preempts:
// it cancels the command in flight and every command queued before it is dropped.
type Driver struct {
	probe    probe.Probe
	family   Family
	policy   policy
	config   Config
	watchdog *watchdog.Watchdog

	queue  chan envelope
	events chan protocol.Event
	done   chan struct{}
	once   sync.Once

	mu         sync.Mutex
	state      State
	generation uint64
	cancel     context.CancelFunc
}

// New creates a driver for a backend of the given family.
func New(p probe.Probe, family Family, config Config) *Driver {
	config = config.normalized()

	return &Driver{
		probe:    p,
		family:   family,
		policy:   family.policy(),
		config:   config,
		watchdog: watchdog.New(p, config.WatchdogInterval, config.WatchdogThreshold),
		queue:    make(chan envelope, config.QueueSize),
		events:   make(chan protocol.Event, config.QueueSize),
		done:     make(chan struct{}),
		state:    Idle,
	}
}

// Family returns the backend family the driver was created for.
func (d *Driver) Family() Family {
	return d.family
}

// State returns the current session state.
func (d *Driver) State() State {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.state
}

func (d *Driver) setState(state State) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.state != state {
		log.Debugf("session %s -> %s", d.state, state)
	}
	d.state = state
}

// Events delivers the events emitted by the driver. It is closed when Run returns.
func (d *Driver) Events() <-chan protocol.Event {
	return d.events
}

// Done is closed when Run returns.
func (d *Driver) Done() <-chan struct{} {
	return d.done
}

// Submit queues a command. It blocks while the queue is full.
func (d *Driver) Submit(ctx context.Context, command protocol.Command) error {
	select {
	case <-d.done:
		return ErrClosed
	default:
	}

	d.mu.Lock()
	if command == protocol.LeaveSession {
		d.generation++
		if d.cancel != nil {
			log.Infof("cancelling command in flight")
			d.cancel()
		}
	}
	env := envelope{command: command, generation: d.generation}
	d.mu.Unlock()

	select {
	case d.queue <- env:
		return nil
	case <-d.done:
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Run executes queued commands and watchdog ticks until ctx is done.
// On return the watchdog is disarmed, a playing track is paused and Events is closed.
func (d *Driver) Run(ctx context.Context) error {
	started := false
	d.once.Do(func() { started = true })
	if !started {
		return errors.New("driver is already running")
	}

	defer close(d.done)
	defer close(d.events)

	log.Infof("driver running, family %s", d.family)

	for {
		// select picks randomly among ready cases, so a cancelled context
		// must win over a full queue
		if ctx.Err() != nil {
			d.drain()
			d.shutdown()
			return ctx.Err()
		}

		select {
		case <-ctx.Done():
			d.drain()
			d.shutdown()
			return ctx.Err()
		case env := <-d.queue:
			if ctx.Err() != nil {
				log.Infof("dropping %s received while stopping", env.command)
				continue
			}
			d.handle(ctx, env)
		case <-d.watchdog.C():
			d.tick(ctx)
		}
	}
}

// drain discards every queued command without executing it.
func (d *Driver) drain() {
	for {
		select {
		case env := <-d.queue:
			log.Infof("dropping %s received while stopping", env.command)
		default:
			return
		}
	}
}

func (d *Driver) shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	log.Info("driver stopping")
	if err := d.leave(ctx); err != nil {
		log.Warnf("pausing on shutdown: %s", err)
	}
}

func (d *Driver) handle(ctx context.Context, env envelope) {
	// a live watchdog must never race the command below
	d.watchdog.Disarm()

	cmdCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	d.mu.Lock()
	if env.command != protocol.LeaveSession && env.generation != d.generation {
		d.mu.Unlock()
		log.Infof("dropping %s queued before LeaveSession", env.command)
		d.syncWatchdog()
		return
	}
	d.cancel = cancel
	d.mu.Unlock()

	defer func() {
		d.mu.Lock()
		d.cancel = nil
		d.mu.Unlock()
	}()

	logger := log.WithField("command", env.command)
	logger.Infof("handling %s in state %s", env.command, d.State())

	event, err := d.execute(cmdCtx, env.command)

	switch {
	case err == nil:
	case cmdCtx.Err() != nil:
		logger.Infof("%s cancelled", env.command)
		d.setState(Idle)
		d.syncWatchdog()
		return
	default:
		var cerr *CommandError
		if !errors.As(failed(env.command, err), &cerr) {
			cerr = fail(env.command, protocol.SelectorNotFound, err)
		}

		logger.Warnf("%s", cerr)
		event = cerr.Event()
	}

	d.syncWatchdog()

	if event.Kind != "" {
		d.emit(cmdCtx, event)
	}
}

func (d *Driver) execute(ctx context.Context, command protocol.Command) (protocol.Event, error) {
	switch command {
	case protocol.Advance:
		track, err := d.advance(ctx)
		if err != nil {
			return protocol.Event{}, err
		}

		return protocol.Advanced(track), nil
	case protocol.BeginPlayback:
		if err := d.begin(ctx); err != nil {
			return protocol.Event{}, err
		}

		return protocol.Started(), nil
	case protocol.LeaveSession:
		return protocol.Event{}, d.leave(ctx)
	default:
		return protocol.Event{}, fail(command, protocol.ProtocolViolation, fmt.Errorf("unknown command %q", command))
	}
}

// syncWatchdog keeps the watchdog armed exactly while a track is playing.
func (d *Driver) syncWatchdog() {
	if d.State() == Playing {
		d.watchdog.Arm()
	} else {
		d.watchdog.Disarm()
	}
}

func (d *Driver) emit(ctx context.Context, event protocol.Event) {
	log.Infof("emitting %s", event)

	select {
	case d.events <- event:
	case <-ctx.Done():
		log.Warnf("dropping %s: %s", event, ctx.Err())
	}
}

func (d *Driver) tick(ctx context.Context) {
	if d.State() != Playing {
		d.watchdog.Disarm()
		return
	}

	ended, err := d.watchdog.Tick(ctx)
	if err != nil {
		log.Debugf("%s", err)
		return
	}

	if !ended {
		return
	}

	d.setState(Idle)
	d.emit(ctx, protocol.TrackEnded())
}
