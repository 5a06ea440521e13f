// Package channel connects a controller to a driver over a message transport.
package channel

import (
	"context"
	"errors"
	"io"

	"github.com/hostplay/hostplay/driver"
	"github.com/hostplay/hostplay/log"
	"github.com/hostplay/hostplay/protocol"
)

var (
	// ErrMalformed is returned for an inbound message that is not a valid command.
	ErrMalformed = errors.New("malformed message")

	// ErrAlreadyAttached is returned when a second controller tries to attach.
	ErrAlreadyAttached = errors.New("a controller is already attached")
)

// Transport is the driver end of a controller connection.
// Reads return io.EOF once the controller is gone.
type Transport interface {
	ReadCommand(ctx context.Context) (protocol.Command, error)
	WriteEvent(ctx context.Context, event protocol.Event) error
	Close() error
}

// Serve runs d for the lifetime of the transport: commands are submitted in arrival
// order and events written back. It returns when the controller detaches, the driver
// stops or ctx is done. The transport is closed on return and the driver shut down,
// which pauses a playing track.
func Serve(ctx context.Context, d *driver.Driver, t Transport) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	defer t.Close()

	runErr := make(chan error, 1)
	go func() {
		runErr <- d.Run(ctx)
	}()

	pumped := make(chan struct{})
	go func() {
		defer close(pumped)

		for event := range d.Events() {
			if err := t.WriteEvent(ctx, event); err != nil {
				log.Warnf("writing %s: %s", event, err)
				cancel()
			}
		}
	}()

	readErr := make(chan error, 1)
	go func() {
		readErr <- readCommands(ctx, d, t)
	}()

	var err error
	select {
	case err = <-readErr:
		if errors.Is(err, io.EOF) {
			log.Info("controller detached")
			err = nil
		}
	case err = <-runErr:
	case <-ctx.Done():
	}

	cancel()
	_ = t.Close()
	<-d.Done()
	<-pumped

	if errors.Is(err, context.Canceled) {
		return nil
	}

	return err
}

func readCommands(ctx context.Context, d *driver.Driver, t Transport) error {
	for {
		command, err := t.ReadCommand(ctx)
		if errors.Is(err, ErrMalformed) {
			log.Warnf("ignoring message: %s", err)
			continue
		}

		if err != nil {
			return err
		}

		log.Debugf("received %s", command)
		if err := d.Submit(ctx, command); err != nil {
			return err
		}
	}
}
