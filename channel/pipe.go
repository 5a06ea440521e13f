package channel

import (
	"context"
	"io"
	"sync"

	"github.com/hostplay/hostplay/protocol"
)

// Pipe is an in-memory Transport. The controller side uses Send and Events.
type Pipe struct {
	commands chan protocol.Command
	events   chan protocol.Event
	closed   chan struct{}
	once     sync.Once
}

// NewPipe creates a pipe buffering up to size messages per direction.
func NewPipe(size int) *Pipe {
	return &Pipe{
		commands: make(chan protocol.Command, size),
		events:   make(chan protocol.Event, size),
		closed:   make(chan struct{}),
	}
}

// Send delivers a command to the driver side.
func (p *Pipe) Send(ctx context.Context, command protocol.Command) error {
	select {
	case p.commands <- command:
		return nil
	case <-p.closed:
		return io.ErrClosedPipe
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Events delivers the events written by the driver side.
func (p *Pipe) Events() <-chan protocol.Event {
	return p.events
}

func (p *Pipe) ReadCommand(ctx context.Context) (protocol.Command, error) {
	select {
	case command := <-p.commands:
		return command, nil
	case <-p.closed:
		return "", io.EOF
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func (p *Pipe) WriteEvent(ctx context.Context, event protocol.Event) error {
	select {
	case p.events <- event:
		return nil
	case <-p.closed:
		return io.ErrClosedPipe
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close detaches both sides.
func (p *Pipe) Close() error {
	p.once.Do(func() {
		close(p.closed)
	})
	return nil
}
