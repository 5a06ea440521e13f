package channel

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/gorilla/websocket"
	"github.com/hostplay/hostplay/constant"
	"github.com/hostplay/hostplay/protocol"
	"github.com/samber/mo"
)

// Client is the controller end of a websocket connection.
type Client struct {
	*socket
}

// Dial connects to the server listening on address.
func Dial(ctx context.Context, address, token string) (*Client, error) {
	u := url.URL{Scheme: "ws", Host: address, Path: Path}

	header := http.Header{}
	header.Set("User-Agent", constant.Hostplay+"/"+constant.Version)
	if token != "" {
		header.Set("Authorization", "Bearer "+token)
	}

	conn, resp, err := websocket.DefaultDialer.DialContext(ctx, u.String(), header)
	if err != nil {
		if resp != nil {
			return nil, fmt.Errorf("dial %s: %s", u.String(), resp.Status)
		}
		return nil, fmt.Errorf("dial %s: %w", u.String(), err)
	}

	return &Client{socket: newSocket(conn)}, nil
}

// Send writes a command.
func (c *Client) Send(ctx context.Context, command protocol.Command) error {
	data, err := protocol.EncodeCommand(command)
	if err != nil {
		return err
	}

	return c.write(ctx, data)
}

// Next reads the next event. It returns io.EOF once the server closes the connection.
func (c *Client) Next(ctx context.Context) (protocol.Event, error) {
	data, err := c.read(ctx)
	if err != nil {
		return protocol.Event{}, err
	}

	return protocol.DecodeEvent(data)
}

// Do sends command and waits for the event answering it, skipping
// unrelated ones such as a track ending. LeaveSession has no answer.
func (c *Client) Do(ctx context.Context, command protocol.Command) (mo.Option[protocol.Event], error) {
	if err := c.Send(ctx, command); err != nil {
		return mo.None[protocol.Event](), err
	}

	if command == protocol.LeaveSession {
		return mo.None[protocol.Event](), nil
	}

	for {
		event, err := c.Next(ctx)
		if err != nil {
			return mo.None[protocol.Event](), err
		}

		switch {
		case event.Kind == protocol.KindFailed && event.Command == command,
			event.Kind == protocol.KindAdvanced && command == protocol.Advance,
			event.Kind == protocol.KindStarted && command == protocol.BeginPlayback:
			return mo.Some(event), nil
		}
	}
}

// CheckSequence reports whether commands can succeed when issued in order
// over one connection. Every controller gets a fresh session, so
// BeginPlayback needs an Advance earlier on the same connection.
func CheckSequence(commands []protocol.Command) error {
	if len(commands) == 0 {
		return errors.New("no command given")
	}

	staged := false
	for i, command := range commands {
		switch command {
		case protocol.Advance:
			staged = true
		case protocol.BeginPlayback:
			if !staged {
				return fmt.Errorf("command %d: %s needs an %s before it", i+1, command, protocol.Advance)
			}
			staged = false
		case protocol.LeaveSession:
			staged = false
		}
	}

	return nil
}
