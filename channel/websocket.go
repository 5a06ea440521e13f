package channel

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/hostplay/hostplay/log"
	"github.com/hostplay/hostplay/protocol"
)

const (
	writeWait      = 5 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = pongWait * 9 / 10
	maxMessageSize = 1024
)

// socket is a websocket connection with serialized writes and idempotent close.
type socket struct {
	conn      *websocket.Conn
	writeMu   sync.Mutex
	closeOnce sync.Once
	done      chan struct{}
}

func newSocket(conn *websocket.Conn) *socket {
	return &socket{
		conn: conn,
		done: make(chan struct{}),
	}
}

// read returns the next data message. A cancelled ctx interrupts the read.
func (s *socket) read(ctx context.Context) ([]byte, error) {
	stop := context.AfterFunc(ctx, func() {
		_ = s.conn.SetReadDeadline(time.Now())
	})
	defer stop()

	_, data, err := s.conn.ReadMessage()
	if err == nil {
		return data, nil
	}

	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	var closeErr *websocket.CloseError
	if errors.As(err, &closeErr) || errors.Is(err, net.ErrClosed) {
		if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
			log.Warnf("websocket closed: %s", err)
		}
		return nil, io.EOF
	}

	return nil, err
}

func (s *socket) write(ctx context.Context, data []byte) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	deadline := time.Now().Add(writeWait)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}

	if err := s.conn.SetWriteDeadline(deadline); err != nil {
		return err
	}

	return s.conn.WriteMessage(websocket.TextMessage, data)
}

// keepalive pings the peer until the socket closes.
func (s *socket) keepalive() {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			s.writeMu.Lock()
			err := s.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait))
			s.writeMu.Unlock()

			if err != nil {
				log.Debugf("ping: %s", err)
				return
			}
		}
	}
}

func (s *socket) Close() error {
	var err error
	s.closeOnce.Do(func() {
		close(s.done)

		s.writeMu.Lock()
		_ = s.conn.WriteControl(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(time.Second),
		)
		s.writeMu.Unlock()

		err = s.conn.Close()
	})
	return err
}

// Conn is the driver end of a websocket connection.
type Conn struct {
	*socket
}

// NewConn wraps an upgraded connection and starts its keepalive.
func NewConn(conn *websocket.Conn) *Conn {
	conn.SetReadLimit(maxMessageSize)

	// a peer missing pongs for pongWait fails the next read
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	c := &Conn{socket: newSocket(conn)}
	go c.keepalive()

	return c
}

func (c *Conn) ReadCommand(ctx context.Context) (protocol.Command, error) {
	data, err := c.read(ctx)
	if err != nil {
		return "", err
	}

	command, err := protocol.DecodeCommand(data)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrMalformed, err)
	}

	return command, nil
}

func (c *Conn) WriteEvent(ctx context.Context, event protocol.Event) error {
	data, err := protocol.EncodeEvent(event)
	if err != nil {
		return err
	}

	return c.write(ctx, data)
}
