package channel

import (
	"context"
	"crypto/subtle"
	"net"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/hostplay/hostplay/log"
)

// Path is the HTTP path controllers connect to.
const Path = "/ws"

// AttachFunc serves one controller. It returns when the controller detaches.
type AttachFunc func(ctx context.Context, t Transport) error

// Server accepts a single controller at a time over websocket.
type Server struct {
	ctx    context.Context
	token  string
	attach AttachFunc

	upgrader websocket.Upgrader

	mu       sync.Mutex
	attached bool
	idle     chan struct{}
}

// NewServer creates a server. Attached sessions end with ctx.
// When token is not empty controllers must present it as a bearer token.
func NewServer(ctx context.Context, token string, attach AttachFunc) *Server {
	s := &Server{
		ctx:    ctx,
		token:  token,
		attach: attach,
		idle:   make(chan struct{}),
	}
	close(s.idle)

	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  maxMessageSize,
		WriteBufferSize: maxMessageSize,
		CheckOrigin:     s.checkOrigin,
	}

	return s
}

// checkOrigin accepts native clients and loopback pages. With a token any origin may connect.
func (s *Server) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" || s.token != "" {
		return true
	}

	u, err := url.Parse(origin)
	if err != nil {
		return false
	}

	if u.Hostname() == "localhost" {
		return true
	}

	ip := net.ParseIP(u.Hostname())
	return ip != nil && ip.IsLoopback()
}

func (s *Server) authorized(r *http.Request) bool {
	if s.token == "" {
		return true
	}

	presented := r.URL.Query().Get("token")
	if bearer, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer "); ok {
		presented = bearer
	}

	return subtle.ConstantTimeCompare([]byte(presented), []byte(s.token)) == 1
}

func (s *Server) acquire() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.attached || s.ctx.Err() != nil {
		return false
	}

	s.attached = true
	s.idle = make(chan struct{})
	return true
}

func (s *Server) release() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.attached = false
	close(s.idle)
}

// Wait blocks until no controller is attached or ctx is done.
// The server context should be cancelled first so no new controller attaches.
func (s *Server) Wait(ctx context.Context) error {
	s.mu.Lock()
	idle := s.idle
	s.mu.Unlock()

	select {
	case <-idle:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !s.authorized(r) {
		log.Warnf("rejected unauthorized controller from %s", r.RemoteAddr)
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	if s.ctx.Err() != nil {
		http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
		return
	}

	if !s.acquire() {
		log.Warnf("rejected controller from %s: %s", r.RemoteAddr, ErrAlreadyAttached)
		http.Error(w, ErrAlreadyAttached.Error(), http.StatusConflict)
		return
	}
	defer s.release()

	ws, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warnf("upgrade: %s", err)
		return
	}

	log.Infof("controller attached from %s", r.RemoteAddr)

	conn := NewConn(ws)
	if err := s.attach(s.ctx, conn); err != nil {
		log.Errorf("session: %s", err)
	}

	_ = conn.Close()
	log.Infof("controller from %s detached", r.RemoteAddr)
}
