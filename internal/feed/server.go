// Package feed receives gesture samples from remote touch hosts over
// WebSocket and hands them to the frame loop.
package feed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/zeusync/motion/internal/core/observability/log"
	"golang.org/x/sync/errgroup"
)

const (
	defaultPingInterval = 15 * time.Second
	writeTimeout        = 5 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// Server is an http.Handler that upgrades to WebSocket and pushes every
// sample message it reads into an Inbox.
type Server struct {
	inbox        *Inbox
	logger       log.Log
	pingInterval time.Duration

	mu     sync.Mutex
	conns  map[*websocket.Conn]struct{}
	closed bool
}

type Option func(*Server)

func WithLogger(l log.Log) Option {
	return func(s *Server) { s.logger = l }
}

// WithPingInterval sets how often idle connections are pinged.
func WithPingInterval(d time.Duration) Option {
	return func(s *Server) { s.pingInterval = d }
}

func NewServer(inbox *Inbox, opts ...Option) *Server {
	s := &Server{
		inbox:        inbox,
		logger:       log.NewNop(),
		pingInterval: defaultPingInterval,
		conns:        make(map[*websocket.Conn]struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ListenAndServe serves on addr until ctx is done.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s}
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		s.Close()
		shutdown, cancel := context.WithTimeout(context.Background(), writeTimeout)
		defer cancel()
		return srv.Shutdown(shutdown)
	})
	return g.Wait()
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	closed := s.closed
	s.mu.Unlock()
	if closed {
		http.Error(w, ErrServerClosed.Error(), http.StatusServiceUnavailable)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", log.String("remote", r.RemoteAddr), log.Error(err))
		return
	}
	if !s.track(conn) {
		_ = conn.Close()
		return
	}
	defer s.untrack(conn)

	remote := conn.RemoteAddr().String()
	s.logger.Debug("feed connected", log.String("remote", remote))
	err = s.serve(r.Context(), conn)
	s.logger.Debug("feed disconnected", log.String("remote", remote), log.Error(err))
}

// Connections returns the number of open connections.
func (s *Server) Connections() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.conns)
}

// Close disconnects every client and refuses new ones.
func (s *Server) Close() {
	s.mu.Lock()
	s.closed = true
	conns := make([]*websocket.Conn, 0, len(s.conns))
	for c := range s.conns {
		conns = append(conns, c)
	}
	s.mu.Unlock()

	for _, c := range conns {
		_ = c.Close()
	}
}

func (s *Server) track(conn *websocket.Conn) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false
	}
	s.conns[conn] = struct{}{}
	return true
}

func (s *Server) untrack(conn *websocket.Conn) {
	s.mu.Lock()
	delete(s.conns, conn)
	s.mu.Unlock()
	_ = conn.Close()
}

// serve reads messages until the connection fails, pinging it meanwhile.
func (s *Server) serve(ctx context.Context, conn *websocket.Conn) error {
	var writeMu sync.Mutex
	write := func(fn func() error) error {
		writeMu.Lock()
		defer writeMu.Unlock()
		_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		return fn()
	}

	g, ctx := errgroup.WithContext(ctx)
	done := make(chan struct{})

	g.Go(func() error {
		defer close(done)
		for {
			_, data, err := conn.ReadMessage()
			if err != nil {
				var closeErr *websocket.CloseError
				if errors.As(err, &closeErr) {
					return nil
				}
				return err
			}

			var m Message
			if err := json.Unmarshal(data, &m); err != nil {
				s.logger.Warn("malformed sample message", log.Int("bytes", len(data)), log.Error(err))
				err = fmt.Errorf("%w: %w", ErrInvalidMessage, err)
				if werr := write(func() error { return conn.WriteJSON(Ack{Error: err.Error()}) }); werr != nil {
					return werr
				}
				continue
			}

			ack := Ack{Accepted: true}
			if err := m.Validate(); err != nil {
				s.logger.Warn("invalid sample message", log.String("gesture", m.Gesture), log.Error(err))
				ack = Ack{Error: err.Error()}
			} else if err := s.inbox.Push(m); err != nil {
				s.logger.Warn("sample dropped", log.String("gesture", m.Gesture), log.Error(err))
				ack = Ack{Error: err.Error()}
			}
			if err := write(func() error { return conn.WriteJSON(ack) }); err != nil {
				return err
			}
		}
	})

	g.Go(func() error {
		ticker := time.NewTicker(s.pingInterval)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return nil
			case <-ctx.Done():
				_ = conn.Close()
				return nil
			case <-ticker.C:
				err := write(func() error {
					return conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeTimeout))
				})
				if err != nil {
					return err
				}
			}
		}
	})

	return g.Wait()
}
