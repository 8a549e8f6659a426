package tcp

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"sync"
	"time"

	"github.com/cjl-232/cryptcord-server/config"
	"github.com/cjl-232/cryptcord-server/internal/instrument"
	"github.com/cjl-232/cryptcord-server/internal/protocol"
	"github.com/cjl-232/cryptcord-server/internal/relay/delivery"
	"github.com/cjl-232/cryptcord-server/pkg/logger"
)

// Server accepts relay connections. Each connection carries exactly one
// request envelope and is answered with exactly one response envelope.
type Server struct {
	sync.WaitGroup

	handlers *delivery.Handlers
	logger   logger.Logger

	host            string
	port            string
	maxRequestBytes int64
	readTimeout     time.Duration

	l net.Listener
}

func NewServer(handlers *delivery.Handlers, logger logger.Logger, cfg config.Config) *Server {
	return &Server{
		handlers:        handlers,
		logger:          logger,
		host:            cfg.Server.Host,
		port:            cfg.Server.Port,
		maxRequestBytes: cfg.Server.MaxRequestBytes,
		readTimeout:     time.Duration(cfg.Server.ReadTimeoutSeconds) * time.Second,
	}
}

// Start binds the listener and begins accepting connections.
func (s *Server) Start() error {
	var err error
	s.l, err = net.Listen("tcp", net.JoinHostPort(s.host, s.port))
	if err != nil {
		return err
	}
	s.logger.Info("relay listening", "addr", s.l.Addr().String())

	s.Add(1)
	go s.acceptLoop()
	return nil
}

// Addr returns the bound listener address.
func (s *Server) Addr() net.Addr {
	return s.l.Addr()
}

// Halt closes the listener and waits for in-flight connections to finish.
func (s *Server) Halt() {
	if s.l != nil {
		s.l.Close()
	}
	s.Wait()
	s.l = nil
}

func (s *Server) acceptLoop() {
	defer func() {
		s.l.Close()
		s.Done()
	}()
	for {
		conn, err := s.l.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return
			}
			s.logger.Warn("transient accept failure", "err", err)
			continue
		}

		s.Add(1)
		go s.handleConn(conn)
	}
}

// handleConn serves one request. Every failure past this point is answered
// on the connection itself; nothing propagates back to the accept loop.
func (s *Server) handleConn(conn net.Conn) {
	defer func() {
		conn.Close()
		instrument.ConnectionClosed()
		s.Done()
	}()
	instrument.ConnectionOpened()

	if s.readTimeout > 0 {
		conn.SetReadDeadline(time.Now().Add(s.readTimeout))
	}

	raw, tooLarge, err := s.readRequest(conn)
	if err != nil {
		s.logger.Warn("failed to read request", "remote", conn.RemoteAddr().String(), "err", err)
		return
	}

	var resp *protocol.Response
	if tooLarge {
		resp = s.handlers.TooLarge(delivery.SurfaceTCP)
	} else {
		resp = s.handlers.Handle(context.Background(), delivery.SurfaceTCP, raw)
	}

	if err := json.NewEncoder(conn).Encode(resp); err != nil {
		s.logger.Warn("failed to write response", "remote", conn.RemoteAddr().String(), "err", err)
	}

	if tooLarge {
		// Drain whatever the client is still sending, so closing with
		// unread data doesn't reset the connection under the response.
		// The read deadline bounds how long this can take.
		io.Copy(io.Discard, conn)
	}
}

// readRequest reads the request until EOF, bounded one byte past the
// ceiling so an oversized request is detected without buffering all of it.
func (s *Server) readRequest(conn net.Conn) (raw []byte, tooLarge bool, err error) {
	if s.maxRequestBytes < 0 {
		raw, err = io.ReadAll(conn)
		return raw, false, err
	}

	raw, err = io.ReadAll(io.LimitReader(conn, s.maxRequestBytes+1))
	if err != nil {
		return nil, false, err
	}
	if int64(len(raw)) > s.maxRequestBytes {
		return nil, true, nil
	}
	return raw, false, nil
}
