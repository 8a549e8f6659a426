// Package http exposes the relay operations as dedicated HTTP endpoints.
// Each route implies its action from the path and shares the decode,
// verify and dispatch pipeline with the TCP listener, so the two surfaces
// cannot drift apart.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/uptrace/bun"

	"github.com/cjl-232/cryptcord-server/config"
	"github.com/cjl-232/cryptcord-server/internal/instrument"
	"github.com/cjl-232/cryptcord-server/internal/protocol"
	"github.com/cjl-232/cryptcord-server/internal/relay/delivery"
	"github.com/cjl-232/cryptcord-server/pkg/logger"
)

type Server struct {
	handlers        *delivery.Handlers
	db              *bun.DB
	logger          logger.Logger
	addr            string
	maxRequestBytes int64

	srv *http.Server
}

func NewServer(handlers *delivery.Handlers, db *bun.DB, logger logger.Logger, cfg config.Config) *Server {
	return &Server{
		handlers:        handlers,
		db:              db,
		logger:          logger,
		addr:            net.JoinHostPort(cfg.HTTP.Host, cfg.HTTP.Port),
		maxRequestBytes: cfg.Server.MaxRequestBytes,
	}
}

// Router builds the route table. Exported so tests can drive the endpoints
// through httptest without binding a socket.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/messages/send", s.relay(protocol.ActionPostMessage)).Methods("POST")
	r.HandleFunc("/messages/retrieve", s.relay(protocol.ActionRetrieveMessages)).Methods("POST")
	r.HandleFunc("/keys/send", s.relay(protocol.ActionPostKey)).Methods("POST")
	r.HandleFunc("/keys/retrieve", s.relay(protocol.ActionRetrieveKeys)).Methods("POST")

	r.HandleFunc("/health", s.health).Methods("GET")
	r.Handle("/metrics", instrument.Handler()).Methods("GET")

	return r
}

// Start begins serving in a background goroutine.
func (s *Server) Start() {
	s.srv = &http.Server{
		Addr:              s.addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.logger.Info("http listening", "addr", s.addr)
	go func() {
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("http server stopped", "err", err)
		}
	}()
}

// Shutdown drains in-flight requests and stops the listener.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.srv == nil {
		return nil
	}
	return s.srv.Shutdown(ctx)
}

func (s *Server) relay(action string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body := r.Body
		if s.maxRequestBytes >= 0 {
			body = http.MaxBytesReader(w, r.Body, s.maxRequestBytes)
		}
		raw, err := io.ReadAll(body)

		var resp *protocol.Response
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			resp = s.handlers.TooLarge(delivery.SurfaceHTTP)
		case err != nil:
			s.logger.Warn("failed to read request body", "err", err)
			return
		default:
			resp = s.handlers.HandleAction(r.Context(), delivery.SurfaceHTTP, action, raw)
		}

		writeResponse(w, resp)
	}
}

// health reports whether the relay can reach its storage backend.
func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	if err := s.db.PingContext(r.Context()); err != nil {
		s.logger.Warn("storage ping failed", "err", err)
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("storage unavailable"))
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

func writeResponse(w http.ResponseWriter, resp *protocol.Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(resp.Status)
	json.NewEncoder(w).Encode(resp)
}
