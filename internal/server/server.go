// Package server exposes the transcript lookup flow as a small JSON HTTP
// API consumed by the browser UI.
package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"time"

	"captionfix/internal/config"
	"captionfix/internal/history"
	"captionfix/internal/pipeline"
)

// Lookuper runs one transcript lookup. Implemented by pipeline.Service.
type Lookuper interface {
	Lookup(ctx context.Context, rawURL string, correct bool) (*pipeline.Report, error)
}

type Server struct {
	manager *config.Manager
	service Lookuper
	store   *history.Store // nil when history is disabled

	handler  http.Handler
	listener net.Listener
	server   *http.Server
}

// New assembles the API server with its middleware chain.
func New(manager *config.Manager, service Lookuper, store *history.Store) *Server {
	s := &Server{
		manager: manager,
		service: service,
		store:   store,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/transcript", s.handleTranscript)
	mux.HandleFunc("/api/history", s.handleHistory)
	mux.HandleFunc("/api/status", s.handleStatus)

	s.handler = s.withLogging(s.withCORS(s.withRateLimit(mux)))
	s.server = &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		// Correction runs can span many batches with inter-batch delays.
		WriteTimeout: 10 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Handler returns the full middleware-wrapped handler (used by tests).
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Start listens on the configured bind address and serves until ctx is
// cancelled.
func (s *Server) Start(ctx context.Context) error {
	bind := s.manager.GetConfig().Server.Bind
	listener, err := net.Listen("tcp", bind)
	if err != nil {
		return fmt.Errorf("api listen: %w", err)
	}
	s.listener = listener

	go func() {
		if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("Server: serve error: %v", err)
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.server.Shutdown(shutdownCtx)
	}()

	log.Printf("Server: listening on %s", listener.Addr())
	return nil
}

// Stop shuts the server down gracefully.
func (s *Server) Stop() {
	if s.server != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.server.Shutdown(shutdownCtx)
	}
	if s.listener != nil {
		_ = s.listener.Close()
		s.listener = nil
	}
}
