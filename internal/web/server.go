// Package web serves the status API over the tracker, registry, and
// result history.
package web

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/probekit/agentperf/internal/config"
	"github.com/probekit/agentperf/internal/db"
	"github.com/probekit/agentperf/internal/perf"
	"github.com/probekit/agentperf/internal/registry"
)

// Trigger runs a single probe on demand.
type Trigger interface {
	TriggerImmediate(ctx context.Context, name string) (*perf.Result, error)
}

// Server is the status API server.
type Server struct {
	config   *config.WebConfig
	tracker  *perf.Tracker
	registry *registry.Registry
	store    *db.Store
	trigger  Trigger
	server   *http.Server
	upgrader websocket.Upgrader
}

// NewServer creates the status server. store and trigger may be nil
// when history or manual runs are not wired.
func NewServer(cfg *config.WebConfig, tracker *perf.Tracker, reg *registry.Registry, store *db.Store, trigger Trigger) *Server {
	s := &Server{
		config:   cfg,
		tracker:  tracker,
		registry: reg,
		store:    store,
		trigger:  trigger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
	s.server = &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: s.routes(),
	}
	return s
}

// Run starts the server and blocks until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		slog.Info("status server listening", "addr", s.server.Addr)
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		slog.Info("shutting down status server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return s.server.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	// Health check (no auth)
	mux.HandleFunc("GET /api/health", s.handleHealth)

	mux.Handle("GET /api/status", s.requireAuth(http.HandlerFunc(s.handleStatus)))
	mux.Handle("GET /api/in-flight", s.requireAuth(http.HandlerFunc(s.handleInFlight)))
	mux.Handle("POST /api/in-flight/drain", s.requireAuth(http.HandlerFunc(s.handleDrain)))
	mux.Handle("GET /api/in-flight/live", s.requireAuth(http.HandlerFunc(s.handleLive)))
	mux.Handle("GET /api/results", s.requireAuth(http.HandlerFunc(s.handleResults)))
	mux.Handle("POST /api/probes/{name}/run", s.requireAuth(http.HandlerFunc(s.handleRunProbe)))

	return mux
}
