package server

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/bft-labs/kalah/internal/session"
	"github.com/bft-labs/kalah/pkg/layout"
	"github.com/bft-labs/kalah/pkg/log"
)

// ShutdownTimeout bounds graceful shutdown in Run.
const ShutdownTimeout = 5 * time.Second

// Server serves one session.
type Server struct {
	session *session.Session
	layout  layout.Layout
	hub     *Hub
	router  chi.Router
	logger  log.Logger
	unsub   func()
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request and connection logger.
func WithLogger(l log.Logger) Option {
	return func(s *Server) {
		s.logger = log.OrNoop(l)
	}
}

// WithLayout replaces the default board layout used by /api/click.
func WithLayout(l layout.Layout) Option {
	return func(s *Server) {
		s.layout = l
	}
}

// New builds the router and subscribes the WebSocket hub to sess.
func New(sess *session.Session, opts ...Option) *Server {
	s := &Server{
		session: sess,
		layout:  layout.Default(),
		logger:  log.NoopLogger{},
	}
	for _, opt := range opts {
		opt(s)
	}
	s.hub = NewHub(s.logger)
	s.unsub = sess.Subscribe(func(st session.State) {
		s.hub.Broadcast(snapshotMessage(st))
	})
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(s.logger))
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/game", s.handleGame)
		r.Get("/layout", s.handleLayout)
		r.Post("/pits/{position}/sow", s.handleSow)
		r.Post("/click", s.handleClick)
		r.Post("/restart", s.handleRestart)
	})

	r.Get("/ws", s.handleWS)
	return r
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Close unsubscribes from the session and disconnects every WebSocket client.
func (s *Server) Close() {
	s.unsub()
	s.hub.CloseAll()
}

// Run serves on ln until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()
	s.logger.Info("server listening", log.String("addr", ln.Addr().String()))

	var runErr error
	select {
	case <-ctx.Done():
		s.logger.Info("server stopping", log.Err(ctx.Err()))
	case err, ok := <-errCh:
		if ok {
			runErr = err
		}
	}

	// Hijacked WebSocket connections are not tracked by Shutdown.
	s.Close()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		s.logger.Warn("graceful shutdown failed", log.Err(err))
		if closeErr := srv.Close(); closeErr != nil && !errors.Is(closeErr, http.ErrServerClosed) {
			s.logger.Error("forced close failed", log.Err(closeErr))
		}
	}
	return runErr
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
