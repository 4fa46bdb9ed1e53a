// Package web exposes the project registry and execution engine over HTTP.
package web

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strings"
	"time"

	"go.trai.ch/remotex/internal/core/domain"
	"go.trai.ch/remotex/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

const readHeaderTimeout = 10 * time.Second

// Server routes API requests to the registry and the execution engine.
type Server struct {
	registry *domain.Registry
	executor ports.ProjectExecutor
	logger   ports.Logger

	metrics        ports.Metrics
	metricsPath    string
	metricsHandler http.Handler

	slots *semaphore.Weighted
	mux   *http.ServeMux
}

// Option configures a Server.
type Option func(*Server)

// WithMetrics records request metrics and serves handler on path.
// A nil handler records metrics without exposing them.
func WithMetrics(metrics ports.Metrics, path string, handler http.Handler) Option {
	return func(s *Server) {
		s.metrics = metrics
		s.metricsPath = path
		s.metricsHandler = handler
	}
}

// WithMaxConcurrentExecutions bounds the number of executions running at once.
// Zero or less leaves executions unbounded.
func WithMaxConcurrentExecutions(n int) Option {
	return func(s *Server) {
		if n > 0 {
			s.slots = semaphore.NewWeighted(int64(n))
		} else {
			s.slots = nil
		}
	}
}

// NewServer creates a Server for registry.
func NewServer(registry *domain.Registry, executor ports.ProjectExecutor, logger ports.Logger, opts ...Option) *Server {
	s := &Server{
		registry: registry,
		executor: executor,
		logger:   logger,
		mux:      http.NewServeMux(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.handle("GET /api/health", s.handleHealth)
	s.handle("GET /api/projects", s.handleListProjects)
	s.handle("GET /api/projects/{codename}", s.handleGetProject)
	s.handle("POST /api/projects/{codename}/execute", s.handleExecute)

	if s.metricsHandler != nil && s.metricsPath != "" {
		s.mux.Handle("GET "+s.metricsPath, s.metricsHandler)
	}
}

func (s *Server) handle(pattern string, fn http.HandlerFunc) {
	_, route, _ := strings.Cut(pattern, " ")
	s.mux.Handle(pattern, s.instrument(route, fn))
}

// Handler returns the root handler including request ID propagation.
func (s *Server) Handler() http.Handler {
	return requestID(s.mux)
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down gracefully
// within shutdownTimeout. The bound address is reported through ready when it is non-nil.
func (s *Server) ListenAndServe(ctx context.Context, addr string, shutdownTimeout time.Duration, ready func(net.Addr)) error {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", addr)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "cannot listen"), "addr", addr)
	}
	return s.Serve(ctx, ln, shutdownTimeout, ready)
}

// Serve accepts connections on ln until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, ln net.Listener, shutdownTimeout time.Duration, ready func(net.Addr)) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: readHeaderTimeout,
		BaseContext:       func(net.Listener) context.Context { return context.WithoutCancel(ctx) },
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if ready != nil {
			ready(ln.Addr())
		}
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return zerr.Wrap(err, "http server failed")
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return zerr.Wrap(err, "graceful shutdown failed")
		}
		return nil
	})

	return g.Wait()
}
