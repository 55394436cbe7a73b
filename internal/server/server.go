// Package server exposes certified root isolation over HTTP.
package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/agbru/polyroots/internal/config"
	apperrors "github.com/agbru/polyroots/internal/errors"
	"github.com/agbru/polyroots/internal/logging"
	"github.com/agbru/polyroots/internal/roots"
	"github.com/agbru/polyroots/internal/service"
)

// Server is the HTTP front end of the isolation service. It wraps the
// standard http.Server and adds middleware and graceful shutdown.
type Server struct {
	service        service.Service
	cfg            config.AppConfig
	httpServer     *http.Server
	logger         logging.Logger
	shutdownSignal chan os.Signal
	rateLimiter    *RateLimiter
	securityConfig SecurityConfig
	metrics        *Metrics
	timeouts       Timeouts
}

// NewServer creates a new Server.
//
// Parameters:
//   - cfg: The application configuration (port, precision, default digits).
//   - opts: Optional functional options (WithLogger, WithService, ...).
//
// Returns:
//   - *Server: A pointer to the initialized Server.
func NewServer(cfg config.AppConfig, opts ...Option) *Server {
	s := &Server{
		cfg:            cfg,
		logger:         logging.NewLogger(os.Stdout, "server"),
		shutdownSignal: make(chan os.Signal, 1),
		securityConfig: DefaultSecurityConfig(),
		metrics:        NewMetrics(),
		timeouts:       DefaultServerTimeouts(),
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.service == nil {
		limits := service.Limits{
			MaxDegree: s.securityConfig.MaxDegree,
			MaxRefine: s.securityConfig.MaxRefine,
		}
		s.service = service.NewRootService(s.cfg, limits, roots.NewMetricsObserver())
	}

	if s.rateLimiter == nil {
		s.rateLimiter = NewRateLimiter(DefaultRateLimiterConfig())
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/roots", s.wrapWithMiddleware(s.handleRoots))
	mux.HandleFunc("/families", s.wrapWithMiddleware(s.handleFamilies))
	mux.HandleFunc("/health", s.wrapWithMiddleware(s.handleHealth))
	mux.HandleFunc("/metrics", s.wrapWithMiddleware(s.handleMetrics))

	s.httpServer = &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      mux,
		ReadTimeout:  s.timeouts.ReadTimeout,
		WriteTimeout: s.timeouts.WriteTimeout,
		IdleTimeout:  s.timeouts.IdleTimeout,
	}

	return s
}

// Handler returns the root handler with all routes and middleware.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// wrapWithMiddleware applies Security -> RateLimit -> Logging -> Metrics.
func (s *Server) wrapWithMiddleware(handler http.HandlerFunc) http.HandlerFunc {
	wrapped := s.metricsMiddleware(handler)
	wrapped = s.loggingMiddleware(wrapped)
	wrapped = RateLimitMiddleware(s.rateLimiter, wrapped)
	wrapped = SecurityMiddleware(s.securityConfig, wrapped)
	return wrapped
}

// Start listens on the configured port and blocks until ctx is done, a
// SIGINT or SIGTERM arrives, or the listener fails. It then shuts down
// gracefully within the shutdown timeout.
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return apperrors.NewServerError("server failed to start", err)
	}
	return s.Serve(ctx, ln)
}

// Serve is Start on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	signal.Notify(s.shutdownSignal, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(s.shutdownSignal)
	defer s.rateLimiter.Stop()

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting server",
			logging.String("addr", ln.Addr().String()),
			logging.Uint("prec", s.cfg.Prec),
			logging.Uint("max_prec", s.cfg.MaxPrec),
			logging.Int("max_degree", s.securityConfig.MaxDegree),
		)
		s.logger.Printf("endpoints: GET /roots?poly=<coeffs|family>&refine=<digits>&print=<digits>, /families, /health, /metrics")

		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("context done, shutting down")
	case <-s.shutdownSignal:
		s.logger.Info("shutdown signal received, shutting down")
	case err := <-errCh:
		if err != nil {
			return apperrors.NewServerError("server failed", err)
		}
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.timeouts.ShutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return apperrors.NewServerError("failed to gracefully shutdown server", err)
	}
	<-errCh

	s.logger.Info("server stopped gracefully")
	return nil
}

// Close releases the background resources of a server that was never
// started. Serve releases them itself on return.
func (s *Server) Close() {
	s.rateLimiter.Stop()
}
