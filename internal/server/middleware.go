package server

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/agbru/polyroots/internal/logging"
)

// ─────────────────────────────────────────────────────────────────────────────
// Server Options for Middleware Integration
// ─────────────────────────────────────────────────────────────────────────────

// WithRateLimiter sets a custom rate limiter for the server.
func WithRateLimiter(rl *RateLimiter) Option {
	return func(s *Server) {
		s.rateLimiter = rl
	}
}

// WithSecurityConfig sets a custom security configuration for the server.
func WithSecurityConfig(config SecurityConfig) Option {
	return func(s *Server) {
		s.securityConfig = config
	}
}

// WithMaxDegree sets the largest polynomial degree a request may submit.
//
// Parameters:
//   - maxDegree: The maximum degree. Zero disables the check.
//
// Returns:
//   - Option: A functional option that configures the degree limit.
func WithMaxDegree(maxDegree int) Option {
	return func(s *Server) {
		s.securityConfig.MaxDegree = maxDegree
	}
}

// WithMaxRefine sets the largest number of digits a request may ask for.
//
// Parameters:
//   - maxRefine: The maximum refine value. Zero disables the check.
//
// Returns:
//   - Option: A functional option that configures the refine limit.
func WithMaxRefine(maxRefine int) Option {
	return func(s *Server) {
		s.securityConfig.MaxRefine = maxRefine
	}
}

// statusRecorder captures the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// RequestIDHeader carries the request identifier. A client-supplied value
// is echoed back; otherwise a random UUID is assigned.
const RequestIDHeader = "X-Request-ID"

// maxRequestIDLength bounds client-supplied request identifiers.
const maxRequestIDLength = 128

// loggingMiddleware tags each request with an identifier and logs its
// method, path, remote address, status and duration.
//
// Parameters:
//   - next: The next handler in the chain.
//
// Returns:
//   - http.HandlerFunc: A new handler with logging capability.
func (s *Server) loggingMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		id := r.Header.Get(RequestIDHeader)
		if id == "" || len(id) > maxRequestIDLength {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next(rec, r)

		s.logger.Info("request",
			logging.String("request_id", id),
			logging.String("method", r.Method),
			logging.String("path", r.URL.Path),
			logging.String("remote", r.RemoteAddr),
			logging.Int("status", rec.status),
			logging.Duration("duration", time.Since(start)),
		)
	}
}
