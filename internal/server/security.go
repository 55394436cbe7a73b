package server

import (
	"net/http"
	"slices"
	"strings"
)

// SecurityConfig holds the security headers and input limits of the API.
type SecurityConfig struct {
	// EnableCORS enables Cross-Origin Resource Sharing headers.
	EnableCORS bool
	// AllowedOrigins lists the origins browsers may call from. "*" allows any.
	AllowedOrigins []string
	// AllowedMethods is advertised to CORS preflight requests.
	AllowedMethods []string
	// MaxDegree is the largest polynomial degree a request may submit.
	// The cost of each round grows quadratically with the degree.
	MaxDegree int
	// MaxRefine is the largest number of decimal digits a request may ask for.
	MaxRefine int
	// MaxQueryLength bounds the length of the poly query parameter.
	MaxQueryLength int
}

// DefaultSecurityConfig returns the default security configuration.
func DefaultSecurityConfig() SecurityConfig {
	return SecurityConfig{
		EnableCORS:     true,
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "OPTIONS"},
		MaxDegree:      500,
		MaxRefine:      1000,
		MaxQueryLength: 64 * 1024,
	}
}

// apiHeaders go on every response. The API only ever returns JSON and the
// Prometheus text format, so nothing may be framed, sniffed or scripted.
var apiHeaders = [][2]string{
	{"X-Content-Type-Options", "nosniff"},
	{"X-Frame-Options", "DENY"},
	{"Referrer-Policy", "strict-origin-when-cross-origin"},
	{"Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'"},
}

// allowedOrigin returns the Access-Control-Allow-Origin value for origin,
// or "" when the origin is not allowed.
func (c SecurityConfig) allowedOrigin(origin string) string {
	if slices.Contains(c.AllowedOrigins, "*") {
		return "*"
	}
	if origin != "" && slices.Contains(c.AllowedOrigins, origin) {
		return origin
	}
	return ""
}

// SecurityMiddleware sets the API headers and, when enabled, answers CORS.
// Preflight OPTIONS requests stop here with 204. Browsers may read
// Retry-After, so clients can back off from the rate limiter, and
// X-Request-ID.
func SecurityMiddleware(config SecurityConfig, next http.HandlerFunc) http.HandlerFunc {
	methods := strings.Join(config.AllowedMethods, ", ")
	return func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		for _, kv := range apiHeaders {
			h.Set(kv[0], kv[1])
		}
		if !config.EnableCORS {
			next(w, r)
			return
		}

		if allowed := config.allowedOrigin(r.Header.Get("Origin")); allowed != "" {
			h.Set("Access-Control-Allow-Origin", allowed)
			if allowed != "*" {
				h.Add("Vary", "Origin")
			}
			h.Set("Access-Control-Allow-Methods", methods)
			h.Set("Access-Control-Allow-Headers", "Accept, Content-Type, "+RequestIDHeader)
			h.Set("Access-Control-Expose-Headers", "Retry-After, "+RequestIDHeader)
			h.Set("Access-Control-Max-Age", "86400")
		}
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next(w, r)
	}
}
