package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/agbru/polyroots/internal/poly"
	"github.com/agbru/polyroots/internal/roots"
	"github.com/agbru/polyroots/internal/service"
)

// defaultPrintDigits is used by /roots when neither the request nor the
// server configuration asks for a digit count.
const defaultPrintDigits = 10

// handleHealth responds to health check requests.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	response := map[string]any{
		"status":    "healthy",
		"timestamp": time.Now().Unix(),
		"backend":   poly.Backend,
	}

	s.writeJSONResponse(w, http.StatusOK, response)
}

// handleFamilies lists the named polynomial families accepted by /roots.
func (s *Server) handleFamilies(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	s.writeJSONResponse(w, http.StatusOK, map[string]any{
		"families": service.Families(),
	})
}

// handleRoots isolates the roots of the polynomial given in the 'poly'
// query parameter and returns a RootReport. Once the polynomial is parsed
// the client is charged rootsCost on top of its admission token.
//
// Query parameters:
//   - poly: A family letter with its arguments ("w 10") or literal
//     coefficients lowest degree first ("-2 0 1").
//   - refine: Accuracy in decimal digits.
//   - print: Digits shown per root.
func (s *Server) handleRoots(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	status := http.StatusOK
	defer func() { s.metrics.RecordIsolation(status) }()

	req, err := s.parseRootsParams(r)
	if err != nil {
		var parseErr RootsParseError
		status = http.StatusBadRequest
		if errors.As(err, &parseErr) {
			status = parseErr.StatusCode
		}
		s.writeErrorResponse(w, status, err.Error())
		return
	}

	p, err := poly.ParseString(req.text)
	if err != nil {
		status = http.StatusBadRequest
		s.writeErrorResponse(w, status, err.Error())
		return
	}

	if wait, ok := s.rateLimiter.Charge(clientKey(r), rootsCost(p.Degree(), req.refine)); !ok {
		status = http.StatusTooManyRequests
		writeRateLimited(w, wait)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.timeouts.RequestTimeout)
	defer cancel()

	res, err := s.service.Isolate(ctx, p, req.refine)
	if err != nil {
		status = statusForError(err)
		s.writeErrorResponse(w, status, err.Error())
		return
	}

	s.writeJSONResponse(w, status, service.Report(p, res, req.print))
}

// statusForError maps an isolation failure to an HTTP status code.
func statusForError(err error) int {
	switch {
	case errors.Is(err, service.ErrDegreeTooLarge),
		errors.Is(err, service.ErrRefineTooLarge),
		errors.Is(err, roots.ErrInvalidArgument):
		return http.StatusBadRequest
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, roots.ErrPrecisionExhausted):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// parseRootsParams extracts and validates the /roots query parameters.
//
// Parameters:
//   - r: The HTTP request containing query parameters.
//
// Returns:
//   - rootsRequest: The parsed parameters.
//   - error: A RootsParseError if validation fails, nil otherwise.
func (s *Server) parseRootsParams(r *http.Request) (rootsRequest, error) {
	q := r.URL.Query()
	req := rootsRequest{
		text:   q.Get("poly"),
		refine: s.cfg.Refine,
		print:  s.cfg.Print,
	}
	if req.print == 0 {
		req.print = defaultPrintDigits
	}

	if req.text == "" {
		return req, RootsParseError{Message: "Missing 'poly' parameter", StatusCode: http.StatusBadRequest}
	}
	if limit := s.securityConfig.MaxQueryLength; limit > 0 && len(req.text) > limit {
		return req, RootsParseError{
			Message:    fmt.Sprintf("'poly' parameter exceeds %d bytes", limit),
			StatusCode: http.StatusRequestURITooLong,
		}
	}

	var err error
	if req.refine, err = parseDigits(q.Get("refine"), "refine", req.refine); err != nil {
		return req, err
	}
	if req.print, err = parseDigits(q.Get("print"), "print", req.print); err != nil {
		return req, err
	}
	return req, nil
}

// parseDigits parses a non-negative digit count, returning def when raw is
// empty.
func parseDigits(raw, name string, def int) (int, error) {
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return 0, RootsParseError{
			Message:    fmt.Sprintf("Invalid '%s' parameter: must be a non-negative integer", name),
			StatusCode: http.StatusBadRequest,
		}
	}
	return v, nil
}

// writeJSONResponse writes data as JSON with the given status code.
func (s *Server) writeJSONResponse(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("encoding JSON response", err)
	}
}

// writeErrorResponse writes a standardized error response.
func (s *Server) writeErrorResponse(w http.ResponseWriter, statusCode int, message string) {
	errResp := ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: message,
	}
	s.writeJSONResponse(w, statusCode, errResp)
}
