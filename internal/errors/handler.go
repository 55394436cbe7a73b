package apperrors

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/agbru/polyroots/internal/poly"
	"github.com/agbru/polyroots/internal/roots"
)

// ColorProvider supplies terminal color codes without importing the cli
// package.
type ColorProvider interface {
	Yellow() string
	Reset() string
}

// DefaultColorProvider provides no color codes (for non-terminal output).
type DefaultColorProvider struct{}

func (d DefaultColorProvider) Yellow() string { return "" }
func (d DefaultColorProvider) Reset() string  { return "" }

// HandleIsolationError prints a status line for a failed isolation and
// returns the matching exit code.
//
// Parameters:
//   - err: The error that occurred.
//   - duration: Time spent before the failure.
//   - out: Where the status line is written.
//   - colors: Provider for terminal color codes (nil for no colors).
//
// Returns:
//   - int: The exit code for the error type.
func HandleIsolationError(err error, duration time.Duration, out io.Writer, colors ColorProvider) int {
	if err == nil {
		return ExitSuccess
	}
	if colors == nil {
		colors = DefaultColorProvider{}
	}

	msgSuffix := ""
	if duration > 0 {
		msgSuffix = fmt.Sprintf(" after %s%s%s", colors.Yellow(), duration, colors.Reset())
	}

	var cfgErr ConfigError
	var valErr ValidationError
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		fmt.Fprintf(out, "Status: Failure (Timeout). The execution limit was reached%s.\n", msgSuffix)
		return ExitErrorTimeout
	case errors.Is(err, context.Canceled):
		fmt.Fprintf(out, "%sStatus: Canceled%s.%s\n", colors.Yellow(), msgSuffix, colors.Reset())
		return ExitErrorCanceled
	case errors.Is(err, roots.ErrPrecisionExhausted):
		fmt.Fprintf(out, "Status: Failure. The precision limit was reached%s; the polynomial may have repeated roots: %v\n", msgSuffix, err)
		return ExitErrorGeneric
	case errors.As(err, &cfgErr), errors.As(err, &valErr),
		errors.Is(err, roots.ErrInvalidArgument),
		errors.Is(err, poly.ErrBadArgument), errors.Is(err, poly.ErrUnknownFamily), errors.Is(err, poly.ErrEmpty):
		fmt.Fprintf(out, "Status: Invalid input: %v\n", err)
		return ExitErrorConfig
	}
	fmt.Fprintf(out, "Status: Failure. An unexpected error occurred: %v\n", err)
	return ExitErrorGeneric
}
