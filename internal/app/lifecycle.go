package app

import (
	"context"
	"os/signal"
	"syscall"
)

// SetupSignals creates a context that will be canceled when the application
// receives SIGINT (Ctrl+C) or SIGTERM signals. A running isolation then
// stops at the start of its next round.
//
// Parameters:
//   - ctx: The parent context.
//
// Returns:
//   - context.Context: A new context that will be canceled on signal receipt.
//   - context.CancelFunc: A function to stop listening for signals (should be deferred).
func SetupSignals(ctx context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
}
