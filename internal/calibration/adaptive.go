// Package calibration picks hardware-dependent defaults for the isolation
// backends without running benchmarks.
package calibration

import "runtime"

// ─────────────────────────────────────────────────────────────────────────────
// Adaptive Parallel Threshold
// ─────────────────────────────────────────────────────────────────────────────

// Sequential is a parallel threshold no polynomial reaches. It keeps root
// validation on the calling goroutine.
const Sequential = 1 << 30

// MaxParallelThreshold bounds thresholds accepted by ValidateParallelThreshold.
const MaxParallelThreshold = 1 << 20

// EstimateParallelThreshold returns the degree from which the finder should
// spread root validation over several goroutines on this machine.
func EstimateParallelThreshold() int {
	return estimateParallelThreshold(runtime.NumCPU())
}

// Validating one root costs a Horner evaluation per Newton step, so the
// crossover falls with the core count until goroutine overhead dominates.
func estimateParallelThreshold(numCPU int) int {
	switch {
	case numCPU <= 1:
		return Sequential
	case numCPU == 2:
		return 256
	case numCPU <= 4:
		return 128
	case numCPU <= 8:
		return 64
	case numCPU <= 16:
		return 32
	default:
		return 16
	}
}

// ValidateParallelThreshold clamps a user-supplied threshold to
// [1, MaxParallelThreshold], leaving Sequential untouched.
func ValidateParallelThreshold(threshold int) int {
	switch {
	case threshold == Sequential:
		return threshold
	case threshold < 1:
		return 1
	case threshold > MaxParallelThreshold:
		return MaxParallelThreshold
	}
	return threshold
}
