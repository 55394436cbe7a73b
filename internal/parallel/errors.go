// Package parallel provides utilities for concurrent operations.
package parallel

import (
	"fmt"
	"runtime"
	"sync"
)

// ErrorCollector collects the first error from parallel goroutines.
// It is thread-safe and can be used by multiple goroutines simultaneously.
//
// Usage:
//
//	var ec parallel.ErrorCollector
//	var wg sync.WaitGroup
//	wg.Add(2)
//	go func() {
//	    defer wg.Done()
//	    ec.SetError(validateLeft())
//	}()
//	go func() {
//	    defer wg.Done()
//	    ec.SetError(validateRight())
//	}()
//	wg.Wait()
//	if err := ec.Err(); err != nil {
//	    return err
//	}
type ErrorCollector struct {
	once sync.Once
	err  error
}

// SetError records an error if one hasn't been recorded yet.
// Nil errors are ignored. This method is thread-safe.
func (c *ErrorCollector) SetError(err error) {
	if err != nil {
		c.once.Do(func() {
			c.err = err
		})
	}
}

// Err returns the first recorded error, or nil if no error was recorded.
// It should be called after all goroutines have completed.
func (c *ErrorCollector) Err() error {
	return c.err
}

// Reset resets the collector for reuse.
// WARNING: This is NOT thread-safe and should only be called when
// no goroutines are using the collector.
func (c *ErrorCollector) Reset() {
	c.once = sync.Once{}
	c.err = nil
}

// PanicError wraps a value recovered from a panicking worker.
type PanicError struct {
	Index int
	Value any
}

func (e PanicError) Error() string {
	return fmt.Sprintf("worker %d panicked: %v", e.Index, e.Value)
}

// Unwrap exposes the recovered value when it is itself an error.
func (e PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

// ForEach calls fn(i) for every i in [0, n) using at most workers
// goroutines (GOMAXPROCS when workers <= 0). Indices are split into
// contiguous chunks, so fn may write to slot i of a shared slice without
// locking. A panic inside fn is recovered and reported as a PanicError.
//
// Parameters:
//   - n: Number of work items.
//   - workers: Maximum number of goroutines.
//   - fn: The work function.
//
// Returns:
//   - error: The first error returned or recovered, or nil.
func ForEach(n, workers int, fn func(i int) error) error {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	workers = min(workers, n)
	if workers <= 1 {
		for i := range n {
			if err := call(i, fn); err != nil {
				return err
			}
		}
		return nil
	}

	var ec ErrorCollector
	var wg sync.WaitGroup
	chunk := (n + workers - 1) / workers
	for start := 0; start < n; start += chunk {
		end := min(start+chunk, n)
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for i := start; i < end; i++ {
				if err := call(i, fn); err != nil {
					ec.SetError(err)
					return
				}
			}
		}(start, end)
	}
	wg.Wait()
	return ec.Err()
}

func call(i int, fn func(int) error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = PanicError{Index: i, Value: r}
		}
	}()
	return fn(i)
}
