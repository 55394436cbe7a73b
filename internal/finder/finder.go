// Package finder locates and rigorously encloses the complex roots of a
// polynomial with ball coefficients.
//
// Approximations come from the Durand–Kerner (Weierstrass) simultaneous
// iteration on plain arbitrary-precision numbers. They are then certified
// with the Weierstrass inclusion radius, so every returned ball provably
// contains a root, and balls that overlap no other ball contain exactly one.
package finder

import (
	"errors"
	"math/big"

	"github.com/agbru/polyroots/internal/ball"
	"github.com/agbru/polyroots/internal/bigcomplex"
)

// DefaultParallelThreshold is the degree from which per-root validation
// runs on several goroutines.
const DefaultParallelThreshold = 64

// Finder implements the root-finding and real-root validation backends.
// The zero value is ready to use.
type Finder struct {
	// ParallelThreshold is the degree from which validation is spread over
	// Workers goroutines. Zero means DefaultParallelThreshold.
	ParallelThreshold int
	// Workers bounds the goroutines used for validation. Zero means
	// GOMAXPROCS.
	Workers int
}

// New returns a Finder with default settings.
func New() *Finder {
	return &Finder{ParallelThreshold: DefaultParallelThreshold}
}

func (f *Finder) threshold() int {
	if f == nil || f.ParallelThreshold <= 0 {
		return DefaultParallelThreshold
	}
	return f.ParallelThreshold
}

func (f *Finder) workers() int {
	if f == nil {
		return 0
	}
	return f.Workers
}

// FindRoots computes enclosures for all roots of coeffs.
//
// When len(seeds) equals the degree and no seed is indeterminate, the seed
// midpoints are the starting points of the iteration; otherwise the standard
// spiral (0.4+0.9i)^k is used. At most maxIter sweeps are performed at
// precision prec.
//
// Returns the number of balls that overlap no other ball, and one ball per
// root in iteration order. Degree <= 0 yields (0, nil). Balls are
// indeterminate when a numerical breakdown prevents certification.
func (f *Finder) FindRoots(coeffs ball.Poly, seeds []ball.Complex, maxIter int, prec uint) (isolated int, roots []ball.Complex) {
	n := coeffs.Degree()
	if n <= 0 {
		return 0, nil
	}

	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(big.ErrNaN); !ok {
				panic(r)
			}
			isolated, roots = 0, indeterminate(n, prec)
		}
	}()

	monic := monicApprox(coeffs, n, prec)
	z := startingPoints(seeds, n, prec)
	durandKerner(monic, z, maxIter, prec)

	roots, err := f.validate(coeffs, z, prec)
	if err != nil {
		var nan big.ErrNaN
		if errors.As(err, &nan) {
			return 0, indeterminate(n, prec)
		}
		panic(err)
	}
	return countIsolated(roots), roots
}

// startingPoints returns n approximations to iterate on.
func startingPoints(seeds []ball.Complex, n int, prec uint) []*bigcomplex.Number {
	z := make([]*bigcomplex.Number, n)
	if len(seeds) == n && !anyIndeterminate(seeds) {
		for i, s := range seeds {
			re, im := s.Mid()
			z[i] = bigcomplex.FromFloats(re, im, prec)
		}
		return z
	}
	step := bigcomplex.New(0.4, 0.9, prec)
	z[0] = step.Copy()
	for i := 1; i < n; i++ {
		z[i] = z[i-1].Mul(step)
	}
	return z
}

func anyIndeterminate(balls []ball.Complex) bool {
	for _, b := range balls {
		if b.IsIndeterminate() {
			return true
		}
	}
	return false
}

// countIsolated returns how many balls overlap no other ball.
func countIsolated(roots []ball.Complex) int {
	count := 0
	for i := range roots {
		alone := true
		for j := range roots {
			if i != j && roots[i].Overlaps(roots[j]) {
				alone = false
				break
			}
		}
		if alone {
			count++
		}
	}
	return count
}

func indeterminate(n int, prec uint) []ball.Complex {
	out := make([]ball.Complex, n)
	for i := range out {
		out[i] = ball.IndeterminateComplex(prec)
	}
	return out
}
