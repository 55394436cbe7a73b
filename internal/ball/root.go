package ball

import (
	"math"
	"math/big"

	"github.com/agbru/polyroots/internal/bigcomplex"
)

// newtonGuard is the number of extra bits carried by Newton iterations
// before rounding the result to the working precision.
const newtonGuard = 32

// argSlack shrinks angular sector checks so that float64 argument errors
// can never flip their outcome.
const argSlack = 1 - 0x1p-20

// IndeterminateComplex returns a ball with infinite radius in both parts.
func IndeterminateComplex(prec uint) Complex {
	return Complex{Re: Indeterminate(prec), Im: Indeterminate(prec)}
}

// Root returns a ball containing the principal n-th root of every point of
// z. The principal branch has its cut on the negative real axis. When the
// root cannot be certified at this precision, for example because z touches
// the branch cut, the result is indeterminate.
func Root(z Complex, n int, prec uint) Complex {
	switch {
	case n <= 0 || z.IsIndeterminate():
		return IndeterminateComplex(prec)
	case n == 1:
		return z
	}

	if z.ContainsZero() {
		// Every root of a point of modulus <= U has modulus <= U^(1/n).
		r := rootUp(z.AbsUpper(), n)
		return NewComplex(prec).WithRadius(r)
	}

	w0 := approxRoot(z.Number(), n, prec)
	if math.Abs(w0.Arg()) >= math.Pi/float64(n)*argSlack {
		return IndeterminateComplex(prec)
	}
	w := ComplexFromNumber(w0, prec)
	c := w.Pow(n)

	// Every point of z lies in the disc D(w^n, R).
	mid := Complex{
		Re: RealFromFloat(z.Re.mid, z.Re.Prec()),
		Im: RealFromFloat(z.Im.mid, z.Im.Prec()),
	}
	R := addUp(z.DiscRadius(), c.Sub(mid).AbsUpper())

	// Distance from w^n to the branch cut.
	var dist *big.Float
	if c.Re.IsNonNegative() {
		dist = c.AbsLower()
	} else {
		dist = c.Im.AbsLower()
	}
	delta := subLow(dist, R)
	if delta.Sign() == 0 {
		return IndeterminateComplex(prec)
	}

	// |d/dx x^(1/n)| = |x|^(1/n - 1) / n, and |x| >= delta on the disc.
	err := quoUp(mulUp(R, rootUp(delta, n)), mulLow(delta, lower().SetInt64(int64(n))))
	return Complex{
		Re: w.Re.WithRadius(addUp(w.Re.rad, err)),
		Im: w.Im.WithRadius(addUp(w.Im.rad, err)),
	}
}

// RootOfUnity returns a ball containing exp(2πi/n).
func RootOfUnity(n int, prec uint) Complex {
	switch n {
	case 1:
		return ComplexFromInt64(1, 0, prec)
	case 2:
		return ComplexFromInt64(-1, 0, prec)
	case 4:
		return ComplexFromInt64(0, 1, prec)
	}
	if n <= 0 {
		return IndeterminateComplex(prec)
	}

	theta := 2 * math.Pi / float64(n)
	work := prec + newtonGuard
	w := bigcomplex.New(math.Cos(theta), math.Sin(theta), work)
	one := bigcomplex.New(1, 0, work)
	nf := new(big.Float).SetPrec(work).SetInt64(int64(n))
	for range newtonSteps(work) {
		wn1 := w.Pow(n - 1)
		w = w.Sub(wn1.Mul(w).Sub(one).Quo(wn1.MulFloat(nf)))
	}
	w.SetPrec(prec)
	if math.Abs(w.Arg()-theta) >= math.Pi/float64(2*n)*argSlack {
		return IndeterminateComplex(prec)
	}

	// Some root of x^n - 1 lies within n|p(w)/p'(w)| = |w^n - 1| / |w|^(n-1).
	b := ComplexFromNumber(w, prec)
	pn1 := b.Pow(n - 1)
	eps := pn1.Mul(b).Sub(ComplexFromInt64(1, 0, prec)).AbsUpper()
	r := quoUp(eps, pn1.AbsLower())

	// That root is exp(2πi/n) only if r is small against the root spacing.
	limit := lower().SetFloat64(0.25 * math.Sin(math.Pi/float64(2*n)))
	if r.Cmp(limit) >= 0 {
		return IndeterminateComplex(prec)
	}
	return b.WithRadius(r)
}

// approxRoot approximates the principal n-th root of m by Newton iteration
// from a float64 starting point. The result is rounded to prec bits.
func approxRoot(m *bigcomplex.Number, n int, prec uint) *bigcomplex.Number {
	work := prec + newtonGuard
	re, im, e := m.Scaled()
	q, r := e/n, e%n
	if r < 0 {
		r += n
		q--
	}
	mod := math.Pow(math.Hypot(re, im), 1/float64(n)) * math.Exp2(float64(r)/float64(n))
	theta := math.Atan2(im, re) / float64(n)
	w := bigcomplex.New(mod*math.Cos(theta), mod*math.Sin(theta), work)
	w.Real.SetMantExp(w.Real, q)
	w.Imag.SetMantExp(w.Imag, q)

	target := m.Copy().SetPrec(work)
	nf := new(big.Float).SetPrec(work).SetInt64(int64(n))
	for range newtonSteps(work) {
		wn1 := w.Pow(n - 1)
		if wn1.IsZero() {
			break
		}
		w = w.Sub(wn1.Mul(w).Sub(target).Quo(wn1.MulFloat(nf)))
	}
	return w.SetPrec(prec)
}

// newtonSteps returns enough quadratic Newton steps to go from float64
// accuracy to prec bits, plus two.
func newtonSteps(prec uint) int {
	steps := 2
	for bits := uint(40); bits < prec; bits *= 2 {
		steps++
	}
	return steps
}
