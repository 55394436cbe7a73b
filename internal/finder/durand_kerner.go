package finder

import (
	"math/big"

	"github.com/agbru/polyroots/internal/ball"
	"github.com/agbru/polyroots/internal/bigcomplex"
)

// monicApprox returns the coefficient midpoints divided by the leading one.
func monicApprox(coeffs ball.Poly, n int, prec uint) []*big.Float {
	lead := coeffs[n].Mid()
	out := make([]*big.Float, n+1)
	for i := 0; i <= n; i++ {
		out[i] = new(big.Float).SetPrec(prec).Quo(coeffs[i].Mid(), lead)
	}
	return out
}

// evalMonic evaluates the real-coefficient polynomial a at z by Horner's rule.
func evalMonic(a []*big.Float, z *bigcomplex.Number, prec uint) *bigcomplex.Number {
	n := len(a) - 1
	acc := bigcomplex.FromFloats(a[n], new(big.Float), prec)
	for i := n - 1; i >= 0; i-- {
		acc = acc.Mul(z)
		acc.Real.Add(acc.Real, a[i])
	}
	return acc
}

// durandKerner refines z in place with Gauss–Seidel Weierstrass updates
//
//	z_i <- z_i - p(z_i) / prod_{j != i} (z_i - z_j)
//
// for at most maxIter sweeps, stopping early once every correction is
// below 2^-(prec-4) relative to its point.
func durandKerner(a []*big.Float, z []*bigcomplex.Number, maxIter int, prec uint) {
	n := len(z)
	if n == 1 {
		z[0] = bigcomplex.FromFloats(new(big.Float).Neg(a[0]), new(big.Float), prec)
		return
	}

	for range maxIter {
		converged := true
		for i := range n {
			num := evalMonic(a, z[i], prec)
			if num.IsZero() {
				continue
			}
			den := bigcomplex.New(1, 0, prec)
			for j := range n {
				if j != i {
					den = den.Mul(z[i].Sub(z[j]))
				}
			}
			if den.IsZero() {
				// Two points collided; nudge this one off the other.
				z[i] = z[i].Add(nudge(z[i], prec))
				converged = false
				continue
			}
			corr := num.Quo(den)
			z[i] = z[i].Sub(corr)
			if !negligible(corr, z[i], prec) {
				converged = false
			}
		}
		if converged {
			return
		}
	}
}

// negligible reports whether corr is below 2^-(prec-4) relative to z.
func negligible(corr, z *bigcomplex.Number, prec uint) bool {
	if corr.IsZero() {
		return true
	}
	_, _, ce := corr.Scaled()
	if z.IsZero() {
		return ce < -int(prec)
	}
	_, _, ze := z.Scaled()
	return ce-ze < -(int(prec) - 4)
}

// nudge returns a small offset proportional to |z|, or 2^-prec/2 at zero.
func nudge(z *bigcomplex.Number, prec uint) *bigcomplex.Number {
	_, _, e := z.Scaled()
	if z.IsZero() {
		e = 0
	}
	d := bigcomplex.New(0.5, 0.25, prec)
	shift := e - int(prec)/2
	d.Real.SetMantExp(d.Real, shift)
	d.Imag.SetMantExp(d.Imag, shift)
	return d
}
