package finder

import (
	"slices"

	"github.com/agbru/polyroots/internal/ball"
)

// ValidateRealRoots checks that the enclosures are consistent with the real
// roots of a polynomial with real coefficients: the balls whose imaginary
// part contains zero must each hold a genuinely real root. It sorts these
// candidates by midpoint and verifies that the polynomial changes sign
// between consecutive candidates, starting from the sign at -inf and ending
// with the sign at +inf.
//
// It returns false when the check cannot be completed at this precision.
// The candidate count must have the parity of the degree, since nonreal
// roots come in conjugate pairs.
func (f *Finder) ValidateRealRoots(roots []ball.Complex, coeffs ball.Poly, prec uint) bool {
	deg := coeffs.Degree()
	if deg <= 1 {
		return true
	}

	var candidates []ball.Real
	for _, r := range roots {
		if r.Im.ContainsZero() {
			candidates = append(candidates, r.Re)
		}
	}
	if len(candidates)%2 != deg%2 {
		return false
	}
	if len(candidates) == 0 {
		return true
	}

	slices.SortFunc(candidates, func(a, b ball.Real) int {
		return a.Mid().Cmp(b.Mid())
	})

	signPosInf := coeffs.Lead().Sign()
	if signPosInf == 0 {
		return false
	}
	signNegInf := signPosInf
	if deg%2 == 1 {
		signNegInf = -signPosInf
	}

	prev := signNegInf
	for i := 0; i+1 < len(candidates); i++ {
		// t is the midpoint between the two midpoints. A wide ball can
		// swallow it, in which case it does not separate the pair.
		t := candidates[i].WithExactMid().Add(candidates[i+1].WithExactMid()).MulTwoExp(-1)
		if !candidates[i].Lt(t) || !t.Lt(candidates[i+1]) {
			return false
		}
		sign := coeffs.EvaluateReal(t).Sign()
		if sign == 0 || sign != -prev {
			return false
		}
		prev = sign
	}
	return signPosInf == -prev
}
