package roots

import (
	"github.com/agbru/polyroots/internal/ball"
	"github.com/agbru/polyroots/internal/poly"
)

// bitsPerDigit is log2(10), rounded up in the last place.
const bitsPerDigit = 3.32193

// TargetBits converts a number of decimal digits to the accuracy target in
// bits, with two guard bits.
func TargetBits(digits int) uint {
	if digits < 0 {
		digits = 0
	}
	return uint(float64(digits)*bitsPerDigit + 2)
}

// CheckAccuracy reports whether every enclosure has real and imaginary
// radius strictly below 2^-target.
func CheckAccuracy(roots []ball.Complex, target uint) bool {
	e := -int(target)
	for _, r := range roots {
		if !r.Re.RadBelowTwoExp(e) || !r.Im.RadBelowTwoExp(e) {
			return false
		}
	}
	return true
}

// certify runs the final checks on the lifted enclosures: the accuracy
// target, then real-root consistency against the original polynomial
// evaluated at prec.
func certify(validator RealRootValidator, roots []ball.Complex, p poly.Int, target, prec uint) Outcome {
	if !CheckAccuracy(roots, target) {
		return OutcomeLiftInaccurate
	}
	if !validator.ValidateRealRoots(roots, ball.PolyFromInt(p, prec), prec) {
		return OutcomeRealCheckFailed
	}
	return OutcomeCertified
}
