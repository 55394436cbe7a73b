package roots

import "github.com/agbru/polyroots/internal/ball"

// SnapReal returns a copy of roots in which every imaginary part that
// contains zero is replaced by exact zero. Only imaginary parts are
// snapped. Applying it twice gives the same result as applying it once.
func SnapReal(roots []ball.Complex) []ball.Complex {
	out := make([]ball.Complex, len(roots))
	for i, r := range roots {
		if r.Im.ContainsZero() {
			r = r.WithImagZero()
		}
		out[i] = r
	}
	return out
}

// Pretty returns a copy of roots in display order: real roots ascending,
// then the others by real then imaginary part.
func Pretty(roots []ball.Complex) []ball.Complex {
	out := append([]ball.Complex(nil), roots...)
	ball.SortPretty(out)
	return out
}
