package ball

import (
	"fmt"
	"slices"
	"strings"
)

// Format renders r with the given number of significant digits, as
// "[mid +/- rad]", or just "mid" when the ball is exact. A zero midpoint
// prints as "0" whatever its sign bit.
func (r Real) Format(digits int) string {
	if digits <= 0 {
		digits = 6
	}
	if r.IsIndeterminate() {
		return "[+/- inf]"
	}
	mid := "0"
	if r.mid.Sign() != 0 {
		mid = r.mid.Text('g', digits)
	}
	if r.IsExact() {
		return mid
	}
	return fmt.Sprintf("[%s +/- %s]", mid, r.rad.Text('e', 2))
}

// String implements fmt.Stringer with 10 significant digits.
func (r Real) String() string {
	return r.Format(10)
}

// Format renders z as "re + im*I". Real balls whose imaginary part is
// exactly zero print only the real part.
func (z Complex) Format(digits int) string {
	if z.IsReal() {
		return z.Re.Format(digits)
	}
	var b strings.Builder
	b.WriteString(z.Re.Format(digits))
	im := z.Im
	if im.mid.Sign() < 0 {
		b.WriteString(" - ")
		im = im.Neg()
	} else {
		b.WriteString(" + ")
	}
	b.WriteString(im.Format(digits))
	b.WriteString("*I")
	return b.String()
}

// String implements fmt.Stringer with 10 significant digits.
func (z Complex) String() string {
	return z.Format(10)
}

// SortPretty orders roots for display: roots with an exactly zero imaginary
// part first, by increasing real part, then the others by real part and then
// imaginary part. Ties keep their input order.
func SortPretty(roots []Complex) {
	slices.SortStableFunc(roots, func(a, b Complex) int {
		ar, br := a.IsReal(), b.IsReal()
		if ar != br {
			if ar {
				return -1
			}
			return 1
		}
		if c := a.Re.mid.Cmp(b.Re.mid); c != 0 {
			return c
		}
		return a.Im.mid.Cmp(b.Im.mid)
	})
}
