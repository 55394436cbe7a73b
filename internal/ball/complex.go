package ball

import (
	"math/big"

	"github.com/agbru/polyroots/internal/bigcomplex"
)

// Complex is a rectangular complex ball: a real ball for each component.
type Complex struct {
	Re Real
	Im Real
}

// NewComplex returns the exact ball 0 + 0i at precision prec.
func NewComplex(prec uint) Complex {
	return Complex{Re: NewReal(prec), Im: NewReal(prec)}
}

// ComplexFromReal returns x + 0i with an exact zero imaginary part.
func ComplexFromReal(x Real) Complex {
	return Complex{Re: x, Im: NewReal(x.Prec())}
}

// ComplexFromInt64 returns the exact ball re + im*i.
func ComplexFromInt64(re, im int64, prec uint) Complex {
	return Complex{Re: RealFromInt64(re, prec), Im: RealFromInt64(im, prec)}
}

// ComplexFromNumber returns a ball centered on z rounded to prec bits. The
// radius only accounts for that rounding.
func ComplexFromNumber(z *bigcomplex.Number, prec uint) Complex {
	return Complex{Re: RealFromFloat(z.Real, prec), Im: RealFromFloat(z.Imag, prec)}
}

// Number returns the midpoint as an approximate complex number.
func (z Complex) Number() *bigcomplex.Number {
	return &bigcomplex.Number{Real: z.Re.Mid(), Imag: z.Im.Mid()}
}

// Prec returns the larger precision of the two components.
func (z Complex) Prec() uint {
	return max(z.Re.Prec(), z.Im.Prec())
}

// Mid returns copies of the real and imaginary midpoints.
func (z Complex) Mid() (re, im *big.Float) {
	return z.Re.Mid(), z.Im.Mid()
}

// RadRe returns the radius of the real part.
func (z Complex) RadRe() *big.Float { return z.Re.Rad() }

// RadIm returns the radius of the imaginary part.
func (z Complex) RadIm() *big.Float { return z.Im.Rad() }

// ContainsZero reports whether 0 lies in the ball.
func (z Complex) ContainsZero() bool {
	return z.Re.ContainsZero() && z.Im.ContainsZero()
}

// IsIndeterminate reports whether either component is indeterminate.
func (z Complex) IsIndeterminate() bool {
	return z.Re.IsIndeterminate() || z.Im.IsIndeterminate()
}

// IsReal reports whether the imaginary part is exactly zero.
func (z Complex) IsReal() bool {
	return z.Im.IsExactZero()
}

// Overlaps reports whether the two boxes may share a point.
func (z Complex) Overlaps(w Complex) bool {
	return z.Re.Overlaps(w.Re) && z.Im.Overlaps(w.Im)
}

// Contains reports whether re + im*i lies in the box.
func (z Complex) Contains(re, im *big.Float) bool {
	return z.Re.Contains(re) && z.Im.Contains(im)
}

// AbsUpper returns an upper bound of |w| over the box.
func (z Complex) AbsUpper() *big.Float {
	return hypotUp(z.Re.AbsUpper(), z.Im.AbsUpper())
}

// AbsLower returns a lower bound of |w| over the box.
func (z Complex) AbsLower() *big.Float {
	return hypotLow(z.Re.AbsLower(), z.Im.AbsLower())
}

// DiscRadius returns an upper bound of the distance from the midpoint to
// any point of the box.
func (z Complex) DiscRadius() *big.Float {
	return addUp(z.Re.rad, z.Im.rad)
}

// Neg returns -z.
func (z Complex) Neg() Complex {
	return Complex{Re: z.Re.Neg(), Im: z.Im.Neg()}
}

// Add returns z + w.
func (z Complex) Add(w Complex) Complex {
	return Complex{Re: z.Re.Add(w.Re), Im: z.Im.Add(w.Im)}
}

// Sub returns z - w.
func (z Complex) Sub(w Complex) Complex {
	return Complex{Re: z.Re.Sub(w.Re), Im: z.Im.Sub(w.Im)}
}

// Mul returns z * w.
func (z Complex) Mul(w Complex) Complex {
	if z.Im.IsExactZero() {
		return Complex{Re: z.Re.Mul(w.Re), Im: z.Re.Mul(w.Im)}
	}
	if w.Im.IsExactZero() {
		return Complex{Re: z.Re.Mul(w.Re), Im: z.Im.Mul(w.Re)}
	}
	re := z.Re.Mul(w.Re).Sub(z.Im.Mul(w.Im))
	im := z.Re.Mul(w.Im).Add(z.Im.Mul(w.Re))
	return Complex{Re: re, Im: im}
}

// MulReal returns z * x.
func (z Complex) MulReal(x Real) Complex {
	return Complex{Re: z.Re.Mul(x), Im: z.Im.Mul(x)}
}

// Pow returns z^n for n >= 0.
func (z Complex) Pow(n int) Complex {
	result := ComplexFromInt64(1, 0, z.Prec())
	base := z
	for n > 0 {
		if n&1 == 1 {
			result = result.Mul(base)
		}
		n >>= 1
		if n > 0 {
			base = base.Mul(base)
		}
	}
	return result
}

// WithImagZero returns z with its imaginary part replaced by exact zero.
func (z Complex) WithImagZero() Complex {
	return Complex{Re: z.Re, Im: NewReal(z.Im.Prec())}
}

// WithRadius returns z with both component radii set to rad.
func (z Complex) WithRadius(rad *big.Float) Complex {
	return Complex{Re: z.Re.WithRadius(rad), Im: z.Im.WithRadius(rad)}
}
