// Package bigcomplex provides approximate arbitrary-precision complex
// arithmetic on top of math/big.Float. Values carry no error bounds; they are
// used for iterations whose results are certified separately.
package bigcomplex

import (
	"math"
	"math/big"
)

// Number represents a complex number with arbitrary-precision parts.
type Number struct {
	Real *big.Float
	Imag *big.Float
}

// New creates a Number from float64 parts at the given precision.
func New(re, im float64, prec uint) *Number {
	return &Number{
		Real: new(big.Float).SetPrec(prec).SetFloat64(re),
		Imag: new(big.Float).SetPrec(prec).SetFloat64(im),
	}
}

// Zero returns 0 at the given precision.
func Zero(prec uint) *Number {
	return New(0, 0, prec)
}

// FromFloats copies re and im into a Number rounded to prec.
func FromFloats(re, im *big.Float, prec uint) *Number {
	return &Number{
		Real: new(big.Float).SetPrec(prec).Set(re),
		Imag: new(big.Float).SetPrec(prec).Set(im),
	}
}

// Prec returns the larger precision of the two parts.
func (z *Number) Prec() uint {
	return max(z.Real.Prec(), z.Imag.Prec())
}

// Copy returns a deep copy.
func (z *Number) Copy() *Number {
	return &Number{
		Real: new(big.Float).Copy(z.Real),
		Imag: new(big.Float).Copy(z.Imag),
	}
}

// SetPrec rounds both parts to prec in place and returns z.
func (z *Number) SetPrec(prec uint) *Number {
	z.Real.SetPrec(prec)
	z.Imag.SetPrec(prec)
	return z
}

// IsZero reports whether both parts are zero.
func (z *Number) IsZero() bool {
	return z.Real.Sign() == 0 && z.Imag.Sign() == 0
}

// Add returns z + w.
func (z *Number) Add(w *Number) *Number {
	p := max(z.Prec(), w.Prec())
	return &Number{
		Real: new(big.Float).SetPrec(p).Add(z.Real, w.Real),
		Imag: new(big.Float).SetPrec(p).Add(z.Imag, w.Imag),
	}
}

// Sub returns z - w.
func (z *Number) Sub(w *Number) *Number {
	p := max(z.Prec(), w.Prec())
	return &Number{
		Real: new(big.Float).SetPrec(p).Sub(z.Real, w.Real),
		Imag: new(big.Float).SetPrec(p).Sub(z.Imag, w.Imag),
	}
}

// Mul returns z * w.
func (z *Number) Mul(w *Number) *Number {
	p := max(z.Prec(), w.Prec())
	ac := new(big.Float).SetPrec(p).Mul(z.Real, w.Real)
	bd := new(big.Float).SetPrec(p).Mul(z.Imag, w.Imag)
	ad := new(big.Float).SetPrec(p).Mul(z.Real, w.Imag)
	bc := new(big.Float).SetPrec(p).Mul(z.Imag, w.Real)
	return &Number{
		Real: ac.Sub(ac, bd),
		Imag: ad.Add(ad, bc),
	}
}

// Conj returns the complex conjugate.
func (z *Number) Conj() *Number {
	return &Number{
		Real: new(big.Float).Copy(z.Real),
		Imag: new(big.Float).Neg(z.Imag),
	}
}

// AbsSquared returns |z|^2.
func (z *Number) AbsSquared() *big.Float {
	p := z.Prec()
	r2 := new(big.Float).SetPrec(p).Mul(z.Real, z.Real)
	i2 := new(big.Float).SetPrec(p).Mul(z.Imag, z.Imag)
	return r2.Add(r2, i2)
}

// Quo returns z / w. The caller must ensure w is nonzero.
func (z *Number) Quo(w *Number) *Number {
	p := max(z.Prec(), w.Prec())
	d := w.AbsSquared()
	num := z.Mul(w.Conj())
	return &Number{
		Real: new(big.Float).SetPrec(p).Quo(num.Real, d),
		Imag: new(big.Float).SetPrec(p).Quo(num.Imag, d),
	}
}

// MulFloat multiplies both parts by the real scalar s.
func (z *Number) MulFloat(s *big.Float) *Number {
	p := z.Prec()
	return &Number{
		Real: new(big.Float).SetPrec(p).Mul(z.Real, s),
		Imag: new(big.Float).SetPrec(p).Mul(z.Imag, s),
	}
}

// Pow returns z^n for n >= 0 by binary exponentiation.
func (z *Number) Pow(n int) *Number {
	p := z.Prec()
	result := New(1, 0, p)
	base := z.Copy()
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

// Scaled returns the parts of z as float64 values after dividing both by a
// common power of two, together with that exponent. Unlike Float64 this never
// overflows or underflows for large or tiny magnitudes.
func (z *Number) Scaled() (re, im float64, exp int) {
	if z.IsZero() {
		return 0, 0, 0
	}
	exp = math.MinInt32
	if z.Real.Sign() != 0 {
		exp = z.Real.MantExp(nil)
	}
	if z.Imag.Sign() != 0 {
		exp = max(exp, z.Imag.MantExp(nil))
	}
	scale := func(x *big.Float) float64 {
		if x.Sign() == 0 {
			return 0
		}
		f, _ := new(big.Float).SetMantExp(x, -exp).Float64()
		return f
	}
	return scale(z.Real), scale(z.Imag), exp
}

// Arg returns an approximation of the argument of z in (-π, π].
func (z *Number) Arg() float64 {
	re, im, _ := z.Scaled()
	return math.Atan2(im, re)
}
