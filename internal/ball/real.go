// Package ball implements midpoint-radius interval arithmetic ("balls") over
// real and complex numbers on top of math/big.
//
// A ball [m +/- r] represents every number within distance r of m. Every
// operation returns a ball that contains all possible exact results for
// inputs taken from its operand balls: midpoint rounding errors are added to
// the radius, and radii are computed with outward rounding. A ball with an
// infinite radius is indeterminate.
package ball

import (
	"math/big"
)

// Real is a real ball [Mid +/- Rad]. The zero value is not usable; create
// balls with NewReal, RealFromInt or RealFromFloat.
type Real struct {
	mid *big.Float
	rad *big.Float
}

// NewReal returns the exact ball [0 +/- 0] with midpoint precision prec.
func NewReal(prec uint) Real {
	return Real{mid: new(big.Float).SetPrec(prec), rad: zeroMag()}
}

// RealFromInt returns a ball containing x, rounded to prec bits.
func RealFromInt(x *big.Int, prec uint) Real {
	m := new(big.Float).SetPrec(prec).SetInt(x)
	r := zeroMag()
	if m.Acc() != big.Exact {
		r = roundingError(m)
	}
	return Real{mid: m, rad: r}
}

// RealFromFloat returns a ball containing x, rounded to prec bits.
func RealFromFloat(x *big.Float, prec uint) Real {
	m := new(big.Float).SetPrec(prec).Set(x)
	r := zeroMag()
	if m.Acc() != big.Exact {
		r = roundingError(m)
	}
	return Real{mid: m, rad: r}
}

// RealFromInt64 returns the exact ball [x +/- 0] when x fits in prec bits.
func RealFromInt64(x int64, prec uint) Real {
	return RealFromInt(big.NewInt(x), prec)
}

// Indeterminate returns a ball with midpoint 0 and infinite radius.
func Indeterminate(prec uint) Real {
	return Real{mid: new(big.Float).SetPrec(prec), rad: inf()}
}

// WithRadius returns a copy of r whose radius is replaced by rad.
func (r Real) WithRadius(rad *big.Float) Real {
	return Real{mid: new(big.Float).Copy(r.mid), rad: upper().Set(rad)}
}

// Prec returns the midpoint precision.
func (r Real) Prec() uint {
	return r.mid.Prec()
}

// Mid returns a copy of the midpoint.
func (r Real) Mid() *big.Float {
	return new(big.Float).Copy(r.mid)
}

// Rad returns a copy of the radius.
func (r Real) Rad() *big.Float {
	return upper().Set(r.rad)
}

// IsIndeterminate reports whether the radius is infinite.
func (r Real) IsIndeterminate() bool {
	return r.rad.IsInf()
}

// IsExactZero reports whether r is exactly [0 +/- 0].
func (r Real) IsExactZero() bool {
	return r.mid.Sign() == 0 && r.rad.Sign() == 0
}

// IsExact reports whether the radius is zero.
func (r Real) IsExact() bool {
	return r.rad.Sign() == 0
}

// RadBelowTwoExp reports whether the radius is strictly less than 2^e.
func (r Real) RadBelowTwoExp(e int) bool {
	return r.rad.Cmp(twoExp(e)) < 0
}

// ContainsZero reports whether 0 lies in the ball.
func (r Real) ContainsZero() bool {
	return new(big.Float).Abs(r.mid).Cmp(r.rad) <= 0
}

// IsPositive reports whether every point of the ball is > 0.
func (r Real) IsPositive() bool {
	return r.mid.Sign() > 0 && new(big.Float).Abs(r.mid).Cmp(r.rad) > 0
}

// IsNegative reports whether every point of the ball is < 0.
func (r Real) IsNegative() bool {
	return r.mid.Sign() < 0 && new(big.Float).Abs(r.mid).Cmp(r.rad) > 0
}

// IsNonNegative reports whether every point of the ball is >= 0.
func (r Real) IsNonNegative() bool {
	return r.mid.Sign() >= 0 && new(big.Float).Abs(r.mid).Cmp(r.rad) >= 0
}

// Lt reports whether every point of r is less than every point of s.
func (r Real) Lt(s Real) bool {
	return s.Sub(r).IsPositive()
}

// Overlaps reports whether r and s may share a point.
func (r Real) Overlaps(s Real) bool {
	return r.Sub(s).ContainsZero()
}

// Contains reports whether x lies in the ball.
func (r Real) Contains(x *big.Float) bool {
	if r.IsIndeterminate() {
		return true
	}
	m, _ := r.mid.Rat(nil)
	v, _ := x.Rat(nil)
	rad, _ := r.rad.Rat(nil)
	d := new(big.Rat).Sub(m, v)
	return d.Abs(d).Cmp(rad) <= 0
}

// AbsUpper returns an upper bound of |x| over the ball.
func (r Real) AbsUpper() *big.Float {
	return addUp(magUp(r.mid), r.rad)
}

// AbsLower returns a lower bound of |x| over the ball.
func (r Real) AbsLower() *big.Float {
	return subLow(magLow(r.mid), r.rad)
}

// Sign returns +1 or -1 when the sign is certain and 0 otherwise.
func (r Real) Sign() int {
	switch {
	case r.IsPositive():
		return 1
	case r.IsNegative():
		return -1
	default:
		return 0
	}
}

// Neg returns -r.
func (r Real) Neg() Real {
	return Real{mid: new(big.Float).Neg(r.mid), rad: upper().Set(r.rad)}
}

// Add returns r + s.
func (r Real) Add(s Real) Real {
	m := new(big.Float).SetPrec(max(r.Prec(), s.Prec())).Add(r.mid, s.mid)
	return Real{mid: m, rad: withRounding(m, addUp(r.rad, s.rad))}
}

// Sub returns r - s.
func (r Real) Sub(s Real) Real {
	m := new(big.Float).SetPrec(max(r.Prec(), s.Prec())).Sub(r.mid, s.mid)
	return Real{mid: m, rad: withRounding(m, addUp(r.rad, s.rad))}
}

// Mul returns r * s.
func (r Real) Mul(s Real) Real {
	m := new(big.Float).SetPrec(max(r.Prec(), s.Prec())).Mul(r.mid, s.mid)
	if r.IsIndeterminate() || s.IsIndeterminate() {
		return Real{mid: m, rad: inf()}
	}
	rad := addUp(mulUp(magUp(r.mid), s.rad), mulUp(magUp(s.mid), r.rad))
	rad = addUp(rad, mulUp(r.rad, s.rad))
	return Real{mid: m, rad: withRounding(m, rad)}
}

// MulTwoExp returns r * 2^e. The result is exact.
func (r Real) MulTwoExp(e int) Real {
	m := new(big.Float).Copy(r.mid)
	if m.Sign() != 0 {
		m.SetMantExp(m, e)
	}
	rad := upper().Set(r.rad)
	if rad.Sign() != 0 && !rad.IsInf() {
		rad.SetMantExp(rad, e)
	}
	return Real{mid: m, rad: rad}
}

// SetPrec returns r with its midpoint rounded to prec bits.
func (r Real) SetPrec(prec uint) Real {
	m := new(big.Float).SetPrec(prec).Set(r.mid)
	return Real{mid: m, rad: withRounding(m, upper().Set(r.rad))}
}

func withRounding(m, rad *big.Float) *big.Float {
	if m.Acc() == big.Exact {
		return rad
	}
	return addUp(rad, roundingError(m))
}

// WithExactMid returns the exact ball [mid +/- 0].
func (r Real) WithExactMid() Real {
	return Real{mid: new(big.Float).Copy(r.mid), rad: zeroMag()}
}
