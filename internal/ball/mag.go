package ball

import (
	"math"
	"math/big"
)

// magPrec is the precision of radius arithmetic. Radii only need a few
// significant bits; their exponent range is what matters.
const magPrec = 30

// upper returns a fresh float that rounds away from zero, for upper bounds.
func upper() *big.Float {
	return new(big.Float).SetPrec(magPrec).SetMode(big.AwayFromZero)
}

// lower returns a fresh float that rounds toward zero, for lower bounds.
func lower() *big.Float {
	return new(big.Float).SetPrec(magPrec).SetMode(big.ToZero)
}

func inf() *big.Float {
	return upper().SetInf(false)
}

func zeroMag() *big.Float {
	return upper()
}

// magUp returns an upper bound of |x|.
func magUp(x *big.Float) *big.Float {
	return upper().Abs(x)
}

// magLow returns a lower bound of |x|.
func magLow(x *big.Float) *big.Float {
	return lower().Abs(x)
}

// twoExp returns 2^e exactly.
func twoExp(e int) *big.Float {
	return upper().SetMantExp(big.NewFloat(0.5), e+1)
}

func addUp(a, b *big.Float) *big.Float {
	return upper().Add(a, b)
}

func addLow(a, b *big.Float) *big.Float {
	return lower().Add(a, b)
}

func mulUp(a, b *big.Float) *big.Float {
	if a.Sign() == 0 || b.Sign() == 0 {
		return zeroMag()
	}
	return upper().Mul(a, b)
}

func mulLow(a, b *big.Float) *big.Float {
	if a.Sign() == 0 || b.Sign() == 0 {
		return lower()
	}
	return lower().Mul(a, b)
}

// subLow returns a lower bound of max(a-b, 0).
func subLow(a, b *big.Float) *big.Float {
	if b.IsInf() {
		return lower()
	}
	d := lower().Sub(a, b)
	if d.Sign() < 0 {
		return lower()
	}
	return d
}

// quoUp returns an upper bound of a/b for nonnegative a and b. A zero
// denominator yields +Inf.
func quoUp(a, b *big.Float) *big.Float {
	if a.Sign() == 0 {
		return zeroMag()
	}
	if b.Sign() == 0 || a.IsInf() {
		return inf()
	}
	if b.IsInf() {
		return zeroMag()
	}
	return upper().Quo(a, b)
}

// mulUint returns an upper bound of a*n.
func mulUint(a *big.Float, n int) *big.Float {
	return mulUp(a, upper().SetInt64(int64(n)))
}

// Relative slack applied to float64 transcendental results. math.Pow and
// math.Sqrt are accurate to a couple of ulps, far below this.
const (
	slackUp   = 1 + 0x1p-40
	slackDown = 1 - 0x1p-40
)

// rootUp returns an upper bound of x^(1/n) for x >= 0.
func rootUp(x *big.Float, n int) *big.Float {
	return rootBound(x, n, slackUp, upper)
}

// rootLow returns a lower bound of x^(1/n) for x >= 0.
func rootLow(x *big.Float, n int) *big.Float {
	return rootBound(x, n, slackDown, lower)
}

func rootBound(x *big.Float, n int, slack float64, fresh func() *big.Float) *big.Float {
	if x.Sign() == 0 {
		return fresh()
	}
	if x.IsInf() {
		return fresh().SetInf(false)
	}
	if n == 1 {
		return fresh().Set(x)
	}
	// x = m * 2^e with m in [0.5, 1); split e = q*n + r with 0 <= r < n.
	mant := new(big.Float)
	e := x.MantExp(mant)
	q := e / n
	r := e % n
	if r < 0 {
		r += n
		q--
	}
	m, _ := mant.Float64()
	f := math.Pow(m, 1/float64(n)) * math.Exp2(float64(r)/float64(n)) * slack
	return fresh().SetMantExp(fresh().SetFloat64(f), q)
}

// hypotUp returns an upper bound of sqrt(a^2 + b^2).
func hypotUp(a, b *big.Float) *big.Float {
	if a.IsInf() || b.IsInf() {
		return inf()
	}
	return rootUp(addUp(mulUp(a, a), mulUp(b, b)), 2)
}

// hypotLow returns a lower bound of sqrt(a^2 + b^2).
func hypotLow(a, b *big.Float) *big.Float {
	return rootLow(addLow(mulLow(a, a), mulLow(b, b)), 2)
}

// roundingError bounds the error of a result rounded to its precision.
func roundingError(x *big.Float) *big.Float {
	if x.Sign() == 0 {
		return zeroMag()
	}
	m := magUp(x)
	return m.SetMantExp(m, 1-int(x.Prec()))
}

// The exported helpers below operate on nonnegative bounds such as those
// returned by AbsUpper, AbsLower and Rad.

// MulUpper returns an upper bound of a*b.
func MulUpper(a, b *big.Float) *big.Float { return mulUp(a, b) }

// MulLower returns a lower bound of a*b.
func MulLower(a, b *big.Float) *big.Float { return mulLow(a, b) }

// QuoUpper returns an upper bound of a/b, or +Inf when b is zero.
func QuoUpper(a, b *big.Float) *big.Float { return quoUp(a, b) }

// ScaleUpper returns an upper bound of a*n.
func ScaleUpper(a *big.Float, n int) *big.Float { return mulUint(a, n) }

// TwoExp returns 2^e as a bound.
func TwoExp(e int) *big.Float { return twoExp(e) }

// AddUpper returns an upper bound of a+b.
func AddUpper(a, b *big.Float) *big.Float { return addUp(a, b) }
