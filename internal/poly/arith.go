package poly

import (
	"errors"
	"math/big"
)

// ErrInexactDivision is returned by DivExact when the divisor does not
// divide the dividend over the integers.
var ErrInexactDivision = errors.New("polynomial division is not exact")

// Add returns p + q.
func (p Int) Add(q Int) Int {
	out := Zeros(max(len(p), len(q)))
	for i := range out {
		out[i].Add(p.Coeff(i), q.Coeff(i))
	}
	return out.Trim()
}

// Sub returns p - q.
func (p Int) Sub(q Int) Int {
	out := Zeros(max(len(p), len(q)))
	for i := range out {
		out[i].Sub(p.Coeff(i), q.Coeff(i))
	}
	return out.Trim()
}

// Scale returns c * p.
func (p Int) Scale(c *big.Int) Int {
	out := Zeros(len(p))
	for i := range p {
		out[i].Mul(p.Coeff(i), c)
	}
	return out.Trim()
}

// Shift returns x^k * p.
func (p Int) Shift(k int) Int {
	t := p.Trim()
	out := Zeros(len(t) + k)
	for i, c := range t {
		out[i+k].Set(c)
	}
	return out
}

// Mul returns p * q.
func (p Int) Mul(q Int) Int {
	a, b := p.Trim(), q.Trim()
	if len(a) == 0 || len(b) == 0 {
		return Int{}
	}
	return mulCoeffs(a, b)
}

// Pow returns p^k for k >= 0.
func (p Int) Pow(k int) Int {
	result := FromInt64s(1)
	base := p.Trim()
	for k > 0 {
		if k&1 == 1 {
			result = result.Mul(base)
		}
		k >>= 1
		if k > 0 {
			base = base.Mul(base)
		}
	}
	return result
}

// DivExact returns p / d when d divides p over the integers.
func (p Int) DivExact(d Int) (Int, error) {
	dn := d.Degree()
	if dn < 0 {
		return nil, ErrInexactDivision
	}
	rem := p.Clone().Trim()
	if len(rem) == 0 {
		return Int{}, nil
	}
	if len(rem)-1 < dn {
		return nil, ErrInexactDivision
	}
	lead := d.Lead()
	quo := Zeros(len(rem) - dn)
	r := new(big.Int)
	for i := len(rem) - 1; i >= dn; i-- {
		if rem[i].Sign() == 0 {
			continue
		}
		c, m := new(big.Int).QuoRem(rem[i], lead, r)
		if m.Sign() != 0 {
			return nil, ErrInexactDivision
		}
		quo[i-dn] = c
		for j := 0; j <= dn; j++ {
			rem[i-dn+j].Sub(rem[i-dn+j], new(big.Int).Mul(c, d.Coeff(j)))
		}
	}
	if !rem.IsZero() {
		return nil, ErrInexactDivision
	}
	return quo.Trim(), nil
}

// Content returns the nonnegative gcd of the coefficients (0 for the zero
// polynomial).
func (p Int) Content() *big.Int {
	g := new(big.Int)
	for _, c := range p {
		if c != nil && c.Sign() != 0 {
			g.GCD(nil, nil, g, new(big.Int).Abs(c))
		}
	}
	return g
}

// Primitive returns p divided by its content, with a positive leading
// coefficient.
func (p Int) Primitive() Int {
	g := p.Content()
	if g.Sign() == 0 {
		return p.Clone()
	}
	if p.Lead().Sign() < 0 {
		g.Neg(g)
	}
	out := Zeros(len(p))
	for i := range p {
		out[i].Quo(p.Coeff(i), g)
	}
	return out.Trim()
}

// Compose returns p(q(x)).
func (p Int) Compose(q Int) Int {
	n := p.Degree()
	if n < 0 {
		return Int{}
	}
	acc := Int{new(big.Int).Set(p[n])}
	for i := n - 1; i >= 0; i-- {
		acc = acc.Mul(q).Add(Int{new(big.Int).Set(p[i])})
	}
	return acc
}
