// Package poly provides dense univariate polynomials with arbitrary-size
// integer coefficients, the textbook test families used to exercise root
// isolation, and a command-line style parser for both.
package poly

import (
	"fmt"
	"math/big"
	"strings"
)

// Int is a polynomial with integer coefficients, lowest degree first:
// p[i] is the coefficient of x^i. Trailing zero coefficients are allowed
// and ignored by Degree.
type Int []*big.Int

// New returns a polynomial holding copies of coeffs.
func New(coeffs ...*big.Int) Int {
	p := make(Int, len(coeffs))
	for i, c := range coeffs {
		if c == nil {
			p[i] = new(big.Int)
		} else {
			p[i] = new(big.Int).Set(c)
		}
	}
	return p
}

// FromInt64s returns the polynomial c0 + c1 x + ... + cn x^n.
func FromInt64s(coeffs ...int64) Int {
	p := make(Int, len(coeffs))
	for i, c := range coeffs {
		p[i] = big.NewInt(c)
	}
	return p
}

// Zeros returns the zero polynomial with n coefficient slots.
func Zeros(n int) Int {
	p := make(Int, n)
	for i := range p {
		p[i] = new(big.Int)
	}
	return p
}

// Monomial returns c x^k.
func Monomial(c int64, k int) Int {
	p := Zeros(k + 1)
	p[k].SetInt64(c)
	return p
}

// Degree returns the index of the last nonzero coefficient, or -1 for the
// zero polynomial.
func (p Int) Degree() int {
	for i := len(p) - 1; i >= 0; i-- {
		if p[i] != nil && p[i].Sign() != 0 {
			return i
		}
	}
	return -1
}

// IsZero reports whether every coefficient is zero.
func (p Int) IsZero() bool {
	return p.Degree() < 0
}

// Coeff returns the coefficient of x^i; out-of-range indices yield 0.
func (p Int) Coeff(i int) *big.Int {
	if i < 0 || i >= len(p) || p[i] == nil {
		return new(big.Int)
	}
	return p[i]
}

// Lead returns the leading coefficient, or 0 for the zero polynomial.
func (p Int) Lead() *big.Int {
	return p.Coeff(p.Degree())
}

// Clone returns a deep copy.
func (p Int) Clone() Int {
	return New(p...)
}

// Trim returns p without trailing zero coefficients.
func (p Int) Trim() Int {
	return p[:p.Degree()+1]
}

// Equal reports whether p and q represent the same polynomial.
func (p Int) Equal(q Int) bool {
	n := p.Degree()
	if n != q.Degree() {
		return false
	}
	for i := 0; i <= n; i++ {
		if p.Coeff(i).Cmp(q.Coeff(i)) != 0 {
			return false
		}
	}
	return true
}

// NonzeroCount returns the number of nonzero coefficients.
func (p Int) NonzeroCount() int {
	n := 0
	for _, c := range p {
		if c != nil && c.Sign() != 0 {
			n++
		}
	}
	return n
}

// MaxBits returns the bit length of the largest coefficient.
func (p Int) MaxBits() int {
	bits := 0
	for _, c := range p {
		if c != nil {
			bits = max(bits, c.BitLen())
		}
	}
	return bits
}

// Strings returns the coefficients in base 10, lowest degree first, with
// trailing zeros removed.
func (p Int) Strings() []string {
	t := p.Trim()
	out := make([]string, len(t))
	for i, c := range t {
		out[i] = c.String()
	}
	return out
}

// String renders p in descending powers, e.g. "x^4 - 1".
func (p Int) String() string {
	n := p.Degree()
	if n < 0 {
		return "0"
	}
	var b strings.Builder
	for i := n; i >= 0; i-- {
		c := p.Coeff(i)
		if c.Sign() == 0 {
			continue
		}
		abs := new(big.Int).Abs(c)
		switch {
		case i == n && c.Sign() < 0:
			b.WriteString("-")
		case i != n && c.Sign() < 0:
			b.WriteString(" - ")
		case i != n:
			b.WriteString(" + ")
		}
		one := abs.Cmp(big.NewInt(1)) == 0
		if !one || i == 0 {
			b.WriteString(abs.String())
		}
		switch {
		case i == 1:
			b.WriteString("x")
		case i > 1:
			fmt.Fprintf(&b, "x^%d", i)
		}
	}
	return b.String()
}
