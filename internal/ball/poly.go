package ball

import "math/big"

// Poly is a polynomial with real ball coefficients, lowest degree first.
type Poly []Real

// PolyFromInt converts integer coefficients to balls at precision prec.
// Coefficients wider than prec bits get a rounding radius.
func PolyFromInt(coeffs []*big.Int, prec uint) Poly {
	p := make(Poly, len(coeffs))
	for i, c := range coeffs {
		p[i] = RealFromInt(c, prec)
	}
	return p
}

// Degree returns the index of the last coefficient that is not exactly zero,
// or -1 when every coefficient is exactly zero.
func (p Poly) Degree() int {
	for i := len(p) - 1; i >= 0; i-- {
		if !p[i].IsExactZero() {
			return i
		}
	}
	return -1
}

// Lead returns the leading coefficient. p must have degree >= 0.
func (p Poly) Lead() Real {
	return p[p.Degree()]
}

// Evaluate returns a ball containing p(z) for every z in the box.
func (p Poly) Evaluate(z Complex) Complex {
	n := p.Degree()
	if n < 0 {
		return NewComplex(z.Prec())
	}
	acc := ComplexFromReal(p[n])
	for i := n - 1; i >= 0; i-- {
		acc = acc.Mul(z).Add(ComplexFromReal(p[i]))
	}
	return acc
}

// EvaluateReal returns a ball containing p(x) for every x in the ball.
func (p Poly) EvaluateReal(x Real) Real {
	n := p.Degree()
	if n < 0 {
		return NewReal(x.Prec())
	}
	acc := p[n]
	for i := n - 1; i >= 0; i-- {
		acc = acc.Mul(x).Add(p[i])
	}
	return acc
}
