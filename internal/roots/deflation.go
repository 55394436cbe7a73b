package roots

import (
	"fmt"

	"github.com/agbru/polyroots/internal/poly"
)

// Deflation records that P(x) = Q(x^D).
type Deflation struct {
	D int
	Q poly.Int
}

// DeflationDegree returns the largest d such that every nonzero
// coefficient of p sits at an index divisible by d. Polynomials of degree
// <= 1 have deflation degree 1, and so does the zero polynomial, which
// Analyze rejects.
func DeflationDegree(p poly.Int) int {
	n := p.Degree()
	if n <= 1 {
		return 1
	}
	// c is the first nonzero index >= 1; it exists since p[n] != 0.
	c := 1
	for p.Coeff(c).Sign() == 0 {
		c++
	}
	d := gcd(n, c)
	for i := c + 1; i < n && d > 1; i++ {
		if p.Coeff(i).Sign() != 0 && i%d != 0 {
			d = gcd(i, d)
		}
	}
	return d
}

// Deflate returns q with q[i] = p[i*d], so that p(x) = q(x^d) whenever d
// divides every nonzero index of p. For d == 1 or deg p <= 1 it returns a
// copy of p.
func Deflate(p poly.Int, d int) (poly.Int, error) {
	if d <= 0 {
		return nil, fmt.Errorf("%w: deflation degree %d", ErrInvalidArgument, d)
	}
	n := p.Degree()
	if d == 1 || n <= 1 {
		return p.Clone().Trim(), nil
	}
	q := make(poly.Int, n/d+1)
	for i := range q {
		q[i] = p.Coeff(i * d)
	}
	return q.Clone(), nil
}

// Inflate returns p with p(x) = q(x^d).
func Inflate(q poly.Int, d int) poly.Int {
	n := q.Degree()
	if n < 0 {
		return poly.Int{}
	}
	p := poly.Zeros(n*d + 1)
	for i := 0; i <= n; i++ {
		p[i*d].Set(q[i])
	}
	return p
}

// Analyze computes the maximal deflation of p.
func Analyze(p poly.Int) (Deflation, error) {
	if p.IsZero() {
		return Deflation{}, fmt.Errorf("%w: zero polynomial", ErrInvalidArgument)
	}
	d := DeflationDegree(p)
	q, err := Deflate(p, d)
	if err != nil {
		return Deflation{}, err
	}
	return Deflation{D: d, Q: q}, nil
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}
