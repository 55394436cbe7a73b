package poly

import "math/big"

// ratPoly is a polynomial with rational coefficients, used only while
// building families defined over Q.
type ratPoly []*big.Rat

func ratZeros(n int) ratPoly {
	p := make(ratPoly, n)
	for i := range p {
		p[i] = new(big.Rat)
	}
	return p
}

func (p ratPoly) coeff(i int) *big.Rat {
	if i < 0 || i >= len(p) {
		return new(big.Rat)
	}
	return p[i]
}

// numerator returns N where p = N/d in canonical form: N has integer
// coefficients and gcd(content(N), d) = 1 with d > 0.
func (p ratPoly) numerator() Int {
	den := big.NewInt(1)
	for _, c := range p {
		den = lcm(den, c.Denom())
	}
	n := Zeros(len(p))
	for i, c := range p {
		n[i].Mul(c.Num(), new(big.Int).Quo(den, c.Denom()))
	}
	g := new(big.Int).GCD(nil, nil, n.Content(), den)
	if g.Sign() != 0 && g.Cmp(big.NewInt(1)) != 0 {
		for i := range n {
			n[i].Quo(n[i], g)
		}
	}
	return n.Trim()
}

func lcm(a, b *big.Int) *big.Int {
	g := new(big.Int).GCD(nil, nil, a, b)
	out := new(big.Int).Mul(a, b)
	return out.Quo(out.Abs(out), g)
}

func binomial(n, k int) *big.Int {
	return new(big.Int).Binomial(int64(n), int64(k))
}

// bernoulliNumbers returns B_0..B_n with the convention B_1 = -1/2, from
// sum_{j=0}^{m} C(m+1, j) B_j = 0.
func bernoulliNumbers(n int) []*big.Rat {
	b := make([]*big.Rat, n+1)
	b[0] = big.NewRat(1, 1)
	for m := 1; m <= n; m++ {
		sum := new(big.Rat)
		for j := 0; j < m; j++ {
			sum.Add(sum, new(big.Rat).Mul(new(big.Rat).SetInt(binomial(m+1, j)), b[j]))
		}
		b[m] = sum.Quo(sum.Neg(sum), new(big.Rat).SetInt64(int64(m+1)))
	}
	return b
}
