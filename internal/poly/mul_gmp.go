//go:build gmp

// This file routes polynomial products through GMP, conditionally compiled
// with the "gmp" build tag (go build -tags=gmp, requires libgmp). Family
// polynomials such as Swinnerton-Dyer or large Mignotte powers have
// coefficients of thousands of bits, where GMP's multiplication pays off.

package poly

import (
	"math/big"

	"github.com/ncw/gmp"
)

// mulCoeffs is the schoolbook product of two trimmed coefficient slices,
// accumulated in GMP integers.
func mulCoeffs(a, b Int) Int {
	ga, gb := toGMP(a), toGMP(b)
	acc := make([]*gmp.Int, len(a)+len(b)-1)
	for i := range acc {
		acc[i] = new(gmp.Int)
	}
	t := new(gmp.Int)
	for i, x := range ga {
		if x.Sign() == 0 {
			continue
		}
		for j, y := range gb {
			acc[i+j].Add(acc[i+j], t.Mul(x, y))
		}
	}
	out := make(Int, len(acc))
	for i, c := range acc {
		out[i] = fromGMP(c)
	}
	return out
}

func toGMP(p Int) []*gmp.Int {
	out := make([]*gmp.Int, len(p))
	for i, c := range p {
		g := new(gmp.Int).SetBytes(c.Bytes())
		if c.Sign() < 0 {
			g.Neg(g)
		}
		out[i] = g
	}
	return out
}

func fromGMP(g *gmp.Int) *big.Int {
	c := new(big.Int).SetBytes(g.Bytes())
	if g.Sign() < 0 {
		c.Neg(c)
	}
	return c
}

// Backend names the integer arithmetic used for polynomial products.
const Backend = "gmp"
