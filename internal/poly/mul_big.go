//go:build !gmp

package poly

import "math/big"

// mulCoeffs is the schoolbook product of two trimmed coefficient slices.
func mulCoeffs(a, b Int) Int {
	out := Zeros(len(a) + len(b) - 1)
	t := new(big.Int)
	for i, x := range a {
		if x.Sign() == 0 {
			continue
		}
		for j, y := range b {
			out[i+j].Add(out[i+j], t.Mul(x, y))
		}
	}
	return out
}

// Backend names the integer arithmetic used for polynomial products.
const Backend = "math/big"
