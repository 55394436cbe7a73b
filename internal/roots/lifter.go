package roots

import "github.com/agbru/polyroots/internal/ball"

// Lift maps the roots r_i of Q to the roots of P(x) = Q(x^d): the d
// solutions of x^d = r_i, in the order base, base*w, base*w^2, ... with
// w = exp(2πi/d).
//
// The base root must be certified away from the branch cut of the
// principal d-th root. When Re(r_i) > 0 it is the principal root of r_i.
// Otherwise it is w2 times the principal root of -r_i, with
// w2 = exp(πi/d), since (w2 (-r_i)^(1/d))^d = -(-r_i) = r_i.
func Lift(deflated []ball.Complex, d int, prec uint) []ball.Complex {
	if d <= 1 {
		return append([]ball.Complex(nil), deflated...)
	}
	w := ball.RootOfUnity(d, prec)
	w2 := ball.RootOfUnity(2*d, prec)

	out := make([]ball.Complex, 0, len(deflated)*d)
	for _, r := range deflated {
		var base ball.Complex
		if r.Re.Mid().Sign() > 0 {
			base = ball.Root(r, d, prec)
		} else {
			base = ball.Root(r.Neg(), d, prec).Mul(w2)
		}
		out = append(out, base)
		for j := 1; j < d; j++ {
			out = append(out, out[len(out)-1].Mul(w))
		}
	}
	return out
}
