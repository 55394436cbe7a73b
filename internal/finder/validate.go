package finder

import (
	"github.com/agbru/polyroots/internal/ball"
	"github.com/agbru/polyroots/internal/bigcomplex"
	"github.com/agbru/polyroots/internal/parallel"
)

// validate turns the approximations z into certified balls using the
// Weierstrass inclusion radius
//
//	rho_i = n |p(z_i)| / (|lc| prod_{j != i} |z_i - z_j|).
//
// The union of the discs D(z_i, rho_i) contains every root, and each
// connected component holds as many roots as discs. Both component radii of
// ball i are set to rho_i so that the box covers its disc.
func (f *Finder) validate(coeffs ball.Poly, z []*bigcomplex.Number, prec uint) ([]ball.Complex, error) {
	n := len(z)
	points := make([]ball.Complex, n)
	for i := range z {
		points[i] = ball.ComplexFromNumber(z[i], prec)
	}
	lead := coeffs.Lead().AbsLower()

	out := make([]ball.Complex, n)
	radius := func(i int) error {
		num := ball.ScaleUpper(coeffs.Evaluate(points[i]).AbsUpper(), n)
		den := lead
		for j := range points {
			if j != i {
				den = ball.MulLower(den, points[i].Sub(points[j]).AbsLower())
			}
		}
		rho := ball.QuoUpper(num, den)
		out[i] = ball.Complex{
			Re: points[i].Re.WithRadius(ball.AddUpper(points[i].Re.Rad(), rho)),
			Im: points[i].Im.WithRadius(ball.AddUpper(points[i].Im.Rad(), rho)),
		}
		return nil
	}

	workers := 1
	if n >= f.threshold() {
		workers = f.workers()
	}
	if err := parallel.ForEach(n, workers, radius); err != nil {
		return nil, err
	}
	return out, nil
}
