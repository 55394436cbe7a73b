package roots

import (
	"errors"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/agbru/polyroots/internal/poly"
)

func TestDeflationDegree(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		p    poly.Int
		want int
	}{
		{"linear", poly.FromInt64s(-5, 1), 1},
		{"x^4 - 1", poly.FromInt64s(-1, 0, 0, 0, 1), 4},
		{"x^2 + 1", poly.FromInt64s(1, 0, 1), 2},
		{"x^6 + x^3 + 1", poly.FromInt64s(1, 0, 0, 1, 0, 0, 1), 3},
		{"x^6 + x^4 + 1", poly.FromInt64s(1, 0, 0, 0, 1, 0, 1), 2},
		{"x^5 + x^2", poly.FromInt64s(0, 0, 1, 0, 0, 1), 1},
		{"x^12 + x^8 + x^6", poly.Monomial(1, 12).Add(poly.Monomial(1, 8)).Add(poly.Monomial(1, 6)), 2},
		{"x^12 + x^6 + 7", poly.Monomial(1, 12).Add(poly.Monomial(1, 6)).Add(poly.FromInt64s(7)), 6},
		{"constant", poly.FromInt64s(3), 1},
		{"zero", poly.FromInt64s(0, 0), 1},
		{"trailing zeros ignored", poly.FromInt64s(-1, 0, 1, 0, 0), 2},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := DeflationDegree(tc.p); got != tc.want {
				t.Errorf("DeflationDegree(%s) = %d, want %d", tc.p, got, tc.want)
			}
		})
	}
}

func TestDeflate(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		p    poly.Int
		d    int
		want poly.Int
	}{
		{"x^4 - 1 by 4", poly.FromInt64s(-1, 0, 0, 0, 1), 4, poly.FromInt64s(-1, 1)},
		{"x^4 - 1 by 2", poly.FromInt64s(-1, 0, 0, 0, 1), 2, poly.FromInt64s(-1, 0, 1)},
		{"x^2 + 1 by 2", poly.FromInt64s(1, 0, 1), 2, poly.FromInt64s(1, 1)},
		{"identity", poly.FromInt64s(1, 2, 3), 1, poly.FromInt64s(1, 2, 3)},
		{"linear is unchanged", poly.FromInt64s(-5, 1), 3, poly.FromInt64s(-5, 1)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, err := Deflate(tc.p, tc.d)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !got.Equal(tc.want) {
				t.Errorf("Deflate = %s, want %s", got, tc.want)
			}
		})
	}
}

func TestDeflate_InvalidDegree(t *testing.T) {
	t.Parallel()
	for _, d := range []int{0, -2} {
		if _, err := Deflate(poly.FromInt64s(1, 0, 1), d); !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("Deflate(d=%d) error = %v, want ErrInvalidArgument", d, err)
		}
	}
}

func TestAnalyze(t *testing.T) {
	t.Parallel()
	if _, err := Analyze(poly.FromInt64s(0, 0, 0)); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("Analyze(0) error = %v, want ErrInvalidArgument", err)
	}
	defl, err := Analyze(poly.FromInt64s(-1, 0, 0, 0, 1))
	if err != nil {
		t.Fatal(err)
	}
	if defl.D != 4 || !defl.Q.Equal(poly.FromInt64s(-1, 1)) {
		t.Errorf("Analyze(x^4 - 1) = {%d, %s}", defl.D, defl.Q)
	}
}

// TestDeflation_PropertyBased checks reconstruction and maximality on
// polynomials built as q(x^d) from random q and d.
func TestDeflation_PropertyBased(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	build := func(coeffs []int64, d int) poly.Int {
		q := poly.FromInt64s(coeffs...)
		q = append(q, poly.FromInt64s(1)...) // nonzero leading coefficient
		return Inflate(q, d)
	}

	properties.Property("p(x) = q(x^d) after deflation", prop.ForAll(
		func(coeffs []int64, d int) bool {
			p := build(coeffs, d)
			defl, err := Analyze(p)
			if err != nil {
				return false
			}
			return Inflate(defl.Q, defl.D).Equal(p)
		},
		gen.SliceOfN(5, gen.Int64Range(-3, 3)),
		gen.IntRange(1, 6),
	))

	properties.Property("deflation degree is maximal", prop.ForAll(
		func(coeffs []int64, d int) bool {
			p := build(coeffs, d)
			n := p.Degree()
			got := DeflationDegree(p)
			if n <= 1 {
				return got == 1
			}
			if got%d != 0 {
				return false
			}
			for e := got + 1; e <= n; e++ {
				divides := true
				for i := 1; i <= n; i++ {
					if p.Coeff(i).Sign() != 0 && i%e != 0 {
						divides = false
						break
					}
				}
				if divides {
					return false
				}
			}
			return true
		},
		gen.SliceOfN(5, gen.Int64Range(-3, 3)),
		gen.IntRange(1, 6),
	))

	properties.TestingRun(t)
}
