package roots

import (
	"context"
	"math"
	"math/big"
	"slices"
	"testing"

	"github.com/agbru/polyroots/internal/ball"
	"github.com/agbru/polyroots/internal/finder"
	"github.com/agbru/polyroots/internal/poly"
)

func isolate(t *testing.T, p poly.Int, target uint, opts ...Option) *Result {
	t.Helper()
	f := finder.New()
	res, err := NewIsolator(f, f, opts...).Isolate(context.Background(), p, DefaultInitialPrecision, target)
	if err != nil {
		t.Fatalf("Isolate(%s) error = %v", p, err)
	}
	return res
}

// assertCertified checks the postconditions every result must satisfy.
func assertCertified(t *testing.T, res *Result, degree int) {
	t.Helper()
	if len(res.Roots) != degree {
		t.Fatalf("%d roots, want %d", len(res.Roots), degree)
	}
	if !CheckAccuracy(res.Roots, res.TargetBits) {
		t.Errorf("radii exceed 2^-%d", res.TargetBits)
	}
	for i := range res.Roots {
		for j := i + 1; j < len(res.Roots); j++ {
			if res.Roots[i].Overlaps(res.Roots[j]) {
				t.Errorf("roots %d and %d overlap", i, j)
			}
		}
	}
}

// assertContainsOnce checks that exactly one enclosure contains re + im*I.
func assertContainsOnce(t *testing.T, roots []ball.Complex, re, im *big.Float) {
	t.Helper()
	n := 0
	for _, z := range roots {
		if z.Contains(re, im) {
			n++
		}
	}
	if n != 1 {
		t.Errorf("%s + %s*I lies in %d enclosures, want exactly one", re.Text('g', 10), im.Text('g', 10), n)
	}
}

// assertNear checks that some midpoint lies within tol of re + im*I.
func assertNear(t *testing.T, roots []ball.Complex, re, im, tol float64) {
	t.Helper()
	for _, z := range roots {
		mr, mi := z.Mid()
		zr, _ := mr.Float64()
		zi, _ := mi.Float64()
		if math.Hypot(zr-re, zi-im) < tol {
			return
		}
	}
	t.Errorf("no root near %g%+gi", re, im)
}

func TestIsolate_Linear(t *testing.T) {
	t.Parallel()
	res := isolate(t, poly.FromInt64s(-5, 1), TargetBits(10))
	assertCertified(t, res, 1)
	if res.Deflation.D != 1 {
		t.Errorf("deflation = %d, want 1", res.Deflation.D)
	}
	assertContainsOnce(t, res.Roots, big.NewFloat(5), new(big.Float))
	if got := res.Roots[0].String(); got != "5" {
		t.Errorf("root = %q, want \"5\"", got)
	}
}

func TestIsolate_FourthRootsOfUnity(t *testing.T) {
	t.Parallel()
	res := isolate(t, poly.FromInt64s(-1, 0, 0, 0, 1), TargetBits(10))
	assertCertified(t, res, 4)
	if res.Deflation.D != 4 || !res.Deflation.Q.Equal(poly.FromInt64s(-1, 1)) {
		t.Errorf("deflation = {%d, %s}, want {4, x - 1}", res.Deflation.D, res.Deflation.Q)
	}

	one, zero, minusOne := big.NewFloat(1), new(big.Float), big.NewFloat(-1)
	assertContainsOnce(t, res.Roots, one, zero)
	assertContainsOnce(t, res.Roots, zero, one)
	assertContainsOnce(t, res.Roots, minusOne, zero)
	assertContainsOnce(t, res.Roots, zero, minusOne)

	realCount := 0
	for _, z := range res.Roots {
		if z.IsReal() {
			realCount++
		}
	}
	if realCount != 2 {
		t.Errorf("%d real roots, want 2 (1 and -1)", realCount)
	}

	var lines []string
	for _, z := range Pretty(res.Roots) {
		lines = append(lines, z.String())
	}
	if want := []string{"-1", "1", "0 - 1*I", "0 + 1*I"}; !slices.Equal(lines, want) {
		t.Errorf("Pretty = %q, want %q", lines, want)
	}
}

func TestIsolate_RootAtOrigin(t *testing.T) {
	t.Parallel()
	res := isolate(t, poly.FromInt64s(0, 1), TargetBits(10))
	assertCertified(t, res, 1)
	if got := res.Roots[0].String(); got != "0" {
		t.Errorf("root of x = %q, want \"0\"", got)
	}
}

func TestIsolate_ImaginaryUnit(t *testing.T) {
	t.Parallel()
	res := isolate(t, poly.FromInt64s(1, 0, 1), TargetBits(10))
	assertCertified(t, res, 2)
	if res.Deflation.D != 2 {
		t.Errorf("deflation = %d, want 2", res.Deflation.D)
	}
	zero := new(big.Float)
	assertContainsOnce(t, res.Roots, zero, big.NewFloat(1))
	assertContainsOnce(t, res.Roots, zero, big.NewFloat(-1))
	for _, z := range res.Roots {
		if z.IsReal() {
			t.Errorf("%s should not be real", z)
		}
	}
}

func TestIsolate_SquareRootOfTwoNeedsSeveralRounds(t *testing.T) {
	t.Parallel()
	rec := &recorder{}
	res := isolate(t, poly.FromInt64s(-2, 0, 1), 100, WithObserver(rec))
	assertCertified(t, res, 2)

	sqrt2 := new(big.Float).SetPrec(512).Sqrt(new(big.Float).SetPrec(512).SetInt64(2))
	zero := new(big.Float)
	assertContainsOnce(t, res.Roots, sqrt2, zero)
	assertContainsOnce(t, res.Roots, new(big.Float).Neg(sqrt2), zero)

	outcomes := rec.outcomes()
	if len(outcomes) < 2 {
		t.Fatalf("outcomes = %v; 100 bits cannot be certified at 32 bits", outcomes)
	}
	if last := outcomes[len(outcomes)-1]; last != OutcomeCertified {
		t.Errorf("last outcome = %s, want certified", last)
	}
	if res.Rounds != len(outcomes) {
		t.Errorf("Rounds = %d, want %d", res.Rounds, len(outcomes))
	}
	if res.FinalPrecision < 128 {
		t.Errorf("FinalPrecision = %d, want >= 128", res.FinalPrecision)
	}
}

func TestIsolate_Wilkinson(t *testing.T) {
	t.Parallel()
	p, err := poly.BuildFamily("w", 8)
	if err != nil {
		t.Fatal(err)
	}
	res := isolate(t, p, TargetBits(15))
	assertCertified(t, res, 8)
	for k := int64(1); k <= 8; k++ {
		assertContainsOnce(t, res.Roots, big.NewFloat(float64(k)), new(big.Float))
	}
	for _, z := range res.Roots {
		if !z.IsReal() {
			t.Errorf("%s should be real", z)
		}
	}
}

func TestIsolate_Chebyshev(t *testing.T) {
	t.Parallel()
	p, err := poly.BuildFamily("t", 5)
	if err != nil {
		t.Fatal(err)
	}
	res := isolate(t, p, TargetBits(10))
	assertCertified(t, res, 5)
	for k := 1; k <= 5; k++ {
		assertNear(t, res.Roots, math.Cos(float64(2*k-1)*math.Pi/10), 0, 1e-9)
	}
	for _, z := range res.Roots {
		if !z.IsReal() {
			t.Errorf("%s should be real", z)
		}
	}
}

func TestIsolate_CyclotomicLiftsComplexRoots(t *testing.T) {
	t.Parallel()
	p, err := poly.BuildFamily("c", 12) // x^4 - x^2 + 1
	if err != nil {
		t.Fatal(err)
	}
	res := isolate(t, p, TargetBits(20))
	assertCertified(t, res, 4)
	if res.Deflation.D != 2 {
		t.Errorf("deflation = %d, want 2", res.Deflation.D)
	}
	for _, k := range []float64{1, 5, 7, 11} {
		theta := k * math.Pi / 6
		assertNear(t, res.Roots, math.Cos(theta), math.Sin(theta), 1e-12)
	}
}

func TestIsolate_ExponentialNumerator(t *testing.T) {
	t.Parallel()
	p, err := poly.BuildFamily("e", 9)
	if err != nil {
		t.Fatal(err)
	}
	res := isolate(t, p, TargetBits(10))
	assertCertified(t, res, 9)

	realCount := 0
	for _, z := range res.Roots {
		if z.IsReal() {
			realCount++
		}
	}
	if realCount != 1 {
		t.Errorf("%d real roots; odd truncations of exp have one", realCount)
	}
}
