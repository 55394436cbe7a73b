package roots

import (
	"context"
	"errors"
	"math/big"
	"slices"
	"sync"
	"testing"

	"github.com/agbru/polyroots/internal/ball"
	"github.com/agbru/polyroots/internal/bigcomplex"
	"github.com/agbru/polyroots/internal/poly"
)

// ─────────────────────────────────────────────────────────────────────────────
// Test Doubles
// ─────────────────────────────────────────────────────────────────────────────

type findCall struct {
	prec    uint
	maxIter int
	seeded  bool
}

// fakeFinder returns fixed midpoints with radius 2^-(prec-loss). Below
// completeAt bits it reports no isolated roots.
type fakeFinder struct {
	mu         sync.Mutex
	roots      [][2]float64
	loss       uint
	completeAt uint
	calls      []findCall
}

func (f *fakeFinder) FindRoots(coeffs ball.Poly, seeds []ball.Complex, maxIter int, prec uint) (int, []ball.Complex) {
	f.mu.Lock()
	f.calls = append(f.calls, findCall{prec: prec, maxIter: maxIter, seeded: seeds != nil})
	f.mu.Unlock()

	out := make([]ball.Complex, len(f.roots))
	for i, r := range f.roots {
		z := ball.ComplexFromNumber(bigcomplex.New(r[0], r[1], prec), prec)
		out[i] = z.WithRadius(ball.TwoExp(-int(prec - f.loss)))
	}
	if prec < f.completeAt {
		return 0, out
	}
	return len(out), out
}

func (f *fakeFinder) precisions() []uint {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]uint, len(f.calls))
	for i, c := range f.calls {
		out[i] = c.prec
	}
	return out
}

// fakeValidator fails its first failures calls.
type fakeValidator struct {
	mu       sync.Mutex
	failures int
	calls    int
}

func (v *fakeValidator) ValidateRealRoots(roots []ball.Complex, coeffs ball.Poly, prec uint) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.calls++
	return v.calls > v.failures
}

// recorder collects round events.
type recorder struct {
	mu     sync.Mutex
	events []RoundEvent
}

func (r *recorder) OnRound(e RoundEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recorder) outcomes() []Outcome {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Outcome, len(r.events))
	for i, e := range r.events {
		out[i] = e.Outcome
	}
	return out
}

// ─────────────────────────────────────────────────────────────────────────────
// Isolation Loop
// ─────────────────────────────────────────────────────────────────────────────

func TestIsolator_DoublesPrecisionUntilAccurate(t *testing.T) {
	t.Parallel()
	f := &fakeFinder{roots: [][2]float64{{5, 0}}, loss: 8}
	rec := &recorder{}
	iso := NewIsolator(f, &fakeValidator{}, WithObserver(rec))

	res, err := iso.Isolate(context.Background(), poly.FromInt64s(-5, 1), 32, 100)
	if err != nil {
		t.Fatalf("Isolate() error = %v", err)
	}

	if got, want := f.precisions(), []uint{32, 64, 128}; !slices.Equal(got, want) {
		t.Errorf("precisions = %v, want %v", got, want)
	}
	if got, want := rec.outcomes(), []Outcome{OutcomeInaccurate, OutcomeInaccurate, OutcomeCertified}; !slices.Equal(got, want) {
		t.Errorf("outcomes = %v, want %v", got, want)
	}
	if res.Rounds != 3 || res.FinalPrecision != 128 || res.TargetBits != 100 || res.Degree != 1 {
		t.Errorf("result = {Rounds:%d FinalPrecision:%d TargetBits:%d Degree:%d}, want {3 128 100 1}",
			res.Rounds, res.FinalPrecision, res.TargetBits, res.Degree)
	}
	if len(res.Roots) != 1 {
		t.Fatalf("len(Roots) = %d, want 1", len(res.Roots))
	}
	if !res.Roots[0].IsReal() {
		t.Errorf("root %s: imaginary part should be snapped", res.Roots[0])
	}
	if f.calls[0].seeded {
		t.Error("first round must not be seeded")
	}
	if !f.calls[1].seeded {
		t.Error("later rounds should reuse the previous enclosures")
	}
	if f.calls[0].maxIter != minIterations {
		t.Errorf("maxIter = %d, want %d", f.calls[0].maxIter, minIterations)
	}
}

func TestIsolator_IncompleteRoundsEscalate(t *testing.T) {
	t.Parallel()
	f := &fakeFinder{roots: [][2]float64{{5, 0}}, loss: 8, completeAt: 128}
	rec := &recorder{}
	iso := NewIsolator(f, &fakeValidator{}, WithObserver(rec))

	res, err := iso.Isolate(context.Background(), poly.FromInt64s(-5, 1), 32, 10)
	if err != nil {
		t.Fatalf("Isolate() error = %v", err)
	}
	if got, want := rec.outcomes(), []Outcome{OutcomeIncomplete, OutcomeIncomplete, OutcomeCertified}; !slices.Equal(got, want) {
		t.Errorf("outcomes = %v, want %v", got, want)
	}
	if res.FinalPrecision != 128 {
		t.Errorf("FinalPrecision = %d, want 128", res.FinalPrecision)
	}

	rec.mu.Lock()
	defer rec.mu.Unlock()
	if first, last := rec.events[0], rec.events[2]; first.Isolated != 0 || last.Isolated != 1 || first.Precision != 32 {
		t.Errorf("events = %+v", rec.events)
	}
}

func TestIsolator_RealCheckFailureEscalates(t *testing.T) {
	t.Parallel()
	f := &fakeFinder{roots: [][2]float64{{5, 0}}, loss: 4}
	v := &fakeValidator{failures: 1}
	rec := &recorder{}
	iso := NewIsolator(f, v, WithObserver(rec))

	res, err := iso.Isolate(context.Background(), poly.FromInt64s(-5, 1), 32, 10)
	if err != nil {
		t.Fatalf("Isolate() error = %v", err)
	}
	if got, want := rec.outcomes(), []Outcome{OutcomeRealCheckFailed, OutcomeCertified}; !slices.Equal(got, want) {
		t.Errorf("outcomes = %v, want %v", got, want)
	}
	if res.FinalPrecision != 64 {
		t.Errorf("FinalPrecision = %d, want 64", res.FinalPrecision)
	}
	if v.calls != 2 {
		t.Errorf("validator calls = %d, want 2", v.calls)
	}
}

func TestIsolator_PrecisionCeiling(t *testing.T) {
	t.Parallel()
	f := &fakeFinder{roots: [][2]float64{{5, 0}}, completeAt: 1 << 20}
	rec := &recorder{}
	iso := NewIsolator(f, &fakeValidator{}, WithObserver(rec), WithMaxPrecision(64))

	res, err := iso.Isolate(context.Background(), poly.FromInt64s(-5, 1), 32, 10)
	if !errors.Is(err, ErrPrecisionExhausted) {
		t.Fatalf("Isolate() error = %v, want ErrPrecisionExhausted", err)
	}
	if res != nil {
		t.Errorf("Isolate() result = %+v, want nil", res)
	}
	if got, want := f.precisions(), []uint{32, 64}; !slices.Equal(got, want) {
		t.Errorf("precisions = %v, want %v", got, want)
	}
	if n := len(rec.outcomes()); n != 2 {
		t.Errorf("%d round events, want 2", n)
	}
}

func TestIsolator_ContextCanceledBeforeStart(t *testing.T) {
	t.Parallel()
	f := &fakeFinder{roots: [][2]float64{{5, 0}}}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewIsolator(f, &fakeValidator{}).Isolate(ctx, poly.FromInt64s(-5, 1), 32, 10)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Isolate() error = %v, want context.Canceled", err)
	}
	if p := f.precisions(); len(p) != 0 {
		t.Errorf("finder ran at %v", p)
	}
}

// cancelObserver cancels the isolation after the first round.
type cancelObserver struct{ cancel context.CancelFunc }

func (c cancelObserver) OnRound(RoundEvent) { c.cancel() }

func TestIsolator_ContextCanceledBetweenRounds(t *testing.T) {
	t.Parallel()
	f := &fakeFinder{roots: [][2]float64{{5, 0}}, completeAt: 1 << 20}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	iso := NewIsolator(f, &fakeValidator{}, WithObserver(cancelObserver{cancel}))
	_, err := iso.Isolate(ctx, poly.FromInt64s(-5, 1), 32, 10)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Isolate() error = %v, want context.Canceled", err)
	}
	if got, want := f.precisions(), []uint{32}; !slices.Equal(got, want) {
		t.Errorf("precisions = %v, want %v", got, want)
	}
}

func TestIsolator_InvalidInput(t *testing.T) {
	t.Parallel()
	iso := NewIsolator(&fakeFinder{}, &fakeValidator{})
	tests := []struct {
		name string
		p    poly.Int
		prec uint
	}{
		{"zero polynomial", poly.FromInt64s(0, 0), 32},
		{"empty polynomial", poly.Int{}, 32},
		{"zero initial precision", poly.FromInt64s(-5, 1), 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if _, err := iso.Isolate(context.Background(), tc.p, tc.prec, 10); !errors.Is(err, ErrInvalidArgument) {
				t.Errorf("Isolate() error = %v, want ErrInvalidArgument", err)
			}
		})
	}
}

func TestIsolator_ConstantHasNoRoots(t *testing.T) {
	t.Parallel()
	res, err := NewIsolator(&fakeFinder{}, &fakeValidator{}).Isolate(context.Background(), poly.FromInt64s(7), 32, 10)
	if err != nil {
		t.Fatalf("Isolate() error = %v", err)
	}
	if len(res.Roots) != 0 || res.Rounds != 1 {
		t.Errorf("result = %d roots after %d rounds, want 0 after 1", len(res.Roots), res.Rounds)
	}
}

func TestNewIsolator_PanicsOnNilBackend(t *testing.T) {
	t.Parallel()
	mustPanic := func(name string, f func()) {
		defer func() {
			if recover() == nil {
				t.Errorf("%s: expected panic", name)
			}
		}()
		f()
	}
	mustPanic("nil finder", func() { NewIsolator(nil, &fakeValidator{}) })
	mustPanic("nil validator", func() { NewIsolator(&fakeFinder{}, nil) })
}

// ─────────────────────────────────────────────────────────────────────────────
// State Machine
// ─────────────────────────────────────────────────────────────────────────────

func TestStateTransitions(t *testing.T) {
	t.Parallel()
	allowed := map[[2]State]bool{
		{StateIsolating, StateIsolating}:     true,
		{StateIsolating, StateCheckAccuracy}: true,
		{StateCheckAccuracy, StateIsolating}: true,
		{StateCheckAccuracy, StateLifting}:   true,
		{StateLifting, StateValidating}:      true,
		{StateValidating, StateIsolating}:    true,
		{StateValidating, StateDone}:         true,
	}
	states := []State{StateIsolating, StateCheckAccuracy, StateLifting, StateValidating, StateDone}
	for _, from := range states {
		for _, to := range states {
			want := allowed[[2]State{from, to}]
			if got := canTransition(from, to); got != want {
				t.Errorf("canTransition(%s, %s) = %v, want %v", from, to, got, want)
			}
		}
	}
	if !StateDone.IsTerminal() || StateValidating.IsTerminal() {
		t.Error("only StateDone is terminal")
	}
	if got := State(9).String(); got != "State(9)" {
		t.Errorf("State(9).String() = %q", got)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Accuracy, Lifting, Presentation
// ─────────────────────────────────────────────────────────────────────────────

func TestTargetBits(t *testing.T) {
	t.Parallel()
	tests := []struct {
		digits int
		want   uint
	}{
		{0, 2},
		{-3, 2},
		{1, 5},
		{10, 35},
		{30, 101},
		{100, 334},
	}
	for _, tc := range tests {
		if got := TargetBits(tc.digits); got != tc.want {
			t.Errorf("TargetBits(%d) = %d, want %d", tc.digits, got, tc.want)
		}
	}
}

func TestCheckAccuracy(t *testing.T) {
	t.Parallel()
	z := ball.ComplexFromInt64(1, 1, 64)
	wide := z.WithRadius(ball.TwoExp(-50))
	imagOnly := ball.Complex{Re: z.Re, Im: z.Im.WithRadius(ball.TwoExp(-10))}

	tests := []struct {
		name   string
		roots  []ball.Complex
		target uint
		want   bool
	}{
		{"exact", []ball.Complex{z}, 50, true},
		{"empty", nil, 50, true},
		{"radius equal to target", []ball.Complex{z, wide}, 50, false},
		{"radius below target", []ball.Complex{wide}, 49, true},
		{"wide imaginary part", []ball.Complex{imagOnly}, 20, false},
	}
	for _, tc := range tests {
		if got := CheckAccuracy(tc.roots, tc.target); got != tc.want {
			t.Errorf("%s: CheckAccuracy(target=%d) = %v, want %v", tc.name, tc.target, got, tc.want)
		}
	}
}

func TestLift(t *testing.T) {
	t.Parallel()
	const prec = 128
	one := big.NewFloat(1)
	zero := big.NewFloat(0)
	minusOne := big.NewFloat(-1)

	tests := []struct {
		name string
		in   ball.Complex
		d    int
		want [][2]*big.Float
	}{
		{"identity", ball.ComplexFromInt64(3, -2, prec), 1, [][2]*big.Float{{big.NewFloat(3), big.NewFloat(-2)}}},
		{"square roots of -1", ball.ComplexFromInt64(-1, 0, prec), 2, [][2]*big.Float{{zero, one}, {zero, minusOne}}},
		{"fourth roots of 1", ball.ComplexFromInt64(1, 0, prec), 4, [][2]*big.Float{{one, zero}, {zero, one}, {minusOne, zero}, {zero, minusOne}}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			out := Lift([]ball.Complex{tc.in}, tc.d, prec)
			if len(out) != len(tc.want) {
				t.Fatalf("len(Lift) = %d, want %d", len(out), len(tc.want))
			}
			for i, w := range tc.want {
				if !out[i].Contains(w[0], w[1]) {
					t.Errorf("root %d = %s, should contain (%s, %s)", i, out[i], w[0].Text('g', 5), w[1].Text('g', 5))
				}
			}
		})
	}

	t.Run("cube roots of 8 with an enclosure", func(t *testing.T) {
		r := ball.ComplexFromInt64(8, 0, prec).WithRadius(ball.TwoExp(-100))
		out := Lift([]ball.Complex{r}, 3, prec)
		if len(out) != 3 {
			t.Fatalf("len(Lift) = %d, want 3", len(out))
		}
		if !out[0].Contains(big.NewFloat(2), zero) {
			t.Errorf("principal root %s should contain 2", out[0])
		}
		for _, z := range out {
			if !z.Pow(3).Contains(big.NewFloat(8), zero) {
				t.Errorf("%s cubed should contain 8", z)
			}
		}
	})
}

func TestSnapReal(t *testing.T) {
	t.Parallel()
	const prec = 64
	fuzzy := ball.ComplexFromInt64(2, 0, prec).WithRadius(ball.TwoExp(-40))
	complexRoot := ball.ComplexFromInt64(0, 1, prec).WithRadius(ball.TwoExp(-40))
	in := []ball.Complex{fuzzy, complexRoot}

	out := SnapReal(in)
	if len(out) != 2 {
		t.Fatalf("len(SnapReal) = %d, want 2", len(out))
	}
	if !out[0].IsReal() || out[1].IsReal() {
		t.Errorf("SnapReal = %v; only the first root is real", out)
	}
	if out[0].RadRe().Cmp(ball.TwoExp(-40)) != 0 {
		t.Errorf("real radius changed to %s", out[0].RadRe().Text('e', 3))
	}
	if in[0].IsReal() {
		t.Error("input must not be modified")
	}

	again := SnapReal(out)
	for i := range out {
		if out[i].String() != again[i].String() {
			t.Errorf("SnapReal is not idempotent: %s vs %s", out[i], again[i])
		}
	}
}

func TestPretty(t *testing.T) {
	t.Parallel()
	in := []ball.Complex{
		ball.ComplexFromInt64(0, -1, 64),
		ball.ComplexFromInt64(1, 0, 64),
		ball.ComplexFromInt64(0, 1, 64),
		ball.ComplexFromInt64(-1, 0, 64),
	}
	var lines []string
	for _, z := range Pretty(in) {
		lines = append(lines, z.String())
	}
	if want := []string{"-1", "1", "0 - 1*I", "0 + 1*I"}; !slices.Equal(lines, want) {
		t.Errorf("Pretty = %q, want %q", lines, want)
	}
	if got := in[0].String(); got != "0 - 1*I" {
		t.Errorf("input reordered: in[0] = %q", got)
	}
}
