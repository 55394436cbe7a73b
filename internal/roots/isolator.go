// Package roots certifies all complex roots of a squarefree integer
// polynomial.
//
// The Isolator deflates P(x) = Q(x^d), isolates the roots of Q with a
// numerical root finder at a working precision that doubles after every
// unsuccessful round, lifts them back to the d-th roots, and certifies the
// result. Each returned enclosure contains exactly one root of P, the
// enclosures are pairwise disjoint, and their radii are below the
// requested accuracy.
package roots

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/agbru/polyroots/internal/ball"
	"github.com/agbru/polyroots/internal/poly"
)

// DefaultInitialPrecision is the working precision of the first round.
const DefaultInitialPrecision = 32

// minIterations is the floor on finder sweeps per round.
const minIterations = 32

// RootFinder computes enclosures for all roots of a polynomial with ball
// coefficients. It returns how many enclosures overlap no other one, and
// one enclosure per root. seeds, when non-nil, are the previous round's
// enclosures and serve as starting points.
type RootFinder interface {
	FindRoots(coeffs ball.Poly, seeds []ball.Complex, maxIter int, prec uint) (int, []ball.Complex)
}

// RealRootValidator checks that enclosures whose imaginary part contains
// zero are consistent with the real roots of coeffs.
type RealRootValidator interface {
	ValidateRealRoots(roots []ball.Complex, coeffs ball.Poly, prec uint) bool
}

// Result is a certified root set.
type Result struct {
	// Roots holds one enclosure per root, in lifting order.
	Roots []ball.Complex
	// Degree is the degree of the input polynomial.
	Degree int
	// Deflation is the maximal deflation of the input.
	Deflation Deflation
	// FinalPrecision is the working precision of the certifying round.
	FinalPrecision uint
	// TargetBits is the accuracy target the radii satisfy.
	TargetBits uint
	// Rounds is the number of precision rounds run.
	Rounds int
	// Duration is the total wall time.
	Duration time.Duration
}

// Option configures an Isolator.
type Option func(*Isolator)

// WithObserver registers an observer for round events.
func WithObserver(o RoundObserver) Option {
	return func(iso *Isolator) {
		iso.subject.Register(o)
	}
}

// WithMaxPrecision sets a ceiling on the working precision. Zero, the
// default, leaves the loop unbounded.
func WithMaxPrecision(bits uint) Option {
	return func(iso *Isolator) {
		iso.maxPrec = bits
	}
}

// WithLogger sets the logger for per-call debug output.
func WithLogger(logger zerolog.Logger) Option {
	return func(iso *Isolator) {
		iso.logger = logger
	}
}

// Isolator drives the precision-escalating isolation loop. It holds no
// per-call state and may be shared by concurrent callers as long as its
// observers are safe for concurrent use.
type Isolator struct {
	finder    RootFinder
	validator RealRootValidator
	subject   *RoundSubject
	maxPrec   uint
	logger    zerolog.Logger
}

// NewIsolator creates an Isolator on top of the given backends. It panics
// if either backend is nil.
func NewIsolator(finder RootFinder, validator RealRootValidator, opts ...Option) *Isolator {
	if finder == nil || validator == nil {
		panic("roots: finder and validator cannot be nil")
	}
	iso := &Isolator{
		finder:    finder,
		validator: validator,
		subject:   NewRoundSubject(),
		logger:    log.Logger,
	}
	for _, opt := range opts {
		opt(iso)
	}
	return iso
}

// Subject exposes the observer registry.
func (iso *Isolator) Subject() *RoundSubject {
	return iso.subject
}

// run is the mutable state of one Isolate call.
type run struct {
	p      poly.Int
	defl   Deflation
	target uint
	prec   uint
	state  State

	round      int
	roundStart time.Time
	isolated   int

	deflatedRoots []ball.Complex
	fullRoots     []ball.Complex
}

// Isolate certifies all roots of p, which must be nonzero and is assumed
// squarefree. The first round runs at initialPrec bits and every failed
// round doubles the precision. Radii of the result are below
// 2^-targetAccuracy.
//
// The loop stops early with ctx.Err() when ctx is done, checked between
// rounds, and with ErrPrecisionExhausted when a ceiling set by
// WithMaxPrecision would be exceeded. Neither limit exists by default, so
// a polynomial with repeated roots makes Isolate run forever.
func (iso *Isolator) Isolate(ctx context.Context, p poly.Int, initialPrec, targetAccuracy uint) (result *Result, err error) {
	if initialPrec == 0 {
		return nil, fmt.Errorf("%w: initial precision must be positive", ErrInvalidArgument)
	}
	defl, err := Analyze(p)
	if err != nil {
		return nil, err
	}

	ctx, span := otel.Tracer("roots").Start(ctx, "Isolate", trace.WithAttributes(
		attribute.Int("degree", p.Degree()),
		attribute.Int("deflation", defl.D),
		attribute.Int64("target_bits", int64(targetAccuracy)),
	))
	defer span.End()

	start := time.Now()
	r := &run{
		p:      p,
		defl:   defl,
		target: targetAccuracy,
		prec:   initialPrec,
		state:  StateIsolating,
	}
	defer func() {
		status := "success"
		if err != nil {
			status = "error"
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		iso.logger.Debug().
			Int("degree", p.Degree()).
			Int("deflation", defl.D).
			Uint("final_prec", r.prec).
			Int("rounds", r.round).
			Dur("duration", time.Since(start)).
			Str("status", status).
			Msg("isolation completed")
	}()

	for !r.state.IsTerminal() {
		if r.state == StateIsolating {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		next, err := iso.step(ctx, r)
		if err != nil {
			return nil, err
		}
		if !canTransition(r.state, next) {
			return nil, fmt.Errorf("roots: invalid state transition %s -> %s", r.state, next)
		}
		r.state = next
	}

	return &Result{
		Roots:          SnapReal(r.fullRoots),
		Degree:         p.Degree(),
		Deflation:      defl,
		FinalPrecision: r.prec,
		TargetBits:     targetAccuracy,
		Rounds:         r.round,
		Duration:       time.Since(start),
	}, nil
}

// step performs the work of the current state and returns the next one.
func (iso *Isolator) step(ctx context.Context, r *run) (State, error) {
	switch r.state {
	case StateIsolating:
		r.round++
		r.roundStart = time.Now()
		deg := r.defl.Q.Degree()
		maxIter := min(max(deg, minIterations), int(min(r.prec, uint(1<<30))))
		var seeds []ball.Complex
		if r.round > 1 {
			seeds = r.deflatedRoots
		}
		r.isolated, r.deflatedRoots = iso.finder.FindRoots(ball.PolyFromInt(r.defl.Q, r.prec), seeds, maxIter, r.prec)
		if r.isolated != deg {
			return iso.escalate(ctx, r, OutcomeIncomplete)
		}
		return StateCheckAccuracy, nil

	case StateCheckAccuracy:
		if !CheckAccuracy(r.deflatedRoots, r.target) {
			return iso.escalate(ctx, r, OutcomeInaccurate)
		}
		return StateLifting, nil

	case StateLifting:
		r.fullRoots = Lift(r.deflatedRoots, r.defl.D, r.prec)
		return StateValidating, nil

	case StateValidating:
		outcome := certify(iso.validator, r.fullRoots, r.p, r.target, r.prec)
		if outcome != OutcomeCertified {
			r.fullRoots = nil
			return iso.escalate(ctx, r, outcome)
		}
		iso.emit(ctx, r, outcome)
		return StateDone, nil

	default:
		return r.state, fmt.Errorf("roots: no work defined for state %s", r.state)
	}
}

// escalate ends a failed round: it reports the outcome, doubles the
// precision and returns to Isolating.
func (iso *Isolator) escalate(ctx context.Context, r *run, outcome Outcome) (State, error) {
	iso.emit(ctx, r, outcome)
	next := r.prec * 2
	if iso.maxPrec > 0 && next > iso.maxPrec {
		return r.state, fmt.Errorf("%w: round %d at %d bits ended %s, next precision %d exceeds limit %d",
			ErrPrecisionExhausted, r.round, r.prec, outcome, next, iso.maxPrec)
	}
	r.prec = next
	return StateIsolating, nil
}

func (iso *Isolator) emit(ctx context.Context, r *run, outcome Outcome) {
	event := RoundEvent{
		Round:     r.round,
		Precision: r.prec,
		Isolated:  r.isolated,
		Degree:    r.defl.Q.Degree(),
		Outcome:   outcome,
		Elapsed:   time.Since(r.roundStart),
	}
	trace.SpanFromContext(ctx).AddEvent("round", trace.WithAttributes(
		attribute.Int("round", event.Round),
		attribute.Int64("prec", int64(event.Precision)),
		attribute.Int("isolated", event.Isolated),
		attribute.String("outcome", string(event.Outcome)),
	))
	iso.subject.Notify(event)
}
