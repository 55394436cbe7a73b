// Package service wires the root finder into the isolation loop and applies
// the limits shared by the CLI, the batch runner and the HTTP server.
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/agbru/polyroots/internal/ball"
	"github.com/agbru/polyroots/internal/config"
	apperrors "github.com/agbru/polyroots/internal/errors"
	"github.com/agbru/polyroots/internal/finder"
	"github.com/agbru/polyroots/internal/poly"
	"github.com/agbru/polyroots/internal/roots"
	"github.com/agbru/polyroots/pkg/models"
)

var (
	// ErrDegreeTooLarge is returned when the polynomial exceeds Limits.MaxDegree.
	ErrDegreeTooLarge = errors.New("maximum degree exceeded")
	// ErrRefineTooLarge is returned when the requested digits exceed Limits.MaxRefine.
	ErrRefineTooLarge = errors.New("maximum refine digits exceeded")
)

// Limits bounds the work a single request may ask for. Zero fields mean no
// limit.
type Limits struct {
	MaxDegree int
	MaxRefine int
}

//go:generate mockgen -source=root_service.go -destination=mocks/mock_service.go -package=mocks

// Service isolates the roots of one polynomial.
type Service interface {
	// Isolate certifies the roots of p to refine decimal digits. Extra
	// observers receive this call's round events only.
	Isolate(ctx context.Context, p poly.Int, refine int, observers ...roots.RoundObserver) (*roots.Result, error)
}

// RootService is the default Service. It holds no per-call state and is safe
// for concurrent use when its observers are.
type RootService struct {
	finder    *finder.Finder
	config    config.AppConfig
	limits    Limits
	observers []roots.RoundObserver
}

// Ensure RootService implements Service.
var _ Service = (*RootService)(nil)

// NewRootService creates a RootService.
//
// Parameters:
//   - cfg: Supplies the initial and maximum precision, the timeout and the
//     parallel validation threshold.
//   - limits: Input limits (zero for none).
//   - observers: Observers attached to every isolation, such as metrics.
func NewRootService(cfg config.AppConfig, limits Limits, observers ...roots.RoundObserver) *RootService {
	f := finder.New()
	if cfg.ParallelThreshold > 0 {
		f.ParallelThreshold = cfg.ParallelThreshold
	}
	if cfg.Prec == 0 {
		cfg.Prec = config.DefaultPrec
	}
	return &RootService{
		finder:    f,
		config:    cfg,
		limits:    limits,
		observers: observers,
	}
}

// Isolate validates the request against the limits and runs the isolation
// under the configured timeout.
func (s *RootService) Isolate(ctx context.Context, p poly.Int, refine int, observers ...roots.RoundObserver) (*roots.Result, error) {
	if refine < 0 {
		return nil, fmt.Errorf("%w: negative refine digits %d", roots.ErrInvalidArgument, refine)
	}
	if s.limits.MaxRefine > 0 && refine > s.limits.MaxRefine {
		return nil, apperrors.NewValidationError("refine", refine, s.limits.MaxRefine, ErrRefineTooLarge)
	}
	if s.limits.MaxDegree > 0 && p.Degree() > s.limits.MaxDegree {
		return nil, apperrors.NewValidationError("degree", p.Degree(), s.limits.MaxDegree, ErrDegreeTooLarge)
	}

	if s.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.config.Timeout)
		defer cancel()
	}

	opts := []roots.Option{roots.WithMaxPrecision(s.config.MaxPrec)}
	for _, o := range s.observers {
		opts = append(opts, roots.WithObserver(o))
	}
	for _, o := range observers {
		opts = append(opts, roots.WithObserver(o))
	}
	iso := roots.NewIsolator(s.finder, s.finder, opts...)
	return iso.Isolate(ctx, p, s.config.Prec, roots.TargetBits(refine))
}

// Report converts a result to its JSON document. Roots are included in
// display order with digits significant digits when digits > 0.
func Report(p poly.Int, res *roots.Result, digits int) models.RootReport {
	report := models.RootReport{
		Polynomial:     p.String(),
		Degree:         res.Degree,
		Deflation:      res.Deflation.D,
		TargetBits:     res.TargetBits,
		FinalPrecision: res.FinalPrecision,
		Rounds:         res.Rounds,
		Duration:       res.Duration.String(),
		RealRoots:      CountReal(res.Roots),
	}
	if digits > 0 {
		for _, z := range roots.Pretty(res.Roots) {
			report.Roots = append(report.Roots, models.Root{
				Real:   z.Re.Format(digits),
				Imag:   z.Im.Format(digits),
				IsReal: z.IsReal(),
				Text:   z.Format(digits),
			})
		}
	}
	return report
}

// CountReal returns how many enclosures have an exactly zero imaginary part.
func CountReal(zs []ball.Complex) int {
	n := 0
	for _, z := range zs {
		if z.IsReal() {
			n++
		}
	}
	return n
}

// Families lists the polynomial families as JSON documents.
func Families() []models.Family {
	fs := poly.Families()
	out := make([]models.Family, len(fs))
	for i, f := range fs {
		out[i] = models.Family{Letter: f.Letter, Name: f.Name, Usage: f.Usage, Description: f.Description}
	}
	return out
}
