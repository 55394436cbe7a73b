package orchestration

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/agbru/polyroots/internal/ball"
	"github.com/agbru/polyroots/internal/config"
	apperrors "github.com/agbru/polyroots/internal/errors"
	"github.com/agbru/polyroots/internal/poly"
	"github.com/agbru/polyroots/internal/roots"
	"github.com/agbru/polyroots/internal/service"
	"github.com/agbru/polyroots/internal/ui"
	"github.com/agbru/polyroots/pkg/models"
)

func TestMain(m *testing.M) {
	ui.SetCurrentTheme(ui.NoColorTheme)
	goleak.VerifyTestMain(m)
}

// fakeService returns the exact roots of x^2 - 1 for every call, or err
// for polynomials listed in fail.
type fakeService struct {
	mu      sync.Mutex
	fail    map[string]error
	refines []int
}

func (f *fakeService) Isolate(ctx context.Context, p poly.Int, refine int, _ ...roots.RoundObserver) (*roots.Result, error) {
	f.mu.Lock()
	f.refines = append(f.refines, refine)
	err := f.fail[p.String()]
	f.mu.Unlock()
	if err != nil {
		return nil, err
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	return &roots.Result{
		Roots: []ball.Complex{
			ball.ComplexFromInt64(1, 0, 64),
			ball.ComplexFromInt64(-1, 0, 64),
		},
		Degree:         p.Degree(),
		Deflation:      roots.Deflation{D: 2, Q: poly.FromInt64s(-1, 1)},
		FinalPrecision: 32,
		TargetBits:     roots.TargetBits(refine),
		Rounds:         1,
		Duration:       time.Millisecond,
	}, nil
}

func intPtr(v int) *int { return &v }

func TestExecuteJobs(t *testing.T) {
	t.Parallel()
	svc := &fakeService{fail: map[string]error{
		poly.FromInt64s(1, 0, 1).String(): roots.ErrPrecisionExhausted,
	}}
	jobs := []Job{
		{Name: "ok", Poly: "-1 0 1", Print: intPtr(5)},
		{Name: "exhausted", Poly: "1 0 1"},
		{Name: "bad", Poly: "q 3"},
		{Name: "refined", Poly: "-1 0 1", Refine: intPtr(30)},
	}
	var out bytes.Buffer
	results := ExecuteJobs(context.Background(), svc, jobs, config.AppConfig{Refine: 10, Print: 0}, &out)

	require.Len(t, results, 4)
	assert.NoError(t, results[0].Err)
	assert.Equal(t, 5, results[0].Digits)
	assert.Equal(t, "-1\n1\n", results[0].Output)

	assert.ErrorIs(t, results[1].Err, roots.ErrPrecisionExhausted)
	var isoErr apperrors.IsolationError
	assert.ErrorAs(t, results[1].Err, &isoErr)

	assert.ErrorIs(t, results[2].Err, poly.ErrUnknownFamily)
	assert.Nil(t, results[2].Poly)

	assert.NoError(t, results[3].Err)
	assert.Empty(t, results[3].Output, "print defaults to the invocation's 0")

	assert.ElementsMatch(t, []int{10, 10, 30}, svc.refines)
	assert.Equal(t, 4, strings.Count(out.String(), "\n"))
	assert.Contains(t, out.String(), "exhausted: failed")
	assert.Contains(t, out.String(), "ok: certified")
}

func TestExecuteJobs_Canceled(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	results := ExecuteJobs(ctx, &fakeService{}, []Job{{Name: "a", Poly: "c 4"}, {Name: "b", Poly: "c 8"}}, config.AppConfig{}, io.Discard)
	for _, r := range results {
		assert.ErrorIs(t, r.Err, context.Canceled)
	}
}

func TestExecuteJobs_RealService(t *testing.T) {
	t.Parallel()
	cfg := config.AppConfig{Prec: config.DefaultPrec, Timeout: time.Minute}
	svc := service.NewRootService(cfg, service.Limits{})
	jobs := []Job{
		{Name: "sqrt2", Poly: "-2 0 1", Refine: intPtr(5), Print: intPtr(5)},
		{Name: "cyclo", Poly: "c 12", Refine: intPtr(5)},
		{Name: "wilkinson", Poly: "w 6", Refine: intPtr(5)},
	}
	results := ExecuteJobs(context.Background(), svc, jobs, cfg, io.Discard)
	require.Len(t, results, 3)
	for _, r := range results {
		require.NoError(t, r.Err, r.Job.Name)
		assert.Len(t, r.Result.Roots, r.Poly.Degree(), r.Job.Name)
	}
	assert.Contains(t, results[0].Output, "1.414")
	assert.Equal(t, 2, results[1].Result.Deflation.D)
}

func TestAnalyzeBatchResults(t *testing.T) {
	t.Parallel()
	svc := &fakeService{fail: map[string]error{
		poly.FromInt64s(1, 0, 1).String(): context.DeadlineExceeded,
	}}

	tests := []struct {
		name     string
		jobs     []Job
		cfg      config.AppConfig
		wantCode int
		want     []string
		absent   []string
	}{
		{
			name:     "all certified",
			jobs:     []Job{{Name: "first", Poly: "-1 0 1", Print: intPtr(3)}, {Name: "second", Poly: "c 2"}},
			wantCode: apperrors.ExitSuccess,
			want:     []string{"--- Batch Summary ---", "Job", "Deflation", "first", "second", "certified", "first: x^2 - 1", "Success. 2 job(s)"},
		},
		{
			name:     "timeout",
			jobs:     []Job{{Name: "slow", Poly: "1 0 1"}, {Name: "fine", Poly: "-1 0 1"}},
			wantCode: apperrors.ExitErrorTimeout,
			want:     []string{"slow", "failed", "Failure. 1 of 2 job(s) failed.", "Timeout"},
		},
		{
			name:     "quiet omits roots",
			jobs:     []Job{{Name: "first", Poly: "-1 0 1", Print: intPtr(3)}},
			cfg:      config.AppConfig{Quiet: true},
			wantCode: apperrors.ExitSuccess,
			absent:   []string{"first: x^2 - 1"},
		},
		{
			name:     "invalid poly",
			jobs:     []Job{{Name: "broken", Poly: "t"}},
			wantCode: apperrors.ExitErrorConfig,
			want:     []string{"broken", "Invalid input"},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			results := ExecuteJobs(context.Background(), svc, tc.jobs, tc.cfg, io.Discard)
			var out bytes.Buffer
			code := AnalyzeBatchResults(results, tc.cfg, &out)
			assert.Equal(t, tc.wantCode, code)
			for _, w := range tc.want {
				assert.Contains(t, out.String(), w)
			}
			for _, a := range tc.absent {
				assert.NotContains(t, out.String(), a)
			}
		})
	}
}

func TestAnalyzeBatchResults_JSON(t *testing.T) {
	t.Parallel()
	svc := &fakeService{fail: map[string]error{
		poly.FromInt64s(1, 0, 1).String(): errors.New("boom"),
	}}
	jobs := []Job{{Name: "ok", Poly: "-1 0 1", Print: intPtr(4)}, {Name: "ko", Poly: "1 0 1"}}
	cfg := config.AppConfig{JSONOutput: true}
	results := ExecuteJobs(context.Background(), svc, jobs, cfg, io.Discard)

	var out bytes.Buffer
	code := AnalyzeBatchResults(results, cfg, &out)
	assert.Equal(t, apperrors.ExitErrorGeneric, code)

	var reports []models.RootReport
	require.NoError(t, json.Unmarshal(out.Bytes(), &reports))
	require.Len(t, reports, 2)
	assert.Equal(t, 2, reports[0].Deflation)
	assert.Len(t, reports[0].Roots, 2)
	assert.Empty(t, reports[0].Error)
	assert.Equal(t, "x^2 + 1", reports[1].Polynomial)
	assert.Contains(t, reports[1].Error, "boom")
}
