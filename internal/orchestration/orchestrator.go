// Package orchestration runs the jobs of a batch file concurrently and
// summarizes their outcomes.
package orchestration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"runtime"
	"sync"
	"text/tabwriter"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/agbru/polyroots/internal/cli"
	"github.com/agbru/polyroots/internal/config"
	apperrors "github.com/agbru/polyroots/internal/errors"
	"github.com/agbru/polyroots/internal/poly"
	"github.com/agbru/polyroots/internal/roots"
	"github.com/agbru/polyroots/internal/service"
	"github.com/agbru/polyroots/pkg/models"
)

// JobResult is the outcome of one batch job.
type JobResult struct {
	// Job is the job as loaded, with its name defaulted.
	Job Job
	// Poly is the parsed polynomial. It is nil if parsing failed.
	Poly poly.Int
	// Result is the certified root set. It is nil if an error occurred.
	Result *roots.Result
	// Digits is the number of digits the roots are printed with.
	Digits int
	// Output holds the rendered roots.
	Output string
	// Duration is the wall time of the job.
	Duration time.Duration
	// Err contains any error that occurred during the job.
	Err error
}

// ExecuteJobs runs the jobs concurrently, at most GOMAXPROCS at a time.
// Each job renders its roots into its own buffer, so the output of
// concurrent jobs never interleaves. A line is written to out as each job
// finishes.
//
// Parameters:
//   - ctx: The context for cancellation. A canceled context fails the jobs
//     that have not finished.
//   - svc: The service running each isolation.
//   - jobs: The jobs to run.
//   - cfg: Supplies the default refine and print digits.
//   - out: The io.Writer for the progress lines.
//
// Returns:
//   - []JobResult: One result per job, in job order.
func ExecuteJobs(ctx context.Context, svc service.Service, jobs []Job, cfg config.AppConfig, out io.Writer) []JobResult {
	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))

	results := make([]JobResult, len(jobs))
	var outMu sync.Mutex

	for i, job := range jobs {
		g.Go(func() error {
			results[i] = runJob(ctx, svc, job, cfg)
			outMu.Lock()
			defer outMu.Unlock()
			status := ColorStatus(results[i].Err)
			fmt.Fprintf(out, "[%d/%d] %s: %s (%s)\n", i+1, len(jobs), job.Name, status,
				cli.FormatExecutionDuration(results[i].Duration))
			return nil
		})
	}
	_ = g.Wait()
	return results
}

func runJob(ctx context.Context, svc service.Service, job Job, cfg config.AppConfig) (res JobResult) {
	refine, digits := job.digits(cfg.Refine, cfg.Print)
	res = JobResult{Job: job, Digits: digits}

	start := time.Now()
	defer func() { res.Duration = time.Since(start) }()

	p, err := poly.ParseString(job.Poly)
	if err != nil {
		res.Err = err
		return res
	}
	res.Poly = p

	r, err := svc.Isolate(ctx, p, refine)
	if err != nil {
		res.Err = apperrors.NewIsolationError(p.String(), err)
		return res
	}
	res.Result = r

	var buf bytes.Buffer
	cli.DisplayRoots(&buf, r.Roots, digits)
	res.Output = buf.String()
	return res
}

// ColorStatus renders the status of a job.
func ColorStatus(err error) string {
	if err != nil {
		return fmt.Sprintf("%sfailed%s", cli.ColorRed(), cli.ColorReset())
	}
	return fmt.Sprintf("%scertified%s", cli.ColorGreen(), cli.ColorReset())
}

// AnalyzeBatchResults prints the summary table followed by the roots of
// each certified job, or a JSON array of reports when cfg.JSONOutput is
// set.
//
// Returns:
//   - int: ExitSuccess when every job was certified, otherwise the exit
//     code of the first failure.
func AnalyzeBatchResults(results []JobResult, cfg config.AppConfig, out io.Writer) int {
	if cfg.JSONOutput {
		return writeJSONSummary(results, out)
	}

	fmt.Fprintf(out, "\n--- Batch Summary ---\n")
	tw := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	fmt.Fprintf(tw, "%sJob\tDegree\tDeflation\tPrecision\tRounds\tDuration\tStatus%s\n", cli.ColorBold(), cli.ColorReset())

	var firstErr error
	failed := 0
	for _, r := range results {
		duration := cli.FormatExecutionDuration(r.Duration)
		if r.Err != nil {
			failed++
			if firstErr == nil {
				firstErr = r.Err
			}
			degree := "-"
			if r.Poly != nil {
				degree = fmt.Sprint(r.Poly.Degree())
			}
			fmt.Fprintf(tw, "%s%s%s\t%s\t-\t-\t-\t%s\t%s (%v)\n",
				cli.ColorBlue(), r.Job.Name, cli.ColorReset(), degree, duration, ColorStatus(r.Err), r.Err)
			continue
		}
		res := r.Result
		fmt.Fprintf(tw, "%s%s%s\t%d\t%d\t%d\t%d\t%s\t%s\n",
			cli.ColorBlue(), r.Job.Name, cli.ColorReset(),
			res.Degree, res.Deflation.D, res.FinalPrecision, res.Rounds, duration, ColorStatus(nil))
	}
	if err := tw.Flush(); err != nil {
		fmt.Fprintf(out, "Warning: failed to flush tabwriter: %v\n", err)
	}

	if !cfg.Quiet {
		for _, r := range results {
			if r.Err == nil && r.Output != "" {
				fmt.Fprintf(out, "\n%s%s%s: %s\n%s", cli.ColorBold(), r.Job.Name, cli.ColorReset(), r.Poly, r.Output)
			}
		}
	}

	if failed == 0 {
		fmt.Fprintf(out, "\nGlobal Status: Success. %d job(s) certified.\n", len(results))
		return apperrors.ExitSuccess
	}
	fmt.Fprintf(out, "\nGlobal Status: Failure. %d of %d job(s) failed.\n", failed, len(results))
	return apperrors.HandleIsolationError(firstErr, 0, out, cli.CLIColorProvider{})
}

func writeJSONSummary(results []JobResult, out io.Writer) int {
	reports := make([]models.RootReport, len(results))
	code := apperrors.ExitSuccess
	for i, r := range results {
		if r.Err != nil {
			reports[i] = models.RootReport{Polynomial: r.Job.Poly, Error: r.Err.Error(), Duration: r.Duration.String()}
			if r.Poly != nil {
				reports[i].Polynomial = r.Poly.String()
				reports[i].Degree = r.Poly.Degree()
			}
			if code == apperrors.ExitSuccess {
				code = apperrors.HandleIsolationError(r.Err, 0, io.Discard, nil)
			}
			continue
		}
		reports[i] = service.Report(r.Poly, r.Result, r.Digits)
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(reports); err != nil {
		return apperrors.ExitErrorGeneric
	}
	return code
}
