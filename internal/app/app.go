package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/agbru/polyroots/internal/calibration"
	"github.com/agbru/polyroots/internal/cli"
	"github.com/agbru/polyroots/internal/config"
	apperrors "github.com/agbru/polyroots/internal/errors"
	"github.com/agbru/polyroots/internal/logging"
	"github.com/agbru/polyroots/internal/orchestration"
	"github.com/agbru/polyroots/internal/poly"
	"github.com/agbru/polyroots/internal/roots"
	"github.com/agbru/polyroots/internal/server"
	"github.com/agbru/polyroots/internal/service"
	"github.com/agbru/polyroots/internal/ui"
)

// roundBuffer is the capacity of the round event channel feeding the
// display.
const roundBuffer = 16

// Application represents the polyroots application instance.
// It encapsulates the configuration and provides methods to run
// the application in its various modes (CLI, batch, server, REPL).
type Application struct {
	// Config holds the parsed application configuration.
	Config config.AppConfig
	// Service runs the isolations of the CLI and batch modes. A nil
	// Service is replaced by an unlimited RootService when Run starts.
	Service service.Service
	// ErrWriter is the writer for error output and logs (typically os.Stderr).
	ErrWriter io.Writer
	// In is the REPL input (typically os.Stdin).
	In io.Reader

	logger zerolog.Logger
}

// New creates a new Application instance by parsing command-line arguments.
// It validates the configuration and returns an error if parsing or validation fails.
//
// Parameters:
//   - args: The command-line arguments (typically os.Args).
//   - errWriter: The writer for error output.
//
// Returns:
//   - *Application: A new application instance.
//   - error: An error if configuration parsing or validation fails.
func New(args []string, errWriter io.Writer) (*Application, error) {
	programName := "polyroots"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter)
	if err != nil {
		return nil, err
	}

	return &Application{
		Config:    applyAdaptiveThresholds(cfg),
		ErrWriter: errWriter,
		In:        os.Stdin,
	}, nil
}

// applyAdaptiveThresholds replaces a parallel threshold left at its static
// default with an estimate for this machine. Explicit values are clamped.
func applyAdaptiveThresholds(cfg config.AppConfig) config.AppConfig {
	if cfg.ParallelThreshold == config.DefaultParallelThreshold {
		cfg.ParallelThreshold = calibration.EstimateParallelThreshold()
	} else if cfg.ParallelThreshold > 0 {
		cfg.ParallelThreshold = calibration.ValidateParallelThreshold(cfg.ParallelThreshold)
	}
	return cfg
}

// Run executes the application based on the configured mode.
// It dispatches to the appropriate handler (completion, server, REPL,
// batch or a single isolation).
//
// Parameters:
//   - ctx: The context for managing cancellation.
//   - out: The writer for standard output.
//
// Returns:
//   - int: An exit code (0 for success, non-zero for errors).
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	if a.Config.Completion != "" {
		return a.runCompletion(out)
	}

	ui.InitTheme(a.Config.NoColor)
	if a.ErrWriter == nil {
		a.ErrWriter = os.Stderr
	}
	a.logger = logging.Setup(a.ErrWriter, a.Config.Verbose, a.Config.JSONOutput)

	ctx, stopSignals := SetupSignals(ctx)
	defer stopSignals()

	switch {
	case a.Config.ServerMode:
		return a.runServer(ctx)
	case a.Config.Interactive:
		return a.runREPL(ctx, out)
	}

	if a.Service == nil {
		a.Service = service.NewRootService(a.Config, service.Limits{})
	}
	if a.Config.Batch != "" {
		return a.runBatch(ctx, out)
	}
	return a.runIsolate(ctx, out)
}

// runCompletion generates shell completion scripts.
func (a *Application) runCompletion(out io.Writer) int {
	if err := cli.GenerateCompletion(out, a.Config.Completion); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error generating completion: %v\n", err)
		return apperrors.ExitErrorConfig
	}
	return apperrors.ExitSuccess
}

// runServer starts the HTTP server mode and blocks until it shuts down.
func (a *Application) runServer(ctx context.Context) int {
	srv := server.NewServer(a.Config, server.WithLogger(logging.NewZerologAdapter(a.logger)))
	defer srv.Close()
	if err := srv.Start(ctx); err != nil {
		fmt.Fprintf(a.ErrWriter, "Server error: %v\n", err)
		return apperrors.ExitErrorGeneric
	}
	return apperrors.ExitSuccess
}

// runREPL starts the interactive REPL mode.
func (a *Application) runREPL(ctx context.Context, out io.Writer) int {
	repl := cli.NewREPL(a.Config)
	if a.In != nil {
		repl.SetInput(a.In)
	}
	repl.SetOutput(out)
	repl.Start(ctx)
	return apperrors.ExitSuccess
}

// runBatch runs the jobs of the batch file.
func (a *Application) runBatch(ctx context.Context, out io.Writer) int {
	jobs, err := orchestration.LoadJobsFile(a.Config.Batch)
	if err != nil {
		fmt.Fprintf(a.ErrWriter, "Batch error: %v\n", err)
		return apperrors.ExitErrorConfig
	}
	a.logger.Debug().Int("jobs", len(jobs)).Str("file", a.Config.Batch).Msg("batch started")

	progressOut := out
	if a.Config.Quiet || a.Config.JSONOutput {
		progressOut = io.Discard
	}
	results := orchestration.ExecuteJobs(ctx, a.Service, jobs, a.Config, progressOut)
	return orchestration.AnalyzeBatchResults(results, a.Config, out)
}

// runIsolate certifies the roots of the polynomial given on the command
// line and prints them.
func (a *Application) runIsolate(ctx context.Context, out io.Writer) int {
	colors := cli.CLIColorProvider{}
	p, err := poly.Parse(a.Config.Poly)
	if err != nil {
		return apperrors.HandleIsolationError(err, 0, out, colors)
	}
	defl, err := roots.Analyze(p)
	if err != nil {
		return apperrors.HandleIsolationError(err, 0, out, colors)
	}

	showProgress := !a.Config.Quiet && !a.Config.JSONOutput
	var observers []roots.RoundObserver
	if a.Config.Verbose {
		observers = append(observers, roots.NewLoggingObserver(a.logger))
	}

	events := make(chan roots.RoundEvent, roundBuffer)
	var wg sync.WaitGroup
	if showProgress {
		cli.PrintSearchHeader(out, p.Degree(), defl.Q.Degree())
		observers = append(observers, roots.NewChannelObserver(events))
		wg.Add(1)
		go cli.DisplayRounds(&wg, events, out, !a.Config.Verbose)
	}

	start := time.Now()
	res, err := a.Service.Isolate(ctx, p, a.Config.Refine, observers...)
	close(events)
	wg.Wait()

	if err != nil {
		return apperrors.HandleIsolationError(apperrors.NewIsolationError(p.String(), err), time.Since(start), out, colors)
	}

	outputCfg := cli.OutputConfig{
		OutputFile: a.Config.OutputFile,
		Digits:     a.Config.Print,
		Quiet:      a.Config.Quiet,
		JSON:       a.Config.JSONOutput,
	}
	if err := cli.DisplayResultWithConfig(out, p, res, outputCfg); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error writing result: %v\n", err)
		return apperrors.ExitErrorGeneric
	}
	return apperrors.ExitSuccess
}

// IsHelpError checks if the error is a help flag error (--help was used).
// This is useful for determining if the application should exit with success
// after displaying help text.
//
// Parameters:
//   - err: The error to check.
//
// Returns:
//   - bool: True if the error indicates help was requested.
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
